package profile

import "github.com/soar/xrbridge/internal/runtime"

// ViveWands is the interaction profile for the HTC Vive wand controllers.
var ViveWands Profile = &viveWands{}

type viveWands struct{}

func (*viveWands) Path() string {
	return "/interaction_profiles/htc/vive_controller"
}

func (*viveWands) Properties() *Properties {
	return &viveWandsProps
}

var viveWandsProps = Properties{
	Model:          "Vive. Controller MV",
	ControllerType: "vive_controller",
	RenderModel:    Both("vr_controller_vive_1_5"),
	Manufacturer:   "HTC",
	MainAxis:       AxisTrackpad,
}

func (*viveWands) TranslateMap() []PathTranslation {
	return viveWandsTranslateMap
}

var viveWandsTranslateMap = []PathTranslation{
	{From: "grip", To: "squeeze", Stop: true},
	{From: "trigger/pull", To: "trigger/value", Stop: true},
	{From: "trigger/click", To: "trigger/value", Stop: true},
	{From: "application_menu", To: "menu", Stop: true},
}

func (*viveWands) LegalPaths() []string {
	return expandBoth(
		"input/squeeze/click",
		"input/menu/click",
		"input/trigger/click",
		"input/trigger/value",
		"input/trackpad",
		"input/trackpad/x",
		"input/trackpad/y",
		"input/trackpad/click",
		"input/trackpad/touch",
		"input/grip/pose",
		"input/aim/pose",
		"output/haptic",
	)
}

func (*viveWands) LegacyBindings(b runtime.Binder) LegacyBindings {
	return LegacyBindings{
		GripPose:     b.LeftRight("input/grip/pose"),
		AimPose:      b.LeftRight("input/aim/pose"),
		AppMenu:      b.LeftRight("input/menu/click"),
		Trigger:      b.LeftRight("input/trigger/value"),
		TriggerClick: b.LeftRight("input/trigger/click"),
		Squeeze:      b.LeftRight("input/squeeze/click"),
	}
}
