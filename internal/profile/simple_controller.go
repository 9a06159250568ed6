package profile

import "github.com/soar/xrbridge/internal/runtime"

// SimpleController is the Khronos simple controller profile, the lowest
// common denominator every conformant runtime supports. Trigger-style
// inputs all collapse onto the single select click.
var SimpleController Profile = &simpleController{}

type simpleController struct{}

func (*simpleController) Path() string {
	return "/interaction_profiles/khr/simple_controller"
}

func (*simpleController) Properties() *Properties {
	return &simpleControllerProps
}

var simpleControllerProps = Properties{
	Model:          "Vive. Controller MV",
	ControllerType: "vive_controller",
	RenderModel:    Both("vr_controller_vive_1_5"),
	Manufacturer:   "HTC",
	MainAxis:       AxisTrackpad,
}

func (*simpleController) TranslateMap() []PathTranslation {
	return simpleControllerTranslateMap
}

var simpleControllerTranslateMap = []PathTranslation{
	{From: "application_menu", To: "menu", Stop: true},
	{From: "trigger", To: "select", Stop: false},
	{From: "select/pull", To: "select/click", Stop: true},
	{From: "select/value", To: "select/click", Stop: true},
}

func (*simpleController) LegalPaths() []string {
	return expandBoth(
		"input/select/click",
		"input/menu/click",
		"input/grip/pose",
		"input/aim/pose",
		"output/haptic",
	)
}

func (*simpleController) LegacyBindings(b runtime.Binder) LegacyBindings {
	return LegacyBindings{
		GripPose:     b.LeftRight("input/grip/pose"),
		AimPose:      b.LeftRight("input/aim/pose"),
		AppMenu:      b.LeftRight("input/menu/click"),
		Trigger:      b.LeftRight("input/select/click"),
		TriggerClick: b.LeftRight("input/select/click"),
		Squeeze:      b.LeftRight("input/select/click"),
	}
}
