package profile

import "github.com/soar/xrbridge/internal/runtime"

// Touch is the interaction profile for the Oculus Touch controllers.
var Touch Profile = &touch{}

type touch struct{}

func (*touch) Path() string {
	return "/interaction_profiles/oculus/touch_controller"
}

func (*touch) Properties() *Properties {
	return &touchProps
}

var touchProps = Properties{
	Model:          "Miramar",
	ControllerType: "oculus_touch",
	RenderModel: HandedString{
		Left:  "oculus_quest2_controller_left",
		Right: "oculus_quest2_controller_right",
	},
	Manufacturer: "Oculus",
	MainAxis:     AxisThumbstick,
}

func (*touch) TranslateMap() []PathTranslation {
	return touchTranslateMap
}

var touchTranslateMap = []PathTranslation{
	{From: "trigger/click", To: "trigger/value", Stop: true},
	{From: "grip/click", To: "squeeze/value", Stop: true},
	{From: "trigger/pull", To: "trigger/value", Stop: true},
	{From: "application_menu", To: "menu", Stop: true},
	{From: "joystick", To: "thumbstick", Stop: true},
}

func (*touch) LegalPaths() []string {
	// The button cluster is asymmetric: X/Y and the menu button exist on
	// the left controller only, A/B on the right only.
	paths := expandHand(LeftHand,
		"input/x/click",
		"input/x/touch",
		"input/y/click",
		"input/y/touch",
		"input/menu/click",
	)
	paths = append(paths, expandHand(RightHand,
		"input/a/click",
		"input/a/touch",
		"input/b/click",
		"input/b/touch",
	)...)
	return append(paths, expandBoth(
		"input/squeeze/value",
		"input/trigger/value",
		"input/trigger/touch",
		"input/thumbstick",
		"input/thumbstick/x",
		"input/thumbstick/y",
		"input/thumbstick/click",
		"input/thumbstick/touch",
		"input/thumbrest/touch",
		"input/grip/pose",
		"input/aim/pose",
		"output/haptic",
	)...)
}

func (*touch) LegacyBindings(b runtime.Binder) LegacyBindings {
	return LegacyBindings{
		GripPose:     b.LeftRight("input/grip/pose"),
		AimPose:      b.LeftRight("input/aim/pose"),
		AppMenu:      b.Left("input/menu/click"),
		Trigger:      b.LeftRight("input/trigger/value"),
		TriggerClick: b.LeftRight("input/trigger/value"),
		Squeeze:      b.LeftRight("input/squeeze/value"),
	}
}
