package profile

import "github.com/soar/xrbridge/internal/runtime"

// Knuckles is the interaction profile for the Valve Index controllers.
var Knuckles Profile = &knuckles{}

type knuckles struct{}

func (*knuckles) Path() string {
	return "/interaction_profiles/valve/index_controller"
}

func (*knuckles) Properties() *Properties {
	return &knucklesProps
}

var knucklesProps = Properties{
	Model:          "Knuckles",
	ControllerType: "knuckles",
	RenderModel: HandedString{
		Left:  "{indexcontroller}valve_controller_knu_1_0_left",
		Right: "{indexcontroller}valve_controller_knu_1_0_right",
	},
	Manufacturer: "Valve",
	MainAxis:     AxisThumbstick,
}

func (*knuckles) TranslateMap() []PathTranslation {
	// The force-sensitive grip reports squeeze clicks via the force path,
	// so squeeze rules chain after the generic grip rename.
	return knucklesTranslateMap
}

var knucklesTranslateMap = []PathTranslation{
	{From: "pull", To: "value", Stop: false},
	{From: "input/grip", To: "input/squeeze", Stop: false},
	{From: "squeeze/click", To: "squeeze/force", Stop: true},
	{From: "squeeze/grab", To: "squeeze/force", Stop: true},
	{From: "trackpad/click", To: "trackpad/force", Stop: true},
}

func (*knuckles) LegalPaths() []string {
	subs := []string{
		"input/squeeze/value",
		"input/squeeze/force",
		"input/trigger/value",
		"input/trackpad/force",
		"input/trackpad/touch",
		"input/grip/pose",
		"input/aim/pose",
		"output/haptic",
	}
	for _, p := range []string{"input/a", "input/b", "input/trigger", "input/thumbstick"} {
		subs = append(subs, p+"/click", p+"/touch")
	}
	for _, p := range []string{"input/thumbstick", "input/trackpad"} {
		subs = append(subs, p+"/x", p+"/y", p)
	}
	return expandBoth(subs...)
}

func (*knuckles) LegacyBindings(b runtime.Binder) LegacyBindings {
	// The trigger pair is swapped relative to the other profiles: the
	// analog action binds the click path and vice versa.
	return LegacyBindings{
		GripPose:     b.LeftRight("input/grip/pose"),
		AimPose:      b.LeftRight("input/aim/pose"),
		AppMenu:      b.LeftRight("input/b/click"),
		Trigger:      b.LeftRight("input/trigger/click"),
		TriggerClick: b.LeftRight("input/trigger/value"),
		Squeeze:      b.LeftRight("input/squeeze/value"),
	}
}
