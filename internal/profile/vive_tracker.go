package profile

import "github.com/soar/xrbridge/internal/runtime"

// ViveTrackerPath is the runtime path generic trackers are registered under.
const ViveTrackerPath = "/interaction_profiles/htc/vive_tracker_htcx"

// ViveTracker is the interaction profile assigned to dynamically discovered
// generic trackers. Trackers carry no hand-relative inputs; the profile
// exists to answer property queries and to give discovery a stable identity.
var ViveTracker Profile = &viveTracker{}

type viveTracker struct{}

func (*viveTracker) Path() string {
	return ViveTrackerPath
}

func (*viveTracker) Properties() *Properties {
	return &viveTrackerProps
}

var viveTrackerProps = Properties{
	Model:          "Vive Tracker Pro MV",
	ControllerType: "vive_tracker",
	RenderModel:    Both("{htc}vr_tracker_vive_3_0"),
	Manufacturer:   "HTC",
	MainAxis:       AxisTrackpad,
}

func (*viveTracker) TranslateMap() []PathTranslation {
	return nil
}

func (*viveTracker) LegalPaths() []string {
	return nil
}

func (*viveTracker) LegacyBindings(runtime.Binder) LegacyBindings {
	return LegacyBindings{}
}
