// Package profile holds the per-controller-family interaction profiles: the
// modern runtime's canonical input paths for each supported hardware family,
// the rewrite rules mapping legacy action paths onto them, the legal-path
// sets used for binding validation, and the legacy-binding generators for
// callers that bypass the action system entirely.
package profile

import "github.com/soar/xrbridge/internal/runtime"

// Hand identifies a controller hand.
type Hand int

const (
	LeftHand Hand = iota
	RightHand
)

func (h Hand) String() string {
	if h == LeftHand {
		return "left"
	}
	return "right"
}

// UserPath returns the runtime user path prefix for the hand.
func (h Hand) UserPath() string {
	if h == LeftHand {
		return "/user/hand/left"
	}
	return "/user/hand/right"
}

// PathTranslation is one rewrite rule. Rules are scanned in declaration
// order; a rule whose From matches the current path substitutes To for it.
// Stop halts the scan after that substitution.
type PathTranslation struct {
	From string
	To   string
	Stop bool
}

// AxisType describes a controller's primary 2D input.
type AxisType int

const (
	AxisThumbstick AxisType = iota
	AxisTrackpad
)

// HandedString is a string property that may differ per hand.
type HandedString struct {
	Left  string
	Right string
}

// Both builds a HandedString shared by both hands.
func Both(s string) HandedString {
	return HandedString{Left: s, Right: s}
}

// Get returns the value for the given hand.
func (h HandedString) Get(hand Hand) string {
	if hand == LeftHand {
		return h.Left
	}
	return h.Right
}

// Properties are the legacy device properties a profile answers for.
// Model and ControllerType match what the legacy runtime would report for
// the real hardware; RenderModel may differ between hands.
type Properties struct {
	Model          string
	ControllerType string
	RenderModel    HandedString
	Manufacturer   string
	MainAxis       AxisType
}

// LegacyBindings is the bundle of path lists backing the pre-action-system
// input surface: poses, app menu, trigger and squeeze.
type LegacyBindings struct {
	GripPose     []runtime.Path
	AimPose      []runtime.Path
	AppMenu      []runtime.Path
	Trigger      []runtime.Path
	TriggerClick []runtime.Path
	Squeeze      []runtime.Path
}

// Profile is a per-hardware-family policy object. Implementations are
// immutable singletons registered at init and shared by every device and
// session using that hardware family.
type Profile interface {
	// Path returns the profile's runtime identity path.
	Path() string
	// Properties returns the profile's legacy device properties.
	Properties() *Properties
	// TranslateMap returns the ordered rewrite table for legacy paths.
	TranslateMap() []PathTranslation
	// LegalPaths returns every input/output path the hardware exposes,
	// fully qualified per hand.
	LegalPaths() []string
	// LegacyBindings builds the fallback bindings for legacy callers.
	LegacyBindings(b runtime.Binder) LegacyBindings
}

// expandBoth qualifies each sub-path under both hand user paths.
func expandBoth(subs ...string) []string {
	out := make([]string, 0, 2*len(subs))
	for _, s := range subs {
		out = append(out, "/user/hand/left/"+s, "/user/hand/right/"+s)
	}
	return out
}

// expandHand qualifies each sub-path under a single hand.
func expandHand(hand Hand, subs ...string) []string {
	out := make([]string, 0, len(subs))
	for _, s := range subs {
		out = append(out, hand.UserPath()+"/"+s)
	}
	return out
}
