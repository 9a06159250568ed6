// Package runtime defines the abstraction over the modern XR runtime that the
// rest of xrbridge is written against: session state (display time, reference
// spaces), space relation for pose queries, interned path handles, and the
// optional external-device enumeration extension used for tracker discovery.
package runtime

import "context"

// Time is a runtime timestamp in nanoseconds.
type Time int64

// TrackingOrigin selects the reference frame a pose is expressed against.
type TrackingOrigin int

const (
	OriginSeated TrackingOrigin = iota
	OriginStanding
	OriginRaw
)

func (o TrackingOrigin) String() string {
	switch o {
	case OriginSeated:
		return "seated"
	case OriginStanding:
		return "standing"
	case OriginRaw:
		return "raw"
	}
	return "unknown"
}

// Vec3 is a position or velocity in meters (per second).
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Quat is an orientation quaternion.
type Quat struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
	W float64 `json:"w"`
}

// Pose is a position and orientation pair.
type Pose struct {
	Position    Vec3 `json:"position"`
	Orientation Quat `json:"orientation"`
}

// Location is a resolved pose plus its velocities.
type Location struct {
	Pose            Pose `json:"pose"`
	LinearVelocity  Vec3 `json:"linearVelocity"`
	AngularVelocity Vec3 `json:"angularVelocity"`
}

// Space is a tracked coordinate frame.
type Space interface {
	// Relate resolves this space against base at the given time. ok is false
	// when the relation cannot be computed (tracking lost); err is reserved
	// for genuine runtime call failures.
	Relate(base Space, at Time) (loc Location, ok bool, err error)
}

// ExternalDevice is one entry from the hardware-enumeration extension.
// Space is nil when the device exposes no usable tracking space.
type ExternalDevice struct {
	Space  Space
	Name   string
	Serial string
}

// DeviceEnumerator is the optional runtime extension listing external
// hardware devices (used to discover generic trackers).
type DeviceEnumerator interface {
	EnumerateDevices(ctx context.Context) ([]ExternalDevice, error)
}

// Session is the slice of runtime session state the device layer consumes.
type Session interface {
	// DisplayTime returns the session's current display time.
	DisplayTime() Time
	// SpaceForOrigin returns the reference space for a tracking origin.
	SpaceForOrigin(origin TrackingOrigin) Space
	// ViewSpace returns the head-locked view space.
	ViewSpace() Space
	// SystemName returns the runtime's system (headset) name.
	SystemName() string
	// DisplayFrequency returns the headset refresh rate in Hz.
	DisplayFrequency() float64
	// DeviceEnumerator returns the enumeration extension, or nil when the
	// runtime does not support it. A nil enumerator is a valid configuration.
	DeviceEnumerator() DeviceEnumerator
}
