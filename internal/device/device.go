// Package device owns the authoritative, index-stable list of tracked
// devices the legacy interface exposes: the HMD, the hand controllers and
// any dynamically discovered generic trackers, together with their live
// connection state, pose resolution and legacy property surface.
package device

import (
	"errors"
	"sync/atomic"

	"github.com/soar/xrbridge/internal/profile"
	"github.com/soar/xrbridge/internal/runtime"
)

// Class is the role of a tracked device.
type Class int

const (
	ClassInvalid Class = iota
	ClassHMD
	ClassController
	ClassGenericTracker
)

func (c Class) String() string {
	switch c {
	case ClassHMD:
		return "hmd"
	case ClassController:
		return "controller"
	case ClassGenericTracker:
		return "generic_tracker"
	}
	return "invalid"
}

// Index addresses a device within a registry. Indices are stable for a
// device's lifetime; 0-2 are reserved for the HMD and the two controllers.
type Index uint32

const (
	IndexHMD       Index = 0
	IndexLeftHand  Index = 1
	IndexRightHand Index = 2

	// ReservedIndices is the first index available to generic trackers.
	ReservedIndices Index = 3

	// MaxDevices bounds the registry, matching the legacy runtime's fixed
	// device table size.
	MaxDevices Index = 64
)

// Activity is the coarse legacy activity level reported per device.
type Activity int

const (
	ActivityUnknown Activity = iota
	ActivityIdle
	ActivityUserInteraction
)

func (a Activity) String() string {
	switch a {
	case ActivityIdle:
		return "idle"
	case ActivityUserInteraction:
		return "user_interaction"
	}
	return "unknown"
}

// Prop identifies a legacy device property.
type Prop int

const (
	// String properties.
	PropTrackingSystemName Prop = iota
	PropModelNumber
	PropSerialNumber
	PropRenderModelName
	PropManufacturerName
	PropControllerType
	// Bool properties.
	PropDeviceIsWireless
	PropDeviceProvidesBatteryStatus
	// Int32 properties.
	PropDeviceClass
	PropControllerRoleHint
	// Float properties.
	PropDisplayFrequency
	PropBatteryPercentage
)

var (
	// ErrUnknownProperty marks a property that is not applicable to the
	// device's type; distinct from a valid property on a disconnected device.
	ErrUnknownProperty = errors.New("unknown property for device")
	// ErrDeviceDisconnected marks a valid property queried while the device
	// is not connected.
	ErrDeviceDisconnected = errors.New("device disconnected")
	// ErrNoProfile marks a profile-backed query on a controller that has not
	// been assigned an interaction profile yet.
	ErrNoProfile = errors.New("no interaction profile assigned")

	// Construction-time invariant violations.
	ErrReservedIndex   = errors.New("generic tracker created at a reserved index")
	ErrNoTrackingSpace = errors.New("generic tracker created without a tracking space")
	ErrProfileAssigned = errors.New("interaction profile already assigned")
)

// Device is the capability set shared by all tracked device variants.
type Device interface {
	Index() Index
	Class() Class

	// Connected reports the live connection flag. It is backed by an atomic
	// and safe to poll without holding the registry lock.
	Connected() bool
	SetConnected(bool)

	// Activity reports the coarse legacy activity level: user interaction
	// while connected, unknown otherwise.
	Activity() Activity

	// Profile returns the assigned interaction profile, or nil (the HMD has
	// fixed built-in behavior instead of a profile).
	Profile() profile.Profile

	// Pose resolves the device's tracking space against the session's
	// reference space for the origin at the current display time. ok is
	// false when the relation cannot be computed.
	Pose(sess runtime.Session, origin runtime.TrackingOrigin) (loc runtime.Location, ok bool, err error)

	StringProperty(sess runtime.Session, prop Prop) (string, error)
	BoolProperty(prop Prop) (bool, error)
	Int32Property(prop Prop) (int32, error)
	FloatProperty(sess runtime.Session, prop Prop) (float64, error)
}

// baseDevice carries the identity and connection state every variant shares.
type baseDevice struct {
	index     Index
	class     Class
	connected atomic.Bool
}

func (b *baseDevice) Index() Index        { return b.index }
func (b *baseDevice) Class() Class        { return b.class }
func (b *baseDevice) Connected() bool     { return b.connected.Load() }
func (b *baseDevice) SetConnected(v bool) { b.connected.Store(v) }

func (b *baseDevice) Activity() Activity {
	if b.connected.Load() {
		return ActivityUserInteraction
	}
	return ActivityUnknown
}

// relateSpace resolves space against the origin's reference space at the
// session's current display time. A nil space yields ok=false: the device
// has no bound space yet, which callers treat the same as tracking lost.
func relateSpace(space runtime.Space, sess runtime.Session, origin runtime.TrackingOrigin) (runtime.Location, bool, error) {
	if space == nil {
		return runtime.Location{}, false, nil
	}
	return space.Relate(sess.SpaceForOrigin(origin), sess.DisplayTime())
}
