package device

import (
	"fmt"

	"github.com/soar/xrbridge/internal/profile"
	"github.com/soar/xrbridge/internal/runtime"
)

// GenericTracker is an auxiliary tracked object discovered through the
// runtime's enumeration extension. Trackers always carry the vive tracker
// profile and are connected from creation until the next discovery pass
// replaces them.
type GenericTracker struct {
	baseDevice
	prof   profile.Profile
	space  runtime.Space
	name   string
	serial string
}

// NewGenericTracker builds a tracker from an enumerated external device.
// The index must be outside the reserved range and the device must expose a
// tracking space; either violation is a programming error in the caller and
// fails construction.
func NewGenericTracker(index Index, ext runtime.ExternalDevice) (*GenericTracker, error) {
	if index < ReservedIndices {
		return nil, fmt.Errorf("%w: index %d", ErrReservedIndex, index)
	}
	if ext.Space == nil {
		return nil, fmt.Errorf("%w: %q", ErrNoTrackingSpace, ext.Name)
	}
	prof, ok := profile.Lookup(profile.ViveTrackerPath)
	if !ok {
		return nil, fmt.Errorf("vive tracker profile not registered")
	}

	t := &GenericTracker{
		baseDevice: baseDevice{index: index, class: ClassGenericTracker},
		prof:       prof,
		space:      ext.Space,
		name:       ext.Name,
		serial:     ext.Serial,
	}
	t.connected.Store(true)
	return t, nil
}

// Name returns the advertised device name from enumeration.
func (t *GenericTracker) Name() string { return t.name }

func (t *GenericTracker) Profile() profile.Profile { return t.prof }

func (t *GenericTracker) Pose(sess runtime.Session, origin runtime.TrackingOrigin) (runtime.Location, bool, error) {
	return relateSpace(t.space, sess, origin)
}

func (t *GenericTracker) StringProperty(_ runtime.Session, prop Prop) (string, error) {
	if !t.Connected() {
		return "", ErrDeviceDisconnected
	}
	props := t.prof.Properties()
	switch prop {
	case PropTrackingSystemName:
		return "xrbridge", nil
	case PropModelNumber:
		return props.Model, nil
	case PropControllerType:
		return props.ControllerType, nil
	case PropRenderModelName:
		return props.RenderModel.Get(profile.LeftHand), nil
	case PropManufacturerName:
		return props.Manufacturer, nil
	case PropSerialNumber:
		if t.serial != "" {
			return t.serial, nil
		}
		return t.name, nil
	}
	return "", ErrUnknownProperty
}

func (t *GenericTracker) BoolProperty(prop Prop) (bool, error) {
	if !t.Connected() {
		return false, ErrDeviceDisconnected
	}
	switch prop {
	case PropDeviceIsWireless, PropDeviceProvidesBatteryStatus:
		return true, nil
	}
	return false, ErrUnknownProperty
}

func (t *GenericTracker) Int32Property(prop Prop) (int32, error) {
	if !t.Connected() {
		return 0, ErrDeviceDisconnected
	}
	if prop == PropDeviceClass {
		return int32(ClassGenericTracker), nil
	}
	return 0, ErrUnknownProperty
}

func (t *GenericTracker) FloatProperty(_ runtime.Session, prop Prop) (float64, error) {
	if !t.Connected() {
		return 0, ErrDeviceDisconnected
	}
	if prop == PropBatteryPercentage {
		return 1.0, nil
	}
	return 0, ErrUnknownProperty
}
