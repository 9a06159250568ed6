package device

import (
	"github.com/soar/xrbridge/internal/profile"
	"github.com/soar/xrbridge/internal/runtime"
)

// HMD is the head-mounted display, always at index 0. It has no interaction
// profile; identity properties come from the runtime itself.
type HMD struct {
	baseDevice
}

// NewHMD builds the HMD device. The headset is considered connected for the
// session's lifetime.
func NewHMD() *HMD {
	h := &HMD{baseDevice: baseDevice{index: IndexHMD, class: ClassHMD}}
	h.connected.Store(true)
	return h
}

func (*HMD) Profile() profile.Profile {
	return nil
}

func (h *HMD) Pose(sess runtime.Session, origin runtime.TrackingOrigin) (runtime.Location, bool, error) {
	return relateSpace(sess.ViewSpace(), sess, origin)
}

func (h *HMD) StringProperty(sess runtime.Session, prop Prop) (string, error) {
	if !h.Connected() {
		return "", ErrDeviceDisconnected
	}
	switch prop {
	case PropTrackingSystemName:
		return "xrbridge", nil
	case PropModelNumber:
		return sess.SystemName(), nil
	case PropSerialNumber:
		return "XRBRIDGE-HMD-001", nil
	case PropManufacturerName:
		return sess.SystemName(), nil
	}
	return "", ErrUnknownProperty
}

func (h *HMD) BoolProperty(prop Prop) (bool, error) {
	if !h.Connected() {
		return false, ErrDeviceDisconnected
	}
	switch prop {
	case PropDeviceIsWireless, PropDeviceProvidesBatteryStatus:
		return false, nil
	}
	return false, ErrUnknownProperty
}

func (h *HMD) Int32Property(prop Prop) (int32, error) {
	if !h.Connected() {
		return 0, ErrDeviceDisconnected
	}
	if prop == PropDeviceClass {
		return int32(ClassHMD), nil
	}
	return 0, ErrUnknownProperty
}

func (h *HMD) FloatProperty(sess runtime.Session, prop Prop) (float64, error) {
	if !h.Connected() {
		return 0, ErrDeviceDisconnected
	}
	if prop == PropDisplayFrequency {
		return sess.DisplayFrequency(), nil
	}
	return 0, ErrUnknownProperty
}
