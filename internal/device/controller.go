package device

import (
	"fmt"
	"sync"

	"github.com/soar/xrbridge/internal/profile"
	"github.com/soar/xrbridge/internal/runtime"
)

// Controller is a hand controller at one of the reserved indices 1 and 2.
//
// Controllers are created in their reserved slots before the runtime has
// reported what hardware is actually in use, so the interaction profile is
// assigned once afterwards and is immutable from then on. Pose queries stay
// unavailable until the binding layer binds a pose space.
type Controller struct {
	baseDevice
	hand profile.Hand

	mu    sync.RWMutex
	prof  profile.Profile
	space runtime.Space
}

// NewController builds the controller for a hand at its reserved index.
func NewController(hand profile.Hand) *Controller {
	index := IndexLeftHand
	if hand == profile.RightHand {
		index = IndexRightHand
	}
	return &Controller{
		baseDevice: baseDevice{index: index, class: ClassController},
		hand:       hand,
	}
}

// Hand returns which hand the controller occupies.
func (c *Controller) Hand() profile.Hand { return c.hand }

// AssignProfile sets the controller's interaction profile. The profile is
// immutable once assigned; re-assigning a different profile is an invariant
// violation and returns ErrProfileAssigned. Assigning the same profile
// again is a no-op.
func (c *Controller) AssignProfile(p profile.Profile) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.prof != nil && c.prof != p {
		return fmt.Errorf("%w: %s controller already has %s", ErrProfileAssigned, c.hand, c.prof.Path())
	}
	c.prof = p
	return nil
}

func (c *Controller) Profile() profile.Profile {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.prof
}

// BindSpace attaches the pose space resolved from the controller's grip
// pose binding. Pose queries return ok=false until a space is bound.
func (c *Controller) BindSpace(s runtime.Space) {
	c.mu.Lock()
	c.space = s
	c.mu.Unlock()
}

func (c *Controller) Pose(sess runtime.Session, origin runtime.TrackingOrigin) (runtime.Location, bool, error) {
	c.mu.RLock()
	space := c.space
	c.mu.RUnlock()
	return relateSpace(space, sess, origin)
}

func (c *Controller) StringProperty(_ runtime.Session, prop Prop) (string, error) {
	if !c.Connected() {
		return "", ErrDeviceDisconnected
	}
	p := c.Profile()
	if p == nil {
		return "", ErrNoProfile
	}
	props := p.Properties()
	switch prop {
	case PropTrackingSystemName:
		return "xrbridge", nil
	case PropModelNumber:
		return props.Model, nil
	case PropControllerType:
		return props.ControllerType, nil
	case PropRenderModelName:
		return props.RenderModel.Get(c.hand), nil
	case PropManufacturerName:
		return props.Manufacturer, nil
	case PropSerialNumber:
		return fmt.Sprintf("%s-%s", props.ControllerType, c.hand), nil
	}
	return "", ErrUnknownProperty
}

func (c *Controller) BoolProperty(prop Prop) (bool, error) {
	if !c.Connected() {
		return false, ErrDeviceDisconnected
	}
	switch prop {
	case PropDeviceIsWireless, PropDeviceProvidesBatteryStatus:
		return true, nil
	}
	return false, ErrUnknownProperty
}

func (c *Controller) Int32Property(prop Prop) (int32, error) {
	if !c.Connected() {
		return 0, ErrDeviceDisconnected
	}
	switch prop {
	case PropDeviceClass:
		return int32(ClassController), nil
	case PropControllerRoleHint:
		if c.hand == profile.LeftHand {
			return int32(RoleLeftHand), nil
		}
		return int32(RoleRightHand), nil
	}
	return 0, ErrUnknownProperty
}

func (c *Controller) FloatProperty(_ runtime.Session, prop Prop) (float64, error) {
	if !c.Connected() {
		return 0, ErrDeviceDisconnected
	}
	if prop == PropBatteryPercentage {
		return 1.0, nil
	}
	return 0, ErrUnknownProperty
}
