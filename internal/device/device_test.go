package device

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soar/xrbridge/internal/profile"
	"github.com/soar/xrbridge/internal/runtime"
	"github.com/soar/xrbridge/internal/simrt"
)

func TestHMDProperties(t *testing.T) {
	sess := simrt.NewSession("Acme Headset 2")
	h := NewHMD()

	model, err := h.StringProperty(sess, PropModelNumber)
	require.NoError(t, err)
	assert.Equal(t, "Acme Headset 2", model)

	serial, err := h.StringProperty(sess, PropSerialNumber)
	require.NoError(t, err)
	assert.NotEmpty(t, serial)

	hz, err := h.FloatProperty(sess, PropDisplayFrequency)
	require.NoError(t, err)
	assert.Equal(t, 90.0, hz)

	class, err := h.Int32Property(PropDeviceClass)
	require.NoError(t, err)
	assert.Equal(t, int32(ClassHMD), class)

	// A controller-only property on the HMD is unknown, not disconnected.
	_, err = h.StringProperty(sess, PropControllerType)
	require.ErrorIs(t, err, ErrUnknownProperty)
}

func TestHMDPose(t *testing.T) {
	sess := simrt.NewSession("")
	h := NewHMD()

	loc, ok, err := h.Pose(sess, runtime.OriginStanding)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 1.7, loc.Pose.Position.Y)

	sess.Head().SetLost(true)
	_, ok, err = h.Pose(sess, runtime.OriginStanding)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestControllerProfileAssignment(t *testing.T) {
	c := NewController(profile.LeftHand)
	require.Nil(t, c.Profile())

	require.NoError(t, c.AssignProfile(profile.Knuckles))
	assert.Same(t, profile.Knuckles, c.Profile())

	// Re-assigning the same profile is fine; a different one is not.
	require.NoError(t, c.AssignProfile(profile.Knuckles))
	require.ErrorIs(t, c.AssignProfile(profile.ViveWands), ErrProfileAssigned)
	assert.Same(t, profile.Knuckles, c.Profile())
}

func TestControllerProperties(t *testing.T) {
	sess := simrt.NewSession("")
	c := NewController(profile.LeftHand)
	c.SetConnected(true)

	// Connected but not yet profiled: identity is unknown, not missing.
	_, err := c.StringProperty(sess, PropModelNumber)
	require.ErrorIs(t, err, ErrNoProfile)

	require.NoError(t, c.AssignProfile(profile.Knuckles))

	model, err := c.StringProperty(sess, PropModelNumber)
	require.NoError(t, err)
	assert.Equal(t, "Knuckles", model)

	ctype, err := c.StringProperty(sess, PropControllerType)
	require.NoError(t, err)
	assert.Equal(t, "knuckles", ctype)

	render, err := c.StringProperty(sess, PropRenderModelName)
	require.NoError(t, err)
	assert.Equal(t, "{indexcontroller}valve_controller_knu_1_0_left", render)

	role, err := c.Int32Property(PropControllerRoleHint)
	require.NoError(t, err)
	assert.Equal(t, int32(RoleLeftHand), role)

	wireless, err := c.BoolProperty(PropDeviceIsWireless)
	require.NoError(t, err)
	assert.True(t, wireless)

	_, err = c.FloatProperty(sess, PropDisplayFrequency)
	require.ErrorIs(t, err, ErrUnknownProperty)
}

func TestDisconnectedDevicePropertiesAreInvalid(t *testing.T) {
	sess := simrt.NewSession("")
	r := NewFullRegistry(nil)

	left, err := r.Controller(profile.LeftHand)
	require.NoError(t, err)
	right, err := r.Controller(profile.RightHand)
	require.NoError(t, err)
	for _, c := range []*Controller{left, right} {
		require.NoError(t, c.AssignProfile(profile.ViveWands))
		c.SetConnected(true)
	}

	left.SetConnected(false)

	// The disconnected controller reports invalid-device on every typed
	// property query.
	_, err = left.StringProperty(sess, PropModelNumber)
	require.ErrorIs(t, err, ErrDeviceDisconnected)
	_, err = left.BoolProperty(PropDeviceIsWireless)
	require.ErrorIs(t, err, ErrDeviceDisconnected)
	_, err = left.Int32Property(PropDeviceClass)
	require.ErrorIs(t, err, ErrDeviceDisconnected)
	_, err = left.FloatProperty(sess, PropBatteryPercentage)
	require.ErrorIs(t, err, ErrDeviceDisconnected)

	// Other devices are unaffected.
	model, err := right.StringProperty(sess, PropModelNumber)
	require.NoError(t, err)
	assert.Equal(t, "Vive. Controller MV", model)

	hmd, err := r.HMD()
	require.NoError(t, err)
	_, ok, err := hmd.Pose(sess, runtime.OriginStanding)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestControllerPoseRequiresBoundSpace(t *testing.T) {
	sess := simrt.NewSession("")
	c := NewController(profile.RightHand)

	_, ok, err := c.Pose(sess, runtime.OriginStanding)
	require.NoError(t, err)
	assert.False(t, ok, "pose must be unavailable before a space is bound")

	space := simrt.NewTrackedSpace(runtime.Location{
		Pose: runtime.Pose{Position: runtime.Vec3{X: 0.3, Y: 1.1, Z: -0.2}},
	})
	c.BindSpace(space)

	loc, ok, err := c.Pose(sess, runtime.OriginStanding)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, runtime.Vec3{X: 0.3, Y: 1.1, Z: -0.2}, loc.Pose.Position)

	space.SetLost(true)
	_, ok, err = c.Pose(sess, runtime.OriginStanding)
	require.NoError(t, err)
	assert.False(t, ok)

	boom := errors.New("runtime failure")
	space.SetLost(false)
	space.FailWith(boom)
	_, _, err = c.Pose(sess, runtime.OriginStanding)
	require.ErrorIs(t, err, boom)
}

func TestGenericTrackerConstructionInvariants(t *testing.T) {
	space := simrt.NewTrackedSpace(runtime.Location{})

	// Reserved indices are off limits.
	for _, index := range []Index{IndexHMD, IndexLeftHand, IndexRightHand} {
		_, err := NewGenericTracker(index, runtime.ExternalDevice{Name: "t", Space: space})
		require.ErrorIs(t, err, ErrReservedIndex, "index %d", index)
	}

	// A tracker without a tracking space is unusable.
	_, err := NewGenericTracker(ReservedIndices, runtime.ExternalDevice{Name: "t"})
	require.ErrorIs(t, err, ErrNoTrackingSpace)

	tracker, err := NewGenericTracker(ReservedIndices, runtime.ExternalDevice{
		Name: "Tracker", Serial: "S1", Space: space,
	})
	require.NoError(t, err)
	assert.True(t, tracker.Connected())
	assert.Equal(t, ClassGenericTracker, tracker.Class())
	assert.Same(t, profile.ViveTracker, tracker.Profile())
}

func TestGenericTrackerProperties(t *testing.T) {
	sess := simrt.NewSession("")
	tracker, err := NewGenericTracker(ReservedIndices, runtime.ExternalDevice{
		Name:   "VIVE Tracker 3.0",
		Serial: "LHR-77",
		Space:  simrt.NewTrackedSpace(runtime.Location{}),
	})
	require.NoError(t, err)

	serial, err := tracker.StringProperty(sess, PropSerialNumber)
	require.NoError(t, err)
	assert.Equal(t, "LHR-77", serial)

	ctype, err := tracker.StringProperty(sess, PropControllerType)
	require.NoError(t, err)
	assert.Equal(t, "vive_tracker", ctype)

	// Without a serial the advertised name stands in.
	unnamed, err := NewGenericTracker(ReservedIndices, runtime.ExternalDevice{
		Name:  "waist tracker",
		Space: simrt.NewTrackedSpace(runtime.Location{}),
	})
	require.NoError(t, err)
	serial, err = unnamed.StringProperty(sess, PropSerialNumber)
	require.NoError(t, err)
	assert.Equal(t, "waist tracker", serial)
}

func TestDiscoveredTrackerPose(t *testing.T) {
	sess := simrt.NewSession("")
	r := NewFullRegistry(nil)
	space := simrt.NewTrackedSpace(runtime.Location{
		Pose: runtime.Pose{Position: runtime.Vec3{X: 1, Y: 0.2, Z: 1}},
	})
	sess.Enumerator().SetDevices([]runtime.ExternalDevice{
		{Name: "Tracker", Serial: "S", Space: space},
	})
	require.NoError(t, r.RefreshGenericTrackers(context.Background(), sess))

	d, ok := r.Get(ReservedIndices)
	require.True(t, ok)
	loc, ok, err := d.Pose(sess, runtime.OriginStanding)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, runtime.Vec3{X: 1, Y: 0.2, Z: 1}, loc.Pose.Position)
}

func TestActivityTracksConnection(t *testing.T) {
	c := NewController(profile.LeftHand)
	assert.Equal(t, ActivityUnknown, c.Activity())

	c.SetConnected(true)
	assert.Equal(t, ActivityUserInteraction, c.Activity())
	assert.Equal(t, "user_interaction", c.Activity().String())

	c.SetConnected(false)
	assert.Equal(t, ActivityUnknown, c.Activity())
	assert.Equal(t, "unknown", c.Activity().String())

	// The HMD is connected for the session's lifetime.
	assert.Equal(t, ActivityUserInteraction, NewHMD().Activity())
}
