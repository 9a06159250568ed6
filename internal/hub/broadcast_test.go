package hub

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soar/xrbridge/internal/device"
	"github.com/soar/xrbridge/internal/event"
	"github.com/soar/xrbridge/internal/profile"
	"github.com/soar/xrbridge/internal/runtime"
	"github.com/soar/xrbridge/internal/simrt"
)

func newTestBroadcaster(t *testing.T) (*Broadcaster, *device.Registry, *simrt.Session) {
	t.Helper()
	sess := simrt.NewSession("Test HMD")
	r := device.NewFullRegistry(nil)
	b := NewBroadcaster(NewHub(nil), r, sess, make(chan event.Event), 0)
	return b, r, sess
}

func TestStatusReflectsRegistry(t *testing.T) {
	b, r, sess := newTestBroadcaster(t)

	left, err := r.Controller(profile.LeftHand)
	require.NoError(t, err)
	require.NoError(t, left.AssignProfile(profile.Knuckles))
	left.SetConnected(true)

	sess.Enumerator().SetDevices([]runtime.ExternalDevice{
		{Name: "Tracker", Serial: "TRK-1", Space: simrt.NewTrackedSpace(runtime.Location{})},
	})
	require.NoError(t, r.RefreshGenericTrackers(context.Background(), sess))

	status := b.Status()
	require.Len(t, status, 4)

	hmd := status[0]
	assert.Equal(t, device.IndexHMD, hmd.Index)
	assert.Equal(t, "hmd", hmd.Class)
	assert.True(t, hmd.Connected)
	assert.Equal(t, "user_interaction", hmd.Activity)
	assert.Equal(t, "Test HMD", hmd.Model)
	require.NotNil(t, hmd.Location)
	assert.Equal(t, 1.7, hmd.Location.Pose.Position.Y)

	controller := status[1]
	assert.True(t, controller.Connected)
	assert.Equal(t, "Knuckles", controller.Model)
	assert.Equal(t, "knuckles", controller.ControllerType)
	assert.Equal(t, profile.Knuckles.Path(), controller.Profile)
	// No pose space bound yet: the snapshot simply omits the location.
	assert.Nil(t, controller.Location)

	// The disconnected right controller degrades to identity-only fields.
	right := status[2]
	assert.False(t, right.Connected)
	assert.Equal(t, "unknown", right.Activity)
	assert.Empty(t, right.Model)

	tracker := status[3]
	assert.Equal(t, "TRK-1", tracker.Serial)
	assert.Equal(t, profile.ViveTrackerPath, tracker.Profile)
	require.NotNil(t, tracker.Location)
}

func TestSnapshotMessageRoundTrips(t *testing.T) {
	b, _, _ := newTestBroadcaster(t)

	msg := NewSnapshotMessage(7, b.Status())
	data, err := json.Marshal(msg)
	require.NoError(t, err)

	var decoded WSMessage
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "snapshot", decoded.Type)
	assert.Equal(t, int64(7), decoded.Seq)
	require.Len(t, decoded.Devices, 3)
	assert.Equal(t, "hmd", decoded.Devices[0].Class)
}

func TestEventMessage(t *testing.T) {
	msg := NewEventMessage(3, event.Event{
		Index:     device.IndexLeftHand,
		Class:     device.ClassController,
		ClassName: device.ClassController.String(),
		Connected: true,
	})
	data, err := json.Marshal(msg)
	require.NoError(t, err)

	var decoded WSMessage
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "event", decoded.Type)
	require.NotNil(t, decoded.Event)
	assert.Equal(t, device.IndexLeftHand, decoded.Event.Index)
	assert.Equal(t, "controller", decoded.Event.ClassName)
	assert.True(t, decoded.Event.Connected)
}

func TestSequenceNumbersUniqueAcrossGoroutines(t *testing.T) {
	sess := simrt.NewSession("")
	r := device.NewFullRegistry(nil)
	events := make(chan event.Event)

	h := NewHub(nil)
	go h.Run()

	// A client with a deep buffer so no message is dropped.
	client := &Client{hub: h, logger: h.logger, send: make(chan []byte, 1024)}
	h.Register(client)

	b := NewBroadcaster(h, r, sess, events, time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		b.Run(ctx)
		close(done)
	}()

	const (
		eventCount   = 50
		senders      = 8
		perSender    = 25
		initialSends = senders * perSender
	)

	var wg sync.WaitGroup
	for i := 0; i < senders; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perSender; j++ {
				b.SendInitialState(client)
			}
		}()
	}
	for i := 0; i < eventCount; i++ {
		events <- event.Event{
			Index:     device.IndexHMD,
			Class:     device.ClassHMD,
			ClassName: device.ClassHMD.String(),
			Connected: true,
		}
	}
	wg.Wait()
	close(events)
	<-done

	// Each event produces an event message plus a snapshot.
	total := 2*eventCount + initialSends
	seen := make(map[int64]bool, total)
	for i := 0; i < total; i++ {
		var msg WSMessage
		require.NoError(t, json.Unmarshal(<-client.send, &msg))
		assert.False(t, seen[msg.Seq], "sequence number %d issued twice", msg.Seq)
		seen[msg.Seq] = true
	}
}
