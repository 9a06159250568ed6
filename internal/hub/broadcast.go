package hub

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/soar/xrbridge/internal/device"
	"github.com/soar/xrbridge/internal/event"
	"github.com/soar/xrbridge/internal/runtime"
)

const defaultSnapshotInterval = time.Second

// Broadcaster forwards device connection events to the hub and sends
// periodic full registry snapshots so late or lagging clients converge.
type Broadcaster struct {
	hub      *Hub
	registry *device.Registry
	session  runtime.Session
	events   <-chan event.Event
	interval time.Duration
	logger   *slog.Logger

	// seq is shared between the Run loop and per-connection initial
	// snapshots, so it must be atomic.
	seq atomic.Int64
}

func NewBroadcaster(h *Hub, registry *device.Registry, session runtime.Session, events <-chan event.Event, interval time.Duration) *Broadcaster {
	if interval <= 0 {
		interval = defaultSnapshotInterval
	}
	return &Broadcaster{
		hub:      h,
		registry: registry,
		session:  session,
		events:   events,
		interval: interval,
		logger:   h.logger,
	}
}

// Run broadcasts until the context is cancelled or the event channel closes.
func (b *Broadcaster) Run(ctx context.Context) {
	ticker := time.NewTicker(b.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case ev, ok := <-b.events:
			if !ok {
				return
			}
			b.send(NewEventMessage(b.seq.Add(1), ev))
			// Follow the transition with a snapshot so clients don't
			// need to patch state from events.
			b.send(NewSnapshotMessage(b.seq.Add(1), b.Status()))

		case <-ticker.C:
			b.send(NewSnapshotMessage(b.seq.Add(1), b.Status()))
		}
	}
}

// SendInitialState sends the current full snapshot to a new client.
func (b *Broadcaster) SendInitialState(c *Client) {
	data, err := json.Marshal(NewSnapshotMessage(b.seq.Add(1), b.Status()))
	if err != nil {
		b.logger.Error("marshal initial snapshot", "error", err)
		return
	}
	select {
	case c.send <- data:
	default:
	}
}

// Status builds the device table view sent to clients. Property errors
// (disconnected devices, inapplicable properties) leave fields empty rather
// than failing the snapshot.
func (b *Broadcaster) Status() []DeviceStatus {
	devices := b.registry.Snapshot()
	out := make([]DeviceStatus, 0, len(devices))
	for _, d := range devices {
		status := DeviceStatus{
			Index:     d.Index(),
			Class:     d.Class().String(),
			Connected: d.Connected(),
			Activity:  d.Activity().String(),
		}
		if p := d.Profile(); p != nil {
			status.Profile = p.Path()
		}
		if model, err := d.StringProperty(b.session, device.PropModelNumber); err == nil {
			status.Model = model
		}
		if serial, err := d.StringProperty(b.session, device.PropSerialNumber); err == nil {
			status.Serial = serial
		}
		if ctype, err := d.StringProperty(b.session, device.PropControllerType); err == nil {
			status.ControllerType = ctype
		}
		if loc, ok, err := d.Pose(b.session, runtime.OriginStanding); err == nil && ok {
			status.Location = &loc
		}
		out = append(out, status)
	}
	return out
}

func (b *Broadcaster) send(msg *WSMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		b.logger.Error("marshal monitor message", "type", msg.Type, "error", err)
		return
	}
	b.hub.Broadcast(data)
}
