// Package event synthesizes device connect/disconnect events from the
// registry's live connection flags, for callers that poll a legacy event
// queue instead of observing the action system.
package event

import (
	"context"
	"log/slog"
	"time"

	"github.com/soar/xrbridge/internal/device"
)

// Event is one connection-state transition for a tracked device.
type Event struct {
	Index     device.Index `json:"index"`
	Class     device.Class `json:"-"`
	ClassName string       `json:"class"`
	Connected bool         `json:"connected"`
}

const defaultInterval = 50 * time.Millisecond

// lastState is what the poller remembers per device between passes: the
// connection flag and the class, so a device removed by truncation can
// still be reported accurately.
type lastState struct {
	connected bool
	class     device.Class
}

// Poller compares each device's connection flag against its last observed
// state and emits an Event per transition. Connection flags are atomics, so
// polling never contends with pose or property reads.
type Poller struct {
	registry *device.Registry
	interval time.Duration
	logger   *slog.Logger

	last   map[device.Index]lastState
	events chan Event
}

// NewPoller builds a poller over the registry. interval <= 0 uses a 50ms
// default.
func NewPoller(registry *device.Registry, interval time.Duration, logger *slog.Logger) *Poller {
	if interval <= 0 {
		interval = defaultInterval
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Poller{
		registry: registry,
		interval: interval,
		logger:   logger,
		last:     make(map[device.Index]lastState),
		events:   make(chan Event, 64),
	}
}

// Events returns the channel on which transitions are sent.
func (p *Poller) Events() <-chan Event {
	return p.events
}

// Run polls until the context is cancelled.
func (p *Poller) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.Poll()
		}
	}
}

// Poll performs one comparison pass. Exported so tests and event-queue
// glue can drive it synchronously.
func (p *Poller) Poll() {
	devices := p.registry.Snapshot()
	seen := make(map[device.Index]bool, len(devices))

	for _, d := range devices {
		index := d.Index()
		connected := d.Connected()
		seen[index] = true

		prev, known := p.last[index]
		if known && prev.connected == connected {
			continue
		}
		p.last[index] = lastState{connected: connected, class: d.Class()}
		if !known && !connected {
			// Never-connected devices don't produce a deactivation.
			continue
		}
		p.emit(Event{
			Index:     index,
			Class:     d.Class(),
			ClassName: d.Class().String(),
			Connected: connected,
		})
	}

	// Devices truncated away by a discovery refresh deactivate, reported
	// under the class they were last seen with.
	for index, prev := range p.last {
		if seen[index] {
			continue
		}
		delete(p.last, index)
		if prev.connected {
			p.emit(Event{
				Index:     index,
				Class:     prev.class,
				ClassName: prev.class.String(),
				Connected: false,
			})
		}
	}
}

func (p *Poller) emit(ev Event) {
	p.logger.Debug("device connection changed", "index", ev.Index, "class", ev.ClassName, "connected", ev.Connected)
	select {
	case p.events <- ev:
	default:
		// Drop if the channel is full to avoid blocking the poll loop
	}
}
