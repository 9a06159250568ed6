package hub

import (
	"time"

	"github.com/soar/xrbridge/internal/device"
	"github.com/soar/xrbridge/internal/event"
	"github.com/soar/xrbridge/internal/runtime"
)

// DeviceStatus is one registry entry as shown to monitor clients.
type DeviceStatus struct {
	Index          device.Index      `json:"index"`
	Class          string            `json:"class"`
	Connected      bool              `json:"connected"`
	Activity       string            `json:"activity"`
	Profile        string            `json:"profile,omitempty"`
	Model          string            `json:"model,omitempty"`
	Serial         string            `json:"serial,omitempty"`
	ControllerType string            `json:"controllerType,omitempty"`
	Location       *runtime.Location `json:"location,omitempty"`
}

// WSMessage represents a WebSocket message sent from server to client.
type WSMessage struct {
	Type      string         `json:"type"`      // Message type: "snapshot" or "event"
	Seq       int64          `json:"seq"`       // Sequence number for ordering
	Timestamp int64          `json:"timestamp"` // Unix timestamp in milliseconds
	Event     *event.Event   `json:"event,omitempty"`
	Devices   []DeviceStatus `json:"devices,omitempty"`
}

// NewSnapshotMessage creates a "snapshot" message with the full device table.
func NewSnapshotMessage(seq int64, devices []DeviceStatus) *WSMessage {
	return &WSMessage{
		Type:      "snapshot",
		Seq:       seq,
		Timestamp: time.Now().UnixMilli(),
		Devices:   devices,
	}
}

// NewEventMessage creates an "event" message for a connection transition.
func NewEventMessage(seq int64, ev event.Event) *WSMessage {
	return &WSMessage{
		Type:      "event",
		Seq:       seq,
		Timestamp: time.Now().UnixMilli(),
		Event:     &ev,
	}
}

// ClientMessage represents a message sent from the client to the server.
type ClientMessage struct {
	Type string `json:"type"` // "refresh_trackers"
}
