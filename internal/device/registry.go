package device

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/soar/xrbridge/internal/profile"
	"github.com/soar/xrbridge/internal/runtime"
)

// Role is the legacy controller role used for role-to-index queries.
type Role int

const (
	RoleInvalid Role = iota
	RoleLeftHand
	RoleRightHand
)

// DefaultTrackerNameHint is the substring an enumerated device's name must
// contain (case-insensitive) to be treated as a generic tracker. This is a
// heuristic, not a protocol guarantee.
const DefaultTrackerNameHint = "tracker"

var (
	// ErrNoControllerSlots is returned by controller queries on a registry
	// built without the reserved controller slots.
	ErrNoControllerSlots = errors.New("registry has no controller slots")
	// ErrIndexMismatch is returned when a device is appended whose index
	// does not match the slot it would occupy.
	ErrIndexMismatch = errors.New("device index does not match registry slot")
	// ErrRegistryFull is returned when the fixed device table is exhausted.
	ErrRegistryFull = errors.New("registry is full")
)

// Registry is the ordered, index-addressable tracked device list. It is
// shared by every caller for the session's lifetime: per-frame reads take
// the read lock, structural mutation (append, truncate, discovery refresh)
// takes the write lock so readers never observe a half-refreshed table.
type Registry struct {
	// TrackerNameHint overrides DefaultTrackerNameHint when non-empty.
	// Set it before the first discovery refresh.
	TrackerNameHint string

	logger *slog.Logger

	mu      sync.RWMutex
	devices []Device
}

// NewRegistry builds the default single-HMD configuration.
func NewRegistry(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		logger:  logger,
		devices: []Device{NewHMD()},
	}
}

// NewFullRegistry builds the HMD plus both reserved controller slots.
func NewFullRegistry(logger *slog.Logger) *Registry {
	r := NewRegistry(logger)
	r.devices = append(r.devices,
		NewController(profile.LeftHand),
		NewController(profile.RightHand),
	)
	return r
}

// Len returns the number of devices in the registry.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.devices)
}

// Get returns the device at index, bounds-checked. This is the default
// public lookup; an out-of-range index is an expected not-found outcome.
func (r *Registry) Get(index Index) (Device, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if int(index) >= len(r.devices) {
		return nil, false
	}
	return r.devices[index], true
}

// At returns the device at index without a bounds check. It is the fast
// path for callers that already validated the index against Len; indexing
// past the end panics.
func (r *Registry) At(index Index) Device {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.devices[index]
}

// Snapshot copies the current device list. The returned slice is safe to
// iterate without holding the registry lock; connection flags read through
// it stay live since devices are shared, not copied.
func (r *Registry) Snapshot() []Device {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Device, len(r.devices))
	copy(out, r.devices)
	return out
}

// GetByType returns the first device of the given class. Only the HMD and
// controllers are singletons per class; for trackers this returns an
// arbitrary (first) match.
func (r *Registry) GetByType(class Class) (Device, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, d := range r.devices {
		if d.Class() == class {
			return d, true
		}
	}
	return nil, false
}

// Controller returns the controller in the hand's reserved slot. It fails
// only when the registry was built without the reserved controller slots,
// which is a construction-time misconfiguration, not a runtime condition.
func (r *Registry) Controller(hand profile.Hand) (*Controller, error) {
	index := IndexLeftHand
	if hand == profile.RightHand {
		index = IndexRightHand
	}
	d, ok := r.Get(index)
	if !ok {
		return nil, fmt.Errorf("%w: no slot for %s hand", ErrNoControllerSlots, hand)
	}
	c, ok := d.(*Controller)
	if !ok {
		return nil, fmt.Errorf("%w: index %d holds a %s", ErrNoControllerSlots, index, d.Class())
	}
	return c, nil
}

// HMD returns the device at index 0 as the HMD. The HMD, when present,
// always occupies index 0.
func (r *Registry) HMD() (*HMD, error) {
	d, ok := r.Get(IndexHMD)
	if !ok {
		return nil, errors.New("registry is empty")
	}
	h, ok := d.(*HMD)
	if !ok {
		return nil, fmt.Errorf("index 0 holds a %s, not the hmd", d.Class())
	}
	return h, nil
}

// DeviceForRole returns the index of the connected controller filling the
// role. A disconnected controller (or an unknown role) is not-found.
func (r *Registry) DeviceForRole(role Role) (Index, bool) {
	var hand profile.Hand
	switch role {
	case RoleLeftHand:
		hand = profile.LeftHand
	case RoleRightHand:
		hand = profile.RightHand
	default:
		return 0, false
	}
	c, err := r.Controller(hand)
	if err != nil || !c.Connected() {
		return 0, false
	}
	return c.Index(), true
}

// Append adds a device at the next index. The device must have been created
// for exactly that slot.
func (r *Registry) Append(d Device) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.appendLocked(d)
}

func (r *Registry) appendLocked(d Device) error {
	if Index(len(r.devices)) >= MaxDevices {
		return ErrRegistryFull
	}
	if d.Index() != Index(len(r.devices)) {
		return fmt.Errorf("%w: device %d, slot %d", ErrIndexMismatch, d.Index(), len(r.devices))
	}
	r.devices = append(r.devices, d)
	return nil
}

// Truncate discards all devices beyond index n-1.
func (r *Registry) Truncate(n int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.truncateLocked(n)
}

func (r *Registry) truncateLocked(n int) {
	if n < len(r.devices) {
		r.devices = r.devices[:n]
	}
}

// RefreshGenericTrackers rebuilds the generic tracker population from the
// runtime's enumeration extension. A runtime without the extension makes
// this a no-op. Devices survive the filter when they expose a tracking
// space and their advertised name contains the tracker hint. The previous
// tracker set is replaced wholesale: truncation back to the reserved
// boundary and the new appends happen under one write lock, so no reader
// observes stale trackers next to new ones.
func (r *Registry) RefreshGenericTrackers(ctx context.Context, sess runtime.Session) error {
	enum := sess.DeviceEnumerator()
	if enum == nil {
		return nil
	}

	devices, err := enum.EnumerateDevices(ctx)
	if err != nil {
		return fmt.Errorf("enumerate external devices: %w", err)
	}

	hint := strings.ToLower(r.TrackerNameHint)
	if hint == "" {
		hint = DefaultTrackerNameHint
	}
	matches := devices[:0:0]
	for _, d := range devices {
		if d.Space != nil && strings.Contains(strings.ToLower(d.Name), hint) {
			matches = append(matches, d)
		}
	}
	r.logger.Info("refreshing generic trackers", "enumerated", len(devices), "matched", len(matches))

	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.devices) < int(ReservedIndices) {
		return fmt.Errorf("%w: cannot place trackers", ErrNoControllerSlots)
	}
	r.truncateLocked(int(ReservedIndices))
	for _, ext := range matches {
		tracker, err := NewGenericTracker(Index(len(r.devices)), ext)
		if err != nil {
			return err
		}
		if err := r.appendLocked(tracker); err != nil {
			return err
		}
	}
	return nil
}
