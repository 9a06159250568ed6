// Package simrt is a scripted in-memory implementation of the runtime
// abstraction. The monitor binary hosts the device layer on top of it, and
// the package doubles as the test fixture for pose, property and discovery
// behavior: spaces can be moved or marked lost, the device enumerator can
// be rescripted or fail on demand, and display time only advances when told.
package simrt

import (
	"context"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/soar/xrbridge/internal/runtime"
)

// Session is a simulated runtime session.
type Session struct {
	systemName string
	displayHz  float64
	now        atomic.Int64
	interner   *runtime.Interner

	mu      sync.RWMutex
	origins map[runtime.TrackingOrigin]runtime.Space
	view    *TrackedSpace
	enum    *Enumerator
}

// NewSession builds a session with identity reference spaces, a head space
// at standing height and an empty device enumerator.
func NewSession(systemName string) *Session {
	if systemName == "" {
		systemName = "xrbridge simulator"
	}
	s := &Session{
		systemName: systemName,
		displayHz:  90,
		interner:   runtime.NewInterner(),
		origins: map[runtime.TrackingOrigin]runtime.Space{
			runtime.OriginSeated:   &referenceSpace{},
			runtime.OriginStanding: &referenceSpace{},
			runtime.OriginRaw:      &referenceSpace{},
		},
		view: NewTrackedSpace(runtime.Location{
			Pose: runtime.Pose{
				Position:    runtime.Vec3{Y: 1.7},
				Orientation: runtime.Quat{W: 1},
			},
		}),
		enum: NewEnumerator(),
	}
	return s
}

func (s *Session) SystemName() string { return s.systemName }

func (s *Session) DisplayFrequency() float64 { return s.displayHz }

// DisplayTime returns the simulated display time. It only moves when
// Advance is called, keeping pose tests deterministic.
func (s *Session) DisplayTime() runtime.Time {
	return runtime.Time(s.now.Load())
}

// Advance moves the simulated display time forward.
func (s *Session) Advance(d time.Duration) {
	s.now.Add(int64(d))
}

func (s *Session) SpaceForOrigin(origin runtime.TrackingOrigin) runtime.Space {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.origins[origin]
}

// ViewSpace returns the simulated head space.
func (s *Session) ViewSpace() runtime.Space {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.view
}

// Head returns the head space for scripting.
func (s *Session) Head() *TrackedSpace {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.view
}

// DeviceEnumerator returns the scripted enumerator, or nil after
// DisableEnumerator (simulating a runtime without the extension).
func (s *Session) DeviceEnumerator() runtime.DeviceEnumerator {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.enum == nil {
		return nil
	}
	return s.enum
}

// Enumerator returns the scripted enumerator for test setup, or nil when
// disabled.
func (s *Session) Enumerator() *Enumerator {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.enum
}

// DisableEnumerator removes the enumeration extension from the session.
func (s *Session) DisableEnumerator() {
	s.mu.Lock()
	s.enum = nil
	s.mu.Unlock()
}

// Resolve interns a path string, playing the runtime's string-to-path role.
func (s *Session) Resolve(path string) runtime.Path {
	return s.interner.Intern(path)
}

// PathString reverses Resolve.
func (s *Session) PathString(p runtime.Path) (string, bool) {
	return s.interner.Lookup(p)
}

// referenceSpace is a fixed identity frame.
type referenceSpace struct{}

func (*referenceSpace) Relate(runtime.Space, runtime.Time) (runtime.Location, bool, error) {
	return runtime.Location{Pose: runtime.Pose{Orientation: runtime.Quat{W: 1}}}, true, nil
}

// TrackedSpace is a scriptable space: its location can be moved, tracking
// can be marked lost, and Relate can be forced to fail.
type TrackedSpace struct {
	mu   sync.RWMutex
	loc  runtime.Location
	lost bool
	err  error
}

func NewTrackedSpace(loc runtime.Location) *TrackedSpace {
	if loc.Pose.Orientation == (runtime.Quat{}) {
		loc.Pose.Orientation = runtime.Quat{W: 1}
	}
	return &TrackedSpace{loc: loc}
}

// MoveTo repositions the space.
func (t *TrackedSpace) MoveTo(pos runtime.Vec3) {
	t.mu.Lock()
	t.loc.Pose.Position = pos
	t.mu.Unlock()
}

// SetLost marks tracking as lost or recovered.
func (t *TrackedSpace) SetLost(lost bool) {
	t.mu.Lock()
	t.lost = lost
	t.mu.Unlock()
}

// FailWith forces Relate to return err until cleared with nil.
func (t *TrackedSpace) FailWith(err error) {
	t.mu.Lock()
	t.err = err
	t.mu.Unlock()
}

func (t *TrackedSpace) Relate(_ runtime.Space, _ runtime.Time) (runtime.Location, bool, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.err != nil {
		return runtime.Location{}, false, t.err
	}
	if t.lost {
		return runtime.Location{}, false, nil
	}
	return t.loc, true, nil
}

// OrbitSpace circles the origin at a fixed radius, positioned by the
// relate-time display time. Used by the monitor's demo devices.
type OrbitSpace struct {
	Radius float64
	Height float64
	Period time.Duration
	Phase  float64
}

func (o *OrbitSpace) Relate(_ runtime.Space, at runtime.Time) (runtime.Location, bool, error) {
	period := o.Period
	if period <= 0 {
		period = 10 * time.Second
	}
	angle := o.Phase + 2*math.Pi*float64(at)/float64(period.Nanoseconds())
	angular := 2 * math.Pi / period.Seconds()
	return runtime.Location{
		Pose: runtime.Pose{
			Position: runtime.Vec3{
				X: o.Radius * math.Cos(angle),
				Y: o.Height,
				Z: o.Radius * math.Sin(angle),
			},
			Orientation: runtime.Quat{W: 1},
		},
		LinearVelocity: runtime.Vec3{
			X: -o.Radius * angular * math.Sin(angle),
			Z: o.Radius * angular * math.Cos(angle),
		},
		AngularVelocity: runtime.Vec3{Y: angular},
	}, true, nil
}

// Enumerator is a scripted hardware-enumeration extension.
type Enumerator struct {
	mu      sync.Mutex
	devices []runtime.ExternalDevice
	nextErr error
}

func NewEnumerator() *Enumerator {
	return &Enumerator{}
}

// SetDevices replaces the scripted external device list.
func (e *Enumerator) SetDevices(devices []runtime.ExternalDevice) {
	e.mu.Lock()
	e.devices = append([]runtime.ExternalDevice(nil), devices...)
	e.mu.Unlock()
}

// FailNext makes the next EnumerateDevices call return err.
func (e *Enumerator) FailNext(err error) {
	e.mu.Lock()
	e.nextErr = err
	e.mu.Unlock()
}

func (e *Enumerator) EnumerateDevices(ctx context.Context) ([]runtime.ExternalDevice, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.nextErr != nil {
		err := e.nextErr
		e.nextErr = nil
		return nil, err
	}
	return append([]runtime.ExternalDevice(nil), e.devices...), nil
}
