package runtime

import "sync"

// Path is an interned handle for a runtime path string.
type Path uint64

// NullPath is the zero path handle; it never names a real path.
const NullPath Path = 0

// PathResolver interns a path string into a handle.
type PathResolver func(string) Path

// Binder wraps a PathResolver with the hand-expansion helpers the
// interaction profiles use to build legacy bindings.
type Binder struct {
	Resolve PathResolver
}

// LeftRight resolves the sub-path under both hands.
func (b Binder) LeftRight(path string) []Path {
	return []Path{
		b.Resolve("/user/hand/left/" + path),
		b.Resolve("/user/hand/right/" + path),
	}
}

// Left resolves the sub-path under the left hand only.
func (b Binder) Left(path string) []Path {
	return []Path{b.Resolve("/user/hand/left/" + path)}
}

// Right resolves the sub-path under the right hand only.
func (b Binder) Right(path string) []Path {
	return []Path{b.Resolve("/user/hand/right/" + path)}
}

// Interner assigns stable handles to path strings. Safe for concurrent use.
type Interner struct {
	mu      sync.Mutex
	forward map[string]Path
	reverse map[Path]string
	next    Path
}

func NewInterner() *Interner {
	return &Interner{
		forward: make(map[string]Path),
		reverse: make(map[Path]string),
		next:    1,
	}
}

// Intern returns the handle for s, allocating one on first use.
// The empty string always interns to NullPath.
func (i *Interner) Intern(s string) Path {
	if s == "" {
		return NullPath
	}
	i.mu.Lock()
	defer i.mu.Unlock()
	if p, ok := i.forward[s]; ok {
		return p
	}
	p := i.next
	i.next++
	i.forward[s] = p
	i.reverse[p] = s
	return p
}

// Lookup returns the string for a previously interned handle.
func (i *Interner) Lookup(p Path) (string, bool) {
	i.mu.Lock()
	defer i.mu.Unlock()
	s, ok := i.reverse[p]
	return s, ok
}
