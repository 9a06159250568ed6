package profile

// ControllerType is the legacy controller family name a profile reports.
type ControllerType string

const (
	TypeViveController ControllerType = "vive_controller"
	TypeKnuckles       ControllerType = "knuckles"
	TypeOculusTouch    ControllerType = "oculus_touch"
	TypeViveTracker    ControllerType = "vive_tracker"
)

type entry struct {
	ctype ControllerType
	prof  Profile
	legal map[string]struct{}
}

// The process-wide profile table. Built once at init, read-only afterwards,
// so it is safe for concurrent access without locking.
var registry = buildRegistry([]struct {
	ctype ControllerType
	prof  Profile
}{
	// Supported interaction profiles, in registration order.
	{TypeViveController, ViveWands},
	{TypeKnuckles, Knuckles},
	{TypeOculusTouch, Touch},
	{TypeViveController, SimpleController},
	{TypeViveTracker, ViveTracker},
})

func buildRegistry(list []struct {
	ctype ControllerType
	prof  Profile
}) []entry {
	entries := make([]entry, 0, len(list))
	for _, item := range list {
		entries = append(entries, entry{
			ctype: item.ctype,
			prof:  item.prof,
			legal: legalSet(item.prof),
		})
	}
	return entries
}

func legalSet(p Profile) map[string]struct{} {
	set := make(map[string]struct{})
	for _, path := range p.LegalPaths() {
		set[path] = struct{}{}
	}
	return set
}

// Lookup returns the registered profile with the given runtime path. A miss
// means the hardware is not recognized; it is an expected outcome, not an
// error. Lookup is a linear scan: the table is small and this only runs at
// session setup.
func Lookup(path string) (Profile, bool) {
	for _, e := range registry {
		if e.prof.Path() == path {
			return e.prof, true
		}
	}
	return nil, false
}

// TypeOf returns the legacy controller family for a registered profile.
func TypeOf(p Profile) (ControllerType, bool) {
	for _, e := range registry {
		if e.prof == p {
			return e.ctype, true
		}
	}
	return "", false
}

// ForEach visits every registered profile in registration order. The visit
// stops early when fn returns false.
func ForEach(fn func(Profile) bool) {
	for _, e := range registry {
		if !fn(e.prof) {
			return
		}
	}
}

// Count returns the number of registered profiles.
func Count() int {
	return len(registry)
}

// legal reports whether a fully qualified path is in the profile's
// legal-path set, using the set cached at registration. Profiles outside
// the registry fall back to building the set on the fly.
func legal(p Profile, full string) bool {
	for _, e := range registry {
		if e.prof == p {
			_, ok := e.legal[full]
			return ok
		}
	}
	_, ok := legalSet(p)[full]
	return ok
}
