package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupByProfilePath(t *testing.T) {
	for _, want := range []Profile{ViveWands, Knuckles, Touch, SimpleController, ViveTracker} {
		got, ok := Lookup(want.Path())
		require.True(t, ok, "profile %s not found", want.Path())
		assert.Same(t, want, got)
	}
}

func TestLookupMissIsNotAnError(t *testing.T) {
	got, ok := Lookup("/interaction_profiles/acme/unobtainium_controller")
	assert.False(t, ok)
	assert.Nil(t, got)
}

func TestForEachVisitsRegistrationOrder(t *testing.T) {
	var paths []string
	ForEach(func(p Profile) bool {
		paths = append(paths, p.Path())
		return true
	})
	assert.Equal(t, []string{
		"/interaction_profiles/htc/vive_controller",
		"/interaction_profiles/valve/index_controller",
		"/interaction_profiles/oculus/touch_controller",
		"/interaction_profiles/khr/simple_controller",
		"/interaction_profiles/htc/vive_tracker_htcx",
	}, paths)
	assert.Equal(t, len(paths), Count())
}

func TestForEachStopsEarly(t *testing.T) {
	visits := 0
	ForEach(func(Profile) bool {
		visits++
		return false
	})
	assert.Equal(t, 1, visits)
}

func TestTypeOf(t *testing.T) {
	ctype, ok := TypeOf(Knuckles)
	require.True(t, ok)
	assert.Equal(t, TypeKnuckles, ctype)

	// The simple controller impersonates a wand for legacy callers.
	ctype, ok = TypeOf(SimpleController)
	require.True(t, ok)
	assert.Equal(t, TypeViveController, ctype)

	_, ok = TypeOf(&ruleProfile{path: "/interaction_profiles/test/unregistered"})
	assert.False(t, ok)
}
