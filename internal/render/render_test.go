package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMultiValueMap(t *testing.T) {
	t.Parallel()
	out := MultiValueMap(map[string][]string{
		"worker": {"h2", "h3"},
		"master": {"h1"},
	}, "HOSTGROUP", "HOST")

	assert.Contains(t, out, "HOSTGROUP")
	assert.Contains(t, out, "HOST")
	assert.Contains(t, out, "master")
	assert.Contains(t, out, "h1")
	assert.Contains(t, out, "h2")
	assert.Contains(t, out, "h3")

	// Sorted: master rows come before worker rows.
	require.Less(t, strings.Index(out, "master"), strings.Index(out, "worker"))
}

func TestMultiValueMap_EmptyGroupStillListed(t *testing.T) {
	t.Parallel()
	out := MultiValueMap(map[string][]string{
		"master": {},
	}, "HOSTGROUP", "HOST")

	assert.Contains(t, out, "master")
}

func TestMultiValueMap_Deterministic(t *testing.T) {
	t.Parallel()
	m := map[string][]string{"a": {"1"}, "b": {"2"}, "c": {"3"}}
	first := MultiValueMap(m, "K", "V")
	for range 10 {
		assert.Equal(t, first, MultiValueMap(m, "K", "V"))
	}
}

func TestList(t *testing.T) {
	t.Parallel()
	out := List("BLUEPRINT", []string{"bp1", "bp2"})

	assert.Contains(t, out, "BLUEPRINT")
	assert.Contains(t, out, "bp1")
	assert.Contains(t, out, "bp2")
}
