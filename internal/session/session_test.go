package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewContext(t *testing.T) {
	t.Parallel()
	ctx := NewContext()

	require.NotNil(t, ctx)
	assert.Equal(t, StateNone, ctx.State())
	assert.Empty(t, ctx.Value())
}

func TestContext_Lifecycle(t *testing.T) {
	t.Parallel()
	ctx := NewContext()

	ctx.StartBuild("bp1")
	assert.Equal(t, StateBuilding, ctx.State())
	assert.Equal(t, "bp1", ctx.Value())

	ctx.Connect()
	assert.Equal(t, StateConnected, ctx.State())
	assert.Equal(t, "bp1", ctx.Value(), "focus value carries over as cluster id")

	ctx.Reset()
	assert.Equal(t, StateNone, ctx.State())
	assert.Empty(t, ctx.Value())
}

func TestContext_Guards(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name      string
		setup     func(*Context)
		canBuild  bool
		canAssign bool
		canCreate bool
		canDelete bool
	}{
		{
			name:     "no focus",
			setup:    func(*Context) {},
			canBuild: true,
		},
		{
			name:      "building",
			setup:     func(c *Context) { c.StartBuild("bp1") },
			canAssign: true,
			canCreate: true,
		},
		{
			name: "connected",
			setup: func(c *Context) {
				c.StartBuild("bp1")
				c.Connect()
			},
			canDelete: true,
		},
		{
			name: "deleted",
			setup: func(c *Context) {
				c.StartBuild("bp1")
				c.Connect()
				c.Reset()
			},
			canBuild: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ctx := NewContext()
			tt.setup(ctx)

			assert.Equal(t, tt.canBuild, ctx.CanBuild())
			assert.Equal(t, tt.canAssign, ctx.CanAssign())
			assert.Equal(t, tt.canAssign, ctx.CanPreview(), "preview tracks assign availability")
			assert.Equal(t, tt.canCreate, ctx.CanCreate())
			assert.Equal(t, tt.canDelete, ctx.CanDelete())
		})
	}
}

func TestState_String(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "none", StateNone.String())
	assert.Equal(t, "building", StateBuilding.String())
	assert.Equal(t, "connected", StateConnected.String())
}
