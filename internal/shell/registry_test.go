package shell

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bpshell/bpsh/internal/management/fakes"
	"github.com/bpshell/bpsh/internal/session"
	"github.com/bpshell/bpsh/internal/workflow"
)

func newTestRegistry(t *testing.T) ([]Command, *workflow.Workflow) {
	t.Helper()
	client := fakes.NewClient(map[string]map[string][]string{
		"bp1": {
			"master": {"NAMENODE"},
			"worker": {"DATANODE"},
		},
	})
	w := workflow.New(client, session.NewContext())
	return Registry(w), w
}

func names(cmds []Command) []string {
	out := make([]string, 0, len(cmds))
	for _, cmd := range cmds {
		out = append(out, cmd.Name)
	}
	return out
}

func TestAvailable_NoFocus(t *testing.T) {
	t.Parallel()
	reg, _ := newTestRegistry(t)

	assert.Equal(t, []string{"blueprints", "cluster build", "hello"}, names(Available(reg)))
}

func TestAvailable_Building(t *testing.T) {
	t.Parallel()
	reg, w := newTestRegistry(t)
	w.StartBuild(context.Background(), "bp1")

	assert.Equal(t,
		[]string{"blueprints", "cluster assign", "cluster preview", "cluster create", "hello"},
		names(Available(reg)))
}

func TestAvailable_Connected(t *testing.T) {
	t.Parallel()
	reg, w := newTestRegistry(t)
	w.StartBuild(context.Background(), "bp1")
	require.Equal(t, "Successfully created cluster", w.CreateCluster(context.Background()))

	assert.Equal(t, []string{"blueprints", "cluster delete", "hello"}, names(Available(reg)))
}

func TestAvailable_ReevaluatedAfterEachCommand(t *testing.T) {
	t.Parallel()
	reg, w := newTestRegistry(t)
	ctx := context.Background()

	assert.Contains(t, names(Available(reg)), "cluster build")

	w.StartBuild(ctx, "bp1")
	assert.NotContains(t, names(Available(reg)), "cluster build")
	assert.Contains(t, names(Available(reg)), "cluster create")

	w.CreateCluster(ctx)
	assert.Equal(t, []string{"blueprints", "cluster delete", "hello"}, names(Available(reg)))

	w.DeleteCluster(ctx)
	assert.Contains(t, names(Available(reg)), "cluster build")
}

func TestDispatch(t *testing.T) {
	t.Parallel()
	reg, _ := newTestRegistry(t)
	ctx := context.Background()

	out, err := Dispatch(ctx, reg, "cluster build", map[string]string{"blueprint": "bp1"})
	require.NoError(t, err)
	assert.Contains(t, out, "NAMENODE")

	out, err = Dispatch(ctx, reg, "cluster assign", map[string]string{"host": "h1", "hostGroup": "master"})
	require.NoError(t, err)
	assert.Equal(t, "h1 has been added to master", out)

	out, err = Dispatch(ctx, reg, "cluster preview", nil)
	require.NoError(t, err)
	assert.Contains(t, out, "h1")
}

func TestDispatch_GuardBlocksUnavailableCommand(t *testing.T) {
	t.Parallel()
	reg, _ := newTestRegistry(t)

	_, err := Dispatch(context.Background(), reg, "cluster create", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not available")
}

func TestDispatch_UnknownCommand(t *testing.T) {
	t.Parallel()
	reg, _ := newTestRegistry(t)

	_, err := Dispatch(context.Background(), reg, "cluster explode", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown command")
}

func TestDispatch_Hello(t *testing.T) {
	t.Parallel()
	reg, _ := newTestRegistry(t)

	out, err := Dispatch(context.Background(), reg, "hello", nil)
	require.NoError(t, err)
	assert.Equal(t, Banner(), out)
	assert.Contains(t, out, "blueprint provisioning shell")
}

func TestDispatch_Blueprints(t *testing.T) {
	t.Parallel()
	reg, _ := newTestRegistry(t)

	out, err := Dispatch(context.Background(), reg, "blueprints", nil)
	require.NoError(t, err)
	assert.Contains(t, out, "bp1")
}
