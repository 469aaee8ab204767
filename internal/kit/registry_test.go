package kit

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fathomweb/fathom/internal/config"
	"github.com/fathomweb/fathom/internal/model"
)

// countingDev is a DevServer stub that records construction.
type countingDev struct{}

func (d *countingDev) Start(ctx context.Context, cfg *config.Config, opts StartOptions) (*model.ServerBinding, error) {
	return &model.ServerBinding{Port: opts.Port}, nil
}

// TestRegistry_LazyConstruction verifies that loading one verb's
// collaborator never invokes another verb's factory — the lazy-loading
// guarantee that keeps an unrelated subsystem's failure from blocking
// other commands.
func TestRegistry_LazyConstruction(t *testing.T) {
	devCalls, buildCalls := 0, 0

	r := &Registry{
		Dev: func() (DevServer, error) {
			devCalls++
			return &countingDev{}, nil
		},
		Build: func() (Builder, error) {
			buildCalls++
			t.Fatal("build factory must not run when loading dev")
			return nil, nil
		},
	}

	dev, err := r.LoadDev()
	require.NoError(t, err)
	require.NotNil(t, dev)
	assert.Equal(t, 1, devCalls)
	assert.Equal(t, 0, buildCalls)
}

// TestRegistry_UnwiredVerb verifies that a nil factory yields an error
// naming the verb instead of a nil-pointer panic.
func TestRegistry_UnwiredVerb(t *testing.T) {
	r := &Registry{}

	_, err := r.LoadSync()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"sync"`)
}
