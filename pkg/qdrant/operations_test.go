package qdrant

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpContextAppliesConfiguredTimeout(t *testing.T) {
	store := &Store{client: &Client{cfg: DefaultConfig().WithTimeout(5 * time.Second)}}

	ctx, cancel := store.opContext(context.Background())
	defer cancel()

	deadline, ok := ctx.Deadline()
	require.True(t, ok, "each backend call runs under the configured timeout")
	assert.WithinDuration(t, time.Now().Add(5*time.Second), deadline, time.Second)
}

func TestOpContextKeepsCallerDeadline(t *testing.T) {
	store := &Store{client: &Client{cfg: DefaultConfig().WithTimeout(0)}}

	parent, parentCancel := context.WithTimeout(context.Background(), time.Minute)
	defer parentCancel()

	ctx, cancel := store.opContext(parent)
	defer cancel()

	deadline, ok := ctx.Deadline()
	require.True(t, ok)
	parentDeadline, _ := parent.Deadline()
	assert.Equal(t, parentDeadline, deadline, "a zero timeout leaves the caller's deadline in place")
}
