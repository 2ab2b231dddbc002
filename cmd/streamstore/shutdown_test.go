package main

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInOrder_RunsStepsSequentially(t *testing.T) {
	var calls []string
	serverDone := false
	op := inOrder(
		stopStep{name: "web-server", stop: func(ctx context.Context) error {
			calls = append(calls, "web-server")
			serverDone = true
			return nil
		}},
		stopStep{name: "application", stop: func(ctx context.Context) error {
			require.True(t, serverDone, "application released before the server drained")
			calls = append(calls, "application")
			return nil
		}},
	)
	require.NoError(t, op(context.Background()))
	assert.Equal(t, []string{"web-server", "application"}, calls)
}

func TestInOrder_ContinuesAfterFailure(t *testing.T) {
	released := false
	op := inOrder(
		stopStep{name: "web-server", stop: func(ctx context.Context) error {
			return errors.New("drain timeout")
		}},
		stopStep{name: "application", stop: func(ctx context.Context) error {
			released = true
			return errors.New("second")
		}},
	)
	err := op(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stop web-server")
	assert.Contains(t, err.Error(), "drain timeout")
	assert.True(t, released)
}
