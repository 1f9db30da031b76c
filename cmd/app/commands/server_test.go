package commands

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/cardwatch/internal/config"
)

// fakeServer blocks in Start until Shutdown or returns startErr immediately.
type fakeServer struct {
	startErr error
	stopped  chan struct{}
	shutdown atomic.Int32
}

func newFakeServer(startErr error) *fakeServer {
	return &fakeServer{startErr: startErr, stopped: make(chan struct{})}
}

func (s *fakeServer) Start(ctx context.Context) error {
	if s.startErr != nil {
		return s.startErr
	}
	<-s.stopped
	return nil
}

func (s *fakeServer) Shutdown(ctx context.Context) error {
	if s.shutdown.Add(1) == 1 {
		close(s.stopped)
	}
	return nil
}

func TestServeUntilDone(t *testing.T) {
	cfg := &config.Config{DBConnMaxLifetime: time.Second}
	logger := discardLogger()

	t.Run("cancelled", func(t *testing.T) {
		api := newFakeServer(nil)
		metrics := newFakeServer(nil)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := serveUntilDone(ctx, cfg, logger, map[string]runnable{"api": api, "metrics": metrics})

		require.NoError(t, err)
		assert.Equal(t, int32(1), api.shutdown.Load())
		assert.Equal(t, int32(1), metrics.shutdown.Load())
	})

	t.Run("server-failure-stops-others", func(t *testing.T) {
		failure := errors.New("address already in use")
		api := newFakeServer(nil)
		metrics := newFakeServer(failure)

		err := serveUntilDone(context.Background(), cfg, logger, map[string]runnable{"api": api, "metrics": metrics})

		require.ErrorIs(t, err, failure)
		assert.Contains(t, err.Error(), "metrics error")
		assert.Equal(t, int32(1), api.shutdown.Load())
	})
}
