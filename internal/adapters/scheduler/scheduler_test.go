package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sojasapi/internal/domain/entities"
	"sojasapi/pkg/logging"
)

type fakeSync struct {
	calls atomic.Int32
	err   error
}

func (f *fakeSync) SyncAll(context.Context) (entities.SyncSummary, error) {
	f.calls.Add(1)
	return entities.SyncSummary{Pages: 1, Events: 2}, f.err
}

func TestStartRunsImmediately(t *testing.T) {
	sync := &fakeSync{}
	s, err := New(sync, time.Hour, logging.Discard())
	require.NoError(t, err)

	require.NoError(t, s.Start(context.Background()))
	t.Cleanup(func() { _ = s.Shutdown() })

	assert.Eventually(t, func() bool { return sync.calls.Load() == 1 }, 2*time.Second, 10*time.Millisecond)
}

func TestRunOnce(t *testing.T) {
	sync := &fakeSync{err: errors.New("remote down")}
	s, err := New(sync, time.Hour, logging.Discard())
	require.NoError(t, err)

	s.RunOnce(context.Background())
	assert.Equal(t, int32(1), sync.calls.Load())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s.RunOnce(ctx)
	assert.Equal(t, int32(1), sync.calls.Load(), "cancelled context skips the run")
}
