package scheduler

import (
	"bytes"
	"context"
	"errors"
	"log"
	"os"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sangkips/bizhub-api/internal/application/service"
	infraRepo "github.com/sangkips/bizhub-api/internal/infrastructure/repository"
	"github.com/sangkips/bizhub-api/internal/infrastructure/storage"
	"github.com/sangkips/bizhub-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingPurger struct {
	calls   atomic.Int32
	removed int64
	err     error
}

func (p *countingPurger) DeleteExpired(context.Context) (int64, error) {
	p.calls.Add(1)
	return p.removed, p.err
}

func TestCleanupJobRunsEveryPurger(t *testing.T) {
	keys := &countingPurger{removed: 3}
	tokens := &countingPurger{err: errors.New("db down")}

	err := CleanupJob(map[string]Purger{
		"idempotency keys":      keys,
		"password reset tokens": tokens,
	})(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "password reset tokens")
	assert.EqualValues(t, 1, keys.calls.Load())
	assert.EqualValues(t, 1, tokens.calls.Load())
}

func TestAddRejectsBadSpec(t *testing.T) {
	s := New(time.Minute)
	err := s.Add("broken", "not a cron spec", func(context.Context) error { return nil })
	assert.Error(t, err)
}

func TestSchedulerRunsJob(t *testing.T) {
	s := New(time.Minute)
	ran := make(chan struct{}, 1)
	require.NoError(t, s.Add("tick", "@every 1s", func(ctx context.Context) error {
		_, hasDeadline := ctx.Deadline()
		assert.True(t, hasDeadline)
		select {
		case ran <- struct{}{}:
		default:
		}
		return nil
	}))

	s.Start()
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		s.Stop(ctx)
	}()

	select {
	case <-ran:
	case <-time.After(3 * time.Second):
		t.Fatal("job did not run")
	}
}

func TestSweepJobLogsOneSummary(t *testing.T) {
	db := testutil.NewDB(t)
	store, err := storage.NewLocalStore(t.TempDir())
	require.NoError(t, err)
	docs := infraRepo.NewComplianceDocumentRepository(db)
	businesses := infraRepo.NewBusinessRepository(db)
	sweeper := service.NewComplianceSweeper(
		service.NewComplianceService(docs, businesses, store, nil),
		businesses, docs, nil, nil,
		service.SweepConfig{Concurrency: 1},
	)

	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	require.NoError(t, SweepJob(sweeper)(context.Background()))
	assert.Equal(t, 1, strings.Count(buf.String(), "Compliance sweep:"))
}
