package jobs

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"foodtruck/internal/core/application/usecases/commands"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOutboxRelayer struct {
	mock.Mock
}

func (m *MockOutboxRelayer) Handle(ctx context.Context, cmd commands.RelayOutboxCommand) (int, error) {
	args := m.Called(ctx, cmd)
	return args.Int(0), args.Error(1)
}

func TestOutboxRelayJob_Run(t *testing.T) {
	relayer := new(MockOutboxRelayer)
	relayer.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.RelayOutboxCommand) bool {
		return cmd.BatchSize() == 25
	})).Return(3, nil).Once()

	var buf bytes.Buffer
	job := NewOutboxRelayJob(relayer, "", 25, slog.New(slog.NewTextHandler(&buf, nil)))
	job.Run()

	relayer.AssertExpectations(t)
	assert.NotContains(t, buf.String(), "failed")
}

func TestOutboxRelayJob_RunLogsFailure(t *testing.T) {
	relayer := new(MockOutboxRelayer)
	relayer.On("Handle", mock.Anything, mock.Anything).Return(1, errors.New("broker unreachable")).Once()

	var buf bytes.Buffer
	job := NewOutboxRelayJob(relayer, "", 0, slog.New(slog.NewTextHandler(&buf, nil)))
	job.Run()

	relayer.AssertExpectations(t)
	assert.Contains(t, buf.String(), "Outbox relay job failed")
	assert.Contains(t, buf.String(), "broker unreachable")
	assert.Contains(t, buf.String(), "component=outbox_relay_job")
}

func TestOutboxRelayJob_Defaults(t *testing.T) {
	job := NewOutboxRelayJob(new(MockOutboxRelayer), "", 0, slog.New(slog.DiscardHandler))

	assert.Equal(t, DefaultOutboxRelaySchedule, job.schedule)
	assert.Equal(t, commands.DefaultRelayBatchSize, job.batchSize)
}

func TestOutboxRelayJob_StartRejectsInvalidSchedule(t *testing.T) {
	job := NewOutboxRelayJob(new(MockOutboxRelayer), "every now and then", 10, slog.New(slog.DiscardHandler))

	require.Error(t, job.Start())
}

func TestOutboxRelayJob_StartStop(t *testing.T) {
	job := NewOutboxRelayJob(new(MockOutboxRelayer), "@every 1h", 10, slog.New(slog.DiscardHandler))

	require.NoError(t, job.Start())
	job.Stop()
}
