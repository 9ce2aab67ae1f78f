package scheduler

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/azure/ad-insights-bot/internal/config"
)

type MockRunner struct {
	mock.Mock
}

func (m *MockRunner) RunInbox() error {
	args := m.Called()
	return args.Error(0)
}

func TestExpression(t *testing.T) {
	tests := []struct {
		schedule string
		expected string
		wantErr  bool
	}{
		{schedule: "hourly", expected: "0 0 * * * *"},
		{schedule: "daily", expected: "0 0 9 * * *"},
		{schedule: "weekly", expected: "0 0 9 * * MON"},
		{schedule: "monthly", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.schedule, func(t *testing.T) {
			expr, err := Expression(tt.schedule)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, expr)
		})
	}
}

func TestService_StartSchedulesNextRun(t *testing.T) {
	runner := &MockRunner{}
	svc := NewService(&config.Config{ReportSchedule: "hourly", TimeZone: "UTC"}, runner)

	assert.True(t, svc.Next().IsZero())

	require.NoError(t, svc.Start())
	defer svc.Stop()

	next := svc.Next()
	assert.False(t, next.IsZero())
	assert.Equal(t, 0, next.Minute())
	assert.Equal(t, 0, next.Second())
	assert.WithinDuration(t, time.Now(), next, time.Hour+time.Minute)
}

func TestService_StartRejectsUnknownSchedule(t *testing.T) {
	svc := NewService(&config.Config{ReportSchedule: "yearly"}, &MockRunner{})
	assert.Error(t, svc.Start())
}

func TestService_run(t *testing.T) {
	runner := &MockRunner{}
	runner.On("RunInbox").Return(errors.New("inbox unavailable")).Once()

	svc := NewService(&config.Config{ReportSchedule: "daily"}, runner)
	svc.run()

	runner.AssertExpectations(t)
}
