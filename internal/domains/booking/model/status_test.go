package model_test

import (
	"testing"

	"github.com/lucasaveiro/service-scheduler/internal/domains/booking/model"

	"github.com/stretchr/testify/assert"
)

func TestStatus_Next(t *testing.T) {
	tests := []struct {
		from     model.Status
		expected model.Status
		ok       bool
	}{
		{from: model.StatusPending, expected: model.StatusConfirmed, ok: true},
		{from: model.StatusConfirmed, expected: model.StatusInProgress, ok: true},
		{from: model.StatusInProgress, expected: model.StatusCompleted, ok: true},
		{from: model.StatusCompleted, ok: false},
		{from: model.StatusCancelled, ok: false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from), func(t *testing.T) {
			next, ok := tt.from.Next()

			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, next)
		})
	}
}

func TestStatus_PendingReachesCompletedOnlyInOrder(t *testing.T) {
	status := model.StatusPending
	path := []model.Status{status}

	for {
		next, ok := status.Next()
		if !ok {
			break
		}

		assert.True(t, model.CanTransition(status, next))
		status = next
		path = append(path, status)
	}

	assert.Equal(t, []model.Status{model.StatusPending, model.StatusConfirmed, model.StatusInProgress, model.StatusCompleted}, path)
	assert.False(t, model.CanTransition(model.StatusPending, model.StatusCompleted))
}

func TestStatus_CanCancel(t *testing.T) {
	assert.True(t, model.StatusPending.CanCancel())
	assert.True(t, model.StatusConfirmed.CanCancel())
	assert.True(t, model.StatusInProgress.CanCancel())
	assert.False(t, model.StatusCompleted.CanCancel())
	assert.False(t, model.StatusCancelled.CanCancel())
}

func TestStatus_CanDelete(t *testing.T) {
	for _, status := range model.Statuses {
		assert.Equal(t, status == model.StatusPending, status.CanDelete(), string(status))
	}
}

func TestStatus_TerminalHaveNoTransitions(t *testing.T) {
	for _, to := range model.Statuses {
		assert.False(t, model.CanTransition(model.StatusCompleted, to))
		assert.False(t, model.CanTransition(model.StatusCancelled, to))
	}

	assert.True(t, model.StatusCompleted.IsTerminal())
	assert.True(t, model.StatusCancelled.IsTerminal())
	assert.False(t, model.StatusPending.IsTerminal())
}

func TestParseStatus(t *testing.T) {
	status, err := model.ParseStatus("in-progress")
	assert.NoError(t, err)
	assert.Equal(t, model.StatusInProgress, status)

	_, err = model.ParseStatus("in_progress")
	assert.Error(t, err)
}
