package notify

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"buildsafe/internal/model"
	repoMocks "buildsafe/internal/repository/mocks"
)

func event() *model.Notification {
	return &model.Notification{
		ID:        "n-1",
		Type:      model.NotifyMilestoneVerified,
		ProjectID: "p-1",
		EntityID:  "m-1",
		Message:   "milestone verified",
		CreatedAt: time.Now().UTC(),
	}
}

func TestStoreEmitter(t *testing.T) {
	repo := new(repoMocks.MockNotificationRepository)
	repo.On("Append", mock.Anything, mock.Anything).Return(event(), nil).Once()

	err := NewStoreEmitter(repo).Emit(context.Background(), event())

	assert.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestMultiEmitter(t *testing.T) {
	t.Run("all emitters receive the event", func(t *testing.T) {
		var calls []string
		first := EmitterFunc(func(ctx context.Context, n *model.Notification) error {
			calls = append(calls, "first")
			return nil
		})
		second := EmitterFunc(func(ctx context.Context, n *model.Notification) error {
			calls = append(calls, "second")
			return nil
		})

		err := NewMultiEmitter(first, second).Emit(context.Background(), event())

		assert.NoError(t, err)
		assert.Equal(t, []string{"first", "second"}, calls)
	})

	t.Run("stops at the first failure", func(t *testing.T) {
		failure := errors.New("broker down")
		first := EmitterFunc(func(ctx context.Context, n *model.Notification) error {
			return failure
		})
		secondCalled := false
		second := EmitterFunc(func(ctx context.Context, n *model.Notification) error {
			secondCalled = true
			return nil
		})

		err := NewMultiEmitter(first, second).Emit(context.Background(), event())

		assert.ErrorIs(t, err, failure)
		assert.False(t, secondCalled)
	})
}
