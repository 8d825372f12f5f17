package notify

// Package notify carries state-change events out of the core. Every
// successful state-changing service call emits exactly one event.

import (
	"context"

	"buildsafe/internal/model"
	"buildsafe/internal/repository"
)

// Emitter publishes one notification event.
type Emitter interface {
	Emit(ctx context.Context, n *model.Notification) error
}

// EmitterFunc adapts a plain function to the Emitter interface.
type EmitterFunc func(ctx context.Context, n *model.Notification) error

func (f EmitterFunc) Emit(ctx context.Context, n *model.Notification) error {
	return f(ctx, n)
}

// storeEmitter appends events to the durable notification log.
type storeEmitter struct {
	repo repository.NotificationRepository
}

// NewStoreEmitter returns an Emitter backed by the append-only event log.
func NewStoreEmitter(repo repository.NotificationRepository) Emitter {
	return &storeEmitter{repo: repo}
}

func (s *storeEmitter) Emit(ctx context.Context, n *model.Notification) error {
	_, err := s.repo.Append(ctx, n)
	return err
}

// multiEmitter fans one event out to several emitters, stopping at the
// first failure so the caller sees it.
type multiEmitter struct {
	emitters []Emitter
}

// NewMultiEmitter combines emitters; typically the durable log plus the
// message broker.
func NewMultiEmitter(emitters ...Emitter) Emitter {
	return &multiEmitter{emitters: emitters}
}

func (m *multiEmitter) Emit(ctx context.Context, n *model.Notification) error {
	for _, e := range m.emitters {
		if err := e.Emit(ctx, n); err != nil {
			return err
		}
	}
	return nil
}
