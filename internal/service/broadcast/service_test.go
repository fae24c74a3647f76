package broadcast

import (
	"context"
	"errors"
	"testing"

	"scentpos/internal/domain"
)

type stubRepo struct {
	created *domain.Broadcast
	err     error
}

func (s *stubRepo) Create(_ context.Context, b domain.Broadcast) (*domain.Broadcast, error) {
	if s.err != nil {
		return nil, s.err
	}
	b.ID = "b1"
	s.created = &b
	return &b, nil
}

func (s *stubRepo) List(_ context.Context, _ int) ([]domain.Broadcast, error) { return nil, nil }

type stubCounter struct{ count int }

func (s *stubCounter) CountWithPhone(_ context.Context) (int, error) { return s.count, nil }

type stubPublisher struct {
	published int
	err       error
}

func (s *stubPublisher) PublishBroadcastQueued(_ context.Context, _ *domain.Broadcast) error {
	s.published++
	return s.err
}

func TestQueueEmptyMessage(t *testing.T) {
	svc := New(&stubRepo{}, &stubCounter{}, &stubPublisher{}, nil)
	_, err := svc.Queue(context.Background(), "   ")
	if !errors.Is(err, ErrEmptyMessage) {
		t.Fatalf("expected ErrEmptyMessage, got %v", err)
	}
}

func TestQueueCountsRecipientsAndPublishes(t *testing.T) {
	repo := &stubRepo{}
	events := &stubPublisher{}
	svc := New(repo, &stubCounter{count: 42}, events, nil)

	got, err := svc.Queue(context.Background(), "New stock has arrived!")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Recipients != 42 || got.Status != domain.BroadcastQueued {
		t.Fatalf("unexpected broadcast: %+v", got)
	}
	if events.published != 1 {
		t.Fatalf("expected publish, got %d", events.published)
	}
}

func TestQueuePublishFailureDoesNotFail(t *testing.T) {
	svc := New(&stubRepo{}, &stubCounter{count: 1}, &stubPublisher{err: errors.New("broker down")}, nil)
	if _, err := svc.Queue(context.Background(), "hello"); err != nil {
		t.Fatalf("queueing must survive publish failure: %v", err)
	}
}
