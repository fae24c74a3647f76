package broadcast

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"

	"scentpos/internal/domain"
	broadcastrepo "scentpos/internal/repository/broadcast"
)

// ErrEmptyMessage rejects a broadcast with nothing to say.
var ErrEmptyMessage = fmt.Errorf("%w: message required", domain.ErrInvalid)

type recipientCounter interface {
	CountWithPhone(ctx context.Context) (int, error)
}

type publisher interface {
	PublishBroadcastQueued(ctx context.Context, b *domain.Broadcast) error
}

type Service struct {
	repo      broadcastrepo.Repository
	customers recipientCounter
	events    publisher
	logger    *log.Logger
}

func New(repo broadcastrepo.Repository, customers recipientCounter, events publisher, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{repo: repo, customers: customers, events: events, logger: logger}
}

// Queue stores the message and signals the delivery worker. Sending is
// not this service's job.
func (s *Service) Queue(ctx context.Context, message string) (*domain.Broadcast, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, ErrEmptyMessage
	}
	recipients, err := s.customers.CountWithPhone(ctx)
	if err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, domain.Broadcast{
		Message:    message,
		Recipients: recipients,
		Status:     domain.BroadcastQueued,
	})
	if err != nil {
		return nil, err
	}

	if s.events != nil {
		if err := s.events.PublishBroadcastQueued(ctx, created); err != nil {
			s.logger.Printf("broadcast service: publish id=%s error=%v", created.ID, err)
		}
	}
	return created, nil
}

func (s *Service) List(ctx context.Context, limit int) ([]domain.Broadcast, error) {
	return s.repo.List(ctx, limit)
}
