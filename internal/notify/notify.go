// Package notify manages the notification feed and unread count.
//
// Mark-as-read follows the same optimistic discipline as the pedido store,
// restricted to one boolean per entry: flip the flag and decrement the
// counter immediately, restore both exactly if the server call fails.
package notify

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/klausmullerDev/vizinhanca-cli/errors"
	"github.com/klausmullerDev/vizinhanca-cli/logging"
	"github.com/klausmullerDev/vizinhanca-cli/pkg/api"
	"github.com/klausmullerDev/vizinhanca-cli/pkg/models"
)

// Store holds the notification feed and the unread counter.
type Store struct {
	mu       sync.RWMutex
	client   *api.Client
	logger   *logrus.Entry
	interval time.Duration
	feed     []*models.Notificacao
	unread   int
}

// New creates a notification store polling at the given interval.
func New(client *api.Client, interval time.Duration) *Store {
	return &Store{
		client:   client,
		logger:   logging.NewLogger("notificacoes"),
		interval: interval,
	}
}

// Feed returns a copy of the notification list.
func (s *Store) Feed() []*models.Notificacao {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]*models.Notificacao, len(s.feed))
	for i, n := range s.feed {
		cp := *n
		result[i] = &cp
	}
	return result
}

// Unread returns the current unread count.
func (s *Store) Unread() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.unread
}

// RefreshFeed reloads the feed and the unread count from the server.
func (s *Store) RefreshFeed(ctx context.Context) error {
	feed, err := s.client.ListNotificacoes(ctx)
	if err != nil {
		return err
	}
	count, err := s.client.UnreadCount(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.feed = feed
	s.unread = count
	s.mu.Unlock()
	return nil
}

// Run polls the unread-count endpoint until the context is canceled, then
// clears the store. Poll failures are logged and skipped; the next tick
// tries again.
func (s *Store) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	poll := func() {
		count, err := s.client.UnreadCount(ctx)
		if err != nil {
			s.logger.WithError(err).Debug("unread count poll failed")
			return
		}
		s.mu.Lock()
		s.unread = count
		s.mu.Unlock()
	}

	poll()

	for {
		select {
		case <-ctx.Done():
			s.mu.Lock()
			s.feed = nil
			s.unread = 0
			s.mu.Unlock()
			return nil
		case <-ticker.C:
			poll()
		}
	}
}

// MarkRead optimistically flags a notification as read and decrements the
// unread counter (floored at zero). On failure both the flag and the counter
// return to their pre-mutation values.
func (s *Store) MarkRead(ctx context.Context, id string) error {
	s.mu.Lock()
	var target *models.Notificacao
	for _, n := range s.feed {
		if n.ID == id {
			target = n
			break
		}
	}
	if target == nil {
		s.mu.Unlock()
		return errors.NotFound("notificação", id)
	}
	if target.Lida {
		s.mu.Unlock()
		return nil
	}

	prevUnread := s.unread
	target.Lida = true
	if s.unread > 0 {
		s.unread--
	}
	s.mu.Unlock()

	if err := s.client.MarkNotificationRead(ctx, id); err != nil {
		s.mu.Lock()
		target.Lida = false
		s.unread = prevUnread
		s.mu.Unlock()

		message := api.ServerMessage(err)
		if message == "" {
			message = "não foi possível marcar a notificação como lida"
		}
		return errors.Wrap(err, errors.GetCode(err), message)
	}

	return nil
}
