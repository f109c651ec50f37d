// Package store holds the client-side view of the pedido collection.
//
// It is the only component with real invariants: status transitions follow
// the lifecycle state machine, the interest count always equals the size of
// the interest set, and every optimistic mutation snapshots the affected
// entry so a failed network call restores it exactly.
package store

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/klausmullerDev/vizinhanca-cli/errors"
	"github.com/klausmullerDev/vizinhanca-cli/logging"
	"github.com/klausmullerDev/vizinhanca-cli/pkg/api"
	"github.com/klausmullerDev/vizinhanca-cli/pkg/models"
)

// UpdateType describes what happened to the list.
type UpdateType string

const (
	UpdateRefreshed  UpdateType = "refreshed"
	UpdateOptimistic UpdateType = "optimistic"
	UpdateReconciled UpdateType = "reconciled"
	UpdateRolledBack UpdateType = "rolled_back"
	UpdateRemoved    UpdateType = "removed"
)

// Update is broadcast to subscribers after every applied change.
type Update struct {
	Type     UpdateType
	PedidoID string
}

// Session exposes the acting user to the store.
type Session interface {
	User() *models.User
}

// Store is the request lifecycle store. It owns the pedido list exclusively;
// the view layer reads copies and mutates only through the operations below.
type Store struct {
	mu          sync.RWMutex
	client      *api.Client
	session     Session
	logger      *logrus.Entry
	pedidos     []*models.Pedido
	subscribers map[chan Update]struct{}
}

// New creates a Store bound to the gateway and session.
func New(client *api.Client, session Session) *Store {
	return &Store{
		client:      client,
		session:     session,
		logger:      logging.NewLogger("pedidos"),
		subscribers: make(map[chan Update]struct{}),
	}
}

// List returns a copy of the current pedido list, newest first.
func (s *Store) List() []*models.Pedido {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]*models.Pedido, len(s.pedidos))
	for i, p := range s.pedidos {
		result[i] = p.Clone()
	}
	return result
}

// Get returns a copy of one pedido, or an error when it is not in the list.
func (s *Store) Get(id string) (*models.Pedido, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if p := s.find(id); p != nil {
		return p.Clone(), nil
	}
	return nil, errors.NotFound("pedido", id)
}

// Refresh replaces the list with the server's authoritative view. This is
// also how divergence after racing mutations on one entry gets corrected.
func (s *Store) Refresh(ctx context.Context, search string) error {
	pedidos, err := s.client.ListPedidos(ctx, search)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.pedidos = pedidos
	s.mu.Unlock()

	s.broadcast(Update{Type: UpdateRefreshed})
	return nil
}

// Load fetches a single pedido and upserts it into the list, used by the
// detail view when the entry is not already loaded.
func (s *Store) Load(ctx context.Context, id string) (*models.Pedido, error) {
	pedido, err := s.client.GetPedido(ctx, id)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	if existing := s.find(id); existing != nil {
		*existing = *pedido
	} else {
		s.pedidos = append(s.pedidos, pedido)
	}
	s.mu.Unlock()

	s.broadcast(Update{Type: UpdateReconciled, PedidoID: id})
	return pedido.Clone(), nil
}

// Subscribe creates a new subscription channel for store updates.
func (s *Store) Subscribe() chan Update {
	s.mu.Lock()
	defer s.mu.Unlock()
	ch := make(chan Update, 100)
	s.subscribers[ch] = struct{}{}
	return ch
}

// Unsubscribe removes a subscription and closes its channel.
func (s *Store) Unsubscribe(ch chan Update) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.subscribers, ch)
	close(ch)
}

// broadcast notifies subscribers without blocking on slow consumers.
func (s *Store) broadcast(u Update) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for ch := range s.subscribers {
		select {
		case ch <- u:
		default:
		}
	}
}

// find locates an entry by id. Caller must hold the lock.
func (s *Store) find(id string) *models.Pedido {
	for _, p := range s.pedidos {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// replace swaps the entry with the given id. Caller must hold the lock.
func (s *Store) replace(id string, p *models.Pedido) {
	for i, existing := range s.pedidos {
		if existing.ID == id {
			s.pedidos[i] = p
			return
		}
	}
}

// remove drops the entry with the given id. Caller must hold the lock.
func (s *Store) remove(id string) {
	for i, existing := range s.pedidos {
		if existing.ID == id {
			s.pedidos = append(s.pedidos[:i], s.pedidos[i+1:]...)
			return
		}
	}
}

// actingUser returns the authenticated user or an error.
func (s *Store) actingUser() (*models.User, error) {
	user := s.session.User()
	if user == nil {
		return nil, errors.NoSession()
	}
	return user, nil
}
