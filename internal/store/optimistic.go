package store

import (
	"context"

	"github.com/klausmullerDev/vizinhanca-cli/errors"
	"github.com/klausmullerDev/vizinhanca-cli/pkg/api"
	"github.com/klausmullerDev/vizinhanca-cli/pkg/models"
)

// mutation is the shared shape of every pedido operation: guard, optional
// optimistic apply, network call, then reconcile or restore the snapshot.
// Each invocation owns its own snapshot, so mutations in flight against
// different entries roll back independently.
type mutation struct {
	// guard runs under the lock before anything is applied. Rejections here
	// never reach the network.
	guard func(p *models.Pedido) error

	// apply makes the optimistic change under the lock. Nil for operations
	// whose result is only shown after server confirmation.
	apply func(p *models.Pedido)

	// call performs the network request. A non-nil pedido in the response is
	// the server-authoritative entry.
	call func(ctx context.Context) (*models.Pedido, error)

	// reconcile adjusts the entry after a successful call. When nil, a
	// non-nil response replaces the entry verbatim.
	reconcile func(p *models.Pedido, resp *models.Pedido)

	// softFail reports server failures that are indistinguishable from
	// success (duplicate interest); the optimistic state then stands.
	softFail func(err error) bool

	// failureMessage is shown when the server did not provide one.
	failureMessage string
}

// mutate runs the optimistic protocol against one entry.
func (s *Store) mutate(ctx context.Context, id string, m mutation) error {
	s.mu.Lock()
	entry := s.find(id)
	if entry == nil {
		s.mu.Unlock()
		return errors.NotFound("pedido", id)
	}

	if m.guard != nil {
		if err := m.guard(entry); err != nil {
			s.mu.Unlock()
			return err
		}
	}

	snapshot := entry.Clone()
	if m.apply != nil {
		m.apply(entry)
	}
	s.mu.Unlock()

	if m.apply != nil {
		s.broadcast(Update{Type: UpdateOptimistic, PedidoID: id})
	}

	resp, err := m.call(ctx)

	if err != nil {
		if m.softFail != nil && m.softFail(err) {
			s.logger.WithField("pedido", id).Debug("treating server rejection as soft success")
			s.broadcast(Update{Type: UpdateReconciled, PedidoID: id})
			return nil
		}

		s.mu.Lock()
		s.replace(id, snapshot)
		s.mu.Unlock()

		s.broadcast(Update{Type: UpdateRolledBack, PedidoID: id})
		return s.failure(err, m.failureMessage)
	}

	s.mu.Lock()
	if current := s.find(id); current != nil {
		if m.reconcile != nil {
			m.reconcile(current, resp)
		} else if resp != nil {
			s.replace(id, resp)
		}
	}
	s.mu.Unlock()

	s.broadcast(Update{Type: UpdateReconciled, PedidoID: id})
	return nil
}

// failure builds the user-facing error: the server-provided message when
// present, otherwise the operation's default.
func (s *Store) failure(err error, defaultMsg string) error {
	message := api.ServerMessage(err)
	if message == "" {
		message = defaultMsg
	}
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	return errors.Wrap(err, code, message)
}
