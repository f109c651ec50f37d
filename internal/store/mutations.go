package store

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/klausmullerDev/vizinhanca-cli/errors"
	"github.com/klausmullerDev/vizinhanca-cli/pkg/models"
)

// Create submits a new pedido. When the acting user's profile is loaded, a
// locally-synthesized entry appears at the top of the list immediately and is
// swapped for the server entry on acknowledgement; on failure it is removed
// and no entry is added.
func (s *Store) Create(ctx context.Context, titulo, descricao, imagemPath string) (*models.Pedido, error) {
	if strings.TrimSpace(titulo) == "" {
		return nil, errors.Validation("titulo", "obrigatório")
	}
	if strings.TrimSpace(descricao) == "" {
		return nil, errors.Validation("descricao", "obrigatório")
	}

	user := s.session.User()
	tempID := ""
	if user != nil {
		tempID = "local-" + uuid.NewString()
		temp := &models.Pedido{
			ID:         tempID,
			Titulo:     titulo,
			Descricao:  descricao,
			Status:     models.StatusOpen,
			CreatedAt:  time.Now(),
			Author:     *user,
			Interesses: []models.Interesse{},
		}
		s.mu.Lock()
		s.pedidos = append([]*models.Pedido{temp}, s.pedidos...)
		s.mu.Unlock()
		s.broadcast(Update{Type: UpdateOptimistic, PedidoID: tempID})
	}

	created, err := s.client.CreatePedido(ctx, titulo, descricao, imagemPath)

	if err != nil {
		if tempID != "" {
			s.mu.Lock()
			s.remove(tempID)
			s.mu.Unlock()
			s.broadcast(Update{Type: UpdateRolledBack, PedidoID: tempID})
		}
		return nil, s.failure(err, "não foi possível criar o pedido")
	}

	s.mu.Lock()
	if tempID != "" {
		s.replace(tempID, created)
	} else {
		s.pedidos = append([]*models.Pedido{created}, s.pedidos...)
	}
	s.mu.Unlock()

	s.broadcast(Update{Type: UpdateReconciled, PedidoID: created.ID})
	return created.Clone(), nil
}

// Edit updates title and description. There is no optimistic text
// replacement; the entry changes only when the server confirms, so a
// rejected edit is never shown.
func (s *Store) Edit(ctx context.Context, id, titulo, descricao string) error {
	if strings.TrimSpace(titulo) == "" {
		return errors.Validation("titulo", "obrigatório")
	}
	if strings.TrimSpace(descricao) == "" {
		return errors.Validation("descricao", "obrigatório")
	}
	user, err := s.actingUser()
	if err != nil {
		return err
	}

	return s.mutate(ctx, id, mutation{
		guard: func(p *models.Pedido) error {
			if !p.IsAuthor(user.ID) {
				return errors.NotAuthor(id)
			}
			return nil
		},
		call: func(ctx context.Context) (*models.Pedido, error) {
			return s.client.UpdatePedido(ctx, id, titulo, descricao)
		},
		failureMessage: "não foi possível editar o pedido",
	})
}

// ExpressInterest optimistically marks the acting user as interested,
// appends the interest entry and bumps the count, keeping count == len at
// every observable point. A second call for the same user is an idempotent
// no-op, and a server-side duplicate rejection is a soft success since the
// net effect is indistinguishable from success.
func (s *Store) ExpressInterest(ctx context.Context, id string) error {
	user, err := s.actingUser()
	if err != nil {
		return err
	}

	// Idempotency guard before mutate so the no-op never reaches the network.
	s.mu.RLock()
	if p := s.find(id); p != nil && (p.UsuarioJaDemonstrouInteresse || p.HasInterestFrom(user.ID)) {
		s.mu.RUnlock()
		return nil
	}
	s.mu.RUnlock()

	return s.mutate(ctx, id, mutation{
		guard: func(p *models.Pedido) error {
			if p.IsAuthor(user.ID) {
				return errors.Validation("pedido", "o autor não pode demonstrar interesse no próprio pedido")
			}
			return nil
		},
		apply: func(p *models.Pedido) {
			p.UsuarioJaDemonstrouInteresse = true
			p.Interesses = append(p.Interesses, models.Interesse{User: *user, CreatedAt: time.Now()})
			p.InteressesCount = len(p.Interesses)
		},
		call: func(ctx context.Context) (*models.Pedido, error) {
			return nil, s.client.ExpressInterest(ctx, id)
		},
		softFail: func(err error) bool {
			return errors.Is(err, errors.ErrCodeConflict) || errors.Is(err, errors.ErrCodeDuplicateInterest)
		},
		failureMessage: "não foi possível demonstrar interesse",
	})
}

// ChooseHelper assigns a helper from the interest set. An incorrect
// optimistic choice would be highly visible, so the status flip and helper
// assignment are applied only from the confirmed server entry.
func (s *Store) ChooseHelper(ctx context.Context, id, userID string) error {
	user, err := s.actingUser()
	if err != nil {
		return err
	}

	return s.mutate(ctx, id, mutation{
		guard: func(p *models.Pedido) error {
			if !p.IsAuthor(user.ID) {
				return errors.NotAuthor(id)
			}
			if !p.Status.CanTransition(models.StatusInProgress) {
				return errors.InvalidTransition(string(p.Status), string(models.StatusInProgress))
			}
			if userID == p.Author.ID {
				return errors.Validation("userId", "o autor não pode ser o ajudante")
			}
			if len(p.Interesses) == 0 || !p.HasInterestFrom(userID) {
				return errors.Validation("userId", "o usuário escolhido não demonstrou interesse neste pedido")
			}
			return nil
		},
		call: func(ctx context.Context) (*models.Pedido, error) {
			return s.client.ChooseHelper(ctx, id, userID)
		},
		failureMessage: "não foi possível escolher o ajudante",
	})
}

// Cancel moves a pedido to its terminal CANCELLED state. The confirmation
// prompt lives in the view layer; here only the transition is checked.
func (s *Store) Cancel(ctx context.Context, id string) error {
	user, err := s.actingUser()
	if err != nil {
		return err
	}

	return s.mutate(ctx, id, mutation{
		guard: func(p *models.Pedido) error {
			if !p.IsAuthor(user.ID) {
				return errors.NotAuthor(id)
			}
			if !p.Status.CanTransition(models.StatusCancelled) {
				return errors.InvalidTransition(string(p.Status), string(models.StatusCancelled))
			}
			return nil
		},
		call: func(ctx context.Context) (*models.Pedido, error) {
			return s.client.CancelPedido(ctx, id)
		},
		failureMessage: "não foi possível cancelar o pedido",
	})
}

// Finish completes an in-progress pedido, enabling ratings.
func (s *Store) Finish(ctx context.Context, id string) error {
	user, err := s.actingUser()
	if err != nil {
		return err
	}

	return s.mutate(ctx, id, mutation{
		guard: func(p *models.Pedido) error {
			if !p.IsAuthor(user.ID) {
				return errors.NotAuthor(id)
			}
			if p.Status != models.StatusInProgress {
				return errors.InvalidTransition(string(p.Status), string(models.StatusFinished))
			}
			return nil
		},
		call: func(ctx context.Context) (*models.Pedido, error) {
			return s.client.FinishPedido(ctx, id)
		},
		failureMessage: "não foi possível concluir o pedido",
	})
}

// Withdraw is the chosen helper giving up. This is the one backward
// transition, so the reverted entry is never predicted locally; the server's
// returned state is applied verbatim.
func (s *Store) Withdraw(ctx context.Context, id string) error {
	user, err := s.actingUser()
	if err != nil {
		return err
	}

	return s.mutate(ctx, id, mutation{
		guard: func(p *models.Pedido) error {
			if !p.IsHelper(user.ID) {
				return errors.NotHelper(id)
			}
			if p.Status != models.StatusInProgress {
				return errors.InvalidTransition(string(p.Status), string(models.StatusOpen))
			}
			return nil
		},
		call: func(ctx context.Context) (*models.Pedido, error) {
			return s.client.WithdrawPedido(ctx, id)
		},
		failureMessage: "não foi possível desistir do pedido",
	})
}

// Rate records the acting side's rating for a finished pedido. Nothing is
// applied optimistically; the already-rated flag is set only after the
// server confirms.
func (s *Store) Rate(ctx context.Context, id string, nota int, comentario string) error {
	if nota < 1 || nota > 5 {
		return errors.Validation("nota", "deve estar entre 1 e 5")
	}
	if _, err := s.actingUser(); err != nil {
		return err
	}

	return s.mutate(ctx, id, mutation{
		guard: func(p *models.Pedido) error {
			if p.Status != models.StatusFinished {
				return errors.Validation("pedido", "só é possível avaliar pedidos concluídos")
			}
			if p.UsuarioJaAvaliou {
				return errors.AlreadyRated(id)
			}
			return nil
		},
		call: func(ctx context.Context) (*models.Pedido, error) {
			av := models.Avaliacao{Nota: nota, Comentario: comentario}
			return nil, s.client.RatePedido(ctx, id, av)
		},
		reconcile: func(p *models.Pedido, _ *models.Pedido) {
			p.UsuarioJaAvaliou = true
		},
		failureMessage: "não foi possível enviar a avaliação",
	})
}

// Delete removes a pedido. Removal happens only after the server
// acknowledges, so a failed delete never flashes the entry out of the list.
func (s *Store) Delete(ctx context.Context, id string) error {
	user, err := s.actingUser()
	if err != nil {
		return err
	}

	s.mu.RLock()
	p := s.find(id)
	if p == nil {
		s.mu.RUnlock()
		return errors.NotFound("pedido", id)
	}
	if !p.IsAuthor(user.ID) {
		s.mu.RUnlock()
		return errors.NotAuthor(id)
	}
	s.mu.RUnlock()

	if err := s.client.DeletePedido(ctx, id); err != nil {
		return s.failure(err, "não foi possível apagar o pedido")
	}

	s.mu.Lock()
	s.remove(id)
	s.mu.Unlock()

	s.broadcast(Update{Type: UpdateRemoved, PedidoID: id})
	return nil
}
