package store

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/klausmullerDev/vizinhanca-cli/errors"
	"github.com/klausmullerDev/vizinhanca-cli/pkg/api"
	"github.com/klausmullerDev/vizinhanca-cli/pkg/models"
	"github.com/klausmullerDev/vizinhanca-cli/testutil"
)

type fakeSession struct {
	user *models.User
}

func (f *fakeSession) User() *models.User { return f.user }

// newStore builds a store over a fake backend pre-seeded with the given
// pedidos, acting as the given user.
func newStore(t *testing.T, backend *testutil.Backend, acting *models.User, seed ...*models.Pedido) *Store {
	t.Helper()

	backend.Handle("GET /pedidos", func(w http.ResponseWriter, r *http.Request) {
		testutil.WriteJSON(t, w, http.StatusOK, seed)
	})

	client := api.New(backend.URL)
	s := New(client, &fakeSession{user: acting})
	require.NoError(t, s.Refresh(context.Background(), ""))
	return s
}

func TestCreateRoundTrip(t *testing.T) {
	backend := testutil.NewBackend(t)
	ana := testutil.NewUser("u-ana", "Ana")

	created := testutil.NewPedido("p-1", "Furadeira", ana)
	created.Descricao = "Preciso de uma furadeira"
	backend.Handle("POST /pedidos", func(w http.ResponseWriter, r *http.Request) {
		testutil.WriteJSON(t, w, http.StatusCreated, created)
	})

	s := newStore(t, backend, &ana)

	got, err := s.Create(context.Background(), "Furadeira", "Preciso de uma furadeira", "")
	require.NoError(t, err)
	assert.Equal(t, "p-1", got.ID)

	// Reading it back from the list yields the same title, description
	// and an OPEN status, at the top.
	list := s.List()
	require.Len(t, list, 1)
	assert.Equal(t, "Furadeira", list[0].Titulo)
	assert.Equal(t, "Preciso de uma furadeira", list[0].Descricao)
	assert.Equal(t, models.StatusOpen, list[0].Status)
}

func TestCreateValidation(t *testing.T) {
	backend := testutil.NewBackend(t)
	ana := testutil.NewUser("u-ana", "Ana")
	s := newStore(t, backend, &ana)
	before := len(backend.Requests())

	_, err := s.Create(context.Background(), "", "desc", "")
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeValidation, errors.GetCode(err))

	_, err = s.Create(context.Background(), "titulo", "   ", "")
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeValidation, errors.GetCode(err))

	// Validation failures never reach the network.
	assert.Len(t, backend.Requests(), before)
}

func TestCreateRollbackRemovesOptimisticEntry(t *testing.T) {
	backend := testutil.NewBackend(t)
	ana := testutil.NewUser("u-ana", "Ana")
	backend.Handle("POST /pedidos", func(w http.ResponseWriter, r *http.Request) {
		testutil.WriteMessage(t, w, http.StatusInternalServerError, "")
	})

	s := newStore(t, backend, &ana)

	_, err := s.Create(context.Background(), "Furadeira", "Preciso", "")
	require.Error(t, err)
	assert.Empty(t, s.List(), "failed create must not leave an entry behind")
}

func TestExpressInterestScenario(t *testing.T) {
	// User A creates R; user B expresses interest.
	backend := testutil.NewBackend(t)
	ana := testutil.NewUser("u-ana", "Ana")
	beto := testutil.NewUser("u-beto", "Beto")
	pedido := testutil.NewPedido("p-1", "Furadeira", ana)
	pedido.Descricao = "Preciso de uma furadeira"

	backend.Handle("POST /pedidos/p-1/interesse", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	s := newStore(t, backend, &beto, pedido)

	require.NoError(t, s.ExpressInterest(context.Background(), "p-1"))

	got, err := s.Get("p-1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusOpen, got.Status)
	assert.Equal(t, 1, got.InteressesCount)
	assert.Len(t, got.Interesses, 1)
	assert.Equal(t, "u-beto", got.Interesses[0].User.ID)
	assert.True(t, got.UsuarioJaDemonstrouInteresse)
}

func TestExpressInterestRollbackIsExact(t *testing.T) {
	backend := testutil.NewBackend(t)
	ana := testutil.NewUser("u-ana", "Ana")
	beto := testutil.NewUser("u-beto", "Beto")
	pedido := testutil.NewPedido("p-1", "Furadeira", ana)

	backend.Handle("POST /pedidos/p-1/interesse", func(w http.ResponseWriter, r *http.Request) {
		testutil.WriteMessage(t, w, http.StatusInternalServerError, "")
	})

	s := newStore(t, backend, &beto, pedido)

	before, err := s.Get("p-1")
	require.NoError(t, err)

	err = s.ExpressInterest(context.Background(), "p-1")
	require.Error(t, err)

	// The full field set after rollback is identical to the state
	// immediately before the optimistic mutation was applied.
	after, err := s.Get("p-1")
	require.NoError(t, err)
	assert.Equal(t, before, after)
	assert.Equal(t, len(after.Interesses), after.InteressesCount)
}

func TestExpressInterestIdempotent(t *testing.T) {
	backend := testutil.NewBackend(t)
	ana := testutil.NewUser("u-ana", "Ana")
	beto := testutil.NewUser("u-beto", "Beto")
	pedido := testutil.NewPedido("p-1", "Furadeira", ana)

	calls := 0
	backend.Handle("POST /pedidos/p-1/interesse", func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusNoContent)
	})

	s := newStore(t, backend, &beto, pedido)

	require.NoError(t, s.ExpressInterest(context.Background(), "p-1"))
	require.NoError(t, s.ExpressInterest(context.Background(), "p-1"))

	got, err := s.Get("p-1")
	require.NoError(t, err)
	assert.Equal(t, 1, got.InteressesCount, "second attempt must not change the count")
	assert.Len(t, got.Interesses, 1)
	assert.Equal(t, 1, calls, "second attempt must not reach the network")
}

func TestExpressInterestDuplicateConflictIsSoftSuccess(t *testing.T) {
	backend := testutil.NewBackend(t)
	ana := testutil.NewUser("u-ana", "Ana")
	beto := testutil.NewUser("u-beto", "Beto")
	pedido := testutil.NewPedido("p-1", "Furadeira", ana)

	backend.Handle("POST /pedidos/p-1/interesse", func(w http.ResponseWriter, r *http.Request) {
		testutil.WriteMessage(t, w, http.StatusConflict, "Você já demonstrou interesse neste pedido")
	})

	s := newStore(t, backend, &beto, pedido)

	// The server says duplicate; from the user's perspective this is success.
	require.NoError(t, s.ExpressInterest(context.Background(), "p-1"))

	got, err := s.Get("p-1")
	require.NoError(t, err)
	assert.True(t, got.UsuarioJaDemonstrouInteresse)
	assert.Equal(t, 1, got.InteressesCount)
}

func TestAuthorCannotExpressInterest(t *testing.T) {
	backend := testutil.NewBackend(t)
	ana := testutil.NewUser("u-ana", "Ana")
	pedido := testutil.NewPedido("p-1", "Furadeira", ana)

	s := newStore(t, backend, &ana, pedido)
	before := len(backend.Requests())

	err := s.ExpressInterest(context.Background(), "p-1")
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeValidation, errors.GetCode(err))
	assert.Len(t, backend.Requests(), before)

	got, _ := s.Get("p-1")
	assert.False(t, got.UsuarioJaDemonstrouInteresse)
}

func TestChooseHelperScenario(t *testing.T) {
	backend := testutil.NewBackend(t)
	ana := testutil.NewUser("u-ana", "Ana")
	beto := testutil.NewUser("u-beto", "Beto")
	pedido := testutil.NewPedido("p-1", "Furadeira", ana)
	pedido.Interesses = []models.Interesse{{User: beto}}
	pedido.InteressesCount = 1

	confirmed := pedido.Clone()
	confirmed.Status = models.StatusInProgress
	confirmed.Ajudante = &beto
	backend.Handle("POST /pedidos/p-1/escolher-ajudante", func(w http.ResponseWriter, r *http.Request) {
		testutil.WriteJSON(t, w, http.StatusOK, confirmed)
	})

	s := newStore(t, backend, &ana, pedido)

	// No optimistic flip: the status change lands with the server response.
	require.NoError(t, s.ChooseHelper(context.Background(), "p-1", "u-beto"))

	got, err := s.Get("p-1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusInProgress, got.Status)
	require.NotNil(t, got.Ajudante)
	assert.Equal(t, "u-beto", got.Ajudante.ID)
}

func TestChooseHelperGuards(t *testing.T) {
	backend := testutil.NewBackend(t)
	ana := testutil.NewUser("u-ana", "Ana")
	beto := testutil.NewUser("u-beto", "Beto")
	pedido := testutil.NewPedido("p-1", "Furadeira", ana)
	pedido.Interesses = []models.Interesse{{User: beto}}
	pedido.InteressesCount = 1

	s := newStore(t, backend, &ana, pedido)
	before := len(backend.Requests())

	// The chosen user must be in the interest set.
	err := s.ChooseHelper(context.Background(), "p-1", "u-carla")
	assert.Equal(t, errors.ErrCodeValidation, errors.GetCode(err))

	// The author can never be the helper.
	err = s.ChooseHelper(context.Background(), "p-1", "u-ana")
	assert.Equal(t, errors.ErrCodeValidation, errors.GetCode(err))

	// Non-authors may not choose.
	other := newStore(t, testutil.NewBackend(t), &beto, pedido.Clone())
	err = other.ChooseHelper(context.Background(), "p-1", "u-beto")
	assert.Equal(t, errors.ErrCodeNotAuthor, errors.GetCode(err))

	assert.Len(t, backend.Requests(), before, "guard rejections must not reach the network")
}

func TestCancelIsTerminal(t *testing.T) {
	backend := testutil.NewBackend(t)
	ana := testutil.NewUser("u-ana", "Ana")
	beto := testutil.NewUser("u-beto", "Beto")
	pedido := testutil.NewPedido("p-1", "Furadeira", ana)
	pedido.Status = models.StatusInProgress
	pedido.Ajudante = &beto

	cancelled := pedido.Clone()
	cancelled.Status = models.StatusCancelled
	backend.Handle("PATCH /pedidos/p-1/cancelar", func(w http.ResponseWriter, r *http.Request) {
		testutil.WriteJSON(t, w, http.StatusOK, cancelled)
	})

	s := newStore(t, backend, &ana, pedido)

	require.NoError(t, s.Cancel(context.Background(), "p-1"))

	got, _ := s.Get("p-1")
	assert.Equal(t, models.StatusCancelled, got.Status)

	// No further mutation is accepted for a cancelled pedido.
	before := len(backend.Requests())
	err := s.Finish(context.Background(), "p-1")
	assert.Equal(t, errors.ErrCodeInvalidTransition, errors.GetCode(err))
	err = s.ChooseHelper(context.Background(), "p-1", "u-beto")
	assert.Equal(t, errors.ErrCodeInvalidTransition, errors.GetCode(err))
	assert.Len(t, backend.Requests(), before)
}

func TestFinishRequiresInProgress(t *testing.T) {
	backend := testutil.NewBackend(t)
	ana := testutil.NewUser("u-ana", "Ana")
	pedido := testutil.NewPedido("p-1", "Furadeira", ana)

	s := newStore(t, backend, &ana, pedido)
	before := len(backend.Requests())

	// Finishing an OPEN pedido is rejected before any network call.
	err := s.Finish(context.Background(), "p-1")
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeInvalidTransition, errors.GetCode(err))
	assert.Len(t, backend.Requests(), before)

	got, _ := s.Get("p-1")
	assert.Equal(t, models.StatusOpen, got.Status)
}

func TestWithdrawRevertsToOpen(t *testing.T) {
	backend := testutil.NewBackend(t)
	ana := testutil.NewUser("u-ana", "Ana")
	beto := testutil.NewUser("u-beto", "Beto")
	pedido := testutil.NewPedido("p-1", "Furadeira", ana)
	pedido.Status = models.StatusInProgress
	pedido.Ajudante = &beto

	reverted := pedido.Clone()
	reverted.Status = models.StatusOpen
	reverted.Ajudante = nil
	backend.Handle("PATCH /pedidos/p-1/desistir", func(w http.ResponseWriter, r *http.Request) {
		testutil.WriteJSON(t, w, http.StatusOK, reverted)
	})

	// Acting as the helper, not the author.
	s := newStore(t, backend, &beto, pedido)

	require.NoError(t, s.Withdraw(context.Background(), "p-1"))

	got, _ := s.Get("p-1")
	assert.Equal(t, models.StatusOpen, got.Status)
	assert.Nil(t, got.Ajudante)
}

func TestWithdrawOnlyHelper(t *testing.T) {
	backend := testutil.NewBackend(t)
	ana := testutil.NewUser("u-ana", "Ana")
	beto := testutil.NewUser("u-beto", "Beto")
	pedido := testutil.NewPedido("p-1", "Furadeira", ana)
	pedido.Status = models.StatusInProgress
	pedido.Ajudante = &beto

	s := newStore(t, backend, &ana, pedido)

	err := s.Withdraw(context.Background(), "p-1")
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeNotHelper, errors.GetCode(err))
}

func TestServerRejectionRollsBackUnchanged(t *testing.T) {
	// The store guard passes but the server rejects the transition; client
	// state must be unchanged after rollback.
	backend := testutil.NewBackend(t)
	ana := testutil.NewUser("u-ana", "Ana")
	pedido := testutil.NewPedido("p-1", "Furadeira", ana)

	backend.Handle("PATCH /pedidos/p-1/cancelar", func(w http.ResponseWriter, r *http.Request) {
		testutil.WriteMessage(t, w, http.StatusConflict, "pedido já foi concluído")
	})

	s := newStore(t, backend, &ana, pedido)
	before, _ := s.Get("p-1")

	err := s.Cancel(context.Background(), "p-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pedido já foi concluído",
		"the server-provided message must surface")

	after, _ := s.Get("p-1")
	assert.Equal(t, before, after)
}

func TestRate(t *testing.T) {
	backend := testutil.NewBackend(t)
	ana := testutil.NewUser("u-ana", "Ana")
	beto := testutil.NewUser("u-beto", "Beto")
	pedido := testutil.NewPedido("p-1", "Furadeira", ana)
	pedido.Status = models.StatusFinished
	pedido.Ajudante = &beto

	backend.Handle("POST /pedidos/p-1/avaliar", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})

	s := newStore(t, backend, &ana, pedido)

	// Score bounds are checked before dispatch.
	err := s.Rate(context.Background(), "p-1", 0, "")
	assert.Equal(t, errors.ErrCodeValidation, errors.GetCode(err))
	err = s.Rate(context.Background(), "p-1", 6, "")
	assert.Equal(t, errors.ErrCodeValidation, errors.GetCode(err))

	require.NoError(t, s.Rate(context.Background(), "p-1", 5, "Ótima ajuda"))

	got, _ := s.Get("p-1")
	assert.True(t, got.UsuarioJaAvaliou, "flag set only after server confirmation")

	// Rating twice in the same direction is rejected.
	err = s.Rate(context.Background(), "p-1", 4, "")
	assert.Equal(t, errors.ErrCodeAlreadyRated, errors.GetCode(err))
}

func TestRateRequiresFinished(t *testing.T) {
	backend := testutil.NewBackend(t)
	ana := testutil.NewUser("u-ana", "Ana")
	pedido := testutil.NewPedido("p-1", "Furadeira", ana)

	s := newStore(t, backend, &ana, pedido)

	err := s.Rate(context.Background(), "p-1", 5, "")
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeValidation, errors.GetCode(err))
}

func TestDeleteWaitsForAck(t *testing.T) {
	backend := testutil.NewBackend(t)
	ana := testutil.NewUser("u-ana", "Ana")
	pedido := testutil.NewPedido("p-1", "Furadeira", ana)

	fail := true
	backend.Handle("DELETE /pedidos/p-1", func(w http.ResponseWriter, r *http.Request) {
		if fail {
			testutil.WriteMessage(t, w, http.StatusInternalServerError, "")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})

	s := newStore(t, backend, &ana, pedido)

	// Failure keeps the entry: no flash-delete.
	err := s.Delete(context.Background(), "p-1")
	require.Error(t, err)
	assert.Len(t, s.List(), 1)

	fail = false
	require.NoError(t, s.Delete(context.Background(), "p-1"))
	assert.Empty(t, s.List())
}

func TestEdit(t *testing.T) {
	backend := testutil.NewBackend(t)
	ana := testutil.NewUser("u-ana", "Ana")
	pedido := testutil.NewPedido("p-1", "Furadeira", ana)

	updated := pedido.Clone()
	updated.Titulo = "Furadeira de impacto"
	backend.Handle("PATCH /pedidos/p-1", func(w http.ResponseWriter, r *http.Request) {
		testutil.WriteJSON(t, w, http.StatusOK, updated)
	})

	s := newStore(t, backend, &ana, pedido)

	err := s.Edit(context.Background(), "p-1", "", "desc")
	assert.Equal(t, errors.ErrCodeValidation, errors.GetCode(err))

	require.NoError(t, s.Edit(context.Background(), "p-1", "Furadeira de impacto", "Preciso"))

	got, _ := s.Get("p-1")
	assert.Equal(t, "Furadeira de impacto", got.Titulo)
}

func TestIndependentRollbacks(t *testing.T) {
	// Mutations on different entries carry independent snapshots.
	backend := testutil.NewBackend(t)
	ana := testutil.NewUser("u-ana", "Ana")
	beto := testutil.NewUser("u-beto", "Beto")
	p1 := testutil.NewPedido("p-1", "Furadeira", ana)
	p2 := testutil.NewPedido("p-2", "Escada", ana)

	backend.Handle("POST /pedidos/p-1/interesse", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	backend.Handle("POST /pedidos/p-2/interesse", func(w http.ResponseWriter, r *http.Request) {
		testutil.WriteMessage(t, w, http.StatusInternalServerError, "")
	})

	s := newStore(t, backend, &beto, p1, p2)

	require.NoError(t, s.ExpressInterest(context.Background(), "p-1"))
	require.Error(t, s.ExpressInterest(context.Background(), "p-2"))

	got1, _ := s.Get("p-1")
	got2, _ := s.Get("p-2")
	assert.True(t, got1.UsuarioJaDemonstrouInteresse, "p-1 keeps its optimistic state")
	assert.False(t, got2.UsuarioJaDemonstrouInteresse, "p-2 rolled back")
	assert.Equal(t, 0, got2.InteressesCount)
}

func TestSubscribersSeeRollback(t *testing.T) {
	backend := testutil.NewBackend(t)
	ana := testutil.NewUser("u-ana", "Ana")
	beto := testutil.NewUser("u-beto", "Beto")
	pedido := testutil.NewPedido("p-1", "Furadeira", ana)

	backend.Handle("POST /pedidos/p-1/interesse", func(w http.ResponseWriter, r *http.Request) {
		testutil.WriteMessage(t, w, http.StatusInternalServerError, "")
	})

	s := newStore(t, backend, &beto, pedido)
	ch := s.Subscribe()
	defer s.Unsubscribe(ch)

	require.Error(t, s.ExpressInterest(context.Background(), "p-1"))

	var types []UpdateType
	for len(ch) > 0 {
		types = append(types, (<-ch).Type)
	}
	assert.Equal(t, []UpdateType{UpdateOptimistic, UpdateRolledBack}, types)
}
