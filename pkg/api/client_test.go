package api

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/klausmullerDev/vizinhanca-cli/errors"
	"github.com/klausmullerDev/vizinhanca-cli/pkg/models"
	"github.com/klausmullerDev/vizinhanca-cli/testutil"
)

type staticToken string

func (s staticToken) Token() string { return string(s) }

func TestBearerTokenAttached(t *testing.T) {
	backend := testutil.NewBackend(t)

	var gotAuth string
	backend.Handle("GET /pedidos", func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		testutil.WriteJSON(t, w, http.StatusOK, []*models.Pedido{})
	})

	client := New(backend.URL)
	client.SetTokenSource(staticToken("tok-123"))

	_, err := client.ListPedidos(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-123", gotAuth)
}

func TestNoTokenNoHeader(t *testing.T) {
	backend := testutil.NewBackend(t)

	var gotAuth string
	backend.Handle("GET /pedidos", func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		testutil.WriteJSON(t, w, http.StatusOK, []*models.Pedido{})
	})

	client := New(backend.URL)
	client.SetTokenSource(staticToken(""))

	_, err := client.ListPedidos(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestUnauthorizedHookFires(t *testing.T) {
	backend := testutil.NewBackend(t)
	backend.Handle("GET /users/profile", func(w http.ResponseWriter, r *http.Request) {
		testutil.WriteMessage(t, w, http.StatusUnauthorized, "token expirado")
	})

	client := New(backend.URL)
	fired := 0
	client.SetUnauthorizedHook(func() { fired++ })

	_, err := client.GetProfile(context.Background())
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeUnauthorized, errors.GetCode(err))
	assert.Equal(t, 1, fired)
}

func TestLoginUnauthorizedDoesNotFireHook(t *testing.T) {
	// A 401 from login means bad credentials, not an expired session; it
	// must not trigger the global logout path.
	backend := testutil.NewBackend(t)
	backend.Handle("POST /users/login", func(w http.ResponseWriter, r *http.Request) {
		testutil.WriteMessage(t, w, http.StatusUnauthorized, "credenciais inválidas")
	})

	client := New(backend.URL)
	fired := 0
	client.SetUnauthorizedHook(func() { fired++ })

	_, err := client.Login(context.Background(), "ana@example.com", "wrong")
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeBadCredentials, errors.GetCode(err))
	assert.Equal(t, 0, fired)
}

func TestServerMessageSurfaces(t *testing.T) {
	backend := testutil.NewBackend(t)
	backend.Handle("POST /pedidos/p-1/interesse", func(w http.ResponseWriter, r *http.Request) {
		testutil.WriteMessage(t, w, http.StatusConflict, "Você já demonstrou interesse")
	})

	client := New(backend.URL)
	err := client.ExpressInterest(context.Background(), "p-1")
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeConflict, errors.GetCode(err))
	assert.Equal(t, "Você já demonstrou interesse", ServerMessage(err))
}

func TestNetworkErrorCode(t *testing.T) {
	// Nothing listens here.
	client := New("http://127.0.0.1:1")
	_, err := client.ListPedidos(context.Background(), "")
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeNetwork, errors.GetCode(err))
}

func TestUnreadCountNestedShape(t *testing.T) {
	backend := testutil.NewBackend(t)
	backend.Handle("GET /notificacoes/nao-lidas/quantidade", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"quantidade":{"quantidade":3}}`))
	})

	client := New(backend.URL)
	count, err := client.UnreadCount(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestSearchQueryEncoding(t *testing.T) {
	backend := testutil.NewBackend(t)

	var gotSearch string
	backend.Handle("GET /pedidos", func(w http.ResponseWriter, r *http.Request) {
		gotSearch = r.URL.Query().Get("search")
		testutil.WriteJSON(t, w, http.StatusOK, []*models.Pedido{})
	})

	client := New(backend.URL)
	_, err := client.ListPedidos(context.Background(), "furadeira elétrica")
	require.NoError(t, err)
	assert.Equal(t, "furadeira elétrica", gotSearch)
}

func TestCreatePedidoMultipart(t *testing.T) {
	backend := testutil.NewBackend(t)

	backend.Handle("POST /pedidos", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "Furadeira", r.FormValue("titulo"))
		assert.Equal(t, "Preciso de uma furadeira", r.FormValue("descricao"))
		testutil.WriteJSON(t, w, http.StatusCreated, testutil.NewPedido("p-1", "Furadeira", testutil.NewUser("u-1", "Ana")))
	})

	client := New(backend.URL)
	created, err := client.CreatePedido(context.Background(), "Furadeira", "Preciso de uma furadeira", "")
	require.NoError(t, err)
	assert.Equal(t, "p-1", created.ID)
}
