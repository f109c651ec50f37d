// Package testutil provides helpers for tests that need a fake backend.
package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/klausmullerDev/vizinhanca-cli/pkg/models"
)

// Backend is an httptest server with per-route handlers and a request log,
// standing in for the vizinhanca REST API.
type Backend struct {
	*httptest.Server
	mux *http.ServeMux

	mu       sync.Mutex
	requests []string
}

// NewBackend starts a fake backend that shuts down with the test.
func NewBackend(t *testing.T) *Backend {
	t.Helper()

	b := &Backend{mux: http.NewServeMux()}
	b.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		b.requests = append(b.requests, r.Method+" "+r.URL.Path)
		b.mu.Unlock()
		b.mux.ServeHTTP(w, r)
	}))
	t.Cleanup(b.Server.Close)
	return b
}

// Handle registers a handler for a route pattern, e.g. "POST /pedidos".
func (b *Backend) Handle(pattern string, h http.HandlerFunc) {
	b.mux.HandleFunc(pattern, h)
}

// Requests returns the "METHOD /path" log of everything received so far.
func (b *Backend) Requests() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]string, len(b.requests))
	copy(out, b.requests)
	return out
}

// WriteJSON encodes v with the given status code.
func WriteJSON(t *testing.T, w http.ResponseWriter, status int, v interface{}) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

// WriteMessage encodes the backend's {"message": ...} error body.
func WriteMessage(t *testing.T, w http.ResponseWriter, status int, message string) {
	t.Helper()
	WriteJSON(t, w, status, map[string]string{"message": message})
}

// NewUser builds a user fixture.
func NewUser(id, name string) models.User {
	return models.User{
		ID:        id,
		Name:      name,
		Email:     name + "@example.com",
		CreatedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

// NewPedido builds an open pedido fixture authored by the given user.
func NewPedido(id, titulo string, author models.User) *models.Pedido {
	return &models.Pedido{
		ID:         id,
		Titulo:     titulo,
		Descricao:  "Descrição de " + titulo,
		Status:     models.StatusOpen,
		CreatedAt:  time.Date(2025, 6, 2, 9, 30, 0, 0, time.UTC),
		Author:     author,
		Interesses: []models.Interesse{},
	}
}
