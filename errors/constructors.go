package errors

import (
	"fmt"
)

// Validation creates a client-side validation error for a named field
func Validation(field, reason string) *VizError {
	return New(ErrCodeValidation, fmt.Sprintf("campo '%s' inválido: %s", field, reason)).
		WithDetail("field", field)
}

// Unauthorized creates a session expiry error
func Unauthorized() *VizError {
	return New(ErrCodeUnauthorized, "sessão expirada, faça login novamente")
}

// BadCredentials creates a failed login error
func BadCredentials() *VizError {
	return New(ErrCodeBadCredentials, "email ou senha incorretos")
}

// NoSession indicates an operation that requires an authenticated user
func NoSession() *VizError {
	return New(ErrCodeNoSession, "nenhum usuário autenticado")
}

// InvalidTransition creates a lifecycle transition error
func InvalidTransition(from, to string) *VizError {
	return New(ErrCodeInvalidTransition,
		fmt.Sprintf("transição de status inválida: %s → %s", from, to)).
		WithDetail("from", from).
		WithDetail("to", to)
}

// NotAuthor creates an error for author-only operations
func NotAuthor(pedidoID string) *VizError {
	return New(ErrCodeNotAuthor, "apenas o autor do pedido pode executar esta ação").
		WithDetail("pedidoId", pedidoID)
}

// NotHelper creates an error for helper-only operations
func NotHelper(pedidoID string) *VizError {
	return New(ErrCodeNotHelper, "apenas o ajudante escolhido pode executar esta ação").
		WithDetail("pedidoId", pedidoID)
}

// DuplicateInterest indicates the acting user already expressed interest
func DuplicateInterest(pedidoID string) *VizError {
	return New(ErrCodeDuplicateInterest, "você já demonstrou interesse neste pedido").
		WithDetail("pedidoId", pedidoID)
}

// AlreadyRated indicates the acting side already rated this pedido
func AlreadyRated(pedidoID string) *VizError {
	return New(ErrCodeAlreadyRated, "você já avaliou este pedido").
		WithDetail("pedidoId", pedidoID)
}

// NotFound creates a missing-resource error
func NotFound(resource, id string) *VizError {
	return New(ErrCodeNotFound, fmt.Sprintf("%s '%s' não encontrado", resource, id)).
		WithDetail("resource", resource).
		WithDetail("id", id)
}

// Network wraps a transport-level failure
func Network(err error) *VizError {
	return Wrap(err, ErrCodeNetwork, "não foi possível contactar o servidor")
}
