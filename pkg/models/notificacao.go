package models

import "time"

// NotificacaoTipo tags the kind of notification, driving which of the
// optional fields are populated.
type NotificacaoTipo string

const (
	NotifInteresseRecebido NotificacaoTipo = "INTERESSE_RECEBIDO"
	NotifAjudanteEscolhido NotificacaoTipo = "AJUDANTE_ESCOLHIDO"
	NotifPedidoConcluido   NotificacaoTipo = "PEDIDO_CONCLUIDO"
	NotifNovaMensagem      NotificacaoTipo = "NOVA_MENSAGEM"
	NotifAjudanteDesistiu  NotificacaoTipo = "AJUDANTE_DESISTIU"
	NotifPedidoCancelado   NotificacaoTipo = "PEDIDO_CANCELADO"
)

// Notificacao is a server-pushed or polled event.
type Notificacao struct {
	ID        string          `json:"id"`
	Tipo      NotificacaoTipo `json:"tipo"`
	Mensagem  string          `json:"mensagem"`
	Lida      bool            `json:"lida"`
	CreatedAt time.Time       `json:"createdAt"`
	UserID    string          `json:"userId"`

	// Sender and PedidoID are present depending on Tipo.
	Sender   *User         `json:"sender,omitempty"`
	PedidoID string        `json:"pedidoId,omitempty"`
	Pedido   *PedidoResumo `json:"pedido,omitempty"`
}

// PedidoResumo is the trimmed pedido payload embedded in notifications.
type PedidoResumo struct {
	Titulo    string `json:"titulo"`
	Descricao string `json:"descricao"`
}

// UnreadCountResponse mirrors the backend's nested unread-count payload.
type UnreadCountResponse struct {
	Quantidade struct {
		Quantidade int `json:"quantidade"`
	} `json:"quantidade"`
}
