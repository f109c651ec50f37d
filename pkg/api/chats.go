package api

import (
	"context"
	"net/http"

	"github.com/klausmullerDev/vizinhanca-cli/pkg/models"
)

// ListPedidoChats lists the chats attached to a pedido.
func (c *Client) ListPedidoChats(ctx context.Context, pedidoID string) ([]*models.Chat, error) {
	var out []*models.Chat
	if err := c.getJSON(ctx, "/pedidos/"+escape(pedidoID)+"/chats", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateChat opens a chat between the acting user and destinatario about a
// pedido. The backend deduplicates, returning the existing chat when one
// already exists for the pair.
func (c *Client) CreateChat(ctx context.Context, pedidoID, destinatarioID string) (*models.Chat, error) {
	in := map[string]string{"pedidoId": pedidoID, "destinatarioId": destinatarioID}
	var out models.Chat
	if err := c.sendJSON(ctx, http.MethodPost, "/chats", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetChat fetches chat details including participants.
func (c *Client) GetChat(ctx context.Context, id string) (*models.Chat, error) {
	var out models.Chat
	if err := c.getJSON(ctx, "/chats/"+escape(id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListMensagens fetches the chat history.
func (c *Client) ListMensagens(ctx context.Context, chatID string) ([]*models.Mensagem, error) {
	var out []*models.Mensagem
	if err := c.getJSON(ctx, "/chats/"+escape(chatID)+"/mensagens", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SendMensagem posts a message. Delivery back to the UI happens through the
// nova-mensagem socket event, not through this response.
func (c *Client) SendMensagem(ctx context.Context, chatID, conteudo string) error {
	in := map[string]string{"conteudo": conteudo}
	return c.sendJSON(ctx, http.MethodPost, "/chats/"+escape(chatID)+"/mensagens", in, nil)
}

// ListNotificacoes fetches the notification feed.
func (c *Client) ListNotificacoes(ctx context.Context) ([]*models.Notificacao, error) {
	var out []*models.Notificacao
	if err := c.getJSON(ctx, "/notificacoes", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UnreadCount fetches the unread notification count. The backend nests the
// number twice; that shape is preserved in models.UnreadCountResponse.
func (c *Client) UnreadCount(ctx context.Context) (int, error) {
	var out models.UnreadCountResponse
	if err := c.getJSON(ctx, "/notificacoes/nao-lidas/quantidade", &out); err != nil {
		return 0, err
	}
	return out.Quantidade.Quantidade, nil
}

// MarkNotificationRead flips a notification's read flag server-side.
func (c *Client) MarkNotificationRead(ctx context.Context, id string) error {
	return c.sendJSON(ctx, http.MethodPatch, "/notificacoes/"+escape(id)+"/lida", nil, nil)
}
