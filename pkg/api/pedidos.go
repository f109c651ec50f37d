package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/klausmullerDev/vizinhanca-cli/pkg/models"
)

// ListPedidos fetches the visible pedidos, optionally filtered by a search
// term matched against title and description server-side.
func (c *Client) ListPedidos(ctx context.Context, search string) ([]*models.Pedido, error) {
	path := "/pedidos"
	if search != "" {
		path += "?search=" + url.QueryEscape(search)
	}
	var out []*models.Pedido
	if err := c.getJSON(ctx, path, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetPedido fetches a single pedido with its interest set.
func (c *Client) GetPedido(ctx context.Context, id string) (*models.Pedido, error) {
	var out models.Pedido
	if err := c.getJSON(ctx, "/pedidos/"+escape(id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreatePedido submits a new pedido as multipart; imagemPath is optional.
func (c *Client) CreatePedido(ctx context.Context, titulo, descricao, imagemPath string) (*models.Pedido, error) {
	fields := map[string]string{"titulo": titulo, "descricao": descricao}
	files := map[string]string{"imagem": imagemPath}

	body, contentType, err := multipartBody(fields, files)
	if err != nil {
		return nil, err
	}

	var out models.Pedido
	if err := c.do(ctx, http.MethodPost, "/pedidos", body, contentType, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdatePedido edits title and description.
func (c *Client) UpdatePedido(ctx context.Context, id, titulo, descricao string) (*models.Pedido, error) {
	in := map[string]string{"titulo": titulo, "descricao": descricao}
	var out models.Pedido
	if err := c.sendJSON(ctx, http.MethodPatch, "/pedidos/"+escape(id), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeletePedido removes a pedido.
func (c *Client) DeletePedido(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/pedidos/"+escape(id), nil, "", nil)
}

// ExpressInterest registers the acting user's interest in a pedido.
func (c *Client) ExpressInterest(ctx context.Context, id string) error {
	return c.sendJSON(ctx, http.MethodPost, "/pedidos/"+escape(id)+"/interesse", nil, nil)
}

// ChooseHelper picks a user from the interest set as the helper. The server
// returns the updated pedido with status IN_PROGRESS.
func (c *Client) ChooseHelper(ctx context.Context, id, userID string) (*models.Pedido, error) {
	in := map[string]string{"userId": userID}
	var out models.Pedido
	if err := c.sendJSON(ctx, http.MethodPost, "/pedidos/"+escape(id)+"/escolher-ajudante", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CancelPedido cancels a pedido; the server returns the terminal entry.
func (c *Client) CancelPedido(ctx context.Context, id string) (*models.Pedido, error) {
	var out models.Pedido
	if err := c.sendJSON(ctx, http.MethodPatch, "/pedidos/"+escape(id)+"/cancelar", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// FinishPedido marks an in-progress pedido as completed.
func (c *Client) FinishPedido(ctx context.Context, id string) (*models.Pedido, error) {
	var out models.Pedido
	if err := c.sendJSON(ctx, http.MethodPatch, "/pedidos/"+escape(id)+"/concluir", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// WithdrawPedido is the helper giving up on an in-progress pedido. The server
// reverts the pedido to OPEN and clears the helper; the returned entry is
// applied verbatim since this is the one backward transition.
func (c *Client) WithdrawPedido(ctx context.Context, id string) (*models.Pedido, error) {
	var out models.Pedido
	if err := c.sendJSON(ctx, http.MethodPatch, "/pedidos/"+escape(id)+"/desistir", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RatePedido records a rating for a finished pedido.
func (c *Client) RatePedido(ctx context.Context, id string, av models.Avaliacao) error {
	return c.sendJSON(ctx, http.MethodPost, "/pedidos/"+escape(id)+"/avaliar", av, nil)
}
