package api

import (
	"context"
	"net/http"

	"github.com/klausmullerDev/vizinhanca-cli/pkg/models"
)

// AuthResponse is returned by register and login.
type AuthResponse struct {
	User  models.User `json:"user"`
	Token string      `json:"token"`
}

// Register creates a new account.
func (c *Client) Register(ctx context.Context, name, email, password string) (*AuthResponse, error) {
	in := map[string]string{"name": name, "email": email, "password": password}
	var out AuthResponse
	if err := c.sendJSON(ctx, http.MethodPost, "/users/register", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Login authenticates and returns the user plus a bearer token.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	in := map[string]string{"email": email, "password": password}
	var out AuthResponse
	if err := c.sendJSON(ctx, http.MethodPost, loginPath, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetProfile fetches the authenticated user's own profile.
func (c *Client) GetProfile(ctx context.Context) (*models.User, error) {
	var out models.User
	if err := c.getJSON(ctx, "/users/profile", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ProfileUpdate carries the profile-completion form. AvatarPath, when set,
// is a local file uploaded as the avatar.
type ProfileUpdate struct {
	Name             string
	CPF              string
	Telefone         string
	DataDeNascimento string
	Sexo             string
	AvatarPath       string
	Endereco         models.Endereco
}

// UpdateProfile submits the profile form as multipart, matching the
// backend's endereco[...] bracket field convention.
func (c *Client) UpdateProfile(ctx context.Context, upd ProfileUpdate) (*models.User, error) {
	fields := map[string]string{
		"name":             upd.Name,
		"cpf":              upd.CPF,
		"telefone":         upd.Telefone,
		"dataDeNascimento": upd.DataDeNascimento,
		"sexo":             upd.Sexo,
		"endereco[rua]":    upd.Endereco.Rua,
		"endereco[numero]": upd.Endereco.Numero,
		"endereco[bairro]": upd.Endereco.Bairro,
		"endereco[cidade]": upd.Endereco.Cidade,
		"endereco[estado]": upd.Endereco.Estado,
		"endereco[cep]":    upd.Endereco.CEP,
	}
	files := map[string]string{"avatar": upd.AvatarPath}

	body, contentType, err := multipartBody(fields, files)
	if err != nil {
		return nil, err
	}

	var out models.User
	if err := c.do(ctx, http.MethodPut, "/users/profile", body, contentType, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetUser fetches a public user profile by id.
func (c *Client) GetUser(ctx context.Context, id string) (*models.User, error) {
	var out models.User
	if err := c.getJSON(ctx, "/users/"+escape(id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetUserPedidos lists the pedidos authored by the given user.
func (c *Client) GetUserPedidos(ctx context.Context, id string) ([]*models.Pedido, error) {
	var out []*models.Pedido
	if err := c.getJSON(ctx, "/users/"+escape(id)+"/pedidos", &out); err != nil {
		return nil, err
	}
	return out, nil
}
