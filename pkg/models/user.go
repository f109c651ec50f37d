// Package models defines the shared data structures for the vizinhanca client.
package models

import "time"

// Endereco is a Brazilian street address attached to a user profile.
type Endereco struct {
	Rua    string `json:"rua"`
	Numero string `json:"numero"`
	Bairro string `json:"bairro"`
	Cidade string `json:"cidade"`
	Estado string `json:"estado"`
	CEP    string `json:"cep"`
}

// User is an authenticated identity or a referenced profile.
type User struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Email            string    `json:"email,omitempty"`
	Avatar           string    `json:"avatar,omitempty"`
	CPF              string    `json:"cpf,omitempty"`
	Telefone         string    `json:"telefone,omitempty"`
	DataDeNascimento string    `json:"dataDeNascimento,omitempty"`
	Sexo             string    `json:"sexo,omitempty"`
	Endereco         *Endereco `json:"endereco,omitempty"`
	CreatedAt        time.Time `json:"createdAt,omitempty"`
}

// ProfileComplete reports whether the required contact fields are present.
// Incomplete profiles are routed into the profile-completion flow before the
// main views become available.
func (u *User) ProfileComplete() bool {
	if u == nil {
		return false
	}
	return u.CPF != "" && u.Telefone != ""
}
