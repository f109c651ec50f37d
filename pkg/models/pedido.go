package models

import "time"

// Interesse is one user's expression of willingness to help with a pedido.
// It is created once per (pedido, user) and never mutated.
type Interesse struct {
	User      User      `json:"user"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}

// Pedido is a help request.
type Pedido struct {
	ID        string    `json:"id"`
	Titulo    string    `json:"titulo"`
	Descricao string    `json:"descricao"`
	Imagem    string    `json:"imagem,omitempty"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	Author    User      `json:"author"`

	// Ajudante is the chosen helper, nil until the author picks one.
	Ajudante *User `json:"ajudante,omitempty"`

	// Interesses is ordered by arrival. InteressesCount must always equal
	// len(Interesses); the store maintains both under optimistic updates.
	Interesses      []Interesse `json:"interesses"`
	InteressesCount int         `json:"interessesCount"`

	// Derived for the acting user by the server, kept in sync client-side
	// during optimistic interest updates.
	UsuarioJaDemonstrouInteresse bool `json:"usuarioJaDemonstrouInteresse"`
	UsuarioJaAvaliou             bool `json:"usuarioJaAvaliou"`
}

// HasInterestFrom reports whether the given user already appears in the
// interest set.
func (p *Pedido) HasInterestFrom(userID string) bool {
	for _, i := range p.Interesses {
		if i.User.ID == userID {
			return true
		}
	}
	return false
}

// IsAuthor reports whether the given user authored this pedido.
func (p *Pedido) IsAuthor(userID string) bool {
	return p.Author.ID == userID
}

// IsHelper reports whether the given user is the chosen helper.
func (p *Pedido) IsHelper(userID string) bool {
	return p.Ajudante != nil && p.Ajudante.ID == userID
}

// Clone returns a deep copy of the pedido, used for rollback snapshots.
func (p *Pedido) Clone() *Pedido {
	cp := *p
	if p.Ajudante != nil {
		aj := *p.Ajudante
		cp.Ajudante = &aj
	}
	cp.Interesses = make([]Interesse, len(p.Interesses))
	copy(cp.Interesses, p.Interesses)
	return &cp
}

// Avaliacao is a rating given by one party after a pedido finishes.
type Avaliacao struct {
	Nota       int    `json:"nota"`
	Comentario string `json:"comentario,omitempty"`
}
