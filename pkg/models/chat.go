package models

import "time"

// Chat is a conversation between the pedido author and an interested user.
type Chat struct {
	ID     string `json:"id"`
	Pedido struct {
		ID     string `json:"id"`
		Titulo string `json:"titulo"`
	} `json:"pedido"`
	Participantes []User `json:"participantes"`
}

// OtherParticipant returns the participant that is not the given user.
func (c *Chat) OtherParticipant(userID string) *User {
	for i := range c.Participantes {
		if c.Participantes[i].ID != userID {
			return &c.Participantes[i]
		}
	}
	return nil
}

// Mensagem is a single chat message.
type Mensagem struct {
	ID        string    `json:"id"`
	Conteudo  string    `json:"conteudo"`
	ChatID    string    `json:"chatId"`
	SenderID  string    `json:"senderId"`
	Sender    User      `json:"sender"`
	CreatedAt time.Time `json:"createdAt"`
}
