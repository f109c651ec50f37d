package cmd

import (
	"bufio"
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/klausmullerDev/vizinhanca-cli/cli"
	"github.com/klausmullerDev/vizinhanca-cli/internal/chat"
)

// NewChatCmd creates the `chat` command tree.
func NewChatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Conversa com a outra parte de um pedido",
	}
	cmd.AddCommand(newChatListCmd(), newChatAbrirCmd(), newChatEntrarCmd())
	return cmd
}

func newChatListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list <pedidoId>",
		Short: "Lista os chats de um pedido",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(app *cli.App) error {
				chats, err := app.Client.ListPedidoChats(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if app.JSON {
					return printJSON(cmd, chats)
				}
				if len(chats) == 0 {
					cmd.Println("Nenhum chat para este pedido.")
					return nil
				}
				self := app.Session.User()
				for _, c := range chats {
					other := c.OtherParticipant(self.ID)
					name := "?"
					if other != nil {
						name = other.Name
					}
					cmd.Printf("%s  com %s  (pedido: %s)\n", c.ID, name, c.Pedido.Titulo)
				}
				return nil
			})
		},
	}
}

func newChatAbrirCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "abrir <pedidoId> <destinatarioId>",
		Short: "Abre (ou reaproveita) um chat sobre um pedido",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(app *cli.App) error {
				c, err := app.Client.CreateChat(cmd.Context(), args[0], args[1])
				if err != nil {
					return err
				}
				cmd.Printf("Chat pronto: %s. Entre com 'vizinhanca chat entrar %s'.\n", c.ID, c.ID)
				return nil
			})
		},
	}
}

func newChatEntrarCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "entrar <chatId>",
		Short: "Entra em um chat: mostra o histórico e transmite mensagens novas",
		Long: `Entra na sala do chat via WebSocket. O histórico aparece primeiro; novas
mensagens chegam em tempo real. Digite uma linha para enviar, ou /sair
para encerrar.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(app *cli.App) error {
				chatID := args[0]
				self := app.Session.User()

				details, err := app.Client.GetChat(cmd.Context(), chatID)
				if err != nil {
					return err
				}
				history, err := app.Client.ListMensagens(cmd.Context(), chatID)
				if err != nil {
					return err
				}

				if other := details.OtherParticipant(self.ID); other != nil {
					cmd.Printf("Conversando com %s sobre \"%s\"\n\n", other.Name, details.Pedido.Titulo)
				}
				for _, m := range history {
					cmd.Println(cli.RenderMensagem(m, self.ID))
				}

				ctx, cancel := context.WithCancel(cmd.Context())
				defer cancel()

				conn, err := chat.Join(ctx, app.Client.BaseURL(), app.Session.Token(), chatID)
				if err != nil {
					return err
				}
				defer conn.Leave()

				// Incoming messages print as they arrive, including the echo
				// of everything sent below.
				go func() {
					for msg := range conn.Messages {
						cmd.Println(cli.RenderMensagem(&msg, self.ID))
					}
				}()

				scanner := bufio.NewScanner(cmd.InOrStdin())
				for scanner.Scan() {
					line := strings.TrimSpace(scanner.Text())
					if line == "" {
						continue
					}
					if line == "/sair" {
						break
					}
					if err := app.Client.SendMensagem(ctx, chatID, line); err != nil {
						cmd.PrintErrf("não foi possível enviar: %v\n", err)
					}
				}
				return scanner.Err()
			})
		},
	}
}
