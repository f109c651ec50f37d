package cmd

import (
	"github.com/spf13/cobra"

	"github.com/klausmullerDev/vizinhanca-cli/cli"
)

// NewNotificacoesCmd creates the `notificacoes` command tree.
func NewNotificacoesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "notificacoes",
		Aliases: []string{"notif"},
		Short:   "Lista notificações e marca como lidas",
	}
	cmd.AddCommand(newNotifListCmd(), newNotifLidaCmd(), newNotifContadorCmd())
	return cmd
}

func newNotifListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Lista suas notificações",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(app *cli.App) error {
				if err := app.Notifs.RefreshFeed(cmd.Context()); err != nil {
					return err
				}

				feed := app.Notifs.Feed()
				if app.JSON {
					return printJSON(cmd, feed)
				}
				if len(feed) == 0 {
					cmd.Println("Nenhuma notificação.")
					return nil
				}
				for _, n := range feed {
					cmd.Println(cli.RenderNotificacao(n))
				}
				cmd.Printf("\n%d não lida(s)\n", app.Notifs.Unread())
				return nil
			})
		},
	}
}

func newNotifLidaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lida <id>",
		Short: "Marca uma notificação como lida",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(app *cli.App) error {
				if err := app.Notifs.RefreshFeed(cmd.Context()); err != nil {
					return err
				}
				if err := app.Notifs.MarkRead(cmd.Context(), args[0]); err != nil {
					return err
				}
				cmd.Printf("Notificação marcada como lida. %d não lida(s) restante(s).\n", app.Notifs.Unread())
				return nil
			})
		},
	}
}

func newNotifContadorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "contador",
		Short: "Mostra a contagem de notificações não lidas",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(app *cli.App) error {
				count, err := app.Client.UnreadCount(cmd.Context())
				if err != nil {
					return err
				}
				if app.JSON {
					return printJSON(cmd, map[string]int{"naoLidas": count})
				}
				cmd.Printf("%d não lida(s)\n", count)
				return nil
			})
		},
	}
}
