package cmd

import (
	"github.com/spf13/cobra"

	"github.com/klausmullerDev/vizinhanca-cli/cli"
)

// NewPedidosCmd creates the `pedidos` command tree.
func NewPedidosCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pedidos",
		Short: "Lista e gerencia pedidos de ajuda",
	}

	cmd.AddCommand(
		newPedidosListCmd(),
		newPedidosVerCmd(),
		newPedidosCriarCmd(),
		newPedidosEditarCmd(),
		newPedidosApagarCmd(),
		newPedidosInteresseCmd(),
		newPedidosEscolherCmd(),
		newPedidosCancelarCmd(),
		newPedidosConcluirCmd(),
		newPedidosDesistirCmd(),
		newPedidosAvaliarCmd(),
	)

	return cmd
}

// withApp restores the session and runs fn with the wired app, funneling
// failures through the error handler.
func withApp(cmd *cobra.Command, fn func(app *cli.App) error) error {
	app, err := cli.NewApp(cmd)
	if err != nil {
		return err
	}
	verbose, _ := cmd.Flags().GetBool("verbose")
	handler := cli.NewErrorHandler(verbose)

	if err := app.RequireSession(cmd); err != nil {
		return handler.Handle(err)
	}
	if err := fn(app); err != nil {
		return handler.Handle(err)
	}
	return nil
}

func newPedidosListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Lista os pedidos visíveis",
	}
	cmd.Flags().String("search", "", "Filtra por título/descrição")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(app *cli.App) error {
			search, _ := cmd.Flags().GetString("search")
			if err := app.Pedidos.Refresh(cmd.Context(), search); err != nil {
				return err
			}

			pedidos := app.Pedidos.List()
			if app.JSON {
				return printJSON(cmd, pedidos)
			}
			if len(pedidos) == 0 {
				cmd.Println("Nenhum pedido por aqui ainda.")
				return nil
			}
			for _, p := range pedidos {
				cmd.Println(cli.RenderPedido(p))
			}
			return nil
		})
	}
	return cmd
}

func newPedidosVerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ver <id>",
		Short: "Mostra os detalhes de um pedido",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(app *cli.App) error {
				pedido, err := app.Pedidos.Load(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if app.JSON {
					return printJSON(cmd, pedido)
				}
				cmd.Println(cli.RenderPedido(pedido))
				return nil
			})
		},
	}
}

func newPedidosCriarCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "criar",
		Short: "Cria um pedido de ajuda",
	}
	cmd.Flags().String("titulo", "", "Título do pedido")
	cmd.Flags().String("descricao", "", "Descrição do pedido")
	cmd.Flags().String("imagem", "", "Caminho de uma imagem opcional")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(app *cli.App) error {
			titulo, _ := cmd.Flags().GetString("titulo")
			descricao, _ := cmd.Flags().GetString("descricao")
			imagem, _ := cmd.Flags().GetString("imagem")

			var err error
			if titulo == "" {
				if titulo, err = prompt(cmd, "Título"); err != nil {
					return err
				}
			}
			if descricao == "" {
				if descricao, err = prompt(cmd, "Descrição"); err != nil {
					return err
				}
			}

			pedido, err := app.Pedidos.Create(cmd.Context(), titulo, descricao, imagem)
			if err != nil {
				return err
			}
			cmd.Printf("Pedido criado: %s\n", pedido.ID)
			return nil
		})
	}
	return cmd
}

func newPedidosEditarCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "editar <id>",
		Short: "Edita título e descrição de um pedido",
		Args:  cobra.ExactArgs(1),
	}
	cmd.Flags().String("titulo", "", "Novo título")
	cmd.Flags().String("descricao", "", "Nova descrição")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(app *cli.App) error {
			if _, err := app.Pedidos.Load(cmd.Context(), args[0]); err != nil {
				return err
			}
			titulo, _ := cmd.Flags().GetString("titulo")
			descricao, _ := cmd.Flags().GetString("descricao")
			if err := app.Pedidos.Edit(cmd.Context(), args[0], titulo, descricao); err != nil {
				return err
			}
			cmd.Println("Pedido atualizado.")
			return nil
		})
	}
	return cmd
}

func newPedidosApagarCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "apagar <id>",
		Short: "Apaga um pedido seu",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(app *cli.App) error {
				if _, err := app.Pedidos.Load(cmd.Context(), args[0]); err != nil {
					return err
				}
				if !confirm(cmd, "Tem certeza que deseja apagar este pedido?") {
					cmd.Println("Cancelado.")
					return nil
				}
				if err := app.Pedidos.Delete(cmd.Context(), args[0]); err != nil {
					return err
				}
				cmd.Println("Pedido apagado.")
				return nil
			})
		},
	}
}

func newPedidosInteresseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "interesse <id>",
		Short: "Demonstra interesse em ajudar",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(app *cli.App) error {
				if _, err := app.Pedidos.Load(cmd.Context(), args[0]); err != nil {
					return err
				}
				if err := app.Pedidos.ExpressInterest(cmd.Context(), args[0]); err != nil {
					return err
				}
				cmd.Println("✓ Interesse enviado!")
				return nil
			})
		},
	}
}

func newPedidosEscolherCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "escolher <id> <userId>",
		Short: "Escolhe um ajudante entre os interessados",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(app *cli.App) error {
				if _, err := app.Pedidos.Load(cmd.Context(), args[0]); err != nil {
					return err
				}
				if err := app.Pedidos.ChooseHelper(cmd.Context(), args[0], args[1]); err != nil {
					return err
				}
				pedido, err := app.Pedidos.Get(args[0])
				if err != nil {
					return err
				}
				cmd.Printf("Ajudante escolhido: %s. O pedido está em andamento.\n", pedido.Ajudante.Name)
				return nil
			})
		},
	}
}

func newPedidosCancelarCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cancelar <id>",
		Short: "Cancela um pedido seu (irreversível)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(app *cli.App) error {
				if _, err := app.Pedidos.Load(cmd.Context(), args[0]); err != nil {
					return err
				}
				// Terminal state, so an explicit confirmation comes first.
				if !confirm(cmd, "Cancelar este pedido? Essa ação não pode ser desfeita.") {
					cmd.Println("Cancelamento abortado.")
					return nil
				}
				if err := app.Pedidos.Cancel(cmd.Context(), args[0]); err != nil {
					return err
				}
				cmd.Println("Pedido cancelado.")
				return nil
			})
		},
	}
}

func newPedidosConcluirCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "concluir <id>",
		Short: "Marca um pedido em andamento como concluído",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(app *cli.App) error {
				if _, err := app.Pedidos.Load(cmd.Context(), args[0]); err != nil {
					return err
				}
				if err := app.Pedidos.Finish(cmd.Context(), args[0]); err != nil {
					return err
				}
				cmd.Println("Pedido concluído. Não esqueça de avaliar seu ajudante!")
				return nil
			})
		},
	}
}

func newPedidosDesistirCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "desistir <id>",
		Short: "Desiste de um pedido no qual você é o ajudante",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(app *cli.App) error {
				if _, err := app.Pedidos.Load(cmd.Context(), args[0]); err != nil {
					return err
				}
				if err := app.Pedidos.Withdraw(cmd.Context(), args[0]); err != nil {
					return err
				}
				cmd.Println("Você desistiu do pedido; ele voltou a ficar aberto.")
				return nil
			})
		},
	}
}

func newPedidosAvaliarCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "avaliar <id>",
		Short: "Avalia a outra parte de um pedido concluído",
		Args:  cobra.ExactArgs(1),
	}
	cmd.Flags().Int("nota", 0, "Nota de 1 a 5")
	cmd.Flags().String("comentario", "", "Comentário opcional")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(app *cli.App) error {
			if _, err := app.Pedidos.Load(cmd.Context(), args[0]); err != nil {
				return err
			}
			nota, _ := cmd.Flags().GetInt("nota")
			comentario, _ := cmd.Flags().GetString("comentario")
			if err := app.Pedidos.Rate(cmd.Context(), args[0], nota, comentario); err != nil {
				return err
			}
			cmd.Println("Avaliação enviada. Obrigado!")
			return nil
		})
	}
	return cmd
}
