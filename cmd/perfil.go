package cmd

import (
	"github.com/spf13/cobra"

	"github.com/klausmullerDev/vizinhanca-cli/cli"
	"github.com/klausmullerDev/vizinhanca-cli/pkg/api"
	"github.com/klausmullerDev/vizinhanca-cli/pkg/models"
)

// NewPerfilCmd creates the `perfil` command tree.
func NewPerfilCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "perfil",
		Short: "Mostra e atualiza perfis",
	}
	cmd.AddCommand(newPerfilVerCmd(), newPerfilCompletarCmd(), newPerfilPedidosCmd())
	return cmd
}

func newPerfilVerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ver [userId]",
		Short: "Mostra seu perfil, ou o de outro usuário",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(app *cli.App) error {
				var user *models.User
				var err error
				if len(args) == 1 {
					user, err = app.Client.GetUser(cmd.Context(), args[0])
				} else {
					user = app.Session.User()
				}
				if err != nil {
					return err
				}

				if app.JSON {
					return printJSON(cmd, user)
				}
				cmd.Printf("%s <%s>\n", user.Name, user.Email)
				if user.Telefone != "" {
					cmd.Printf("Telefone: %s\n", user.Telefone)
				}
				if user.Endereco != nil {
					cmd.Printf("Endereço: %s, %s - %s, %s/%s\n",
						user.Endereco.Rua, user.Endereco.Numero,
						user.Endereco.Bairro, user.Endereco.Cidade, user.Endereco.Estado)
				}
				if !user.ProfileComplete() {
					cmd.Println("⚠ Perfil incompleto.")
				}
				return nil
			})
		},
	}
}

func newPerfilCompletarCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completar",
		Short: "Preenche os dados de contato e endereço do seu perfil",
	}
	cmd.Flags().String("nome", "", "Nome de exibição")
	cmd.Flags().String("cpf", "", "CPF (somente dígitos)")
	cmd.Flags().String("telefone", "", "Telefone (somente dígitos)")
	cmd.Flags().String("nascimento", "", "Data de nascimento (AAAA-MM-DD)")
	cmd.Flags().String("sexo", "", "Gênero")
	cmd.Flags().String("avatar", "", "Caminho de uma imagem de avatar")
	cmd.Flags().String("rua", "", "Rua")
	cmd.Flags().String("numero", "", "Número")
	cmd.Flags().String("bairro", "", "Bairro")
	cmd.Flags().String("cidade", "", "Cidade")
	cmd.Flags().String("estado", "", "Estado (UF)")
	cmd.Flags().String("cep", "", "CEP (somente dígitos)")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(app *cli.App) error {
			get := func(name string) string {
				v, _ := cmd.Flags().GetString(name)
				return v
			}

			upd := api.ProfileUpdate{
				Name:             get("nome"),
				CPF:              get("cpf"),
				Telefone:         get("telefone"),
				DataDeNascimento: get("nascimento"),
				Sexo:             get("sexo"),
				AvatarPath:       get("avatar"),
				Endereco: models.Endereco{
					Rua:    get("rua"),
					Numero: get("numero"),
					Bairro: get("bairro"),
					Cidade: get("cidade"),
					Estado: get("estado"),
					CEP:    get("cep"),
				},
			}

			user, err := app.Client.UpdateProfile(cmd.Context(), upd)
			if err != nil {
				return err
			}
			app.Session.SetUser(user)

			cmd.Println("Perfil atualizado com sucesso!")
			if !user.ProfileComplete() {
				cmd.Println("⚠ Ainda faltam CPF e/ou telefone.")
			}
			return nil
		})
	}
	return cmd
}

func newPerfilPedidosCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pedidos <userId>",
		Short: "Lista os pedidos criados por um usuário",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(app *cli.App) error {
				pedidos, err := app.Client.GetUserPedidos(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if app.JSON {
					return printJSON(cmd, pedidos)
				}
				if len(pedidos) == 0 {
					cmd.Println("Este usuário ainda não criou pedidos.")
					return nil
				}
				for _, p := range pedidos {
					cmd.Println(cli.RenderPedido(p))
				}
				return nil
			})
		},
	}
}
