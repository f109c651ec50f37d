package cmd

import (
	"github.com/spf13/cobra"

	"github.com/klausmullerDev/vizinhanca-cli/cli"
)

// NewLoginCmd creates the `login` command.
func NewLoginCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Autentica e guarda a sessão localmente",
	}

	cmd.Flags().String("email", "", "Email da conta")
	cmd.Flags().String("senha", "", "Senha (pedida interativamente quando omitida)")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		app, err := cli.NewApp(cmd)
		if err != nil {
			return err
		}
		verbose, _ := cmd.Flags().GetBool("verbose")
		handler := cli.NewErrorHandler(verbose)

		email, _ := cmd.Flags().GetString("email")
		if email == "" {
			if email, err = prompt(cmd, "Email"); err != nil {
				return err
			}
		}
		senha, _ := cmd.Flags().GetString("senha")
		if senha == "" {
			if senha, err = prompt(cmd, "Senha"); err != nil {
				return err
			}
		}

		user, err := app.Session.Login(cmd.Context(), email, senha)
		if err != nil {
			return handler.Handle(err)
		}

		cmd.Printf("Bem-vindo(a), %s!\n", user.Name)
		if app.Session.ProfileIncomplete() {
			cmd.Println("Seu perfil ainda está incompleto. Rode 'vizinhanca perfil completar'.")
		}
		return nil
	}

	return cmd
}

// NewRegisterCmd creates the `register` command.
func NewRegisterCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Cria uma conta nova",
	}

	cmd.Flags().String("nome", "", "Nome de exibição")
	cmd.Flags().String("email", "", "Email da conta")
	cmd.Flags().String("senha", "", "Senha (pedida interativamente quando omitida)")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		app, err := cli.NewApp(cmd)
		if err != nil {
			return err
		}
		verbose, _ := cmd.Flags().GetBool("verbose")
		handler := cli.NewErrorHandler(verbose)

		nome, _ := cmd.Flags().GetString("nome")
		if nome == "" {
			if nome, err = prompt(cmd, "Nome"); err != nil {
				return err
			}
		}
		email, _ := cmd.Flags().GetString("email")
		if email == "" {
			if email, err = prompt(cmd, "Email"); err != nil {
				return err
			}
		}
		senha, _ := cmd.Flags().GetString("senha")
		if senha == "" {
			if senha, err = prompt(cmd, "Senha"); err != nil {
				return err
			}
		}

		user, err := app.Session.Register(cmd.Context(), nome, email, senha)
		if err != nil {
			return handler.Handle(err)
		}

		cmd.Printf("Conta criada. Bem-vindo(a), %s!\n", user.Name)
		cmd.Println("Complete seu perfil com 'vizinhanca perfil completar'.")
		return nil
	}

	return cmd
}

// NewLogoutCmd creates the `logout` command.
func NewLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Encerra a sessão e apaga as credenciais locais",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := cli.NewApp(cmd)
			if err != nil {
				return err
			}
			app.Session.Logout()
			cmd.Println("Sessão encerrada.")
			return nil
		},
	}
}
