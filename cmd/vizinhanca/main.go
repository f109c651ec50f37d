package main

import (
	"os"

	"github.com/klausmullerDev/vizinhanca-cli/cli"
	"github.com/klausmullerDev/vizinhanca-cli/cmd"
)

func main() {
	rootCmd := cli.NewStandardCommand(
		"vizinhanca",
		"Cliente da vizinhança: pedidos de ajuda entre vizinhos",
	)

	// Add subcommands
	rootCmd.AddCommand(cmd.NewLoginCmd())
	rootCmd.AddCommand(cmd.NewRegisterCmd())
	rootCmd.AddCommand(cmd.NewLogoutCmd())
	rootCmd.AddCommand(cmd.NewPedidosCmd())
	rootCmd.AddCommand(cmd.NewPerfilCmd())
	rootCmd.AddCommand(cmd.NewNotificacoesCmd())
	rootCmd.AddCommand(cmd.NewChatCmd())
	rootCmd.AddCommand(cmd.NewVersionCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
