package cmd

import (
	"github.com/spf13/cobra"

	"github.com/klausmullerDev/vizinhanca-cli/version"
)

// NewVersionCmd creates the `version` command.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Mostra a versão do cliente",
		RunE: func(cmd *cobra.Command, args []string) error {
			info := version.GetInfo()
			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				return printJSON(cmd, info)
			}
			cmd.Println(info.String())
			return nil
		},
	}
}
