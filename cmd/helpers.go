// Package cmd implements the vizinhanca subcommands.
package cmd

import (
	"bufio"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// prompt reads one line from the command's stdin, asking first.
func prompt(cmd *cobra.Command, question string) (string, error) {
	fmt.Fprintf(cmd.OutOrStdout(), "%s: ", question)
	reader := bufio.NewReader(cmd.InOrStdin())
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// confirm asks a y/N question; anything but y/yes/s/sim is a no.
func confirm(cmd *cobra.Command, question string) bool {
	answer, err := prompt(cmd, question+" [y/N]")
	if err != nil {
		return false
	}
	switch strings.ToLower(answer) {
	case "y", "yes", "s", "sim":
		return true
	}
	return false
}

// printJSON writes v as indented JSON for --json output.
func printJSON(cmd *cobra.Command, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	cmd.Println(string(data))
	return nil
}
