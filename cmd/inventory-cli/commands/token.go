package commands

import (
	"netinventory/internal/collector"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/mazen160/go-random"
	"github.com/spf13/cobra"
)

var tokenLength *int

func init() {
	tokenLength = tokenCmd.Flags().Int("length", 32, "Length of the generated token.")
	rootCmd.AddCommand(tokenCmd)
}

var tokenCmd = &cobra.Command{
	Use:   "token [--length <n>]",
	Short: "Generates a collector token and the token_sha256 to configure for it.",
	RunE: func(cmd *cobra.Command, args []string) error {
		token, err := random.String(*tokenLength)
		if err != nil {
			return err
		}

		t := newTable()
		t.AppendRow(table.Row{"token", token})
		t.AppendRow(table.Row{"token_sha256", collector.HashToken(token)})
		t.Render()
		return nil
	},
}
