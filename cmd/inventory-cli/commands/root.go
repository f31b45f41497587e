package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"netinventory/internal/components/telemetry"
	"netinventory/pkg/restyutil"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var verbose *bool
var dumpHTTP *string

func init() {
	verbose = rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging.")
	dumpHTTP = rootCmd.PersistentFlags().String("dump-http", "", "Write every http exchange of the netgear and poll commands into this directory.")
}

type httpDumper interface {
	DumpHTTP(output restyutil.Output)
}

func setupDump(client httpDumper) error {
	if *dumpHTTP == "" {
		return nil
	}
	output, err := restyutil.NewFilesystemOutput(*dumpHTTP)
	if err != nil {
		return err
	}
	client.DumpHTTP(output)
	return nil
}

var rootCmd = &cobra.Command{
	Use:   "inventory-cli",
	Short: "inventory-cli collects mac tables and device lists from switch and router web UIs.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		telemetry.InitSlog(*verbose)
	},
	SilenceUsage: true,
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newTable() table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(os.Stdout)
	return t
}

func printJSON(value any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(value)
}
