package commands

import (
	"context"
	"log/slog"

	"netinventory/internal/components/chrono"
	"netinventory/internal/components/telemetry"
	"netinventory/internal/poll"

	"github.com/spf13/cobra"
)

var (
	pollCollector   *string
	pollToken       *string
	pollInventory   *string
	pollKind        *string
	pollCron        *string
	pollConcurrency *int
	pollTest        *bool
)

func init() {
	pollCollector = pollCmd.Flags().String("collector", "http://127.0.0.1:8080", "Base url of the collector.")
	pollToken = pollCmd.Flags().String("token", "", "Shared collector token, sent as X-Collector-Token.")
	pollInventory = pollCmd.Flags().String("inventory", "inventory.txt", "File of 'ip,username,password' lines.")
	pollKind = pollCmd.Flags().String("kind", "sg200", "Device family of the inventory: sg200 or netgear.")
	pollCron = pollCmd.Flags().String("cron", "", "Repeat the poll on this cron schedule instead of once.")
	pollConcurrency = pollCmd.Flags().Int("concurrency", 4, "Devices collected at the same time.")
	pollTest = pollCmd.Flags().Bool("test", false, "Only check that the first device can be collected.")
	rootCmd.AddCommand(pollCmd)
}

func pollOnce(ctx context.Context, poller *poll.Poller, tel telemetry.API) error {
	devices, err := poll.ReadInventoryFile(*pollInventory, tel)
	if err != nil {
		return err
	}
	if *pollTest {
		return printJSON(poller.Test(ctx, devices))
	}
	return printJSON(poller.Poll(ctx, devices))
}

var pollCmd = &cobra.Command{
	Use:   "poll --collector <url> --inventory <file> [--kind sg200|netgear] [--cron <schedule>]",
	Short: "Collects every inventory device through a collector and prints NAC endpoints.",
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := poll.ParseKind(*pollKind)
		if err != nil {
			return err
		}
		tel := telemetry.SlogAPI{}
		client := poll.NewCollectorClient(*pollCollector, *pollToken, poll.DefaultCollectorTimeout, tel)
		if err := setupDump(client); err != nil {
			return err
		}
		poller := poll.NewPoller(poll.Options{
			Client:      client,
			Kind:        kind,
			Concurrency: *pollConcurrency,
			Tel:         tel,
		})

		ctx := cmd.Context()
		if *pollCron == "" {
			return pollOnce(ctx, poller, tel)
		}

		clock, err := chrono.NewStandardImpl("")
		if err != nil {
			return err
		}
		cron := chrono.NewStandardCron(clock, tel)
		err = cron.Cron(*pollCron, func() {
			err := pollOnce(ctx, poller, tel)
			if err != nil {
				slog.Error("poll failed", "err", err)
			}
		})
		if err != nil {
			return err
		}
		slog.Info("polling on schedule", "cron", *pollCron)

		<-ctx.Done()
		<-cron.Stop().Done()
		return nil
	},
}
