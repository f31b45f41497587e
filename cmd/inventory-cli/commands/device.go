package commands

import (
	"fmt"
	"sort"
	"time"

	"netinventory/internal/components/browser"
	"netinventory/internal/components/telemetry"
	"netinventory/internal/scrapers/netgear"
	"netinventory/internal/scrapers/sg200"
	"netinventory/internal/scrapers/webui"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

type deviceFlags struct {
	ip         *string
	user       *string
	pass       *string
	json       *bool
	headful    *bool
	navTimeout *time.Duration
}

func addDeviceFlags(cmd *cobra.Command) deviceFlags {
	flags := deviceFlags{
		ip:   cmd.Flags().String("ip", "", "Address of the device web UI."),
		user: cmd.Flags().String("user", "", "Web UI username."),
		pass: cmd.Flags().String("pass", "", "Web UI password."),
		json: cmd.Flags().Bool("json", false, "Print the result as json instead of a table."),
	}
	cmd.MarkFlagRequired("ip")
	cmd.MarkFlagRequired("user")
	cmd.MarkFlagRequired("pass")
	return flags
}

func addBrowserFlags(cmd *cobra.Command, flags *deviceFlags) {
	flags.headful = cmd.Flags().Bool("headful", false, "Show the browser window.")
	flags.navTimeout = cmd.Flags().Duration("nav-timeout", 15*time.Second, "Timeout of a single page navigation.")
}

func (f deviceFlags) switchClient() *sg200.Client {
	launcher := browser.PlaywrightLauncher{
		Headless:          !*f.headful,
		NavigationTimeout: *f.navTimeout,
	}
	return sg200.NewClient(launcher, webui.DefaultTiming, telemetry.SlogAPI{})
}

var macTableFlags deviceFlags
var summaryFlags deviceFlags
var netgearFlags deviceFlags

func init() {
	macTableFlags = addDeviceFlags(macTableCmd)
	addBrowserFlags(macTableCmd, &macTableFlags)
	rootCmd.AddCommand(macTableCmd)

	summaryFlags = addDeviceFlags(summaryCmd)
	addBrowserFlags(summaryCmd, &summaryFlags)
	rootCmd.AddCommand(summaryCmd)

	netgearFlags = addDeviceFlags(netgearCmd)
	rootCmd.AddCommand(netgearCmd)
}

var macTableCmd = &cobra.Command{
	Use:   "mac-table --ip <switch> --user <user> --pass <pass>",
	Short: "Prints the dynamic mac table of a Cisco SG200 switch.",
	RunE: func(cmd *cobra.Command, args []string) error {
		f := macTableFlags
		entries, err := f.switchClient().FetchMacTable(cmd.Context(), *f.ip, *f.user, *f.pass)
		if err != nil {
			return err
		}
		if *f.json {
			return printJSON(entries)
		}

		t := newTable()
		t.AppendHeader(table.Row{"VLAN", "MAC", "Port"})
		for _, e := range entries {
			t.AppendRow(table.Row{e.Vlan, e.Mac, e.PortIndex})
		}
		t.AppendFooter(table.Row{"", "Total", len(entries)})
		t.Render()
		return nil
	},
}

var summaryCmd = &cobra.Command{
	Use:   "summary --ip <switch> --user <user> --pass <pass>",
	Short: "Prints the system summary of a Cisco SG200 switch.",
	RunE: func(cmd *cobra.Command, args []string) error {
		f := summaryFlags
		summary, err := f.switchClient().FetchSystemSummary(cmd.Context(), *f.ip, *f.user, *f.pass)
		if err != nil {
			return err
		}
		if *f.json {
			return printJSON(summary)
		}

		fields := make([]string, 0, len(summary))
		for field := range summary {
			fields = append(fields, field)
		}
		sort.Strings(fields)

		t := newTable()
		t.AppendHeader(table.Row{"Field", "Value"})
		for _, field := range fields {
			t.AppendRow(table.Row{field, summary[field]})
		}
		t.Render()
		return nil
	},
}

var netgearCmd = &cobra.Command{
	Use:   "netgear --ip <router> --user <user> --pass <pass>",
	Short: "Prints the access control list of a Netgear router.",
	RunE: func(cmd *cobra.Command, args []string) error {
		f := netgearFlags
		client := netgear.NewClient(netgear.DefaultTimeout, telemetry.SlogAPI{})
		if err := setupDump(client); err != nil {
			return err
		}
		entries, err := client.FetchAccessControlEntries(cmd.Context(), *f.ip, *f.user, *f.pass)
		if err != nil {
			return err
		}
		if *f.json {
			return printJSON(entries)
		}

		t := newTable()
		t.AppendHeader(table.Row{"IP", "MAC", "Status", "Connection", "Name"})
		for _, e := range entries {
			t.AppendRow(table.Row{e.IP, e.Mac, e.Status, e.ConnType, e.Name})
		}
		t.AppendFooter(table.Row{"", "", "", "Total", fmt.Sprint(len(entries))})
		t.Render()
		return nil
	},
}
