package main

import (
	"context"
	"flag"
	"log/slog"
	"net"
	"time"

	"netinventory/internal/collector"
	"netinventory/internal/components/browser"
	"netinventory/internal/components/serviceutil"
	"netinventory/internal/components/telemetry"
	"netinventory/internal/scrapers/netgear"
	"netinventory/internal/scrapers/sg200"
)

func initTelemetry(ctx context.Context, verbose bool) {
	telemetry.InitSlog(verbose)

	if verbose {
		slog.DebugContext(ctx, "verbose logging enabled")
	}

	providers, err := telemetry.SetupFromEnv(ctx, "collector")
	if err != nil {
		serviceutil.Fatal("setup telemetry", err)
	}
	go func() {
		<-ctx.Done()
		providers.Shutdown(context.Background())
	}()
	telemetry.InstrumentPerfStats(ctx, time.Minute, telemetry.SlogAPI{})
}

func main() {
	verbose := flag.Bool("v", false, "Enable verbose logging/instrumentation.")
	configPath := flag.String("config", "collector.json5", "Path to the collector config.")
	flag.Parse()

	ctx := serviceutil.SignalContext()

	initTelemetry(ctx, *verbose)
	tel := telemetry.SlogAPI{}

	cfg, err := collector.LoadConfig(*configPath, nil)
	if err != nil {
		serviceutil.Fatal("read config", err)
	}
	if len(cfg.AllowedIPs) == 0 && cfg.Token == "" && cfg.TokenSha256 == "" {
		slog.Warn("no allowed_ips or token configured, every client may collect")
	}

	launcher := browser.PlaywrightLauncher{
		Headless:          cfg.Browser.IsHeadless(),
		NavigationTimeout: cfg.Browser.NavigationTimeout(),
		SkipInstall:       cfg.Browser.SkipInstall,
	}

	server := collector.NewServer(collector.Options{
		Switches:  sg200.NewClient(launcher, cfg.Browser.Timing(), tel),
		Routers:   netgear.NewClient(cfg.Netgear.Timeout(), tel),
		Auth:      collector.NewAuthorizer(cfg.AllowedIPs, cfg.Token, cfg.TokenSha256),
		RateLimit: cfg.RateLimit,
		Tel:       tel,
	})

	listener, err := net.Listen("tcp", cfg.Addr())
	if err != nil {
		serviceutil.Fatal("listen on "+cfg.Addr(), err)
	}
	err = serviceutil.StartHttpServer(ctx, listener, server.Handler(), 30*time.Second)
	if err != nil {
		serviceutil.Fatal("serve http", err)
	}
}
