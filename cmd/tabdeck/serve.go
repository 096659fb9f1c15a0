package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"pkt.systems/pslog"
	"pkt.systems/tabdeck"
	"pkt.systems/tabdeck/core"
	"pkt.systems/tabdeck/httpapi"
	"pkt.systems/tabdeck/internal/appconfig"
	"pkt.systems/tabdeck/internal/commandsource"
	"pkt.systems/tabdeck/internal/themestore"
	"pkt.systems/tabdeck/internal/windowhub"
	"pkt.systems/tabdeck/schema"
)

func newServeCmd() *cobra.Command {
	var cfgPath string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the tabdeck server",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := pslog.Ctx(cmd.Context())
			cfg, err := appconfig.Load(cfgPath)
			if err != nil {
				return err
			}

			serviceCfg := schema.ServiceConfig{
				DefaultTheme:  schema.ThemeName(cfg.Theme.Default),
				DefaultEngine: schema.EngineID(cfg.Engines.Default),
			}

			themes, err := themestore.NewStoreWithLogger(cfg.StateDir, logger)
			if err != nil {
				return err
			}

			windows := windowhub.New(logger)

			commands := commandsource.NewCached(
				commandsource.Static{},
				time.Duration(cfg.Commands.CacheTTLSeconds)*time.Second,
				logger,
			)

			serverCfg := tabdeck.ServerConfig{
				Service:    serviceCfg,
				HTTP:       toHTTPConfig(cfg.HTTP),
				BusDepth:   cfg.Bus.Depth,
				HubHistory: cfg.HTTP.HubHistory,
			}
			serverDeps := tabdeck.ServerDeps{
				ServiceDeps: core.ServiceDeps{
					Commands:   commands,
					ThemeStore: themes,
					Titlebar:   windows,
					EventSink:  windowhub.NewSink(windows),
					Logger:     logger,
				},
			}
			server, err := tabdeck.New(serverCfg, serverDeps, tabdeck.WithHTTP())
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			go func() {
				<-ctx.Done()
				stopCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				if err := server.Stop(stopCtx); err != nil {
					logger.Warn("server stop failed", "err", err)
				}
			}()
			logger.Info("http server listening", "addr", serverCfg.HTTP.Addr)
			if err := server.Start(ctx); err != nil {
				return err
			}
			return server.Wait()
		},
	}
	cmd.Flags().StringVarP(&cfgPath, "config", "c", "", "path to config file")
	return cmd
}

func toHTTPConfig(cfg appconfig.HTTPConfig) httpapi.Config {
	return httpapi.Config{
		Addr:       cfg.Addr,
		HubHistory: cfg.HubHistory,
	}
}
