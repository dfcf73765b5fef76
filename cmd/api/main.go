package main

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"hydromap/internal/actionable"
	"hydromap/internal/auth"
	"hydromap/internal/config"
	"hydromap/internal/dataset"
	"hydromap/internal/export"
	"hydromap/internal/logger"
	"hydromap/internal/refresh"
	"hydromap/internal/server"
	"hydromap/internal/types"
	"hydromap/internal/viewmodel"
)

func main() {
	var configPath string

	rootCmd := &cobra.Command{
		Use:          "api",
		Short:        "HydroMap green-hydrogen dashboard service",
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML config file (defaults to $HYDROMAP_CONFIG)")

	rootCmd.AddCommand(serveCmd(&configPath))
	rootCmd.AddCommand(summaryCmd(&configPath))
	rootCmd.AddCommand(exportCmd(&configPath))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

type app struct {
	cfg       config.Config
	log       *logger.Logger
	src       dataset.Source
	assembler *viewmodel.Assembler
}

func setup(configPath string) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	log := logger.NewWith(cfg.Environment, cfg.LogLevel, os.Stderr)
	log.WithField("service", "hydromap").
		WithField("data_source", cfg.DataSource).
		Info("starting")

	var src dataset.Source
	switch cfg.DataSource {
	case config.SourceXLSX:
		src = dataset.NewXLSXSource(cfg.DatasetPath, log)
	case config.SourceRemote:
		src = dataset.NewRemoteSource(cfg.RemoteBaseURL, cfg.FetchTimeout, log)
	default:
		src = dataset.NewMockSource(cfg.MockLatency, time.Now().UnixNano())
	}

	return &app{
		cfg:       cfg,
		log:       log,
		src:       src,
		assembler: viewmodel.New(cfg.Display, cfg.TrendWindow),
	}, nil
}

func (a *app) snapshot(ctx context.Context) (types.Snapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, a.cfg.FetchTimeout)
	defer cancel()
	return dataset.FetchSnapshot(ctx, a.src)
}

func serveCmd(configPath *string) *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the dashboard API and refresh live metrics in the background",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := setup(*configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("port") {
				a.cfg.Port = port
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			poller := refresh.NewPoller(a.src, a.assembler, a.cfg.RefreshInterval, a.cfg.FetchTimeout, a.log)
			go poller.Run(ctx)

			srv := server.New(server.Options{
				Source:       a.src,
				Assembler:    a.assembler,
				Auth:         auth.NewService(a.cfg.JWTSecret),
				Poller:       poller,
				FetchTimeout: a.cfg.FetchTimeout,
				Logger:       a.log,
			})
			return srv.ListenAndServe(ctx, ":"+a.cfg.Port)
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "8080", "HTTP server port")
	return cmd
}

func summaryCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Fetch one snapshot and print the headline figures",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := setup(*configPath)
			if err != nil {
				return err
			}
			snap, err := a.snapshot(cmd.Context())
			if err != nil {
				a.log.WithError(err).Error("snapshot fetch failed")
				return err
			}
			d := a.assembler.Dashboard(snap)

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(struct {
				Summary    viewmodel.DashboardSummary `json:"summary"`
				Regions    []viewmodel.RegionRow      `json:"regions"`
				Alerts     []types.Alert              `json:"alerts"`
				ActionCard actionable.ActionCard      `json:"actionCard"`
			}{d.Summary, d.Regions, d.Alerts, d.ActionCard})
		},
	}
}

func exportCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "export [file.xlsx]",
		Short: "Write the assembled dashboard to an Excel workbook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(*configPath)
			if err != nil {
				return err
			}
			snap, err := a.snapshot(cmd.Context())
			if err != nil {
				a.log.WithError(err).Error("snapshot fetch failed")
				return err
			}
			if err := export.WriteFile(args[0], a.assembler.Dashboard(snap)); err != nil {
				return err
			}
			a.log.WithField("path", args[0]).Info("dashboard exported")
			return nil
		},
	}
}
