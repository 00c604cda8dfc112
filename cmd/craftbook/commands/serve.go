package commands

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/craftbook/internal/config"
	"git.home.luguber.info/inful/craftbook/internal/daemon"
	"git.home.luguber.info/inful/craftbook/internal/logfields"
	"git.home.luguber.info/inful/craftbook/internal/metrics"
	"git.home.luguber.info/inful/craftbook/internal/server/httpserver"
)

// ServeCmd implements the 'serve' command.
type ServeCmd struct {
	Addr string `short:"a" help:"Override http.addr from the configuration"`
}

func (s *ServeCmd) Run(_ *Global, root *CLI) error {
	cfg, err := root.LoadConfig()
	if err != nil {
		return err
	}
	if s.Addr != "" {
		cfg.HTTP.Addr = s.Addr
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	return RunServe(ctx, cfg)
}

// RunServe starts the daemon and HTTP API and blocks until ctx is done.
func RunServe(ctx context.Context, cfg *config.Config) error {
	slog.Info("Starting craftbook server", slog.String("addr", cfg.HTTP.Addr), logfields.Path(cfg.Data.Dir))

	var (
		rec         metrics.Recorder = metrics.NoopRecorder{}
		metricsHTTP http.Handler
	)
	if cfg.Metrics.Enabled {
		promReg := prom.NewRegistry()
		rec = metrics.NewPrometheusRecorder(promReg)
		metricsHTTP = metrics.HTTPHandler(promReg)
	}

	d, err := daemon.New(cfg, daemon.Options{Recorder: rec})
	if err != nil {
		return err
	}
	if err := d.Start(ctx); err != nil {
		_ = d.Stop(context.Background())
		return err
	}

	srv := httpserver.New(cfg, httpserver.Runtime{
		Daemon:   d,
		Registry: d.Holder(),
		Sessions: d.Sessions(),
	}, httpserver.Options{Recorder: rec, MetricsHandler: metricsHTTP})
	if err := srv.Start(ctx); err != nil {
		_ = d.Stop(context.Background())
		return err
	}

	<-ctx.Done()
	slog.Info("Shutdown signal received, stopping server...")

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer stopCancel()

	var stopErr error
	if err := srv.Stop(stopCtx); err != nil {
		stopErr = fmt.Errorf("failed to stop http server: %w", err)
	}
	if err := d.Stop(stopCtx); err != nil && stopErr == nil {
		stopErr = fmt.Errorf("failed to stop daemon: %w", err)
	}
	if stopErr == nil {
		slog.Info("Server stopped successfully")
	}
	return stopErr
}
