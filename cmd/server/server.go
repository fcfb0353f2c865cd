package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/steveyiyo/videocall-backend/internal/config"
	h "github.com/steveyiyo/videocall-backend/internal/http"
	"github.com/steveyiyo/videocall-backend/internal/logger"
)

func main() {
	_ = godotenv.Load()
	if err := rootCmd().Execute(); err != nil {
		log.Fatal(err)
	}
}

func rootCmd() *cobra.Command {
	v := config.New()
	var cfgFile string

	cmd := &cobra.Command{
		Use:           "videocall-server",
		Short:         "Issues video call rooms for the telehealth web client",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfgFile != "" {
				v.SetConfigFile(cfgFile)
			}
			cfg, err := config.Load(v)
			if err != nil {
				return err
			}
			return serve(cmd.Context(), cfg)
		},
	}
	cmd.Flags().StringVar(&cfgFile, "config", "", "path to a yaml config file")
	cmd.Flags().String("port", "", "listen port (overrides PORT)")
	cmd.Flags().String("signaling-server", "", "signaling server address handed to clients")
	_ = v.BindPFlag("PORT", cmd.Flags().Lookup("port"))
	_ = v.BindPFlag("SIGNALING_SERVER", cmd.Flags().Lookup("signaling-server"))
	return cmd
}

func serve(parent context.Context, cfg config.Config) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	zl, err := logger.New(cfg)
	if err != nil {
		return err
	}
	defer zl.Sync()

	r, err := h.NewRouter(cfg, zl)
	if err != nil {
		return err
	}
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		zl.Info("video call service started",
			zap.String("addr", srv.Addr),
			zap.String("base_path", cfg.BasePath),
			zap.String("signaling_server", cfg.SignalingServer),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	zl.Info("shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	zl.Info("server exited gracefully")
	return nil
}
