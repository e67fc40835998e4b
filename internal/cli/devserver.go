package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/tgienger/yusra/internal/config"
	"github.com/tgienger/yusra/internal/fakeapi"
)

var devServerCmd = &cobra.Command{
	Use:   "dev-server",
	Short: "Run an in-memory Yusra API for local development",
	Long: `Run an in-memory implementation of the Yusra REST API under /api.

Point the client at it with:

  YUSRA_SERVER_BASE_URL=http://127.0.0.1:8080/api yusra

Nothing is persisted; stopping the server forgets every account and board.`,
	RunE: runDevServer,
}

func init() {
	devServerCmd.Flags().String("addr", "", "listen address (default from config dev_server.addr)")
	devServerCmd.Flags().StringSlice("seed-user", nil, "create an account up front, as email:password (repeatable)")
}

func runDevServer(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	addr, _ := cmd.Flags().GetString("addr")
	if addr == "" {
		addr = cfg.DevServer.Addr
	}
	seeds, _ := cmd.Flags().GetStringSlice("seed-user")

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	backend := fakeapi.New(logger)
	for _, seed := range seeds {
		email, password, ok := strings.Cut(seed, ":")
		if !ok || email == "" || password == "" {
			return fmt.Errorf("invalid --seed-user %q, want email:password", seed)
		}
		name, _, _ := strings.Cut(email, "@")
		backend.CreateUser(name, email, password)
		logger.Info("seeded user", "email", email)
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           backend.Handler("/api"),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() {
		logger.Info("dev server listening", "addr", addr, "base_url", "http://"+addr+"/api")
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("dev server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
