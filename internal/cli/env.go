package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/tgienger/yusra/internal/api"
	"github.com/tgienger/yusra/internal/config"
	"github.com/tgienger/yusra/internal/db"
	"github.com/tgienger/yusra/internal/session"
)

// env is everything a command needs to talk to the server
type env struct {
	cfg     *config.Config
	log     *slog.Logger
	logFile io.Closer
	db      *db.DB
	session *session.Session
	client  *api.Client
}

func openEnv() (*env, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	logger, logFile, err := openLogger(cfg.LogPath())
	if err != nil {
		return nil, err
	}

	database, err := db.New(cfg.DatabasePath())
	if err != nil {
		logFile.Close()
		return nil, fmt.Errorf("open database: %w", err)
	}

	sess, err := session.Open(database)
	if err != nil {
		database.Close()
		logFile.Close()
		return nil, err
	}

	client := api.New(cfg.Server.BaseURL, sess, api.WithLogger(logger))
	logger.Debug("environment ready", "server", cfg.Server.BaseURL, "db", cfg.DatabasePath())

	return &env{
		cfg:     cfg,
		log:     logger,
		logFile: logFile,
		db:      database,
		session: sess,
		client:  client,
	}, nil
}

func (e *env) Close() {
	e.db.Close()
	e.logFile.Close()
}

// openLogger writes to a file since the terminal belongs to the UI
func openLogger(path string) (*slog.Logger, *os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level})), f, nil
}
