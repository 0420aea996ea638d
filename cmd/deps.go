package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/abhisek/smartquiz/internal/bank"
	"github.com/abhisek/smartquiz/internal/config"
	"github.com/abhisek/smartquiz/internal/explain"
	"github.com/abhisek/smartquiz/internal/history"
	"github.com/abhisek/smartquiz/internal/llm"
	"github.com/abhisek/smartquiz/internal/store"
)

// deps holds everything a command needs, built from config and flags.
type deps struct {
	cfg     config.Config
	bank    *bank.Bank
	history *history.Log
	logger  *slog.Logger
	closers []func() error
}

// loadDeps reads config, opens the history backend, and loads the bank.
// Logs go to stderr, or to the log file when logToFile is set.
func loadDeps(cmd *cobra.Command, logToFile bool) (*deps, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	d := &deps{cfg: cfg}

	var logOut io.Writer = cmd.ErrOrStderr()
	if logToFile {
		f, err := openLogFile(cfg.Log.File)
		if err != nil {
			return nil, err
		}
		d.closers = append(d.closers, f.Close)
		logOut = f
	}
	level, _ := config.ParseLevel(cfg.Log.Level)
	d.logger = slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{Level: level}))

	d.bank = bank.Default()
	if cfg.Quiz.BankFile != "" {
		b, err := bank.LoadFile(cfg.Quiz.BankFile)
		if err != nil {
			d.Close()
			return nil, fmt.Errorf("load question bank: %w", err)
		}
		d.bank = b
	}

	records, err := d.openRecords(cmd)
	if err != nil {
		d.Close()
		return nil, err
	}
	d.history = history.NewLog(records, d.logger)
	return d, nil
}

func (d *deps) openRecords(cmd *cobra.Command) (history.RecordStore, error) {
	backend := d.cfg.History.Backend
	if ephemeral, _ := cmd.Flags().GetBool("ephemeral"); ephemeral {
		backend = config.BackendMemory
	}

	switch backend {
	case config.BackendMemory:
		return history.NewMemoryRecords(), nil

	case config.BackendRedis:
		timeout := d.cfg.RedisTimeout(2 * time.Second)
		client := redis.NewClient(&redis.Options{
			Addr:         d.cfg.History.Redis.Addr,
			Password:     d.cfg.History.Redis.Password,
			DB:           d.cfg.History.Redis.DB,
			DialTimeout:  timeout,
			ReadTimeout:  timeout,
			WriteTimeout: timeout,
		})
		records := store.NewRedisRecords(client)
		d.closers = append(d.closers, records.Close)

		ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
		defer cancel()
		if err := records.Ping(ctx); err != nil {
			// History degrades to empty rather than blocking play.
			d.logger.Warn("redis unreachable", "addr", d.cfg.History.Redis.Addr, "error", err)
		}
		return records, nil

	default:
		dbPath, err := resolveDBPath(cmd, d.cfg.History.DBPath)
		if err != nil {
			return nil, fmt.Errorf("resolve DB path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return nil, fmt.Errorf("open store: %w", err)
		}
		d.closers = append(d.closers, st.Close)
		return st.Records(), nil
	}
}

// explainer builds the optional explainer. A missing or broken LLM setup is
// reported and leaves explanations disabled.
func (d *deps) explainer(ctx context.Context, warn io.Writer) *explain.Explainer {
	cfg, ok := llm.ConfigFromEnv()
	if !ok {
		d.logger.Debug("no LLM provider configured")
		return explain.New(nil, d.logger)
	}
	provider, err := llm.NewProvider(ctx, cfg, d.logger)
	if err != nil {
		fmt.Fprintln(warn, "LLM provider not configured:", err)
		fmt.Fprintln(warn, "Explanations will be unavailable.")
		return explain.New(nil, d.logger)
	}
	return explain.New(provider, d.logger)
}

func (d *deps) categories() []bank.Category {
	return d.bank.Categories()
}

// Close releases the history backend.
func (d *deps) Close() error {
	var errs []error
	for i := len(d.closers) - 1; i >= 0; i-- {
		errs = append(errs, d.closers[i]())
	}
	d.closers = nil
	return errors.Join(errs...)
}

// openLogFile opens the play log, which cannot share the terminal with the UI.
func openLogFile(configured string) (*os.File, error) {
	path := configured
	if path == "" {
		dir, err := store.DataDir()
		if err != nil {
			return nil, err
		}
		path = filepath.Join(dir, "smartquiz.log")
	}
	if err := store.EnsureDir(path); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}
