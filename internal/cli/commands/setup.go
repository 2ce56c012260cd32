package commands

import (
	"io"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/talotukku/edimport/internal/config"
	"github.com/talotukku/edimport/internal/store"
)

// Database file names under the data directory.
const (
	SellersDBName = "sellers.db"
	BuyersDBName  = "buyers.db"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg    *config.Config
	Logger *slog.Logger
	Store  *store.Store
}

// NewCommandContext loads configuration and opens the migrated databases.
// Returns the context and a cleanup function that must be called (typically
// via defer).
func NewCommandContext(cmd *cobra.Command) (*CommandContext, func(), error) {
	cfg, err := config.Load(cmd.Root().PersistentFlags())
	if err != nil {
		return nil, nil, err
	}

	logger := newLogger(cmd.ErrOrStderr(), cfg.Verbose)

	st, err := store.Open(
		filepath.Join(cfg.Dir, SellersDBName),
		filepath.Join(cfg.Dir, BuyersDBName),
	)
	if err != nil {
		return nil, nil, err
	}

	if err := st.Migrate(); err != nil {
		st.Close()
		return nil, nil, err
	}

	cleanup := func() { _ = st.Close() }

	return &CommandContext{Cfg: cfg, Logger: logger, Store: st}, cleanup, nil
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
