// Package cli implements the giftd commands.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/robalobadob/giftbox/internal/config"
	"github.com/robalobadob/giftbox/internal/gifts"
	"github.com/robalobadob/giftbox/internal/store"
)

// flags shared by every command; empty values leave the env config alone.
type rootFlags struct {
	envFile string
	store   string
	db      string
	cfg     config.Config
}

// NewRootCmd builds the giftd command tree.
func NewRootCmd() *cobra.Command {
	f := &rootFlags{}
	root := &cobra.Command{
		Use:           "giftd",
		Short:         "Interactive gift builder API",
		Long:          "Serve, validate and inspect shareable gifts: a theme, up to three interactive screens and a closing note.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return f.load(cmd)
		},
	}
	root.PersistentFlags().StringVar(&f.envFile, "env-file", "", "Path to a .env file (default: ./.env if present)")
	root.PersistentFlags().StringVar(&f.store, "store", "", "Store driver: memory, sqlite or postgres (default: $STORE_DRIVER)")
	root.PersistentFlags().StringVar(&f.db, "db", "", "Database path or DSN (default: $DATABASE_URL)")

	root.AddCommand(newServeCmd(f), newValidateCmd(), newGetCmd(f), newCountCmd(f), newPreviewCmd(f))
	return root
}

func (f *rootFlags) load(cmd *cobra.Command) error {
	var files []string
	if f.envFile != "" {
		files = append(files, f.envFile)
	}
	cfg, err := config.Load(files...)
	if err != nil {
		return err
	}
	if f.store != "" {
		cfg.StoreDriver = f.store
	}
	if f.db != "" {
		cfg.DatabaseURL = f.db
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	cfg.SetupLogging(cmd.ErrOrStderr())
	f.cfg = cfg
	return nil
}

// openStore opens the backend named by cfg.StoreDriver.
func openStore(cfg config.Config) (store.Store, error) {
	switch cfg.StoreDriver {
	case config.DriverMemory:
		return store.NewMemoryStore(), nil
	case config.DriverSQLite:
		return store.OpenSQLite(cfg.DatabaseURL)
	case config.DriverPostgres:
		return store.OpenPostgres(cfg.DatabaseURL)
	}
	return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
}

// openService opens the store and wraps it; callers close the store.
func openService(cfg config.Config) (*gifts.Service, store.Store, error) {
	st, err := openStore(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("open store: %w", err)
	}
	svc, err := gifts.NewService(st, []byte(cfg.DigestKey))
	if err != nil {
		_ = st.Close()
		return nil, nil, err
	}
	return svc, st, nil
}
