package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/doorstephq/doorstep/internal/config"
	"github.com/doorstephq/doorstep/internal/core/session"
	"github.com/doorstephq/doorstep/internal/core/store"
	errwrap "github.com/doorstephq/doorstep/internal/errors"
	"github.com/doorstephq/doorstep/internal/observability"
	"github.com/doorstephq/doorstep/internal/output"
	"github.com/doorstephq/doorstep/internal/photos"
)

var sessionsFormat string

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "Inspect and maintain brochure sessions",
}

var sessionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List brochure sessions and their edit usage",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		format, err := output.ParseFormat(sessionsFormat)
		if err != nil {
			return err
		}

		cfg, err := config.Load(cfgFile)
		if err != nil {
			return errwrap.WrapInternal(ctx, err, "configuration load failed")
		}

		db, err := store.Open(ctx, cfg.Store)
		if err != nil {
			return errwrap.WrapInternal(ctx, err, "store open failed")
		}
		defer db.Close() // nolint:errcheck // best-effort cleanup

		if err := db.Migrate(ctx); err != nil {
			return errwrap.WrapInternal(ctx, err, "store migration failed")
		}

		sessions, err := db.ListSessions(ctx)
		if err != nil {
			return errwrap.WrapInternal(ctx, err, "session listing failed")
		}

		rendered, err := output.NewFormatter(format).FormatSessions(sessions, time.Now())
		if err != nil {
			return err
		}

		fmt.Println(rendered)
		return nil
	},
}

var sessionsCleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Delete expired brochure sessions and their photos",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		cfg, err := config.Load(cfgFile)
		if err != nil {
			return errwrap.WrapInternal(ctx, err, "configuration load failed")
		}

		db, err := store.Open(ctx, cfg.Store)
		if err != nil {
			return errwrap.WrapInternal(ctx, err, "store open failed")
		}
		defer db.Close() // nolint:errcheck // best-effort cleanup

		if err := db.Migrate(ctx); err != nil {
			return errwrap.WrapInternal(ctx, err, "store migration failed")
		}

		photoStore, err := photos.NewStore(cfg.Sessions.PhotosDir)
		if err != nil {
			return errwrap.WrapInternal(ctx, err, "photo store init failed")
		}

		sessions, err := db.ListSessions(ctx)
		if err != nil {
			return errwrap.WrapInternal(ctx, err, "session listing failed")
		}

		now := time.Now()
		for _, s := range sessions {
			if !s.Expired(now) {
				continue
			}
			if err := photoStore.DeleteSession(s.SessionID); err != nil && !os.IsNotExist(err) {
				observability.CLILogger.Warn("Failed to remove session photos",
					zap.String("session_id", s.SessionID),
					zap.Error(err))
			}
		}

		ledger := session.NewLedger(db, cfg.Sessions.EditLimit, cfg.Sessions.TTL)
		deleted, err := ledger.CleanupExpired(ctx)
		if err != nil {
			return errwrap.WrapInternal(ctx, err, "session cleanup failed")
		}

		fmt.Printf("Deleted %d expired session(s)\n", deleted)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sessionsCmd)
	sessionsCmd.AddCommand(sessionsListCmd)
	sessionsCmd.AddCommand(sessionsCleanupCmd)

	sessionsListCmd.Flags().StringVarP(&sessionsFormat, "format", "f", "table", "output format (table, json, markdown)")
}
