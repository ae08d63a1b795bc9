package main

import (
	"database/sql"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"planline/internal/config"
	"planline/internal/storage"
	"planline/internal/taskline"
)

func newIndexCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "index [dir]",
		Short: "Parse all task lines and store the records in the sqlite index",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			dir := vaultDir(cfg, args)
			records, err := collectRecords(dir)
			if err != nil {
				return err
			}

			db, err := sql.Open("sqlite3", cfg.Database)
			if err != nil {
				return fmt.Errorf("open sqlite: %w", err)
			}
			defer db.Close()
			if err := storage.MigrateUp(db); err != nil {
				return err
			}
			repo, err := storage.NewSQLiteRepository(db)
			if err != nil {
				return err
			}

			byPath := make(map[string][]storage.Record)
			for _, rec := range records {
				format := taskline.Detect(rec.OriginalText, cfg.Dialect())
				row, err := storage.FromModel(rec, format.Main)
				if err != nil {
					return fmt.Errorf("record %s: %w", rec.ID, err)
				}
				byPath[rec.Path] = append(byPath[rec.Path], row)
			}
			for path, rows := range byPath {
				if err := repo.ReplacePath(cmd.Context(), path, rows); err != nil {
					return fmt.Errorf("index %s: %w", path, err)
				}
				log.Debug().Str("path", path).Int("records", len(rows)).Msg("indexed")
			}

			log.Info().Str("database", cfg.Database).Int("files", len(byPath)).
				Int("records", len(records)).Msg("index updated")
			return nil
		},
	}
	return cmd
}
