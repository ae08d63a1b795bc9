package main

import (
	"github.com/spf13/cobra"

	"planline/internal/config"
	"planline/internal/update"
)

func newBrowseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "browse [dir]",
		Short: "Browse parsed task records in an interactive terminal UI",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			records, err := collectRecords(vaultDir(cfg, args))
			if err != nil {
				return err
			}
			return update.Run(update.NewModel(records, cfg.Dialect()))
		},
	}
	return cmd
}
