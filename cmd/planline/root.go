package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"planline/internal/config"
	"planline/internal/logging"
	"planline/internal/model"
	"planline/internal/taskline"
	"planline/internal/vault"
)

var (
	configPath string
	debug      bool
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "planline",
		Short:         "Parse, rewrite and index markdown task lines",
		Long:          "planline scans a directory of markdown documents, parses every task line into a structured record, and can rewrite or index the results.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.Init(debug)
		},
	}

	cmd.PersistentFlags().StringVar(&configPath, "config", "planline.yaml", "path of the config file")
	cmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	cmd.AddCommand(newScanCmd())
	cmd.AddCommand(newRewriteCmd())
	cmd.AddCommand(newIndexCmd())
	cmd.AddCommand(newBrowseCmd())
	return cmd
}

// vaultDir resolves the scan root: an explicit argument wins over the
// configured vault.
func vaultDir(cfg config.Config, args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return cfg.Vault
}

// collectRecords scans dir and parses every task item found in it.
func collectRecords(dir string) ([]model.Record, error) {
	items, err := vault.ScanDir(dir)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", dir, err)
	}
	records := make([]model.Record, 0, len(items))
	for _, item := range items {
		records = append(records, taskline.Parse(item))
	}
	return records, nil
}
