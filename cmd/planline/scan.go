package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"planline/internal/config"
	"planline/internal/taskline"
)

func newScanCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "scan [dir]",
		Short: "Parse all task lines under a directory and print the records",
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
			log.Debug().Str("dir", dir).Int("records", len(records)).Msg("scan complete")

			if asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(records)
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tDIALECT\tSCHEDULED\tDUE\tTITLE")
			for _, rec := range records {
				format := taskline.Detect(rec.OriginalText, cfg.Dialect())
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					rec.ID, format.Main, rec.Scheduled, rec.Due, rec.Title)
			}
			return w.Flush()
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print records as JSON")
	return cmd
}
