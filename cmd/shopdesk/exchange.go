package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xenking/shopdesk/internal/exchange"
)

func (c *cli) exportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export <path>",
		Short: "Export clients to a .csv or .json file, optionally .gz",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.open(cmd.Context())
			if err != nil {
				return err
			}
			n, err := exchange.ExportFile(cmd.Context(), a.Store.Clients(), args[0])
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Exported %d clients to %s\n", n, args[0])
			return err
		},
	}
}

func (c *cli) importCmd() *cobra.Command {
	var (
		skipInvalid bool
		opts        exchange.Options
	)
	cmd := &cobra.Command{
		Use:   "import <path>",
		Short: "Import clients from a .csv or .json file, optionally .gz",
		Long: `Import clients from a file. Ids in the file are ignored.

By default the first malformed record aborts the import and nothing is
stored. --skip-invalid stores the well-formed records and lists the rest.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if skipInvalid {
				opts.Policy = exchange.SkipInvalid
			}
			a, err := c.open(cmd.Context())
			if err != nil {
				return err
			}
			res, err := exchange.NewImporter(a.Store.Clients(), c.lg.Named("import"), opts).
				ImportFile(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if _, err := fmt.Fprintf(out, "Imported %d clients, skipped %d\n", len(res.Imported), len(res.Skipped)); err != nil {
				return err
			}
			for _, s := range res.Skipped {
				if _, err := fmt.Fprintf(out, "  record %d: %s\n", s.Record, s.Reason); err != nil {
					return err
				}
			}
			return nil
		},
	}
	flags := cmd.Flags()
	flags.BoolVar(&skipInvalid, "skip-invalid", false, "skip malformed records instead of aborting")
	flags.BoolVar(&opts.RequireValid, "require-valid", false, "treat clients with an invalid phone or email as malformed")
	flags.BoolVar(&opts.SkipExisting, "skip-existing", false, "skip clients whose email is already stored")
	return cmd
}
