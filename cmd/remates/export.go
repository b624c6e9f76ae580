package main

import (
	"fmt"

	"github.com/caesgo22-droid/IA-Remates-CR/internal/cli"
	"github.com/caesgo22-droid/IA-Remates-CR/internal/config"
	"github.com/caesgo22-droid/IA-Remates-CR/internal/export"
	"github.com/spf13/cobra"
)

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the current results to CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			path, _ := cmd.Flags().GetString("csv")
			filters, err := filtersFromFlags(cmd)
			if err != nil {
				return err
			}

			sess, err := openSession(ctx)
			if err != nil {
				return err
			}
			defer sess.Close()

			res, err := filteredResults(ctx, sess.manager, filters)
			if err != nil {
				return err
			}

			if path == "-" {
				return export.WriteCSV(cmd.OutOrStdout(), res.Properties)
			}
			path = config.ExpandPath(path)
			if err := export.WriteCSVFile(path, res.Properties); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("%d propiedades exportadas a %s", len(res.Properties), path)))
			return nil
		},
	}

	cmd.Flags().String("csv", "", "output file (- for stdout)")
	_ = cmd.MarkFlagRequired("csv")
	addFilterFlags(cmd)

	return cmd
}
