package main

import (
	"github.com/caesgo22-droid/IA-Remates-CR/internal/tui"
	"github.com/caesgo22-droid/IA-Remates-CR/internal/tui/themes"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func browseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse the results interactively",
		Long: `Open a full-screen browser over the current results. Mark favorites with
f, discard whole cases with r, search with / and press Tab for statistics.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			filters, err := filtersFromFlags(cmd)
			if err != nil {
				return err
			}

			sess, err := openSession(ctx)
			if err != nil {
				return err
			}
			defer sess.Close()

			return tui.Run(ctx,
				tui.WithBackend(sess.manager),
				tui.WithTheme(themes.ByName(viper.GetString("tui.theme"))),
				tui.WithFilters(filters),
			)
		},
	}

	addFilterFlags(cmd)
	cmd.Flags().String("theme", "default", "color theme (default, light)")
	_ = viper.BindPFlag("tui.theme", cmd.Flags().Lookup("theme"))

	return cmd
}
