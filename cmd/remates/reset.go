package main

import (
	"fmt"

	"github.com/caesgo22-droid/IA-Remates-CR/internal/cli"
	"github.com/spf13/cobra"
)

func resetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Discard the current results and start a new search",
		Long: `Reset removes the results of the latest extraction. Favorites, their
analysis and attachments, and rejections are kept.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			sess, err := openSession(ctx)
			if err != nil {
				return err
			}
			defer sess.Close()

			props, err := sess.manager.Results(ctx)
			if err != nil {
				return err
			}
			if len(props) == 0 {
				fmt.Fprintln(out, "No hay resultados. Nada que borrar.")
				return nil
			}

			if force, _ := cmd.Flags().GetBool("force"); !force {
				prompter := cli.NewCLIPrompter(cmd.InOrStdin(), out)
				ok, err := prompter.Confirm(ctx, fmt.Sprintf("Se borrarán %d resultados. ¿Continuar?", len(props)))
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(out, "Cancelado.")
					return nil
				}
			}

			if err := sess.manager.NewSearch(ctx); err != nil {
				return fmt.Errorf("failed to clear results: %w", err)
			}
			fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Se borraron %d resultados", len(props))))
			return nil
		},
	}

	cmd.Flags().BoolP("force", "f", false, "skip confirmation prompt")
	return cmd
}
