package main

import (
	"fmt"

	"github.com/caesgo22-droid/IA-Remates-CR/internal/cli"
	"github.com/spf13/cobra"
)

func favoriteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "favorite <id>",
		Short: "Add or remove a property from favorites",
		Long: `Toggle a property in your favorites. Saving a property keeps a snapshot
with its investment analysis, seeded with the suggested legal costs.
Requires a user (--user or REMATES_USER_ID).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			sess, err := openSession(ctx)
			if err != nil {
				return err
			}
			defer sess.Close()

			id, err := resolveID(ctx, sess.manager, args[0])
			if err != nil {
				return err
			}
			now, err := sess.manager.ToggleFavorite(ctx, id)
			if err != nil {
				return err
			}

			if now {
				fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Agregado a favoritos: "+id))
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), cli.FormatInfo("Quitado de favoritos: "+id))
			}
			return nil
		},
	}
}

func rejectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reject <id|expediente>",
		Short: "Discard or restore a property or a whole case",
		Long: `Toggle the rejection of a property id or a case number. Rejecting a case
number discards every lot of that case. Discarded properties are listed last.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			sess, err := openSession(ctx)
			if err != nil {
				return err
			}
			defer sess.Close()

			key := args[0]
			if id, err := resolveID(ctx, sess.manager, key); err == nil {
				key = id
			}

			now, err := sess.manager.ToggleRejected(ctx, key)
			if err != nil {
				return err
			}
			if now {
				fmt.Fprintln(cmd.OutOrStdout(), cli.FormatWarning("Descartado: "+key))
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Restaurado: "+key))
			}
			return nil
		},
	}
}
