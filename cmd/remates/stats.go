package main

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/caesgo22-droid/IA-Remates-CR/internal/cli"
	"github.com/caesgo22-droid/IA-Remates-CR/internal/model"
	"github.com/caesgo22-droid/IA-Remates-CR/internal/query"
	"github.com/spf13/cobra"
)

func statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Overview of the current results",
		Long: `Show the cheapest properties and vehicles, the next auctions and the
number of results per province.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

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
				fmt.Fprintln(cmd.OutOrStdout(), cli.InfoStyle.Render("No hay resultados. Ejecuta 'remates extract' primero."))
				return nil
			}
			return printStats(cmd.OutOrStdout(), query.Dashboard(props, time.Now()))
		},
	}
}

func printStats(w io.Writer, stats query.Stats) error {
	fmt.Fprintln(w, cli.FormatTitle(fmt.Sprintf("Estadísticas · %d resultados", stats.Total)))

	section := func(title string, props []*model.Property, byDate bool) error {
		fmt.Fprintln(w, cli.BoldStyle.Render(title))
		if len(props) == 0 {
			fmt.Fprintln(w, cli.SubtleStyle.Render("  (ninguno)"))
			return nil
		}
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		for _, p := range props {
			first := cli.FormatMoney(p.PrecioBaseNumerico, string(p.Moneda))
			if byDate {
				first = p.FechaRemate
			}
			fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\n", first, shortID(p.ID), location(p), cli.Truncate(p.Descripcion, 50))
		}
		if err := tw.Flush(); err != nil {
			return err
		}
		fmt.Fprintln(w)
		return nil
	}

	if err := section(cli.HouseIcon+" Propiedades más baratas", stats.CheapestProperties, false); err != nil {
		return err
	}
	if err := section(cli.CarIcon+" Vehículos más baratos", stats.CheapestVehicles, false); err != nil {
		return err
	}
	if err := section(cli.CalendarIcon+" Próximos remates", stats.Upcoming, true); err != nil {
		return err
	}

	fmt.Fprintln(w, cli.BoldStyle.Render(cli.ChartIcon+" Por provincia"))
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, pc := range stats.ByProvince {
		fmt.Fprintf(tw, "  %s\t%d\n", pc.Provincia, pc.Count)
	}
	return tw.Flush()
}
