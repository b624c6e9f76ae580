package main

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/caesgo22-droid/IA-Remates-CR/internal/cli"
	"github.com/caesgo22-droid/IA-Remates-CR/internal/common"
	"github.com/caesgo22-droid/IA-Remates-CR/internal/finance"
	"github.com/caesgo22-droid/IA-Remates-CR/internal/model"
	"github.com/caesgo22-droid/IA-Remates-CR/internal/query"
	"github.com/spf13/cobra"
)

func listCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the current results grouped by case",
		Long: `List the properties of the latest extraction. Lots of the same case are
grouped together; discarded cases are shown last.`,
		Args: cobra.NoArgs,
		RunE: runList,
	}
	addFilterFlags(cmd)
	return cmd
}

func runList(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

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
	if len(res.Properties) == 0 {
		fmt.Fprintln(out, cli.InfoStyle.Render("No hay resultados. Ejecuta 'remates extract' o ajusta los filtros."))
		return nil
	}

	rejected, favorites, err := sess.manager.Sets(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, cli.FormatTitle(fmt.Sprintf("%d propiedades en %d expedientes", len(res.Properties), len(res.Groups))))
	return printGroups(out, res, rejected, favorites)
}

func showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a property with its investment projection",
		Args:  cobra.ExactArgs(1),
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
			p, err := sess.manager.Find(ctx, id)
			if err != nil {
				return err
			}
			rejected, favorites, err := sess.manager.Sets(ctx)
			if err != nil {
				return err
			}

			var attachments []model.Attachment
			if favorites.Has(p.ID) {
				attachments, err = sess.manager.Attachments(ctx, p.ID)
				if err != nil && !errors.Is(err, common.ErrNotFound) {
					return err
				}
			}

			return printProperty(cmd.OutOrStdout(), p, propertyState{
				favorite:    favorites.Has(p.ID),
				rejected:    query.IsRejected(p, rejected),
				attachments: len(attachments),
			}, time.Now())
		},
	}
}

type propertyState struct {
	favorite    bool
	rejected    bool
	attachments int
}

func printProperty(w io.Writer, p *model.Property, state propertyState, now time.Time) error {
	title := cli.TipoIcon(string(p.TipoBien)) + "  " + p.NumeroExpediente
	if state.favorite {
		title += " " + cli.StarIcon
	}
	if state.rejected {
		title += " (descartado)"
	}

	var b strings.Builder
	tw := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	row := func(label, value string) {
		if value != "" {
			fmt.Fprintf(tw, "%s\t%s\n", cli.BoldStyle.Render(label), value)
		}
	}

	row("ID", p.ID)
	row("Tipo", string(p.TipoBien))
	row("Juzgado", p.Juzgado)
	row("Ubicación", location(p))
	row("Precio base", cli.MoneyStyle.Render(cli.FormatMoney(p.PrecioBaseNumerico, string(p.Moneda))))
	row("1er remate", model.FormatDate(p.FechaRemate))
	if p.FechaSegundoRemate != "" || p.MontoSegundoRemateNumerico > 0 {
		row("2do remate", model.FormatDate(p.FechaSegundoRemate)+"  "+cli.FormatMoney(p.MontoSegundoRemateNumerico, string(p.Moneda)))
	}
	if p.FechaTercerRemate != "" || p.MontoTercerRemateNumerico > 0 {
		row("3er remate", model.FormatDate(p.FechaTercerRemate)+"  "+cli.FormatMoney(p.MontoTercerRemateNumerico, string(p.Moneda)))
	}
	switch p.TipoBien {
	case model.TipoPropiedad:
		row("Medidas", model.FormatMeasurement(p.MedidasNumericas))
		row("Finca", p.FincaID)
		row("Plano", p.Plano)
	case model.TipoVehiculo:
		row("Vehículo", strings.TrimSpace(strings.Join([]string{p.Marca, p.Modelo, p.Anio}, " ")))
		row("Placa", p.Placa)
	}
	if state.attachments > 0 {
		row("Documentos", fmt.Sprintf("%d", state.attachments))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if p.Descripcion != "" {
		b.WriteString("\n" + p.Descripcion + "\n")
	}
	b.WriteString("\n" + projectionText(p, now))

	_, err := fmt.Fprintln(w, cli.RenderBox(title, strings.TrimRight(b.String(), "\n")))
	return err
}

// projectionText renders the investment block of a property.
func projectionText(p *model.Property, now time.Time) string {
	proj := finance.Project(p, now)

	var b strings.Builder
	tw := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\t%s\n", cli.BoldStyle.Render("Etapa"), proj.Stage)
	if p.Estrategia != model.EstrategiaAuto {
		fmt.Fprintf(tw, "%s\t%s\n", cli.BoldStyle.Render("Estrategia"), string(p.Estrategia))
	}
	fmt.Fprintf(tw, "%s\t%s\n", cli.BoldStyle.Render("Adquisición"), cli.FormatMoney(proj.AcquisitionCostCRC, "CRC"))
	if a := p.Analisis; a != nil {
		fmt.Fprintf(tw, "%s\t%s\n", cli.BoldStyle.Render("Remodelación"), cli.FormatMoney(a.CostoRemodelacion, "CRC"))
		fmt.Fprintf(tw, "%s\t%s\n", cli.BoldStyle.Render("Gastos legales"), cli.FormatMoney(a.CostosLegales, "CRC"))
	} else {
		fmt.Fprintf(tw, "%s\t%s\n", cli.BoldStyle.Render("Gastos legales sugeridos"), cli.FormatMoney(finance.SuggestedLegalCost(p), "CRC"))
	}
	fmt.Fprintf(tw, "%s\t%s\n", cli.BoldStyle.Render("Inversión total"), cli.FormatMoney(proj.TotalInvestment, "CRC"))
	if p.Analisis != nil && p.Analisis.PrecioVentaEstimado > 0 {
		fmt.Fprintf(tw, "%s\t%s\n", cli.BoldStyle.Render("Venta estimada"), cli.FormatMoney(p.Analisis.PrecioVentaEstimado, "CRC"))
		fmt.Fprintf(tw, "%s\t%s\n", cli.BoldStyle.Render("Ganancia neta"), cli.FormatMoney(proj.NetProfit, "CRC"))
		fmt.Fprintf(tw, "%s\t%s\n", cli.BoldStyle.Render("ROI"), cli.FormatPercent(proj.ROI))
	}
	if p.Analisis != nil && p.Analisis.Notas != "" {
		fmt.Fprintf(tw, "%s\t%s\n", cli.BoldStyle.Render("Notas"), p.Analisis.Notas)
	}
	_ = tw.Flush()
	return b.String()
}
