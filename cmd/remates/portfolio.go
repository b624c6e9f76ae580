package main

import (
	"fmt"
	"io"
	"log/slog"
	"text/tabwriter"
	"time"

	"github.com/caesgo22-droid/IA-Remates-CR/internal/cli"
	"github.com/caesgo22-droid/IA-Remates-CR/internal/common"
	"github.com/caesgo22-droid/IA-Remates-CR/internal/config"
	"github.com/caesgo22-droid/IA-Remates-CR/internal/finance"
	"github.com/caesgo22-droid/IA-Remates-CR/internal/model"
	"github.com/caesgo22-droid/IA-Remates-CR/internal/sheets"
	"github.com/spf13/cobra"
)

func portfolioCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "portfolio",
		Short: "Show saved properties with their projected returns",
		Long: `Show every favorite with its projection and the portfolio totals:
total invested, potential value, projected gain and aggregate ROI.

Use --export-sheets to write the portfolio to Google Sheets. The first time,
run with --sheets-auth to authorize access with your OAuth client.`,
		Args: cobra.NoArgs,
		RunE: runPortfolio,
	}

	cmd.Flags().Bool("export-sheets", false, "export the portfolio to Google Sheets")
	cmd.Flags().Bool("sheets-auth", false, "authorize Google Sheets access in the browser")

	return cmd
}

func runPortfolio(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	if auth, _ := cmd.Flags().GetBool("sheets-auth"); auth {
		return authorizeSheets(cmd)
	}

	sess, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer sess.Close()

	if sess.manager.UserID() == "" {
		return common.NewUserError("Configura un usuario (--user o REMATES_USER_ID) para ver tu portafolio.", common.ErrLoginRequired)
	}

	saved, err := sess.manager.Saved(ctx)
	if err != nil {
		return err
	}
	summary, err := sess.manager.Summary(ctx)
	if err != nil {
		return err
	}
	now := time.Now()

	if len(saved) == 0 {
		fmt.Fprintln(out, cli.InfoStyle.Render("Tu portafolio está vacío. Usa 'remates favorite <id>' para guardar propiedades."))
		return nil
	}

	fmt.Fprintln(out, cli.FormatTitle("Portafolio"))
	if err := printPortfolio(out, saved, summary, now); err != nil {
		return err
	}

	if export, _ := cmd.Flags().GetBool("export-sheets"); export {
		writer, err := sheets.NewWriter(ctx, config.LoadSheetsConfig(), slog.Default())
		if err != nil {
			return fmt.Errorf("failed to configure Google Sheets: %w", err)
		}
		id, err := writer.WritePortfolio(ctx, saved, summary, now)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, cli.FormatSuccess("Exportado a https://docs.google.com/spreadsheets/d/"+id))
	}
	return nil
}

func printPortfolio(w io.Writer, saved []*model.Property, summary finance.Summary, now time.Time) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
		cli.TableHeaderStyle.Render("ID"),
		cli.TableHeaderStyle.Render("Expediente"),
		cli.TableHeaderStyle.Render("Etapa"),
		cli.TableHeaderStyle.Render("Inversión"),
		cli.TableHeaderStyle.Render("Ganancia"),
		cli.TableHeaderStyle.Render("ROI"))
	for _, p := range saved {
		proj := finance.Project(p, now)
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			shortID(p.ID),
			p.NumeroExpediente,
			proj.Stage,
			cli.FormatMoney(proj.TotalInvestment, "CRC"),
			cli.FormatMoney(proj.NetProfit, "CRC"),
			cli.FormatPercent(proj.ROI))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintln(w, "\n"+cli.RenderBox(cli.ChartIcon+" Resumen", summaryText(summary)))
	return err
}

func summaryText(s finance.Summary) string {
	return fmt.Sprintf("Propiedades:         %d\nInversión total:     %s\nValor potencial:     %s\nGanancia proyectada: %s\nROI global:          %s",
		s.Count,
		cli.FormatMoney(s.TotalInvested, "CRC"),
		cli.FormatMoney(s.PotentialValue, "CRC"),
		cli.FormatMoney(s.ProjectedGain, "CRC"),
		cli.FormatPercent(s.ROI))
}

func authorizeSheets(cmd *cobra.Command) error {
	cfg := config.LoadSheetsConfig()
	if cfg.ClientID == "" || cfg.ClientSecret == "" {
		return common.NewUserError("Configura sheets.client_id y sheets.client_secret antes de autorizar.", sheets.ErrNoAuth)
	}
	if cfg.TokenFile == "" {
		cfg.TokenFile = config.DefaultTokenFile()
	}

	if _, err := sheets.AuthenticateInteractive(cmd.Context(), cfg); err != nil {
		return fmt.Errorf("authorization failed: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Autorizado. Token guardado en "+cfg.TokenFile))
	return nil
}
