package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/caesgo22-droid/IA-Remates-CR/internal/cli"
	"github.com/caesgo22-droid/IA-Remates-CR/internal/finance"
	"github.com/caesgo22-droid/IA-Remates-CR/internal/model"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func projectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project <id>",
		Short: "Edit the investment assumptions of a property",
		Long: `Set the target auction round and the financial assumptions of a property,
then print the resulting projection. Amounts are in colones. Changes to
favorites are saved with the property.`,
		Args: cobra.ExactArgs(1),
		RunE: runProject,
	}

	cmd.Flags().String("strategy", "", "target round: auto, 1er, 2do, 3er")
	cmd.Flags().Float64("sale", 0, "estimated sale price")
	cmd.Flags().Float64("remodel", 0, "remodeling cost")
	cmd.Flags().Float64("legal", 0, "legal costs (default: suggested from base price)")
	cmd.Flags().Float64("market", 0, "estimated market value")
	cmd.Flags().Float64("rent", 0, "estimated monthly rent")
	cmd.Flags().String("notes", "", "free-form notes")

	return cmd
}

func runProject(cmd *cobra.Command, args []string) error {
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

	updated, changed, err := applyProjectFlags(p, cmd.Flags())
	if err != nil {
		return err
	}
	if changed {
		if err := sess.manager.UpdateProperty(ctx, updated); err != nil {
			return fmt.Errorf("failed to save projection: %w", err)
		}
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, cli.FormatTitle("Proyección "+updated.NumeroExpediente))
	fmt.Fprint(out, projectionText(updated, time.Now()))
	return nil
}

// applyProjectFlags returns a copy of p with the explicitly set flags applied.
func applyProjectFlags(p *model.Property, flags *pflag.FlagSet) (*model.Property, bool, error) {
	out := p.Clone()
	changed := false

	if flags.Changed("strategy") {
		s, _ := flags.GetString("strategy")
		e, err := parseStrategy(s)
		if err != nil {
			return nil, false, err
		}
		out.Estrategia = e
		changed = true
	}

	setters := []struct {
		flag string
		set  func(a *model.Analisis, v float64)
	}{
		{"sale", func(a *model.Analisis, v float64) { a.PrecioVentaEstimado = v }},
		{"remodel", func(a *model.Analisis, v float64) { a.CostoRemodelacion = v }},
		{"legal", func(a *model.Analisis, v float64) { a.CostosLegales = v }},
		{"market", func(a *model.Analisis, v float64) { a.ValorMercadoEstimado = v }},
		{"rent", func(a *model.Analisis, v float64) { a.RentaMensualEstimada = v }},
	}
	for _, s := range setters {
		if !flags.Changed(s.flag) {
			continue
		}
		v, _ := flags.GetFloat64(s.flag)
		if v < 0 {
			return nil, false, fmt.Errorf("--%s cannot be negative", s.flag)
		}
		if untouched(out.Analisis) {
			out.Analisis = finance.DefaultAnalysis(out)
		}
		s.set(out.Analisis, v)
		changed = true
	}

	if flags.Changed("notes") {
		notes, _ := flags.GetString("notes")
		if untouched(out.Analisis) {
			out.Analisis = finance.DefaultAnalysis(out)
		}
		out.Analisis.Notas = notes
		changed = true
	}

	return out, changed, nil
}

// untouched reports whether a is missing or still the zeroed analysis a fresh
// extraction carries.
func untouched(a *model.Analisis) bool {
	return a == nil || *a == (model.Analisis{})
}

func parseStrategy(s string) (model.Estrategia, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return model.EstrategiaAuto, nil
	case "1", "1er":
		return model.EstrategiaPrimero, nil
	case "2", "2do":
		return model.EstrategiaSegundo, nil
	case "3", "3er":
		return model.EstrategiaTercero, nil
	}
	return "", fmt.Errorf("invalid strategy %q (use auto, 1er, 2do or 3er)", s)
}
