package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"text/tabwriter"

	"github.com/caesgo22-droid/IA-Remates-CR/internal/cli"
	"github.com/caesgo22-droid/IA-Remates-CR/internal/common"
	"github.com/caesgo22-droid/IA-Remates-CR/internal/config"
	"github.com/caesgo22-droid/IA-Remates-CR/internal/model"
	"github.com/caesgo22-droid/IA-Remates-CR/internal/portfolio"
	"github.com/caesgo22-droid/IA-Remates-CR/internal/query"
	"github.com/caesgo22-droid/IA-Remates-CR/internal/service"
	"github.com/caesgo22-droid/IA-Remates-CR/internal/storage"
	"github.com/spf13/cobra"
)

// initStorage opens the database and runs migrations.
func initStorage(ctx context.Context) (*storage.SQLiteStorage, error) {
	store, err := storage.NewSQLiteStorage(config.DatabasePath())
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// session bundles the store with the portfolio manager built on it.
type session struct {
	store   service.Storage
	manager *portfolio.Manager
}

func openSession(ctx context.Context) (*session, error) {
	store, err := initStorage(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	return &session{
		store:   store,
		manager: portfolio.NewManager(store, config.UserID(), slog.Default()),
	}, nil
}

func (s *session) Close() {
	if err := s.store.Close(); err != nil {
		slog.Error("failed to close storage", "error", err)
	}
}

// addFilterFlags registers the flags understood by filtersFromFlags.
func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("query", "q", "", "text search over description, case number and location")
	cmd.Flags().String("provincia", "", "province")
	cmd.Flags().String("canton", "", "canton")
	cmd.Flags().String("tipo", "", "asset kind (Propiedad, Vehículo, Mueble, Otro)")
	cmd.Flags().String("juzgado", "", "court (substring)")
	cmd.Flags().Float64("min-price", 0, "minimum base price")
	cmd.Flags().Float64("max-price", 0, "maximum base price")
	cmd.Flags().String("from", "", "first auction on or after (YYYY-MM-DD)")
	cmd.Flags().String("to", "", "first auction on or before (YYYY-MM-DD)")
	cmd.Flags().String("sort", "asc", "price order (asc, desc)")
	cmd.Flags().Bool("favorites", false, "only favorites")
}

func filtersFromFlags(cmd *cobra.Command) (model.FilterState, error) {
	f := model.DefaultFilters()
	flags := cmd.Flags()

	f.SearchQuery, _ = flags.GetString("query")
	f.Provincia, _ = flags.GetString("provincia")
	f.Canton, _ = flags.GetString("canton")
	f.Juzgado, _ = flags.GetString("juzgado")
	f.MinDate, _ = flags.GetString("from")
	f.MaxDate, _ = flags.GetString("to")
	f.OnlyFavorites, _ = flags.GetBool("favorites")

	if tipo, _ := flags.GetString("tipo"); tipo != "" {
		t, ok := parseTipo(tipo)
		if !ok {
			return f, fmt.Errorf("unknown asset kind %q", tipo)
		}
		f.TipoBien = t
	}

	if flags.Changed("min-price") {
		v, _ := flags.GetFloat64("min-price")
		f.MinPrice = &v
	}
	if flags.Changed("max-price") {
		v, _ := flags.GetFloat64("max-price")
		f.MaxPrice = &v
	}

	order, _ := flags.GetString("sort")
	switch model.SortOrder(strings.ToLower(order)) {
	case model.SortAsc:
		f.SortOrder = model.SortAsc
	case model.SortDesc:
		f.SortOrder = model.SortDesc
	default:
		return f, fmt.Errorf("invalid sort order %q (use asc or desc)", order)
	}

	return f, nil
}

// parseTipo accepts asset kinds case-insensitively and without the accent.
func parseTipo(s string) (model.TipoBien, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "vehiculo" {
		return model.TipoVehiculo, true
	}
	for _, t := range model.TiposBien {
		if strings.ToLower(string(t)) == s {
			return t, true
		}
	}
	return "", false
}

// filteredResults loads the current results and applies f.
func filteredResults(ctx context.Context, m *portfolio.Manager, f model.FilterState) (query.Result, error) {
	props, err := m.Results(ctx)
	if err != nil {
		return query.Result{}, fmt.Errorf("failed to load results: %w", err)
	}
	rejected, favorites, err := m.Sets(ctx)
	if err != nil {
		return query.Result{}, fmt.Errorf("failed to load preferences: %w", err)
	}
	return query.Apply(props, f, rejected, favorites), nil
}

// printGroups writes one block per case: a header line when the case has
// several lots, then one row per lot.
func printGroups(w io.Writer, result query.Result, rejected, favorites query.Set) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	if _, err := fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
		cli.TableHeaderStyle.Render(" "),
		cli.TableHeaderStyle.Render("ID"),
		cli.TableHeaderStyle.Render("Expediente"),
		cli.TableHeaderStyle.Render("Tipo"),
		cli.TableHeaderStyle.Render("Ubicación"),
		cli.TableHeaderStyle.Render("Precio base"),
		cli.TableHeaderStyle.Render("1er remate")); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, g := range result.Groups {
		if len(g.Properties) > 1 {
			if _, err := fmt.Fprintf(tw, "\t%s\t%s\t\t%s\t%s\t\n",
				cli.BoldStyle.Render(fmt.Sprintf("%d lotes", len(g.Properties))),
				g.Key, "",
				cli.MoneyStyle.Render(cli.FormatMoney(g.TotalBasePrice(), "CRC"))); err != nil {
				return fmt.Errorf("failed to write group: %w", err)
			}
		}
		for _, p := range g.Properties {
			mark, expediente := " ", p.NumeroExpediente
			switch {
			case query.IsRejected(p, rejected):
				mark, expediente = cli.ErrorIcon, cli.SubtleStyle.Render(expediente)
			case favorites.Has(p.ID):
				mark = cli.StarIcon
			}
			if _, err := fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
				mark,
				shortID(p.ID),
				expediente,
				cli.TipoIcon(string(p.TipoBien)),
				location(p),
				cli.FormatMoney(p.PrecioBaseNumerico, string(p.Moneda)),
				model.FormatDate(p.FechaRemate)); err != nil {
				return fmt.Errorf("failed to write row: %w", err)
			}
		}
	}

	return tw.Flush()
}

func location(p *model.Property) string {
	if p.Canton == "" {
		return p.Provincia
	}
	return p.Provincia + ", " + p.Canton
}

// shortID keeps enough of a random id to be typed back.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// resolveID accepts a full id or a unique prefix of one among the results
// and saved properties.
func resolveID(ctx context.Context, m *portfolio.Manager, prefix string) (string, error) {
	if _, err := m.Find(ctx, prefix); err == nil {
		return prefix, nil
	}

	results, err := m.Results(ctx)
	if err != nil {
		return "", err
	}
	saved, err := m.Saved(ctx)
	if err != nil {
		return "", err
	}
	return matchPrefix(prefix, append(results, saved...))
}

func matchPrefix(prefix string, props []*model.Property) (string, error) {
	if prefix == "" {
		return "", fmt.Errorf("empty property id")
	}
	var match string
	for _, p := range props {
		if !strings.HasPrefix(p.ID, prefix) || p.ID == match {
			continue
		}
		if match != "" {
			return "", fmt.Errorf("id prefix %q is ambiguous", prefix)
		}
		match = p.ID
	}
	if match == "" {
		return "", fmt.Errorf("property %q: %w", prefix, common.ErrNotFound)
	}
	return match, nil
}
