package tui

import (
	"fmt"
	"strings"

	"github.com/caesgo22-droid/IA-Remates-CR/internal/cli"
	"github.com/caesgo22-droid/IA-Remates-CR/internal/finance"
	"github.com/caesgo22-droid/IA-Remates-CR/internal/model"
	"github.com/caesgo22-droid/IA-Remates-CR/internal/query"
	"github.com/charmbracelet/lipgloss"
)

// View renders the UI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return m.theme.Subtitle.Render("Cargando resultados...")
	}

	var content string
	switch m.state {
	case StateDetail:
		content = m.renderDetail()
	case StateStats:
		content = m.renderStats()
	case StateHelp:
		content = m.renderHelp()
	default:
		content = m.renderList()
	}

	return lipgloss.JoinVertical(lipgloss.Left, content, m.renderStatusBar())
}

func (m Model) renderList() string {
	title := m.theme.Title.Render(cli.GavelIcon + "  Remates")
	counts := m.theme.Subtitle.Render(fmt.Sprintf("%d lotes en %d expedientes · precio %s",
		len(m.result.Properties), len(m.result.Groups), sortLabel(m.filters.SortOrder)))

	header := lipgloss.JoinHorizontal(lipgloss.Top, title, "  ", counts)
	parts := []string{header}
	if m.searching || m.filters.SearchQuery != "" {
		parts = append(parts, m.search.View())
	}
	if len(m.rows) == 0 {
		parts = append(parts, m.theme.Subtitle.Render("No hay propiedades que coincidan con los filtros."))
	} else {
		parts = append(parts, m.table.View())
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func sortLabel(o model.SortOrder) string {
	if o == model.SortDesc {
		return "mayor a menor"
	}
	return "menor a mayor"
}

func (m Model) renderDetail() string {
	ref, ok := m.selectedRow()
	if !ok {
		return m.renderList()
	}
	p := ref.prop
	group := m.result.Groups[ref.group]

	var b strings.Builder
	field := func(label, value string) {
		if value == "" {
			return
		}
		fmt.Fprintf(&b, "%s %s\n", m.theme.Bold.Render(label+":"), value)
	}

	field("Expediente", p.NumeroExpediente)
	field("Tipo", cli.TipoIcon(string(p.TipoBien))+" "+string(p.TipoBien))
	field("Juzgado", p.Juzgado)
	field("Ubicación", strings.Trim(p.Provincia+", "+p.Canton, ", "))
	field("Precio base", m.theme.Money.Render(cli.FormatMoney(p.PrecioBaseNumerico, string(p.Moneda))))
	field("1er remate", model.FormatDate(p.FechaRemate))
	if p.MontoSegundoRemateNumerico > 0 || p.FechaSegundoRemate != "" {
		field("2do remate", model.FormatDate(p.FechaSegundoRemate)+" · "+cli.FormatMoney(p.MontoSegundoRemateNumerico, string(p.Moneda)))
	}
	if p.MontoTercerRemateNumerico > 0 || p.FechaTercerRemate != "" {
		field("3er remate", model.FormatDate(p.FechaTercerRemate)+" · "+cli.FormatMoney(p.MontoTercerRemateNumerico, string(p.Moneda)))
	}
	if p.TipoBien == model.TipoPropiedad {
		field("Medidas", model.FormatMeasurement(p.MedidasNumericas))
		field("Finca", p.FincaID)
		field("Plano", p.Plano)
	}
	if p.TipoBien == model.TipoVehiculo {
		field("Vehículo", strings.TrimSpace(strings.Join([]string{p.Marca, p.Modelo, p.Anio}, " ")))
		field("Placa", p.Placa)
	}
	if len(group.Properties) > 1 {
		field("Lotes del expediente", fmt.Sprintf("%d (total %s)", len(group.Properties), cli.FormatMoney(group.TotalBasePrice(), "CRC")))
	}

	proj := finance.Project(p, m.now())
	b.WriteString("\n")
	field("Etapa", proj.Stage)
	field("Inversión total", cli.FormatMoney(proj.TotalInvestment, "CRC"))
	if p.Analisis != nil && p.Analisis.PrecioVentaEstimado > 0 {
		field("Ganancia neta", cli.FormatMoney(proj.NetProfit, "CRC"))
		field("ROI", cli.FormatPercent(proj.ROI))
	}

	if p.Descripcion != "" {
		b.WriteString("\n")
		width := max(m.width-6, 20)
		b.WriteString(lipgloss.NewStyle().Width(width).Render(p.Descripcion))
	}

	title := m.theme.Title.Render(cli.TipoIcon(string(p.TipoBien)) + "  " + p.NumeroExpediente)
	if m.favorites.Has(p.ID) {
		title += " " + m.theme.Favorite.Render(cli.StarIcon)
	}
	if query.IsRejected(p, m.rejected) {
		title += " " + m.theme.Rejected.Render("descartado")
	}
	return lipgloss.JoinVertical(lipgloss.Left, title, m.theme.RoundedBox.Render(strings.TrimRight(b.String(), "\n")))
}

func (m Model) renderStats() string {
	stats := query.Dashboard(m.props, m.now())

	list := func(title string, props []*model.Property, withDate bool) string {
		lines := []string{m.theme.Bold.Render(title)}
		if len(props) == 0 {
			lines = append(lines, m.theme.Subtitle.Render("  (ninguno)"))
		}
		for _, p := range props {
			line := fmt.Sprintf("  %s  %s", m.theme.Money.Render(cli.FormatMoney(p.PrecioBaseNumerico, string(p.Moneda))), cli.Truncate(p.Descripcion, 40))
			if withDate {
				line = fmt.Sprintf("  %s  %s", p.FechaRemate, cli.Truncate(p.Descripcion, 50))
			}
			lines = append(lines, line)
		}
		return strings.Join(lines, "\n")
	}

	provinces := []string{m.theme.Bold.Render("Por provincia")}
	for _, pc := range stats.ByProvince {
		provinces = append(provinces, fmt.Sprintf("  %-12s %d", pc.Provincia, pc.Count))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.theme.Title.Render(cli.ChartIcon+"  Estadísticas"),
		m.theme.Subtitle.Render(fmt.Sprintf("%d resultados", stats.Total)),
		m.theme.RoundedBox.Render(list("Propiedades más baratas", stats.CheapestProperties, false)),
		m.theme.RoundedBox.Render(list("Vehículos más baratos", stats.CheapestVehicles, false)),
		m.theme.RoundedBox.Render(list(cli.CalendarIcon+" Próximos remates", stats.Upcoming, true)),
		m.theme.RoundedBox.Render(strings.Join(provinces, "\n")),
	)
}

func (m Model) renderHelp() string {
	h := m.help
	h.ShowAll = true
	return lipgloss.JoinVertical(lipgloss.Left,
		m.theme.Title.Render("Atajos"),
		h.View(m.keymap),
	)
}

func (m Model) renderStatusBar() string {
	if m.lastError != nil {
		return m.theme.StatusError.Render(cli.ErrorIcon + " " + errorText(m.lastError))
	}
	if m.status != "" {
		return m.theme.StatusBar.Render(m.status + " · " + m.help.View(m.keymap))
	}
	return m.theme.StatusBar.Render(m.help.View(m.keymap))
}
