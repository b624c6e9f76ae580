package tui

import (
	"time"

	"github.com/caesgo22-droid/IA-Remates-CR/internal/cli"
	"github.com/caesgo22-droid/IA-Remates-CR/internal/model"
	"github.com/caesgo22-droid/IA-Remates-CR/internal/query"
	"github.com/caesgo22-droid/IA-Remates-CR/internal/tui/themes"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// State represents the current screen of the browser.
type State int

const (
	StateList State = iota
	StateDetail
	StateStats
	StateHelp
)

// Model holds the browser state.
type Model struct {
	theme     themes.Theme
	backend   Backend
	now       func() time.Time
	lastError error
	rejected  query.Set
	favorites query.Set
	keymap    KeyMap
	status    string
	props     []*model.Property
	result    query.Result
	rows      []rowRef
	filters   model.FilterState
	table     table.Model
	search    textinput.Model
	help      help.Model
	width     int
	height    int
	state     State
	searching bool
	ready     bool
	quitting  bool
}

// rowRef locates a table row in the grouped result.
type rowRef struct {
	prop  *model.Property
	group int
}

func newModel(cfg Config) Model {
	t := table.New(
		table.WithColumns(columns(cfg.Width)),
		table.WithFocused(true),
		table.WithHeight(max(cfg.Height-6, 3)),
	)
	styles := table.DefaultStyles()
	styles.Header = cfg.Theme.Header
	styles.Selected = cfg.Theme.Selected
	t.SetStyles(styles)

	search := textinput.New()
	search.Placeholder = "expediente, descripción, provincia..."
	search.Prompt = "/ "
	search.CharLimit = 80
	search.SetValue(cfg.Filters.SearchQuery)

	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	return Model{
		theme:     cfg.Theme,
		backend:   cfg.Backend,
		now:       now,
		keymap:    DefaultKeyMap(),
		filters:   cfg.Filters,
		rejected:  query.NewSet(),
		favorites: query.NewSet(),
		table:     t,
		search:    search,
		help:      help.New(),
		width:     cfg.Width,
		height:    cfg.Height,
		state:     StateList,
	}
}

func columns(width int) []table.Column {
	desc := max(width-78, 20)
	return []table.Column{
		{Title: " ", Width: 3},
		{Title: "Expediente", Width: 20},
		{Title: "Tipo", Width: 10},
		{Title: "Ubicación", Width: 22},
		{Title: "Precio base", Width: 16},
		{Title: "1er remate", Width: 12},
		{Title: "Descripción", Width: desc},
	}
}

// Init loads the results.
func (m Model) Init() tea.Cmd {
	return m.loadResults()
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table.SetColumns(columns(m.width))
		m.table.SetHeight(max(m.height-6, 3))
		m.help.Width = m.width
		return m, nil

	case resultsLoadedMsg:
		m.ready = true
		if msg.err != nil {
			m.lastError = msg.err
			return m, nil
		}
		m.props = msg.props
		m.rejected = msg.rejected
		m.favorites = msg.favorites
		m.refresh()
		return m, nil

	case actionDoneMsg:
		if msg.err != nil {
			m.lastError = msg.err
			m.status = ""
			return m, nil
		}
		m.lastError = nil
		m.status = msg.status
		return m, m.loadResults()

	case tea.KeyMsg:
		if m.searching {
			return m.handleSearchKey(msg)
		}
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Help):
		if m.state == StateHelp {
			m.state = StateList
		} else {
			m.state = StateHelp
		}
		return m, nil

	case key.Matches(msg, m.keymap.Back):
		m.state = StateList
		return m, nil

	case key.Matches(msg, m.keymap.Stats):
		if m.state == StateStats {
			m.state = StateList
		} else {
			m.state = StateStats
		}
		return m, nil

	case key.Matches(msg, m.keymap.Refresh):
		return m, m.loadResults()
	}

	if m.state != StateList && m.state != StateDetail {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keymap.Select):
		if m.selected() != nil {
			m.state = StateDetail
		}
		return m, nil

	case key.Matches(msg, m.keymap.Favorite):
		if p := m.selected(); p != nil {
			return m, m.toggleFavorite(p.ID)
		}
		return m, nil

	case key.Matches(msg, m.keymap.Reject):
		if ref, ok := m.selectedRow(); ok {
			return m, m.rejectGroup(m.result.Groups[ref.group])
		}
		return m, nil
	}

	if m.state == StateDetail {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keymap.Search):
		m.searching = true
		return m, m.search.Focus()

	case key.Matches(msg, m.keymap.Sort):
		if m.filters.SortOrder == model.SortDesc {
			m.filters.SortOrder = model.SortAsc
		} else {
			m.filters.SortOrder = model.SortDesc
		}
		m.refresh()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// handleSearchKey filters as the user types. Enter keeps the query, Esc
// clears it.
func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.searching = false
		m.search.Blur()
		return m, nil
	case tea.KeyEsc:
		m.searching = false
		m.search.Blur()
		m.search.SetValue("")
		m.filters.SearchQuery = ""
		m.refresh()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.filters.SearchQuery = m.search.Value()
	m.refresh()
	return m, cmd
}

// refresh re-applies the filters and rebuilds the table rows, one per lot,
// grouped by case.
func (m *Model) refresh() {
	m.result = query.Apply(m.props, m.filters, m.rejected, m.favorites)

	m.rows = make([]rowRef, 0, len(m.result.Properties))
	rows := make([]table.Row, 0, len(m.result.Properties))
	for gi, g := range m.result.Groups {
		for _, p := range g.Properties {
			m.rows = append(m.rows, rowRef{prop: p, group: gi})
			rows = append(rows, m.row(p))
		}
	}
	m.table.SetRows(rows)
	if m.table.Cursor() >= len(rows) {
		m.table.SetCursor(max(len(rows)-1, 0))
	}
}

func (m Model) row(p *model.Property) table.Row {
	mark := ""
	switch {
	case query.IsRejected(p, m.rejected):
		mark = cli.ErrorIcon
	case m.favorites.Has(p.ID):
		mark = cli.StarIcon
	}
	location := p.Provincia
	if p.Canton != "" {
		location += ", " + p.Canton
	}
	return table.Row{
		mark,
		p.NumeroExpediente,
		string(p.TipoBien),
		location,
		cli.FormatMoney(p.PrecioBaseNumerico, string(p.Moneda)),
		model.FormatDate(p.FechaRemate),
		cli.Truncate(p.Descripcion, 60),
	}
}

func (m Model) selectedRow() (rowRef, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.rows) {
		return rowRef{}, false
	}
	return m.rows[i], true
}

func (m Model) selected() *model.Property {
	ref, ok := m.selectedRow()
	if !ok {
		return nil
	}
	return ref.prop
}
