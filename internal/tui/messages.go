package tui

import (
	"github.com/caesgo22-droid/IA-Remates-CR/internal/model"
	"github.com/caesgo22-droid/IA-Remates-CR/internal/query"
)

type resultsLoadedMsg struct {
	err       error
	rejected  query.Set
	favorites query.Set
	props     []*model.Property
}

// actionDoneMsg reports the outcome of a favorite or reject action.
type actionDoneMsg struct {
	err    error
	status string
}
