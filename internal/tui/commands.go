package tui

import (
	"context"
	"time"

	"github.com/caesgo22-droid/IA-Remates-CR/internal/common"
	"github.com/caesgo22-droid/IA-Remates-CR/internal/query"
	tea "github.com/charmbracelet/bubbletea"
)

const backendTimeout = 10 * time.Second

// loadResults reads the current search results and the user's sets.
func (m Model) loadResults() tea.Cmd {
	backend := m.backend
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), backendTimeout)
		defer cancel()

		props, err := backend.Results(ctx)
		if err != nil {
			return resultsLoadedMsg{err: err}
		}
		rejected, favorites, err := backend.Sets(ctx)
		if err != nil {
			return resultsLoadedMsg{err: err}
		}
		return resultsLoadedMsg{props: props, rejected: rejected, favorites: favorites}
	}
}

func (m Model) toggleFavorite(id string) tea.Cmd {
	backend := m.backend
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), backendTimeout)
		defer cancel()

		now, err := backend.ToggleFavorite(ctx, id)
		if err != nil {
			return actionDoneMsg{err: err}
		}
		if now {
			return actionDoneMsg{status: "Agregado a favoritos"}
		}
		return actionDoneMsg{status: "Quitado de favoritos"}
	}
}

func (m Model) rejectGroup(group query.Group) tea.Cmd {
	backend := m.backend
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), backendTimeout)
		defer cancel()

		now, err := backend.RejectGroup(ctx, group)
		if err != nil {
			return actionDoneMsg{err: err}
		}
		if now {
			return actionDoneMsg{status: "Expediente descartado"}
		}
		return actionDoneMsg{status: "Expediente restaurado"}
	}
}

// errorText prefers the user-facing message of err.
func errorText(err error) string {
	if msg, ok := common.UserMessage(err); ok {
		return msg
	}
	return err.Error()
}
