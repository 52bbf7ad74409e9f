package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hermadata/console/internal/auth"
	"github.com/hermadata/console/internal/hermadata"
	"github.com/hermadata/console/internal/schema"
)

// errorLine maps the client error taxonomy to one operator-facing line.
// Specific codes get specific wording; everything else falls back to the
// error's own message.
func errorLine(err error) string {
	if err == nil {
		return ""
	}
	if animalID, ok := hermadata.ChipConflict(err); ok {
		return fmt.Sprintf("chip code already registered on animal #%d", animalID)
	}
	if hermadata.IsAuthFailure(err) {
		return "session expired, log in again"
	}
	var vErr *schema.ValidationError
	if errors.As(err, &vErr) {
		return "backend sent malformed data: " + vErr.Error()
	}
	var apiErr *hermadata.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return err.Error()
}

func (m Model) renderHeader() string {
	st := m.theme.Styles()

	title := st.Header.Render("Hermadata")
	if !m.loggedIn {
		return title
	}

	tabs := []struct {
		view  View
		label string
	}{
		{ViewDashboard, "[d]ashboard"},
		{ViewAnimals, "[a]nimals"},
		{ViewAdopters, "ad[o]pters"},
	}
	parts := make([]string, 0, 6)
	parts = append(parts, title)
	for _, tab := range tabs {
		label := tab.label
		if m.currentView == tab.view || (tab.view == ViewAnimals && m.currentView == ViewAnimalDetail) {
			parts = append(parts, st.AccentText.Render(label))
			continue
		}
		parts = append(parts, st.MutedText.Render(label))
	}
	if m.gate.Allows(auth.SuperuserOnly) {
		label := "[u]sers"
		if m.currentView == ViewUsers {
			parts = append(parts, st.AccentText.Render(label))
		} else {
			parts = append(parts, st.MutedText.Render(label))
		}
	}

	who := m.gate.Username()
	if m.gate.Role() == auth.RoleSuperuser {
		who += " (superuser)"
	}
	parts = append(parts, st.MutedText.Render(who))
	return strings.Join(parts, "  ")
}

func (m Model) renderFooter() string {
	st := m.theme.Styles()
	if m.status != "" {
		if m.statusErr {
			return st.DangerText.Render(m.status)
		}
		return st.SuccessText.Render(m.status)
	}
	return st.Footer.Render(m.footerHelp())
}

func (m Model) footerHelp() string {
	switch m.currentView {
	case ViewLogin:
		return "enter: log in  ctrl+c: quit"
	case ViewDashboard:
		return "r: refresh  tab: next view  T: theme  ctrl+l: logout  q: quit"
	case ViewAnimals:
		return "enter: open  /: filter  ←/→: page  r: refresh  e: export  q: quit"
	case ViewAnimalDetail:
		return "c: edit chip  r: refresh  esc: back  q: quit"
	case ViewAdopters:
		return "n: new adopter  /: filter  ←/→: page  r: refresh  q: quit"
	case ViewUsers:
		return "space: toggle superuser  r: refresh  q: quit"
	}
	return ""
}
