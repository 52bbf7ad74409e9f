package ui

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/hermadata/console/internal/hermadata"
	"github.com/hermadata/console/internal/querycache"
)

type animalsState struct {
	query         hermadata.AnimalQuery
	row           int
	filter        textinput.Model
	filterEditing bool
	unsub         func()
}

func newAnimalsState(pageSize int) animalsState {
	filter := textinput.New()
	filter.Placeholder = "name contains..."
	filter.CharLimit = 64

	return animalsState{
		query: hermadata.AnimalQuery{
			PageQuery: hermadata.PageQuery{
				FromIndex: 0,
				ToIndex:   pageSize,
				SortField: "entry_date",
				SortOrder: "desc",
			},
		},
		filter: filter,
	}
}

func (m Model) handleAnimalsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.animals.filterEditing {
		switch msg.String() {
		case "esc":
			m.animals.filterEditing = false
			m.animals.filter.Blur()
			return m, nil
		case "enter":
			m.animals.filterEditing = false
			m.animals.filter.Blur()
			q := m.animals.query
			q.NameLike = strings.TrimSpace(m.animals.filter.Value())
			q.FromIndex = 0
			q.ToIndex = m.pageSize
			return m.setAnimalQuery(q)
		}
		var cmd tea.Cmd
		m.animals.filter, cmd = m.animals.filter.Update(msg)
		return m, cmd
	}

	page, havePage := querycache.Get[hermadata.Page[hermadata.AnimalSummary]](m.cache, hermadata.AnimalSearchKey(m.animals.query))

	switch {
	case key.Matches(msg, m.keys.Up):
		if m.animals.row > 0 {
			m.animals.row--
		}
		return m, nil
	case key.Matches(msg, m.keys.Down):
		if havePage && m.animals.row < len(page.Items)-1 {
			m.animals.row++
		}
		return m, nil
	case key.Matches(msg, m.keys.Open):
		if havePage && m.animals.row < len(page.Items) {
			m.detail = newDetailState()
			m.detail.id = page.Items[m.animals.row].ID
			m.detail.initViewport(m.width, m.height)
			return m.switchView(ViewAnimalDetail)
		}
		return m, nil
	case key.Matches(msg, m.keys.Filter):
		m.animals.filterEditing = true
		m.animals.filter.Focus()
		return m, nil
	case key.Matches(msg, m.keys.Refresh):
		return m, m.refreshAnimalsCmd()
	case key.Matches(msg, m.keys.NextPage):
		if havePage && m.animals.query.ToIndex < page.Total {
			q := m.animals.query
			q.FromIndex += m.pageSize
			q.ToIndex += m.pageSize
			return m.setAnimalQuery(q)
		}
		return m, nil
	case key.Matches(msg, m.keys.PrevPage):
		if m.animals.query.FromIndex > 0 {
			q := m.animals.query
			q.FromIndex -= m.pageSize
			q.ToIndex -= m.pageSize
			if q.FromIndex < 0 {
				q.FromIndex = 0
				q.ToIndex = m.pageSize
			}
			return m.setAnimalQuery(q)
		}
		return m, nil
	case key.Matches(msg, m.keys.Export):
		m.setStatus("exporting...")
		return m, m.exportAnimalsCmd()
	}
	return m, nil
}

// setAnimalQuery swaps the active search window: the old key is
// unpinned (its retention window starts now), the new one is pinned and
// fetched.
func (m Model) setAnimalQuery(q hermadata.AnimalQuery) (Model, tea.Cmd) {
	if m.animals.unsub != nil {
		m.animals.unsub()
	}
	m.animals.query = q
	m.animals.row = 0
	m.animals.unsub = m.cache.Subscribe(hermadata.AnimalSearchKey(q), func(querycache.Entry) {})
	return m, m.searchAnimalsCmd()
}

func (m Model) searchAnimalsCmd() tea.Cmd {
	q := m.animals.query
	return func() tea.Msg {
		_, err := querycache.Fetch(m.ctx, m.cache, hermadata.AnimalSearchKey(q), func(ctx context.Context) (hermadata.Page[hermadata.AnimalSummary], error) {
			return m.client.SearchAnimals(ctx, q)
		})
		return dataMsg{view: ViewAnimals, err: err}
	}
}

func (m Model) refreshAnimalsCmd() tea.Cmd {
	q := m.animals.query
	return func() tea.Msg {
		_, err := querycache.Refresh(m.ctx, m.cache, hermadata.AnimalSearchKey(q), func(ctx context.Context) (hermadata.Page[hermadata.AnimalSummary], error) {
			return m.client.SearchAnimals(ctx, q)
		})
		return dataMsg{view: ViewAnimals, err: err}
	}
}

// exportAnimalsCmd downloads the CSV export for the current filter and
// writes it next to the working directory. Exports bypass the cache.
func (m Model) exportAnimalsCmd() tea.Cmd {
	q := m.animals.query
	return func() tea.Msg {
		raw, err := m.client.ExportAnimals(m.ctx, q)
		if err != nil {
			return exportDoneMsg{err: err}
		}
		path := fmt.Sprintf("hermadata-animals-%s.csv", time.Now().Format("20060102-150405"))
		if err := os.WriteFile(path, raw, 0o644); err != nil {
			return exportDoneMsg{err: err}
		}
		return exportDoneMsg{path: path}
	}
}

func (m Model) renderAnimals() string {
	st := m.theme.Styles()
	searchKey := hermadata.AnimalSearchKey(m.animals.query)

	var b strings.Builder
	b.WriteString(st.AccentText.Render("Animals"))
	b.WriteString(m.freshnessTag(searchKey))
	if m.animals.query.NameLike != "" {
		b.WriteString(st.MutedText.Render("  filter: " + m.animals.query.NameLike))
	}
	b.WriteString("\n")
	if m.animals.filterEditing {
		b.WriteString("  " + m.animals.filter.View() + "\n")
	}
	b.WriteString("\n")

	page, ok := querycache.Get[hermadata.Page[hermadata.AnimalSummary]](m.cache, searchKey)
	if !ok {
		b.WriteString(st.MutedText.Render("  loading..."))
		return st.Panel.Render(b.String())
	}

	header := fmt.Sprintf("  %-8s %-20s %-20s %-12s %-9s", "CODE", "NAME", "CHIP", "ENTRY", "ADOPTABLE")
	b.WriteString(st.MutedText.Render(header))
	b.WriteString("\n")
	for i, a := range page.Items {
		name := a.Name
		if name == "" {
			name = "(unnamed)"
		}
		adoptable := "no"
		if a.Adoptable {
			adoptable = "yes"
		}
		row := fmt.Sprintf("  %-8s %-20s %-20s %-12s %-9s",
			truncate(a.Code, 8), truncate(name, 20), truncate(a.ChipCode, 20),
			truncate(a.EntryDate, 12), adoptable)
		if i == m.animals.row {
			row = st.Selected.Render(row)
		}
		b.WriteString(row)
		b.WriteString("\n")
	}
	if len(page.Items) == 0 {
		b.WriteString(st.MutedText.Render("  no animals match"))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(st.MutedText.Render(windowLine(m.animals.query.FromIndex, len(page.Items), page.Total)))
	return st.Panel.Render(b.String())
}

// windowLine formats the "x-y of total" pagination footer.
func windowLine(from, shown, total int) string {
	if total == 0 {
		return "  0 of 0"
	}
	return fmt.Sprintf("  %d-%d of %d", from+1, from+shown, total)
}

// truncate shortens s to max runes; byte slicing would split multibyte
// characters in accented names.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 1 {
		return string(runes[:max])
	}
	return string(runes[:max-1]) + "…"
}
