package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/hermadata/console/internal/hermadata"
	"github.com/hermadata/console/internal/querycache"
)

type adoptersState struct {
	query         hermadata.AdopterQuery
	row           int
	filter        textinput.Model
	filterEditing bool

	adding bool
	form   [4]textinput.Model // name, surname, fiscal code, phone
	focus  int

	unsub func()
}

func newAdoptersState(pageSize int) adoptersState {
	filter := textinput.New()
	filter.Placeholder = "name contains..."
	filter.CharLimit = 64

	var form [4]textinput.Model
	for i, placeholder := range [...]string{"name", "surname", "fiscal code", "phone"} {
		in := textinput.New()
		in.Placeholder = placeholder
		in.CharLimit = 64
		form[i] = in
	}

	return adoptersState{
		query: hermadata.AdopterQuery{
			PageQuery: hermadata.PageQuery{
				FromIndex: 0,
				ToIndex:   pageSize,
				SortField: "surname",
				SortOrder: "asc",
			},
		},
		filter: filter,
		form:   form,
	}
}

func (m Model) handleAdoptersKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.adopters.adding {
		return m.handleAdopterFormKey(msg)
	}
	if m.adopters.filterEditing {
		switch msg.String() {
		case "esc":
			m.adopters.filterEditing = false
			m.adopters.filter.Blur()
			return m, nil
		case "enter":
			m.adopters.filterEditing = false
			m.adopters.filter.Blur()
			q := m.adopters.query
			q.NameLike = strings.TrimSpace(m.adopters.filter.Value())
			q.FromIndex = 0
			q.ToIndex = m.pageSize
			return m.setAdopterQuery(q)
		}
		var cmd tea.Cmd
		m.adopters.filter, cmd = m.adopters.filter.Update(msg)
		return m, cmd
	}

	page, havePage := querycache.Get[hermadata.Page[hermadata.Adopter]](m.cache, hermadata.AdopterSearchKey(m.adopters.query))

	switch {
	case key.Matches(msg, m.keys.Up):
		if m.adopters.row > 0 {
			m.adopters.row--
		}
		return m, nil
	case key.Matches(msg, m.keys.Down):
		if havePage && m.adopters.row < len(page.Items)-1 {
			m.adopters.row++
		}
		return m, nil
	case key.Matches(msg, m.keys.Filter):
		m.adopters.filterEditing = true
		m.adopters.filter.Focus()
		return m, nil
	case key.Matches(msg, m.keys.Refresh):
		return m, m.refreshAdoptersCmd()
	case key.Matches(msg, m.keys.New):
		m.adopters.adding = true
		m.adopters.focus = 0
		for i := range m.adopters.form {
			m.adopters.form[i].SetValue("")
			m.adopters.form[i].Blur()
		}
		m.adopters.form[0].Focus()
		return m, nil
	case key.Matches(msg, m.keys.NextPage):
		if havePage && m.adopters.query.ToIndex < page.Total {
			q := m.adopters.query
			q.FromIndex += m.pageSize
			q.ToIndex += m.pageSize
			return m.setAdopterQuery(q)
		}
		return m, nil
	case key.Matches(msg, m.keys.PrevPage):
		if m.adopters.query.FromIndex > 0 {
			q := m.adopters.query
			q.FromIndex -= m.pageSize
			q.ToIndex -= m.pageSize
			if q.FromIndex < 0 {
				q.FromIndex = 0
				q.ToIndex = m.pageSize
			}
			return m.setAdopterQuery(q)
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handleAdopterFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.adopters.adding = false
		return m, nil
	case "tab", "down":
		m.adopters.form[m.adopters.focus].Blur()
		m.adopters.focus = (m.adopters.focus + 1) % len(m.adopters.form)
		m.adopters.form[m.adopters.focus].Focus()
		return m, nil
	case "shift+tab", "up":
		m.adopters.form[m.adopters.focus].Blur()
		m.adopters.focus = (m.adopters.focus + len(m.adopters.form) - 1) % len(m.adopters.form)
		m.adopters.form[m.adopters.focus].Focus()
		return m, nil
	case "enter":
		in := hermadata.AdopterInput{
			Name:       strings.TrimSpace(m.adopters.form[0].Value()),
			Surname:    strings.TrimSpace(m.adopters.form[1].Value()),
			FiscalCode: strings.TrimSpace(m.adopters.form[2].Value()),
			Phone:      strings.TrimSpace(m.adopters.form[3].Value()),
		}
		if in.Name == "" || in.Surname == "" {
			m.setError("name and surname are required")
			return m, nil
		}
		m.adopters.adding = false
		return m, m.addAdopterCmd(in)
	}
	var cmd tea.Cmd
	m.adopters.form[m.adopters.focus], cmd = m.adopters.form[m.adopters.focus].Update(msg)
	return m, cmd
}

func (m Model) setAdopterQuery(q hermadata.AdopterQuery) (Model, tea.Cmd) {
	if m.adopters.unsub != nil {
		m.adopters.unsub()
	}
	m.adopters.query = q
	m.adopters.row = 0
	m.adopters.unsub = m.cache.Subscribe(hermadata.AdopterSearchKey(q), func(querycache.Entry) {})
	return m, m.searchAdoptersCmd()
}

func (m Model) searchAdoptersCmd() tea.Cmd {
	q := m.adopters.query
	return func() tea.Msg {
		_, err := querycache.Fetch(m.ctx, m.cache, hermadata.AdopterSearchKey(q), func(ctx context.Context) (hermadata.Page[hermadata.Adopter], error) {
			return m.client.SearchAdopters(ctx, q)
		})
		return dataMsg{view: ViewAdopters, err: err}
	}
}

func (m Model) refreshAdoptersCmd() tea.Cmd {
	q := m.adopters.query
	return func() tea.Msg {
		_, err := querycache.Refresh(m.ctx, m.cache, hermadata.AdopterSearchKey(q), func(ctx context.Context) (hermadata.Page[hermadata.Adopter], error) {
			return m.client.SearchAdopters(ctx, q)
		})
		return dataMsg{view: ViewAdopters, err: err}
	}
}

// adopterCreationPatches appends the confirmed record to the cached
// window and marks the window stale in the same application: the new
// row shows immediately, and the next read reconciles placement against
// the server's own filter and sort order.
func adopterCreationPatches(searchKey querycache.Key, out hermadata.Adopter) []querycache.Patch {
	return []querycache.Patch{
		querycache.AppendTo(searchKey, out),
		querycache.Invalidate(searchKey),
	}
}

// addAdopterCmd creates the adopter through a cache mutation: the
// confirmed record is appended to the cached page in place, so the list
// shows it without a refetch.
func (m Model) addAdopterCmd(in hermadata.AdopterInput) tea.Cmd {
	searchKey := hermadata.AdopterSearchKey(m.adopters.query)
	return func() tea.Msg {
		mutation := querycache.Mutation[hermadata.AdopterInput, hermadata.Adopter]{
			Run: func(ctx context.Context, in hermadata.AdopterInput) (hermadata.Adopter, error) {
				return m.client.CreateAdopter(ctx, in)
			},
			Patches: func(out hermadata.Adopter, _ hermadata.AdopterInput) []querycache.Patch {
				return adopterCreationPatches(searchKey, out)
			},
		}
		out, err := querycache.Execute(m.ctx, m.cache, mutation, in)
		if err != nil {
			return actionMsg{err: err}
		}
		return actionMsg{note: fmt.Sprintf("adopter %s %s registered", out.Name, out.Surname)}
	}
}

func (m Model) renderAdopters() string {
	st := m.theme.Styles()
	searchKey := hermadata.AdopterSearchKey(m.adopters.query)

	var b strings.Builder
	b.WriteString(st.AccentText.Render("Adopters"))
	b.WriteString(m.freshnessTag(searchKey))
	if m.adopters.query.NameLike != "" {
		b.WriteString(st.MutedText.Render("  filter: " + m.adopters.query.NameLike))
	}
	b.WriteString("\n")
	if m.adopters.filterEditing {
		b.WriteString("  " + m.adopters.filter.View() + "\n")
	}
	if m.adopters.adding {
		b.WriteString(st.MutedText.Render("  new adopter"))
		b.WriteString("\n")
		for i := range m.adopters.form {
			b.WriteString("  " + m.adopters.form[i].View() + "\n")
		}
		b.WriteString(st.MutedText.Render("  enter to save, esc to cancel"))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	page, ok := querycache.Get[hermadata.Page[hermadata.Adopter]](m.cache, searchKey)
	if !ok {
		b.WriteString(st.MutedText.Render("  loading..."))
		return st.Panel.Render(b.String())
	}

	header := fmt.Sprintf("  %-20s %-20s %-18s %-14s", "SURNAME", "NAME", "FISCAL CODE", "PHONE")
	b.WriteString(st.MutedText.Render(header))
	b.WriteString("\n")
	for i, a := range page.Items {
		row := fmt.Sprintf("  %-20s %-20s %-18s %-14s",
			truncate(a.Surname, 20), truncate(a.Name, 20),
			truncate(a.FiscalCode, 18), truncate(a.Phone, 14))
		if i == m.adopters.row {
			row = st.Selected.Render(row)
		}
		b.WriteString(row)
		b.WriteString("\n")
	}
	if len(page.Items) == 0 {
		b.WriteString(st.MutedText.Render("  no adopters match"))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(st.MutedText.Render(windowLine(m.adopters.query.FromIndex, len(page.Items), page.Total)))
	return st.Panel.Render(b.String())
}
