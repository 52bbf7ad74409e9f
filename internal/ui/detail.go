package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/hermadata/console/internal/hermadata"
	"github.com/hermadata/console/internal/querycache"
	"github.com/hermadata/console/internal/schema"
)

type detailState struct {
	id          int64
	viewport    viewport.Model
	ready       bool
	editingChip bool
	chipInput   textinput.Model
	unsub       func()
	unsubDocs   func()
	unsubRaces  func()
}

func newDetailState() detailState {
	chip := textinput.New()
	chip.Placeholder = "000.000.000.000.000"
	chip.CharLimit = 19
	return detailState{chipInput: chip}
}

func (s *detailState) initViewport(width, height int) {
	if s.ready || width == 0 {
		return
	}
	s.viewport = viewport.New(width-4, maxInt(height-8, 3))
	s.ready = true
}

func (s *detailState) resizeViewport(width, height int) {
	if !s.ready {
		return
	}
	s.viewport.Width = width - 4
	s.viewport.Height = maxInt(height-8, 3)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.detail.editingChip {
		switch msg.String() {
		case "esc":
			m.detail.editingChip = false
			m.detail.chipInput.Blur()
			return m, nil
		case "enter":
			chip := strings.TrimSpace(m.detail.chipInput.Value())
			if chip != "" && !schema.ValidChipCode(chip) {
				m.setError("chip code must look like 000.000.000.000.000")
				return m, nil
			}
			m.detail.editingChip = false
			m.detail.chipInput.Blur()
			return m, m.saveChipCmd(chip)
		}
		var cmd tea.Cmd
		m.detail.chipInput, cmd = m.detail.chipInput.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Escape):
		return m.switchView(ViewAnimals)
	case key.Matches(msg, m.keys.EditChip):
		if animal, ok := querycache.Get[hermadata.Animal](m.cache, hermadata.AnimalKey(m.detail.id)); ok {
			m.detail.editingChip = true
			m.detail.chipInput.SetValue(animal.ChipCode)
			m.detail.chipInput.Focus()
		}
		return m, nil
	case key.Matches(msg, m.keys.Refresh):
		return m, m.refreshAnimalDetailCmd()
	}

	var cmd tea.Cmd
	m.detail.viewport, cmd = m.detail.viewport.Update(msg)
	return m, cmd
}

func (m Model) fetchAnimalDetailCmd() tea.Cmd {
	id := m.detail.id
	return func() tea.Msg {
		_, err := querycache.Fetch(m.ctx, m.cache, hermadata.AnimalKey(id), func(ctx context.Context) (hermadata.Animal, error) {
			return m.client.FetchAnimal(ctx, id)
		})
		if err != nil {
			return dataMsg{view: ViewAnimalDetail, err: err}
		}
		_, err = querycache.Fetch(m.ctx, m.cache, hermadata.AnimalDocumentsKey(id), func(ctx context.Context) ([]hermadata.Document, error) {
			return m.client.FetchAnimalDocuments(ctx, id)
		})
		if err != nil {
			return dataMsg{view: ViewAnimalDetail, err: err}
		}
		// The race lookup is shared by every detail view through its long
		// TTL; a failure only degrades the label, so it is not surfaced.
		_, _ = querycache.Fetch(m.ctx, m.cache, hermadata.RacesKey(), func(ctx context.Context) ([]hermadata.Race, error) {
			return m.client.FetchRaces(ctx)
		})
		return dataMsg{view: ViewAnimalDetail}
	}
}

func (m Model) refreshAnimalDetailCmd() tea.Cmd {
	id := m.detail.id
	return func() tea.Msg {
		_, err := querycache.Refresh(m.ctx, m.cache, hermadata.AnimalKey(id), func(ctx context.Context) (hermadata.Animal, error) {
			return m.client.FetchAnimal(ctx, id)
		})
		if err != nil {
			return dataMsg{view: ViewAnimalDetail, err: err}
		}
		_, err = querycache.Refresh(m.ctx, m.cache, hermadata.AnimalDocumentsKey(id), func(ctx context.Context) ([]hermadata.Document, error) {
			return m.client.FetchAnimalDocuments(ctx, id)
		})
		return dataMsg{view: ViewAnimalDetail, err: err}
	}
}

// saveChipCmd writes the chip code through a cache mutation: on success
// the detail entry is replaced with the server's record and the current
// search window is marked stale, so both render the new chip before the
// next frame.
func (m Model) saveChipCmd(chip string) tea.Cmd {
	id := m.detail.id
	searchKey := hermadata.AnimalSearchKey(m.animals.query)
	return func() tea.Msg {
		animal, ok := querycache.Get[hermadata.Animal](m.cache, hermadata.AnimalKey(id))
		if !ok {
			return actionMsg{err: fmt.Errorf("animal %d not loaded", id)}
		}
		update := hermadata.AnimalUpdate{
			Name:       animal.Name,
			ChipCode:   chip,
			BreedID:    animal.BreedID,
			Sex:        animal.Sex,
			BirthDate:  animal.BirthDate,
			Sterilized: animal.Sterilized,
			Adoptable:  animal.Adoptable,
			Notes:      animal.Notes,
		}
		mutation := querycache.Mutation[hermadata.AnimalUpdate, hermadata.Animal]{
			Run: func(ctx context.Context, in hermadata.AnimalUpdate) (hermadata.Animal, error) {
				return m.client.UpdateAnimal(ctx, id, in)
			},
			Patches: func(out hermadata.Animal, _ hermadata.AnimalUpdate) []querycache.Patch {
				return []querycache.Patch{
					querycache.Replace(hermadata.AnimalKey(id), out),
					querycache.Invalidate(searchKey),
				}
			},
		}
		out, err := querycache.Execute(m.ctx, m.cache, mutation, update)
		if err != nil {
			return actionMsg{err: err}
		}
		note := "chip code updated"
		if out.ChipCode == "" {
			note = "chip code cleared"
		}
		return actionMsg{note: note}
	}
}

// updateDetailViewport re-renders the detail body into the viewport. It
// runs on every tick and data message so background revalidations show
// up without a keypress.
func (m *Model) updateDetailViewport() {
	if !m.ready || !m.detail.ready || m.currentView != ViewAnimalDetail {
		return
	}
	m.detail.viewport.SetContent(m.renderDetailBody())
}

// raceLabel resolves a race id against the cached lookup list, falling
// back to the raw id while the list is not loaded.
func (m Model) raceLabel(raceID string) string {
	races, ok := querycache.Get[[]hermadata.Race](m.cache, hermadata.RacesKey())
	if !ok {
		return raceID
	}
	for _, r := range races {
		if r.ID == raceID {
			return r.Name
		}
	}
	return raceID
}

func (m Model) renderDetail() string {
	st := m.theme.Styles()

	var b strings.Builder
	b.WriteString(st.AccentText.Render(fmt.Sprintf("Animal #%d", m.detail.id)))
	b.WriteString(m.freshnessTag(hermadata.AnimalKey(m.detail.id)))
	b.WriteString("\n")
	if m.detail.editingChip {
		b.WriteString("  chip: " + m.detail.chipInput.View() + "\n")
	}
	b.WriteString(m.detail.viewport.View())
	return st.Panel.Render(b.String())
}

func (m Model) renderDetailBody() string {
	st := m.theme.Styles()

	animal, ok := querycache.Get[hermadata.Animal](m.cache, hermadata.AnimalKey(m.detail.id))
	if !ok {
		return st.MutedText.Render("  loading...")
	}

	var b strings.Builder
	field := func(label, value string) {
		if value == "" {
			value = "-"
		}
		fmt.Fprintf(&b, "  %-16s %s\n", label, value)
	}

	field("code", animal.Code)
	field("name", animal.Name)
	field("chip", animal.ChipCode)
	field("race", m.raceLabel(animal.RaceID))
	field("sex", animal.Sex)
	field("birth date", animal.BirthDate)
	sterilized := "no"
	if animal.Sterilized {
		sterilized = "yes"
	}
	field("sterilized", sterilized)
	if entry := animal.ParsedEntryDate(); !entry.IsZero() {
		field("entry", entry.Format("02 Jan 2006")+" ("+animal.EntryType+")")
	}
	if exit := animal.ParsedExitDate(); !exit.IsZero() {
		field("exit", exit.Format("02 Jan 2006")+" ("+animal.ExitType+")")
	}
	adoptable := "no"
	if animal.Adoptable {
		adoptable = "yes"
	}
	field("adoptable", adoptable)
	if animal.Notes != "" {
		field("notes", animal.Notes)
	}

	b.WriteString("\n")
	b.WriteString(st.MutedText.Render("  documents"))
	b.WriteString("\n")
	docs, ok := querycache.Get[[]hermadata.Document](m.cache, hermadata.AnimalDocumentsKey(m.detail.id))
	switch {
	case !ok:
		b.WriteString(st.MutedText.Render("  loading..."))
		b.WriteString("\n")
	case len(docs) == 0:
		b.WriteString(st.MutedText.Render("  none"))
		b.WriteString("\n")
	default:
		for _, d := range docs {
			fmt.Fprintf(&b, "  %-12s %-30s %s\n", d.KindCode, truncate(d.Title, 30), truncate(d.Filename, 24))
		}
	}
	return b.String()
}
