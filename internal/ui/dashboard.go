package ui

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/hermadata/console/internal/hermadata"
	"github.com/hermadata/console/internal/querycache"
)

func (m Model) handleDashboardKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Refresh) {
		return m, m.refreshStatsCmd()
	}
	return m, nil
}

func (m Model) fetchStatsCmd() tea.Cmd {
	return func() tea.Msg {
		_, err := querycache.Fetch(m.ctx, m.cache, hermadata.StatsKey(), func(ctx context.Context) (hermadata.ShelterStats, error) {
			return m.client.FetchStats(ctx)
		})
		return dataMsg{view: ViewDashboard, err: err}
	}
}

func (m Model) refreshStatsCmd() tea.Cmd {
	return func() tea.Msg {
		_, err := querycache.Refresh(m.ctx, m.cache, hermadata.StatsKey(), func(ctx context.Context) (hermadata.ShelterStats, error) {
			return m.client.FetchStats(ctx)
		})
		return dataMsg{view: ViewDashboard, err: err}
	}
}

func (m Model) renderDashboard() string {
	st := m.theme.Styles()

	stats, ok := querycache.Get[hermadata.ShelterStats](m.cache, hermadata.StatsKey())
	if !ok {
		return st.Panel.Render(st.MutedText.Render("loading shelter stats..."))
	}

	var b strings.Builder
	b.WriteString(st.AccentText.Render("Shelter overview"))
	b.WriteString(m.freshnessTag(hermadata.StatsKey()))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "  %-22s %s\n", "animals present", st.Text.Render(fmt.Sprintf("%d", stats.Present)))
	fmt.Fprintf(&b, "  %-22s %s\n", "entered this year", st.Text.Render(fmt.Sprintf("%d", stats.EnteredThisYear)))
	fmt.Fprintf(&b, "  %-22s %s\n", "exited this year", st.Text.Render(fmt.Sprintf("%d", stats.ExitedThisYear)))
	fmt.Fprintf(&b, "  %-22s %s\n", "adoptions", st.SuccessText.Render(fmt.Sprintf("%d", stats.Adoptions)))

	if len(stats.ByRace) > 0 {
		b.WriteString("\n")
		b.WriteString(st.MutedText.Render("  present by race"))
		b.WriteString("\n")
		races := make([]string, 0, len(stats.ByRace))
		for race := range stats.ByRace {
			races = append(races, race)
		}
		sort.Strings(races)
		for _, race := range races {
			fmt.Fprintf(&b, "  %-22s %d\n", race, stats.ByRace[race])
		}
	}
	return st.Panel.Render(b.String())
}

// freshnessTag renders a small marker when the entry behind key is being
// revalidated or has gone stale, so the operator knows the numbers on
// screen may be about to change.
func (m Model) freshnessTag(k querycache.Key) string {
	st := m.theme.Styles()
	entry, ok := m.cache.Get(k)
	if !ok {
		return ""
	}
	switch {
	case entry.Status == querycache.StatusLoading && entry.HasData():
		return st.WarningText.Render("  ~refreshing")
	case entry.Status == querycache.StatusError:
		return st.DangerText.Render("  !stale")
	}
	return ""
}
