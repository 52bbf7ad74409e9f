package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/hermadata/console/internal/hermadata"
	"github.com/hermadata/console/internal/querycache"
)

type usersState struct {
	row   int
	unsub func()
}

func (m Model) handleUsersKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	users, haveUsers := querycache.Get[[]hermadata.User](m.cache, hermadata.UsersKey())

	switch {
	case key.Matches(msg, m.keys.Up):
		if m.users.row > 0 {
			m.users.row--
		}
		return m, nil
	case key.Matches(msg, m.keys.Down):
		if haveUsers && m.users.row < len(users)-1 {
			m.users.row++
		}
		return m, nil
	case key.Matches(msg, m.keys.Refresh):
		return m, m.refreshUsersCmd()
	case key.Matches(msg, m.keys.ToggleRole):
		if haveUsers && m.users.row < len(users) {
			return m, m.toggleRoleCmd(users[m.users.row])
		}
		return m, nil
	}
	return m, nil
}

func (m Model) fetchUsersCmd() tea.Cmd {
	return func() tea.Msg {
		_, err := querycache.Fetch(m.ctx, m.cache, hermadata.UsersKey(), func(ctx context.Context) ([]hermadata.User, error) {
			return m.client.FetchUsers(ctx)
		})
		return dataMsg{view: ViewUsers, err: err}
	}
}

func (m Model) refreshUsersCmd() tea.Cmd {
	return func() tea.Msg {
		_, err := querycache.Refresh(m.ctx, m.cache, hermadata.UsersKey(), func(ctx context.Context) ([]hermadata.User, error) {
			return m.client.FetchUsers(ctx)
		})
		return dataMsg{view: ViewUsers, err: err}
	}
}

// toggleRoleCmd flips one account's superuser flag and patches the
// cached list with the confirmed record, so the table reflects the
// change immediately.
func (m Model) toggleRoleCmd(target hermadata.User) tea.Cmd {
	return func() tea.Msg {
		mutation := querycache.Mutation[bool, hermadata.User]{
			Run: func(ctx context.Context, elevate bool) (hermadata.User, error) {
				return m.client.SetUserSuperuser(ctx, target.ID, elevate)
			},
			Patches: func(out hermadata.User, _ bool) []querycache.Patch {
				users, ok := querycache.Get[[]hermadata.User](m.cache, hermadata.UsersKey())
				if !ok {
					return []querycache.Patch{querycache.Invalidate(hermadata.UsersKey())}
				}
				updated := make([]hermadata.User, len(users))
				copy(updated, users)
				for i := range updated {
					if updated[i].ID == out.ID {
						updated[i] = out
					}
				}
				return []querycache.Patch{querycache.Replace(hermadata.UsersKey(), updated)}
			},
		}
		out, err := querycache.Execute(m.ctx, m.cache, mutation, !target.IsSuperuser)
		if err != nil {
			return actionMsg{err: err}
		}
		role := "standard"
		if out.IsSuperuser {
			role = "superuser"
		}
		return actionMsg{note: fmt.Sprintf("%s is now %s", out.Username, role)}
	}
}

func (m Model) renderUsers() string {
	st := m.theme.Styles()

	var b strings.Builder
	b.WriteString(st.AccentText.Render("Users"))
	b.WriteString(m.freshnessTag(hermadata.UsersKey()))
	b.WriteString("\n\n")

	users, ok := querycache.Get[[]hermadata.User](m.cache, hermadata.UsersKey())
	if !ok {
		b.WriteString(st.MutedText.Render("  loading..."))
		return st.Panel.Render(b.String())
	}

	header := fmt.Sprintf("  %-24s %-10s", "USERNAME", "ROLE")
	b.WriteString(st.MutedText.Render(header))
	b.WriteString("\n")
	for i, u := range users {
		role := "standard"
		if u.IsSuperuser {
			role = "superuser"
		}
		row := fmt.Sprintf("  %-24s %-10s", truncate(u.Username, 24), role)
		if i == m.users.row {
			row = st.Selected.Render(row)
		}
		b.WriteString(row)
		b.WriteString("\n")
	}
	if len(users) == 0 {
		b.WriteString(st.MutedText.Render("  no accounts"))
		b.WriteString("\n")
	}
	return st.Panel.Render(b.String())
}
