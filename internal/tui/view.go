package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/octobees/merchant-directory/internal/dto"
	"github.com/octobees/merchant-directory/internal/querystate"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	currentStyle = lipgloss.NewStyle().Bold(true).Reverse(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	nameStyle    = lipgloss.NewStyle().Bold(true)
)

const helpLine = "ctrl+t type · ctrl+s sort · ctrl+o order · ctrl+v view · ctrl+n/ctrl+p page · esc clear · ctrl+c quit"

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder
	q := querystate.Decode(m.query, m.opts.Defaults)

	heading := m.t("explore.search.allResults")
	if q.Search != "" {
		heading = m.catalog.T(m.opts.Locale, "explore.search.searching", "query", q.Search)
	}
	b.WriteString(titleStyle.Render(heading))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(m.controlsLine(q)))
	b.WriteString("\n\n")

	switch {
	case m.err != nil:
		b.WriteString(errorStyle.Render(m.t("error.description")))
		b.WriteString("\n")
		b.WriteString(mutedStyle.Render(m.err.Error()))
		b.WriteString("\n")
	case m.result == nil:
		b.WriteString(mutedStyle.Render("…"))
		b.WriteString("\n")
	case m.result.Empty:
		b.WriteString(nameStyle.Render(m.t("explore.empty.title")))
		b.WriteString("\n")
		b.WriteString(mutedStyle.Render(m.t("explore.empty.description")))
		b.WriteString("\n")
	default:
		b.WriteString(mutedStyle.Render(m.catalog.T(m.opts.Locale, "explore.results", "total", humanize.Comma(int64(m.result.Meta.Total)))))
		b.WriteString("\n")
		for _, item := range m.result.Items {
			b.WriteString(renderItem(item, q.View == querystate.ViewList))
		}
		b.WriteString("\n")
		b.WriteString(RenderWindow(m.result.Window, m.result.Current))
		b.WriteString("\n")
	}

	if m.loading {
		b.WriteString(mutedStyle.Render("loading…"))
		b.WriteString("\n")
	}
	b.WriteString(mutedStyle.Render(helpLine))
	return b.String()
}

func (m Model) t(key string) string {
	return m.catalog.T(m.opts.Locale, key)
}

func (m Model) controlsLine(q querystate.ListQuery) string {
	typeLabel := m.t("explore.filters.allTypes")
	for _, o := range m.types {
		if o.Value == q.Type {
			typeLabel = o.Label
		}
	}
	if q.Type != "" && typeLabel == m.t("explore.filters.allTypes") {
		typeLabel = q.Type
	}
	view := q.View
	if view == "" {
		view = querystate.ViewGrid
	}
	return fmt.Sprintf("%s: %s   %s: %s   %s: %s   %s",
		m.t("explore.filters.merchantType"), typeLabel,
		m.t("explore.filters.sortBy"), m.choiceLabel(sortChoices, q.SortBy),
		m.t("explore.filters.sortOrder"), m.choiceLabel(orderChoices, q.SortOrder),
		m.choiceLabel(viewChoices, view),
	)
}

func (m Model) choiceLabel(options []querystate.Option, value string) string {
	for _, o := range options {
		if o.Value == value && o.Label != "" {
			return m.t(o.Label)
		}
	}
	return "-"
}

func renderItem(item dto.MerchantListItem, detailed bool) string {
	var b strings.Builder
	b.WriteString("• ")
	b.WriteString(nameStyle.Render(item.Title()))
	if item.PrimaryType != nil && *item.PrimaryType != "" {
		b.WriteString(mutedStyle.Render(" · " + *item.PrimaryType))
	}
	if item.Rating != nil {
		b.WriteString(fmt.Sprintf(" ★ %.1f", *item.Rating))
		if item.UserRatingCount != nil {
			b.WriteString(mutedStyle.Render(" (" + humanize.Comma(int64(*item.UserRatingCount)) + ")"))
		}
	}
	b.WriteString("\n")
	if detailed && item.ShortAddress != nil && *item.ShortAddress != "" {
		b.WriteString("  ")
		b.WriteString(mutedStyle.Render(*item.ShortAddress))
		b.WriteString("\n")
	}
	return b.String()
}

// RenderWindow draws the pager, highlighting the current page.
func RenderWindow(tokens []querystate.PageToken, current int) string {
	parts := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if !tok.Ellipsis && tok.Page == current {
			parts = append(parts, currentStyle.Render("["+tok.Label()+"]"))
			continue
		}
		parts = append(parts, tok.Label())
	}
	return strings.Join(parts, " ")
}
