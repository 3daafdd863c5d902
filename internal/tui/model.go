// Package tui is the terminal explore client. It drives the same query-state machinery as the web
// pages: a debounced search box, gated filter controls and the windowed pager.
package tui

import (
	"context"
	"net/url"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/octobees/merchant-directory/internal/i18n"
	"github.com/octobees/merchant-directory/internal/querystate"
	"github.com/octobees/merchant-directory/internal/service"
)

// Explorer is the part of the explore service the terminal client uses.
type Explorer interface {
	Explore(ctx context.Context, q querystate.ListQuery, locale string) (*service.ExploreResult, error)
	MerchantTypeOptions(ctx context.Context) ([]querystate.Option, error)
}

// Options configures a Model.
type Options struct {
	Locale   string
	Defaults querystate.Defaults
	Query    url.Values
	Debounce time.Duration
	Timeout  time.Duration
	Clock    querystate.Clock
	Catalog  *i18n.Catalog
}

type navigateMsg struct {
	seq   uint64
	query url.Values
}

type resultMsg struct {
	seq    uint64
	result *service.ExploreResult
	err    error
}

type typesMsg struct {
	options []querystate.Option
	err     error
}

// navigator turns search commits, which happen on timer goroutines, into program messages. Sends
// are asynchronous because Escape commits from inside Update; the commit sequence lets the model
// drop commits that arrive out of order.
type navigator struct {
	mu   sync.Mutex
	send func(tea.Msg)
}

func (n *navigator) navigate(seq uint64, next url.Values) {
	msg := navigateMsg{seq: seq, query: next}
	n.mu.Lock()
	send := n.send
	n.mu.Unlock()
	if send != nil {
		go send(msg)
	}
}

// Model is the bubbletea model of the explore screen.
type Model struct {
	explorer Explorer
	opts     Options
	catalog  *i18n.Catalog
	nav      *navigator
	search   *querystate.SearchController

	typeControl  *querystate.Control
	sortControl  *querystate.Control
	orderControl *querystate.Control
	viewControl  *querystate.Control

	input    textinput.Model
	query    url.Values
	lastNav  uint64
	fetchSeq uint64
	loading  bool
	result   *service.ExploreResult
	types    []querystate.Option
	err      error
	width    int
}

// New builds the explore screen. Attach must be called with the program's Send before the search
// box can commit.
func New(explorer Explorer, opts Options) Model {
	if opts.Locale == "" {
		opts.Locale = i18n.Default
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.Query == nil {
		opts.Query = url.Values{}
	}
	catalog := opts.Catalog
	if catalog == nil {
		catalog = i18n.MustLoad()
	}

	nav := &navigator{}
	searchOpts := []querystate.SearchOption{querystate.WithDelay(opts.Debounce)}
	if opts.Clock != nil {
		searchOpts = append(searchOpts, querystate.WithClock(opts.Clock))
	}
	search := querystate.NewSearchController(opts.Query, nav.navigate, searchOpts...)

	input := textinput.New()
	input.Placeholder = catalog.T(opts.Locale, "explore.search.placeholder")
	input.SetValue(search.Value())
	input.Focus()

	return Model{
		explorer:     explorer,
		opts:         opts,
		catalog:      catalog,
		nav:          nav,
		search:       search,
		typeControl:  querystate.NewFilterControl(querystate.KeyType),
		sortControl:  querystate.NewFilterControl(querystate.KeySortBy),
		orderControl: querystate.NewFilterControl(querystate.KeySortOrder),
		viewControl:  querystate.NewViewControl(),
		input:        input,
		query:        opts.Query,
		fetchSeq:     1,
		loading:      true,
	}
}

// Attach routes search commits to send, normally (*tea.Program).Send.
func (m Model) Attach(send func(tea.Msg)) {
	m.nav.mu.Lock()
	defer m.nav.mu.Unlock()
	m.nav.send = send
}

// Query returns the query the screen currently shows.
func (m Model) Query() url.Values {
	return m.query
}

// Init loads the first page and the type filter options.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.fetch(m.fetchSeq, m.query), m.loadTypes())
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = max(msg.Width-4, 10)
		return m, nil

	case navigateMsg:
		if msg.seq <= m.lastNav {
			return m, nil
		}
		m.lastNav = msg.seq
		return m.load(msg.query)

	case resultMsg:
		if msg.seq != m.fetchSeq {
			return m, nil
		}
		m.loading = false
		m.search.Done()
		for _, c := range m.controls() {
			c.Done()
		}
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.result = msg.result
		return m, nil

	case typesMsg:
		if msg.err == nil {
			m.types = msg.options
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	q := querystate.Decode(m.query, m.opts.Defaults)

	switch msg.String() {
	case "ctrl+c":
		m.search.Stop()
		return m, tea.Quit
	case "esc":
		m.input.SetValue("")
		m.search.Escape()
		return m, nil
	case "ctrl+t":
		return m.apply(m.typeControl, append([]querystate.Option{{Value: ""}}, m.types...), q.Type)
	case "ctrl+s":
		return m.apply(m.sortControl, sortChoices, q.SortBy)
	case "ctrl+o":
		return m.apply(m.orderControl, orderChoices, q.SortOrder)
	case "ctrl+v":
		current := q.View
		if current == "" {
			current = querystate.ViewGrid
		}
		return m.apply(m.viewControl, viewChoices, current)
	case "ctrl+n":
		if m.loading || m.result == nil || !m.result.Meta.HasNext {
			return m, nil
		}
		return m.load(querystate.WithPage(m.query, m.result.Current+1))
	case "ctrl+p":
		if m.loading || m.result == nil || m.result.Current <= 1 {
			return m, nil
		}
		return m.load(querystate.WithPage(m.query, m.result.Current-1))
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if value := m.input.Value(); value != before {
		m.search.Input(value)
	}
	return m, cmd
}

var (
	sortChoices = []querystate.Option{
		{Value: ""},
		{Label: "explore.filters.name", Value: querystate.SortByName},
		{Label: "explore.filters.rating", Value: querystate.SortByRating},
	}
	orderChoices = []querystate.Option{
		{Value: ""},
		{Label: "explore.filters.asc", Value: querystate.SortOrderAsc},
		{Label: "explore.filters.desc", Value: querystate.SortOrderDesc},
	}
	viewChoices = []querystate.Option{
		{Label: "explore.view.grid", Value: querystate.ViewGrid},
		{Label: "explore.view.list", Value: querystate.ViewList},
	}
)

// apply cycles control to its next option. A control whose previous change is still loading
// ignores the key.
func (m Model) apply(control *querystate.Control, options []querystate.Option, current string) (tea.Model, tea.Cmd) {
	next, ok := control.Apply(m.query, querystate.Cycle(options, current))
	if !ok {
		return m, nil
	}
	return m.load(next)
}

func (m Model) load(next url.Values) (Model, tea.Cmd) {
	m.query = next
	m.search.Sync(next)
	m.fetchSeq++
	m.loading = true
	return m, m.fetch(m.fetchSeq, next)
}

func (m Model) controls() []*querystate.Control {
	return []*querystate.Control{m.typeControl, m.sortControl, m.orderControl, m.viewControl}
}

func (m Model) fetch(seq uint64, values url.Values) tea.Cmd {
	explorer, locale, timeout := m.explorer, m.opts.Locale, m.opts.Timeout
	q := querystate.Decode(values, m.opts.Defaults)
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		result, err := explorer.Explore(ctx, q, locale)
		return resultMsg{seq: seq, result: result, err: err}
	}
}

func (m Model) loadTypes() tea.Cmd {
	explorer, timeout := m.explorer, m.opts.Timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		options, err := explorer.MerchantTypeOptions(ctx)
		return typesMsg{options: options, err: err}
	}
}
