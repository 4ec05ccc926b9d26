// Package matches provides the match list view for the TUI.
package matches

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/karmicdd/karmicdd-cli/internal/adapters/driving/tui/components/input"
	"github.com/karmicdd/karmicdd-cli/internal/adapters/driving/tui/components/list"
	"github.com/karmicdd/karmicdd-cli/internal/adapters/driving/tui/components/status"
	"github.com/karmicdd/karmicdd-cli/internal/adapters/driving/tui/keymap"
	"github.com/karmicdd/karmicdd-cli/internal/adapters/driving/tui/messages"
	"github.com/karmicdd/karmicdd-cli/internal/adapters/driving/tui/styles"
	"github.com/karmicdd/karmicdd-cli/internal/core/domain"
	"github.com/karmicdd/karmicdd-cli/internal/core/ports/driving"
)

// Mode is the input focus of the view.
type Mode int

const (
	// ModeList navigates the match list.
	ModeList Mode = iota
	// ModeSearch edits the keyword filter.
	ModeSearch
	// ModeFilter edits the structured filters.
	ModeFilter
)

// formFilters are the filters edited in the filter form.
var formFilters = []domain.FilterName{domain.FilterIndustry, domain.FilterFundingStage, domain.FilterLocation}

// View is the match list with search, filters, sorting and paging.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	list      *list.MatchList
	statusbar *status.Bar
	search    *input.Field
	filters   []*input.Field

	coordinator driving.MatchCoordinator
	bookmarks   driving.BookmarkService
	ctx         context.Context

	role          domain.Role
	options       domain.FilterOptions
	state         domain.MatchListState
	mode          Mode
	focusedFilter int
	optionIndex   map[domain.FilterName]int

	width  int
	height int
	ready  bool
}

// NewView creates a new match list view.
func NewView(
	s *styles.Styles,
	km *keymap.KeyMap,
	coordinator driving.MatchCoordinator,
	bookmarks driving.BookmarkService,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	isBookmarked := func(string) bool { return false }
	if bookmarks != nil {
		isBookmarked = bookmarks.IsBookmarked
	}

	fields := make([]*input.Field, 0, len(formFilters))
	for _, name := range formFilters {
		fields = append(fields, input.NewField(s, name.Description(), "any"))
	}

	statusbar := status.NewBar(s, km)
	statusbar.SetHints(km.MatchesHelp())

	return &View{
		styles:      s,
		keymap:      km,
		list:        list.NewMatchList(s, isBookmarked),
		statusbar:   statusbar,
		search:      input.NewField(s, "Search", "name, email or description"),
		filters:     fields,
		coordinator: coordinator,
		bookmarks:   bookmarks,
		ctx:         context.Background(),
		options:     domain.EmptyFilterOptions(),
		optionIndex: make(map[domain.FilterName]int),
		state:       domain.MatchListState{State: domain.Idle{}},
		width:       80,
		height:      24,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update handles messages for the match list view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.MatchesLoaded:
		if errors.Is(msg.Err, domain.ErrStaleResponse) {
			return v, nil
		}
		v.SetState(msg.State)
		return v, nil

	case messages.BookmarkToggled:
		if msg.Err != nil {
			v.statusbar.SetMessage("Bookmark: " + domain.UserMessage(msg.Err))
			return v, nil
		}
		if msg.Bookmarked {
			v.statusbar.SetMessage("Bookmarked")
		} else {
			v.statusbar.SetMessage("Bookmark removed")
		}
		return v, nil

	case tea.KeyMsg:
		switch v.mode {
		case ModeSearch:
			return v.handleSearchKey(msg)
		case ModeFilter:
			return v.handleFilterKey(msg)
		default:
			return v.handleListKey(msg)
		}
	}

	return v, nil
}

func (v *View) handleListKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	km := v.keymap
	keyStr := msg.String()

	switch {
	case keymap.Matches(keyStr, km.Back):
		return v, changeView(messages.ViewMenu)

	case keymap.Matches(keyStr, km.Search):
		v.mode = ModeSearch
		v.search.SetValue(v.state.Filters.Keywords)
		return v, v.search.Focus()

	case keymap.Matches(keyStr, km.Filter):
		v.openFilterForm()
		return v, v.filters[v.focusedFilter].Focus()

	case keymap.Matches(keyStr, km.ClearFilters):
		return v, v.fetch(v.coordinator.ClearFilters)

	case keymap.Matches(keyStr, km.Sort):
		next := v.state.SortBy.Next()
		return v, v.fetch(func(ctx context.Context) error {
			return v.coordinator.ChangeSort(ctx, next)
		})

	case keymap.Matches(keyStr, km.Order):
		field := v.state.SortBy
		if !field.IsValid() {
			field = domain.DefaultSearchOptions().SortBy
		}
		return v, v.fetch(func(ctx context.Context) error {
			return v.coordinator.ChangeSort(ctx, field)
		})

	case keymap.Matches(keyStr, km.NextPage):
		if !v.state.Pagination.HasNext {
			return v, nil
		}
		page := v.state.Pagination.Page + 1
		return v, v.fetch(func(ctx context.Context) error {
			return v.coordinator.GoToPage(ctx, page)
		})

	case keymap.Matches(keyStr, km.PrevPage):
		if !v.state.Pagination.HasPrev {
			return v, nil
		}
		page := v.state.Pagination.Page - 1
		return v, v.fetch(func(ctx context.Context) error {
			return v.coordinator.GoToPage(ctx, page)
		})

	case keymap.Matches(keyStr, km.PageSize):
		size := nextPageSize(v.state.PageSize)
		return v, v.fetch(func(ctx context.Context) error {
			return v.coordinator.SetPageSize(ctx, size)
		})

	case keymap.Matches(keyStr, km.Refresh):
		return v, v.fetch(v.coordinator.Refresh)

	case keymap.Matches(keyStr, km.Bookmark):
		return v, v.toggleBookmark()

	case keymap.Matches(keyStr, km.Select):
		m := v.list.SelectedMatch()
		if m == nil {
			return v, nil
		}
		selected := *m
		return v, tea.Sequence(
			func() tea.Msg { return messages.MatchSelected{Match: selected} },
			changeView(messages.ViewCompatibility),
		)
	}

	v.list, _ = v.list.Update(msg)
	return v, nil
}

func (v *View) handleSearchKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	//nolint:exhaustive // handling only relevant key types
	switch msg.Type {
	case tea.KeyEsc:
		v.closeInputs()
		return v, nil
	case tea.KeyEnter:
		keyword := v.search.Value()
		v.closeInputs()
		return v, v.fetch(func(ctx context.Context) error {
			return v.coordinator.Search(ctx, keyword)
		})
	}

	var cmd tea.Cmd
	v.search, cmd = v.search.Update(msg)
	return v, cmd
}

func (v *View) handleFilterKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	//nolint:exhaustive // handling only relevant key types
	switch msg.Type {
	case tea.KeyEsc:
		v.closeInputs()
		return v, nil

	case tea.KeyTab, tea.KeyShiftTab:
		v.filters[v.focusedFilter].Blur()
		step := 1
		if msg.Type == tea.KeyShiftTab {
			step = len(v.filters) - 1
		}
		v.focusedFilter = (v.focusedFilter + step) % len(v.filters)
		return v, v.filters[v.focusedFilter].Focus()

	case tea.KeyUp, tea.KeyDown:
		v.cycleOption(msg.Type == tea.KeyDown)
		return v, nil

	case tea.KeyEnter:
		for i, name := range formFilters {
			if err := v.coordinator.SetFilter(name, v.filters[i].Value()); err != nil {
				v.statusbar.SetMessage(domain.UserMessage(err))
				return v, nil
			}
		}
		v.closeInputs()
		return v, v.fetch(v.coordinator.ApplyFilters)
	}

	var cmd tea.Cmd
	v.filters[v.focusedFilter], cmd = v.filters[v.focusedFilter].Update(msg)
	return v, cmd
}

// cycleOption fills the focused field with the next or previous facet value.
func (v *View) cycleOption(forward bool) {
	name := formFilters[v.focusedFilter]
	values := v.options.ValuesFor(name)
	if len(values) == 0 {
		return
	}

	// Slot len(values) is the empty "any" choice.
	n := len(values) + 1
	idx, ok := v.optionIndex[name]
	if !ok {
		idx = len(values)
	}
	if forward {
		idx = (idx + 1) % n
	} else {
		idx = (idx + n - 1) % n
	}
	v.optionIndex[name] = idx

	if idx == len(values) {
		v.filters[v.focusedFilter].SetValue("")
	} else {
		v.filters[v.focusedFilter].SetValue(values[idx])
	}
}

func (v *View) openFilterForm() {
	v.mode = ModeFilter
	v.focusedFilter = 0
	for i, name := range formFilters {
		v.filters[i].SetValue(v.state.Filters.Get(name))
	}
}

func (v *View) closeInputs() {
	v.mode = ModeList
	v.search.Blur()
	for _, f := range v.filters {
		f.Blur()
	}
}

// fetch runs a coordinator operation and reports the resulting state.
func (v *View) fetch(op func(ctx context.Context) error) tea.Cmd {
	if v.coordinator == nil {
		return nil
	}
	v.statusbar.SetState(domain.Loading{})
	return func() tea.Msg {
		err := op(v.ctx)
		return messages.MatchesLoaded{State: v.coordinator.Snapshot(), Err: err}
	}
}

func (v *View) toggleBookmark() tea.Cmd {
	m := v.list.SelectedMatch()
	if m == nil || v.bookmarks == nil {
		return nil
	}
	id := m.ID
	return func() tea.Msg {
		on, err := v.bookmarks.Toggle(v.ctx, id)
		return messages.BookmarkToggled{MatchID: id, Bookmarked: on, Err: err}
	}
}

func nextPageSize(current int) int {
	for i, s := range domain.PageSizes {
		if s == current {
			return domain.PageSizes[(i+1)%len(domain.PageSizes)]
		}
	}
	return domain.PageSizes[0]
}

func changeView(view messages.ViewType) tea.Cmd {
	return func() tea.Msg {
		return messages.ViewChanged{View: view}
	}
}

// View renders the match list.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 12)

	title := "Matches"
	if v.role.IsValid() {
		title = "Matching " + v.role.Plural()
	}
	sections = append(sections, v.styles.Title.Render(title))

	if summary := v.filterSummary(); summary != "" {
		sections = append(sections, v.styles.Muted.Render(summary))
	}
	sections = append(sections, "")

	switch v.mode {
	case ModeSearch:
		sections = append(sections, v.search.View(), "")
	case ModeFilter:
		sections = append(sections, v.renderFilterForm(), "")
	}

	if first, last := v.state.Pagination.Range(); last > 0 {
		sections = append(sections, v.styles.Muted.Render(
			fmt.Sprintf("Showing %d-%d of %d", first, last, v.state.Pagination.Total)))
	}

	switch {
	case domain.IsLoading(v.state.State) && !v.state.Loaded:
		sections = append(sections, v.styles.Muted.Render("Loading matches..."))
	case v.state.Error != "" && !v.state.Loaded:
		sections = append(sections, v.styles.Error.Render(v.state.Error))
	default:
		sections = append(sections, v.list.View())
	}

	sections = append(sections, "", v.statusbar.View())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (v *View) filterSummary() string {
	parts := make([]string, 0, len(domain.FilterNames()))
	for _, name := range domain.FilterNames() {
		if val := v.state.Filters.Get(name); val != "" {
			parts = append(parts, name.Description()+": "+val)
		}
	}
	return strings.Join(parts, " · ")
}

func (v *View) renderFilterForm() string {
	lines := make([]string, 0, len(v.filters)+2)
	for _, f := range v.filters {
		lines = append(lines, f.View())
	}

	name := formFilters[v.focusedFilter]
	if values := v.options.ValuesFor(name); len(values) > 0 {
		lines = append(lines, v.styles.Help.Render("↑/↓ choose from: "+strings.Join(values, ", ")))
	}
	lines = append(lines, v.styles.Help.Render("[tab] Next field  [enter] Apply  [esc] Cancel"))
	return v.styles.Border.Padding(0, 1).Render(strings.Join(lines, "\n"))
}

// SetState replaces the displayed match list state.
func (v *View) SetState(s domain.MatchListState) {
	v.state = s
	if s.Loaded {
		v.list.SetMatches(s.Items)
	}
	v.statusbar.SetList(s)
}

// State returns the displayed match list state.
func (v *View) State() domain.MatchListState {
	return v.state
}

// SetRole sets the role of the listed counterparts.
func (v *View) SetRole(role domain.Role) {
	v.role = role
}

// SetFilterOptions sets the facet values offered in the filter form.
func (v *View) SetFilterOptions(o domain.FilterOptions) {
	v.options = o.Normalize()
	v.optionIndex = make(map[domain.FilterName]int)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	v.search.SetWidth(width)
	for _, f := range v.filters {
		f.SetWidth(width - 4)
	}
	v.list.SetDimensions(width, max(4, height-10))
	v.statusbar.SetWidth(width)
}

// Capturing reports whether a text input has focus and should receive
// every key.
func (v *View) Capturing() bool {
	return v.mode != ModeList
}

// Mode returns the current input mode.
func (v *View) Mode() Mode {
	return v.mode
}

// SelectedMatch returns the highlighted match, or nil.
func (v *View) SelectedMatch() *domain.Match {
	return v.list.SelectedMatch()
}

// StatusMessage returns the status bar message.
func (v *View) StatusMessage() string {
	return v.statusbar.Message()
}
