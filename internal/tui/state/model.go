package state

import (
	stderrors "errors"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/cristianoliveira/pokeview/internal/api"
	"github.com/cristianoliveira/pokeview/internal/appstate"
	"github.com/cristianoliveira/pokeview/internal/domain"
	"github.com/cristianoliveira/pokeview/internal/editor"
	"github.com/cristianoliveira/pokeview/internal/errors"
	"github.com/cristianoliveira/pokeview/internal/review"
	"github.com/cristianoliveira/pokeview/internal/search"
	"github.com/cristianoliveira/pokeview/internal/team"
	"github.com/cristianoliveira/pokeview/internal/tui/render"
)

const (
	headerFooterLines     = 6
	defaultViewportWidth  = 80
	defaultViewportHeight = 22
	statusClearDuration   = 5 * time.Second
	reviewTextHeight      = 5
)

type screen int

const (
	screenList screen = iota
	screenDetail
	screenTeam
)

// Options configures a Model.
type Options struct {
	Catalog     api.Catalog
	Store       *appstate.Store
	PageSize    int
	SearchDelay time.Duration
	Timeout     time.Duration
	StatusTTL   time.Duration
}

// Model represents the TUI model for bubbletea.
type Model struct {
	catalog   api.Catalog
	store     *appstate.Store
	editor    *editor.Editor
	bar       *search.Bar
	team      *team.Manager
	pageSize  int
	timeout   time.Duration
	statusTTL time.Duration

	errorHandler  *errors.TUIHandler
	status        errors.Message
	hasStatus     bool
	statusSeq     int
	statusChanged bool

	screen screen
	width  int
	height int

	list        domain.PokemonPage
	listKey     string
	listErr     error
	listLoading bool
	listDirty   bool
	cursor      int

	searching   bool
	searchInput textinput.Model

	types        []string
	editorCursor int

	detailID      int
	detail        *domain.Pokemon
	detailErr     error
	detailTab     render.DetailTab
	detailReturn  screen
	viewport      viewport.Model
	teamIndex     int
	teamDirty     bool
	composer      *review.Composer
	textarea      textarea.Model
	ratingFocused bool
	submitting    bool

	unsubscribe []func()
}

// NewModel creates the TUI model and subscribes it to the list and team
// slots of the store.
func NewModel(opts Options) (*Model, error) {
	if opts.Catalog == nil {
		return nil, stderrors.New("tui: catalog is required")
	}
	if opts.Store == nil {
		return nil, stderrors.New("tui: store is required")
	}
	if opts.PageSize <= 0 {
		opts.PageSize = domain.DefaultPageSize
	}
	if opts.SearchDelay <= 0 {
		opts.SearchDelay = search.DefaultDelay
	}
	if opts.Timeout <= 0 {
		opts.Timeout = api.DefaultTimeout
	}
	if opts.StatusTTL <= 0 {
		opts.StatusTTL = statusClearDuration
	}

	ti := textinput.New()
	ti.Prompt = "/"
	ti.Placeholder = "search by name"
	ti.CharLimit = 64

	ta := textarea.New()
	ta.Placeholder = "Write your review"
	ta.ShowLineNumbers = false
	ta.SetHeight(reviewTextHeight)

	m := Model{
		catalog:     opts.Catalog,
		store:       opts.Store,
		editor:      editor.New(opts.Store),
		bar:         search.NewBar(opts.Store, opts.SearchDelay),
		team:        team.NewManager(opts.Store),
		pageSize:    opts.PageSize,
		timeout:     opts.Timeout,
		statusTTL:   opts.StatusTTL,
		searchInput: ti,
		textarea:    ta,
		types:       domain.PokemonTypes,
		viewport:    viewport.New(defaultViewportWidth, defaultViewportHeight),
		listDirty:   true,
	}

	m.errorHandler = errors.NewTUIHandler(func(msg errors.Message) {
		m.status = msg
		m.hasStatus = msg.Text != ""
		m.statusSeq++
		m.statusChanged = true
	})

	markList := func(appstate.Snapshot) { m.listDirty = true }
	for _, slot := range []appstate.Slot{appstate.SlotFilters, appstate.SlotSort, appstate.SlotPage, appstate.SlotSearch} {
		m.unsubscribe = append(m.unsubscribe, m.store.Subscribe(slot, markList))
	}
	m.unsubscribe = append(m.unsubscribe, m.store.Subscribe(appstate.SlotTeam, func(appstate.Snapshot) {
		m.teamDirty = true
	}))

	return &m, nil
}

// Init issues the initial listing and type queries.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.flush(), fetchTypesCmd(m.catalog, m.timeout))
}

// Update handles messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	switch msg := msg.(type) {
	case tea.KeyMsg:
		cmds = append(cmds, m.handleKeyMsg(msg))
	case tea.WindowSizeMsg:
		m.handleWindowSizeMsg(msg)
	case search.FireMsg:
		m.bar.Handle(msg)
	case listLoadedMsg:
		m.handleListLoaded(msg)
	case pokemonLoadedMsg:
		m.handlePokemonLoaded(msg)
	case reviewsLoadedMsg:
		m.handleReviewsLoaded(msg)
	case reviewSubmittedMsg:
		cmds = append(cmds, m.handleReviewSubmitted(msg))
	case typesLoadedMsg:
		if msg.err == nil && len(msg.types) > 0 {
			m.types = msg.types
		}
	case clearStatusMsg:
		if msg.seq == m.statusSeq {
			m.hasStatus = false
			m.errorHandler.Clear()
		}
	}
	cmds = append(cmds, m.flush())
	return m, tea.Batch(cmds...)
}

// flush turns state changes recorded by subscriptions into commands.
func (m *Model) flush() tea.Cmd {
	var cmds []tea.Cmd
	if m.listDirty {
		m.listDirty = false
		q := m.store.Snapshot().Query(m.pageSize)
		m.listKey = q.Key()
		m.listLoading = true
		cmds = append(cmds, fetchListCmd(m.catalog, q, m.timeout))
	}
	if m.teamDirty {
		m.teamDirty = false
		cmds = append(cmds, m.syncTeam())
	}
	if m.statusChanged {
		m.statusChanged = false
		cmds = append(cmds, clearStatusAfter(m.statusTTL, m.statusSeq))
	}
	return tea.Batch(cmds...)
}

// syncTeam keeps the team view pointed at a roster member after the roster
// changed.
func (m *Model) syncTeam() tea.Cmd {
	m.refreshDetail()
	roster := m.team.Roster()
	if len(roster) == 0 {
		m.teamIndex = 0
		return nil
	}
	if m.teamIndex >= len(roster) {
		m.teamIndex = len(roster) - 1
	}
	if m.screen != screenTeam {
		return nil
	}
	return m.showTeamMember()
}

func (m *Model) handleListLoaded(msg listLoadedMsg) {
	if msg.key != m.listKey {
		return
	}
	m.listLoading = false
	m.listErr = msg.err
	if msg.err != nil {
		return
	}
	m.list = msg.page
	if m.cursor >= len(m.list.Items) {
		m.cursor = max(0, len(m.list.Items)-1)
	}
	if m.list.Pages > 0 && m.store.Page() > m.list.Pages {
		m.store.SetPage(m.list.Pages)
	}
}

func (m *Model) handlePokemonLoaded(msg pokemonLoadedMsg) {
	if msg.id != m.detailID {
		return
	}
	m.detailErr = msg.err
	if msg.err != nil {
		m.detail = nil
		return
	}
	p := msg.pokemon
	m.detail = &p
	m.refreshDetail()
}

func (m *Model) handleReviewsLoaded(msg reviewsLoadedMsg) {
	if msg.err != nil {
		errors.Report(m.errorHandler, msg.err)
		return
	}
	m.applyReviews(msg.id, msg.reviews)
}

func (m *Model) applyReviews(id int, reviews []domain.Review) {
	if m.composer != nil && m.composer.PokemonID() == id {
		m.composer.SetReviews(reviews)
	}
	if m.detail != nil && m.detail.ID == id {
		m.detail.Reviews = reviews
		summary := domain.SummarizeRatings(reviews)
		m.detail.RatingSummary = &summary
		m.refreshDetail()
	}
}

func (m *Model) handleReviewSubmitted(msg reviewSubmittedMsg) tea.Cmd {
	m.submitting = false
	if msg.err != nil {
		errors.Report(m.errorHandler, msg.err)
		return nil
	}
	if m.composer != nil && m.composer.PokemonID() == msg.id {
		m.composer.Submitted(msg.reviews)
		m.textarea.Reset()
	}
	if msg.refetchErr != nil {
		errors.Report(m.errorHandler, msg.refetchErr)
		return nil
	}
	m.errorHandler.Success(review.MsgThankYou)
	m.applyReviews(msg.id, msg.reviews)
	return nil
}

func (m *Model) handleWindowSizeMsg(msg tea.WindowSizeMsg) {
	m.width = msg.Width
	m.height = msg.Height
	m.viewport.Width = msg.Width
	m.viewport.Height = max(1, msg.Height-headerFooterLines)
	m.searchInput.Width = max(10, msg.Width/2)
	m.textarea.SetWidth(max(20, min(msg.Width-4, 72)))
	m.refreshDetail()
}

// showPokemon points the detail view at id and fetches it.
func (m *Model) showPokemon(id int) tea.Cmd {
	if m.detail != nil && m.detail.ID == id && m.detailErr == nil {
		m.detailID = id
		m.refreshDetail()
		return nil
	}
	m.detailID = id
	m.detail = nil
	m.detailErr = nil
	m.viewport.GotoTop()
	return fetchPokemonCmd(m.catalog, id, m.timeout)
}

func (m *Model) showTeamMember() tea.Cmd {
	roster := m.team.Roster()
	if len(roster) == 0 {
		return nil
	}
	id, err := strconv.Atoi(roster[m.teamIndex])
	if err != nil {
		m.errorHandler.Error("invalid team member id: " + roster[m.teamIndex])
		return nil
	}
	return m.showPokemon(id)
}

// refreshDetail re-renders the detail document into the viewport.
func (m *Model) refreshDetail() {
	if m.detail == nil {
		return
	}
	inTeam := m.team.IsMember(m.detail.IDString())
	md := render.DetailMarkdown(*m.detail, m.detailTab, inTeam)
	m.viewport.SetContent(render.Markdown(md, m.viewport.Width))
}

// Close drops pending search commits and store subscriptions.
func (m *Model) Close() {
	m.bar.Close()
	for _, unsubscribe := range m.unsubscribe {
		unsubscribe()
	}
	m.unsubscribe = nil
}
