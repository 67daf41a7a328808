package bubbletea

import (
	"fmt"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/mdedit"
	"github.com/fwojciec/mdedit/bubbletea/textarea"
)

var _ tea.Model = Model{}

// DefaultPlaceholder is shown in an empty editor unless Config overrides it.
const DefaultPlaceholder = "..."

// Terminal event kinds accepted in Config.Listeners.
const (
	EventKeyDown = "keydown"
	EventMouse   = "mouse"
	EventResize  = "resize"
	EventFocus   = "focus"
	EventBlur    = "blur"
	EventPaste   = "paste"
)

// Listener kinds accepted by RegisterListener.
const (
	ListenInput     = "input"
	ListenSelection = "selection"
)

// Extension sees every message that no key binding or event handler
// consumed, before the editor's own handling.
type Extension func(m *Model, msg tea.Msg) tea.Cmd

// KeyBinding runs Run when Binding matches a key. Returning true consumes
// the key.
type KeyBinding struct {
	Binding key.Binding
	Run     func(m *Model) bool
}

// EventHandler handles a terminal event. Returning true consumes it.
type EventHandler func(m *Model, msg tea.Msg) bool

// Selection is a cursor range as byte offsets into the document. Anchor
// equals Head while nothing is selected.
type Selection struct {
	Anchor int
	Head   int
}

// Event is delivered to listeners registered with RegisterListener.
type Event interface {
	event()
}

// InputEvent reports a document change. Editor is the model being updated
// and is valid only for the duration of the callback; Update returns a new
// Model value afterwards.
type InputEvent struct {
	Value  string
	Editor *Model
}

// SelectionEvent reports a cursor move or a focus change. As with
// InputEvent, Editor must not be retained past the callback.
type SelectionEvent struct {
	Selection Selection
	Focused   bool
	Editor    *Model
}

func (InputEvent) event()     {}
func (SelectionEvent) event() {}

// Config configures an editor. Zero values select defaults; nothing is
// rejected.
type Config struct {
	Placeholder string
	Extensions  []Extension
	Keys        []KeyBinding
	Listeners   map[string]EventHandler
	// MaxLength caps the document in characters. 0 means no limit.
	MaxLength int
	// Editable defaults to true.
	Editable *bool
	// OnlyAutolink decorates bare URLs but not link syntax.
	OnlyAutolink bool
	// HighlightMap classifies tags itself. Setting it implies
	// mdedit.PolicyCustom unless Policy says otherwise.
	HighlightMap mdedit.ClassifyFunc
	Policy       mdedit.Policy
	// Theme defaults to mdedit.DefaultTheme.
	Theme mdedit.Theme
	// Differ defaults to replacing the whole document on every edit.
	Differ mdedit.Differ
	Logger mdedit.Logger
	// Width and Height fix the editor size. Zero follows the terminal.
	Width  int
	Height int
	// Reload delivers external changes to the document.
	Reload <-chan FileChangedMsg
}

func (c Config) withDefaults() Config {
	if c.Placeholder == "" {
		c.Placeholder = DefaultPlaceholder
	}
	c.MaxLength = max(c.MaxLength, 0)
	if c.Theme.Classes == nil {
		c.Theme = mdedit.DefaultTheme()
	}
	if c.Differ == nil {
		c.Differ = replaceDiffer{}
	}
	if c.Logger == nil {
		c.Logger = mdedit.NopLogger{}
	}
	if c.HighlightMap != nil && c.Policy == mdedit.PolicyDefault {
		c.Policy = mdedit.PolicyCustom
	}
	return c
}

type replaceDiffer struct{}

func (replaceDiffer) Diff(before, after string) mdedit.ChangeSet {
	return mdedit.ReplaceAll(before, after)
}

// Model is a Markdown editor. It keeps the decorations of its document up to
// date on every edit.
type Model struct {
	// Input is the text surface. Exported for test access.
	Input textarea.Model

	parser      mdedit.Parser
	differ      mdedit.Differ
	logger      mdedit.Logger
	engine      *mdedit.Engine
	highlighter *mdedit.Highlighter
	styles      Styles

	extensions []Extension
	keys       []KeyBinding
	handlers   map[string]EventHandler
	listeners  map[string][]func(Event)
	reload     <-chan FileChangedMsg

	maxLength int
	editable  bool
	width     int
	height    int

	doc       *mdedit.Document
	spans     []mdedit.Span
	selection Selection
	focused   bool
}

// New creates an editor that parses its document with parser.
func New(parser mdedit.Parser, cfg Config) Model {
	cfg = cfg.withDefaults()

	classifier := mdedit.NewClassifier(mdedit.ClassifierOptions{
		Policy:       cfg.Policy,
		Custom:       cfg.HighlightMap,
		OnlyAutolink: cfg.OnlyAutolink,
	})
	builder := mdedit.NewBuilder(mdedit.DefaultPasses(cfg.OnlyAutolink), cfg.Logger)
	styles := NewStyles(cfg.Theme)

	ta := textarea.New()
	ta.Placeholder = cfg.Placeholder
	ta.PlaceholderStyle = styles.Placeholder
	if cfg.Width > 0 {
		ta.SetWidth(cfg.Width)
	}
	if cfg.Height > 0 {
		ta.MaxHeight = cfg.Height
		ta.SetHeight(cfg.Height)
	}

	handlers := make(map[string]EventHandler, len(cfg.Listeners))
	for kind, h := range cfg.Listeners {
		switch kind {
		case EventKeyDown, EventMouse, EventResize, EventFocus, EventBlur, EventPaste:
			handlers[kind] = h
		default:
			cfg.Logger.Warn("ignoring handler for unknown event", "kind", kind)
		}
	}

	m := Model{
		Input:       ta,
		parser:      parser,
		differ:      cfg.Differ,
		logger:      cfg.Logger,
		engine:      mdedit.NewEngine(builder, cfg.Logger),
		highlighter: mdedit.NewHighlighter(classifier),
		styles:      styles,
		extensions:  cfg.Extensions,
		keys:        cfg.Keys,
		handlers:    handlers,
		listeners:   make(map[string][]func(Event)),
		reload:      cfg.Reload,
		maxLength:   cfg.MaxLength,
		editable:    cfg.Editable == nil || *cfg.Editable,
		width:       cfg.Width,
		height:      cfg.Height,
		doc:         mdedit.NewDocument(""),
	}
	m.engine.Init(m.doc, m.parse(""))
	m.repaint()
	return m
}

// UpdatePlaceholder replaces the text shown while the document is empty.
func (m *Model) UpdatePlaceholder(text string) { m.Input.Placeholder = text }

// SetEditable switches between editing and read-only. A read-only editor
// still moves its cursor.
func (m *Model) SetEditable(editable bool) { m.editable = editable }

// Editable reports whether the document accepts edits.
func (m Model) Editable() bool { return m.editable }

// Value returns the document.
func (m Model) Value() string { return m.doc.String() }

// SetValue replaces the whole document. Programmatic replacement works on a
// read-only editor too.
func (m *Model) SetValue(text string) error {
	if m.exceeds(text) {
		return fmt.Errorf("set value: %w", mdedit.ErrMaxLength)
	}
	before := m.doc.String()
	if text == before {
		return nil
	}
	m.Input.SetValue(text)
	m.commit(mdedit.ReplaceAll(before, text), text)
	m.syncSelection()
	return nil
}

// InsertText inserts text at the cursor as if it were typed.
func (m *Model) InsertText(text string) error {
	if !m.editable {
		return fmt.Errorf("insert text: %w", mdedit.ErrReadOnly)
	}
	m.Input.InsertString(text)
	if err := m.sync(); err != nil {
		return fmt.Errorf("insert text: %w", err)
	}
	m.syncSelection()
	return nil
}

// RegisterListener subscribes fn to "input" or "selection" events.
func (m *Model) RegisterListener(kind string, fn func(Event)) error {
	switch kind {
	case ListenInput, ListenSelection:
		m.listeners[kind] = append(m.listeners[kind], fn)
		return nil
	default:
		return fmt.Errorf("register listener %q: %w", kind, mdedit.ErrUnknownListener)
	}
}

// Regions returns the current decorations.
func (m Model) Regions() mdedit.RegionSet { return m.engine.Current() }

// Spans returns the current highlight spans.
func (m Model) Spans() []mdedit.Span { return append([]mdedit.Span(nil), m.spans...) }

// Selection returns the cursor range.
func (m Model) Selection() Selection { return m.selection }

// Focused reports whether the editor has focus.
func (m Model) Focused() bool { return m.Input.Focused() }

// Focus gives the editor focus.
func (m *Model) Focus() tea.Cmd {
	cmd := m.Input.Focus()
	m.syncSelection()
	return cmd
}

// Blur removes focus from the editor.
func (m *Model) Blur() {
	m.Input.Blur()
	m.syncSelection()
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(cursor.Blink, listenForReload(m.reload))
}

// Update implements tea.Model. Key bindings see a key first, then the event
// handler for its kind, then extensions, then the editor itself.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.handle(msg) {
		m.settle()
		return m, nil
	}

	var cmds []tea.Cmd
	for _, ext := range m.extensions {
		if ext != nil {
			cmds = append(cmds, ext(&m, msg))
		}
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg)
	case tea.FocusMsg:
		cmds = append(cmds, m.Input.Focus())
	case tea.BlurMsg:
		m.Input.Blur()
	case FileChangedMsg:
		m.reloaded(msg)
		cmds = append(cmds, listenForReload(m.reload))
	}

	var cmd tea.Cmd
	m.Input, cmd = m.Input.Update(msg)
	cmds = append(cmds, cmd)

	m.settle()
	return m, tea.Batch(cmds...)
}

// View implements tea.Model.
func (m Model) View() string {
	return m.Input.View()
}

// ChatKeys returns bindings for a chat input: Enter calls onEnter and
// ctrl+j or alt+enter insert a newline.
func ChatKeys(onEnter func(m *Model)) []KeyBinding {
	return []KeyBinding{
		{
			Binding: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "send")),
			Run: func(m *Model) bool {
				if onEnter != nil {
					onEnter(m)
				}
				return true
			},
		},
		{
			Binding: key.NewBinding(key.WithKeys("ctrl+j", "alt+enter"), key.WithHelp("alt+enter", "newline")),
			Run: func(m *Model) bool {
				if err := m.InsertText("\n"); err != nil {
					m.logger.Debug("newline rejected", "error", err)
				}
				return true
			},
		},
	}
}

func (m *Model) handle(msg tea.Msg) bool {
	if k, ok := msg.(tea.KeyMsg); ok {
		for _, b := range m.keys {
			if b.Run != nil && key.Matches(k, b.Binding) && b.Run(m) {
				return true
			}
		}
	}
	h := m.handlers[eventKind(msg)]
	return h != nil && h(m, msg)
}

func eventKind(msg tea.Msg) string {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Paste {
			return EventPaste
		}
		return EventKeyDown
	case tea.MouseMsg:
		return EventMouse
	case tea.WindowSizeMsg:
		return EventResize
	case tea.FocusMsg:
		return EventFocus
	case tea.BlurMsg:
		return EventBlur
	default:
		return ""
	}
}

func (m *Model) resize(msg tea.WindowSizeMsg) {
	if m.width == 0 {
		m.Input.SetWidth(msg.Width)
	}
	if m.height == 0 {
		m.Input.MaxHeight = max(msg.Height, 1)
		m.Input.SetHeight(msg.Height)
	}
}

func (m *Model) reloaded(msg FileChangedMsg) {
	if msg.Err != nil {
		m.logger.Warn("reload failed", "path", msg.Path, "error", msg.Err)
		return
	}
	offset := m.Input.Offset()
	if err := m.SetValue(msg.Content); err != nil {
		m.logger.Warn("reload rejected", "path", msg.Path, "error", err)
		return
	}
	m.Input.SetOffset(offset)
}

// settle brings decorations and listeners up to date with the text surface.
func (m *Model) settle() {
	if err := m.sync(); err != nil {
		m.logger.Debug("edit rejected", "error", err)
	}
	m.syncSelection()
}

// sync commits the edit the text surface holds, or undoes it when the
// editor is read-only or the result would be too long.
func (m *Model) sync() error {
	after := m.Input.Value()
	before := m.doc.String()
	if after == before {
		return nil
	}
	if !m.editable {
		m.revert()
		return mdedit.ErrReadOnly
	}
	if m.exceeds(after) {
		m.revert()
		return mdedit.ErrMaxLength
	}
	m.commit(m.differ.Diff(before, after), after)
	return nil
}

func (m *Model) revert() {
	m.Input.SetValue(m.doc.String())
	m.Input.SetOffset(m.selection.Head)
}

func (m *Model) commit(change mdedit.ChangeSet, text string) {
	m.doc = mdedit.NewDocument(text)
	tree := m.parse(text)
	m.engine.Update(change, m.doc, tree)
	if tree != nil {
		m.spans = m.highlighter.Highlight(tree, m.doc)
	} else {
		m.spans = mapSpans(m.spans, change)
	}
	m.repaint()
	m.emit(ListenInput, InputEvent{Value: text, Editor: m})
}

func (m *Model) parse(text string) *mdedit.Tree {
	tree, err := m.parser.Parse(text)
	if err != nil {
		m.logger.Warn("parse failed", "error", err)
		return nil
	}
	return tree
}

func (m *Model) repaint() {
	p := newPainter(m.doc, m.engine.Current(), m.spans, m.styles)
	m.Input.StyleAt = p.styleAt
	m.Input.LineStyleAt = p.lineStyleAt
}

func (m *Model) syncSelection() {
	offset := m.Input.Offset()
	sel := Selection{Anchor: offset, Head: offset}
	focused := m.Input.Focused()
	if sel == m.selection && focused == m.focused {
		return
	}
	m.selection, m.focused = sel, focused
	m.emit(ListenSelection, SelectionEvent{Selection: sel, Focused: focused, Editor: m})
}

func (m *Model) emit(kind string, e Event) {
	for _, fn := range m.listeners[kind] {
		fn(e)
	}
}

func (m *Model) exceeds(text string) bool {
	return m.maxLength > 0 && utf8.RuneCountInString(text) > m.maxLength
}

// mapSpans moves spans through change, dropping those whose text was
// deleted.
func mapSpans(spans []mdedit.Span, change mdedit.ChangeSet) []mdedit.Span {
	out := make([]mdedit.Span, 0, len(spans))
	for _, s := range spans {
		from, _ := change.MapPos(s.From, 1)
		to, _ := change.MapPos(s.To, -1)
		if to <= from {
			continue
		}
		out = append(out, mdedit.Span{From: from, To: to, Class: s.Class})
	}
	return out
}
