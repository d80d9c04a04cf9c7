// Package historyui provides the Bubble Tea pick history browser.
package historyui

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/wordpick/internal/model"
	"github.com/verte-zerg/wordpick/internal/stats"
)

const (
	tabOverview = iota
	tabPicks
)

var (
	activeNavStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A"))
	inactiveNavStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#B0B0B0")).
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A"))
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
)

// ReportLoader loads a history report for a filter.
type ReportLoader func(ctx context.Context, filter model.HistoryFilter) (stats.Report, error)

// Model implements the Bubble Tea history UI.
type Model struct {
	load   ReportLoader
	filter model.HistoryFilter
	reveal bool

	report stats.Report
	errMsg string

	tabs      []string
	activeTab int
	overview  viewport.Model
	picks     table.Model

	width  int
	height int

	filterMode   bool
	filterInputs []textinput.Model
	filterIndex  int
	filterError  string
}

// NewModel constructs a history UI model. Words are masked unless reveal is set.
func NewModel(load ReportLoader, filter model.HistoryFilter, reveal bool) *Model {
	m := &Model{
		load:     load,
		filter:   filter,
		reveal:   reveal,
		tabs:     []string{"Overview", "Picks"},
		overview: viewport.New(0, 0),
		picks:    table.New(table.WithColumns(pickColumns(80)), table.WithStyles(tableStyles())),
	}
	m.filterInputs = []textinput.Model{
		newFilterInput("Lang: "),
		newFilterInput("Length: "),
		newFilterInput("Last: "),
	}
	m.refreshReport()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		m.renderContents()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.filterMode {
			return m.updateFilter(msg)
		}
		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "left", "h":
			m.moveTab(-1)
			return m, nil
		case "right", "l", "tab":
			m.moveTab(1)
			return m, nil
		case "r":
			m.reveal = !m.reveal
			m.renderContents()
			return m, nil
		case "/":
			return m.startFilter()
		case "g", "home":
			if m.activeTab == tabPicks {
				m.picks.GotoTop()
			} else {
				m.overview.GotoTop()
			}
			return m, nil
		case "G", "end":
			if m.activeTab == tabPicks {
				m.picks.GotoBottom()
			} else {
				m.overview.GotoBottom()
			}
			return m, nil
		}
		var cmd tea.Cmd
		if m.activeTab == tabPicks {
			m.picks, cmd = m.picks.Update(msg)
		} else {
			m.overview, cmd = m.overview.Update(msg)
		}
		return m, cmd
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	header := m.renderTabs() + "\n" + m.renderFilterSummary()
	var body string
	switch {
	case m.filterMode:
		body = m.renderFilterForm()
	case m.activeTab == tabPicks:
		body = m.picks.View()
	default:
		body = m.overview.View()
	}
	return strings.Join([]string{header, body, m.renderFooter()}, "\n")
}

func newFilterInput(prompt string) textinput.Model {
	input := textinput.New()
	input.Prompt = prompt
	input.CharLimit = 16
	return input
}

func (m *Model) bodyHeight() int {
	tabsHeight := lipgloss.Height(activeNavStyle.Render("X"))
	footerHeight := 1
	if m.errMsg != "" {
		footerHeight++
	}
	return max(m.height-tabsHeight-1-footerHeight, 1)
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	height := m.bodyHeight()
	m.overview.Width = m.width
	m.overview.Height = height
	m.picks.SetColumns(pickColumns(m.width))
	m.picks.SetWidth(m.width)
	m.picks.SetHeight(height)
}

func (m *Model) moveTab(delta int) {
	m.activeTab = (m.activeTab + delta + len(m.tabs)) % len(m.tabs)
	if m.activeTab == tabPicks {
		m.picks.Focus()
	} else {
		m.picks.Blur()
	}
}

func (m *Model) renderTabs() string {
	parts := make([]string, 0, len(m.tabs))
	for i, tab := range m.tabs {
		if i == m.activeTab {
			parts = append(parts, activeNavStyle.Render(tab))
		} else {
			parts = append(parts, inactiveNavStyle.Render(tab))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *Model) renderFilterSummary() string {
	lang := m.filter.Lang
	if lang == "" {
		lang = "any"
	}
	length := "any"
	if m.filter.Length > 0 {
		length = strconv.Itoa(m.filter.Length)
	}
	last := "all"
	if m.filter.Last > 0 {
		last = strconv.Itoa(m.filter.Last)
	}
	return headerStyle.Render(fmt.Sprintf("Filter: lang=%s  length=%s  last=%s", lang, length, last))
}

func (m *Model) renderFooter() string {
	if m.filterMode {
		return headerStyle.Render("tab/shift+tab: next field  enter: apply  esc: cancel")
	}
	help := headerStyle.Render("Nav: left/right  Scroll: up/down  Reveal: r  Filter: /  Quit: q")
	if m.errMsg != "" {
		return help + "\n" + errorStyle.Render(m.errMsg)
	}
	return help
}

func (m *Model) renderFilterForm() string {
	lines := []string{"Filter (enter to apply, esc to cancel)"}
	for _, input := range m.filterInputs {
		lines = append(lines, input.View())
	}
	if m.filterError != "" {
		lines = append(lines, errorStyle.Render(m.filterError))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) refreshReport() {
	report, err := m.load(context.Background(), m.filter)
	if err != nil {
		m.errMsg = err.Error()
		m.report = stats.Report{}
	} else {
		m.errMsg = ""
		m.report = report
	}
	m.updateLayout()
	m.renderContents()
}

func (m *Model) renderContents() {
	width := m.width
	if width <= 0 {
		width = 80
	}
	report := m.report
	if !m.reveal {
		report.TopWords = nil
	}
	var buf bytes.Buffer
	if err := stats.RenderReport(&buf, report, width); err != nil {
		m.overview.SetContent("Failed to render history.")
	} else {
		m.overview.SetContent(strings.TrimRight(buf.String(), "\n"))
	}
	m.picks.SetRows(pickRows(m.report.Picks, m.reveal))
}

func pickColumns(width int) []table.Column {
	cols := []table.Column{
		{Title: "When", Width: 16},
		{Title: "Lang", Width: 5},
		{Title: "Len", Width: 4},
		{Title: "Word", Width: 14},
		{Title: "Position", Width: 11},
		{Title: "ID", Width: 8},
	}
	used := 0
	for _, c := range cols {
		used += c.Width + 2
	}
	if extra := width - used; extra > 0 {
		cols[3].Width += extra
	}
	return cols
}

func pickRows(picks []model.Pick, reveal bool) []table.Row {
	rows := make([]table.Row, 0, len(picks))
	// Newest first.
	for i := len(picks) - 1; i >= 0; i-- {
		p := picks[i]
		word := p.Word
		if !reveal {
			word = strings.Repeat("•", p.Length)
		}
		id := p.ID
		if len(id) > 8 {
			id = id[:8]
		}
		rows = append(rows, table.Row{
			p.PickedAt.Local().Format("2006-01-02 15:04"),
			p.Lang,
			strconv.Itoa(p.Length),
			word,
			fmt.Sprintf("%d/%d", p.Position, p.PoolSize),
			id,
		})
	}
	return rows
}

func tableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		BorderBottom(true).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color("#F0F0F0")).
		Background(lipgloss.Color("#5A4A2A"))
	return styles
}

func (m *Model) startFilter() (tea.Model, tea.Cmd) {
	m.filterMode = true
	m.filterError = ""
	m.filterInputs[0].SetValue(m.filter.Lang)
	m.filterInputs[1].SetValue(intOrEmpty(m.filter.Length))
	m.filterInputs[2].SetValue(intOrEmpty(m.filter.Last))
	return m, m.setFilterIndex(0)
}

func (m *Model) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.filterMode = false
		return m, nil
	case "enter":
		if err := m.applyFilter(); err != nil {
			m.filterError = err.Error()
			return m, nil
		}
		m.filterMode = false
		m.refreshReport()
		return m, nil
	case "tab", "down":
		return m, m.setFilterIndex((m.filterIndex + 1) % len(m.filterInputs))
	case "shift+tab", "up":
		return m, m.setFilterIndex((m.filterIndex - 1 + len(m.filterInputs)) % len(m.filterInputs))
	}
	var cmd tea.Cmd
	m.filterInputs[m.filterIndex], cmd = m.filterInputs[m.filterIndex].Update(msg)
	return m, cmd
}

func (m *Model) setFilterIndex(idx int) tea.Cmd {
	m.filterIndex = idx
	var cmd tea.Cmd
	for i := range m.filterInputs {
		if i == idx {
			cmd = m.filterInputs[i].Focus()
		} else {
			m.filterInputs[i].Blur()
		}
	}
	return cmd
}

func (m *Model) applyFilter() error {
	length, err := parseNonNegative("length", m.filterInputs[1].Value())
	if err != nil {
		return err
	}
	last, err := parseNonNegative("last", m.filterInputs[2].Value())
	if err != nil {
		return err
	}
	m.filter.Lang = strings.ToLower(strings.TrimSpace(m.filterInputs[0].Value()))
	m.filter.Length = length
	m.filter.Last = last
	return nil
}

func parseNonNegative(name, value string) (int, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%s must be a non-negative number", name)
	}
	return n, nil
}

func intOrEmpty(n int) string {
	if n <= 0 {
		return ""
	}
	return strconv.Itoa(n)
}
