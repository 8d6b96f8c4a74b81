// Package tui implements the Bubble Tea commit preview interface.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/gitgoal/gitgoal/internal/diff"
	"github.com/gitgoal/gitgoal/internal/model"
	"github.com/gitgoal/gitgoal/internal/summary"
)

// Model is the top-level Bubble Tea model for the commit preview.
type Model struct {
	diffSet    *diff.DiffSet
	summary    *model.Summary
	validation *model.ValidationResult

	fixer     *summary.Fixer
	validator *summary.Validator

	// Per-file inclusion for staging. All files start included.
	included map[int]bool

	// UI state
	width  int
	height int

	// File list
	fileIndex int // currently selected file

	// Diff viewport
	scrollOffset int // scroll position within the current file's diff

	// Rendered lines for the current file
	lines []renderedLine

	// Help
	showHelp bool

	accepted bool
}

// New creates a commit preview model. The summary and validation result are
// displayed alongside the diff; the fixer and validator power the interactive
// auto-fix key.
func New(ds *diff.DiffSet, sum *model.Summary, res *model.ValidationResult, fixer *summary.Fixer, validator *summary.Validator) Model {
	m := Model{
		diffSet:    ds,
		summary:    sum,
		validation: res,
		fixer:      fixer,
		validator:  validator,
		included:   make(map[int]bool),
	}
	for i := range ds.Files {
		m.included[i] = true
	}
	m.updateLines()
	return m
}

func (m *Model) updateLines() {
	if len(m.diffSet.Files) == 0 {
		m.lines = nil
		return
	}
	m.lines = renderFile(m.diffSet.Files[m.fileIndex])
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, keys.Accept):
			m.accepted = true
			return m, tea.Quit

		case key.Matches(msg, keys.Down):
			if m.scrollOffset < len(m.lines)-1 {
				m.scrollOffset++
			}

		case key.Matches(msg, keys.Up):
			if m.scrollOffset > 0 {
				m.scrollOffset--
			}

		case key.Matches(msg, keys.NextFile):
			if m.fileIndex < len(m.diffSet.Files)-1 {
				m.fileIndex++
				m.scrollOffset = 0
				m.updateLines()
			}

		case key.Matches(msg, keys.PrevFile):
			if m.fileIndex > 0 {
				m.fileIndex--
				m.scrollOffset = 0
				m.updateLines()
			}

		case key.Matches(msg, keys.NextHunk):
			m.jumpToNextHunk()

		case key.Matches(msg, keys.PrevHunk):
			m.jumpToPrevHunk()

		case key.Matches(msg, keys.Toggle):
			if len(m.diffSet.Files) > 0 {
				m.included[m.fileIndex] = !m.included[m.fileIndex]
			}

		case key.Matches(msg, keys.Fix):
			if m.fixer != nil {
				m.fixer.Fix(m.summary)
				m.validation = m.validator.Validate(m.summary)
			}

		case key.Matches(msg, keys.Help):
			m.showHelp = !m.showHelp
		}
	}

	return m, nil
}

func (m *Model) jumpToNextHunk() {
	for i := m.scrollOffset + 1; i < len(m.lines); i++ {
		if m.lines[i].IsHunk {
			m.scrollOffset = i
			return
		}
	}
}

func (m *Model) jumpToPrevHunk() {
	for i := m.scrollOffset - 1; i >= 0; i-- {
		if m.lines[i].IsHunk {
			m.scrollOffset = i
			return
		}
	}
}

// View implements tea.Model.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelp()
	}

	// Layout: summary + file list on left, diff on right
	leftWidth := m.leftPaneWidth()
	diffWidth := m.width - leftWidth - 1 // -1 for gap

	left := lipgloss.JoinVertical(lipgloss.Left,
		m.renderSummaryPane(leftWidth),
		m.renderFileList(leftWidth),
	)
	diffView := m.renderDiffView(diffWidth, m.height-2)

	main := lipgloss.JoinHorizontal(lipgloss.Top, left, " ", diffView)

	statusBar := m.renderStatusBar()

	return lipgloss.JoinVertical(lipgloss.Left, main, statusBar)
}

func (m Model) leftPaneWidth() int {
	w := m.width * 2 / 5
	if w < 30 {
		w = 30
	}
	if w > 60 {
		w = 60
	}
	return w
}

func (m Model) renderSummaryPane(width int) string {
	var b strings.Builder

	b.WriteString(summaryTitleStyle.Render(truncate(m.summary.Header(), width-4)))
	b.WriteByte('\n')

	if m.validation != nil {
		if m.validation.Valid {
			b.WriteString(summaryValidStyle.Render(fmt.Sprintf("✅ valid (%d/100)", m.validation.Score)))
		} else {
			b.WriteString(summaryInvalidStyle.Render(fmt.Sprintf("❌ %d error(s) (%d/100)", len(m.validation.Errors), m.validation.Score)))
		}
		b.WriteByte('\n')
		for _, e := range m.validation.Errors {
			b.WriteString(summaryInvalidStyle.Render("• " + truncate(e, width-6)))
			b.WriteByte('\n')
		}
		for _, w := range m.validation.Warnings {
			b.WriteString(summaryWarnStyle.Render("• " + truncate(w, width-6)))
			b.WriteByte('\n')
		}
	}

	if len(m.summary.AppliedFixes) > 0 {
		b.WriteString(summaryFixStyle.Render(fmt.Sprintf("🔧 %d fix(es) applied", len(m.summary.AppliedFixes))))
		b.WriteByte('\n')
	}

	if m.summary.Chain != "" {
		b.WriteString(truncate("🔀 "+m.summary.Chain, width-4))
		b.WriteByte('\n')
	}

	return summaryPaneStyle.Width(width).Render(strings.TrimRight(b.String(), "\n"))
}

func (m Model) renderFileList(width int) string {
	var b strings.Builder

	for i, f := range m.diffSet.Files {
		name := f.Name()

		// Truncate name if needed
		maxName := width - 12
		if maxName > 0 && len(name) > maxName {
			name = "…" + name[len(name)-maxName+1:]
		}

		mark := "●"
		if !m.included[i] {
			mark = "○"
		}
		stats := fmt.Sprintf("+%d -%d", f.AddedLines, f.DeletedLines)
		line := fmt.Sprintf("%s %-*s %s", mark, maxName, name, stats)

		var style lipgloss.Style
		if i == m.fileIndex {
			style = fileItemSelectedStyle
		} else if !m.included[i] {
			style = fileItemExcludedStyle
		} else {
			style = fileItemStyle
		}

		b.WriteString(style.Width(width - 4).Render(line))
		if i < len(m.diffSet.Files)-1 {
			b.WriteByte('\n')
		}
	}

	return summaryPaneStyle.Width(width).Render(b.String())
}

func (m Model) renderDiffView(width, height int) string {
	if len(m.diffSet.Files) == 0 {
		return diffViewStyle.Width(width).Height(height - 2).Render("No changes")
	}

	f := m.diffSet.Files[m.fileIndex]
	innerWidth := width - 4 // borders + padding
	innerHeight := height - 2

	// File header
	header := fileHeaderStyle.Render(f.Name())

	visibleLines := innerHeight - 2 // header takes some space
	if visibleLines < 1 {
		visibleLines = 1
	}

	var b strings.Builder
	b.WriteString(header)
	b.WriteByte('\n')

	end := m.scrollOffset + visibleLines
	if end > len(m.lines) {
		end = len(m.lines)
	}
	for i := m.scrollOffset; i < end; i++ {
		b.WriteString(styleLine(m.lines[i], innerWidth))
		if i < end-1 {
			b.WriteByte('\n')
		}
	}

	return diffViewStyle.Width(width).Height(innerHeight).Render(b.String())
}

func (m Model) renderStatusBar() string {
	nFiles, added, deleted := m.diffSet.Stats()

	left := fmt.Sprintf(" File %d/%d", m.fileIndex+1, nFiles)
	if len(m.lines) > 0 {
		left += fmt.Sprintf("  Line %d/%d", m.scrollOffset+1, len(m.lines))
	}

	included := 0
	for _, in := range m.included {
		if in {
			included++
		}
	}

	right := fmt.Sprintf("+%d -%d  %d/%d staged  ? help ", added, deleted, included, nFiles)

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	return statusBarStyle.Width(m.width).Render(left + strings.Repeat(" ", gap) + right)
}

func (m Model) renderHelp() string {
	var b strings.Builder

	b.WriteString(fileHeaderStyle.Render("gitgoal — Keyboard Shortcuts"))
	b.WriteString("\n\n")

	helpItems := []struct{ key, desc string }{
		{"↑/k", "Scroll up"},
		{"↓/j", "Scroll down"},
		{"n/Tab", "Next file"},
		{"N/S-Tab", "Previous file"},
		{"]", "Next hunk"},
		{"[", "Previous hunk"},
		{"space", "Include/exclude file"},
		{"f", "Auto-fix summary"},
		{"a/Enter", "Accept and commit"},
		{"?", "Toggle this help"},
		{"q", "Abort"},
	}

	for _, item := range helpItems {
		b.WriteString(fmt.Sprintf("  %s  %s\n",
			helpKeyStyle.Width(10).Render(item.key),
			helpBarStyle.Render(item.desc)))
	}

	b.WriteString("\n")
	b.WriteString(helpBarStyle.Render("Press ? to return"))

	return summaryPaneStyle.Width(m.width - 2).Render(b.String())
}

// Run starts the interactive preview and blocks until the user accepts or
// aborts. It returns the session outcome; the summary may have been mutated
// by interactive auto-fix.
func Run(ds *diff.DiffSet, sum *model.Summary, res *model.ValidationResult, fixer *summary.Fixer, validator *summary.Validator) (*CommitResult, error) {
	m := New(ds, sum, res, fixer, validator)
	p := tea.NewProgram(m, tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("running preview: %w", err)
	}

	fm, ok := final.(Model)
	if !ok {
		return nil, fmt.Errorf("unexpected final model type %T", final)
	}

	return fm.result(), nil
}
