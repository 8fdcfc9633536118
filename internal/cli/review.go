package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/localorganizer/organizer/internal/core"
	"github.com/localorganizer/organizer/internal/planner"
)

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Interactively walk through a plan's items before executing it",
	RunE:  runReview,
}

var reviewFlags struct {
	PlanPath string
}

func init() {
	reviewCmd.Flags().StringVar(&reviewFlags.PlanPath, "plan", "", "path to the plan JSON file (required)")
	_ = reviewCmd.MarkFlagRequired("plan")
	rootCmd.AddCommand(reviewCmd)
}

func runReview(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(reviewFlags.PlanPath)
	if err != nil {
		return core.NewFatalError("read plan file", err)
	}
	var doc planner.PlanDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return core.NewFatalError("parse plan file", err)
	}
	if len(doc.Items) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "plan has no items")
		return nil
	}

	m := newReviewModel(doc)
	p := tea.NewProgram(m)
	finalModel, err := p.Run()
	if err != nil {
		return core.NewFatalError("run review UI", err)
	}

	final := finalModel.(reviewModel)
	fmt.Fprintf(cmd.OutOrStdout(), "reviewed %d/%d items\n", final.cursor+1, len(final.items))
	if final.confirmed {
		fmt.Fprintf(cmd.OutOrStdout(), "run `organizer execute --plan %s --apply` to apply this plan\n", reviewFlags.PlanPath)
	}
	return nil
}

var (
	reviewHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	reviewCursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	reviewSkipStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true)
	reviewDimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	reviewHelpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
)

// reviewModel is a bubbletea model that pages through a plan's items one at
// a time, showing source, destination, action, confidence, and reason.
type reviewModel struct {
	doc       planner.PlanDocument
	items     []core.PlanItem
	cursor    int
	confirmed bool
	quitting  bool
	progress  progress.Model
}

func newReviewModel(doc planner.PlanDocument) reviewModel {
	return reviewModel{
		doc:      doc,
		items:    doc.Items,
		progress: progress.New(progress.WithDefaultGradient()),
	}
}

func (m reviewModel) Init() tea.Cmd {
	return nil
}

func (m reviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch keyMsg.String() {
	case "q", "esc", "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case "j", "down", "n":
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
	case "k", "up", "p":
		if m.cursor > 0 {
			m.cursor--
		}
	case "g":
		m.cursor = 0
	case "G":
		m.cursor = len(m.items) - 1
	case "y", "enter":
		m.confirmed = true
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

func (m reviewModel) View() string {
	if m.quitting {
		return ""
	}

	item := m.items[m.cursor]

	header := reviewHeaderStyle.Render(fmt.Sprintf("item %d/%d", m.cursor+1, len(m.items)))

	dst := "(none)"
	if item.Dst != nil {
		dst = *item.Dst
	}
	ruleID := "llm"
	if item.RuleID != nil {
		ruleID = *item.RuleID
	}

	actionLine := fmt.Sprintf("action:     %s", item.Action)
	if item.Action == core.ActionSkip {
		actionLine = reviewSkipStyle.Render(actionLine)
	} else {
		actionLine = reviewCursorStyle.Render(actionLine)
	}

	body := fmt.Sprintf(
		"src:        %s\ndst:        %s\n%s\nconfidence: %d\nrule:       %s\nreason:     %s",
		item.Src, dst, actionLine, item.Confidence, ruleID, item.Reason,
	)

	bar := m.progress.ViewAs(float64(m.cursor+1) / float64(len(m.items)))

	help := reviewHelpStyle.Render("j/k move · g/G jump to ends · y/enter confirm plan · q quit")
	footer := reviewDimStyle.Render(fmt.Sprintf("total items: %d", m.doc.Stats.TotalItems))

	return fmt.Sprintf("%s\n\n%s\n\n%s\n%s\n%s\n", header, body, bar, footer, help)
}
