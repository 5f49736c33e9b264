package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/afenda/taskgraph/pkg/analysis"
	"github.com/afenda/taskgraph/pkg/pipeline"
	"github.com/afenda/taskgraph/pkg/store"
	"github.com/afenda/taskgraph/pkg/task"
)

// tasksCommand creates the interactive task browser.
//
// It analyzes a task list and opens a scrollable view where blocked and
// circular tasks are highlighted, so cycle reports can be inspected
// without leaving the terminal.
func (c *CLI) tasksCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tasks [tasks.json]",
		Short: "Browse analyzed tasks interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := c.newRunner(false)
			result, err := runner.Execute(cmd.Context(), store.NewFileSource(args[0]), pipeline.Options{})
			if err != nil {
				return err
			}

			model := newTaskListModel(result.Tasks, result.Analysis)
			_, err = tea.NewProgram(model, tea.WithContext(cmd.Context())).Run()
			return err
		},
	}
}

// taskListModel is the bubbletea model for the task browser.
type taskListModel struct {
	tasks  []task.Task
	result *analysis.Result
	cursor int
	height int
	offset int
}

func newTaskListModel(tasks []task.Task, result *analysis.Result) taskListModel {
	return taskListModel{
		tasks:  tasks,
		result: result,
		height: 15,
	}
}

func (m taskListModel) Init() tea.Cmd {
	return nil
}

func (m taskListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
				if m.cursor < m.offset {
					m.offset = m.cursor
				}
			}
		case "down", "j":
			if m.cursor < len(m.tasks)-1 {
				m.cursor++
				if m.cursor >= m.offset+m.height {
					m.offset = m.cursor - m.height + 1
				}
			}
		}
	case tea.WindowSizeMsg:
		m.height = msg.Height - 6
		if m.height < 5 {
			m.height = 5
		}
	}
	return m, nil
}

func (m taskListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Task Graph"))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("↑/↓ navigate  q quit"))
	b.WriteString("\n\n")

	end := m.offset + m.height
	if end > len(m.tasks) {
		end = len(m.tasks)
	}

	for i := m.offset; i < end; i++ {
		t := m.tasks[i]

		cursor := "  "
		if i == m.cursor {
			cursor = "▸ "
		}

		line := fmt.Sprintf("%s%s %s", cursor, statusIcon(t.Status), t.DisplayTitle())
		switch {
		case m.result.Circular(t.ID):
			line = StyleDanger.Render(line) + StyleDim.Render("  (circular)")
		case m.result.Blocked(t.ID):
			line = StyleWarning.Render(line) + StyleDim.Render("  (blocked)")
		case i == m.cursor:
			line = StyleValue.Render(line)
		default:
			line = StyleDim.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	if len(m.tasks) == 0 {
		b.WriteString(StyleDim.Render("no tasks"))
		b.WriteString("\n")
		return b.String()
	}

	if pos, ok := m.result.Layout.Positions[m.tasks[m.cursor].ID]; ok {
		b.WriteString("\n")
		b.WriteString(StyleDim.Render(fmt.Sprintf("level %d · column %d", pos.Level, pos.Column)))
		b.WriteString("\n")
	}

	return b.String()
}

func statusIcon(s task.Status) string {
	switch s {
	case task.StatusCompleted:
		return iconSuccess
	case task.StatusInProgress:
		return iconArrow
	case task.StatusBlocked:
		return iconWarning
	default:
		return "·"
	}
}
