package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/Raphaelsan/csv/internal/pipeline"
)

var (
	pickerTitleStyle    = lipgloss.NewStyle().Bold(true)
	pickerSelectedStyle = lipgloss.NewStyle().Reverse(true)
	pickerFooterStyle   = lipgloss.NewStyle().Faint(true)
)

type pickerModel struct {
	dir      string
	files    []string
	cursor   int
	choice   string
	quitting bool
}

func (m pickerModel) Init() tea.Cmd {
	return nil
}

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.quitting = true
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.files)-1 {
				m.cursor++
			}
		case "enter":
			m.choice = m.files[m.cursor]
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m pickerModel) View() string {
	if m.quitting || m.choice != "" {
		return ""
	}

	var b strings.Builder
	b.WriteString(pickerTitleStyle.Render(fmt.Sprintf("Exportações em %s", m.dir)))
	b.WriteString("\n\n")
	for i, f := range m.files {
		name := filepath.Base(f)
		if i == m.cursor {
			b.WriteString(pickerSelectedStyle.Render("> " + name))
		} else {
			b.WriteString("  " + name)
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(pickerFooterStyle.Render("↑/↓ navegar · enter processar · q sair"))
	b.WriteString("\n")
	return b.String()
}

// listExportFiles returns the CSV files in the input directory that look
// like raw device exports, skipping the ledger and the report outputs.
func listExportFiles(cfg pipeline.Config) ([]string, error) {
	entries, err := os.ReadDir(cfg.InputDir)
	if err != nil {
		return nil, err
	}

	skip := map[string]bool{
		filepath.Base(cfg.LedgerPath):           true,
		filepath.Base(cfg.MonthlyReportPath()):  true,
		filepath.Base(cfg.WeekdayReportPath()):  true,
		filepath.Base(cfg.LastSeenReportPath()): true,
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if !strings.EqualFold(filepath.Ext(name), ".csv") || skip[name] {
			continue
		}
		files = append(files, filepath.Join(cfg.InputDir, name))
	}
	sort.Strings(files)
	return files, nil
}

// pickExportFile lets the operator choose an export from the input
// directory. Requires a terminal; non-interactive callers must pass the
// file path as an argument instead.
func pickExportFile(cmd *cobra.Command, cfg pipeline.Config) (string, error) {
	out := cmd.OutOrStdout()
	if f, ok := out.(*os.File); !ok || !isatty.IsTerminal(f.Fd()) {
		return "", fmt.Errorf("no export file given and not running in a terminal (pass the file path as an argument)")
	}

	files, err := listExportFiles(cfg)
	if err != nil {
		return "", err
	}
	if len(files) == 0 {
		return "", fmt.Errorf("no export files found in %s", cfg.InputDir)
	}

	p := tea.NewProgram(pickerModel{dir: cfg.InputDir, files: files}, tea.WithOutput(out))
	final, err := p.Run()
	if err != nil {
		return "", err
	}

	m := final.(pickerModel)
	if m.choice == "" {
		return "", fmt.Errorf("no file selected")
	}
	return m.choice, nil
}
