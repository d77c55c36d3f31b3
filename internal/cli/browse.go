package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/voicetreelab/lazy-tutorial/internal/browser"
	"github.com/voicetreelab/lazy-tutorial/internal/tutorial"
)

func newBrowseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "browse [path]",
		Short: "Browse the tutorial interactively",
		Long:  `Open an interactive view of the tutorial. Use j/k to move, l or Enter to open a section, h or Escape to go back and q to quit.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			start := tutorial.RootPath
			if len(args) == 1 {
				start = args[0]
			}

			model := browser.New(tutorial.NewProvider(), start)
			p := tea.NewProgram(model,
				tea.WithAltScreen(),
				tea.WithInput(cmd.InOrStdin()),
				tea.WithOutput(cmd.OutOrStdout()),
			)
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("browser failed: %w", err)
			}
			return nil
		},
	}
}
