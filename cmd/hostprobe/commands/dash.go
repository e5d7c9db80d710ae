package commands

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/prabalesh/hostprobe/internal/ui"
)

var dashCmd = &cobra.Command{
	Use:   "dash",
	Short: "Open the interactive dashboard",
	Long: `Open a terminal dashboard with overview, process and service tabs.

Data is queried when the dashboard opens and again each time "r" is pressed.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		// log lines would draw over the alt screen
		if logLevel == "" {
			logLevel = "error"
		}

		c, log, err := newCollector()
		if err != nil {
			return err
		}
		defer log.Sync()

		p := tea.NewProgram(ui.NewApp(c), tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			return err
		}
		return nil
	},
}
