package cmd

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/lumipallolabs/sgsplit/internal/config"
	"github.com/lumipallolabs/sgsplit/internal/core"
	"github.com/lumipallolabs/sgsplit/internal/logging"
	"github.com/lumipallolabs/sgsplit/internal/prefs"
	"github.com/lumipallolabs/sgsplit/internal/ui"
	"github.com/spf13/cobra"
)

var (
	cfg        *config.Config
	configPath string
)

var rootCmd = &cobra.Command{
	Use:   "sgsplit",
	Short: "Split product images across designer folders",
	Long: `sgsplit distributes product images from one folder into Designer_N
subfolders so every designer gets a similar number of files, while images of
the same product (same group id) stay together. Each moved image is classified
by its corner pixels as white or non-white background, labelled in the file
manager where supported, and listed in an Excel report.

Without a subcommand an interactive terminal UI is started.
Configuration is read from sgsplit.yaml, --config or $SGSPLIT_CONFIG.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
		return nil
	},
	RunE: runTUI,
}

// Execute runs the command line
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(planCmd)

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default sgsplit.yaml)")
}

func runTUI(cmd *cobra.Command, args []string) error {
	prefsMgr := prefs.NewManager()
	if err := prefsMgr.Load(); err != nil {
		logging.Debug.Printf("prefs: %v", err)
	}

	p := tea.NewProgram(
		ui.NewApp(cfg, core.NewController(cfg), prefsMgr),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}

// designersFlag registers the required designer count flag
func designersFlag(c *cobra.Command) {
	c.Flags().IntP("designers", "d", 0, "Number of designer folders")
	_ = c.MarkFlagRequired("designers")
}
