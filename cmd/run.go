package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/lumipallolabs/sgsplit/internal/core"
	"github.com/lumipallolabs/sgsplit/internal/model"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"
)

var runCmd = &cobra.Command{
	Use:   "run <folder>",
	Short: "Split a folder without the terminal UI",
	Long: `Split a folder headlessly. Progress is written to stderr, the summary
to stdout. Files are moved in place; there is no undo.`,
	Example: `  # Split into five designer folders
  sgsplit run /data/photos -d 5

  # Skip file manager labels
  sgsplit run /data/photos -d 5 --no-tag`,
	Args: cobra.ExactArgs(1),
	RunE: runSplit,
}

func init() {
	designersFlag(runCmd)
	runCmd.Flags().Bool("no-tag", false, "Do not apply file manager labels")
}

// progressLine rewrites a single status line on a terminal
type progressLine struct {
	w       io.Writer
	shown   bool
	refresh *rate.Sometimes
}

func (p *progressLine) update(text string) {
	p.refresh.Do(func() {
		fmt.Fprintf(p.w, "\r\x1b[K%s", text)
		p.shown = true
	})
}

func (p *progressLine) clear() {
	if p.shown {
		fmt.Fprint(p.w, "\r\x1b[K")
		p.shown = false
	}
}

func runSplit(cmd *cobra.Command, args []string) error {
	designers, _ := cmd.Flags().GetInt("designers")
	noTag, _ := cmd.Flags().GetBool("no-tag")

	runCfg := *cfg
	if noTag {
		runCfg.Tagging.Enabled = false
	}

	ctrl := core.NewController(&runCfg)
	events, err := ctrl.Start(core.Request{Root: args[0], Workers: designers})
	if err != nil {
		return err
	}

	errOut := cmd.ErrOrStderr()
	progress := &progressLine{w: errOut, refresh: &rate.Sometimes{Interval: 100 * time.Millisecond}}

	var (
		final      model.Snapshot
		completed  bool
		reportPath string
		reportErr  error
		runErr     error
	)

	core.Dispatch(events, core.Callbacks{
		OnScanProgress: func(found int) {
			progress.update(fmt.Sprintf("Scanning… %s images found", humanize.Comma(int64(found))))
		},
		OnFileProcessed: func(processed int, elapsed string, s model.Snapshot) {
			progress.update(fmt.Sprintf("Processed %s/%s · %s white · %s other · %s",
				humanize.Comma(int64(processed)), humanize.Comma(int64(s.Total)),
				humanize.Comma(int64(s.Light)), humanize.Comma(int64(s.Other)), elapsed))
		},
		OnLog: func(e core.LogEvent) {
			progress.clear()
			fmt.Fprintln(errOut, e.String())
		},
		OnReport: func(path string, err error) {
			reportPath, reportErr = path, err
		},
		OnComplete: func(s model.Snapshot) {
			final, completed = s, true
		},
		OnFailed: func(err error) {
			runErr = err
		},
	})
	progress.clear()

	if runErr != nil {
		return fmt.Errorf("run failed: %w", runErr)
	}
	if !completed {
		return fmt.Errorf("run ended without completing")
	}

	printSummary(cmd.OutOrStdout(), final, reportPath, reportErr)
	if reportErr != nil {
		return fmt.Errorf("report not written: %w", reportErr)
	}
	return nil
}

func printSummary(w io.Writer, s model.Snapshot, reportPath string, reportErr error) {
	row := func(label, value string) {
		fmt.Fprintf(w, "%-12s %s\n", label, value)
	}
	comma := func(n int) string { return humanize.Comma(int64(n)) }

	row("Processed", fmt.Sprintf("%s images across %d designers in %s",
		comma(s.Processed), len(s.Workers), model.FormatElapsed(s.Elapsed)))
	row("White", comma(s.Light))
	row("Other", comma(s.Other))
	if s.Failed > 0 {
		row("Failed", comma(s.Failed))
	}
	if s.Skipped > 0 {
		row("Skipped", comma(s.Skipped)+" without group id")
	}
	row("Extensions", s.ExtensionSummary())
	row("Size", humanize.Bytes(uint64(s.Bytes)))
	if reportErr != nil {
		row("Report", "not written")
		return
	}
	row("Report", reportPath)
}
