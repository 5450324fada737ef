package cmd

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/lumipallolabs/sgsplit/internal/core"
	"github.com/spf13/cobra"
)

var planCmd = &cobra.Command{
	Use:     "plan <folder>",
	Short:   "Show how a folder would be split without moving anything",
	Example: `  sgsplit plan /data/photos -d 5`,
	Args:    cobra.ExactArgs(1),
	RunE:    runPlan,
}

func init() {
	designersFlag(planCmd)
}

func runPlan(cmd *cobra.Command, args []string) error {
	designers, _ := cmd.Flags().GetInt("designers")

	ctrl := core.NewController(cfg)
	plan, err := ctrl.Plan(cmd.Context(), core.Request{Root: args[0], Workers: designers})
	if err != nil {
		return err
	}

	printPlan(cmd.OutOrStdout(), plan)
	return nil
}

func printPlan(w io.Writer, plan *core.Plan) {
	comma := func(n int) string { return humanize.Comma(int64(n)) }

	fmt.Fprintf(w, "%-16s %8s %8s\n", "Designer", "Groups", "Files")
	for _, wa := range plan.Workers {
		fmt.Fprintf(w, "%-16s %8s %8s\n", wa.Name, comma(wa.GroupCount()), comma(wa.Load))
	}

	inv := plan.Inventory
	grouped := inv.GroupedCount()
	fmt.Fprintf(w, "\n%s images in %s groups, %s without group id. Nothing was moved.\n",
		comma(grouped), comma(len(inv.Groups)), comma(len(inv.Files)-grouped))
}
