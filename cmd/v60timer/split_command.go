package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"v60timer/internal/core/split"
)

func newSplitCommand(ctx *commandContext) *cobra.Command {
	var coffee int
	var cupA int
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "split",
		Short: "Divide a brew between two cups",
		RunE: func(cmd *cobra.Command, args []string) error {
			grams, err := ctx.coffeeOrDefault(coffee, cmd.Flags().Changed("coffee"))
			if err != nil {
				return err
			}
			var requested *int
			if cmd.Flags().Changed("cup-a") {
				requested = &cupA
			}
			cups := split.Compute(grams, requested)

			if asJSON {
				return writeJSON(cmd, struct {
					Coffee int `json:"coffee_g"`
					split.Split
				}{Coffee: grams, Split: cups})
			}

			rows := [][]string{
				{"Coffee grounds", fmt.Sprintf("%d g", grams)},
				{"Expected yield", fmt.Sprintf("%d ml", cups.ExpectedYield)},
				{"Cup A", fmt.Sprintf("%d ml / %d g", cups.CupA, cups.GroundsA)},
				{"Cup B", fmt.Sprintf("%d ml / %d g", cups.CupB, cups.GroundsB)},
				{"Step", fmt.Sprintf("%d ml", cups.StepMl)},
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Split", "Value"},
				rows,
				[]columnAlignment{alignLeft, alignRight},
			))
			return nil
		},
	}

	cmd.Flags().IntVar(&coffee, "coffee", 0, "Coffee dose in grams (defaults to the saved dose)")
	cmd.Flags().IntVar(&cupA, "cup-a", 0, "Requested cup A volume in ml")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}
