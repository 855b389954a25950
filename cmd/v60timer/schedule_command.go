package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"v60timer/internal/core/brew"
	"v60timer/internal/core/schedule"
)

type phaseJSON struct {
	ID              int           `json:"id"`
	Start           int           `json:"start"`
	End             int           `json:"end"`
	Kind            schedule.Kind `json:"kind"`
	Description     string        `json:"description"`
	WaterAmount     float64       `json:"water_g"`
	CumulativeWater float64       `json:"cumulative_water_g"`
}

type scheduleJSON struct {
	Coffee        int         `json:"coffee_g"`
	TotalWater    float64     `json:"total_water_g"`
	TotalDuration int         `json:"total_duration_s"`
	Phases        []phaseJSON `json:"phases"`
}

func newScheduleCommand(ctx *commandContext) *cobra.Command {
	var coffee int
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Print the pour schedule for a coffee dose",
		RunE: func(cmd *cobra.Command, args []string) error {
			grams, err := ctx.coffeeOrDefault(coffee, cmd.Flags().Changed("coffee"))
			if err != nil {
				return err
			}
			sched := schedule.Build(grams)
			if asJSON {
				return writeJSON(cmd, scheduleView(sched))
			}

			rows := make([][]string, 0, sched.Len())
			for _, phase := range sched.Phases() {
				pour := "-"
				if phase.IsPour() {
					pour = fmt.Sprintf("%d g", schedule.RoundGrams(phase.WaterAmount))
				}
				rows = append(rows, []string{
					fmt.Sprintf("%d", phase.ID+1),
					fmt.Sprintf("%s-%s", brew.FormatTime(phase.StartTime), brew.FormatTime(phase.EndTime)),
					phase.Description,
					pour,
					fmt.Sprintf("%d g", schedule.RoundGrams(phase.CumulativeWater)),
				})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Coffee %d g · water %d g · %s\n", grams,
				schedule.RoundGrams(sched.TotalWater()), brew.FormatTime(sched.TotalDuration()))
			fmt.Fprintln(out, renderTable(
				[]string{"#", "Window", "Step", "Pour", "Total"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignLeft, alignRight, alignRight},
			))
			return nil
		},
	}

	cmd.Flags().IntVar(&coffee, "coffee", 0, "Coffee dose in grams (defaults to the saved dose)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}

func scheduleView(sched schedule.Schedule) scheduleJSON {
	phases := make([]phaseJSON, 0, sched.Len())
	for _, phase := range sched.Phases() {
		phases = append(phases, phaseJSON{
			ID:              phase.ID,
			Start:           phase.StartTime,
			End:             phase.EndTime,
			Kind:            phase.Kind,
			Description:     phase.Description,
			WaterAmount:     phase.WaterAmount,
			CumulativeWater: phase.CumulativeWater,
		})
	}
	return scheduleJSON{
		Coffee:        sched.Coffee(),
		TotalWater:    sched.TotalWater(),
		TotalDuration: sched.TotalDuration(),
		Phases:        phases,
	}
}
