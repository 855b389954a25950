package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"v60timer/internal/core/brew"
	"v60timer/internal/core/schedule"
)

const ansiClearLine = "\r\x1b[2K"

func newBrewCommand(ctx *commandContext) *cobra.Command {
	var coffee int
	var tick time.Duration

	cmd := &cobra.Command{
		Use:   "brew",
		Short: "Run the brew timer in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			grams, err := ctx.coffeeOrDefault(coffee, cmd.Flags().Changed("coffee"))
			if err != nil {
				return err
			}
			settings, err := ctx.ensureSettings()
			if err != nil {
				return err
			}
			logger, err := ctx.newLogger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			config := settings.BrewConfig()
			config.CoffeeAmount = grams
			timer := brew.New(config, brew.Config{TickInterval: tick, Logger: logger})
			defer timer.Close()

			runCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return runTerminalBrew(runCtx, timer, cmd.OutOrStdout())
		},
	}

	cmd.Flags().IntVar(&coffee, "coffee", 0, "Coffee dose in grams (defaults to the saved dose)")
	cmd.Flags().DurationVar(&tick, "tick", time.Second, "Clock tick interval")
	_ = cmd.Flags().MarkHidden("tick")
	return cmd
}

func runTerminalBrew(ctx context.Context, timer *brew.Timer, out io.Writer) error {
	inPlace := isTerminal(out)
	// One event per tick and phase plus state changes fit comfortably.
	events := timer.Subscribe(512)

	timer.Start()
	start := timer.Snapshot()
	fmt.Fprintf(out, "Brewing %d g coffee with %d g water\n", start.CoffeeAmount, schedule.RoundGrams(start.TotalWater))
	fmt.Fprintln(out, phaseLine(start))

	for {
		select {
		case <-ctx.Done():
			snapshot := timer.Snapshot()
			if inPlace {
				fmt.Fprint(out, ansiClearLine)
			}
			fmt.Fprintf(out, "Brew interrupted at %s\n", snapshot.Time)
			return nil
		case event, ok := <-events:
			if !ok {
				return nil
			}
			snapshot := event.Snapshot
			switch event.Type {
			case brew.EventPhaseChange:
				if inPlace {
					fmt.Fprint(out, ansiClearLine)
				}
				fmt.Fprintln(out, phaseLine(snapshot))
			case brew.EventTick:
				if inPlace {
					fmt.Fprint(out, ansiClearLine+statusLine(snapshot))
				} else {
					fmt.Fprintln(out, statusLine(snapshot))
				}
			}
			if snapshot.Finished() {
				if inPlace {
					fmt.Fprint(out, ansiClearLine)
				}
				fmt.Fprintf(out, "Brew finished at %s\n", snapshot.Time)
				return nil
			}
		}
	}
}

func phaseLine(snapshot brew.Snapshot) string {
	phase := snapshot.Phase
	if phase.IsPour() {
		return fmt.Sprintf("%s  %s: pour to %d g", brew.FormatTime(phase.StartTime), phase.Description,
			schedule.RoundGrams(phase.CumulativeWater))
	}
	return fmt.Sprintf("%s  %s until %s", brew.FormatTime(phase.StartTime), phase.Description, brew.FormatTime(phase.EndTime))
}

func statusLine(snapshot brew.Snapshot) string {
	return fmt.Sprintf("%s  phase %d/%d  %.0f%%  %d/%d g", snapshot.Time, snapshot.PhaseNumber, snapshot.PhaseCount,
		snapshot.Progress, schedule.RoundGrams(snapshot.CumulativeWater), schedule.RoundGrams(snapshot.TotalWater))
}

func isTerminal(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
