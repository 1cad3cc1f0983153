package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/osse101/FairyGrove_Go/internal/catalog"
	"github.com/osse101/FairyGrove_Go/internal/engine"
	"github.com/osse101/FairyGrove_Go/internal/idgen"
	"github.com/osse101/FairyGrove_Go/internal/scenario"
)

const (
	flagScenario = "scenario"
	flagDuration = "duration"
	flagEvery    = "collect-every"
	flagAway     = "away"
	flagSeed     = "seed"
	flagJSON     = "json"
)

var errScenarioFailed = errors.New("scenario failed")

func scenariosCommand() *cli.Command {
	return &cli.Command{
		Name:  "scenarios",
		Usage: "List the built-in balance scenarios",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			out := cmd.Root().Writer
			for _, s := range scenario.DefaultRegistry().List() {
				fmt.Fprintf(out, "%-20s %s\n", s.ID, s.Description)
			}
			return nil
		},
	}
}

func simulateCommand() *cli.Command {
	return &cli.Command{
		Name:  "simulate",
		Usage: "Play a fresh game on a simulated clock and report the economy",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: flagScenario, Usage: "run a built-in scenario by id"},
			&cli.DurationFlag{Name: flagDuration, Value: time.Hour, Usage: "active play time for the collect loop"},
			&cli.DurationFlag{Name: flagEvery, Value: time.Minute, Usage: "collect interval for the collect loop"},
			&cli.DurationFlag{Name: flagAway, Usage: "simulate one offline absence instead of active play"},
			&cli.Int64Flag{Name: flagSeed, Value: 1, Usage: "seed for creature ids"},
			&cli.BoolFlag{Name: flagJSON, Usage: "print the full result as JSON"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			sc, err := pickScenario(cmd)
			if err != nil {
				return err
			}

			eng := engine.New(catalog.Default(), idgen.NewSeeded(uint64(cmd.Int64(flagSeed))))
			runner := scenario.NewRunner(eng, scenario.DefaultRegistry())
			result, err := runner.ExecuteScenario(ctx, sc, time.Now().UTC())
			if err != nil {
				return err
			}

			out := cmd.Root().Writer
			if cmd.Bool(flagJSON) {
				data, err := result.ToPrettyJSON()
				if err != nil {
					return err
				}
				fmt.Fprintln(out, string(data))
			} else {
				printResult(out, result)
			}

			if !result.Success {
				return errScenarioFailed
			}
			return nil
		},
	}
}

func pickScenario(cmd *cli.Command) (scenario.Scenario, error) {
	if id := cmd.String(flagScenario); id != "" {
		sc, ok := scenario.DefaultRegistry().Get(id)
		if !ok {
			return scenario.Scenario{}, fmt.Errorf("%w: %s", scenario.ErrScenarioNotFound, id)
		}
		return sc, nil
	}
	if away := cmd.Duration(flagAway); away > 0 {
		return scenario.OfflineReturn(away), nil
	}
	return scenario.CollectLoop(cmd.Duration(flagDuration), cmd.Duration(flagEvery)), nil
}

func printResult(out io.Writer, r *scenario.ExecutionResult) {
	PrintHeader(out, r.ScenarioName)
	for _, step := range r.Steps {
		if step.Success {
			continue
		}
		PrintError(out, "step %d %q: %s", step.StepIndex, step.StepName, step.Error)
		for _, a := range step.Assertions {
			if !a.Passed {
				PrintError(out, "  %s %s: got %d", a.Type, a.Path, a.Actual)
			}
		}
	}

	summary := r.ToSummary()
	fmt.Fprintf(out, "steps: %d/%d passed, simulated %s\n", summary.PassedSteps, summary.TotalSteps, summary.SimulatedFor)
	for _, key := range slices.Sorted(maps.Keys(r.FinalState)) {
		fmt.Fprintf(out, "  %-16s %d\n", key, r.FinalState[key])
	}

	if r.Success {
		PrintSuccess(out, "scenario passed")
	}
}
