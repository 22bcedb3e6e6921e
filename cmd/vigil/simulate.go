package main

import (
	"encoding/json"
	"fmt"

	"github.com/aretw0/vigil/internal/presentation/tui"
	"github.com/aretw0/vigil/internal/scenario"
	"github.com/aretw0/vigil/pkg/report"
	"github.com/spf13/cobra"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate <scenario.yaml>",
	Short: "Replay a scenario and print a performance report",
	Long: `Replays a scripted scenario against a fresh monitor driven by a simulated
clock, then prints a report of the final state. Markdown is rendered for
terminals and written verbatim to pipes.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		timeframe, _ := cmd.Flags().GetString("timeframe")
		quiet, _ := cmd.Flags().GetBool("quiet")

		s, err := scenario.Load(args[0])
		if err != nil {
			return err
		}

		opts, err := monitorOptions(nil)
		if err != nil {
			return err
		}
		run, err := s.Replay(cmd.Context(), opts...)
		if err != nil {
			return err
		}

		for _, o := range run.Outcomes {
			if !o.Result.Applied() {
				logger.Warn("step had no effect", "step", o.Step, "action", o.Action, "target", o.Target, "result", o.Result)
			}
		}

		r := report.Build(cmd.Context(), run.Monitor, report.Spec{Timeframe: timeframe}, run.Clock.Now())
		out := cmd.OutOrStdout()

		switch format {
		case "json":
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(r)
		case "markdown":
			if !quiet && tui.IsTerminal(out) {
				tui.PrintBanner(out)
				fmt.Fprintf(out, "Health: %s\n", tui.Health(out, r.Health.Status))
			}
			return tui.WriteMarkdown(out, report.Markdown(r))
		}
		return fmt.Errorf("unknown format %q (want markdown or json)", format)
	},
}

func init() {
	rootCmd.AddCommand(simulateCmd)
	simulateCmd.Flags().StringP("format", "f", "markdown", "Output format (markdown, json)")
	simulateCmd.Flags().String("timeframe", "", "Timeframe label recorded in the report")
	simulateCmd.Flags().BoolP("quiet", "q", false, "Skip the banner")
}
