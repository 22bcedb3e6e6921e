package main

import (
	"fmt"

	"github.com/aretw0/vigil/internal/presentation/graph"
	"github.com/aretw0/vigil/internal/scenario"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph <scenario.yaml>",
	Short: "Export a workflow's phases as a Mermaid diagram",
	Long: `Replays a scenario and outputs a Mermaid diagram (graph TD) of one workflow,
coloured by phase status and annotated with long-running phases.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, _ := cmd.Flags().GetString("workflow")

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

		if id == "" {
			if len(run.WorkflowIDs) == 0 {
				return fmt.Errorf("scenario registers no workflow")
			}
			id = run.WorkflowIDs[0]
		}

		w, ok := run.Monitor.GetWorkflow(cmd.Context(), id)
		if !ok {
			return fmt.Errorf("workflow %q not found in scenario", id)
		}
		alerts, _ := run.Monitor.CheckForBottlenecks(cmd.Context(), id)

		fmt.Fprint(cmd.OutOrStdout(), graph.GenerateMermaid(w, &graph.Overlay{Bottlenecks: alerts}))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().StringP("workflow", "w", "", "Workflow ID (defaults to the first registered)")
}
