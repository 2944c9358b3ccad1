package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/paper-engine/internal/pipeline"
)

var diagramCmd = &cobra.Command{
	Use:   "diagram",
	Short: "Render the pipeline stage sequence as a PNG image",
	RunE: func(cmd *cobra.Command, args []string) error {
		output, _ := cmd.Flags().GetString("output")
		if err := pipeline.Diagram(output); err != nil {
			return err
		}
		fmt.Printf("Diagram written to %s\n", output)
		return nil
	},
}

func init() {
	diagramCmd.Flags().String("output", "doc/workflow.png", "path for the rendered diagram")

	rootCmd.AddCommand(diagramCmd)
}
