package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/paper-engine/internal/export"
	"github.com/pdiddy/paper-engine/internal/generate"
	"github.com/pdiddy/paper-engine/internal/pipeline"
	"github.com/pdiddy/paper-engine/internal/research"
	"github.com/pdiddy/paper-engine/pkg/types"
)

var paperCmd = &cobra.Command{
	Use:   "paper",
	Short: "Create a research paper from a topic",
	Long: `Paper runs the full pipeline for one topic: research via the search
API, generation via the AI API, and export to Word and PDF documents. With
no --topic flag it prompts interactively and offers a revision loop after
the first draft.`,
	RunE: runPaper,
}

func init() {
	paperCmd.Flags().String("topic", "", "research topic (omit to be prompted)")
	paperCmd.Flags().String("output-dir", "", "directory for exported documents (default doc)")
	paperCmd.Flags().String("model", "", "AI model identifier for generation")
	paperCmd.Flags().Int("max-results", 6, "maximum number of search snippets")
	paperCmd.Flags().Bool("diagram", false, "also render a workflow diagram PNG")

	rootCmd.AddCommand(paperCmd)
}

func runPaper(cmd *cobra.Command, args []string) error {
	reader := bufio.NewReader(os.Stdin)

	topic, _ := cmd.Flags().GetString("topic")
	interactive := topic == ""
	if interactive {
		fmt.Print("Enter your research topic: ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("reading topic: %w", err)
		}
		topic = strings.TrimSpace(line)
	}

	renderDiagram, _ := cmd.Flags().GetBool("diagram")
	if interactive && !cmd.Flags().Changed("diagram") {
		renderDiagram = askYesNo(reader, "Render a workflow diagram image? (y/n): ")
	}

	cfg := buildConfig(cmd)

	// Both provider keys are validated before any network call.
	if cfg.Research.APIKey == "" {
		return &types.ConfigError{Key: "tavily-api-key"}
	}
	if cfg.Generation.APIKey == "" {
		return &types.ConfigError{Key: "google-api-key"}
	}

	researcher := research.Runner{Provider: &research.TavilyProvider{}, Config: cfg.Research}
	generator := generate.New(&generate.GeminiBackend{}, cfg.Generation)
	exporter := export.New(cfg.Export)

	runID := uuid.NewString()
	started := time.Now()

	p := pipeline.New(researcher, generator, exporter, os.Stderr)
	state, err := p.Run(cmd.Context(), topic)
	if err != nil {
		return err
	}

	manifest := types.RunManifest{
		RunID:      runID,
		Topic:      state.Topic,
		StartedAt:  started,
		FinishedAt: time.Now(),
		Sources:    len(state.Sources),
		Exports:    state.Exports,
	}
	if _, err := exporter.WriteManifest(manifest); err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not write run manifest: %v\n", err)
	}

	fmt.Printf("Topic: %s\n", state.Topic)
	for _, path := range state.OutputPaths {
		fmt.Printf("Exported: %s\n", path)
	}

	if renderDiagram {
		diagramPath := filepath.Join(exporter.OutputDir(), "workflow.png")
		if err := pipeline.Diagram(diagramPath); err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not render diagram: %v\n", err)
		} else {
			fmt.Printf("Diagram:  %s\n", diagramPath)
		}
	}

	if interactive {
		return reviseLoop(cmd.Context(), reader, generator, exporter, state)
	}
	return nil
}

// reviseLoop offers the reader repeated change requests against the
// generated paper, re-exporting after each revision.
func reviseLoop(ctx context.Context, reader *bufio.Reader, generator *generate.Generator, exporter *export.Exporter, state *pipeline.State) error {
	for {
		if !askYesNo(reader, "\nMake changes to the paper? (y/n): ") {
			return nil
		}

		fmt.Print("Describe the changes: ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return nil
		}
		request := strings.TrimSpace(line)
		if request == "" {
			fmt.Println("Please describe the change you want.")
			continue
		}

		revised, err := generator.Revise(ctx, state.Topic, state.PaperContent, request)
		if err != nil {
			return fmt.Errorf("revising paper: %w", err)
		}
		state.PaperContent = revised
		state.Conversation = append(state.Conversation,
			types.Message{Role: types.RoleUser, Content: request},
			types.Message{Role: types.RoleAssistant, Content: revised},
		)

		docxPath, err := exporter.Docx(revised, state.Topic)
		if err != nil {
			return err
		}
		pdfPath, err := exporter.PDF(revised, state.Topic)
		if err != nil {
			return err
		}
		state.OutputPaths = append(state.OutputPaths, docxPath, pdfPath)

		fmt.Printf("Updated: %s\n", docxPath)
		fmt.Printf("Updated: %s\n", pdfPath)
	}
}

// askYesNo prompts until the reader answers y or n. EOF counts as no.
func askYesNo(reader *bufio.Reader, prompt string) bool {
	for {
		fmt.Print(prompt)
		line, err := reader.ReadString('\n')
		if err != nil {
			return false
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
			return true
		case "n", "no":
			return false
		}
		fmt.Println("Please answer y or n.")
	}
}

// buildConfig assembles the pipeline configuration from flags, the viper
// config file, environment variables, and .secrets/ files, in that order.
func buildConfig(cmd *cobra.Command) types.PipelineConfig {
	model, _ := cmd.Flags().GetString("model")
	if model == "" {
		model = viper.GetString("generation.model")
	}
	maxResults, _ := cmd.Flags().GetInt("max-results")
	outputDir, _ := cmd.Flags().GetString("output-dir")
	if outputDir == "" {
		outputDir = viper.GetString("export.output_dir")
	}

	return types.PipelineConfig{
		Research: types.ResearchConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   30 * time.Second,
				UserAgent: "paper-engine/" + version,
			},
			APIKey:      resolveKey(viper.GetString("research.api_key"), "TAVILY_API_KEY", "tavily-api-key"),
			SearchDepth: viper.GetString("research.search_depth"),
			MaxResults:  maxResults,
		},
		Generation: types.GenerationConfig{
			AIConfig: types.AIConfig{
				Model:  model,
				APIKey: resolveKey(viper.GetString("generation.api_key"), "GOOGLE_API_KEY", "google-api-key"),
			},
			Temperature: 0.7,
		},
		Export: types.ExportConfig{OutputDir: outputDir},
	}
}
