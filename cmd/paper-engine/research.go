package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/paper-engine/internal/research"
	"github.com/pdiddy/paper-engine/pkg/types"
)

var researchCmd = &cobra.Command{
	Use:   "research [topic]",
	Short: "Run only the research stage and print the results",
	Long: `Research queries the web search API for a topic and prints the
formatted, source-attributed snippets the writing stage would receive.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		topic := strings.Join(args, " ")
		maxResults, _ := cmd.Flags().GetInt("max-results")

		cfg := types.ResearchConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   30 * time.Second,
				UserAgent: "paper-engine/" + version,
			},
			APIKey:      resolveKey(viper.GetString("research.api_key"), "TAVILY_API_KEY", "tavily-api-key"),
			SearchDepth: viper.GetString("research.search_depth"),
			MaxResults:  maxResults,
		}
		if cfg.APIKey == "" {
			return &types.ConfigError{Key: "tavily-api-key"}
		}

		r := research.Runner{Provider: &research.TavilyProvider{}, Config: cfg}
		out, err := r.Research(cmd.Context(), topic)
		if err != nil {
			return err
		}

		fmt.Print(out.Summary)
		return nil
	},
}

func init() {
	researchCmd.Flags().Int("max-results", 6, "maximum number of search snippets")

	rootCmd.AddCommand(researchCmd)
}
