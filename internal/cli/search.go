package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/hubcard/hubcard/internal/hub"
	"github.com/hubcard/hubcard/internal/ui"
)

var (
	searchLibrary  []string
	searchTags     []string
	searchPipeline string
	searchSort     string
	searchAsc      bool
	searchLimit    int
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search models on the Hub",
	Long: `Search models on the Hugging Face Hub.

Results are sorted by trending score unless --sort is given.

Examples:
  hubcard search llama
  hubcard search llama --library pytorch --pipeline text-generation
  hubcard search --tag code --sort downloads --limit 5
  hubcard search whisper --json`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := ""
		if len(args) > 0 {
			query = args[0]
		}

		limit := searchLimit
		if limit == 0 && getConfig().DefaultLimit > 0 {
			limit = getConfig().DefaultLimit
		}
		direction := -1
		if searchAsc {
			direction = 1
		}

		start := time.Now()
		models, err := getHub().ListModels(cmd.Context(), hub.ListModelsOptions{
			Search:      query,
			Library:     searchLibrary,
			Tags:        searchTags,
			PipelineTag: searchPipeline,
			Sort:        searchSort,
			Direction:   direction,
			Limit:       limit,
		})
		if err != nil {
			return handleHubError(err)
		}

		if isJSONOutput() {
			records := make([]map[string]any, 0, len(models))
			for _, model := range models {
				records = append(records, model.Record())
			}
			outputSuccess(records, &Meta{
				Count:       len(records),
				QueryTimeMs: time.Since(start).Milliseconds(),
			})
			return nil
		}

		if len(models) == 0 {
			fmt.Println("No models found.")
			return nil
		}

		printModelTable(models)
		fmt.Println()
		fmt.Println(ui.Hint(fmt.Sprintf("  %d models. 'hubcard info <model-id>' for details.", len(models))))
		return nil
	},
}

func printModelTable(models []hub.ModelSummary) {
	display := ui.NewDisplayContext()
	table := ui.NewResultsTable(display, ui.ModelListLayout)
	modelWidth := table.ContentWidth("model")

	for i, model := range models {
		task := model.PipelineTag
		if task == "" {
			task = "-"
		}
		table.AddRow(ui.ResultRow{
			Num: i + 1,
			Cells: []string{
				ui.FormatRowNum(i+1, len(models)),
				ui.TruncateWithEllipsis(model.ID, modelWidth),
				task,
				formatStats(model.Downloads, model.Likes),
			},
		})
	}
	fmt.Println(table.Render())
}

func formatStats(downloads, likes int) string {
	return fmt.Sprintf("%s dl  %s ♥", formatCount(downloads), formatCount(likes))
}

// formatCount renders large counts compactly: 1234567 -> "1.2M".
func formatCount(n int) string {
	switch {
	case n >= 1_000_000:
		return strings.TrimSuffix(fmt.Sprintf("%.1f", float64(n)/1_000_000), ".0") + "M"
	case n >= 1_000:
		return strings.TrimSuffix(fmt.Sprintf("%.1f", float64(n)/1_000), ".0") + "K"
	default:
		return fmt.Sprintf("%d", n)
	}
}

func init() {
	searchCmd.Flags().StringSliceVar(&searchLibrary, "library", nil, "Filter by library (repeatable)")
	searchCmd.Flags().StringSliceVar(&searchTags, "tag", nil, "Filter by tag (repeatable)")
	searchCmd.Flags().StringVar(&searchPipeline, "pipeline", "", "Filter by pipeline task (e.g. text-generation)")
	searchCmd.Flags().StringVar(&searchSort, "sort", "", "Sort key: trending_score, last_modified, created_at, downloads, likes")
	searchCmd.Flags().BoolVar(&searchAsc, "asc", false, "Sort ascending instead of descending")
	searchCmd.Flags().IntVar(&searchLimit, "limit", 0, "Maximum number of results (default 20)")

	rootCmd.AddCommand(searchCmd)
}
