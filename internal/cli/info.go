package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hubcard/hubcard/internal/ui"
)

var infoCmd = &cobra.Command{
	Use:   "info <model-id>",
	Short: "Show metadata for a model",
	Long: `Show detailed metadata for one model: downloads, likes, tags,
pipeline task, license, and repository files.

Examples:
  hubcard info meta-llama/Llama-3-8B
  hubcard info bert-base-uncased --json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		model, err := getHub().ModelInfo(cmd.Context(), args[0])
		if err != nil {
			return handleHubError(err)
		}
		record := model.Record()

		if isJSONOutput() {
			outputSuccess(record, nil)
			return nil
		}

		fmt.Println(ui.Header(ui.ModelRef(model.ID)))
		fmt.Println()

		table := ui.NewTable(2)
		addField := func(label, key string) {
			value, ok := record[key]
			if !ok {
				return
			}
			table.AddRow(ui.Hint(label), fieldString(value))
		}
		addField("author", "author")
		addField("pipeline", "pipeline_tag")
		addField("library", "library_name")
		addField("license", "license")
		addField("base model", "base_model")
		addField("downloads", "downloads")
		addField("likes", "likes")
		addField("created", "created_at")
		addField("modified", "last_modified")
		addField("datasets", "datasets")
		fmt.Print(table.String())

		if tags, ok := record["tags"].([]string); ok {
			fmt.Println()
			fmt.Println(ui.Hint("tags: ") + strings.Join(tags, ", "))
		}
		if files, ok := record["siblings"].([]string); ok {
			fmt.Println()
			fmt.Println(ui.Header(fmt.Sprintf("Files %s", ui.Count(len(files), "file", "files"))))
			sorted := append([]string(nil), files...)
			sort.Strings(sorted)
			for _, file := range sorted {
				fmt.Printf("  %s\n", file)
			}
		}
		return nil
	},
}

func fieldString(value any) string {
	switch v := value.(type) {
	case []string:
		return strings.Join(v, ", ")
	default:
		return fmt.Sprintf("%v", v)
	}
}

func init() {
	rootCmd.AddCommand(infoCmd)
}
