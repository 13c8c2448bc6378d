package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hubcard/hubcard/internal/cards"
	"github.com/hubcard/hubcard/internal/diffview"
	"github.com/hubcard/hubcard/internal/frontmatter"
	"github.com/hubcard/hubcard/internal/ui"
)

var (
	updatePipelineTag string
	updateLibraryName string
	updateRevision    string
	updateSummary     string
	updatePR          bool
	updateDryRun      bool
)

var updateCmd = &cobra.Command{
	Use:   "update <model-id>",
	Short: "Propose a metadata update to a model card",
	Long: `Update fields in a model card's YAML metadata header and propose
the change on the Hub. Everything outside the header is preserved
byte for byte.

Updatable fields: pipeline_tag, library_name.

By default the change is committed to the main branch, which requires
write access; --pr opens a pull request instead.

Examples:
  hubcard update org/model --pipeline-tag text-generation --pr
  hubcard update org/model --library-name transformers --dry-run
  hubcard update org/model --pipeline-tag fill-mask --library-name pytorch \
      --summary "Fix task metadata" --pr`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		modelID := args[0]

		var edits []frontmatter.Edit
		if updatePipelineTag != "" {
			edits = append(edits, frontmatter.Edit{Field: "pipeline_tag", Value: updatePipelineTag})
		}
		if updateLibraryName != "" {
			edits = append(edits, frontmatter.Edit{Field: "library_name", Value: updateLibraryName})
		}
		if len(edits) == 0 {
			return handleErrorMsg(ErrNoFields,
				"no fields to update",
				"Pass --pipeline-tag and/or --library-name")
		}

		result, err := getService().UpdateMetadata(cmd.Context(), cards.UpdateRequest{
			ModelID:  modelID,
			Revision: updateRevision,
			Edits:    edits,
			Summary:  updateSummary,
			CreatePR: updatePR,
			DryRun:   updateDryRun,
		})
		if err != nil {
			return handleHubError(err)
		}

		diff := diffview.Lines(result.OldContent, result.NewContent)

		if isJSONOutput() {
			data := map[string]any{
				"model_id": result.ModelID,
				"dry_run":  updateDryRun,
				"changed":  diffview.Changed(diff),
			}
			if updateDryRun {
				data["new_content"] = result.NewContent
			} else {
				data["change_url"] = result.ChangeURL
			}
			outputSuccess(data, nil)
			return nil
		}

		if !diffview.Changed(diff) {
			fmt.Println("Card already up to date; nothing to change.")
			if updateDryRun {
				return nil
			}
		}

		if updateDryRun {
			fmt.Println(ui.Header(fmt.Sprintf("Dry run for %s", ui.ModelRef(modelID))))
			fmt.Println()
			fmt.Print(diffview.Render(diff))
			fmt.Println()
			fmt.Println(ui.Hint("No changes were sent to the Hub. Re-run without --dry-run to propose."))
			return nil
		}

		if updatePR {
			fmt.Println(ui.Successf("opened pull request for %s", modelID))
		} else {
			fmt.Println(ui.Successf("committed update to %s", modelID))
		}
		fmt.Printf("url: %s\n", ui.URL(result.ChangeURL))
		return nil
	},
}

func init() {
	updateCmd.Flags().StringVar(&updatePipelineTag, "pipeline-tag", "", "New pipeline_tag value")
	updateCmd.Flags().StringVar(&updateLibraryName, "library-name", "", "New library_name value")
	updateCmd.Flags().StringVar(&updateRevision, "revision", "", "Branch to update (default main)")
	updateCmd.Flags().StringVar(&updateSummary, "summary", "", "Commit message for the proposal")
	updateCmd.Flags().BoolVar(&updatePR, "pr", false, "Open a pull request instead of committing")
	updateCmd.Flags().BoolVar(&updateDryRun, "dry-run", false, "Preview the change without writing to the Hub")

	rootCmd.AddCommand(updateCmd)
}
