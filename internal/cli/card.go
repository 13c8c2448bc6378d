package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/hubcard/hubcard/internal/atomicfile"
	"github.com/hubcard/hubcard/internal/card"
	"github.com/hubcard/hubcard/internal/cards"
	"github.com/hubcard/hubcard/internal/frontmatter"
	"github.com/hubcard/hubcard/internal/ui"
)

var (
	cardRevision string
	cardRefresh  bool
	cardRaw      bool
	cardSave     bool
)

var cardCmd = &cobra.Command{
	Use:   "card <model-id>",
	Short: "Read a model card",
	Long: `Fetch a model's README card and render it in the terminal.

Cards are cached locally; --refresh forces a fetch from the Hub.

Examples:
  hubcard card meta-llama/Llama-3-8B
  hubcard card org/model --raw        # print the raw markdown
  hubcard card org/model --save       # write org--model.md to the current directory
  hubcard card org/model --revision refs/pr/3`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		modelID := args[0]

		spinner := startSpinner("Fetching card")
		content, err := getService().Card(cmd.Context(), modelID, cards.CardOptions{
			Revision: cardRevision,
			Refresh:  cardRefresh,
		})
		spinner.Stop()
		if err != nil {
			return handleHubError(err)
		}

		if isJSONOutput() {
			meta, body, parseErr := frontmatter.Parse(content)
			data := map[string]any{
				"model_id": modelID,
				"content":  content,
			}
			if parseErr == nil {
				outline := card.Extract(body)
				if outline.Title != "" {
					data["title"] = outline.Title
				}
				if outline.Summary != "" {
					data["summary"] = outline.Summary
				}
				if meta != nil {
					data["metadata"] = meta
				}
			}
			outputSuccess(data, nil)
			return nil
		}

		if cardSave {
			filename := card.FileName(modelID)
			if err := atomicfile.WriteFile(filename, []byte(content), 0644); err != nil {
				return handleError(ErrInternal, err, "")
			}
			fmt.Println(ui.Successf("saved %s", filename))
			return nil
		}

		if cardRaw || !isatty.IsTerminal(os.Stdout.Fd()) {
			fmt.Print(content)
			return nil
		}

		// Render only the body; the metadata block reads better as a table.
		meta, body, parseErr := frontmatter.Parse(content)
		if parseErr != nil {
			// Malformed header: show the raw card rather than failing a read.
			fmt.Print(content)
			return nil
		}

		fmt.Println(ui.Header(ui.ModelRef(modelID)))
		if meta != nil {
			printCardMetadata(meta)
		}

		display := ui.NewDisplayContext()
		rendered, err := ui.RenderMarkdown(body, display.AvailableWidth(ui.MarkdownRenderMargin))
		if err != nil {
			fmt.Print(body)
			return nil
		}
		fmt.Print(rendered)
		return nil
	},
}

func printCardMetadata(meta *frontmatter.CardData) {
	table := ui.NewTable(2)
	if meta.PipelineTag != "" {
		table.AddRow(ui.Hint("pipeline"), meta.PipelineTag)
	}
	if meta.LibraryName != "" {
		table.AddRow(ui.Hint("library"), meta.LibraryName)
	}
	if meta.License != "" {
		table.AddRow(ui.Hint("license"), meta.License)
	}
	if len(meta.BaseModel) > 0 {
		table.AddRow(ui.Hint("base model"), strings.Join(meta.BaseModel, ", "))
	}
	fmt.Print(table.String())
}

// startSpinner runs a spinner unless output is piped or JSON.
func startSpinner(message string) *ui.Spinner {
	spinner := ui.NewSpinner(message)
	if !isJSONOutput() && isatty.IsTerminal(os.Stdout.Fd()) {
		spinner.Start()
	}
	return spinner
}

func init() {
	cardCmd.Flags().StringVar(&cardRevision, "revision", "", "Branch, tag, or commit (default main)")
	cardCmd.Flags().BoolVar(&cardRefresh, "refresh", false, "Bypass the local cache")
	cardCmd.Flags().BoolVar(&cardRaw, "raw", false, "Print raw markdown without rendering")
	cardCmd.Flags().BoolVar(&cardSave, "save", false, "Save the card to a local file")

	rootCmd.AddCommand(cardCmd)
}
