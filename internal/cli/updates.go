package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hubcard/hubcard/internal/ui"
)

var updatesLimit int

var updatesCmd = &cobra.Command{
	Use:   "updates",
	Short: "List recent metadata update proposals",
	Long: `List metadata updates proposed from this machine, newest first.

Examples:
  hubcard updates
  hubcard updates --limit 5 --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if getStore() == nil {
			return handleErrorMsg(ErrCacheError,
				"the local cache is unavailable, no update history to show", "")
		}

		records, err := getStore().Updates(updatesLimit)
		if err != nil {
			return handleError(ErrCacheError, err, "")
		}

		if isJSONOutput() {
			type updateRecord struct {
				ModelID   string `json:"model_id"`
				Fields    string `json:"fields"`
				ChangeURL string `json:"change_url,omitempty"`
				CreatedAt string `json:"created_at"`
			}
			out := make([]updateRecord, 0, len(records))
			for _, rec := range records {
				out = append(out, updateRecord{
					ModelID:   rec.ModelID,
					Fields:    rec.Fields,
					ChangeURL: rec.ChangeURL,
					CreatedAt: rec.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
				})
			}
			outputSuccess(out, &Meta{Count: len(out)})
			return nil
		}

		if len(records) == 0 {
			fmt.Println("No updates proposed yet.")
			return nil
		}

		table := ui.NewTable(4)
		for _, rec := range records {
			table.AddRow(
				rec.CreatedAt.Format("2006-01-02 15:04"),
				ui.ModelRef(rec.ModelID),
				rec.Fields,
				ui.Hint(rec.ChangeURL),
			)
		}
		fmt.Print(table.String())
		return nil
	},
}

func init() {
	updatesCmd.Flags().IntVar(&updatesLimit, "limit", 20, "Maximum number of entries")

	rootCmd.AddCommand(updatesCmd)
}
