package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/danieljhkim/propmerge/internal/engine"
	"github.com/danieljhkim/propmerge/internal/props"
)

var showComments bool

var showCmd = &cobra.Command{
	Use:   "show FILE",
	Short: "List the entries parsed from a properties file",
	Long:  `Parse FILE and list its entries in order, the way merge sees them.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := newEngine().Inspect(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if jsonOutput {
			return outputJSON(out, result)
		}

		formatShowOutput(out, result)
		return nil
	},
}

func init() {
	showCmd.Flags().BoolVarP(&showComments, "comments", "c", false, "Print the comment block above each entry")
}

func formatShowOutput(w io.Writer, result *engine.InspectResult) {
	if len(result.Entries) == 0 {
		PrintEmptyState(w, "No entries")
		return
	}

	commented := lo.CountBy(result.Entries, func(e props.Entry) bool {
		return e.Comment != ""
	})
	_, _ = headerColor.Fprintf(w, "▸ %s\n", result.Path)
	_, _ = dimColor.Fprintf(w, "  %d entr%s, %d with comments\n\n", len(result.Entries), entrySuffix(len(result.Entries)), commented)

	for _, e := range result.Entries {
		if showComments && e.Comment != "" {
			for _, line := range strings.Split(strings.TrimSuffix(e.Comment, "\n"), "\n") {
				_, _ = dimColor.Fprintf(w, "  %s\n", line)
			}
		}
		_, _ = labelColor.Fprintf(w, "  %s", e.Key)
		if strings.Contains(e.Raw, "\n") {
			_, _ = valueColor.Fprintf(w, "  (%d lines)", strings.Count(e.Raw, "\n")+1)
		}
		fmt.Fprintln(w)
	}
}
