package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/propmerge/internal/engine"
)

var diffExitCode bool

var diffCmd = &cobra.Command{
	Use:   "diff SOURCE OVERRIDE DEST",
	Short: "Show how merging would change DEST",
	Long:  `Merge SOURCE and OVERRIDE in memory and print a unified diff from the current DEST to the result. DEST is not written.`,
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		req := newMergeRequest(args)
		req.DryRun = true
		req.ShowContent = true

		result, err := newEngine().Merge(cmd.Context(), req)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if jsonOutput {
			if err := outputJSON(out, result); err != nil {
				return err
			}
		} else {
			formatDiffOutput(out, result)
		}

		if diffExitCode && result.UnifiedDiff != "" {
			return fmt.Errorf("%w: %s", ErrOutOfDate, result.Destination)
		}
		return nil
	},
}

func init() {
	diffCmd.Flags().BoolVar(&diffExitCode, "exit-code", false, "Exit non-zero when there are differences")
}

// formatDiffOutput outputs a git-like unified patch plus a change summary.
func formatDiffOutput(w io.Writer, result *engine.MergeResult) {
	if result.UnifiedDiff == "" {
		PrintEmptyState(w, "No changes detected")
		return
	}

	_, _ = headerColor.Fprintf(w, "  %s\n", result.Destination)
	_, _ = dimColor.Fprintln(w, "  "+strings.Repeat("─", 50))
	printUnifiedDiff(w, result.UnifiedDiff)

	fmt.Fprintln(w)
	fmt.Fprint(w, "  ")
	if result.Additions > 0 {
		_, _ = successColor.Fprintf(w, "%d insertion%s(+)", result.Additions, plural(result.Additions))
	}
	if result.Additions > 0 && result.Deletions > 0 {
		fmt.Fprint(w, ", ")
	}
	if result.Deletions > 0 {
		_, _ = errorColor.Fprintf(w, "%d deletion%s(-)", result.Deletions, plural(result.Deletions))
	}
	fmt.Fprintln(w)
}

func printUnifiedDiff(w io.Writer, diffText string) {
	lines := strings.Split(diffText, "\n")
	for i, line := range lines {
		// Preserve trailing newline semantics from generated patches.
		if i == len(lines)-1 && line == "" {
			continue
		}

		switch {
		// Skip redundant diff header lines, the destination is already shown
		case strings.HasPrefix(line, "diff --git "),
			strings.HasPrefix(line, "+++ "),
			strings.HasPrefix(line, "--- "):
			continue
		case strings.HasPrefix(line, "@@"):
			_, _ = infoColor.Fprintf(w, "  %s\n", line)
		case strings.HasPrefix(line, "+"):
			_, _ = successColor.Fprintf(w, "  %s\n", line)
		case strings.HasPrefix(line, "-"):
			_, _ = errorColor.Fprintf(w, "  %s\n", line)
		default:
			fmt.Fprintf(w, "  %s\n", line)
		}
	}
}
