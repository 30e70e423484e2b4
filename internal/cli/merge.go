package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/danieljhkim/propmerge/internal/config"
	"github.com/danieljhkim/propmerge/internal/engine"
	"github.com/danieljhkim/propmerge/internal/props"
)

// ErrOutOfDate is returned by --check and --exit-code when the destination would change.
var ErrOutOfDate = errors.New("destination is out of date")

var (
	mergeAtomic     bool
	mergeCreateDirs bool
	mergeMode       string
	mergeDryRun     bool
	mergeCheck      bool
)

var mergeCmd = &cobra.Command{
	Use:   "merge SOURCE OVERRIDE DEST",
	Short: "Merge OVERRIDE into SOURCE and write DEST",
	Long: `Merge the override properties file into the source file and write the result to DEST.

Keys in both files keep their source position and comment and take the override value.
Keys only in the override file are appended in override order. DEST is created if missing.`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		req := newMergeRequest(args)
		req.DryRun = mergeDryRun || mergeCheck

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
			formatMergeOutput(out, result)
		}

		if mergeCheck && !result.Unchanged {
			return fmt.Errorf("%w: %s", ErrOutOfDate, result.Destination)
		}
		return nil
	},
}

func init() {
	def := config.Default()
	mergeCmd.Flags().BoolVar(&mergeAtomic, "atomic", def.Atomic, "Write DEST through a temp file and rename")
	mergeCmd.Flags().BoolVar(&mergeCreateDirs, "create-dirs", def.CreateDirs, "Create missing parent directories of DEST")
	mergeCmd.Flags().StringVar(&mergeMode, "mode", config.FormatFileMode(def.FileMode), "Permissions for a newly created DEST (octal)")
	mergeCmd.Flags().BoolVarP(&mergeDryRun, "dry-run", "n", false, "Merge without writing DEST")
	mergeCmd.Flags().BoolVar(&mergeCheck, "check", false, "Exit non-zero if DEST is not up to date (implies --dry-run)")
}

// formatMergeOutput prints a merge summary.
func formatMergeOutput(w io.Writer, result *engine.MergeResult) {
	size := humanize.Bytes(uint64(result.Bytes))

	switch {
	case result.Written:
		PrintSuccess(w, fmt.Sprintf("Merged %d entr%s into %s (%s)", result.Entries, entrySuffix(result.Entries), result.Destination, size))
	case result.Unchanged:
		PrintSuccess(w, fmt.Sprintf("%s is up to date", result.Destination))
	default:
		PrintWarning(w, fmt.Sprintf("%s would be rewritten with %d entr%s (%s)", result.Destination, result.Entries, entrySuffix(result.Entries), size))
	}

	printChanges(w, result.Changes)
}

func printChanges(w io.Writer, changes props.Changes) {
	if changes.Empty() {
		PrintEmptyState(w, "override file changes nothing")
		return
	}
	if len(changes.Overridden) > 0 {
		keys := lo.Map(changes.Overridden, func(c props.Change, _ int) string {
			return c.Key
		})
		PrintLabelValue(w, "overridden", strings.Join(keys, ", "))
	}
	if len(changes.Added) > 0 {
		PrintLabelValue(w, "added", strings.Join(changes.Added, ", "))
	}
}

func entrySuffix(count int) string {
	if count == 1 {
		return "y"
	}
	return "ies"
}
