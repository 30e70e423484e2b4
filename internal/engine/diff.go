package engine

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
	"go.uber.org/zap"
)

// populateDiff fills the diff fields of result with the change from the
// current destination to data.
func (e *Engine) populateDiff(result *MergeResult, destination string, data []byte, logger *zap.Logger) {
	status := "modified"
	var current []byte

	exists, err := e.fs.Exists(destination)
	if err == nil && exists {
		current, err = e.fs.ReadFile(destination)
	}
	if err != nil {
		logger.Warn("could not read destination for diff", zap.Error(err))
	}
	if !exists || err != nil {
		status = "added"
		current = nil
	}

	result.UnifiedDiff, result.Additions, result.Deletions = generateUnifiedDiff(
		filepath.ToSlash(destination), current, data, status)
}

// generateUnifiedDiff renders a git-style unified diff between two versions
// of relPath and counts the added and removed lines. Identical content
// yields an empty diff.
func generateUnifiedDiff(relPath string, oldContent, newContent []byte, status string) (string, int, int) {
	if status != "added" && bytes.Equal(oldContent, newContent) {
		return "", 0, 0
	}

	fromFile := "a/" + relPath
	if status == "added" {
		fromFile = "/dev/null"
	}

	ud := difflib.UnifiedDiff{
		A:        splitLines(oldContent),
		B:        splitLines(newContent),
		FromFile: fromFile,
		ToFile:   "b/" + relPath,
		Context:  3,
	}
	text, err := difflib.GetUnifiedDiffString(ud)
	if err != nil || text == "" {
		return "", 0, 0
	}

	additions, deletions := countChanges(text)
	header := fmt.Sprintf("diff --git a/%s b/%s\n", relPath, relPath)
	return header + text, additions, deletions
}

// splitLines splits content into newline-terminated lines.
func splitLines(content []byte) []string {
	if len(content) == 0 {
		return nil
	}
	lines := difflib.SplitLines(string(content))
	// SplitLines appends a newline to the final element; drop the empty tail.
	if last := len(lines) - 1; lines[last] == "\n" && bytes.HasSuffix(content, []byte("\n")) {
		lines = lines[:last]
	}
	return lines
}

// countChanges counts '+' and '-' lines in the hunks of a unified diff.
func countChanges(diffText string) (int, int) {
	additions, deletions := 0, 0
	inHunk := false
	for _, line := range strings.Split(diffText, "\n") {
		switch {
		case strings.HasPrefix(line, "@@"):
			inHunk = true
		case !inHunk:
			continue
		case strings.HasPrefix(line, "+"):
			additions++
		case strings.HasPrefix(line, "-"):
			deletions++
		}
	}
	return additions, deletions
}
