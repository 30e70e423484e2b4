package engine

import (
	"strings"
	"testing"
)

func TestGenerateUnifiedDiff_ModifiedFile(t *testing.T) {
	diff, additions, deletions := generateUnifiedDiff(
		"merged.properties",
		[]byte("a=1\nb=2\nc=3\n"),
		[]byte("a=1\nb=20\nc=3\n"),
		"modified",
	)

	if additions != 1 {
		t.Fatalf("additions = %d, want 1", additions)
	}
	if deletions != 1 {
		t.Fatalf("deletions = %d, want 1", deletions)
	}

	checks := []string{
		"diff --git a/merged.properties b/merged.properties",
		"--- a/merged.properties",
		"+++ b/merged.properties",
		"@@",
		"-b=2",
		"+b=20",
	}
	for _, want := range checks {
		if !strings.Contains(diff, want) {
			t.Fatalf("diff missing %q:\n%s", want, diff)
		}
	}
}

func TestGenerateUnifiedDiff_AddedFile(t *testing.T) {
	diff, additions, deletions := generateUnifiedDiff(
		"new.properties",
		nil,
		[]byte("first=1\nsecond=2\n"),
		"added",
	)

	if additions != 2 {
		t.Fatalf("additions = %d, want 2", additions)
	}
	if deletions != 0 {
		t.Fatalf("deletions = %d, want 0", deletions)
	}

	checks := []string{
		"--- /dev/null",
		"+++ b/new.properties",
		"+first=1",
		"+second=2",
	}
	for _, want := range checks {
		if !strings.Contains(diff, want) {
			t.Fatalf("diff missing %q:\n%s", want, diff)
		}
	}
}

func TestGenerateUnifiedDiff_Identical(t *testing.T) {
	diff, additions, deletions := generateUnifiedDiff(
		"same.properties",
		[]byte("a=1\n"),
		[]byte("a=1\n"),
		"modified",
	)

	if diff != "" || additions != 0 || deletions != 0 {
		t.Fatalf("expected empty diff, got %q (+%d -%d)", diff, additions, deletions)
	}
}

func TestGenerateUnifiedDiff_CountsDashedContent(t *testing.T) {
	_, additions, deletions := generateUnifiedDiff(
		"dash.properties",
		[]byte("--- x=1\n"),
		[]byte("+++ x=1\n"),
		"modified",
	)

	if additions != 1 || deletions != 1 {
		t.Fatalf("got +%d -%d, want +1 -1", additions, deletions)
	}
}
