package backend

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
)

func TestSearchOrdersByMatchCount(t *testing.T) {
	base := t.TempDir()
	writeFile(t, filepath.Join(base, "Work", "few.md"), "kubernetes once")
	writeFile(t, filepath.Join(base, "Work", "many.md"), "kubernetes kubernetes kubernetes")
	writeFile(t, filepath.Join(base, "Personal", "none.md"), "gardening")
	writeFile(t, filepath.Join(base, "Personal", "photo.png"), "kubernetes in binary")

	svc := New()
	results, err := svc.Search(context.Background(), base, "Kubernetes")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].NoteID != "many.md" || results[0].MatchCount != 3 {
		t.Fatalf("unexpected first result: %+v", results[0])
	}
	if results[1].NoteID != "few.md" || results[1].MatchCount != 1 {
		t.Fatalf("unexpected second result: %+v", results[1])
	}
	if results[0].NotebookName != "Work" {
		t.Fatalf("unexpected notebook name: %q", results[0].NotebookName)
	}
}

func TestSearchCountsFilenameMatch(t *testing.T) {
	base := t.TempDir()
	writeFile(t, filepath.Join(base, "Work", "budget.md"), "numbers only")

	svc := New()
	results, err := svc.Search(context.Background(), base, "budget")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(results) != 1 || results[0].MatchCount != 1 {
		t.Fatalf("expected filename-only match, got %+v", results)
	}
}

func TestSearchSnippetContextAndEllipses(t *testing.T) {
	base := t.TempDir()
	padding := strings.Repeat("x", 80)
	writeFile(t, filepath.Join(base, "Work", "long.md"), padding+"\nneedle here\n"+padding)

	svc := New()
	results, err := svc.Search(context.Background(), base, "needle")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	snippet := results[0].Snippet
	if !strings.HasPrefix(snippet, "...") || !strings.HasSuffix(snippet, "...") {
		t.Fatalf("expected ellipses on both sides: %q", snippet)
	}
	if strings.Contains(snippet, "\n") {
		t.Fatalf("snippet should flatten newlines: %q", snippet)
	}
	if !strings.Contains(snippet, "needle here") {
		t.Fatalf("snippet should contain the match: %q", snippet)
	}
}

func TestSearchEmptyQuery(t *testing.T) {
	svc := New()
	results, err := svc.Search(context.Background(), t.TempDir(), "   ")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("expected no results for blank query")
	}
}

func TestSearchSkipsIgnoredDirs(t *testing.T) {
	base := t.TempDir()
	writeFile(t, filepath.Join(base, "node_modules", "dep.md"), "needle")
	writeFile(t, filepath.Join(base, "Work", "real.md"), "needle")

	svc := New()
	results, err := svc.Search(context.Background(), base, "needle")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(results) != 1 || results[0].NotebookName != "Work" {
		t.Fatalf("expected only Work hit, got %+v", results)
	}
}
