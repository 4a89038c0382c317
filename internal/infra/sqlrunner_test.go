package infra

import (
	"strings"
	"testing"
)

func TestExtractMarker(t *testing.T) {
	query := `--sql 4ceb455e-2300-41b7-87d4-5115049c766e
select 1;
`
	marker, trimmed, err := extractMarker(query)
	if err != nil {
		t.Fatalf("extractMarker returned error: %v", err)
	}
	if marker != "4ceb455e-2300-41b7-87d4-5115049c766e" {
		t.Fatalf("marker: got %q", marker)
	}
	if !strings.Contains(trimmed, "select 1;") {
		t.Fatalf("trimmed query lost its body: %q", trimmed)
	}
	if strings.Contains(trimmed, "--sql") {
		t.Fatalf("marker must be stripped from the query: %q", trimmed)
	}
}

func TestExtractMarkerRejectsUnmarkedQuery(t *testing.T) {
	if _, _, err := extractMarker("select 1;"); err == nil {
		t.Fatal("expected an error for a query without a marker")
	}
}
