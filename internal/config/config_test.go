package config

import "testing"

func TestParseRoster(t *testing.T) {
	roster := parseRoster(" Alice:uuid-1, Bob : uuid-2 ,,broken, : uuid-3 ")
	if len(roster) != 2 {
		t.Fatalf("expected 2 roster entries, got %v", roster)
	}
	if roster["Alice"] != "uuid-1" || roster["Bob"] != "uuid-2" {
		t.Fatalf("unexpected roster: %v", roster)
	}
}

func TestParseRosterEmpty(t *testing.T) {
	if roster := parseRoster(""); len(roster) != 0 {
		t.Fatalf("expected empty roster, got %v", roster)
	}
}

func TestSplitAndTrim(t *testing.T) {
	origins := splitAndTrim(" http://a.test , http://b.test ,")
	if len(origins) != 2 || origins[0] != "http://a.test" || origins[1] != "http://b.test" {
		t.Fatalf("unexpected origins: %v", origins)
	}

	if origins := splitAndTrim("  "); len(origins) != 1 || origins[0] != "*" {
		t.Fatalf("expected the wildcard fallback, got %v", origins)
	}
}
