package genedist

import (
	"strings"
	"testing"
)

func TestScanThresholdFiltersByBestScore(t *testing.T) {
	eng := NewEngine(emptyCatalogue(), nil)
	dict := strings.NewReader("kitten\nsitting\nabcdefgh\nkitten\n")

	matches, err := eng.ScanThreshold(dict, "kitten", 1, []Shape{Full}, nil, nil, false)
	if err != nil {
		t.Fatal(err)
	}
	if len(matches) != 2 {
		t.Fatalf("expected 2 matches within threshold 1, got %d: %+v", len(matches), matches)
	}
	for _, m := range matches {
		if m.Text != "kitten" {
			t.Errorf("expected only 'kitten' entries to match, got %q", m.Text)
		}
	}
}

func TestScanThresholdWithAlignment(t *testing.T) {
	eng := NewEngine(emptyCatalogue(), nil)
	dict := strings.NewReader("kitten\n")

	matches, err := eng.ScanThreshold(dict, "kitten", 0, []Shape{Full}, nil, nil, true)
	if err != nil {
		t.Fatal(err)
	}
	if len(matches) != 1 {
		t.Fatalf("expected 1 match, got %d", len(matches))
	}
	if len(matches[0].Paths) == 0 {
		t.Error("expected alignments to be populated when withAlignment is set")
	}
}

func TestTopNKeepsTiesAtBoundary(t *testing.T) {
	top := NewTopN(2)
	top.Consider(0, "a", 1.0)
	top.Consider(1, "b", 1.0)
	top.Consider(2, "c", 1.0) // ties the boundary, should be kept too
	top.Consider(3, "d", 5.0) // strictly worse, should be dropped

	entries := top.Entries()
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries (2 kept + 1 tie), got %d: %+v", len(entries), entries)
	}
	for _, e := range entries {
		if e.Text == "d" {
			t.Error("expected the strictly-worse entry to be dropped")
		}
	}
}

func TestTopNReplacesWorseCandidateOnceFull(t *testing.T) {
	top := NewTopN(1)
	top.Consider(0, "worse", 5.0)
	top.Consider(1, "better", 1.0)

	entries := top.Entries()
	if len(entries) != 1 || entries[0].Text != "better" {
		t.Errorf("expected only 'better' to remain, got %+v", entries)
	}
}

func TestScanTopNOverDictionary(t *testing.T) {
	eng := NewEngine(emptyCatalogue(), nil)
	dict := strings.NewReader("abc\nabd\nabe\nzzzzzz\n")

	entries, err := eng.ScanTopN(dict, "abc", 3, Full, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) < 3 {
		t.Fatalf("expected at least 3 entries, got %d", len(entries))
	}
	if entries[0].Text != "abc" || entries[0].Score != 0 {
		t.Errorf("expected the exact match 'abc' to rank first, got %+v", entries[0])
	}
}
