package omdb

import "testing"

func TestParseRuntime(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"148 min", 148},
		{"90", 90},
		{"N/A", 0},
		{"", 0},
		{"  95 min ", 95},
		{"-4 min", 0},
	}
	for _, tt := range tests {
		if got := ParseRuntime(tt.in); got != tt.want {
			t.Errorf("ParseRuntime(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestParseRating(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"8.8", 8.8},
		{"10", 10},
		{"N/A", 0},
		{"", 0},
		{"abc", 0},
	}
	for _, tt := range tests {
		if got := ParseRating(tt.in); got != tt.want {
			t.Errorf("ParseRating(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestMapSearchItems(t *testing.T) {
	items := []SearchItem{
		{Title: "Inception", Year: "2010", ImdbID: "tt1375666", Poster: "N/A"},
		{Title: "No id", Year: "1999"},
	}
	got := MapSearchItems(items)
	if len(got) != 1 {
		t.Fatalf("expected items without id to be dropped, got %d", len(got))
	}
	if got[0].PosterURL != "" {
		t.Errorf("expected N/A poster to be blank, got %q", got[0].PosterURL)
	}
}

func TestMapDetailBackfillsID(t *testing.T) {
	d := MapDetail(DetailResponse{Title: "Inception", Runtime: "N/A"}, "tt1375666")
	if d.ID != "tt1375666" {
		t.Errorf("expected requested id, got %q", d.ID)
	}
	if d.Runtime != "" || d.RuntimeMinutes != 0 {
		t.Errorf("expected unknown runtime, got %q / %d", d.Runtime, d.RuntimeMinutes)
	}
}
