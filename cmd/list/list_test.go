package list

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/gigurra/glass/cmd/library"
)

func testCatalog() *library.Catalog {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return library.NewCatalog(
		library.Track{ID: "aaaaaaaa-1", Title: "Blue", Artist: "Alpha", Album: "Colors", AddedAt: base, PlayCount: 1, Path: "/m/blue.mp3"},
		library.Track{ID: "bbbbbbbb-2", Title: "Azure", Artist: "Beta", Album: "Colors", AddedAt: base.Add(time.Hour), PlayCount: 9, Liked: true},
		library.Track{ID: "cccccccc-3", Title: "Crimson", Artist: "Gamma & Alpha", Album: "Reds", AddedAt: base.Add(2 * time.Hour)},
	)
}

func run(t *testing.T, params *Params) (string, string, int) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := Run(params, testCatalog(), &stdout, &stderr)
	return stdout.String(), stderr.String(), code
}

func TestRun_Count(t *testing.T) {
	tests := []struct {
		name   string
		params Params
		want   string
	}{
		{"all", Params{}, "3"},
		{"search", Params{Search: "cr"}, "1"},
		{"artist", Params{Artist: "alpha"}, "2"},
		{"liked", Params{Liked: true}, "1"},
		{"album and artist", Params{Album: "Colors", Artist: "Gamma"}, "0"},
	}
	for _, tt := range tests {
		tt.params.Count = true
		out, _, code := run(t, &tt.params)
		if code != 0 || strings.TrimSpace(out) != tt.want {
			t.Errorf("%s: got %q (exit %d), want %s", tt.name, out, code, tt.want)
		}
	}
}

func TestRun_SortAndLimitJSON(t *testing.T) {
	out, _, code := run(t, &Params{SortBy: "plays", Limit: 2, JSON: true})
	if code != 0 {
		t.Fatalf("exit %d", code)
	}
	var tracks []library.Track
	if err := json.Unmarshal([]byte(out), &tracks); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(tracks) != 2 || tracks[0].Title != "Azure" || tracks[1].Title != "Blue" {
		t.Errorf("unexpected order: %+v", tracks)
	}
}

func TestRun_UnknownSort(t *testing.T) {
	_, stderr, code := run(t, &Params{SortBy: "loudness"})
	if code != 1 || !strings.Contains(stderr, "loudness") {
		t.Errorf("expected failure mentioning the order, got %d %q", code, stderr)
	}
}

func TestRun_Names(t *testing.T) {
	out, _, _ := run(t, &Params{Artists: true})
	if got := strings.Fields(out); strings.Join(got, ",") != "Alpha,Beta,Gamma" {
		t.Errorf("artists = %v", got)
	}
	out, _, _ = run(t, &Params{Albums: true})
	if strings.TrimSpace(out) != "Colors\nReds" {
		t.Errorf("albums = %q", out)
	}
}

func TestRun_NoMatches(t *testing.T) {
	out, _, code := run(t, &Params{Search: "nothing like this"})
	if code != 0 || !strings.Contains(out, "No tracks found") {
		t.Errorf("got %q (exit %d)", out, code)
	}
}

func TestRenderTable(t *testing.T) {
	var buf bytes.Buffer
	tracks := testCatalog().Tracks()
	RenderTable(&buf, tracks, true, 160)
	out := buf.String()

	for _, want := range []string{"aaaaaaaa", "Crimson", "♥", "Location", "/m/blue.mp3"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "aaaaaaaa-1") {
		t.Error("ids should be shortened")
	}
}
