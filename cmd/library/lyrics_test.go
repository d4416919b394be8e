package library

import (
	"testing"
	"time"
)

func TestParseLyrics(t *testing.T) {
	raw := "[ar:Someone]\n[00:12.50] second\n[00:01.00][01:00.00] first and chorus\nplain line\n[00:20] third"

	lines := ParseLyrics(raw)
	want := []LyricLine{
		{At: time.Second, Text: "first and chorus"},
		{At: 12*time.Second + 500*time.Millisecond, Text: "second"},
		{At: 20 * time.Second, Text: "third"},
		{At: time.Minute, Text: "first and chorus"},
	}
	if len(lines) != len(want) {
		t.Fatalf("got %d lines: %+v", len(lines), lines)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %+v, want %+v", i, lines[i], want[i])
		}
	}
}

func TestParseLyrics_Unsynced(t *testing.T) {
	if lines := ParseLyrics("just\nwords"); len(lines) != 0 {
		t.Errorf("expected no timed lines, got %+v", lines)
	}
}

func TestLineAt(t *testing.T) {
	lines := []LyricLine{{At: time.Second}, {At: 5 * time.Second}, {At: 9 * time.Second}}

	tests := []struct {
		pos  time.Duration
		want int
	}{
		{0, -1},
		{time.Second, 0},
		{4 * time.Second, 0},
		{5 * time.Second, 1},
		{time.Hour, 2},
	}
	for _, tt := range tests {
		if got := LineAt(lines, tt.pos); got != tt.want {
			t.Errorf("LineAt(%v) = %d, want %d", tt.pos, got, tt.want)
		}
	}
	if got := LineAt(nil, time.Second); got != -1 {
		t.Errorf("LineAt(nil) = %d", got)
	}
}
