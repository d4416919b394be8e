package library

import (
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

// LyricLine is one timed line of an LRC lyric sheet.
type LyricLine struct {
	At   time.Duration
	Text string
}

var lrcTimestamp = regexp.MustCompile(`\[(\d+):(\d+(?:\.\d+)?)\]`)

// ParseLyrics reads LRC text ("[mm:ss.xx] line"). A line may carry several
// timestamps. Lines without a timestamp are ignored, so plain unsynced
// lyrics parse to nothing.
func ParseLyrics(raw string) []LyricLine {
	var lines []LyricLine
	for _, row := range strings.Split(raw, "\n") {
		stamps := lrcTimestamp.FindAllStringSubmatch(row, -1)
		if len(stamps) == 0 {
			continue
		}
		text := strings.TrimSpace(lrcTimestamp.ReplaceAllString(row, ""))
		for _, m := range stamps {
			mins, err := strconv.Atoi(m[1])
			if err != nil {
				continue
			}
			sec, err := strconv.ParseFloat(m[2], 64)
			if err != nil {
				continue
			}
			at := time.Duration(mins)*time.Minute + time.Duration(math.Round(sec*1000))*time.Millisecond
			lines = append(lines, LyricLine{At: at, Text: text})
		}
	}
	sort.SliceStable(lines, func(i, j int) bool { return lines[i].At < lines[j].At })
	return lines
}

// LineAt returns the index of the line being sung at pos, or -1 before the
// first line.
func LineAt(lines []LyricLine, pos time.Duration) int {
	return sort.Search(len(lines), func(i int) bool { return lines[i].At > pos }) - 1
}
