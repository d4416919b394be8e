package library

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoad_MissingFileIsEmpty(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Len() != 0 {
		t.Errorf("Len = %d, want 0", c.Len())
	}
}

func TestSaveLoad_RoundTripDerivesLocator(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "library.json")
	c := NewCatalog(
		Track{ID: "local", Title: "L", Path: "/music/l.mp3", Locator: "/music/l.mp3", Source: SourceLocal, PlayCount: 2},
		Track{ID: "web", Title: "W", Locator: "https://example.com/w.mp3", Source: SourceWeb},
	)

	if err := Save(path, c); err != nil {
		t.Fatalf("Save: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), `"locator": "/music/l.mp3"`) {
		t.Error("local locator should not be persisted")
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	l, ok := loaded.Get("local")
	if !ok || l.Locator != "/music/l.mp3" || l.PlayCount != 2 {
		t.Errorf("local track = %+v", l)
	}
	w, ok := loaded.Get("web")
	if !ok || w.Locator != "https://example.com/w.mp3" {
		t.Errorf("web track = %+v", w)
	}
}

func TestLoad_NormalizesRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "library.json")
	raw := `{"version":1,"tracks":[
		{"id":"url","title":"from url","locator":"file:///music/a.mp3"},
		{"id":"empty","title":"nothing playable"},
		{"title":"no id","path":"/music/b.mp3"},
		{"id":"ok","title":"path only","path":"/music/c.mp3"}
	]}`
	if err := os.WriteFile(path, []byte(raw), 0644); err != nil {
		t.Fatal(err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := ids(c.Tracks()); len(got) != 2 || got[0] != "url" || got[1] != "ok" {
		t.Fatalf("tracks = %v", got)
	}
	u, _ := c.Get("url")
	if u.Path != "/music/a.mp3" || u.Locator != "/music/a.mp3" {
		t.Errorf("file:// locator not converted: %+v", u)
	}
}

func TestLoad_Corrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "library.json")
	if err := os.WriteFile(path, []byte("{"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for corrupt file")
	}
}
