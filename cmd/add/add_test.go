package add

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gigurra/glass/cmd/library"
)

func writeFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("not really audio"), 0644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestRun_ImportsDirectoryOnce(t *testing.T) {
	music := t.TempDir()
	writeFiles(t, music, "First Song.mp3", "notes.txt", "second.wav")
	libPath := filepath.Join(t.TempDir(), "library.json")
	importer := library.NewImporter("")

	var stdout, stderr bytes.Buffer
	if err := Run(&Params{Paths: []string{music}}, libPath, importer, &stdout, &stderr); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !strings.Contains(stdout.String(), "Imported 2 track(s)") {
		t.Errorf("stdout = %q", stdout.String())
	}

	catalog, err := library.Load(libPath)
	if err != nil {
		t.Fatal(err)
	}
	if catalog.Len() != 2 {
		t.Fatalf("library has %d tracks, want 2", catalog.Len())
	}
	if len(catalog.Search("First Song")) != 1 {
		t.Error("title should default to the file name")
	}

	stdout.Reset()
	if err := Run(&Params{Paths: []string{music}}, libPath, importer, &stdout, &stderr); err != nil {
		t.Fatalf("second Run: %v", err)
	}
	if !strings.Contains(stdout.String(), "Imported 0 track(s)") {
		t.Errorf("known files should be skipped, got %q", stdout.String())
	}
}

func TestRun_DryRunDoesNotSave(t *testing.T) {
	music := t.TempDir()
	writeFiles(t, music, "a.mp3")
	libPath := filepath.Join(t.TempDir(), "library.json")

	var stdout, stderr bytes.Buffer
	if err := Run(&Params{Paths: []string{music}, DryRun: true}, libPath, library.NewImporter(""), &stdout, &stderr); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(libPath); !os.IsNotExist(err) {
		t.Errorf("library file should not exist after a dry run, stat err = %v", err)
	}
}

func TestRun_WebTrack(t *testing.T) {
	libPath := filepath.Join(t.TempDir(), "library.json")

	var stdout, stderr bytes.Buffer
	params := &Params{URL: "https://radio.example/streams/night.mp3", Artist: "Night FM"}
	if err := Run(params, libPath, library.NewImporter(""), &stdout, &stderr); err != nil {
		t.Fatal(err)
	}

	catalog, _ := library.Load(libPath)
	tracks := catalog.Tracks()
	if len(tracks) != 1 {
		t.Fatalf("got %d tracks", len(tracks))
	}
	got := tracks[0]
	if got.Source != library.SourceWeb || got.Title != "night.mp3" || got.Album != library.DefaultAlbum {
		t.Errorf("unexpected track %+v", got)
	}
	if got.PlayableLocator() != params.URL {
		t.Errorf("locator = %q", got.PlayableLocator())
	}
}

func TestRun_ReportsBadPaths(t *testing.T) {
	libPath := filepath.Join(t.TempDir(), "library.json")
	var stdout, stderr bytes.Buffer

	err := Run(&Params{Paths: []string{"/definitely/not/here.mp3"}}, libPath, library.NewImporter(""), &stdout, &stderr)
	if err != nil {
		t.Fatalf("per-file failures should not fail the command: %v", err)
	}
	if !strings.Contains(stderr.String(), "not imported") {
		t.Errorf("stderr = %q", stderr.String())
	}
}

func TestRun_NothingToImport(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if err := Run(&Params{}, filepath.Join(t.TempDir(), "l.json"), library.NewImporter(""), &stdout, &stderr); err == nil {
		t.Error("expected an error")
	}
}
