package containerdef

import (
	"os"
	"path/filepath"
	"testing"
)

const sampleTOML = `
font_pack = "fonts/default.pack"

[[titles]]
name = "Intro"
video = "intro.mp4"
fps = 24
height = 240

[titles.captions.main]
type = "internal"
index = 2

[[titles]]
name = "Feature"
video = "feature.mp4"
fps = 30
height = 240

[titles.start]
seconds = 5
milliseconds = 500

[titles.durration]
minutes = 2

[titles.captions.english]
type = "external"
source = "feature.en.srt"
`

func writeSampleContainer(t *testing.T) (dir, tomlPath string) {
	t.Helper()
	dir = t.TempDir()
	for _, name := range []string{
		"fonts/default.pack", "intro.mp4", "feature.mp4", "feature.en.srt",
	} {
		full := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			t.Fatalf("MkdirAll: %v", err)
		}
		if err := os.WriteFile(full, []byte("x"), 0o644); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}
	}
	tomlPath = filepath.Join(dir, "container.toml")
	if err := os.WriteFile(tomlPath, []byte(sampleTOML), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return dir, tomlPath
}

func TestLoadRoundTrip(t *testing.T) {
	_, tomlPath := writeSampleContainer(t)

	c, err := Load(tomlPath)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if len(c.Titles) != 2 {
		t.Fatalf("expected 2 titles, got %d", len(c.Titles))
	}
	if c.FontPack != "fonts/default.pack" {
		t.Fatalf("unexpected font_pack: %q", c.FontPack)
	}

	intro := c.Titles[0]
	if intro.Name != "Intro" || intro.FPS != 24 || intro.Height != 240 {
		t.Fatalf("unexpected intro title: %+v", intro)
	}
	if intro.Start != nil || intro.Durration != nil {
		t.Fatalf("intro should have no start/durration, got %+v", intro)
	}
	mainCaption, ok := intro.Captions["main"]
	if !ok || mainCaption.Type != CaptionInternal || mainCaption.Index != 2 {
		t.Fatalf("unexpected intro captions: %+v", intro.Captions)
	}

	feature := c.Titles[1]
	if feature.Start == nil {
		t.Fatal("expected feature.Start to be set")
	}
	seconds, nanos := feature.Start.ToSeconds()
	if seconds != 5 || nanos != 500_000_000 {
		t.Fatalf("unexpected start duration: seconds=%d nanos=%d", seconds, nanos)
	}
	if feature.Durration == nil {
		t.Fatal("expected feature.Durration to be set")
	}
	durSeconds, _ := feature.Durration.ToSeconds()
	if durSeconds != 120 {
		t.Fatalf("expected 120s durration, got %d", durSeconds)
	}
	englishCaption, ok := feature.Captions["english"]
	if !ok || englishCaption.Type != CaptionExternal || englishCaption.Source != "feature.en.srt" {
		t.Fatalf("unexpected feature captions: %+v", feature.Captions)
	}
}

func TestLoadMissingVideo(t *testing.T) {
	dir := t.TempDir()
	tomlPath := filepath.Join(dir, "container.toml")
	contents := `
[[titles]]
name = "Broken"
video = "missing.mp4"
fps = 24
height = 240
`
	if err := os.WriteFile(tomlPath, []byte(contents), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := Load(tomlPath); err == nil {
		t.Fatal("expected error for missing video file")
	}
}

func TestLoadNoTitles(t *testing.T) {
	dir := t.TempDir()
	tomlPath := filepath.Join(dir, "container.toml")
	if err := os.WriteFile(tomlPath, []byte("titles = []\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := Load(tomlPath); err == nil {
		t.Fatal("expected error for empty titles list")
	}
}

func TestLoadUnknownCaptionType(t *testing.T) {
	dir, _ := writeSampleContainer(t)
	tomlPath := filepath.Join(dir, "bad.toml")
	contents := `
[[titles]]
name = "Bad"
video = "intro.mp4"
fps = 24
height = 240

[titles.captions.x]
type = "mystery"
`
	if err := os.WriteFile(tomlPath, []byte(contents), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := Load(tomlPath); err == nil {
		t.Fatal("expected error for unknown caption type")
	}
}
