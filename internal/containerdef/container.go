// Package containerdef parses and validates the TOML container
// definition that drives one encode run: the list of titles to encode
// and the shared, optional font pack. Ported from the original Rust
// encoder's ContainerDefinition/TitleDefinition loader.
package containerdef

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/ticevid/encoder/internal/discovery"
	"github.com/ticevid/encoder/internal/ticerr"
)

// Container is the parsed and validated contents of a container.toml.
type Container struct {
	Titles   []Title `toml:"titles"`
	FontPack string  `toml:"font_pack"`
}

// Title describes one encodable title: its source video, target
// playback geometry, and optional caption sources.
type Title struct {
	Name      string                   `toml:"name"`
	Icon      string                   `toml:"icon"`
	Video     string                   `toml:"video"`
	Start     *Duration                `toml:"start"`
	Durration *Duration                `toml:"durration"`
	FPS       uint8                    `toml:"fps"`
	Captions  map[string]CaptionSource `toml:"captions"`
	Height    uint8                    `toml:"height"`
}

// Duration is a TOML-friendly breakdown of a time offset, summed by
// ToSeconds rather than parsed from a single duration string,
// matching the original TitleDuration shape.
type Duration struct {
	Milliseconds uint32 `toml:"milliseconds"`
	Seconds      uint64 `toml:"seconds"`
	Minutes      uint64 `toml:"minutes"`
	Hours        uint64 `toml:"hours"`
}

// ToSeconds sums the fields into whole seconds (seconds, minutes and
// hours) plus a nanosecond remainder taken from the milliseconds, and
// returns both; a nil Duration yields zeros.
func (d *Duration) ToSeconds() (seconds uint64, nanos uint64) {
	if d == nil {
		return 0, 0
	}
	seconds = d.Seconds + d.Minutes*60 + d.Hours*3600
	nanos = uint64(d.Milliseconds) * 1_000_000
	return seconds, nanos
}

// CaptionSource is a tagged union ported from the Rust CaptionSource
// enum: either an external subtitle file or an internal stream index.
// The tag is the "type" field; exactly one of Source/Index is
// meaningful, selected by Type.
type CaptionSource struct {
	Type   string `toml:"type"`
	Source string `toml:"source"`
	Index  uint8  `toml:"index"`
}

const (
	CaptionExternal = "external"
	CaptionInternal = "internal"
)

// Validate checks the caption source is a recognized variant with its
// required field populated.
func (c CaptionSource) Validate() error {
	switch c.Type {
	case CaptionExternal:
		if c.Source == "" {
			return ticerr.NewConfig("external caption source missing \"source\" path", nil)
		}
	case CaptionInternal:
		// index 0 is a valid stream index; nothing further to check.
	default:
		return ticerr.NewConfig(fmt.Sprintf("caption source has unknown type %q", c.Type), nil)
	}
	return nil
}

// Load reads and parses the container definition at path, then
// validates it. baseDir (the directory containing path) is used to
// resolve relative video/icon/font-pack paths.
func Load(path string) (*Container, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, ticerr.NewConfig(fmt.Sprintf("reading container definition %s", path), err)
	}

	var c Container
	if err := toml.Unmarshal(raw, &c); err != nil {
		return nil, ticerr.NewConfig(fmt.Sprintf("parsing container definition %s", path), err)
	}

	baseDir := filepath.Dir(path)
	if err := c.Validate(baseDir); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks title count limits, required fields, caption source
// shapes, and that referenced files exist on disk.
func (c *Container) Validate(baseDir string) error {
	if len(c.Titles) == 0 {
		return ticerr.NewConfig("container definition has no titles", nil)
	}
	if len(c.Titles) > 255 {
		return ticerr.NewLimit(fmt.Sprintf("container has %d titles, exceeding the 255-title limit", len(c.Titles)))
	}

	if c.FontPack != "" {
		if err := checkExists(baseDir, c.FontPack); err != nil {
			return err
		}
	}

	for i := range c.Titles {
		if err := c.Titles[i].validate(baseDir); err != nil {
			return fmt.Errorf("title %d: %w", i, err)
		}
	}
	return nil
}

func (t *Title) validate(baseDir string) error {
	if t.Video == "" {
		return ticerr.NewConfig("title has no video path", nil)
	}
	if err := checkExists(baseDir, t.Video); err != nil {
		return err
	}
	if !discovery.IsVideoFile(t.Video) {
		return ticerr.NewConfig(fmt.Sprintf("video %s does not have a recognized video extension", t.Video), nil)
	}
	if t.Icon != "" {
		if err := checkExists(baseDir, t.Icon); err != nil {
			return err
		}
	}
	if t.FPS == 0 {
		return ticerr.NewConfig("title fps must be nonzero", nil)
	}
	if t.Height == 0 {
		return ticerr.NewConfig("title height must be nonzero", nil)
	}
	for name, caption := range t.Captions {
		if err := caption.Validate(); err != nil {
			return fmt.Errorf("caption %q: %w", name, err)
		}
		if caption.Type == CaptionExternal {
			if err := checkExists(baseDir, caption.Source); err != nil {
				return err
			}
		}
	}
	return nil
}

func checkExists(baseDir, relPath string) error {
	full := relPath
	if !filepath.IsAbs(relPath) {
		full = filepath.Join(baseDir, relPath)
	}
	if _, err := os.Stat(full); err != nil {
		return ticerr.NewConfig(fmt.Sprintf("referenced file %s does not exist", full), err)
	}
	return nil
}
