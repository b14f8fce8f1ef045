package field

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	DefaultWidth     = 16
	DefaultHeight    = 16
	DefaultTileWidth = 16
)

// Options are the parsed field options.
type Options struct {
	InitWidth     int
	InitHeight    int
	DisableResize bool
	TileWidth     int
	Filter        string
}

func DefaultOptions() Options {
	return Options{
		InitWidth:  DefaultWidth,
		InitHeight: DefaultHeight,
		TileWidth:  DefaultTileWidth,
	}
}

// RawOptions are field options as the host supplies them, before parsing.
type RawOptions struct {
	InitWidth     string          `yaml:"initWidth"`
	InitHeight    string          `yaml:"initHeight"`
	DisableResize string          `yaml:"disableResize"`
	TileWidth     TileWidthOption `yaml:"tileWidth"`
	Filter        string          `yaml:"filter"`
}

// TileWidthOption holds a tile width given either as a number or as a name
// ("eight", "sixteen", "thirtytwo").
type TileWidthOption struct {
	Raw     string
	Numeric bool
}

func TileWidthNumber(n int) TileWidthOption {
	return TileWidthOption{Raw: strconv.Itoa(n), Numeric: true}
}

func TileWidthName(s string) TileWidthOption {
	return TileWidthOption{Raw: s}
}

var errTileWidthKind = errors.New("tileWidth must be a number or a string")

func (o *TileWidthOption) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return errTileWidthKind
	}
	o.Raw = value.Value
	o.Numeric = value.Tag == "!!int" || value.Tag == "!!float"
	return nil
}

// width returns the tile width the option names, or 0 when unrecognised.
func (o TileWidthOption) width() int {
	if o.Numeric {
		f, err := strconv.ParseFloat(strings.TrimSpace(o.Raw), 64)
		if err != nil {
			return 0
		}
		switch f {
		case 8, 16, 32:
			return int(f)
		}
		return 0
	}

	switch strings.ToLower(strings.TrimSpace(o.Raw)) {
	case "8", "eight":
		return 8
	case "16", "sixteen":
		return 16
	case "32", "thirtytwo":
		return 32
	}
	return 0
}

// ParseOptions fills in defaults for anything missing or unrecognised.
func ParseOptions(raw *RawOptions) Options {
	parsed := DefaultOptions()
	if raw == nil {
		return parsed
	}

	parsed.Filter = raw.Filter
	if w := raw.TileWidth.width(); w != 0 {
		parsed.TileWidth = w
	}
	if b, err := strconv.ParseBool(strings.TrimSpace(raw.DisableResize)); err == nil {
		parsed.DisableResize = b
	}

	parsed.InitWidth = withDefault(raw.InitWidth, parsed.InitWidth)
	parsed.InitHeight = withDefault(raw.InitHeight, parsed.InitHeight)
	return parsed
}

// withDefault parses the leading integer of raw, the way a lenient integer
// parse of a markup attribute would ("12px" is 12).
func withDefault(raw string, def int) int {
	s := strings.TrimSpace(raw)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return def
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return def
	}
	return n
}

// LoadOptions reads raw field options from a YAML file and parses them.
func LoadOptions(filename string) (Options, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return Options{}, fmt.Errorf("field: load %s: %w", filename, err)
	}
	var raw RawOptions
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Options{}, fmt.Errorf("field: unmarshal %s: %w", filename, err)
	}
	return ParseOptions(&raw), nil
}
