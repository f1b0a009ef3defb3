// Package config holds the settings shared by the composer components.
//
// A Config value is created once at startup (defaults, then an optional YAML
// file, then environment overrides) and passed into each component when it is
// constructed. Nothing in this package is mutated after construction.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Environment variables recognised by FromEnv.
const (
	EnvConfigFile = "IMAGE_COMPOSER_CONFIG"
	EnvLogLevel   = "IMAGE_COMPOSER_LOG_LEVEL"
)

// Fit modes.
const (
	FitCrop    = "crop"
	FitOverlay = "overlay"
)

// Config contains every tunable value used by the imaging, editor, composer,
// workspace and shell packages.
type Config struct {
	// Debug enables verbose logging and debug output in the shell.
	Debug bool `yaml:"debug"`

	// ComposedFilename is the name of the composed image written into the
	// loaded directory.
	ComposedFilename string `yaml:"composed_filename"`

	// ManifestFilename is the name of the manifest written next to the
	// composed image.
	ManifestFilename string `yaml:"manifest_filename"`

	// ToolPrefix marks files written by this tool. Files with this prefix
	// are skipped when a directory is scanned.
	ToolPrefix string `yaml:"tool_prefix"`

	// EditedPrefix is prepended to the base name of each edited image.
	// It must start with ToolPrefix so edited files are not rescanned.
	EditedPrefix string `yaml:"edited_prefix"`

	// Extensions lists the accepted image extensions, without the dot.
	Extensions []string `yaml:"extensions"`

	// BorderWidth is the border in pixels added around composed images.
	BorderWidth int `yaml:"border_width"`

	// BorderColor is the border colour as "#RRGGBB".
	BorderColor string `yaml:"border_color"`

	// FitMode selects what a fit pushes onto the history: "crop" or "overlay".
	FitMode string `yaml:"fit_mode"`

	// FitPadding grows the detected region before cropping, in pixels.
	FitPadding int `yaml:"fit_padding"`

	// EdgeConstant is divided by sqrt(strength) to get the upper Canny threshold.
	EdgeConstant float64 `yaml:"edge_constant"`

	// OverlayColor and OverlayThickness control how contours are drawn.
	OverlayColor     string `yaml:"overlay_color"`
	OverlayThickness int    `yaml:"overlay_thickness"`

	// PreviewWidth is the width of single-image previews.
	PreviewWidth int `yaml:"preview_width"`

	// CompositionPreviewWidth is the width of composition previews.
	CompositionPreviewWidth int `yaml:"composition_preview_width"`

	// JPEGQuality is used when an output path ends in .jpg or .jpeg.
	JPEGQuality int `yaml:"jpeg_quality"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		ComposedFilename:        "composed.jpg",
		ManifestFilename:        "composed.dat",
		ToolPrefix:              "pct_",
		EditedPrefix:            "pct_edited_",
		Extensions:              []string{"jpg", "jpeg", "png", "gif", "bmp", "tif", "tiff", "webp"},
		BorderWidth:             50,
		BorderColor:             "#000000",
		FitMode:                 FitCrop,
		FitPadding:              10,
		EdgeConstant:            250,
		OverlayColor:            "#00FF00",
		OverlayThickness:        10,
		PreviewWidth:            337,
		CompositionPreviewWidth: 1800,
		JPEGQuality:             95,
	}
}

// Load reads a YAML file on top of the defaults. Keys missing from the file
// keep their default value.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// FromEnv builds the configuration from IMAGE_COMPOSER_CONFIG (optional file)
// and IMAGE_COMPOSER_LOG_LEVEL (debug switch).
func FromEnv() (Config, error) {
	cfg := Default()
	if path := os.Getenv(EnvConfigFile); path != "" {
		loaded, err := Load(path)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}
	if strings.EqualFold(os.Getenv(EnvLogLevel), "debug") {
		cfg.Debug = true
	}
	return cfg, nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	switch {
	case c.ComposedFilename == "":
		return fmt.Errorf("composed_filename must not be empty")
	case c.ManifestFilename == "":
		return fmt.Errorf("manifest_filename must not be empty")
	case c.ComposedFilename == c.ManifestFilename:
		return fmt.Errorf("composed_filename and manifest_filename must differ")
	case c.EditedPrefix == "":
		return fmt.Errorf("edited_prefix must not be empty")
	case c.ToolPrefix != "" && !strings.HasPrefix(c.EditedPrefix, c.ToolPrefix):
		return fmt.Errorf("edited_prefix %q must start with tool_prefix %q", c.EditedPrefix, c.ToolPrefix)
	case len(c.Extensions) == 0:
		return fmt.Errorf("extensions must not be empty")
	case c.BorderWidth < 0:
		return fmt.Errorf("border_width must be >= 0, got %d", c.BorderWidth)
	case c.FitMode != FitCrop && c.FitMode != FitOverlay:
		return fmt.Errorf("fit_mode must be %q or %q, got %q", FitCrop, FitOverlay, c.FitMode)
	case c.FitPadding < 0:
		return fmt.Errorf("fit_padding must be >= 0, got %d", c.FitPadding)
	case c.EdgeConstant <= 0:
		return fmt.Errorf("edge_constant must be > 0, got %g", c.EdgeConstant)
	case c.OverlayThickness < 1:
		return fmt.Errorf("overlay_thickness must be >= 1, got %d", c.OverlayThickness)
	case c.PreviewWidth < 1 || c.CompositionPreviewWidth < 1:
		return fmt.Errorf("preview widths must be >= 1")
	case c.JPEGQuality < 1 || c.JPEGQuality > 100:
		return fmt.Errorf("jpeg_quality must be in 1..100, got %d", c.JPEGQuality)
	}
	return nil
}
