// Package config loads construction-time settings for chromacore tools.
//
// Nothing in the numeric packages reads configuration implicitly; a Config is
// turned into explicit constructor arguments with NewDreamPool, BlobOptions
// and Observer.
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/felixgeelhaar/bolt/v3"
	"gopkg.in/yaml.v3"

	"github.com/arloliu/chromacore/blob"
	"github.com/arloliu/chromacore/bridge"
	"github.com/arloliu/chromacore/dream"
	"github.com/arloliu/chromacore/errs"
	"github.com/arloliu/chromacore/format"
	"github.com/arloliu/chromacore/internal/observe"
	"github.com/arloliu/chromacore/quant"
)

// Config is the complete tool configuration.
type Config struct {
	Bridge BridgeConfig `json:"bridge" yaml:"bridge"`
	Dream  DreamConfig  `json:"dream" yaml:"dream"`
	Quant  QuantConfig  `json:"quant" yaml:"quant"`
	Blob   BlobConfig   `json:"blob" yaml:"blob"`
	Log    LogConfig    `json:"log" yaml:"log"`
}

// BridgeConfig tunes the chromatic/spectral bridge.
type BridgeConfig struct {
	// SeamEpsilon is the half-width in radians of the seam blending window.
	SeamEpsilon float64 `json:"seam_epsilon" yaml:"seam_epsilon"`
}

// DreamConfig sizes the dream pool and cycle.
type DreamConfig struct {
	Capacity           int     `json:"capacity" yaml:"capacity"`
	CoherenceThreshold float64 `json:"coherence_threshold" yaml:"coherence_threshold"`
	Epochs             uint32  `json:"epochs" yaml:"epochs"`
	MaxAge             uint32  `json:"max_age" yaml:"max_age"`
}

// QuantConfig sets the fixed-point grid.
type QuantConfig struct {
	Scale int32 `json:"scale" yaml:"scale"`
}

// BlobConfig selects the UMS envelope format.
type BlobConfig struct {
	Encoding    string `json:"encoding" yaml:"encoding"`       // "half" or "raw"
	Compression string `json:"compression" yaml:"compression"` // "none", "zstd", "s2" or "lz4"
	BigEndian   bool   `json:"big_endian" yaml:"big_endian"`
}

// LogConfig selects the log output.
type LogConfig struct {
	Verbose bool   `json:"verbose" yaml:"verbose"`
	Format  string `json:"format" yaml:"format"` // "console" or "json"
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Bridge: BridgeConfig{SeamEpsilon: bridge.DefaultSeamEpsilon},
		Dream: DreamConfig{
			Capacity:           8,
			CoherenceThreshold: 0.4,
			Epochs:             16,
			MaxAge:             8,
		},
		Quant: QuantConfig{Scale: quant.DefaultScale},
		Blob: BlobConfig{
			Encoding:    "half",
			Compression: "none",
		},
		Log: LogConfig{Format: "console"},
	}
}

// Parse decodes YAML over the defaults and validates the result. Unknown
// fields are rejected.
func Parse(data []byte) (Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, errs.New(errs.KindConfig, "parse yaml", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// ParseJSON decodes JSON over the defaults and validates the result. Unknown
// fields are rejected.
func ParseJSON(data []byte) (Config, error) {
	cfg := Default()

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, errs.New(errs.KindConfig, "parse json", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Load reads a configuration file. The format follows the extension:
// .json, or .yaml/.yml.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path) // #nosec G304
	if err != nil {
		return Config{}, errs.New(errs.KindIO, "load config", fmt.Errorf("read %s: %w", path, err))
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		return ParseJSON(data)
	case ".yaml", ".yml":
		return Parse(data)
	default:
		return Config{}, errs.New(errs.KindConfig, "load config",
			fmt.Errorf("%w: unsupported format %q (use .json or .yaml)", errs.ErrInvalidConfig, ext))
	}
}

// Validate reports every invalid field at once.
func (c *Config) Validate() error {
	var problems []error
	bad := func(msg string, args ...any) {
		problems = append(problems, fmt.Errorf("%w: "+msg, append([]any{errs.ErrInvalidConfig}, args...)...))
	}

	if !(c.Bridge.SeamEpsilon > 0 && c.Bridge.SeamEpsilon < math.Pi) {
		bad("bridge.seam_epsilon must be in (0, π), got %v", c.Bridge.SeamEpsilon)
	}
	if c.Dream.Capacity < 1 {
		bad("dream.capacity must be at least 1, got %d", c.Dream.Capacity)
	}
	if !(c.Dream.CoherenceThreshold >= 0 && c.Dream.CoherenceThreshold <= 1) {
		bad("dream.coherence_threshold must be in [0, 1], got %v", c.Dream.CoherenceThreshold)
	}
	if c.Quant.Scale <= 0 {
		bad("quant.scale must be positive, got %d", c.Quant.Scale)
	}
	if _, err := format.ParseEncoding(c.Blob.Encoding); err != nil {
		problems = append(problems, fmt.Errorf("blob.encoding: %w", err))
	}
	if _, err := format.ParseCompression(c.Blob.Compression); err != nil {
		problems = append(problems, fmt.Errorf("blob.compression: %w", err))
	}
	switch strings.ToLower(c.Log.Format) {
	case "", "console", "json":
	default:
		bad("log.format must be console or json, got %q", c.Log.Format)
	}

	if len(problems) == 0 {
		return nil
	}

	return errs.New(errs.KindConfig, "validate", errors.Join(problems...))
}

// NewDreamPool creates a pool sized by the dream settings. A nil logger
// disables pool logging.
func (c *Config) NewDreamPool(l *bolt.Logger) *dream.Pool {
	var opts []dream.PoolOption
	if l != nil {
		opts = append(opts, dream.WithLogger(l))
	}

	return dream.NewPool(c.Dream.Capacity, c.Dream.CoherenceThreshold, opts...)
}

// BlobOptions converts the blob settings into encoder options.
func (c *Config) BlobOptions() ([]blob.UMSEncoderOption, error) {
	enc, err := format.ParseEncoding(c.Blob.Encoding)
	if err != nil {
		return nil, errs.New(errs.KindConfig, "blob options", err)
	}
	comp, err := format.ParseCompression(c.Blob.Compression)
	if err != nil {
		return nil, errs.New(errs.KindConfig, "blob options", err)
	}

	opts := []blob.UMSEncoderOption{blob.WithEncoding(enc), blob.WithCompression(comp)}
	if c.Blob.BigEndian {
		opts = append(opts, blob.WithBigEndian())
	}

	return opts, nil
}

// Observer creates the observer selected by the log settings.
func (c *Config) Observer(w io.Writer) *observe.Observer {
	if strings.EqualFold(c.Log.Format, "json") {
		return observe.NewJSON(w, c.Log.Verbose)
	}

	return observe.New(w, c.Log.Verbose)
}
