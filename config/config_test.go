package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/chromacore/blob"
	"github.com/arloliu/chromacore/bridge"
	"github.com/arloliu/chromacore/errs"
	"github.com/arloliu/chromacore/format"
	"github.com/arloliu/chromacore/quant"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	require.Equal(t, bridge.DefaultSeamEpsilon, cfg.Bridge.SeamEpsilon)
	require.Equal(t, 8, cfg.Dream.Capacity)
	require.Equal(t, 0.4, cfg.Dream.CoherenceThreshold)
	require.Equal(t, uint32(16), cfg.Dream.Epochs)
	require.Equal(t, quant.DefaultScale, cfg.Quant.Scale)
	require.Equal(t, "half", cfg.Blob.Encoding)
}

func TestParse_OverridesDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`
dream:
  capacity: 3
  coherence_threshold: 0.75
blob:
  compression: zstd
  big_endian: true
log:
  format: json
`))
	require.NoError(t, err)
	require.Equal(t, 3, cfg.Dream.Capacity)
	require.Equal(t, 0.75, cfg.Dream.CoherenceThreshold)
	require.Equal(t, uint32(16), cfg.Dream.Epochs, "unset fields keep defaults")
	require.Equal(t, "zstd", cfg.Blob.Compression)
	require.True(t, cfg.Blob.BigEndian)
	require.Equal(t, bridge.DefaultSeamEpsilon, cfg.Bridge.SeamEpsilon)
}

func TestParse_Empty(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
}

func TestParse_UnknownField(t *testing.T) {
	_, err := Parse([]byte("dream:\n  capacityy: 3\n"))
	require.Error(t, err)
	require.Equal(t, errs.KindConfig, errs.KindOf(err))
}

func TestParseJSON(t *testing.T) {
	cfg, err := ParseJSON([]byte(`{"quant": {"scale": 4096}, "blob": {"encoding": "raw"}}`))
	require.NoError(t, err)
	require.Equal(t, int32(4096), cfg.Quant.Scale)
	require.Equal(t, "raw", cfg.Blob.Encoding)

	_, err = ParseJSON([]byte(`{"nope": 1}`))
	require.Equal(t, errs.KindConfig, errs.KindOf(err))
}

func TestValidate_ReportsEveryProblem(t *testing.T) {
	cfg := Default()
	cfg.Bridge.SeamEpsilon = 0
	cfg.Dream.Capacity = 0
	cfg.Dream.CoherenceThreshold = 1.5
	cfg.Quant.Scale = -1
	cfg.Blob.Encoding = "gorilla"
	cfg.Blob.Compression = "brotli"
	cfg.Log.Format = "xml"

	err := cfg.Validate()
	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrInvalidConfig)
	require.ErrorIs(t, err, errs.ErrUnsupportedEncoding)
	require.ErrorIs(t, err, errs.ErrUnsupportedCompression)
	require.Equal(t, errs.KindConfig, errs.KindOf(err))

	msg := err.Error()
	for _, field := range []string{"seam_epsilon", "capacity", "coherence_threshold", "scale", "blob.encoding", "blob.compression", "log.format"} {
		require.Contains(t, msg, field)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	yamlPath := filepath.Join(dir, "chroma.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte("dream:\n  epochs: 4\n"), 0o600))
	cfg, err := Load(yamlPath)
	require.NoError(t, err)
	require.Equal(t, uint32(4), cfg.Dream.Epochs)

	jsonPath := filepath.Join(dir, "chroma.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`{"dream": {"max_age": 2}}`), 0o600))
	cfg, err = Load(jsonPath)
	require.NoError(t, err)
	require.Equal(t, uint32(2), cfg.Dream.MaxAge)

	tomlPath := filepath.Join(dir, "chroma.toml")
	require.NoError(t, os.WriteFile(tomlPath, []byte(""), 0o600))
	_, err = Load(tomlPath)
	require.ErrorIs(t, err, errs.ErrInvalidConfig)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	require.Equal(t, errs.KindIO, errs.KindOf(err))
}

func TestNewDreamPool(t *testing.T) {
	cfg := Default()
	cfg.Dream.Capacity = 5
	cfg.Dream.CoherenceThreshold = 0.6

	p := cfg.NewDreamPool(nil)
	require.Equal(t, 5, p.Capacity())
	require.Equal(t, 0.6, p.Threshold())

	buf := &bytes.Buffer{}
	require.NotNil(t, cfg.NewDreamPool(cfg.Observer(buf).Log()))
}

func TestBlobOptions(t *testing.T) {
	cfg := Default()
	cfg.Blob.Encoding = "raw"
	cfg.Blob.Compression = "lz4"
	cfg.Blob.BigEndian = true

	opts, err := cfg.BlobOptions()
	require.NoError(t, err)

	enc, err := blob.NewUMSEncoder(opts...)
	require.NoError(t, err)
	require.Equal(t, format.TypeRaw64, enc.Encoding())
	require.Equal(t, format.CompressionLZ4, enc.Compression())

	cfg.Blob.Compression = "brotli"
	_, err = cfg.BlobOptions()
	require.ErrorIs(t, err, errs.ErrUnsupportedCompression)
}

func TestObserver(t *testing.T) {
	cfg := Default()
	cfg.Log.Format = "json"
	cfg.Log.Verbose = true

	buf := &bytes.Buffer{}
	cfg.Observer(buf).Log().Info().Msg("hello")
	require.Contains(t, buf.String(), `"hello"`)
}
