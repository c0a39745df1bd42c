// Package config loads optional engine tuning overrides.
//
// The struct is tagged for JSON and decoded through sigs.k8s.io/yaml,
// which converts YAML to JSON and then uses encoding/json — the same
// approach the teacher codebase's deployment tooling uses for its own
// YAML-configured components, so the engine's config format follows
// suit rather than inventing a bespoke parser.
package config

import (
	"fmt"
	"os"

	"sigs.k8s.io/yaml"

	"github.com/csvengine/csvq/hwtag"
)

// EngineConfig overrides the Hardware Tag Detector's defaults. A zero
// value is valid: every field left unset falls back to the detected
// hardware tag's default.
type EngineConfig struct {
	HeapMaxK     int `json:"heapMaxK,omitempty"`
	RadixMinN    int `json:"radixMinN,omitempty"`
	MaxWorkers   int `json:"maxWorkers,omitempty"`
	ReaderWindow int `json:"readerWindow,omitempty"`
	WriterBuffer int `json:"writerBuffer,omitempty"`
}

const (
	// DefaultReaderWindow is the Small-file Byte Reader's window size.
	DefaultReaderWindow = 2 << 20
	// DefaultWriterBuffer is the Output Writer's buffer size.
	DefaultWriterBuffer = 1 << 20
)

// Resolved is an EngineConfig with every field filled in, ready for
// the rest of the engine to consult without further fallback logic.
type Resolved struct {
	Tag          hwtag.Tag
	HeapMaxK     int
	RadixMinN    int
	MaxWorkers   int
	ReaderWindow int
	WriterBuffer int
}

// Load reads an optional YAML config file. A missing path is not an
// error: the zero-value EngineConfig is returned. A path that exists
// but cannot be read or parsed, or that contains a negative override,
// returns a plain error prefixed "config:".
func Load(path string) (EngineConfig, error) {
	var cfg EngineConfig
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("config: reading %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	if cfg.HeapMaxK < 0 || cfg.RadixMinN < 0 || cfg.MaxWorkers < 0 ||
		cfg.ReaderWindow < 0 || cfg.WriterBuffer < 0 {
		return cfg, fmt.Errorf("config: %s: override values must be non-negative", path)
	}
	return cfg, nil
}

// Resolve merges cfg over the architecture's detected Defaults.
func Resolve(cfg EngineConfig) Resolved {
	tag, def := hwtag.Detect()
	r := Resolved{
		Tag:          tag,
		HeapMaxK:     def.HeapMaxK,
		RadixMinN:    def.RadixMinN,
		MaxWorkers:   def.MaxWorkers,
		ReaderWindow: DefaultReaderWindow,
		WriterBuffer: DefaultWriterBuffer,
	}
	if cfg.HeapMaxK > 0 {
		r.HeapMaxK = cfg.HeapMaxK
	}
	if cfg.RadixMinN > 0 {
		r.RadixMinN = cfg.RadixMinN
	}
	if cfg.MaxWorkers > 0 {
		r.MaxWorkers = cfg.MaxWorkers
	}
	if cfg.ReaderWindow > 0 {
		r.ReaderWindow = cfg.ReaderWindow
	}
	if cfg.WriterBuffer > 0 {
		r.WriterBuffer = cfg.WriterBuffer
	}
	return r
}
