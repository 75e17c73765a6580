// Package config resolves the engine's configuration through the same
// four-level hierarchy the teacher's pkg/core/brain.go uses: compiled-in
// defaults, an optional YAML file, environment variables, then explicit
// CLI overrides applied by the caller.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/somalattice/lattice/pkg/latticeerr"
	"github.com/somalattice/lattice/pkg/params"
)

// WorkerConfig governs the parallel-phase scheduler (§5).
type WorkerConfig struct {
	Count int `yaml:"count"` // 0 means "use cpuid logical core count"
}

// StorageConfig governs save/load and the named-snapshot registry (§6).
type StorageConfig struct {
	DataDir           string `yaml:"data_dir"`
	ChecksumOnLoad    bool   `yaml:"checksum_on_load"`
	CompressSaveFiles bool   `yaml:"compress_save_files"`
}

// DeterminismConfig governs the seed and the optional invariant audit.
type DeterminismConfig struct {
	Seed       uint32 `yaml:"seed"`
	AuditCycle bool   `yaml:"audit_cycle"`
}

// LatticeConfig governs initial world allocation.
type LatticeConfig struct {
	SizeX   int32   `yaml:"size_x"`
	SizeY   int32   `yaml:"size_y"`
	SizeZ   int32   `yaml:"size_z"`
	Density float64 `yaml:"density"`
}

// ReplayConfig governs the host-level replay/action queue drain interval.
type ReplayConfig struct {
	DrainTimeout time.Duration `yaml:"drain_timeout"`
}

// Config aggregates every section a host needs to stand up an Engine.
type Config struct {
	Worker      WorkerConfig      `yaml:"worker"`
	Storage     StorageConfig     `yaml:"storage"`
	Determinism DeterminismConfig `yaml:"determinism"`
	Lattice     LatticeConfig     `yaml:"lattice"`
	Replay      ReplayConfig      `yaml:"replay"`

	// ParametersFile, when set, is loaded over the default parameter
	// block via pkg/params's permissive key=value loader.
	ParametersFile string `yaml:"parameters_file"`
}

// DefaultConfig mirrors core.DefaultConfig's literal-defaults idiom.
func DefaultConfig() *Config {
	return &Config{
		Worker: WorkerConfig{Count: 0},
		Storage: StorageConfig{
			DataDir:           "./data",
			ChecksumOnLoad:    true,
			CompressSaveFiles: false,
		},
		Determinism: DeterminismConfig{
			Seed:       42,
			AuditCycle: false,
		},
		Lattice: LatticeConfig{
			SizeX: 32, SizeY: 32, SizeZ: 32,
			Density: 0.3,
		},
		Replay: ReplayConfig{
			DrainTimeout: 5 * time.Second,
		},
	}
}

// ConfigFromFile overlays a YAML file's contents onto cfg.
func ConfigFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}
	return nil
}

// ConfigFromEnv overlays LATTICE_* environment variables onto cfg, the
// way the teacher's ConfigFromEnv walks QUBICDB_*.
func ConfigFromEnv(cfg *Config) {
	setEnvInt("LATTICE_WORKER_COUNT", &cfg.Worker.Count)
	setEnvStr("LATTICE_DATA_DIR", &cfg.Storage.DataDir)
	setEnvBool("LATTICE_CHECKSUM_ON_LOAD", &cfg.Storage.ChecksumOnLoad)
	setEnvBool("LATTICE_COMPRESS_SAVE_FILES", &cfg.Storage.CompressSaveFiles)
	setEnvUint32("LATTICE_SEED", &cfg.Determinism.Seed)
	setEnvBool("LATTICE_AUDIT_CYCLE", &cfg.Determinism.AuditCycle)
	setEnvInt32("LATTICE_SIZE_X", &cfg.Lattice.SizeX)
	setEnvInt32("LATTICE_SIZE_Y", &cfg.Lattice.SizeY)
	setEnvInt32("LATTICE_SIZE_Z", &cfg.Lattice.SizeZ)
	setEnvFloat("LATTICE_DENSITY", &cfg.Lattice.Density)
	setEnvStr("LATTICE_PARAMETERS_FILE", &cfg.ParametersFile)
}

// LoadConfig applies defaults, then an optional YAML file, then the
// environment, the way core.LoadConfig composes its three layers (CLI
// overrides are the caller's responsibility, applied on top of the
// *Config this returns).
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()
	if configPath != "" {
		if err := ConfigFromFile(cfg, configPath); err != nil {
			return nil, err
		}
	}
	ConfigFromEnv(cfg)
	return cfg, nil
}

// Validate mirrors Config.Validate's field-by-field, warn-don't-fail
// idiom for risky-but-legal settings.
func (c *Config) Validate() error {
	if c.Worker.Count < 0 {
		return fmt.Errorf("config: worker.count %d: %w", c.Worker.Count, latticeerr.ErrInvalidWorkerCount)
	}
	if c.Lattice.SizeX <= 0 || c.Lattice.SizeY <= 0 || c.Lattice.SizeZ <= 0 {
		return fmt.Errorf("config: lattice size (%d,%d,%d): %w", c.Lattice.SizeX, c.Lattice.SizeY, c.Lattice.SizeZ, latticeerr.ErrInvalidWorldSize)
	}
	if c.Lattice.Density < 0 || c.Lattice.Density > 1 {
		return fmt.Errorf("config: lattice.density %f: %w", c.Lattice.Density, latticeerr.ErrInvalidDensity)
	}
	if c.Lattice.SizeX > 4096 || c.Lattice.SizeY > 4096 || c.Lattice.SizeZ > 4096 {
		fmt.Println("⚠ WARNING: config: lattice dimensions above 4096 per axis will allocate a very large chunk set")
	}
	return nil
}

// LoadParameters applies ParametersFile (if set) over the stock default
// parameter block.
func (c *Config) LoadParameters() (params.Parameters, error) {
	p := params.Default()
	if c.ParametersFile == "" {
		return p, nil
	}
	if err := p.LoadTextFile(c.ParametersFile); err != nil {
		return p, fmt.Errorf("config: load parameters: %w", err)
	}
	return p, nil
}

func setEnvStr(key string, dst *string) {
	if v, ok := os.LookupEnv(key); ok {
		*dst = v
	}
}

func setEnvBool(key string, dst *bool) {
	if v, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}

func setEnvInt(key string, dst *int) {
	if v, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setEnvInt32(key string, dst *int32) {
	if v, ok := os.LookupEnv(key); ok {
		if n, err := strconv.ParseInt(v, 10, 32); err == nil {
			*dst = int32(n)
		}
	}
}

func setEnvUint32(key string, dst *uint32) {
	if v, ok := os.LookupEnv(key); ok {
		if n, err := strconv.ParseUint(v, 10, 32); err == nil {
			*dst = uint32(n)
		}
	}
}

func setEnvFloat(key string, dst *float64) {
	if v, ok := os.LookupEnv(key); ok {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			*dst = f
		}
	}
}
