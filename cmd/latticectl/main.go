// Command latticectl is the headless driver for the lattice engine: it
// resolves configuration through the usual defaults -> YAML -> env ->
// CLI-flag hierarchy, stands up an Engine (fresh or loaded from a save
// file), drains any due replay actions, advances it for a requested
// number of cycles, and optionally persists the result — directly
// modeled on the teacher's cmd/qubicdb/main.go startup sequence, minus
// the HTTP server the teacher stands up around its own core.Brain.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/somalattice/lattice/pkg/config"
	"github.com/somalattice/lattice/pkg/engine"
	"github.com/somalattice/lattice/pkg/params"
	"github.com/somalattice/lattice/pkg/registry"
	"github.com/somalattice/lattice/pkg/replay"
	"github.com/somalattice/lattice/pkg/saveformat"
	"github.com/somalattice/lattice/pkg/schedule"
	"github.com/somalattice/lattice/pkg/telemetry"
)

type cliOverrides struct {
	configPath *string
	workers    *int
	seed       *uint32
	density    *float64
	audit      *bool
	dataDir    *string
	paramsFile *string

	cycles     *int
	loadPath   *string
	savePath   *string
	label      *string
	compress   *bool
	reportEach *int
}

func main() {
	var o cliOverrides

	rootCmd := &cobra.Command{
		Use:   "latticectl",
		Short: "latticectl - deterministic cellular lattice engine driver",
		Long:  "Advances a deterministic, parallel cellular-automaton lattice for a fixed number of cycles and reports or persists the result.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Flags(), &o)
		},
		SilenceUsage: true,
	}

	f := rootCmd.Flags()
	o.configPath = f.StringP("config", "f", "", "Path to YAML config file (overrides LATTICE_CONFIG env)")
	o.workers = f.Int("workers", 0, "Parallel worker count (0 = logical core count)")
	o.seed = f.Uint32("seed", 0, "Deterministic seed for a fresh world")
	o.density = f.Float64("density", 0, "Initial stem-cell seeding density (0..1)")
	o.audit = f.Bool("audit", false, "Run the per-cycle invariant audit/quarantine pass")
	o.dataDir = f.String("data-dir", "", "Directory for save files and the snapshot registry")
	o.paramsFile = f.String("params-file", "", "Path to a key=value parameter override file")

	o.cycles = f.Int("cycles", 1, "Number of cycles to advance")
	o.loadPath = f.String("load", "", "Load the initial world from this save file instead of seeding one")
	o.savePath = f.String("save", "", "Write the final world to this save file")
	o.label = f.String("label", "", "Register the final save under this label in the snapshot registry")
	o.compress = f.Bool("compress", false, "gzip-compress the written save file")
	o.reportEach = f.Int("report-every", 0, "Log a telemetry snapshot every N cycles (0 = only at the end)")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(flags *pflag.FlagSet, o *cliOverrides) error {
	printBanner()

	configPath := *o.configPath
	if configPath == "" {
		configPath = os.Getenv("LATTICE_CONFIG")
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyExplicitFlags(flags, cfg, o)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	p, err := cfg.LoadParameters()
	if err != nil {
		return fmt.Errorf("failed to load parameters: %w", err)
	}

	e, err := buildEngine(cfg, p, *o.loadPath)
	if err != nil {
		return fmt.Errorf("failed to build engine: %w", err)
	}
	workers := resolveWorkerCount(cfg)
	e.SetWorkerCount(workers)
	e.AuditCycle = cfg.Determinism.AuditCycle

	log.Printf("engine %s ready: size=(%d,%d,%d) cycle=%d alive=%d workers=%d",
		e.ID, e.SizeX, e.SizeY, e.SizeZ, e.Cycle, e.CellCountAlive(), workers)

	queue := replay.NewQueue()
	executor := replay.NewExecutor()

	cycles := *o.cycles
	reportEvery := *o.reportEach
	for i := 0; i < cycles; i++ {
		if err := executor.ApplyDue(e, queue, e.Cycle+1); err != nil {
			return fmt.Errorf("replay action failed at cycle %d: %w", e.Cycle+1, err)
		}
		e.Advance()
		if reportEvery > 0 && int(e.Cycle)%reportEvery == 0 {
			logSnapshot(e)
		}
	}
	if reportEvery == 0 || cycles == 0 {
		logSnapshot(e)
	}

	if *o.savePath != "" {
		if err := saveEngine(e, cfg, *o.savePath, *o.compress, *o.label); err != nil {
			return fmt.Errorf("failed to save engine: %w", err)
		}
	}

	return nil
}

// buildEngine loads a world from loadPath if given, otherwise allocates a
// fresh one from cfg.Lattice and seeds it with p.
func buildEngine(cfg *config.Config, p params.Parameters, loadPath string) (*engine.Engine, error) {
	if loadPath != "" {
		raw, err := os.ReadFile(loadPath)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", loadPath, err)
		}
		hdr, loadedParams, world, err := saveformat.Decode(raw)
		if err != nil {
			return nil, err
		}
		e, err := engine.New(hdr.SizeX, hdr.SizeY, hdr.SizeZ)
		if err != nil {
			return nil, err
		}
		e.Seed = hdr.Seed
		e.Cycle = hdr.Cycle
		e.Params = loadedParams
		e.World = world
		return e, nil
	}

	e, err := engine.New(cfg.Lattice.SizeX, cfg.Lattice.SizeY, cfg.Lattice.SizeZ)
	if err != nil {
		return nil, err
	}
	e.Params = p
	if err := e.Initialize(cfg.Determinism.Seed, cfg.Lattice.Density); err != nil {
		return nil, err
	}
	return e, nil
}

func openRegistry(cfg *config.Config) (*registry.Store, error) {
	return registry.NewStore(cfg.Storage.DataDir)
}

func saveEngine(e *engine.Engine, cfg *config.Config, path string, compress bool, label string) error {
	raw, err := saveformat.Encode(e.SizeX, e.SizeY, e.SizeZ, e.Cycle, e.Seed, e.Params, e.World, compress || cfg.Storage.CompressSaveFiles)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, raw, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	log.Printf("wrote save file %s (%d bytes, cycle=%d)", path, len(raw), e.Cycle)

	if label == "" {
		return nil
	}
	reg, err := openRegistry(cfg)
	if err != nil {
		return err
	}
	if _, err := reg.Put(label, path, e.Cycle, e.StateHash(), true); err != nil {
		return err
	}
	log.Printf("registered snapshot %q -> %s", label, path)
	return nil
}

func logSnapshot(e *engine.Engine) {
	snap := telemetry.Collect(e.Cycle, e.World)
	log.Printf("cycle=%d alive=%d stem=%d soma=%d neuron=%d bedrock=%d mean_e=%.4f mean_c=%.4f mean_p=%.4f hash=%016x",
		snap.Cycle, snap.AliveCount,
		snap.TypeCounts[0], snap.TypeCounts[1], snap.TypeCounts[2], snap.TypeCounts[3],
		snap.MeanEnergy, snap.MeanC, snap.MeanP, e.StateHash())
}

// resolveWorkerCount applies the "0 means logical core count" convention
// WorkerConfig.Count documents.
func resolveWorkerCount(cfg *config.Config) int {
	if cfg.Worker.Count > 0 {
		return cfg.Worker.Count
	}
	return schedule.DefaultWorkerCount()
}

func applyExplicitFlags(flags *pflag.FlagSet, cfg *config.Config, o *cliOverrides) {
	if flags.Changed("workers") {
		cfg.Worker.Count = *o.workers
	}
	if flags.Changed("seed") {
		cfg.Determinism.Seed = *o.seed
	}
	if flags.Changed("density") {
		cfg.Lattice.Density = *o.density
	}
	if flags.Changed("audit") {
		cfg.Determinism.AuditCycle = *o.audit
	}
	if flags.Changed("data-dir") {
		cfg.Storage.DataDir = *o.dataDir
	}
	if flags.Changed("params-file") {
		cfg.ParametersFile = *o.paramsFile
	}
	if flags.Changed("compress") {
		cfg.Storage.CompressSaveFiles = *o.compress
	}
}
