// Package params holds the tunable constants governing every law, and the
// permissive key=value loader described for the host's configuration file.
package params

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/spf13/cast"
)

// Parameters is the full recognised parameter block (§6). Every field maps
// 1:1 to an upper-snake-case key accepted by LoadText.
type Parameters struct {
	KD  float64 `msgpack:"k_d"`
	KC  float64 `msgpack:"k_c"`
	KM  float64 `msgpack:"k_m"`
	KAdh float64 `msgpack:"k_adh"`

	CostMovement float64 `msgpack:"cost_movement"`

	SeuilEnergieDivision float64 `msgpack:"seuil_energie_division"`
	CostDivision         float64 `msgpack:"cost_division"`

	// RayonDiffusion and AlphaAttenuation describe the radius and decay of
	// a field-diffusion extension to the "near" sums in the movement score.
	// The engine evaluates "near" over the destination's immediate 26
	// neighbors, so these two are accepted and stored but not consulted by
	// any law.
	RayonDiffusion   float64 `msgpack:"rayon_diffusion"`
	AlphaAttenuation float64 `msgpack:"alpha_attenuation"`

	KChampE float64 `msgpack:"k_champ_e"`
	KChampC float64 `msgpack:"k_champ_c"`

	FacteurEchangeEnergie  float64 `msgpack:"facteur_echange_energie"`
	SeuilDifferenceEnergie float64 `msgpack:"seuil_difference_energie"`
	SeuilSimilariteR       float64 `msgpack:"seuil_similarite_r"`
	MaxFluxEnergie         float64 `msgpack:"max_flux_energie"`

	FacteurEchangePsychique float64 `msgpack:"facteur_echange_psychique"`

	LambdaGradient float64 `msgpack:"lambda_gradient"`
	SeuilSoma      float64 `msgpack:"seuil_soma"`
	SeuilNeuro     float64 `msgpack:"seuil_neuro"`

	TicksNeurauxParPhysique uint32  `msgpack:"ticks_neuraux_par_physique"`
	CoutSpike               float64 `msgpack:"cout_spike"`
	PeriodeRefractaire      uint32  `msgpack:"periode_refractaire"`
	SeuilFire               float64 `msgpack:"seuil_fire"`
	DecaySynapse            float64 `msgpack:"decay_synapse"`
	LearnRate               float64 `msgpack:"learn_rate"`

	TauxOubli float64 `msgpack:"taux_oubli"`

	KThermo          float64 `msgpack:"k_thermo"`
	DPerTick         float64 `msgpack:"d_per_tick"`
	LPerTick         float64 `msgpack:"l_per_tick"`
	SensibiliteSoleil float64 `msgpack:"sensibilite_soleil"`
	HauteurSoleil     float64 `msgpack:"hauteur_soleil"`
	WorldHeight       float64 `msgpack:"world_height"`
}

// Default returns the stock parameter block used by the determinism
// scenarios (§8) when no override file is supplied.
func Default() Parameters {
	return Parameters{
		KD:   1.0,
		KC:   1.0,
		KM:   0.5,
		KAdh: 0.2,

		CostMovement: 0.01,

		SeuilEnergieDivision: 1.8,
		CostDivision:         0.1,

		RayonDiffusion:   1.0,
		AlphaAttenuation: 0.5,

		KChampE: 0.05,
		KChampC: 0.05,

		FacteurEchangeEnergie:  0.1,
		SeuilDifferenceEnergie: 1e-6,
		SeuilSimilariteR:       0.2,
		MaxFluxEnergie:         0.05,

		FacteurEchangePsychique: 0.1,

		LambdaGradient: 0.1,
		SeuilSoma:      0.3,
		SeuilNeuro:     0.7,

		TicksNeurauxParPhysique: 5,
		CoutSpike:               0.05,
		PeriodeRefractaire:      2,
		SeuilFire:               0.85,
		DecaySynapse:            0.99,
		LearnRate:               0.05,

		TauxOubli: 0.01,

		KThermo:           0.001,
		DPerTick:          0.01,
		LPerTick:          0.01,
		SensibiliteSoleil: 0.02,
		HauteurSoleil:     0.6,
		WorldHeight:       64,
	}
}

// fieldSetters binds each recognised key to a setter closure over p, used
// by both LoadText and SetByKey so the key table lives in exactly one place.
func (p *Parameters) fieldSetters() map[string]func(float64) {
	return map[string]func(float64){
		"K_D":                        func(v float64) { p.KD = v },
		"K_C":                        func(v float64) { p.KC = v },
		"K_M":                        func(v float64) { p.KM = v },
		"K_ADH":                      func(v float64) { p.KAdh = v },
		"COST_MOVEMENT":              func(v float64) { p.CostMovement = v },
		"SEUIL_ENERGIE_DIVISION":     func(v float64) { p.SeuilEnergieDivision = v },
		"COST_DIVISION":              func(v float64) { p.CostDivision = v },
		"RAYON_DIFFUSION":            func(v float64) { p.RayonDiffusion = v },
		"ALPHA_ATTENUATION":          func(v float64) { p.AlphaAttenuation = v },
		"K_CHAMP_E":                  func(v float64) { p.KChampE = v },
		"K_CHAMP_C":                  func(v float64) { p.KChampC = v },
		"FACTEUR_ECHANGE_ENERGIE":    func(v float64) { p.FacteurEchangeEnergie = v },
		"SEUIL_DIFFERENCE_ENERGIE":   func(v float64) { p.SeuilDifferenceEnergie = v },
		"SEUIL_SIMILARITE_R":         func(v float64) { p.SeuilSimilariteR = v },
		"MAX_FLUX_ENERGIE":           func(v float64) { p.MaxFluxEnergie = v },
		"FACTEUR_ECHANGE_PSYCHIQUE":  func(v float64) { p.FacteurEchangePsychique = v },
		"LAMBDA_GRADIENT":            func(v float64) { p.LambdaGradient = v },
		"SEUIL_SOMA":                 func(v float64) { p.SeuilSoma = v },
		"SEUIL_NEURO":                func(v float64) { p.SeuilNeuro = v },
		"TICKS_NEURAUX_PAR_PHYSIQUE": func(v float64) { p.TicksNeurauxParPhysique = uint32(v) },
		"COUT_SPIKE":                 func(v float64) { p.CoutSpike = v },
		"PERIODE_REFRACTAIRE":        func(v float64) { p.PeriodeRefractaire = uint32(v) },
		"SEUIL_FIRE":                 func(v float64) { p.SeuilFire = v },
		"DECAY_SYNAPSE":              func(v float64) { p.DecaySynapse = v },
		"LEARN_RATE":                 func(v float64) { p.LearnRate = v },
		"TAUX_OUBLI":                 func(v float64) { p.TauxOubli = v },
		"K_THERMO":                   func(v float64) { p.KThermo = v },
		"D_PER_TICK":                 func(v float64) { p.DPerTick = v },
		"L_PER_TICK":                 func(v float64) { p.LPerTick = v },
		"SENSIBILITE_SOLEIL":         func(v float64) { p.SensibiliteSoleil = v },
		"HAUTEUR_SOLEIL":             func(v float64) { p.HauteurSoleil = v },
		"WORLD_HEIGHT":               func(v float64) { p.WorldHeight = v },
	}
}

// SetByKey applies a single value to the field named by key (the same
// upper-snake-case names LoadText accepts), reporting whether key was
// recognised.
func (p *Parameters) SetByKey(key string, value float64) bool {
	setter, known := p.fieldSetters()[key]
	if !known {
		return false
	}
	setter(value)
	return true
}

// LoadText parses a key=value parameter file: one assignment per line,
// blank lines and lines starting with '#' ignored, unknown keys logged and
// skipped rather than rejected (§7 "Recoverable, logged").
func (p *Parameters) LoadText(r io.Reader) error {
	setters := p.fieldSetters()
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, raw, ok := strings.Cut(line, "=")
		if !ok {
			log.Printf("⚠ WARNING: params: line %d: malformed key=value line %q, skipping", lineNo, line)
			continue
		}
		key = strings.TrimSpace(key)
		raw = strings.TrimSpace(raw)

		setter, known := setters[key]
		if !known {
			log.Printf("⚠ WARNING: params: line %d: unknown parameter key %q, ignoring", lineNo, key)
			continue
		}
		val, err := cast.ToFloat64E(raw)
		if err != nil {
			log.Printf("⚠ WARNING: params: line %d: key %q has non-numeric value %q, skipping", lineNo, key, raw)
			continue
		}
		setter(val)
	}
	return scanner.Err()
}

// LoadTextFile opens path and delegates to LoadText.
func (p *Parameters) LoadTextFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("params: open %s: %w", path, err)
	}
	defer f.Close()
	return p.LoadText(f)
}
