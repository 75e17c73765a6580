package params

import (
	"strings"
	"testing"
)

func TestDefaultPopulatesAllFields(t *testing.T) {
	p := Default()
	if p.KD == 0 || p.SeuilEnergieDivision == 0 || p.SeuilFire == 0 || p.WorldHeight == 0 {
		t.Errorf("Default() left a field at its zero value unexpectedly: %+v", p)
	}
	if p.TicksNeurauxParPhysique == 0 {
		t.Error("TicksNeurauxParPhysique should default to a positive sub-tick count")
	}
}

func TestLoadTextOverridesRecognisedKeys(t *testing.T) {
	p := Default()
	text := "K_D=2.5\nSEUIL_FIRE=0.9\n# a comment\n\nLEARN_RATE=0.2\n"
	if err := p.LoadText(strings.NewReader(text)); err != nil {
		t.Fatalf("LoadText returned error: %v", err)
	}
	if p.KD != 2.5 {
		t.Errorf("K_D = %v, want 2.5", p.KD)
	}
	if p.SeuilFire != 0.9 {
		t.Errorf("SEUIL_FIRE = %v, want 0.9", p.SeuilFire)
	}
	if p.LearnRate != 0.2 {
		t.Errorf("LEARN_RATE = %v, want 0.2", p.LearnRate)
	}
}

func TestLoadTextSkipsUnknownAndMalformedLines(t *testing.T) {
	p := Default()
	original := p
	text := "NOT_A_KEY=1\nmalformed line without equals\nK_D=bogus\n"
	if err := p.LoadText(strings.NewReader(text)); err != nil {
		t.Fatalf("LoadText returned error: %v", err)
	}
	if p.KD != original.KD {
		t.Errorf("a non-numeric value should leave K_D untouched, got %v", p.KD)
	}
}

func TestSetByKey(t *testing.T) {
	p := Default()
	if !p.SetByKey("K_D", 3.0) {
		t.Fatal("SetByKey(K_D) should recognise the key")
	}
	if p.KD != 3.0 {
		t.Errorf("K_D = %v, want 3.0", p.KD)
	}
	if p.SetByKey("NOT_A_KEY", 1.0) {
		t.Error("SetByKey should report false for an unrecognised key")
	}
}
