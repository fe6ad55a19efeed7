package plan

import (
	"reflect"
	"testing"

	"github.com/google/uuid"
)

// TestNewSegmentDefaults verifies each block type gets exactly its own
// variant, with per-type defaults applied.
func TestNewSegmentDefaults(t *testing.T) {
	for _, entry := range BlockCatalog() {
		s := NewSegment(entry.Type)
		if s.Type != entry.Type {
			t.Errorf("NewSegment(%s).Type = %s", entry.Type, s.Type)
		}
		if !s.variantPresent() {
			t.Errorf("NewSegment(%s): variant for %s is nil", entry.Type, entry.Type)
		}
		if n := countVariants(s); n != 1 {
			t.Errorf("NewSegment(%s): %d variants set, want 1", entry.Type, n)
		}
		if s.ID == uuid.Nil {
			t.Errorf("NewSegment(%s): zero ID", entry.Type)
		}
	}

	v := NewSegment(BlockVitesse)
	if v.Vitesse.Repetitions != 1 || v.Vitesse.DistanceUnit != UnitMeters {
		t.Errorf("vitesse defaults = %+v, want 1 rep in meters", v.Vitesse)
	}
	c := NewSegment(BlockCotes)
	if c.Cotes.Mode != CotesDistance {
		t.Errorf("cotes default mode = %s, want distance", c.Cotes.Mode)
	}
}

func countVariants(s Segment) int {
	n := 0
	for _, p := range []any{s.Vitesse, s.Cotes, s.PPG, s.Muscu, s.Recup, s.Start, s.Custom} {
		if !reflect.ValueOf(p).IsNil() {
			n++
		}
	}
	return n
}

// TestNewSegmentUnknownType verifies types outside the catalog fall back to
// vitesse instead of failing.
func TestNewSegmentUnknownType(t *testing.T) {
	s := NewSegment(BlockType("fartlek"))
	if s.Type != BlockVitesse {
		t.Errorf("Type = %s, want vitesse", s.Type)
	}
	if s.Vitesse == nil {
		t.Error("vitesse variant not materialized")
	}
}

// TestSwitchType verifies switching a segment's type builds fresh defaults:
// old type-specific fields are discarded and do not resurrect when switching
// back, while ID and block name survive.
func TestSwitchType(t *testing.T) {
	s := NewSegment(BlockMuscu)
	s.BlockName = "Haut du corps"
	s.Muscu.Exercises = []string{"Squat", "Pompes"}
	s.Muscu.Repetitions = 12

	v := SwitchType(s, BlockVitesse)
	if v.Type != BlockVitesse {
		t.Fatalf("Type = %s, want vitesse", v.Type)
	}
	if v.Muscu != nil {
		t.Error("muscu variant survived the switch")
	}
	if v.ID != s.ID {
		t.Error("ID did not survive the switch")
	}
	if v.BlockName != "Haut du corps" {
		t.Errorf("BlockName = %q, want carried over", v.BlockName)
	}

	back := SwitchType(v, BlockMuscu)
	if back.Muscu == nil {
		t.Fatal("muscu variant missing after switching back")
	}
	if len(back.Muscu.Exercises) != 0 || back.Muscu.Repetitions != 0 {
		t.Errorf("stale muscu fields resurrected: %+v", back.Muscu)
	}
}

// TestSwitchTypeSameType verifies switching to the same type still resets the
// variant to defaults.
func TestSwitchTypeSameType(t *testing.T) {
	s := NewSegment(BlockVitesse)
	s.Vitesse.Distance = 400

	reset := SwitchType(s, BlockVitesse)
	if reset.Vitesse.Distance != 0 {
		t.Errorf("distance = %v after same-type switch, want default 0", reset.Vitesse.Distance)
	}
}

// TestSegmentNormalize verifies decoded segments get their tag mapped into
// the catalog, the matching variant materialized and mismatched variants
// dropped.
func TestSegmentNormalize(t *testing.T) {
	s := Segment{Type: "fartlek", Muscu: &MuscuBlock{Exercises: []string{"squat"}}}
	s.Normalize()
	if s.Type != BlockVitesse {
		t.Errorf("Type = %s, want vitesse", s.Type)
	}
	if s.Muscu != nil {
		t.Error("mismatched muscu variant kept")
	}
	if s.Vitesse == nil {
		t.Error("vitesse variant not materialized")
	}

	kept := Segment{Type: BlockRecup, Recup: &RecupBlock{Mode: RecoveryFooting, DurationSeconds: 120}}
	kept.Normalize()
	if kept.Recup == nil || kept.Recup.DurationSeconds != 120 {
		t.Errorf("matching variant not preserved: %+v", kept.Recup)
	}
}

// TestDedupExercises verifies case-insensitive collapsing keeps first
// occurrences in order and drops blanks.
func TestDedupExercises(t *testing.T) {
	cases := []struct {
		name  string
		input []string
		want  []string
	}{
		{"no duplicates", []string{"Squat", "Pompes"}, []string{"Squat", "Pompes"}},
		{"case-insensitive", []string{"Squat", "squat", "SQUAT"}, []string{"Squat"}},
		{"order preserved", []string{"b", "a", "B"}, []string{"b", "a"}},
		{"blanks dropped", []string{" ", "Gainage", ""}, []string{"Gainage"}},
		{"trimmed", []string{" Squat ", "squat"}, []string{"Squat"}},
	}
	for _, tc := range cases {
		got := DedupExercises(tc.input)
		if !reflect.DeepEqual(got, tc.want) {
			t.Errorf("%s: DedupExercises(%v) = %v, want %v", tc.name, tc.input, got, tc.want)
		}
	}
}

// TestDistanceUnitMeters verifies km conversion.
func TestDistanceUnitMeters(t *testing.T) {
	if got := UnitMeters.Meters(400); got != 400 {
		t.Errorf("m: got %v", got)
	}
	if got := UnitKilometers.Meters(1.5); got != 1500 {
		t.Errorf("km: got %v", got)
	}
}
