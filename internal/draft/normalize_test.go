package draft

import (
	"testing"

	"github.com/claude/piste/internal/plan"
)

// TestNormalizeTrimsAndClamps verifies the reference case: padded title
// trimmed, out-of-range intensity clamped to 10.
func TestNormalizeTrimsAndClamps(t *testing.T) {
	d := Draft{
		Title:           "  Sprint  ",
		Discipline:      "sprint",
		Description:     " montée en charge ",
		Equipment:       " plots ",
		TargetIntensity: 13,
		SeriesRest:      120,
		SeriesRestUnit:  RestSeconds,
		Visibility:      "private",
	}

	p := Normalize(d)
	if p.Title != "Sprint" {
		t.Errorf("Title = %q, want %q", p.Title, "Sprint")
	}
	if p.Description != "montée en charge" || p.Equipment != "plots" {
		t.Errorf("free text not trimmed: %q / %q", p.Description, p.Equipment)
	}
	if p.TargetIntensity != 10 {
		t.Errorf("TargetIntensity = %d, want clamped to 10", p.TargetIntensity)
	}
}

// TestNormalizeIntensityUnset verifies zero stays absent rather than being
// clamped up to 1.
func TestNormalizeIntensityUnset(t *testing.T) {
	p := Normalize(Draft{Title: "x"})
	if p.TargetIntensity != 0 {
		t.Errorf("TargetIntensity = %d, want 0 (unset)", p.TargetIntensity)
	}

	if got := Normalize(Draft{TargetIntensity: -3}).TargetIntensity; got != 1 {
		t.Errorf("TargetIntensity = %d, want clamped to 1", got)
	}
}

// TestNormalizeRestUnit verifies minutes convert to seconds and the payload
// unit is always seconds.
func TestNormalizeRestUnit(t *testing.T) {
	p := Normalize(Draft{SeriesRest: 3, SeriesRestUnit: RestMinutes})
	if p.SeriesRestInterval != 180 {
		t.Errorf("SeriesRestInterval = %d, want 180", p.SeriesRestInterval)
	}
	if p.SeriesRestUnit != RestSeconds {
		t.Errorf("SeriesRestUnit = %s, want s", p.SeriesRestUnit)
	}

	p = Normalize(Draft{SeriesRest: 90})
	if p.SeriesRestInterval != 90 || p.SeriesRestUnit != RestSeconds {
		t.Errorf("unset unit: %d %s, want 90 s", p.SeriesRestInterval, p.SeriesRestUnit)
	}
}

// TestNormalizeVisibilityDefault verifies unset visibility becomes private.
func TestNormalizeVisibilityDefault(t *testing.T) {
	if got := Normalize(Draft{}).Visibility; got != "private" {
		t.Errorf("Visibility = %q, want private", got)
	}
}

// TestNormalizePure verifies the draft is not modified and the payload does
// not alias its series.
func TestNormalizePure(t *testing.T) {
	d := Draft{
		Title:  "  Sprint  ",
		Series: []plan.Series{plan.NewSeries()},
	}
	p := Normalize(d)

	if d.Title != "  Sprint  " {
		t.Error("Normalize modified the draft title")
	}
	p.Series[0].Segments[0].Vitesse.Distance = 777
	if d.Series[0].Segments[0].Vitesse.Distance == 777 {
		t.Error("payload aliases the draft's segments")
	}
}
