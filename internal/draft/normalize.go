package draft

import (
	"strings"

	"github.com/claude/piste/internal/plan"
)

// SubmitPayload is the wire shape consumed by the persistence API. Rest is
// always expressed in seconds after normalization.
type SubmitPayload struct {
	Title              string        `json:"title"`
	Type               string        `json:"type"`
	Description        string        `json:"description,omitempty"`
	Equipment          string        `json:"equipment,omitempty"`
	TargetIntensity    int           `json:"targetIntensity,omitempty"`
	Series             []plan.Series `json:"series"`
	SeriesRestInterval int           `json:"seriesRestInterval"`
	SeriesRestUnit     RestUnit      `json:"seriesRestUnit"`
	Visibility         string        `json:"visibility"`
}

// Normalize builds a submission payload from a draft: free-text fields are
// trimmed, target intensity is clamped into [1,10] when set, the rest unit
// is normalized to seconds, and an unset visibility defaults to private.
// Pure; the draft itself is not modified.
func Normalize(d Draft) SubmitPayload {
	p := SubmitPayload{
		Title:       strings.TrimSpace(d.Title),
		Type:        d.Discipline,
		Description: strings.TrimSpace(d.Description),
		Equipment:   strings.TrimSpace(d.Equipment),
		Series:      cloneSeries(d.Series),
		Visibility:  d.Visibility,
	}

	if d.TargetIntensity != 0 {
		p.TargetIntensity = clampIntensity(d.TargetIntensity)
	}

	p.SeriesRestInterval = d.SeriesRest
	if d.SeriesRestUnit == RestMinutes {
		p.SeriesRestInterval = d.SeriesRest * 60
	}
	p.SeriesRestUnit = RestSeconds

	if p.Visibility == "" {
		p.Visibility = "private"
	}
	return p
}

func clampIntensity(v int) int {
	if v < 1 {
		return 1
	}
	if v > 10 {
		return 10
	}
	return v
}
