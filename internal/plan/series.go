package plan

import "github.com/google/uuid"

// Series is an ordered group of segments executed back-to-back RepeatCount
// times. Pace fields are meaningful only while EnablePace is set, and the
// load fields only while the selected reference is load-based; Reconcile
// keeps both constraints true after segment edits.
type Series struct {
	ID          uuid.UUID `json:"id"`
	RepeatCount int       `json:"repeatCount"`
	Segments    []Segment `json:"segments"`

	EnablePace    bool   `json:"enablePace"`
	PacePercent   int    `json:"pacePercent,omitempty"`
	PaceReference RefID  `json:"paceReferenceDistance,omitempty"`

	BodyWeightKg float64 `json:"paceReferenceBodyWeightKg,omitempty"`
	MaxMuscuKg   float64 `json:"paceReferenceMaxMuscuKg,omitempty"`
	MaxChariotKg float64 `json:"paceReferenceMaxChariotKg,omitempty"`
}

// NewSeries creates a series with one default segment and no pace target.
func NewSeries() Series {
	return Series{
		ID:          uuid.New(),
		RepeatCount: 1,
		Segments:    []Segment{NewSegment(BlockVitesse)},
	}
}

// Normalize repairs a series decoded from external input: repeat count is
// floored at 1, segments are normalized, and pace config is reconciled
// against the segments actually present.
func (s *Series) Normalize() {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	if s.RepeatCount < 1 {
		s.RepeatCount = 1
	}
	for i := range s.Segments {
		s.Segments[i].Normalize()
	}
	Reconcile(s)
}
