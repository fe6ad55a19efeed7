package plan

import (
	"strings"

	"github.com/google/uuid"
)

// DistanceUnit is the unit a distance field is expressed in.
type DistanceUnit string

const (
	UnitMeters     DistanceUnit = "m"
	UnitKilometers DistanceUnit = "km"
)

// Meters converts a distance in this unit to meters.
func (u DistanceUnit) Meters(distance float64) float64 {
	if u == UnitKilometers {
		return distance * 1000
	}
	return distance
}

// CotesMode selects whether a côtes block is measured by distance or duration.
type CotesMode string

const (
	CotesDistance CotesMode = "distance"
	CotesDuration CotesMode = "duration"
)

// PPGMode selects whether PPG exercises are timed or counted.
type PPGMode string

const (
	PPGTime PPGMode = "time"
	PPGReps PPGMode = "reps"
)

// RecoveryMode is the kind of recovery performed in a récup block.
type RecoveryMode string

const (
	RecoveryMarche  RecoveryMode = "marche"
	RecoveryFooting RecoveryMode = "footing"
	RecoveryPassive RecoveryMode = "passive"
	RecoveryActive  RecoveryMode = "active"
)

// CustomMetricKind selects which metric a custom block tracks when its metric
// gate is enabled.
type CustomMetricKind string

const (
	MetricDistance CustomMetricKind = "distance"
	MetricDuration CustomMetricKind = "duration"
	MetricReps     CustomMetricKind = "reps"
	MetricExo      CustomMetricKind = "exo"
)

// VitesseBlock is a flat sprint/run block measured by distance.
type VitesseBlock struct {
	Distance     float64      `json:"distance"`
	DistanceUnit DistanceUnit `json:"distanceUnit"`
	Repetitions  int          `json:"repetitions"`
}

// CotesBlock is a hill block, measured by distance or by duration.
type CotesBlock struct {
	Mode            CotesMode    `json:"mode"`
	Distance        float64      `json:"distance,omitempty"`
	DistanceUnit    DistanceUnit `json:"distanceUnit,omitempty"`
	DurationSeconds int          `json:"durationSeconds,omitempty"`
	Repetitions     int          `json:"repetitions"`
}

// PPGBlock is a general physical preparation block: a circuit of exercises,
// timed or counted, with its own rest field.
type PPGBlock struct {
	Exercises       []string `json:"exercises"`
	Mode            PPGMode  `json:"mode"`
	DurationSeconds int      `json:"durationSeconds,omitempty"`
	Repetitions     int      `json:"repetitions,omitempty"`
	RestSeconds     int      `json:"restSeconds"`
}

// MuscuBlock is a strength block: exercises with a shared rep count.
type MuscuBlock struct {
	Exercises   []string `json:"exercises"`
	Repetitions int      `json:"repetitions"`
}

// RecupBlock is a recovery block.
type RecupBlock struct {
	Mode            RecoveryMode `json:"mode"`
	DurationSeconds int          `json:"durationSeconds"`
	Repetitions     int          `json:"repetitions"`
}

// StartBlock is a block of starts out of the blocks with an exit zone.
type StartBlock struct {
	Count              int     `json:"count"`
	ExitDistanceMeters float64 `json:"exitDistanceMeters"`
}

// CustomBlock is a free-form block with an optional tracked metric. When
// MetricEnabled is set, MetricKind selects exactly one of the metric fields.
type CustomBlock struct {
	Goal          string           `json:"goal,omitempty"`
	Notes         string           `json:"notes,omitempty"`
	MetricEnabled bool             `json:"metricEnabled"`
	MetricKind    CustomMetricKind `json:"metricKind,omitempty"`

	MetricDistance        float64      `json:"metricDistance,omitempty"`
	MetricDistanceUnit    DistanceUnit `json:"metricDistanceUnit,omitempty"`
	MetricDurationSeconds int          `json:"metricDurationSeconds,omitempty"`
	MetricRepetitions     int          `json:"metricRepetitions,omitempty"`
	Exercises             []string     `json:"exercises,omitempty"`
}

// Segment is one trainable unit inside a series. Exactly one variant pointer
// is non-nil, matching Type. Switching types goes through SwitchType so a
// segment can never carry fields left over from a previous type.
type Segment struct {
	ID        uuid.UUID `json:"id"`
	Type      BlockType `json:"blockType"`
	BlockName string    `json:"blockName,omitempty"`

	// RestSeconds is the generic recovery after the segment. Récup, PPG and
	// start blocks carry their own rest/duration and ignore this field.
	RestSeconds int `json:"restSeconds,omitempty"`

	Vitesse *VitesseBlock `json:"vitesse,omitempty"`
	Cotes   *CotesBlock   `json:"cotes,omitempty"`
	PPG     *PPGBlock     `json:"ppg,omitempty"`
	Muscu   *MuscuBlock   `json:"muscu,omitempty"`
	Recup   *RecupBlock   `json:"recup,omitempty"`
	Start   *StartBlock   `json:"start,omitempty"`
	Custom  *CustomBlock  `json:"custom,omitempty"`
}

// NewSegment creates a segment of the given type with that type's default
// fields and a fresh ID. Unknown types become vitesse.
func NewSegment(t BlockType) Segment {
	s := Segment{ID: uuid.New(), Type: NormalizeBlockType(t)}
	s.applyDefaults()
	return s
}

func (s *Segment) applyDefaults() {
	s.Vitesse, s.Cotes, s.PPG, s.Muscu, s.Recup, s.Start, s.Custom = nil, nil, nil, nil, nil, nil, nil

	switch s.Type {
	case BlockCotes:
		s.Cotes = &CotesBlock{Mode: CotesDistance, DistanceUnit: UnitMeters, Repetitions: 1}
	case BlockPPG:
		s.PPG = &PPGBlock{Mode: PPGTime}
	case BlockMuscu:
		s.Muscu = &MuscuBlock{}
	case BlockRecup:
		s.Recup = &RecupBlock{Mode: RecoveryMarche, Repetitions: 1}
	case BlockStart:
		s.Start = &StartBlock{}
	case BlockCustom:
		s.Custom = &CustomBlock{}
	default:
		s.Vitesse = &VitesseBlock{DistanceUnit: UnitMeters, Repetitions: 1}
	}
}

// SwitchType returns a fresh default segment of the new type carrying over
// only the ID and block name. Old type-specific fields are discarded, never
// merged, so they cannot resurface after switching back.
func SwitchType(s Segment, t BlockType) Segment {
	next := NewSegment(t)
	next.ID = s.ID
	next.BlockName = s.BlockName
	return next
}

// Normalize repairs a segment decoded from external input: the type tag is
// mapped into the catalog and the variant matching the tag is materialized
// with defaults if missing. Variants not matching the tag are dropped.
func (s *Segment) Normalize() {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	s.Type = NormalizeBlockType(s.Type)

	keep := s.variantPresent()
	saved := *s
	s.applyDefaults()
	if keep {
		switch s.Type {
		case BlockVitesse:
			s.Vitesse = saved.Vitesse
		case BlockCotes:
			s.Cotes = saved.Cotes
		case BlockPPG:
			s.PPG = saved.PPG
		case BlockMuscu:
			s.Muscu = saved.Muscu
		case BlockRecup:
			s.Recup = saved.Recup
		case BlockStart:
			s.Start = saved.Start
		case BlockCustom:
			s.Custom = saved.Custom
		}
	}
}

func (s *Segment) variantPresent() bool {
	switch s.Type {
	case BlockVitesse:
		return s.Vitesse != nil
	case BlockCotes:
		return s.Cotes != nil
	case BlockPPG:
		return s.PPG != nil
	case BlockMuscu:
		return s.Muscu != nil
	case BlockRecup:
		return s.Recup != nil
	case BlockStart:
		return s.Start != nil
	case BlockCustom:
		return s.Custom != nil
	}
	return false
}

// Repetitions returns the segment's repetition count for its own variant, or
// 0 when the variant has no repetition field (ppg in time mode, start).
func (s Segment) Repetitions() int {
	switch s.Type {
	case BlockVitesse:
		if s.Vitesse != nil {
			return s.Vitesse.Repetitions
		}
	case BlockCotes:
		if s.Cotes != nil {
			return s.Cotes.Repetitions
		}
	case BlockPPG:
		if s.PPG != nil && s.PPG.Mode == PPGReps {
			return s.PPG.Repetitions
		}
	case BlockMuscu:
		if s.Muscu != nil {
			return s.Muscu.Repetitions
		}
	case BlockRecup:
		if s.Recup != nil {
			return s.Recup.Repetitions
		}
	case BlockCustom:
		if s.Custom != nil && s.Custom.MetricEnabled && s.Custom.MetricKind == MetricReps {
			return s.Custom.MetricRepetitions
		}
	}
	return 0
}

// DedupExercises trims entries and collapses duplicates case-insensitively,
// keeping first occurrences in order. Blank entries are dropped.
func DedupExercises(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		key := strings.ToLower(n)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, n)
	}
	return out
}
