package plan

import "strings"

// ValidSegment reports whether a segment is complete enough to submit.
// siblings is the full segment list of the owning series, including the
// segment itself: a repetition count is only required when the segment is
// the sole segment of its series.
//
// Each block type has its own validity function. The rest and repetition
// rules are deliberately uneven across types (récup, PPG, muscu and start
// validate their own duration/rest fields instead of the generic rest); the
// per-variant split keeps those exceptions auditable.
func ValidSegment(s Segment, siblings []Segment) bool {
	sole := len(siblings) == 1

	switch NormalizeBlockType(s.Type) {
	case BlockCotes:
		return validCotes(s.Cotes, s.RestSeconds, sole)
	case BlockPPG:
		return validPPG(s.PPG)
	case BlockMuscu:
		return validMuscu(s.Muscu)
	case BlockRecup:
		return validRecup(s.Recup, sole)
	case BlockStart:
		return validStart(s.Start)
	case BlockCustom:
		return validCustom(s.Custom, s.RestSeconds, sole)
	default:
		return validVitesse(s.Vitesse, s.RestSeconds, sole)
	}
}

func validVitesse(b *VitesseBlock, rest int, sole bool) bool {
	if b == nil {
		return false
	}
	if b.Distance <= 0 || rest <= 0 {
		return false
	}
	return !sole || b.Repetitions > 0
}

func validCotes(b *CotesBlock, rest int, sole bool) bool {
	if b == nil {
		return false
	}
	if b.Mode == CotesDistance && b.Distance <= 0 {
		return false
	}
	if rest <= 0 {
		return false
	}
	return !sole || b.Repetitions > 0
}

func validPPG(b *PPGBlock) bool {
	if b == nil || len(DedupExercises(b.Exercises)) == 0 {
		return false
	}
	if b.RestSeconds <= 0 {
		return false
	}
	if b.Mode == PPGReps {
		return b.Repetitions > 0
	}
	return b.DurationSeconds > 0
}

func validMuscu(b *MuscuBlock) bool {
	return b != nil && len(DedupExercises(b.Exercises)) > 0 && b.Repetitions > 0
}

func validRecup(b *RecupBlock, sole bool) bool {
	if b == nil || b.DurationSeconds <= 0 {
		return false
	}
	return !sole || b.Repetitions > 0
}

func validStart(b *StartBlock) bool {
	return b != nil && b.Count > 0
}

func validCustom(b *CustomBlock, rest int, sole bool) bool {
	if b == nil || rest <= 0 {
		return false
	}
	if !b.MetricEnabled {
		return true
	}
	switch b.MetricKind {
	case MetricDistance:
		return b.MetricDistance > 0
	case MetricDuration:
		return b.MetricDurationSeconds > 0
	case MetricExo:
		for _, e := range b.Exercises {
			if strings.TrimSpace(e) != "" {
				return true
			}
		}
		return false
	case MetricReps:
		return !sole || b.MetricRepetitions > 0
	}
	return false
}

// ValidSeries reports whether a series is complete: at least one repeat, at
// least one segment, and every segment valid with the series' own segment
// list as siblings.
func ValidSeries(s Series) bool {
	if s.RepeatCount < 1 || len(s.Segments) == 0 {
		return false
	}
	for _, seg := range s.Segments {
		if !ValidSegment(seg, s.Segments) {
			return false
		}
	}
	return true
}
