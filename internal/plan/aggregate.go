package plan

// Totals are the derived human-facing numbers for a list of series.
//
// SeriesCount follows the "séances" semantics: a series repeated three times
// counts three. BlockCount is the raw number of segments, not multiplied by
// repeat counts. The two are surfaced together and must not be confused.
type Totals struct {
	SeriesCount  int     `json:"seriesCount"`
	BlockCount   int     `json:"blockCount"`
	VolumeMeters float64 `json:"volumeMeters"`
}

// SegmentPlannedDistanceMeters returns the planned distance of one execution
// of the segment, in meters. PPG, start and récup blocks never contribute;
// neither do côtes blocks in duration mode or custom blocks without a
// distance metric. Unset distances count as zero.
func SegmentPlannedDistanceMeters(s Segment) float64 {
	switch NormalizeBlockType(s.Type) {
	case BlockPPG, BlockStart, BlockRecup, BlockMuscu:
		return 0
	case BlockCotes:
		if s.Cotes == nil || s.Cotes.Mode == CotesDuration || s.Cotes.Distance <= 0 {
			return 0
		}
		return s.Cotes.DistanceUnit.Meters(s.Cotes.Distance)
	case BlockCustom:
		if s.Custom == nil || !s.Custom.MetricEnabled || s.Custom.MetricKind != MetricDistance || s.Custom.MetricDistance <= 0 {
			return 0
		}
		return s.Custom.MetricDistanceUnit.Meters(s.Custom.MetricDistance)
	default:
		if s.Vitesse == nil || s.Vitesse.Distance <= 0 {
			return 0
		}
		return s.Vitesse.DistanceUnit.Meters(s.Vitesse.Distance)
	}
}

// effectiveRepetitions is the multiplier applied to a segment's planned
// distance: the custom distance metric carries its own repetition count,
// everything else uses the variant's plain repetitions, defaulting to one.
func effectiveRepetitions(s Segment) int {
	if s.Type == BlockCustom && s.Custom != nil && s.Custom.MetricEnabled && s.Custom.MetricKind == MetricDistance {
		if s.Custom.MetricRepetitions > 0 {
			return s.Custom.MetricRepetitions
		}
		return 1
	}
	if r := s.Repetitions(); r > 0 {
		return r
	}
	return 1
}

// SeriesVolumeMeters is the planned distance of one series including its
// repeat count.
func SeriesVolumeMeters(s Series) float64 {
	var sum float64
	for _, seg := range s.Segments {
		sum += SegmentPlannedDistanceMeters(seg) * float64(effectiveRepetitions(seg))
	}
	repeat := s.RepeatCount
	if repeat < 1 {
		repeat = 1
	}
	return sum * float64(repeat)
}

// ComputeTotals aggregates a session's series list into derived totals.
func ComputeTotals(series []Series) Totals {
	var t Totals
	for _, s := range series {
		repeat := s.RepeatCount
		if repeat < 1 {
			repeat = 1
		}
		t.SeriesCount += repeat
		t.BlockCount += len(s.Segments)
		t.VolumeMeters += SeriesVolumeMeters(s)
	}
	return t
}
