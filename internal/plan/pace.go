package plan

// RefID identifies a pace/intensity reference in the static table.
type RefID string

const (
	Ref50m  RefID = "50m"
	Ref100m RefID = "100m"
	Ref200m RefID = "200m"
	Ref300m RefID = "300m"
	Ref400m RefID = "400m"
	Ref800m RefID = "800m"
	Ref1km  RefID = "1000m"

	RefBodyWeight RefID = "bodyweight"
	RefMaxMuscu   RefID = "max_muscu"
	RefMaxChariot RefID = "max_chariot"
)

// RefKind distinguishes references expressed against a distance record from
// those expressed against a load.
type RefKind string

const (
	RefDistance RefKind = "distance"
	RefLoad     RefKind = "load"
)

// PaceReference is one entry of the static reference table: a named baseline
// a percentage target is expressed against.
type PaceReference struct {
	ID    RefID   `json:"id"`
	Label string  `json:"label"`
	Unit  string  `json:"unit"`
	Kind  RefKind `json:"kind"`
}

var distanceReferences = []PaceReference{
	{Ref50m, "Record 50 m", "s", RefDistance},
	{Ref100m, "Record 100 m", "s", RefDistance},
	{Ref200m, "Record 200 m", "s", RefDistance},
	{Ref300m, "Record 300 m", "s", RefDistance},
	{Ref400m, "Record 400 m", "s", RefDistance},
	{Ref800m, "Record 800 m", "s", RefDistance},
	{Ref1km, "Record 1000 m", "s", RefDistance},
}

var loadReferences = []PaceReference{
	{RefBodyWeight, "Poids de corps", "kg", RefLoad},
	{RefMaxMuscu, "Charge max musculation", "kg", RefLoad},
	{RefMaxChariot, "Charge max chariot", "kg", RefLoad},
}

// References returns the full ordered reference table, distance entries first.
func References() []PaceReference {
	out := make([]PaceReference, 0, len(distanceReferences)+len(loadReferences))
	out = append(out, distanceReferences...)
	out = append(out, loadReferences...)
	return out
}

// RefByID looks up a reference by ID.
func RefByID(id RefID) (PaceReference, bool) {
	for _, r := range References() {
		if r.ID == id {
			return r, true
		}
	}
	return PaceReference{}, false
}

// IsLoadBased reports whether the reference exists and is load-based.
func IsLoadBased(id RefID) bool {
	r, ok := RefByID(id)
	return ok && r.Kind == RefLoad
}

// distanceCapable reports whether a segment's type and mode can contribute to
// the distance volume, regardless of the values currently entered.
func distanceCapable(s Segment) bool {
	switch s.Type {
	case BlockVitesse:
		return true
	case BlockCotes:
		return s.Cotes != nil && s.Cotes.Mode == CotesDistance
	case BlockCustom:
		return s.Custom != nil && s.Custom.MetricEnabled && s.Custom.MetricKind == MetricDistance
	}
	return false
}

// LegalReferences returns the ordered set of reference IDs legal for the
// series: the distance catalog when any segment is distance-capable, plus the
// load catalog when the series contains a muscu segment. An empty result
// means pace targeting is disabled entirely for the series.
func LegalReferences(s Series) []RefID {
	var hasDistance, hasLoad bool
	for _, seg := range s.Segments {
		if distanceCapable(seg) {
			hasDistance = true
		}
		if seg.Type == BlockMuscu {
			hasLoad = true
		}
	}

	var out []RefID
	if hasDistance {
		for _, r := range distanceReferences {
			out = append(out, r.ID)
		}
	}
	if hasLoad {
		for _, r := range loadReferences {
			out = append(out, r.ID)
		}
	}
	return out
}

// Reconcile repairs a series' pace config against its current legal
// reference set. It must run after every structural edit to the segments and
// is idempotent: a second run is a no-op.
func Reconcile(s *Series) {
	legal := LegalReferences(*s)
	if len(legal) == 0 {
		s.EnablePace = false
		s.PacePercent = 0
		s.PaceReference = ""
		clearLoadFields(s)
		return
	}

	if s.EnablePace && !refIn(legal, s.PaceReference) {
		s.PaceReference = defaultReference(legal)
	}
	if !IsLoadBased(s.PaceReference) {
		clearLoadFields(s)
	}
}

// defaultReference picks the deterministic fallback: 100m when legal, then
// bodyweight, then the first legal entry.
func defaultReference(legal []RefID) RefID {
	if refIn(legal, Ref100m) {
		return Ref100m
	}
	if refIn(legal, RefBodyWeight) {
		return RefBodyWeight
	}
	return legal[0]
}

func refIn(legal []RefID, id RefID) bool {
	for _, l := range legal {
		if l == id {
			return true
		}
	}
	return false
}

func clearLoadFields(s *Series) {
	s.BodyWeightKg = 0
	s.MaxMuscuKg = 0
	s.MaxChariotKg = 0
}

// ClampPacePercent snaps a pace percentage into [50,100] on a step of 5.
func ClampPacePercent(p int) int {
	if p < 50 {
		return 50
	}
	if p > 100 {
		return 100
	}
	return p - p%5
}
