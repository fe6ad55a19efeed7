package draft

import (
	"strings"

	"github.com/claude/piste/internal/plan"
	"github.com/google/uuid"
)

// RestUnit is the unit the between-series rest is entered in.
type RestUnit string

const (
	RestSeconds RestUnit = "s"
	RestMinutes RestUnit = "min"
)

// Draft is the editable state of a session template. It is owned exclusively
// by one Controller; nothing outside the controller holds a reference to its
// series or segments.
type Draft struct {
	Title           string        `json:"title"`
	Discipline      string        `json:"type"`
	Description     string        `json:"description,omitempty"`
	Equipment       string        `json:"equipment,omitempty"`
	TargetIntensity int           `json:"targetIntensity,omitempty"`
	Series          []plan.Series `json:"series"`
	SeriesRest      int           `json:"seriesRestInterval"`
	SeriesRestUnit  RestUnit      `json:"seriesRestUnit,omitempty"`
	Visibility      string        `json:"visibility,omitempty"`
}

// Controller owns one draft and is the only writer to it. Setters
// short-circuit when the new value equals the old one, so no derivation runs
// on no-op edits. Structural segment edits reconcile the owning series' pace
// config before returning.
type Controller struct {
	d Draft
}

// New creates a controller with an empty default draft.
func New() *Controller {
	return &Controller{d: defaultDraft()}
}

func defaultDraft() Draft {
	return Draft{
		Series:         []plan.Series{plan.NewSeries()},
		SeriesRestUnit: RestSeconds,
		Visibility:     "private",
	}
}

// Draft returns a deep copy of the current draft.
func (c *Controller) Draft() Draft {
	return cloneDraft(c.d)
}

func cloneDraft(d Draft) Draft {
	out := d
	out.Series = cloneSeries(d.Series)
	return out
}

func cloneSeries(in []plan.Series) []plan.Series {
	out := make([]plan.Series, len(in))
	for i, s := range in {
		out[i] = s
		out[i].Segments = make([]plan.Segment, len(s.Segments))
		copy(out[i].Segments, s.Segments)
		for j := range out[i].Segments {
			cloneVariant(&out[i].Segments[j])
		}
	}
	return out
}

func cloneVariant(s *plan.Segment) {
	switch {
	case s.Vitesse != nil:
		v := *s.Vitesse
		s.Vitesse = &v
	case s.Cotes != nil:
		v := *s.Cotes
		s.Cotes = &v
	case s.PPG != nil:
		v := *s.PPG
		v.Exercises = append([]string(nil), v.Exercises...)
		s.PPG = &v
	case s.Muscu != nil:
		v := *s.Muscu
		v.Exercises = append([]string(nil), v.Exercises...)
		s.Muscu = &v
	case s.Recup != nil:
		v := *s.Recup
		s.Recup = &v
	case s.Start != nil:
		v := *s.Start
		s.Start = &v
	case s.Custom != nil:
		v := *s.Custom
		v.Exercises = append([]string(nil), v.Exercises...)
		s.Custom = &v
	}
}

// Reset discards the draft and starts a fresh one.
func (c *Controller) Reset() {
	c.d = defaultDraft()
}

// Hydrate replaces the whole draft with a loaded template. The incoming
// draft is normalized (repeat counts floored, segment variants repaired,
// pace config reconciled) before it becomes current; the previous draft is
// untouched until then, so a failed load upstream never leaves a partial
// overwrite.
func (c *Controller) Hydrate(d Draft) {
	d = cloneDraft(d)
	if d.SeriesRestUnit == "" {
		d.SeriesRestUnit = RestSeconds
	}
	if d.Visibility == "" {
		d.Visibility = "private"
	}
	for i := range d.Series {
		d.Series[i].Normalize()
	}
	c.d = d
}

// --- Scalar field setters ---

// SetTitle sets the draft title.
func (c *Controller) SetTitle(v string) {
	if c.d.Title == v {
		return
	}
	c.d.Title = v
}

// UpdateTitle applies a functional update reading the previous title.
func (c *Controller) UpdateTitle(fn func(string) string) {
	c.SetTitle(fn(c.d.Title))
}

// SetDiscipline sets the training discipline tag.
func (c *Controller) SetDiscipline(v string) {
	if c.d.Discipline == v {
		return
	}
	c.d.Discipline = v
}

// SetDescription sets the free-text description.
func (c *Controller) SetDescription(v string) {
	if c.d.Description == v {
		return
	}
	c.d.Description = v
}

// SetEquipment sets the equipment note.
func (c *Controller) SetEquipment(v string) {
	if c.d.Equipment == v {
		return
	}
	c.d.Equipment = v
}

// SetTargetIntensity sets the 1–10 target intensity; zero means unset.
func (c *Controller) SetTargetIntensity(v int) {
	if c.d.TargetIntensity == v {
		return
	}
	c.d.TargetIntensity = v
}

// UpdateTargetIntensity applies a functional update reading the previous
// intensity.
func (c *Controller) UpdateTargetIntensity(fn func(int) int) {
	c.SetTargetIntensity(fn(c.d.TargetIntensity))
}

// SetSeriesRest sets the rest between series.
func (c *Controller) SetSeriesRest(interval int, unit RestUnit) {
	if unit == "" {
		unit = RestSeconds
	}
	if c.d.SeriesRest == interval && c.d.SeriesRestUnit == unit {
		return
	}
	c.d.SeriesRest = interval
	c.d.SeriesRestUnit = unit
}

// SetVisibility sets the template visibility.
func (c *Controller) SetVisibility(v string) {
	if c.d.Visibility == v {
		return
	}
	c.d.Visibility = v
}

// --- Series operations ---

// AddSeries appends a new default series and returns its ID.
func (c *Controller) AddSeries() uuid.UUID {
	s := plan.NewSeries()
	c.d.Series = append(c.d.Series, s)
	return s.ID
}

// RemoveSeries deletes a series by ID. Unknown IDs are ignored.
func (c *Controller) RemoveSeries(id uuid.UUID) {
	for i, s := range c.d.Series {
		if s.ID == id {
			c.d.Series = append(c.d.Series[:i], c.d.Series[i+1:]...)
			return
		}
	}
}

// UpdateSeries applies a mutation to one series, then reconciles its pace
// config. Unknown IDs are ignored.
func (c *Controller) UpdateSeries(id uuid.UUID, fn func(*plan.Series)) {
	s := c.findSeries(id)
	if s == nil {
		return
	}
	fn(s)
	if s.RepeatCount < 1 {
		s.RepeatCount = 1
	}
	plan.Reconcile(s)
}

func (c *Controller) findSeries(id uuid.UUID) *plan.Series {
	for i := range c.d.Series {
		if c.d.Series[i].ID == id {
			return &c.d.Series[i]
		}
	}
	return nil
}

// SetRepeatCount sets a series' repeat count, floored at one.
func (c *Controller) SetRepeatCount(id uuid.UUID, n int) {
	if n < 1 {
		n = 1
	}
	s := c.findSeries(id)
	if s == nil || s.RepeatCount == n {
		return
	}
	s.RepeatCount = n
}

// --- Segment operations ---

// AddSegment appends a default segment of the given type to a series and
// returns its ID. The series' pace config is reconciled against the new
// segment set.
func (c *Controller) AddSegment(seriesID uuid.UUID, t plan.BlockType) uuid.UUID {
	s := c.findSeries(seriesID)
	if s == nil {
		return uuid.Nil
	}
	seg := plan.NewSegment(t)
	s.Segments = append(s.Segments, seg)
	plan.Reconcile(s)
	return seg.ID
}

// RemoveSegment deletes a segment from a series and reconciles pace config.
func (c *Controller) RemoveSegment(seriesID, segmentID uuid.UUID) {
	s := c.findSeries(seriesID)
	if s == nil {
		return
	}
	for i, seg := range s.Segments {
		if seg.ID == segmentID {
			s.Segments = append(s.Segments[:i], s.Segments[i+1:]...)
			plan.Reconcile(s)
			return
		}
	}
}

// SwitchSegmentType replaces a segment with a fresh default of the new type,
// keeping only its ID and block name, and reconciles pace config.
func (c *Controller) SwitchSegmentType(seriesID, segmentID uuid.UUID, t plan.BlockType) {
	s := c.findSeries(seriesID)
	if s == nil {
		return
	}
	for i, seg := range s.Segments {
		if seg.ID == segmentID {
			if plan.NormalizeBlockType(t) == seg.Type {
				return
			}
			s.Segments[i] = plan.SwitchType(seg, t)
			plan.Reconcile(s)
			return
		}
	}
}

// UpdateSegment applies a mutation to one segment, then reconciles the
// owning series' pace config. The mutation must not change the segment's
// type; use SwitchSegmentType for that.
func (c *Controller) UpdateSegment(seriesID, segmentID uuid.UUID, fn func(*plan.Segment)) {
	s := c.findSeries(seriesID)
	if s == nil {
		return
	}
	for i := range s.Segments {
		if s.Segments[i].ID == segmentID {
			t := s.Segments[i].Type
			fn(&s.Segments[i])
			s.Segments[i].Type = t
			plan.Reconcile(s)
			return
		}
	}
}

// --- Pace operations ---

// SetEnablePace toggles pace targeting for a series and reconciles the
// reference against the legal set.
func (c *Controller) SetEnablePace(seriesID uuid.UUID, enabled bool) {
	s := c.findSeries(seriesID)
	if s == nil || s.EnablePace == enabled {
		return
	}
	s.EnablePace = enabled
	plan.Reconcile(s)
}

// SetPacePercent sets a series' pace percentage, snapped to [50,100] step 5.
func (c *Controller) SetPacePercent(seriesID uuid.UUID, percent int) {
	percent = plan.ClampPacePercent(percent)
	s := c.findSeries(seriesID)
	if s == nil || s.PacePercent == percent {
		return
	}
	s.PacePercent = percent
}

// SetPaceReference selects a series' pace reference. References outside the
// series' legal set are replaced by the deterministic default during
// reconciliation.
func (c *Controller) SetPaceReference(seriesID uuid.UUID, ref plan.RefID) {
	s := c.findSeries(seriesID)
	if s == nil || s.PaceReference == ref {
		return
	}
	s.PaceReference = ref
	plan.Reconcile(s)
}

// --- Derivations ---

// CanSubmit reports whether the draft is complete enough to normalize and
// submit: non-blank title, a discipline, a target intensity that is unset or
// within range, a positive between-series rest, and at least one series with
// every series valid.
func (c *Controller) CanSubmit() bool {
	d := &c.d
	if strings.TrimSpace(d.Title) == "" || d.Discipline == "" {
		return false
	}
	if d.TargetIntensity != 0 && (d.TargetIntensity < 1 || d.TargetIntensity > 10) {
		return false
	}
	if d.SeriesRest <= 0 {
		return false
	}
	if len(d.Series) == 0 {
		return false
	}
	for _, s := range d.Series {
		if !plan.ValidSeries(s) {
			return false
		}
	}
	return true
}

// Totals returns the draft's derived aggregates.
func (c *Controller) Totals() plan.Totals {
	return plan.ComputeTotals(c.d.Series)
}

// ShowSeriesRest reports whether the between-series rest applies: more than
// one series, or any series repeating.
func (c *Controller) ShowSeriesRest() bool {
	if len(c.d.Series) > 1 {
		return true
	}
	for _, s := range c.d.Series {
		if s.RepeatCount >= 2 {
			return true
		}
	}
	return false
}
