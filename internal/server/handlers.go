package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/claude/piste/internal/draft"
	"github.com/claude/piste/internal/plan"
	"github.com/claude/piste/internal/storage"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func (s *Server) handleBlockCatalog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, plan.BlockCatalog())
}

func (s *Server) handlePaceReferences(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, plan.References())
}

// previewResponse is the derivation of a draft without persistence: what the
// form needs to decide whether submit is possible and what to show.
type previewResponse struct {
	CanSubmit      bool           `json:"canSubmit"`
	Totals         plan.Totals    `json:"totals"`
	Volume         string         `json:"volume,omitempty"`
	ShowSeriesRest bool           `json:"showSeriesRest"`
	Series         []seriesReview `json:"series"`
}

type seriesReview struct {
	ID              uuid.UUID    `json:"id"`
	Valid           bool         `json:"valid"`
	LegalReferences []plan.RefID `json:"legalReferences"`
}

func derive(c *draft.Controller) previewResponse {
	d := c.Draft()
	resp := previewResponse{
		CanSubmit:      c.CanSubmit(),
		Totals:         c.Totals(),
		ShowSeriesRest: c.ShowSeriesRest(),
		Series:         make([]seriesReview, 0, len(d.Series)),
	}
	if v := plan.FormatVolume(resp.Totals.VolumeMeters); !plan.NoVolume(v) {
		resp.Volume = v
	}
	for _, sr := range d.Series {
		resp.Series = append(resp.Series, seriesReview{
			ID:              sr.ID,
			Valid:           plan.ValidSeries(sr),
			LegalReferences: plan.LegalReferences(sr),
		})
	}
	return resp
}

func (s *Server) handlePreviewTemplate(w http.ResponseWriter, r *http.Request) {
	var d draft.Draft
	if err := json.NewDecoder(r.Body).Decode(&d); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	c := draft.New()
	c.Hydrate(d)
	writeJSON(w, http.StatusOK, derive(c))
}

func (s *Server) handleCreateTemplate(w http.ResponseWriter, r *http.Request) {
	var d draft.Draft
	if err := json.NewDecoder(r.Body).Decode(&d); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	c := draft.New()
	c.Hydrate(d)
	if !c.CanSubmit() {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"error":  "template is not complete",
			"review": derive(c),
		})
		return
	}

	payload := draft.Normalize(c.Draft())
	raw, err := json.Marshal(payload)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	row := storage.TemplateRow{
		ID:         uuid.New(),
		Title:      payload.Title,
		Discipline: payload.Type,
		Visibility: payload.Visibility,
		Payload:    raw,
		CreatedAt:  time.Now().UTC(),
	}
	if _, err := s.db.InsertTemplate(r.Context(), row); err != nil {
		s.log.Error("template insert failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"id":     row.ID,
		"totals": c.Totals(),
	})
}

func (s *Server) handleListTemplates(w http.ResponseWriter, r *http.Request) {
	rows, err := s.db.QueryTemplates(r.Context(), r.URL.Query().Get("type"))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

func (s *Server) handleGetTemplate(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid template ID"})
		return
	}

	row, err := s.db.GetTemplate(r.Context(), id)
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "template not found"})
		return
	}
	writeJSON(w, http.StatusOK, row)
}

func (s *Server) handleDeleteTemplate(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid template ID"})
		return
	}

	deleted, err := s.db.DeleteTemplate(r.Context(), id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if !deleted {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "template not found"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

// createSessionRequest plans a session: either from a stored template or
// from an inline draft.
type createSessionRequest struct {
	TemplateID  *uuid.UUID   `json:"templateId,omitempty"`
	ScheduledOn string       `json:"scheduledOn"`
	Draft       *draft.Draft `json:"draft,omitempty"`
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	scheduled, err := time.Parse("2006-01-02", req.ScheduledOn)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "scheduledOn must be YYYY-MM-DD"})
		return
	}

	var title string
	var raw json.RawMessage

	switch {
	case req.TemplateID != nil:
		row, err := s.db.GetTemplate(r.Context(), *req.TemplateID)
		if err != nil {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "template not found"})
			return
		}
		title, raw = row.Title, row.Payload
	case req.Draft != nil:
		c := draft.New()
		c.Hydrate(*req.Draft)
		if !c.CanSubmit() {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
				"error":  "session draft is not complete",
				"review": derive(c),
			})
			return
		}
		payload := draft.Normalize(c.Draft())
		raw, err = json.Marshal(payload)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
		title = payload.Title
	default:
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "templateId or draft is required"})
		return
	}

	row := storage.SessionRow{
		ID:          uuid.New(),
		TemplateID:  req.TemplateID,
		Title:       title,
		ScheduledOn: scheduled,
		Payload:     raw,
		CreatedAt:   time.Now().UTC(),
	}
	if _, err := s.db.InsertSession(r.Context(), row); err != nil {
		s.log.Error("session insert failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"id": row.ID})
}

// sessionView is a stored session plus its rendered summary.
type sessionView struct {
	storage.SessionRow
	Summary plan.Summary `json:"summary"`
}

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	start, end, err := parseDateRange(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	rows, err := s.db.QuerySessions(r.Context(), start, end)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	views := make([]sessionView, 0, len(rows))
	for _, row := range rows {
		views = append(views, sessionView{
			SessionRow: row,
			Summary:    summarizeStored(row),
		})
	}
	writeJSON(w, http.StatusOK, views)
}

// summarizeStored renders the totals of a stored session payload. A payload
// that no longer decodes still gets a date-only summary rather than an error.
func summarizeStored(row storage.SessionRow) plan.Summary {
	var p draft.SubmitPayload
	if err := json.Unmarshal(row.Payload, &p); err != nil {
		return plan.Summary{Date: row.ScheduledOn.Format("02/01/2006")}
	}
	return plan.Summarize(row.ScheduledOn, p.Series)
}

// parseDateRange reads start/end query params (YYYY-MM-DD), defaulting to a
// window from a week back to a month ahead.
func parseDateRange(r *http.Request) (time.Time, time.Time, error) {
	now := time.Now().UTC().Truncate(24 * time.Hour)
	start := now.AddDate(0, 0, -7)
	end := now.AddDate(0, 1, 0)

	if v := r.URL.Query().Get("start"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid start date %q", v)
		}
		start = t
	}
	if v := r.URL.Query().Get("end"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid end date %q", v)
		}
		end = t
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("end before start")
	}
	return start, end, nil
}
