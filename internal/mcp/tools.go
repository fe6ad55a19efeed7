package mcp

import (
	"context"
	"encoding/json"
	"time"

	"github.com/claude/piste/internal/draft"
	"github.com/claude/piste/internal/plan"
	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
)

// --- Tool definitions ---

var toolListTemplates = mcp.NewTool("list_templates",
	mcp.WithDescription("List stored session templates, newest first. Returns title, discipline, visibility and creation time."),
	mcp.WithString("type", mcp.Description("Filter by training discipline (e.g. 'sprint', 'demi-fond')")),
)

var toolGetTemplate = mcp.NewTool("get_template",
	mcp.WithDescription("Retrieve one template with its full normalized payload and derived totals (series count, block count, volume)."),
	mcp.WithString("id", mcp.Required(), mcp.Description("Template UUID")),
)

var toolGetSessions = mcp.NewTool("get_sessions",
	mcp.WithDescription("Query planned sessions in a date range. Each session includes its rendered summary (date, series/block counts, volume)."),
	mcp.WithString("start", mcp.Description("Start date (YYYY-MM-DD). Defaults to 7 days ago.")),
	mcp.WithString("end", mcp.Description("End date (YYYY-MM-DD). Defaults to 30 days ahead.")),
)

var toolPlanTotals = mcp.NewTool("plan_totals",
	mcp.WithDescription("Derive totals for an inline draft without storing it: submit-readiness, series/block counts and formatted volume."),
	mcp.WithString("draft", mcp.Required(), mcp.Description("The draft as a JSON object (same shape as the templates API)")),
)

// --- Tool handlers ---

func (h *handlers) listTemplates(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	rows, err := h.db.QueryTemplates(ctx, req.GetString("type", ""))
	if err != nil {
		h.log.Error("mcp list_templates", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	type entry struct {
		ID         uuid.UUID `json:"id"`
		Title      string    `json:"title"`
		Discipline string    `json:"type"`
		Visibility string    `json:"visibility"`
		CreatedAt  time.Time `json:"createdAt"`
	}
	out := make([]entry, 0, len(rows))
	for _, r := range rows {
		out = append(out, entry{r.ID, r.Title, r.Discipline, r.Visibility, r.CreatedAt})
	}

	result, err := mcp.NewToolResultJSON(out)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getTemplate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	idStr, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError("id parameter is required"), nil
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return mcp.NewToolResultError("invalid template UUID"), nil
	}

	row, err := h.db.GetTemplate(ctx, id)
	if err != nil {
		return mcp.NewToolResultError("template not found"), nil
	}

	var payload draft.SubmitPayload
	if err := json.Unmarshal(row.Payload, &payload); err != nil {
		h.log.Error("mcp get_template: payload decode", "id", id, "error", err)
		return mcp.NewToolResultError("stored payload is unreadable"), nil
	}

	totals := plan.ComputeTotals(payload.Series)
	result, err := mcp.NewToolResultJSON(map[string]any{
		"template": row,
		"totals":   totals,
		"volume":   plan.FormatVolume(totals.VolumeMeters),
	})
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getSessions(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start, end, err := defaultDateRange(req.GetString("start", ""), req.GetString("end", ""))
	if err != nil {
		return mcp.NewToolResultError("invalid date format: " + err.Error()), nil
	}

	rows, err := h.db.QuerySessions(ctx, start, end)
	if err != nil {
		h.log.Error("mcp get_sessions", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	type view struct {
		ID          uuid.UUID    `json:"id"`
		Title       string       `json:"title"`
		ScheduledOn string       `json:"scheduledOn"`
		Summary     plan.Summary `json:"summary"`
	}
	out := make([]view, 0, len(rows))
	for _, r := range rows {
		var payload draft.SubmitPayload
		summary := plan.Summary{Date: r.ScheduledOn.Format("02/01/2006")}
		if err := json.Unmarshal(r.Payload, &payload); err == nil {
			summary = plan.Summarize(r.ScheduledOn, payload.Series)
		}
		out = append(out, view{r.ID, r.Title, r.ScheduledOn.Format("2006-01-02"), summary})
	}

	result, err := mcp.NewToolResultJSON(out)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) planTotals(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, err := req.RequireString("draft")
	if err != nil {
		return mcp.NewToolResultError("draft parameter is required"), nil
	}

	var d draft.Draft
	if err := json.Unmarshal([]byte(raw), &d); err != nil {
		return mcp.NewToolResultError("invalid draft JSON: " + err.Error()), nil
	}

	c := draft.New()
	c.Hydrate(d)
	totals := c.Totals()

	result, err := mcp.NewToolResultJSON(map[string]any{
		"canSubmit": c.CanSubmit(),
		"totals":    totals,
		"volume":    plan.FormatVolume(totals.VolumeMeters),
	})
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

// defaultDateRange parses YYYY-MM-DD bounds, defaulting to a week back
// through a month ahead.
func defaultDateRange(startStr, endStr string) (time.Time, time.Time, error) {
	now := time.Now().UTC().Truncate(24 * time.Hour)
	start := now.AddDate(0, 0, -7)
	end := now.AddDate(0, 1, 0)

	var err error
	if startStr != "" {
		start, err = time.Parse("2006-01-02", startStr)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
	}
	if endStr != "" {
		end, err = time.Parse("2006-01-02", endStr)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
	}
	return start, end, nil
}
