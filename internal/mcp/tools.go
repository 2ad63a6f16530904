package mcp

import (
	"context"
	"time"

	"github.com/claude/trainlog/internal/entries"
	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
)

func parseFlexTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err == nil {
		return t, nil
	}
	t, err = time.Parse("2006-01-02", s)
	if err == nil {
		return t, nil
	}
	return time.Time{}, err
}

// timeRange parses optional start/end strings. Absent values stay zero,
// which the filter treats as unbounded.
func timeRange(startStr, endStr string) (time.Time, time.Time, error) {
	var start, end time.Time
	var err error

	if startStr != "" {
		start, err = parseFlexTime(startStr)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
	}
	if endStr != "" {
		end, err = parseFlexTime(endStr)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
	}
	return start, end, nil
}

// baseFilter builds the date and comment criteria shared by all entry kinds.
func baseFilter(req mcp.CallToolRequest) (entries.EntryFilter, error) {
	var f entries.EntryFilter

	start, end, err := timeRange(req.GetString("start", ""), req.GetString("end", ""))
	if err != nil {
		return f, err
	}
	f.Start = start
	f.End = end
	f.CommentPattern = req.GetString("comment", "")
	f.RegexMode = req.GetBool("regex", false)
	return f, nil
}

// --- Tool definitions ---

var toolSearchExercises = mcp.NewTool("search_exercises",
	mcp.WithDescription("Search exercises by sport type, subtype, equipment, intensity, date range and comment text. All criteria are optional and combined with AND."),
	mcp.WithString("start", mcp.Description("Start date (ISO 8601 or YYYY-MM-DD). Unbounded when omitted.")),
	mcp.WithString("end", mcp.Description("End date. Unbounded when omitted.")),
	mcp.WithNumber("sport_type", mcp.Description("Sport type ID (see list_sport_types)")),
	mcp.WithNumber("sport_subtype", mcp.Description("Sport subtype ID")),
	mcp.WithNumber("equipment", mcp.Description("Equipment ID. Excludes exercises without equipment.")),
	mcp.WithString("intensity", mcp.Description("Intensity level"), mcp.Enum("minimum", "low", "normal", "high", "maximum", "intervals")),
	mcp.WithString("comment", mcp.Description("Comment text to match (case-insensitive substring, or a regular expression with regex=true)")),
	mcp.WithBoolean("regex", mcp.Description("Treat the comment pattern as a case-sensitive regular expression")),
)

var toolGetExercise = mcp.NewTool("get_exercise",
	mcp.WithDescription("Fetch a single exercise by ID with full sport type, subtype and equipment details."),
	mcp.WithString("id", mcp.Required(), mcp.Description("Exercise UUID")),
)

var toolListSportTypes = mcp.NewTool("list_sport_types",
	mcp.WithDescription("List all sport types with their subtypes and equipment."),
)

var toolGetNotes = mcp.NewTool("get_notes",
	mcp.WithDescription("Retrieve training notes, optionally filtered by date range and comment text."),
	mcp.WithString("start", mcp.Description("Start date. Unbounded when omitted.")),
	mcp.WithString("end", mcp.Description("End date. Unbounded when omitted.")),
	mcp.WithString("comment", mcp.Description("Comment text to match")),
	mcp.WithBoolean("regex", mcp.Description("Treat the comment pattern as a case-sensitive regular expression")),
)

var toolGetWeightHistory = mcp.NewTool("get_weight_history",
	mcp.WithDescription("Retrieve body weight entries, optionally filtered by date range."),
	mcp.WithString("start", mcp.Description("Start date. Unbounded when omitted.")),
	mcp.WithString("end", mcp.Description("End date. Unbounded when omitted.")),
)

// --- Tool handlers ---

func (h *handlers) searchExercises(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	f, err := baseFilter(req)
	if err != nil {
		return mcp.NewToolResultError("invalid date format: " + err.Error()), nil
	}
	f.Kind = entries.KindExercise

	if id := req.GetInt("sport_type", 0); id != 0 {
		f.SportType = &entries.SportType{ID: int64(id)}
	}
	if id := req.GetInt("sport_subtype", 0); id != 0 {
		f.SportSubType = &entries.SportSubType{ID: int64(id)}
	}
	if id := req.GetInt("equipment", 0); id != 0 {
		f.Equipment = &entries.Equipment{ID: int64(id)}
	}
	if s := req.GetString("intensity", ""); s != "" {
		intensity, err := entries.ParseIntensity(s)
		if err != nil {
			return mcp.NewToolResultError("invalid intensity: " + err.Error()), nil
		}
		f.Intensity = &intensity
	}

	exercises, err := h.ds.SearchExercises(ctx, f)
	if err != nil {
		h.log.Error("mcp search_exercises", "error", err)
		return mcp.NewToolResultError("search failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(exercises)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getExercise(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	idStr, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError("id parameter is required"), nil
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return mcp.NewToolResultError("invalid exercise ID: " + err.Error()), nil
	}

	exercise, err := h.ds.GetExercise(ctx, id)
	if err != nil {
		h.log.Error("mcp get_exercise", "error", err)
		return mcp.NewToolResultError("lookup failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(exercise)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) listSportTypes(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	types, err := h.ds.SportTypes(ctx)
	if err != nil {
		h.log.Error("mcp list_sport_types", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(types)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getNotes(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	f, err := baseFilter(req)
	if err != nil {
		return mcp.NewToolResultError("invalid date format: " + err.Error()), nil
	}
	f.Kind = entries.KindNote

	notes, err := h.ds.SearchNotes(ctx, f)
	if err != nil {
		h.log.Error("mcp get_notes", "error", err)
		return mcp.NewToolResultError("search failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(notes)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getWeightHistory(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	f, err := baseFilter(req)
	if err != nil {
		return mcp.NewToolResultError("invalid date format: " + err.Error()), nil
	}
	f.Kind = entries.KindWeight

	weights, err := h.ds.WeightHistory(ctx, f)
	if err != nil {
		h.log.Error("mcp get_weight_history", "error", err)
		return mcp.NewToolResultError("search failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(weights)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}
