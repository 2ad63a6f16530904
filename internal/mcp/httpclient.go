package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/claude/trainlog/internal/entries"
	"github.com/google/uuid"
)

// HTTPClient implements DataSource by calling the TrainLog REST API.
// Used for remote MCP mode where the binary runs locally (stdio) but
// the diary lives on the remote server (accessed over Tailscale).
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

// Compile-time check: *HTTPClient satisfies DataSource.
var _ DataSource = (*HTTPClient)(nil)

// NewHTTPClient creates an HTTPClient targeting the given base URL.
func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *HTTPClient) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("httpclient: create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("httpclient: %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("httpclient: read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("httpclient: %s returned %d: %s", path, resp.StatusCode, body)
	}

	return body, nil
}

// filterParams maps an EntryFilter onto the REST API's query parameters.
func filterParams(f entries.EntryFilter) url.Values {
	v := url.Values{}
	if !f.Start.IsZero() {
		v.Set("from", f.Start.Format(time.RFC3339))
	}
	if !f.End.IsZero() {
		v.Set("to", f.End.Format(time.RFC3339))
	}
	if f.SportType != nil {
		v.Set("sport_type", strconv.FormatInt(f.SportType.ID, 10))
	}
	if f.SportSubType != nil {
		v.Set("sport_subtype", strconv.FormatInt(f.SportSubType.ID, 10))
	}
	if f.Equipment != nil {
		v.Set("equipment", strconv.FormatInt(f.Equipment.ID, 10))
	}
	if f.Intensity != nil {
		v.Set("intensity", f.Intensity.String())
	}
	if f.CommentPattern != "" {
		v.Set("comment", f.CommentPattern)
	}
	if f.RegexMode {
		v.Set("regex", "true")
	}
	return v
}

func (c *HTTPClient) SportTypes(ctx context.Context) (entries.SportTypeList, error) {
	body, err := c.get(ctx, "/api/v1/sporttypes", nil)
	if err != nil {
		return nil, err
	}

	var types entries.SportTypeList
	if err := json.Unmarshal(body, &types); err != nil {
		return nil, fmt.Errorf("httpclient: decode sport types: %w", err)
	}
	return types, nil
}

func (c *HTTPClient) SearchExercises(ctx context.Context, f entries.EntryFilter) (entries.ExerciseList, error) {
	body, err := c.get(ctx, "/api/v1/exercises", filterParams(f))
	if err != nil {
		return nil, err
	}

	var exercises entries.ExerciseList
	if err := json.Unmarshal(body, &exercises); err != nil {
		return nil, fmt.Errorf("httpclient: decode exercises: %w", err)
	}
	return exercises, nil
}

func (c *HTTPClient) GetExercise(ctx context.Context, id uuid.UUID) (*entries.Exercise, error) {
	body, err := c.get(ctx, "/api/v1/exercises/"+id.String(), nil)
	if err != nil {
		return nil, err
	}

	var exercise entries.Exercise
	if err := json.Unmarshal(body, &exercise); err != nil {
		return nil, fmt.Errorf("httpclient: decode exercise: %w", err)
	}
	return &exercise, nil
}

func (c *HTTPClient) SearchNotes(ctx context.Context, f entries.EntryFilter) (entries.NoteList, error) {
	body, err := c.get(ctx, "/api/v1/notes", filterParams(f))
	if err != nil {
		return nil, err
	}

	var notes entries.NoteList
	if err := json.Unmarshal(body, &notes); err != nil {
		return nil, fmt.Errorf("httpclient: decode notes: %w", err)
	}
	return notes, nil
}

func (c *HTTPClient) WeightHistory(ctx context.Context, f entries.EntryFilter) (entries.WeightList, error) {
	body, err := c.get(ctx, "/api/v1/weights", filterParams(f))
	if err != nil {
		return nil, err
	}

	var weights entries.WeightList
	if err := json.Unmarshal(body, &weights); err != nil {
		return nil, fmt.Errorf("httpclient: decode weights: %w", err)
	}
	return weights, nil
}
