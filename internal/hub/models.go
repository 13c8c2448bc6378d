package hub

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"time"
)

// Sort keys accepted by the model listing endpoint.
const (
	SortTrending     = "trending_score"
	SortLastModified = "last_modified"
	SortCreatedAt    = "created_at"
	SortDownloads    = "downloads"
	SortLikes        = "likes"
)

// DefaultListLimit caps listing results when the caller does not set one.
const DefaultListLimit = 20

var sortKeys = map[string]bool{
	SortTrending:     true,
	SortLastModified: true,
	SortCreatedAt:    true,
	SortDownloads:    true,
	SortLikes:        true,
}

// ListModelsOptions are the search filters for ListModels. Zero values are
// omitted from the request.
type ListModelsOptions struct {
	// Search matches against model IDs and names.
	Search string

	// Library filters by library (e.g. "pytorch", "transformers").
	Library []string

	// Tags filters by model tags.
	Tags []string

	// PipelineTag filters by pipeline tag (e.g. "text-generation").
	PipelineTag string

	// Sort orders results by one of the Sort* keys. Default SortTrending.
	Sort string

	// Direction is -1 for descending, 1 for ascending. Default -1.
	Direction int

	// Limit caps the number of results. Default DefaultListLimit.
	Limit int
}

// ModelSummary is one row of a model listing.
type ModelSummary struct {
	ID          string    `json:"id"`
	Likes       int       `json:"likes"`
	Downloads   int       `json:"downloads"`
	PipelineTag string    `json:"pipeline_tag"`
	LibraryName string    `json:"library_name"`
	CreatedAt   time.Time `json:"createdAt"`
	Tags        []string  `json:"tags"`
}

// Record shapes the summary into a map holding only the fields that are
// actually set.
func (m ModelSummary) Record() map[string]any {
	rec := make(map[string]any)
	if m.ID != "" {
		rec["id"] = m.ID
	}
	if m.Likes > 0 {
		rec["likes"] = m.Likes
	}
	if m.Downloads > 0 {
		rec["downloads"] = m.Downloads
	}
	if m.PipelineTag != "" {
		rec["pipeline_tag"] = m.PipelineTag
	}
	if m.LibraryName != "" {
		rec["library_name"] = m.LibraryName
	}
	if !m.CreatedAt.IsZero() {
		rec["created_at"] = m.CreatedAt.Format(time.RFC3339)
	}
	if len(m.Tags) > 0 {
		rec["tags"] = m.Tags
	}
	return rec
}

// Model is the full metadata record for one model.
type Model struct {
	ID           string    `json:"id"`
	Author       string    `json:"author"`
	SHA          string    `json:"sha"`
	CreatedAt    time.Time `json:"createdAt"`
	LastModified time.Time `json:"lastModified"`
	Downloads    int       `json:"downloads"`
	Likes        int       `json:"likes"`
	Tags         []string  `json:"tags"`
	PipelineTag  string    `json:"pipeline_tag"`
	LibraryName  string    `json:"library_name"`
	CardData     *CardData `json:"cardData"`
	Siblings     []Sibling `json:"siblings"`
	Spaces       []string  `json:"spaces"`
	XetEnabled   bool      `json:"xetEnabled"`
}

// CardData is the metadata block the Hub extracts from the model card's
// front matter.
type CardData struct {
	License   string      `json:"license"`
	BaseModel StringOrSet `json:"base_model"`
	Datasets  []string    `json:"datasets"`
}

// Sibling is one file in a model repository.
type Sibling struct {
	Filename string `json:"rfilename"`
}

// StringOrSet decodes a JSON field that the Hub serves as either a single
// string or an array of strings (base_model does both).
type StringOrSet []string

func (s *StringOrSet) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var one string
		if err := json.Unmarshal(data, &one); err != nil {
			return err
		}
		*s = StringOrSet{one}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	*s = many
	return nil
}

// ListModels searches the registry and returns matching models, most
// relevant first per the requested sort.
func (c *Client) ListModels(ctx context.Context, opts ListModelsOptions) ([]ModelSummary, error) {
	sort := opts.Sort
	if sort == "" {
		sort = SortTrending
	}
	if !sortKeys[sort] {
		return nil, fmt.Errorf("hub: unknown sort key %q", sort)
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultListLimit
	}

	query := url.Values{}
	if opts.Search != "" {
		query.Set("search", opts.Search)
	}
	for _, lib := range opts.Library {
		query.Add("library", lib)
	}
	for _, tag := range opts.Tags {
		query.Add("tags", tag)
	}
	if opts.PipelineTag != "" {
		query.Set("pipeline_tag", opts.PipelineTag)
	}
	query.Set("sort", sort)
	direction := opts.Direction
	if direction == 0 {
		direction = -1
	}
	if direction != -1 && direction != 1 {
		return nil, fmt.Errorf("hub: direction must be -1 or 1, got %d", direction)
	}
	query.Set("direction", strconv.Itoa(direction))
	query.Set("limit", strconv.Itoa(limit))

	var models []ModelSummary
	if err := c.getJSON(ctx, "/api/models", query, &models); err != nil {
		return nil, err
	}
	return models, nil
}

// ModelInfo fetches the metadata record for one model. The id must be the
// exact repository id ("org/name"); ErrNotFound otherwise.
func (c *Client) ModelInfo(ctx context.Context, id string) (*Model, error) {
	if id == "" {
		return nil, fmt.Errorf("hub: model id is required")
	}
	var model Model
	if err := c.getJSON(ctx, "/api/models/"+escapeRepoID(id), nil, &model); err != nil {
		return nil, err
	}
	return &model, nil
}

// Record shapes the model into a map holding only the fields that are
// actually set, the form the remote tools return to agents.
func (m *Model) Record() map[string]any {
	rec := make(map[string]any)
	if m.ID != "" {
		rec["id"] = m.ID
	}
	if m.Author != "" {
		rec["author"] = m.Author
	}
	if !m.CreatedAt.IsZero() {
		rec["created_at"] = m.CreatedAt.Format(time.RFC3339)
	}
	if !m.LastModified.IsZero() {
		rec["last_modified"] = m.LastModified.Format(time.RFC3339)
	}
	if m.Downloads > 0 {
		rec["downloads"] = m.Downloads
	}
	if m.Likes > 0 {
		rec["likes"] = m.Likes
	}
	if len(m.Tags) > 0 {
		rec["tags"] = m.Tags
	}
	if m.PipelineTag != "" {
		rec["pipeline_tag"] = m.PipelineTag
	}
	if m.LibraryName != "" {
		rec["library_name"] = m.LibraryName
	}
	if m.CardData != nil {
		if m.CardData.License != "" {
			rec["license"] = m.CardData.License
		}
		if len(m.CardData.BaseModel) == 1 {
			rec["base_model"] = m.CardData.BaseModel[0]
		} else if len(m.CardData.BaseModel) > 1 {
			rec["base_model"] = []string(m.CardData.BaseModel)
		}
		if len(m.CardData.Datasets) > 0 {
			rec["datasets"] = m.CardData.Datasets
		}
	}
	if len(m.Siblings) > 0 {
		files := make([]string, 0, len(m.Siblings))
		for _, s := range m.Siblings {
			files = append(files, s.Filename)
		}
		rec["siblings"] = files
	}
	if len(m.Spaces) > 0 {
		rec["spaces"] = m.Spaces
	}
	if m.XetEnabled {
		rec["xet_enabled"] = true
	}
	return rec
}
