// Package cards orchestrates model card operations: cached fetches from
// the Hub and metadata update proposals built on the front matter patcher.
package cards

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/hubcard/hubcard/internal/frontmatter"
	"github.com/hubcard/hubcard/internal/hub"
	"github.com/hubcard/hubcard/internal/store"
)

// CardPath is the repository file holding the model card.
const CardPath = "README.md"

// DefaultCacheTTL is how long a cached card is served before refetching.
const DefaultCacheTTL = 15 * time.Minute

// UpdatableFields is the allow-list of front matter fields the update
// operation may touch. The patcher itself is generic; the policy lives
// here.
var UpdatableFields = []string{"pipeline_tag", "library_name"}

// ErrFieldNotAllowed indicates an edit names a field outside
// UpdatableFields.
var ErrFieldNotAllowed = errors.New("cards: field not updatable")

// Config wires a Service.
type Config struct {
	Hub *hub.Client

	// Store caches fetched cards and logs update proposals. Optional;
	// nil disables caching and logging.
	Store *store.Store

	// CacheTTL overrides DefaultCacheTTL.
	CacheTTL time.Duration

	// Logger receives operational logs. Defaults to slog.Default().
	Logger *slog.Logger
}

// Service performs card operations against one Hub client.
type Service struct {
	hub      *hub.Client
	store    *store.Store
	cacheTTL time.Duration
	log      *slog.Logger
}

// NewService builds a Service from cfg.
func NewService(cfg Config) (*Service, error) {
	if cfg.Hub == nil {
		return nil, fmt.Errorf("cards: hub client is required")
	}
	ttl := cfg.CacheTTL
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		hub:      cfg.Hub,
		store:    cfg.Store,
		cacheTTL: ttl,
		log:      logger,
	}, nil
}

// CardOptions control a card fetch.
type CardOptions struct {
	// Revision defaults to the Hub's default branch.
	Revision string

	// Refresh bypasses the cache and fetches from the Hub.
	Refresh bool
}

// Card returns the model card content, serving a cached copy when one is
// fresh enough.
func (s *Service) Card(ctx context.Context, modelID string, opts CardOptions) (string, error) {
	revision := opts.Revision
	if revision == "" {
		revision = hub.DefaultRevision
	}

	if s.store != nil && !opts.Refresh {
		cached, err := s.store.GetCard(modelID, revision, CardPath, s.cacheTTL)
		if err == nil {
			s.log.Debug("card served from cache", "model", modelID, "revision", revision)
			return cached.Content, nil
		}
		if !errors.Is(err, store.ErrCardNotCached) {
			s.log.Warn("card cache read failed", "model", modelID, "error", err)
		}
	}

	data, err := s.hub.FetchFile(ctx, modelID, revision, CardPath)
	if err != nil {
		return "", err
	}
	content := string(data)

	if s.store != nil {
		if err := s.store.SaveCard(store.CachedCard{
			ModelID:   modelID,
			Revision:  revision,
			Path:      CardPath,
			Content:   content,
			FetchedAt: time.Now(),
		}); err != nil {
			s.log.Warn("card cache write failed", "model", modelID, "error", err)
		}
	}
	return content, nil
}

// UpdateRequest describes one metadata update proposal.
type UpdateRequest struct {
	ModelID  string
	Revision string
	Edits    []frontmatter.Edit

	// Summary is the commit/PR message. Defaults to a description of the
	// edited fields.
	Summary string

	// CreatePR opens a pull request instead of committing directly.
	CreatePR bool

	// DryRun stops after patching; nothing is sent to the Hub.
	DryRun bool
}

// UpdateResult reports a completed (or dry-run) update.
type UpdateResult struct {
	ModelID    string
	OldContent string
	NewContent string

	// ChangeURL is the pull request or commit URL. Empty on dry runs.
	ChangeURL string
}

// UpdateMetadata patches the card's front matter and proposes the change
// on the Hub. There is no partial success: validation and patching happen
// before anything is written, and a failure at any step returns no result.
func (s *Service) UpdateMetadata(ctx context.Context, req UpdateRequest) (*UpdateResult, error) {
	if req.ModelID == "" {
		return nil, fmt.Errorf("cards: model id is required")
	}
	if len(req.Edits) == 0 {
		return nil, frontmatter.ErrNoEdits
	}
	if err := checkEdits(req.Edits); err != nil {
		return nil, err
	}

	// Updates always patch the latest card, never a cached copy.
	oldContent, err := s.Card(ctx, req.ModelID, CardOptions{Revision: req.Revision, Refresh: true})
	if err != nil {
		return nil, err
	}

	newContent, err := frontmatter.Patch(oldContent, req.Edits)
	if err != nil {
		return nil, err
	}

	// The patched header must still decode; a failure here means the
	// patcher produced something YAML no longer accepts.
	if _, _, err := frontmatter.Parse(newContent); err != nil {
		return nil, fmt.Errorf("cards: patched card failed verification: %w", err)
	}

	result := &UpdateResult{
		ModelID:    req.ModelID,
		OldContent: oldContent,
		NewContent: newContent,
	}
	if req.DryRun {
		return result, nil
	}

	summary := req.Summary
	if summary == "" {
		summary = "Update " + editSummary(req.Edits)
	}

	commit, err := s.hub.CommitFile(ctx, hub.CommitRequest{
		ModelID:  req.ModelID,
		Revision: req.Revision,
		Path:     CardPath,
		Content:  []byte(newContent),
		Summary:  summary,
		CreatePR: req.CreatePR,
	})
	if err != nil {
		return nil, err
	}
	result.ChangeURL = commit.URL()

	revision := req.Revision
	if revision == "" {
		revision = hub.DefaultRevision
	}
	if s.store != nil {
		if err := s.store.InvalidateCard(req.ModelID, revision, CardPath); err != nil {
			s.log.Warn("card cache invalidation failed", "model", req.ModelID, "error", err)
		}
		if err := s.store.LogUpdate(store.UpdateRecord{
			ModelID:   req.ModelID,
			Fields:    editFields(req.Edits),
			ChangeURL: result.ChangeURL,
		}); err != nil {
			s.log.Warn("update log write failed", "model", req.ModelID, "error", err)
		}
	}

	s.log.Info("metadata update proposed",
		"model", req.ModelID, "fields", editSummary(req.Edits), "url", result.ChangeURL)
	return result, nil
}

// checkEdits enforces the allow-list and unique field names.
func checkEdits(edits []frontmatter.Edit) error {
	allowed := make(map[string]bool, len(UpdatableFields))
	for _, field := range UpdatableFields {
		allowed[field] = true
	}

	seen := make(map[string]bool, len(edits))
	for _, edit := range edits {
		if !allowed[edit.Field] {
			sorted := append([]string(nil), UpdatableFields...)
			sort.Strings(sorted)
			return fmt.Errorf("%w: %q (updatable: %s)",
				ErrFieldNotAllowed, edit.Field, strings.Join(sorted, ", "))
		}
		if seen[edit.Field] {
			return fmt.Errorf("cards: duplicate edit for field %q", edit.Field)
		}
		seen[edit.Field] = true
	}
	return nil
}

func editSummary(edits []frontmatter.Edit) string {
	names := make([]string, 0, len(edits))
	for _, edit := range edits {
		names = append(names, edit.Field)
	}
	return strings.Join(names, ", ")
}

func editFields(edits []frontmatter.Edit) string {
	pairs := make([]string, 0, len(edits))
	for _, edit := range edits {
		pairs = append(pairs, edit.Field+"="+edit.Value)
	}
	return strings.Join(pairs, ",")
}
