package hub

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// DefaultRevision is the branch used when the caller does not name one.
const DefaultRevision = "main"

// maxFileSize bounds how much of a repository file FetchFile will read.
// Model cards are small; anything larger is not a card.
const maxFileSize = 8 << 20

// FetchFile reads one file from a model repository at the given revision.
// Returns ErrNotFound when the repository or the file does not exist.
func (c *Client) FetchFile(ctx context.Context, modelID, revision, path string) ([]byte, error) {
	if modelID == "" {
		return nil, fmt.Errorf("hub: model id is required")
	}
	if path == "" {
		return nil, fmt.Errorf("hub: file path is required")
	}
	if revision == "" {
		revision = DefaultRevision
	}

	rawPath := "/" + escapeRepoID(modelID) + "/raw/" + url.PathEscape(revision) + "/" + escapeFilePath(path)
	req, err := c.newRequest(ctx, http.MethodGet, rawPath, nil, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("hub request: %w", err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxFileSize))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}

// CommitRequest describes a single-file commit against a model repository.
type CommitRequest struct {
	ModelID  string
	Revision string // defaults to DefaultRevision
	Path     string
	Content  []byte
	Summary  string

	// CreatePR opens a pull request instead of committing to the branch.
	CreatePR bool
}

// CommitResult reports where a commit or pull request landed.
type CommitResult struct {
	CommitURL      string `json:"commitUrl"`
	CommitOID      string `json:"commitOid"`
	PullRequestURL string `json:"pullRequestUrl"`
}

// URL returns the most specific link for the change: the pull request when
// one was opened, the commit otherwise.
func (r *CommitResult) URL() string {
	if r.PullRequestURL != "" {
		return r.PullRequestURL
	}
	return r.CommitURL
}

// CommitFile writes one file to a model repository via the Hub commit API.
// The payload is the Hub's NDJSON format: a header operation carrying the
// commit summary followed by a base64 file operation.
func (c *Client) CommitFile(ctx context.Context, req CommitRequest) (*CommitResult, error) {
	if req.ModelID == "" {
		return nil, fmt.Errorf("hub: model id is required")
	}
	if req.Path == "" {
		return nil, fmt.Errorf("hub: file path is required")
	}
	if c.token == "" {
		return nil, ErrUnauthorized
	}

	revision := req.Revision
	if revision == "" {
		revision = DefaultRevision
	}
	summary := req.Summary
	if summary == "" {
		summary = "Update " + req.Path
	}

	var payload bytes.Buffer
	enc := json.NewEncoder(&payload)
	if err := enc.Encode(commitOp{Key: "header", Value: commitHeader{Summary: summary}}); err != nil {
		return nil, fmt.Errorf("encode commit header: %w", err)
	}
	if err := enc.Encode(commitOp{Key: "file", Value: commitFile{
		Path:     req.Path,
		Content:  base64.StdEncoding.EncodeToString(req.Content),
		Encoding: "base64",
	}}); err != nil {
		return nil, fmt.Errorf("encode commit file: %w", err)
	}

	commitPath := "/api/models/" + escapeRepoID(req.ModelID) + "/commit/" + url.PathEscape(revision)
	var query url.Values
	if req.CreatePR {
		query = url.Values{"create_pr": {"1"}}
	}

	httpReq, err := c.newRequest(ctx, http.MethodPost, commitPath, query, &payload)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/x-ndjson")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("hub request: %w", err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	var result CommitResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode commit response: %w", err)
	}
	return &result, nil
}

type commitOp struct {
	Key   string `json:"key"`
	Value any    `json:"value"`
}

type commitHeader struct {
	Summary string `json:"summary"`
}

type commitFile struct {
	Path     string `json:"path"`
	Content  string `json:"content"`
	Encoding string `json:"encoding"`
}

// escapeRepoID escapes a repository id for use in a URL path, keeping the
// org/name separator intact.
func escapeRepoID(id string) string {
	parts := strings.Split(id, "/")
	for i, part := range parts {
		parts[i] = url.PathEscape(part)
	}
	return strings.Join(parts, "/")
}

func escapeFilePath(path string) string {
	return escapeRepoID(path)
}
