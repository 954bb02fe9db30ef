package release

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
)

const (
	defaultAPIBase    = "https://api.github.com"
	defaultUploadBase = "https://uploads.github.com"
)

// ErrNotFound is returned when a release does not exist for a tag.
var ErrNotFound = errors.New("release not found")

// Client talks to the GitHub Releases API for a single repository.
type Client struct {
	repo       string
	token      string
	apiBase    string
	uploadBase string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client (useful for testing).
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		cl.httpClient = c
	}
}

// WithBaseURLs overrides the API and upload endpoints (useful for testing
// and GitHub Enterprise).
func WithBaseURLs(apiBase, uploadBase string) Option {
	return func(cl *Client) {
		cl.apiBase = apiBase
		cl.uploadBase = uploadBase
	}
}

// WithToken sets the API token used for authenticated requests.
func WithToken(token string) Option {
	return func(cl *Client) {
		cl.token = token
	}
}

// NewClient creates a Client for the given "owner/repo" repository.
func NewClient(repo string, opts ...Option) *Client {
	c := &Client{
		repo:       repo,
		apiBase:    defaultAPIBase,
		uploadBase: defaultUploadBase,
		httpClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) newRequest(ctx context.Context, method, url string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", "rfext-release")
	if c.token != "" {
		req.Header.Set("Authorization", "token "+c.token)
	}
	return req, nil
}

// GetReleaseByTag fetches the release for a tag. Returns ErrNotFound when
// no release exists for it.
func (c *Client) GetReleaseByTag(ctx context.Context, tag string) (*Release, error) {
	u := fmt.Sprintf("%s/repos/%s/releases/tags/%s", c.apiBase, c.repo, tag)
	req, err := c.newRequest(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching release: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, apiError(resp)
	}

	return decodeRelease(resp.Body)
}

// CreateRelease creates a release for tag with auto-generated release
// notes, mirroring what the hosted release action produced.
func (c *Client) CreateRelease(ctx context.Context, tag string) (*Release, error) {
	payload := map[string]interface{}{
		"tag_name":               tag,
		"name":                   tag,
		"generate_release_notes": true,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encoding release payload: %w", err)
	}

	u := fmt.Sprintf("%s/repos/%s/releases", c.apiBase, c.repo)
	req, err := c.newRequest(ctx, http.MethodPost, u, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("creating release: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return nil, apiError(resp)
	}

	return decodeRelease(resp.Body)
}

// EnsureRelease returns the release for tag, creating it when absent, so
// re-running a failed pipeline is safe.
func (c *Client) EnsureRelease(ctx context.Context, tag string) (*Release, error) {
	rel, err := c.GetReleaseByTag(ctx, tag)
	if err == nil {
		return rel, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	return c.CreateRelease(ctx, tag)
}

// UploadAsset attaches the file at path to the release. An existing asset
// with the same name is deleted first, so retried uploads replace instead
// of failing.
func (c *Client) UploadAsset(ctx context.Context, rel *Release, path, contentType string) (*Asset, error) {
	name := filepath.Base(path)

	for i := range rel.Assets {
		if rel.Assets[i].Name == name {
			if err := c.deleteAsset(ctx, rel.Assets[i].ID); err != nil {
				return nil, fmt.Errorf("replacing asset %s: %w", name, err)
			}
			break
		}
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening asset %s: %w", path, err)
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat asset %s: %w", path, err)
	}

	u := fmt.Sprintf("%s/repos/%s/releases/%d/assets?name=%s",
		c.uploadBase, c.repo, rel.ID, url.QueryEscape(name))
	req, err := c.newRequest(ctx, http.MethodPost, u, f)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", contentType)
	req.ContentLength = fi.Size()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("uploading asset %s: %w", name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return nil, apiError(resp)
	}

	var asset Asset
	if err := json.NewDecoder(resp.Body).Decode(&asset); err != nil {
		return nil, fmt.Errorf("parsing asset JSON: %w", err)
	}
	return &asset, nil
}

func (c *Client) deleteAsset(ctx context.Context, assetID int64) error {
	u := fmt.Sprintf("%s/repos/%s/releases/assets/%d", c.apiBase, c.repo, assetID)
	req, err := c.newRequest(ctx, http.MethodDelete, u, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("deleting asset: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent {
		return apiError(resp)
	}
	return nil
}

func decodeRelease(r io.Reader) (*Release, error) {
	var rel Release
	if err := json.NewDecoder(r).Decode(&rel); err != nil {
		return nil, fmt.Errorf("parsing release JSON: %w", err)
	}
	return &rel, nil
}

func apiError(resp *http.Response) error {
	if resp.StatusCode == http.StatusForbidden {
		return fmt.Errorf("GitHub API rate limit exceeded. Set GITHUB_TOKEN for higher limits")
	}
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	return fmt.Errorf("GitHub API returned status %d: %s", resp.StatusCode, string(body))
}
