package release

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeGitHub is a minimal in-memory Releases API.
type fakeGitHub struct {
	t        *testing.T
	releases map[string]*Release
	uploads  []string
	nextID   int64
}

func newFakeGitHub(t *testing.T) (*fakeGitHub, *Client) {
	t.Helper()
	fake := &fakeGitHub{t: t, releases: make(map[string]*Release), nextID: 1}
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	client := NewClient("ohnotype/Transmutor",
		WithBaseURLs(srv.URL, srv.URL),
		WithToken("test-token"),
		WithHTTPClient(srv.Client()))
	return fake, client
}

func (f *fakeGitHub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if got := r.Header.Get("Authorization"); got != "token test-token" {
		f.t.Errorf("Authorization = %q, want token test-token", got)
	}

	switch {
	case r.Method == http.MethodGet:
		tag := filepath.Base(r.URL.Path)
		rel, ok := f.releases[tag]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		json.NewEncoder(w).Encode(rel)

	case r.Method == http.MethodPost && r.URL.Path == "/repos/ohnotype/Transmutor/releases":
		var payload struct {
			TagName              string `json:"tag_name"`
			GenerateReleaseNotes bool   `json:"generate_release_notes"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			f.t.Errorf("decoding create payload: %v", err)
		}
		if !payload.GenerateReleaseNotes {
			f.t.Error("generate_release_notes not set")
		}
		rel := &Release{
			ID:      f.nextID,
			TagName: payload.TagName,
			Name:    payload.TagName,
			HTMLURL: "https://github.com/ohnotype/Transmutor/releases/tag/" + payload.TagName,
		}
		f.nextID++
		f.releases[payload.TagName] = rel
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(rel)

	case r.Method == http.MethodPost:
		// Asset upload.
		name := r.URL.Query().Get("name")
		f.uploads = append(f.uploads, name)
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(Asset{ID: f.nextID, Name: name})
		f.nextID++

	case r.Method == http.MethodDelete:
		w.WriteHeader(http.StatusNoContent)

	default:
		w.WriteHeader(http.StatusBadRequest)
	}
}

func TestGetReleaseByTag_NotFound(t *testing.T) {
	_, client := newFakeGitHub(t)

	_, err := client.GetReleaseByTag(context.Background(), "v9.9.9")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestEnsureRelease_CreatesOnce(t *testing.T) {
	fake, client := newFakeGitHub(t)
	ctx := context.Background()

	rel, err := client.EnsureRelease(ctx, "v2.1.0")
	require.NoError(t, err)
	assert.Equal(t, "v2.1.0", rel.TagName)

	again, err := client.EnsureRelease(ctx, "v2.1.0")
	require.NoError(t, err)
	assert.Equal(t, rel.ID, again.ID)
	assert.Len(t, fake.releases, 1)
}

func TestUploadAsset(t *testing.T) {
	fake, client := newFakeGitHub(t)
	ctx := context.Background()

	rel, err := client.EnsureRelease(ctx, "v2.1.0")
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "Transmutor.roboFontExt.zip")
	require.NoError(t, os.WriteFile(path, []byte("zipzip"), 0644))

	asset, err := client.UploadAsset(ctx, rel, path, "application/zip")
	require.NoError(t, err)
	assert.Equal(t, "Transmutor.roboFontExt.zip", asset.Name)
	assert.Equal(t, []string{"Transmutor.roboFontExt.zip"}, fake.uploads)
}

func TestUploadAsset_ReplacesExisting(t *testing.T) {
	fake, client := newFakeGitHub(t)
	ctx := context.Background()

	rel, err := client.EnsureRelease(ctx, "v2.1.0")
	require.NoError(t, err)
	rel.Assets = []Asset{{ID: 77, Name: "checksums.txt"}}

	path := filepath.Join(t.TempDir(), "checksums.txt")
	require.NoError(t, os.WriteFile(path, []byte("abc  checksums.txt\n"), 0644))

	_, err = client.UploadAsset(ctx, rel, path, "text/plain")
	require.NoError(t, err)
	assert.Equal(t, []string{"checksums.txt"}, fake.uploads)
}

func TestAPIError_IncludesStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, "boom")
	}))
	t.Cleanup(srv.Close)

	client := NewClient("ohnotype/Transmutor", WithBaseURLs(srv.URL, srv.URL))
	_, err := client.GetReleaseByTag(context.Background(), "v1.0.0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}
