// Package release publishes extension bundle archives as GitHub releases
// and decides, from the triggering ref, whether a release should happen
// at all.
package release

import "time"

// Release represents a GitHub release.
type Release struct {
	ID        int64     `json:"id"`
	TagName   string    `json:"tag_name"`
	Name      string    `json:"name"`
	Draft     bool      `json:"draft"`
	Assets    []Asset   `json:"assets"`
	Published time.Time `json:"published_at"`
	HTMLURL   string    `json:"html_url"`
}

// Asset represents a downloadable file attached to a release.
type Asset struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	DownloadURL string `json:"browser_download_url"`
	Size        int64  `json:"size"`
	ContentType string `json:"content_type"`
}
