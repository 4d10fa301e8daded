package flame

import "time"

// Mod is one catalog entry.
type Mod struct {
	ID            int       `json:"id"`
	GameID        int       `json:"gameId"`
	Name          string    `json:"name"`
	Slug          string    `json:"slug"`
	Summary       string    `json:"summary"`
	DownloadCount float64   `json:"downloadCount"`
	DateModified  time.Time `json:"dateModified"`
	DateReleased  time.Time `json:"dateReleased"`
}

// File is one downloadable version of a catalog entry.
type File struct {
	ID           int       `json:"id"`
	ModID        int       `json:"modId"`
	DisplayName  string    `json:"displayName"`
	FileName     string    `json:"fileName"`
	ReleaseType  int       `json:"releaseType"` // 1 release, 2 beta, 3 alpha
	FileDate     time.Time `json:"fileDate"`
	DownloadURL  string    `json:"downloadUrl"`
	GameVersions []string  `json:"gameVersions"`
}

// Pagination is the provider's paging envelope for search responses.
type Pagination struct {
	Index       int `json:"index"`
	PageSize    int `json:"pageSize"`
	ResultCount int `json:"resultCount"`
	TotalCount  int `json:"totalCount"`
}

// SearchResults is one page of catalog search hits.
type SearchResults struct {
	Mods       []Mod      `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// modResponse wraps a single-entry lookup.
type modResponse struct {
	Data Mod `json:"data"`
}

// filesResponse wraps a file listing.
type filesResponse struct {
	Data []File `json:"data"`
}

// fileResponse wraps a single-file lookup.
type fileResponse struct {
	Data File `json:"data"`
}

// textResponse wraps endpoints returning an HTML string payload
// (changelog, description).
type textResponse struct {
	Data string `json:"data"`
}

// filesRequest is the POST body of the bulk file lookup.
type filesRequest struct {
	FileIDs []int `json:"fileIds"`
}
