package flame

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClientSearch(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		if got := r.Header.Get("x-api-key"); got != "test-key" {
			t.Errorf("x-api-key = %q, want test-key", got)
		}
		if r.URL.Path != "/v1/mods/search" {
			t.Errorf("path = %q, want /v1/mods/search", r.URL.Path)
		}
		if got := r.URL.Query().Get("gameId"); got != "432" {
			t.Errorf("gameId = %q, want 432", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"data": [
				{"id": 238222, "name": "Just Enough Items", "slug": "jei", "summary": "View items and recipes", "downloadCount": 250000000}
			],
			"pagination": {"index": 0, "pageSize": 25, "resultCount": 1, "totalCount": 1}
		}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, 0, "test-key")

	results, err := client.Search(context.Background(), SearchArgs{Search: "jei"})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(results.Mods) != 1 {
		t.Fatalf("Mods = %d entries, want 1", len(results.Mods))
	}
	if results.Mods[0].Name != "Just Enough Items" {
		t.Errorf("Name = %q, want Just Enough Items", results.Mods[0].Name)
	}
	if results.Pagination.TotalCount != 1 {
		t.Errorf("TotalCount = %d, want 1", results.Pagination.TotalCount)
	}

	// Identical search within the TTL is served from cache.
	if _, err := client.Search(context.Background(), SearchArgs{Search: "jei"}); err != nil {
		t.Fatalf("second Search() error = %v", err)
	}
	if requests != 1 {
		t.Errorf("requests = %d, want 1 (second search should hit the cache)", requests)
	}

	// A different search misses the cache.
	if _, err := client.Search(context.Background(), SearchArgs{Search: "sodium"}); err != nil {
		t.Fatalf("third Search() error = %v", err)
	}
	if requests != 2 {
		t.Errorf("requests = %d, want 2", requests)
	}
}

func TestClientMod(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/mods/238222" {
			t.Errorf("path = %q, want /v1/mods/238222", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"data": {"id": 238222, "name": "Just Enough Items", "slug": "jei"}}`))
	}))
	defer server.Close()

	mod, err := NewClient(server.URL, 0, "").Mod(context.Background(), "238222")
	if err != nil {
		t.Fatalf("Mod() error = %v", err)
	}
	if mod.ID != 238222 {
		t.Errorf("ID = %d, want 238222", mod.ID)
	}
	if mod.Slug != "jei" {
		t.Errorf("Slug = %q, want jei", mod.Slug)
	}
}

func TestClientVersions(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/mods/238222/files" {
			t.Errorf("path = %q, want /v1/mods/238222/files", r.URL.Path)
		}
		if got := r.URL.Query().Get("gameVersion"); got != "1.20.1" {
			t.Errorf("gameVersion = %q, want 1.20.1", got)
		}
		_, _ = w.Write([]byte(`{"data": [
			{"id": 4711, "modId": 238222, "displayName": "jei-1.20.1", "fileName": "jei-1.20.1.jar", "gameVersions": ["1.20.1"]}
		]}`))
	}))
	defer server.Close()

	files, err := NewClient(server.URL, 0, "").Versions(context.Background(), "238222", "1.20.1")
	if err != nil {
		t.Fatalf("Versions() error = %v", err)
	}
	if len(files) != 1 {
		t.Fatalf("files = %d entries, want 1", len(files))
	}
	if files[0].FileName != "jei-1.20.1.jar" {
		t.Errorf("FileName = %q, want jei-1.20.1.jar", files[0].FileName)
	}
}

func TestClientDependencyVersionsSendsLoader(t *testing.T) {
	var gotLoaderType string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotLoaderType = r.URL.Query().Get("modLoaderType")
		_, _ = w.Write([]byte(`{"data": []}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, 0, "")
	loaders := []Loader{LoaderFabric, LoaderQuilt}

	// A mixed Fabric+Quilt set normally resolves to the Fabric id.
	if _, err := client.DependencyVersions(context.Background(), "238222", "1.20.1", loaders); err != nil {
		t.Fatalf("DependencyVersions() error = %v", err)
	}
	if gotLoaderType != "4" {
		t.Errorf("modLoaderType = %q, want 4", gotLoaderType)
	}

	// For an addon with a dedicated Quilt build the Quilt id wins.
	if _, err := client.DependencyVersions(context.Background(), "634179", "1.20.1", loaders); err != nil {
		t.Fatalf("DependencyVersions() error = %v", err)
	}
	if gotLoaderType != "5" {
		t.Errorf("modLoaderType = %q, want 5 (quilt build override)", gotLoaderType)
	}
}

func TestClientRejectsBadLoaderSets(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		_, _ = w.Write([]byte(`{"data": []}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, 0, "")

	if _, err := client.DependencyVersions(context.Background(), "238222", "1.20.1", nil); err == nil {
		t.Error("DependencyVersions() with no loaders expected an error")
	}
	if _, err := client.Search(context.Background(), SearchArgs{Loaders: []Loader{LoaderUnknown}}); err == nil {
		t.Error("Search() with an unknown loader expected an error")
	}
	if requests != 0 {
		t.Errorf("requests = %d, want 0 (rejected before the network)", requests)
	}
}

func TestClientFiles(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %q, want POST", r.Method)
		}
		if r.URL.Path != "/v1/mods/files" {
			t.Errorf("path = %q, want /v1/mods/files", r.URL.Path)
		}
		body, _ := io.ReadAll(r.Body)
		var req struct {
			FileIDs []int `json:"fileIds"`
		}
		if err := json.Unmarshal(body, &req); err != nil {
			t.Fatalf("request body %q: %v", body, err)
		}
		if len(req.FileIDs) != 2 || req.FileIDs[0] != 4711 || req.FileIDs[1] != 4712 {
			t.Errorf("fileIds = %v, want [4711 4712]", req.FileIDs)
		}
		_, _ = w.Write([]byte(`{"data": [
			{"id": 4711, "modId": 238222, "fileName": "jei-1.20.1.jar"},
			{"id": 4712, "modId": 306612, "fileName": "fabric-api-1.20.1.jar"}
		]}`))
	}))
	defer server.Close()

	files, err := NewClient(server.URL, 0, "").Files(context.Background(), []int{4711, 4712})
	if err != nil {
		t.Fatalf("Files() error = %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("files = %d entries, want 2", len(files))
	}
	if files[1].ModID != 306612 {
		t.Errorf("ModID = %d, want 306612", files[1].ModID)
	}
}

func TestClientFile(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/mods/238222/files/4711" {
			t.Errorf("path = %q, want /v1/mods/238222/files/4711", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"data": {"id": 4711, "modId": 238222, "fileName": "jei-1.20.1.jar"}}`))
	}))
	defer server.Close()

	file, err := NewClient(server.URL, 0, "").File(context.Background(), "238222", "4711")
	if err != nil {
		t.Fatalf("File() error = %v", err)
	}
	if file.FileName != "jei-1.20.1.jar" {
		t.Errorf("FileName = %q, want jei-1.20.1.jar", file.FileName)
	}
}

func TestClientDescription(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/mods/238222/description" {
			t.Errorf("path = %q, want /v1/mods/238222/description", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"data": "<p>View items and recipes.</p>"}`))
	}))
	defer server.Close()

	desc, err := NewClient(server.URL, 0, "").Description(context.Background(), 238222)
	if err != nil {
		t.Fatalf("Description() error = %v", err)
	}
	if desc != "<p>View items and recipes.</p>" {
		t.Errorf("Description() = %q", desc)
	}
}

func TestClientChangelog(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/mods/238222/files/4711/changelog" {
			t.Errorf("path = %q", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"data": "<p>Fixed recipes.</p>"}`))
	}))
	defer server.Close()

	changelog, err := NewClient(server.URL, 0, "").Changelog(context.Background(), 238222, 4711)
	if err != nil {
		t.Fatalf("Changelog() error = %v", err)
	}
	if changelog != "<p>Fixed recipes.</p>" {
		t.Errorf("Changelog() = %q", changelog)
	}
}

func TestClientNonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "forbidden", http.StatusForbidden)
	}))
	defer server.Close()

	if _, err := NewClient(server.URL, 0, "wrong-key").Mod(context.Background(), "238222"); err == nil {
		t.Error("Mod() expected an error on 403")
	}
}
