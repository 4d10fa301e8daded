// Package flame talks to the Flame (CurseForge) mod catalog: URL
// construction, the provider's numeric enum mappings, and a typed HTTP
// client for the read-only endpoints the launcher uses.
package flame

import (
	"fmt"
	"net/url"
	"slices"
	"strconv"
	"strings"
)

// Defaults for the hosted catalog.
const (
	DefaultBaseURL = "https://api.curseforge.com"
	DefaultGameID  = 432 // Minecraft
)

const searchPageSize = 25

// ResourceType identifies the kind of catalog entry being searched.
type ResourceType int

const (
	ResourceMod ResourceType = iota
	ResourceResourcePack
)

// ParseResourceType maps CLI spellings to a ResourceType.
func ParseResourceType(s string) (ResourceType, error) {
	switch strings.ToLower(s) {
	case "mod", "":
		return ResourceMod, nil
	case "resourcepack", "resource-pack", "resource_pack":
		return ResourceResourcePack, nil
	default:
		return ResourceMod, fmt.Errorf("unknown resource type: %s", s)
	}
}

// ClassID returns the provider's numeric class for a resource type.
// Unknown types fall back to the mod class, matching provider behavior.
func ClassID(t ResourceType) int {
	switch t {
	case ResourceResourcePack:
		return 12
	default:
		return 6
	}
}

// Loader identifies a mod loader.
type Loader int

const (
	LoaderUnknown Loader = iota
	LoaderForge
	LoaderFabric
	LoaderQuilt
	LoaderNeoForge
)

// canonicalLoaderOrder is the order loader filters are emitted in.
var canonicalLoaderOrder = []Loader{LoaderNeoForge, LoaderForge, LoaderFabric, LoaderQuilt}

// ParseLoader maps CLI spellings to a Loader.
func ParseLoader(s string) (Loader, error) {
	switch strings.ToLower(s) {
	case "forge":
		return LoaderForge, nil
	case "fabric":
		return LoaderFabric, nil
	case "quilt":
		return LoaderQuilt, nil
	case "neoforge":
		return LoaderNeoForge, nil
	default:
		return LoaderUnknown, fmt.Errorf("unknown mod loader: %s", s)
	}
}

// String returns the lowercase loader name.
func (l Loader) String() string {
	switch l {
	case LoaderForge:
		return "forge"
	case LoaderFabric:
		return "fabric"
	case LoaderQuilt:
		return "quilt"
	case LoaderNeoForge:
		return "neoforge"
	default:
		return "unknown"
	}
}

// MappedLoaderID returns the provider's numeric id for a loader.
// See https://docs.curseforge.com/?http#tocS_ModLoaderType
func MappedLoaderID(l Loader) int {
	switch l {
	case LoaderForge:
		return 1
	case LoaderFabric:
		return 4
	case LoaderQuilt:
		return 5
	case LoaderNeoForge:
		return 6
	default:
		return 0
	}
}

// ValidLoaders reports whether every loader is one the provider indexes.
// Requests carrying an empty or partially unknown loader set are rejected
// before they reach the network.
func ValidLoaders(loaders []Loader) bool {
	if len(loaders) == 0 {
		return false
	}
	for _, l := range loaders {
		if MappedLoaderID(l) == 0 {
			return false
		}
	}
	return true
}

// resolveLoaderID collapses a loader set to the single id the dependency
// endpoint accepts: the first of Forge, Fabric, Quilt, NeoForge present wins.
func resolveLoaderID(loaders []Loader) int {
	for _, l := range []Loader{LoaderForge, LoaderFabric, LoaderQuilt, LoaderNeoForge} {
		if slices.Contains(loaders, l) {
			return MappedLoaderID(l)
		}
	}
	return 0
}

// loaderFilter renders the modLoaderTypes query value, e.g. "[1,4]".
// Loaders are emitted in canonical order regardless of input order so the
// same set always produces the same URL.
func loaderFilter(loaders []Loader) string {
	var ids []string
	for _, canonical := range canonicalLoaderOrder {
		for _, l := range loaders {
			if l == canonical {
				ids = append(ids, strconv.Itoa(MappedLoaderID(l)))
				break
			}
		}
	}
	return "[" + strings.Join(ids, ",") + "]"
}

// quiltOverrideAddons lists addon ids carrying dedicated Quilt builds of mods
// whose canonical entry only advertises Fabric. Dependency lookups for these
// must pin the Quilt loader id instead of whatever the requested loader maps
// to.
var quiltOverrideAddons = map[string]bool{
	"634179": true, // Quilted Fabric API (Quilt build of Fabric API 306612)
}

// SortingMethod is one provider-defined ordering for search results.
type SortingMethod struct {
	Index int
	Name  string
}

// SortingMethods returns the orderings the provider supports.
func SortingMethods() []SortingMethod {
	return []SortingMethod{
		{1, "Featured"},
		{2, "Popularity"},
		{3, "LastUpdated"},
		{4, "Name"},
		{5, "Author"},
		{6, "TotalDownloads"},
		{7, "Category"},
		{8, "GameVersion"},
	}
}

// SortingMethodByName resolves a case-insensitive method name.
func SortingMethodByName(name string) (SortingMethod, error) {
	for _, m := range SortingMethods() {
		if strings.EqualFold(m.Name, name) {
			return m, nil
		}
	}
	return SortingMethod{}, fmt.Errorf("unknown sort field: %s", name)
}

// SearchArgs are the catalog search parameters.
type SearchArgs struct {
	Type        ResourceType
	Offset      int
	Search      string         // empty means no text filter
	Sort        *SortingMethod // nil means provider default order
	Loaders     []Loader       // empty means any loader
	GameVersion string         // empty means any game version
}

// URLBuilder produces request URLs for one catalog deployment. All builders
// are deterministic and side-effect free.
type URLBuilder struct {
	baseURL string
	gameID  int
}

// NewURLBuilder creates a builder; zero values select the hosted defaults.
func NewURLBuilder(baseURL string, gameID int) *URLBuilder {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if gameID == 0 {
		gameID = DefaultGameID
	}
	return &URLBuilder{baseURL: strings.TrimRight(baseURL, "/"), gameID: gameID}
}

// SearchURL builds the paged catalog search request.
func (b *URLBuilder) SearchURL(args SearchArgs) string {
	params := []string{
		fmt.Sprintf("classId=%d", ClassID(args.Type)),
		fmt.Sprintf("index=%d", args.Offset),
		fmt.Sprintf("pageSize=%d", searchPageSize),
	}
	if args.Search != "" {
		params = append(params, "searchFilter="+url.QueryEscape(args.Search))
	}
	if args.Sort != nil {
		params = append(params, fmt.Sprintf("sortField=%d", args.Sort.Index))
	}
	params = append(params, "sortOrder=desc")
	if len(args.Loaders) > 0 {
		params = append(params, "modLoaderTypes="+url.QueryEscape(loaderFilter(args.Loaders)))
	}
	if args.GameVersion != "" {
		params = append(params, "gameVersion="+url.QueryEscape(args.GameVersion))
	}
	return fmt.Sprintf("%s/v1/mods/search?gameId=%d&%s", b.baseURL, b.gameID, strings.Join(params, "&"))
}

// InfoURL builds the single-entry lookup request.
func (b *URLBuilder) InfoURL(addonID string) string {
	return fmt.Sprintf("%s/v1/mods/%s", b.baseURL, url.PathEscape(addonID))
}

// VersionsURL builds the file listing request for one entry, optionally
// filtered by game version.
func (b *URLBuilder) VersionsURL(addonID, gameVersion string) string {
	u := fmt.Sprintf("%s/v1/mods/%s/files?pageSize=10000", b.baseURL, url.PathEscape(addonID))
	if gameVersion != "" {
		u += "&gameVersion=" + url.QueryEscape(gameVersion)
	}
	return u
}

// DependencyURL builds the file listing request used to resolve a dependency
// of another mod, pinned to a game version and a loader set. The set collapses
// to one provider id by fixed priority, except that when Quilt is among the
// requested loaders and the addon carries a dedicated Quilt build, the Quilt
// id wins over whatever the priority order resolved to.
func (b *URLBuilder) DependencyURL(addonID, gameVersion string, loaders []Loader) string {
	loaderID := resolveLoaderID(loaders)
	if slices.Contains(loaders, LoaderQuilt) && quiltOverrideAddons[addonID] {
		loaderID = MappedLoaderID(LoaderQuilt)
	}
	return fmt.Sprintf("%s/v1/mods/%s/files?pageSize=10000&gameVersion=%s&modLoaderType=%d",
		b.baseURL, url.PathEscape(addonID), url.QueryEscape(gameVersion), loaderID)
}

// FileChangelogURL builds the changelog request for one file of one entry.
func (b *URLBuilder) FileChangelogURL(modID, fileID int) string {
	return fmt.Sprintf("%s/v1/mods/%d/files/%d/changelog", b.baseURL, modID, fileID)
}

// DescriptionURL builds the long-description request for one entry.
func (b *URLBuilder) DescriptionURL(modID int) string {
	return fmt.Sprintf("%s/v1/mods/%d/description", b.baseURL, modID)
}

// FileURL builds the single-file lookup request.
func (b *URLBuilder) FileURL(addonID, fileID string) string {
	return fmt.Sprintf("%s/v1/mods/%s/files/%s", b.baseURL, url.PathEscape(addonID), url.PathEscape(fileID))
}

// FilesURL builds the bulk file lookup request. The file ids travel in the
// POST body, not the URL.
func (b *URLBuilder) FilesURL() string {
	return b.baseURL + "/v1/mods/files"
}
