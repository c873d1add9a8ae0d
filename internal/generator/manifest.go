package generator

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"
)

const (
	manifestFileName    = ".sitegen-manifest.json"
	manifestFileVersion = 1
)

// buildManifest stores metadata about the last successful build to support
// incremental runs and stale-output cleanup. Pages is keyed by source path;
// serialization goes through manifestFile, which carries the entries as a
// sorted slice for deterministic output.
type buildManifest struct {
	Version     int
	GeneratedAt time.Time
	Pages       map[string]manifestPage
	// Theme maps each theme input to its content hash; any change forces a
	// full rebuild.
	Theme map[string]string
	// Listing fingerprints the visible listing metadata; a change rebuilds
	// index, archive, tag, and feed outputs even when no page changed.
	Listing string
}

// manifestFile is the on-disk shape of the manifest.
type manifestFile struct {
	Version     int               `json:"version"`
	GeneratedAt time.Time         `json:"generated_at"`
	Pages       []manifestPage    `json:"pages"`
	Theme       map[string]string `json:"theme,omitempty"`
	Listing     string            `json:"listing,omitempty"`
}

// manifestPage tracks one source document. Listing fields mirror everything a
// listing page shows, so a metadata-only edit still refreshes the listings.
type manifestPage struct {
	Source     string    `json:"source"`
	Slug       string    `json:"slug"`
	Link       string    `json:"link"`
	Output     string    `json:"output"`
	Hash       string    `json:"hash"`
	Checksum   string    `json:"checksum"`
	Title      string    `json:"title"`
	Date       string    `json:"date"`
	Summary    string    `json:"summary,omitempty"`
	Tags       []string  `json:"tags,omitempty"`
	Hidden     bool      `json:"hidden"`
	RenderedAt time.Time `json:"rendered_at"`
}

func newBuildManifest() *buildManifest {
	return &buildManifest{
		Version: manifestFileVersion,
		Pages:   map[string]manifestPage{},
		Theme:   map[string]string{},
	}
}

func parseManifest(data []byte) (*buildManifest, error) {
	if len(data) == 0 {
		return newBuildManifest(), nil
	}
	var file manifestFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("generator: parse manifest: %w", err)
	}

	manifest := newBuildManifest()
	manifest.GeneratedAt = file.GeneratedAt
	manifest.Listing = file.Listing
	if file.Version != 0 {
		manifest.Version = file.Version
	}
	if file.Theme != nil {
		manifest.Theme = file.Theme
	}
	for _, entry := range file.Pages {
		manifest.setPage(entry)
	}
	return manifest, nil
}

func (m *buildManifest) marshal() ([]byte, error) {
	if m == nil {
		return nil, nil
	}
	file := manifestFile{
		Version:     m.Version,
		GeneratedAt: m.GeneratedAt,
		Theme:       m.Theme,
		Listing:     m.Listing,
	}
	if file.Version == 0 {
		file.Version = manifestFileVersion
	}
	// Stable ordering for deterministic output.
	if len(m.Pages) > 0 {
		file.Pages = make([]manifestPage, 0, len(m.Pages))
		for _, entry := range m.Pages {
			file.Pages = append(file.Pages, entry)
		}
		sort.Slice(file.Pages, func(i, j int) bool {
			return file.Pages[i].Source < file.Pages[j].Source
		})
	}
	return json.MarshalIndent(file, "", "  ")
}

func (m *buildManifest) lookupPage(source string) (manifestPage, bool) {
	if m == nil || len(m.Pages) == 0 {
		return manifestPage{}, false
	}
	entry, ok := m.Pages[strings.TrimSpace(source)]
	return entry, ok
}

func (m *buildManifest) setPage(entry manifestPage) {
	if m == nil {
		return
	}
	if m.Pages == nil {
		m.Pages = map[string]manifestPage{}
	}
	m.Pages[strings.TrimSpace(entry.Source)] = entry
}

// shouldSkipPage reports whether the source is unchanged since the recorded
// build. Hash covers the source content plus every theme input.
func (m *buildManifest) shouldSkipPage(source, hash, output string) bool {
	entry, ok := m.lookupPage(source)
	if !ok {
		return false
	}
	if entry.Hash != hash {
		return false
	}
	if strings.TrimSpace(entry.Output) != strings.TrimSpace(output) {
		return false
	}
	return true
}

// themeChanged compares the recorded theme fingerprint against the current one.
func (m *buildManifest) themeChanged(current map[string]string) bool {
	if m == nil {
		return true
	}
	if len(m.Theme) != len(current) {
		return true
	}
	for key, value := range current {
		if m.Theme[key] != value {
			return true
		}
	}
	return false
}

// staleOutputs returns output paths whose entries disappeared or moved. seen
// maps source path to the link produced by the current build.
func (m *buildManifest) staleOutputs(seen map[string]string) []string {
	if m == nil || len(m.Pages) == 0 {
		return nil
	}

	var stale []string
	for source, entry := range m.Pages {
		currentLink, exists := seen[source]
		if exists && entry.Link == currentLink {
			continue
		}
		if strings.TrimSpace(entry.Output) == "" {
			continue
		}
		stale = append(stale, entry.Output)
	}
	sort.Strings(stale)
	return stale
}

// prunePages drops entries for sources absent from the current build.
func (m *buildManifest) prunePages(seen map[string]string) {
	if m == nil || len(m.Pages) == 0 {
		return
	}
	for source := range m.Pages {
		if _, ok := seen[source]; !ok {
			delete(m.Pages, source)
		}
	}
}

// listingFingerprint hashes everything the listing pages display so metadata
// edits rebuild them. Entries arrive pre-sorted from the collection.
func listingFingerprint(entries []manifestPage) string {
	var b strings.Builder
	for _, entry := range entries {
		fmt.Fprintf(&b, "%s|%s|%s|%s|%s|%t|%s\n",
			entry.Source, entry.Slug, entry.Title, entry.Date, entry.Summary,
			entry.Hidden, strings.Join(entry.Tags, ","))
	}
	return computeHashFromString(b.String())
}
