// Package assets holds the panorama list and reads panorama files.
package assets

import (
	"path/filepath"
	"strings"
)

// Entry is one panorama in the catalog.
type Entry struct {
	ID          string // file name as configured
	Path        string
	DisplayName string
}

// displayExts are stripped from identifiers, first occurrence each, in order.
var displayExts = []string{".png", ".jpg", ".jpeg", ".webp", ".bmp", ".tga", ".gif"}

// DisplayName derives a human-readable name from a panorama identifier.
// "lobby_east.jpg" becomes "lobby east".
func DisplayName(id string) string {
	name := strings.ReplaceAll(id, "_", " ")
	for _, ext := range displayExts {
		name = strings.Replace(name, ext, "", 1)
	}
	return name
}

// Catalog is the fixed, ordered list of panoramas for a session.
type Catalog struct {
	entries []Entry
}

// NewCatalog builds a catalog of names resolved against dir.
// Empty names are skipped.
func NewCatalog(dir string, names []string) *Catalog {
	c := &Catalog{entries: make([]Entry, 0, len(names))}
	for _, name := range names {
		if name == "" {
			continue
		}
		c.entries = append(c.entries, Entry{
			ID:          name,
			Path:        filepath.Join(dir, name),
			DisplayName: DisplayName(name),
		})
	}
	return c
}

// Len returns the number of panoramas.
func (c *Catalog) Len() int {
	return len(c.entries)
}

// Entry returns the panorama at index i.
func (c *Catalog) Entry(i int) (Entry, bool) {
	if i < 0 || i >= len(c.entries) {
		return Entry{}, false
	}
	return c.entries[i], true
}

// Entries returns a copy of all entries.
func (c *Catalog) Entries() []Entry {
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}
