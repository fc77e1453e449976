package assets

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDisplayName(t *testing.T) {
	tests := []struct {
		id   string
		want string
	}{
		{"Panorama.png", "Panorama"},
		{"lobby_east.jpg", "lobby east"},
		{"roof_top_view.jpeg", "roof top view"},
		{"plain", "plain"},
		{"scan.webp", "scan"},
		{"a.png.png", "a.png"}, // only the first occurrence is stripped
		{"", ""},
	}

	for _, tt := range tests {
		if got := DisplayName(tt.id); got != tt.want {
			t.Errorf("DisplayName(%q): expected %q, got %q", tt.id, tt.want, got)
		}
	}
}

func TestCatalog(t *testing.T) {
	c := NewCatalog("images", []string{"Panorama.png", "", "my_building.jpg"})

	if c.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", c.Len())
	}

	e, ok := c.Entry(1)
	if !ok {
		t.Fatal("expected entry 1 to exist")
	}
	if e.ID != "my_building.jpg" || e.DisplayName != "my building" {
		t.Errorf("unexpected entry: %+v", e)
	}
	if e.Path != filepath.Join("images", "my_building.jpg") {
		t.Errorf("expected path images/my_building.jpg, got %s", e.Path)
	}

	for _, i := range []int{-1, 2, 100} {
		if _, ok := c.Entry(i); ok {
			t.Errorf("expected index %d to be out of range", i)
		}
	}

	entries := c.Entries()
	entries[0].ID = "changed"
	if first, _ := c.Entry(0); first.ID != "Panorama.png" {
		t.Error("Entries should return a copy")
	}
}

func TestManagerLoad(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a.png"), []byte("data"), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	m := NewManager(dir)
	defer m.Close()

	for i := 0; i < 2; i++ {
		data, err := m.Load("a.png")
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if string(data) != "data" {
			t.Errorf("expected 'data', got %q", data)
		}
	}

	hits, misses := m.Cache().Stats()
	if hits != 1 || misses != 1 {
		t.Errorf("expected 1 hit and 1 miss, got %d/%d", hits, misses)
	}

	if _, err := m.Load("missing.png"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestCacheEvictAndClear(t *testing.T) {
	c := NewCache()
	c.Set("k", []byte{1})
	c.Evict("k")
	if _, ok := c.Get("k"); ok {
		t.Error("expected evicted key to be gone")
	}

	c.Set("k", []byte{1})
	c.Get("k")
	c.Clear()
	if hits, misses := c.Stats(); hits != 0 || misses != 0 {
		t.Errorf("expected stats reset, got %d/%d", hits, misses)
	}
}
