// Package assets provides the sprite cache the overlay draws from. Sprites
// come from an optional PNG directory and fall back to procedurally drawn
// icons, so the overlay always has something to show.
package assets

import (
	"image"
	_ "image/png"
	"io/fs"
	"log"
	"os"
	"path"
	"strings"
	"sync"
)

// Cache resolves sprite ids such as "ui/add" or "npc/cow" to images. It is
// safe for concurrent use.
type Cache struct {
	fsys fs.FS

	mu     sync.Mutex
	images map[string]image.Image
	// real filenames by lowercase name, per directory
	index map[string]map[string]string
}

// New returns a cache reading PNGs from dir. An empty dir uses only the
// built-in icons.
func New(dir string) *Cache {
	var fsys fs.FS
	if dir != "" {
		fsys = os.DirFS(dir)
	}
	return NewFS(fsys)
}

// NewFS is New over an arbitrary filesystem; nil means built-in icons only.
func NewFS(fsys fs.FS) *Cache {
	return &Cache{
		fsys:   fsys,
		images: map[string]image.Image{},
		index:  map[string]map[string]string{},
	}
}

// Sprite returns the image for id, loading it once.
func (c *Cache) Sprite(id string) image.Image {
	c.mu.Lock()
	defer c.mu.Unlock()
	if img, ok := c.images[id]; ok {
		return img
	}
	img := c.load(id)
	if img == nil {
		img = generate(id)
	}
	c.images[id] = img
	return img
}

// Preload resolves ids ahead of the first frame.
func (c *Cache) Preload(ids ...string) {
	for _, id := range ids {
		c.Sprite(id)
	}
}

func (c *Cache) load(id string) image.Image {
	if c.fsys == nil || id == "" {
		return nil
	}
	p := id + ".png"
	f, err := c.fsys.Open(p)
	if err != nil {
		// try case-insensitive filename within the same dir
		dir, file := path.Split(p)
		dir = strings.TrimRight(dir, "/")
		if real, ok := c.dirIndex(dir)[strings.ToLower(file)]; ok {
			f, err = c.fsys.Open(path.Join(dir, real))
		}
	}
	if err != nil {
		return nil
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		log.Printf("assets: decode %s: %v", p, err)
		return nil
	}
	return img
}

// dirIndex must be called with c.mu held.
func (c *Cache) dirIndex(dir string) map[string]string {
	if m, ok := c.index[dir]; ok {
		return m
	}
	name := dir
	if name == "" {
		name = "."
	}
	m := map[string]string{}
	if entries, err := fs.ReadDir(c.fsys, name); err == nil {
		for _, e := range entries {
			m[strings.ToLower(e.Name())] = e.Name()
		}
	}
	c.index[dir] = m
	return m
}
