// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package logo

import (
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/NVIDIA/hostfetch/pkg/display"
	"github.com/NVIDIA/hostfetch/pkg/errors"
	"github.com/NVIDIA/hostfetch/pkg/platform"
)

const (
	// DefaultName is the last lookup candidate.
	DefaultName = "default"
	// NoneName disables the art column.
	NoneName = "none"

	ext         = ".txt"
	maxDistance = 2
	maxFileSize = 64 << 10
)

//go:embed logos/*.txt
var embedded embed.FS

// ArtBlock is a multi-line piece of ASCII art.
type ArtBlock struct {
	Name   string   `json:"name" yaml:"name"`
	Lines  []string `json:"lines" yaml:"lines"`
	Width  int      `json:"width" yaml:"width"`
	Height int      `json:"height" yaml:"height"`
}

// NewArtBlock splits text into lines and measures it. Trailing blank lines
// are dropped and tabs become four spaces.
func NewArtBlock(name, text string) ArtBlock {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\t", "    ")
	lines := strings.Split(text, "\n")
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}

	a := ArtBlock{Name: name, Lines: lines, Height: len(lines)}
	for _, l := range lines {
		a.Width = max(a.Width, display.Width(l))
	}
	return a
}

// IsEmpty reports whether the block has no lines.
func (a ArtBlock) IsEmpty() bool {
	return a.Height == 0
}

// Option configures a Catalog.
type Option func(*Catalog)

// WithDir adds a user logo directory. When required is true an unreadable
// directory fails NewCatalog; otherwise it is ignored.
func WithDir(dir string, required bool) Option {
	return func(c *Catalog) {
		c.dir = dir
		c.required = required
	}
}

// Catalog holds the available art blocks by name.
type Catalog struct {
	dir      string
	required bool
	blocks   map[string]ArtBlock
	names    []string
}

// NewCatalog loads the embedded blocks and then the user directory.
func NewCatalog(opts ...Option) (*Catalog, error) {
	c := &Catalog{blocks: make(map[string]ArtBlock)}
	for _, opt := range opts {
		opt(c)
	}

	if err := c.loadFS(embedded, "logos"); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, "failed to load embedded logos", err)
	}

	if c.dir != "" {
		if err := c.loadFS(os.DirFS(c.dir), "."); err != nil {
			if c.required {
				return nil, errors.WrapWithContext(errors.ErrCodeInvalidConfig,
					"logo directory is not readable", err,
					map[string]any{"dir": c.dir})
			}
			slog.Debug("skipping logo directory",
				slog.String("dir", c.dir),
				slog.String("error", err.Error()))
		}
	}

	for name := range c.blocks {
		c.names = append(c.names, name)
	}
	slices.Sort(c.names)
	return c, nil
}

func (c *Catalog) loadFS(fsys fs.FS, dir string) error {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ext) {
			continue
		}
		p := path.Join(dir, e.Name())
		if info, err := e.Info(); err == nil && info.Size() > maxFileSize {
			slog.Warn("logo file too large", slog.String("file", p), slog.Int64("size", info.Size()))
			continue
		}
		b, err := fs.ReadFile(fsys, p)
		if err != nil {
			slog.Warn("failed to read logo file", slog.String("file", p), slog.String("error", err.Error()))
			continue
		}
		name := strings.ToLower(strings.TrimSuffix(e.Name(), filepath.Ext(e.Name())))
		c.blocks[name] = NewArtBlock(name, string(b))
	}
	return nil
}

// Names returns the sorted block names.
func (c *Catalog) Names() []string {
	return slices.Clone(c.names)
}

// Get returns the block with the given name.
func (c *Catalog) Get(name string) (ArtBlock, bool) {
	a, ok := c.blocks[strings.ToLower(name)]
	return a, ok
}

// Lookup resolves the block for the profile. An override names a block
// directly; NoneName returns an empty block. Lookup always returns a block
// because the embedded catalog carries DefaultName.
func (c *Catalog) Lookup(p platform.Profile, override string) ArtBlock {
	if strings.EqualFold(override, NoneName) {
		return ArtBlock{Name: NoneName}
	}
	for _, key := range c.Candidates(p, override) {
		if a, ok := c.Get(key); ok {
			return a
		}
	}
	return ArtBlock{Name: NoneName}
}

// Candidates returns the lookup keys for the profile in priority order.
func (c *Catalog) Candidates(p platform.Profile, override string) []string {
	var keys []string
	if override != "" {
		keys = append(keys, strings.ToLower(override))
	}
	if p.Distro != "" {
		keys = append(keys, strings.ToLower(p.Distro))
	}
	keys = append(keys, p.DistroLike...)
	if p.Distro != "" {
		if near, ok := c.closest(strings.ToLower(p.Distro)); ok {
			keys = append(keys, near)
		}
	}
	keys = append(keys, p.Family.String(), DefaultName)
	return keys
}

func (c *Catalog) closest(name string) (string, bool) {
	best, bestDist := "", maxDistance+1
	for _, candidate := range c.names {
		if d := levenshtein.ComputeDistance(name, candidate); d < bestDist {
			best, bestDist = candidate, d
		}
	}
	return best, bestDist <= maxDistance
}

// String describes the catalog for diagnostics.
func (c *Catalog) String() string {
	return fmt.Sprintf("logo catalog (%d blocks, dir=%q)", len(c.names), c.dir)
}
