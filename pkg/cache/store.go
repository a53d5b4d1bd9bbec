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

package cache

import (
	"fmt"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"k8s.io/utils/clock"

	"github.com/NVIDIA/hostfetch/pkg/defaults"
	"github.com/NVIDIA/hostfetch/pkg/errors"
	"github.com/NVIDIA/hostfetch/pkg/fact"
	"github.com/NVIDIA/hostfetch/pkg/header"
)

const (
	dirName  = "hostfetch"
	fileName = "cache.json"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Record is one cached fact with the time it was stored.
type Record struct {
	Fact     fact.Fact `json:"fact"`
	StoredAt time.Time `json:"storedAt"`
}

// CountRecord is one cached package manager count.
type CountRecord struct {
	Manager  string    `json:"manager"`
	Count    int       `json:"count"`
	StoredAt time.Time `json:"storedAt"`
}

// Entry is the content of the cache file.
type Entry struct {
	header.Header

	Fingerprint string        `json:"fingerprint"`
	Timestamp   time.Time     `json:"timestamp"`
	Records     []Record      `json:"records"`
	Counts      []CountRecord `json:"counts,omitempty"`
}

// Fact returns the cached fact of kind, marked as coming from the cache.
func (e Entry) Fact(kind fact.Kind) (fact.Fact, bool) {
	for _, r := range e.Records {
		if r.Fact.Kind == kind {
			return r.Fact.WithSource(fact.SourceCache), true
		}
	}
	return fact.Fact{}, false
}

// Kinds returns the cached kinds.
func (e Entry) Kinds() []fact.Kind {
	kinds := make([]fact.Kind, 0, len(e.Records))
	for _, r := range e.Records {
		kinds = append(kinds, r.Fact.Kind)
	}
	return kinds
}

// DefaultPath returns the cache file location under the user cache
// directory, $XDG_CACHE_HOME on Linux.
func DefaultPath() (string, error) {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidConfig, "user cache directory unknown", err)
	}
	return filepath.Join(dir, dirName, fileName), nil
}

// Store reads and writes the cache file.
type Store struct {
	mu       sync.Mutex
	path     string
	version  string
	clock    clock.PassiveClock
	ttls     map[fact.Kind]time.Duration
	countTTL time.Duration
}

// Option configures a Store.
type Option func(*Store)

// WithPath sets the cache file location.
func WithPath(path string) Option {
	return func(s *Store) {
		s.path = path
	}
}

// WithClock sets the clock used for timestamps and expiry.
func WithClock(clk clock.PassiveClock) Option {
	return func(s *Store) {
		s.clock = clk
	}
}

// WithVersion records the producer version in the entry header.
func WithVersion(version string) Option {
	return func(s *Store) {
		s.version = version
	}
}

// WithTTL overrides the TTL of kind. A zero or negative TTL makes the kind
// ineligible.
func WithTTL(kind fact.Kind, ttl time.Duration) Option {
	return func(s *Store) {
		if ttl <= 0 {
			delete(s.ttls, kind)
			return
		}
		s.ttls[kind] = ttl
	}
}

// WithCountTTL sets how long package manager counts stay fresh. A zero or
// negative TTL disables count caching.
func WithCountTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.countTTL = ttl
	}
}

// WithoutKinds makes kinds ineligible, for example CPU when its value
// carries a live temperature.
func WithoutKinds(kinds ...fact.Kind) Option {
	return func(s *Store) {
		for _, k := range kinds {
			delete(s.ttls, k)
		}
	}
}

// NewStore returns a store at DefaultPath unless WithPath is given.
func NewStore(opts ...Option) (*Store, error) {
	s := &Store{
		clock:    clock.RealClock{},
		ttls:     maps.Clone(DefaultTTLs),
		countTTL: defaults.CacheTTLPackages,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		s.path = p
	}
	return s, nil
}

// Path returns the cache file location.
func (s *Store) Path() string {
	return s.path
}

// Eligible reports whether kind is cached by this store.
func (s *Store) Eligible(kind fact.Kind) bool {
	_, ok := s.ttls[kind]
	return ok
}

// Load returns the fresh records stored for fingerprint. Any problem with
// the file is reported as a miss.
func (s *Store) Load(fingerprint string) (Entry, bool) {
	e, err := s.read()
	if err != nil {
		if errors.IsCode(err, errors.ErrCodeCacheCorrupt) {
			slog.Debug("ignoring cache file", slog.String("path", s.path), slog.String("error", err.Error()))
		}
		return Entry{}, false
	}
	if e.Fingerprint != fingerprint {
		slog.Debug("cache fingerprint mismatch", slog.String("path", s.path))
		return Entry{}, false
	}

	e.Records = s.fresh(e.Records)
	if len(e.Records) == 0 {
		return Entry{}, false
	}
	return e, true
}

// Save stores the eligible, healthy facts for fingerprint. Degraded facts
// are not stored so a transient failure is retried on the next run. Fresh
// records already in the file for the same fingerprint are kept unless
// replaced.
func (s *Store) Save(fingerprint string, facts []fact.Fact) error {
	return s.update(fingerprint, func(e *Entry, now time.Time) bool {
		records := make(map[fact.Kind]Record, len(e.Records))
		for _, r := range e.Records {
			records[r.Fact.Kind] = r
		}

		added := false
		for _, f := range facts {
			if !s.Eligible(f.Kind) || !f.IsOK() || f.Source == fact.SourceCache {
				continue
			}
			records[f.Kind] = Record{Fact: f.Normalize().WithSource(fact.SourceLive), StoredAt: now}
			added = true
		}

		e.Records = e.Records[:0]
		for _, k := range slices.Sorted(maps.Keys(records)) {
			e.Records = append(e.Records, records[k])
		}
		return added
	})
}

// LoadCounts returns the fresh package manager counts stored for
// fingerprint, keyed by manager name.
func (s *Store) LoadCounts(fingerprint string) map[string]int {
	counts := make(map[string]int)
	if s.countTTL <= 0 {
		return counts
	}
	e, err := s.read()
	if err != nil || e.Fingerprint != fingerprint {
		return counts
	}
	for _, r := range s.freshCounts(e.Counts) {
		counts[r.Manager] = r.Count
	}
	return counts
}

// SaveCounts stores package manager counts for fingerprint. Counts already
// stored for other managers are kept while fresh.
func (s *Store) SaveCounts(fingerprint string, counts map[string]int) error {
	if s.countTTL <= 0 || len(counts) == 0 {
		return nil
	}
	return s.update(fingerprint, func(e *Entry, now time.Time) bool {
		byName := make(map[string]CountRecord, len(e.Counts)+len(counts))
		for _, r := range e.Counts {
			byName[r.Manager] = r
		}
		for name, n := range counts {
			byName[name] = CountRecord{Manager: name, Count: n, StoredAt: now}
		}

		e.Counts = e.Counts[:0]
		for _, name := range slices.Sorted(maps.Keys(byName)) {
			e.Counts = append(e.Counts, byName[name])
		}
		return true
	})
}

// Counts binds the count cache to one fingerprint.
func (s *Store) Counts(fingerprint string) *Counts {
	return &Counts{store: s, fingerprint: fingerprint}
}

// Counts is the package manager count cache of one machine.
type Counts struct {
	store       *Store
	fingerprint string
}

// LoadCounts returns the fresh cached counts.
func (c *Counts) LoadCounts() map[string]int {
	return c.store.LoadCounts(c.fingerprint)
}

// SaveCounts stores counts.
func (c *Counts) SaveCounts(counts map[string]int) error {
	return c.store.SaveCounts(c.fingerprint, counts)
}

// update rewrites the entry for fingerprint, starting from the fresh part of
// the current file. fn reports whether anything changed.
func (s *Store) update(fingerprint string, fn func(e *Entry, now time.Time) bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	e := Entry{Fingerprint: fingerprint, Timestamp: now}
	if prev, err := s.read(); err == nil && prev.Fingerprint == fingerprint {
		e.Records = s.fresh(prev.Records)
		e.Counts = s.freshCounts(prev.Counts)
	}

	if !fn(&e, now) {
		return nil
	}
	e.Init(header.KindCacheEntry, s.version, now)
	return s.write(e)
}

// Clear removes the cache file. A missing file is not an error.
func (s *Store) Clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(errors.ErrCodeInternal, "failed to remove cache file", err)
	}
	return nil
}

func (s *Store) fresh(records []Record) []Record {
	now := s.clock.Now()
	out := make([]Record, 0, len(records))
	for _, r := range records {
		ttl, ok := s.ttls[r.Fact.Kind]
		if !ok || r.StoredAt.After(now) || now.Sub(r.StoredAt) >= ttl {
			continue
		}
		out = append(out, r)
	}
	return out
}

func (s *Store) freshCounts(counts []CountRecord) []CountRecord {
	now := s.clock.Now()
	out := make([]CountRecord, 0, len(counts))
	for _, r := range counts {
		if s.countTTL <= 0 || r.StoredAt.After(now) || now.Sub(r.StoredAt) >= s.countTTL {
			continue
		}
		out = append(out, r)
	}
	return out
}

func (s *Store) read() (Entry, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return Entry{}, errors.New(errors.ErrCodeCacheMiss, "no cache file")
		}
		return Entry{}, errors.Wrap(errors.ErrCodeCacheCorrupt, "cache file unreadable", err)
	}

	var e Entry
	if err := json.Unmarshal(data, &e); err != nil {
		return Entry{}, errors.Wrap(errors.ErrCodeCacheCorrupt, "cache file malformed", err)
	}
	if !e.Matches(header.KindCacheEntry) {
		return Entry{}, errors.NewWithContext(errors.ErrCodeCacheCorrupt, "unexpected cache document",
			map[string]any{"kind": e.Kind, "apiVersion": e.APIVersion})
	}
	return e, nil
}

func (s *Store) write(e Entry) error {
	data, err := json.MarshalIndent(e, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, "failed to encode cache entry", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, "failed to create cache directory", err)
	}

	tmp := filepath.Join(dir, fmt.Sprintf(".%s.%s.tmp", fileName, uuid.NewString()))
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, "failed to write cache file", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return errors.Wrap(errors.ErrCodeInternal, "failed to replace cache file", err)
	}
	return nil
}
