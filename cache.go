package skillsite

import (
	"database/sql"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/eringen/skillsite/views"
)

// ErrNotFound is returned when a requested post does not exist.
var ErrNotFound = sql.ErrNoRows

// postSnapshot is one load of the published posts with the lookups the
// Posts page, the feed and the sitemap read from. It is never mutated
// after it is built.
type postSnapshot struct {
	posts   []views.Post // newest first
	tags    []string
	byTag   map[string][]views.Post
	text    []string // lowercased searchable text, aligned with posts
	fetched time.Time
}

func newSnapshot(posts []views.Post, tags []string) *postSnapshot {
	s := &postSnapshot{
		posts:   posts,
		tags:    tags,
		byTag:   make(map[string][]views.Post),
		text:    make([]string, len(posts)),
		fetched: time.Now(),
	}
	for i, p := range posts {
		for _, t := range p.Tags {
			t = normalizeTag(t)
			s.byTag[t] = append(s.byTag[t], p)
		}
		s.text[i] = strings.ToLower(strings.Join([]string{p.Title, p.Summary, p.Content, strings.Join(p.Tags, " ")}, "\n"))
	}
	return s
}

func (s *postSnapshot) fresh(ttl time.Duration) bool {
	return s != nil && time.Since(s.fetched) < ttl
}

// PostCache holds a snapshot of the published posts for ttl. Admin writes
// call Invalidate so the next read reloads from the Store.
type PostCache struct {
	mu    sync.RWMutex
	snap  *postSnapshot
	ttl   time.Duration
	store *Store
}

// NewPostCache creates a PostCache backed by the given Store.
func NewPostCache(s *Store, ttl time.Duration) *PostCache {
	return &PostCache{store: s, ttl: ttl}
}

// Invalidate drops the snapshot so the next read triggers a fresh load.
func (c *PostCache) Invalidate() {
	c.mu.Lock()
	c.snap = nil
	c.mu.Unlock()
}

func (c *PostCache) snapshot() (*postSnapshot, error) {
	c.mu.RLock()
	s := c.snap
	c.mu.RUnlock()
	if s.fresh(c.ttl) {
		return s, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.snap.fresh(c.ttl) {
		return c.snap, nil
	}
	posts, err := c.store.ListPosts("")
	if err != nil {
		return nil, err
	}
	tags, err := c.store.ListTags()
	if err != nil {
		return nil, err
	}
	c.snap = newSnapshot(posts, tags)
	return c.snap, nil
}

// ListPosts returns published posts, newest first, optionally filtered by
// tag.
func (c *PostCache) ListPosts(tag string) ([]views.Post, error) {
	s, err := c.snapshot()
	if err != nil {
		return nil, err
	}
	if tag == "" {
		return s.posts, nil
	}
	return s.byTag[normalizeTag(tag)], nil
}

// ListTags returns all unique tags from published posts.
func (c *PostCache) ListTags() ([]string, error) {
	s, err := c.snapshot()
	if err != nil {
		return nil, err
	}
	return s.tags, nil
}

// PostResult is one page of the Posts listing.
type PostResult struct {
	Posts []views.Post
	Total int // matches across all pages
	Page  int // 1-based, clamped to [1, Pages]
	Pages int // at least 1
}

// Query filters the snapshot by f's tag and search terms, orders the
// matches by f.Sort and returns page f.Page of perPage posts. Every term
// of f.Query must appear in a post's title, summary, content or tags,
// ignoring case. A perPage of zero or less puts every match on one page.
func (c *PostCache) Query(f views.PostFilter, perPage int) (PostResult, error) {
	s, err := c.snapshot()
	if err != nil {
		return PostResult{}, err
	}

	tag := normalizeTag(f.Tag)
	terms := strings.Fields(strings.ToLower(f.Query))
	var matches []views.Post
	for i, p := range s.posts {
		if tag != "" && !slices.ContainsFunc(p.Tags, func(t string) bool { return normalizeTag(t) == tag }) {
			continue
		}
		if !containsAll(s.text[i], terms) {
			continue
		}
		matches = append(matches, p)
	}
	sortPosts(matches, f.Sort)

	res := PostResult{Total: len(matches), Page: f.Page, Pages: 1}
	if perPage > 0 && len(matches) > perPage {
		res.Pages = (len(matches) + perPage - 1) / perPage
	}
	res.Page = min(max(res.Page, 1), res.Pages)
	if perPage > 0 {
		start := (res.Page - 1) * perPage
		matches = matches[start:min(start+perPage, len(matches))]
	}
	res.Posts = matches
	return res, nil
}

func containsAll(text string, terms []string) bool {
	for _, t := range terms {
		if !strings.Contains(text, t) {
			return false
		}
	}
	return true
}

// sortPosts orders newest-first input by order. Unknown orders keep it.
func sortPosts(posts []views.Post, order string) {
	switch order {
	case views.SortOldest:
		slices.SortStableFunc(posts, func(a, b views.Post) int {
			return strings.Compare(a.Date, b.Date)
		})
	case views.SortTitle:
		slices.SortStableFunc(posts, func(a, b views.Post) int {
			return strings.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title))
		})
	}
}

func normalizeTag(t string) string {
	return strings.ToLower(strings.TrimSpace(t))
}
