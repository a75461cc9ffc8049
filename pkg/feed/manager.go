package feed

import (
	"context"
	"fmt"
	"iter"
	"log"
	"slices"
	"sync"
	"time"

	"github.com/mmcdole/gofeed"
)

//go:generate moq -out mocks/fetcher.go -pkg mocks -skip-ensure -fmt goimports . ChannelFetcher

// ChannelFetcher retrieves parsed channel documents. A nil document with a
// nil error means the remote had no new content for this poll.
type ChannelFetcher interface {
	Fetch(ctx context.Context, feedURL string) (*gofeed.Feed, error)
	FetchFresh(ctx context.Context, feedURL string) (*gofeed.Feed, error)
}

// Source describes one configured channel.
type Source struct {
	Name      string
	URL       string
	Title     string // display title override, channel title when empty
	Variant   string
	MaxItems  int      // default render cap, 0 means uncapped
	Locations []string // meetings variant address allow list
}

// managed pairs one live collection with its variant helpers and poll
// bookkeeping. The mutex serializes the poll loop against render snapshots.
type managed struct {
	src      Source
	parser   Parser
	renderer Renderer

	mu          sync.RWMutex
	col         *Feed
	lastPoll    time.Time
	lastApplied time.Time
	lastErr     error
}

func (mf *managed) collection() *Feed {
	mf.mu.RLock()
	defer mf.mu.RUnlock()
	return mf.col
}

// Manager owns the long-lived collections, one per configured source, and is
// their only writer. Rendering snapshots are copied out under the read lock
// so the poll loops and the HTTP handlers never observe a half-applied pass.
type Manager struct {
	fetcher ChannelFetcher
	feeds   map[string]*managed
	names   []string // configuration order, used for stable listings
}

// FeedInfo is the per-feed summary for the status endpoints.
type FeedInfo struct {
	Name        string        `json:"name"`
	Title       string        `json:"title"`
	Link        string        `json:"link,omitempty"`
	Variant     string        `json:"variant"`
	Items       int           `json:"items"`
	BuildTime   time.Time     `json:"build_time"`
	FirstStart  time.Time     `json:"first_start"`
	LastStart   time.Time     `json:"last_start"`
	Next        *RenderedItem `json:"next,omitempty"`
	LastPoll    time.Time     `json:"last_poll"`
	LastApplied time.Time     `json:"last_applied"`
	LastError   string        `json:"last_error,omitempty"`
}

// NewManager builds the manager from configured sources. Unknown variants
// and duplicate names fail here, so a bad config dies at startup rather than
// mid-poll.
func NewManager(fetcher ChannelFetcher, sources []Source) (*Manager, error) {
	m := &Manager{fetcher: fetcher, feeds: map[string]*managed{}}
	for _, src := range sources {
		if _, exists := m.feeds[src.Name]; exists {
			return nil, fmt.Errorf("duplicate feed name %q", src.Name)
		}
		p, err := NewParser(src.Variant)
		if err != nil {
			return nil, fmt.Errorf("feed %q: %w", src.Name, err)
		}
		r, err := NewRenderer(src.Variant)
		if err != nil {
			return nil, fmt.Errorf("feed %q: %w", src.Name, err)
		}
		m.feeds[src.Name] = &managed{src: src, parser: p, renderer: r}
		m.names = append(m.names, src.Name)
	}
	return m, nil
}

// Names returns the configured feed names in configuration order.
func (m *Manager) Names() []string { return slices.Clone(m.names) }

// Refresh runs one poll for the named feed: fetch, then construct the
// collection on the first document or reconcile on the ones after. A nil
// document is a no-op poll. Fetching happens outside the lock, only the
// apply blocks renders.
func (m *Manager) Refresh(ctx context.Context, name string) error {
	mf, err := m.get(name)
	if err != nil {
		return err
	}

	var ch *gofeed.Feed
	if mf.collection() == nil {
		ch, err = m.fetcher.FetchFresh(ctx, mf.src.URL)
	} else {
		ch, err = m.fetcher.Fetch(ctx, mf.src.URL)
	}

	mf.mu.Lock()
	defer mf.mu.Unlock()
	mf.lastPoll = time.Now()
	if err != nil {
		mf.lastErr = err
		return fmt.Errorf("fetch feed %q: %w", name, err)
	}
	mf.lastErr = nil
	if ch == nil {
		log.Printf("[DEBUG] feed %q not modified", name)
		return nil
	}

	if mf.col == nil {
		col, cerr := NewFeed(mf.parser, ch)
		if cerr != nil {
			mf.lastErr = cerr
			return fmt.Errorf("build feed %q: %w", name, cerr)
		}
		if mf.src.Title != "" {
			col.Title = mf.src.Title
		}
		mf.col = col
		mf.lastApplied = time.Now()
		log.Printf("[INFO] feed %q built, %d items", name, col.Len())
		return nil
	}

	changed, removed, rerr := mf.col.Reconcile(ch)
	if rerr != nil {
		mf.lastErr = rerr
		return fmt.Errorf("reconcile feed %q: %w", name, rerr)
	}
	if changed {
		mf.lastApplied = time.Now()
		log.Printf("[INFO] feed %q reconciled, %d items now, %d removed", name, mf.col.Len(), len(removed))
	}
	return nil
}

// Items returns the rendered snapshot for one feed: the address filter
// applied first, then capped by limit. A non-positive limit falls back to
// the per-feed max, zero max means uncapped.
func (m *Manager) Items(name string, limit int) ([]RenderedItem, error) {
	mf, err := m.get(name)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = mf.src.MaxItems
	}

	mf.mu.RLock()
	defer mf.mu.RUnlock()
	if mf.col == nil {
		return []RenderedItem{}, nil
	}

	src := mf.col.Items()
	switch {
	case len(mf.src.Locations) > 0:
		src = filterByAddress(src, mf.src.Locations)
	case limit > 0:
		src = mf.col.Bounded(limit)
	}

	out := []RenderedItem{}
	for it := range src {
		out = append(out, mf.renderer.Render(it))
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

// Events returns a value copy of the current items for one feed in sorted
// order, address filter applied. Used by the calendar export.
func (m *Manager) Events(name string) ([]Item, error) {
	mf, err := m.get(name)
	if err != nil {
		return nil, err
	}

	mf.mu.RLock()
	defer mf.mu.RUnlock()
	if mf.col == nil {
		return []Item{}, nil
	}

	src := mf.col.Items()
	if len(mf.src.Locations) > 0 {
		src = filterByAddress(src, mf.src.Locations)
	}
	out := []Item{}
	for it := range src {
		out = append(out, *it)
	}
	return out, nil
}

// AddItem inserts a manually created item into the named feed with the usual
// identity dedup; created=false reports an identity collision. The feed must
// have been built by a successful poll first.
func (m *Manager) AddItem(name string, it *Item) (bool, error) {
	mf, err := m.get(name)
	if err != nil {
		return false, err
	}
	if it.Start.IsZero() {
		return false, fmt.Errorf("item start: %w", ErrInvalidDate)
	}

	mf.mu.Lock()
	defer mf.mu.Unlock()
	if mf.col == nil {
		return false, fmt.Errorf("feed %q: %w", name, ErrNotReady)
	}
	_, created := mf.col.TryInsert(it)
	if created {
		mf.lastApplied = time.Now()
		log.Printf("[INFO] custom item %q added to feed %q", it.Title, name)
	}
	return created, nil
}

// Info returns the status summary for one feed.
func (m *Manager) Info(name string) (FeedInfo, error) {
	mf, err := m.get(name)
	if err != nil {
		return FeedInfo{}, err
	}

	mf.mu.RLock()
	defer mf.mu.RUnlock()

	info := FeedInfo{
		Name:        name,
		Title:       mf.src.Title,
		Variant:     mf.src.Variant,
		LastPoll:    mf.lastPoll,
		LastApplied: mf.lastApplied,
	}
	if info.Variant == "" {
		info.Variant = "calendar"
	}
	if mf.lastErr != nil {
		info.LastError = mf.lastErr.Error()
	}
	if mf.col == nil {
		return info, nil
	}

	if info.Title == "" {
		info.Title = mf.col.Title
	}
	info.Link = mf.col.Link
	info.Items = mf.col.Len()
	info.BuildTime = mf.col.BuildTime
	for ts := range mf.col.StartTimes() {
		if info.FirstStart.IsZero() {
			info.FirstStart = ts
		}
		info.LastStart = ts
	}
	if next, ok := mf.col.Next(); ok {
		r := mf.renderer.Render(next)
		info.Next = &r
	}
	return info, nil
}

// LastApplied reports when the named feed last changed visibly, the value
// the fragment handlers key their Last-Modified caching on. Zero for an
// unknown or not yet built feed.
func (m *Manager) LastApplied(name string) time.Time {
	mf, err := m.get(name)
	if err != nil {
		return time.Time{}
	}
	mf.mu.RLock()
	defer mf.mu.RUnlock()
	return mf.lastApplied
}

func (m *Manager) get(name string) (*managed, error) {
	mf, ok := m.feeds[name]
	if !ok {
		return nil, fmt.Errorf("feed %q: %w", name, ErrNotFound)
	}
	return mf, nil
}

// filterByAddress keeps items whose location address half is in the allow
// list, the lobby display convention for meeting feeds.
func filterByAddress(src iter.Seq[*Item], allow []string) iter.Seq[*Item] {
	return func(yield func(*Item) bool) {
		for it := range src {
			addr, _ := SplitLocation(it.Location)
			if !slices.Contains(allow, addr) {
				continue
			}
			if !yield(it) {
				return
			}
		}
	}
}
