package feed

import (
	"fmt"
	"iter"
	"slices"
	"time"

	"github.com/mmcdole/gofeed"
)

// Feed is the long-lived, dual-indexed collection of items for one channel.
// The identity index deduplicates events across polls, the start-time index
// keeps an ordered bucket per instant for sorted rendering, and every
// mutation keeps the two in lock-step. The collection does no locking of its
// own, the owner serializes access. Construct with NewFeed, the zero value
// is not usable.
type Feed struct {
	Title       string
	Link        string
	Description string
	BuildTime   time.Time // remote channel's last-build time

	parser  Parser
	byID    map[string]*Item
	byStart map[int64][]*Item // ordered bucket per start instant
}

// NewFeed constructs the collection from the initial parse of the remote
// channel. The first unparsable entry fails construction.
func NewFeed(p Parser, ch *gofeed.Feed) (*Feed, error) {
	f := &Feed{
		parser:  p,
		byID:    map[string]*Item{},
		byStart: map[int64][]*Item{},
	}
	f.adopt(ch)
	for _, entry := range ch.Items {
		if _, _, err := f.AddEntry(entry); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// adopt refreshes channel-level metadata from a remote document.
func (f *Feed) adopt(ch *gofeed.Feed) {
	f.Title, f.Link, f.Description = ch.Title, ch.Link, ch.Description
	if ch.UpdatedParsed != nil {
		f.BuildTime = *ch.UpdatedParsed
	}
}

// Insert adds the item to both indices. The identity slot is overwritten
// unconditionally, callers dedup first (see TryInsert). The item is appended
// to its start-time bucket, creating the bucket when absent.
func (f *Feed) Insert(it *Item) {
	f.byID[it.ID()] = it
	k := it.key()
	f.byStart[k] = append(f.byStart[k], it)
}

// Remove deletes the item with the given identity from both indices.
// Returns ErrNotFound for an unknown identity. ErrInconsistent means the
// item was in the identity index but not in its start-time bucket, which
// indicates corruption.
func (f *Feed) Remove(id string) error {
	it, ok := f.byID[id]
	if !ok {
		return fmt.Errorf("remove %q: %w", id, ErrNotFound)
	}

	k := it.key()
	bucket := f.byStart[k]
	idx := slices.Index(bucket, it)
	if idx < 0 {
		return fmt.Errorf("remove %q from start bucket: %w", id, ErrInconsistent)
	}

	bucket = slices.Delete(bucket, idx, idx+1)
	if len(bucket) == 0 {
		delete(f.byStart, k) // prune the empty bucket right away
	} else {
		f.byStart[k] = bucket
	}
	delete(f.byID, id)
	return nil
}

// AddEntry parses one raw entry and inserts the result unless its identity
// is already held. Returns the held item and whether it was created.
func (f *Feed) AddEntry(entry *gofeed.Item) (*Item, bool, error) {
	it, err := f.parser.ParseEntry(entry)
	if err != nil {
		return nil, false, err
	}
	held, created := f.TryInsert(it)
	return held, created, nil
}

// TryInsert inserts an already-built item unless its identity is held, in
// which case the existing item stays and is returned with created=false.
func (f *Feed) TryInsert(it *Item) (*Item, bool) {
	if held, ok := f.byID[it.ID()]; ok {
		return held, false
	}
	f.Insert(it)
	return it, true
}

// StartTimes yields the distinct start instants in ascending order. The
// sequence is lazy and restartable: each traversal re-reads the live index,
// so ranging again after a mutation reflects the new state.
func (f *Feed) StartTimes() iter.Seq[time.Time] {
	return func(yield func(time.Time) bool) {
		for _, k := range f.sortedKeys() {
			if !yield(time.UnixMilli(k).UTC()) {
				return
			}
		}
	}
}

// Items yields all items ordered by ascending start time, insertion order
// within one instant. Restartable the same way StartTimes is.
func (f *Feed) Items() iter.Seq[*Item] {
	return func(yield func(*Item) bool) {
		for _, k := range f.sortedKeys() {
			for _, it := range f.byStart[k] {
				if !yield(it) {
					return
				}
			}
		}
	}
}

// Next returns the earliest item, ok=false on an empty collection.
func (f *Feed) Next() (*Item, bool) {
	for it := range f.Items() {
		return it, true
	}
	return nil, false
}

// Bounded yields at most limit items of Items; a non-positive limit yields
// nothing.
func (f *Feed) Bounded(limit int) iter.Seq[*Item] {
	return func(yield func(*Item) bool) {
		n := 0
		for it := range f.Items() {
			if n >= limit || !yield(it) {
				return
			}
			n++
		}
	}
}

// Len returns the number of held items.
func (f *Feed) Len() int { return len(f.byID) }

func (f *Feed) sortedKeys() []int64 {
	keys := make([]int64, 0, len(f.byStart))
	for k := range f.byStart {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
