package feed

import (
	"fmt"
	"log"

	"github.com/mmcdole/gofeed"
)

// Reconcile applies a freshly fetched snapshot of the remote channel to the
// collection in place. It reports whether the visible state changed and the
// set of identities removed by this pass.
//
// The pass is skipped entirely when the remote build time is strictly newer
// than the locally stored one; an equal, older or absent remote build
// proceeds. The removal set starts as every identity currently held and is
// not pruned when a remote entry re-confirms an existing identity, so an
// applied pass drops all previously known items and keeps only what the
// current snapshot created. Both behaviors match the display runtime this
// collection replaces and are kept deliberately, see DESIGN.md.
func (f *Feed) Reconcile(ch *gofeed.Feed) (changed bool, removed map[string]bool, err error) {
	removed = map[string]bool{}

	if ch.UpdatedParsed != nil && ch.UpdatedParsed.After(f.BuildTime) {
		log.Printf("[DEBUG] skip reconcile of %q, remote build %s newer than local %s",
			f.Title, ch.UpdatedParsed.Format("2006-01-02T15:04:05"), f.BuildTime.Format("2006-01-02T15:04:05"))
		return false, removed, nil
	}

	// parse everything up front so that one bad entry aborts the cycle with
	// the collection untouched
	items := make([]*Item, 0, len(ch.Items))
	for _, entry := range ch.Items {
		it, perr := f.parser.ParseEntry(entry)
		if perr != nil {
			return false, nil, fmt.Errorf("entry %q: %w", entry.Title, perr)
		}
		items = append(items, it)
	}

	for id := range f.byID {
		removed[id] = true
	}

	for _, it := range items {
		if _, created := f.TryInsert(it); created {
			changed = true
		}
	}
	if len(removed) > 0 {
		changed = true
	}
	for id := range removed {
		if rerr := f.Remove(id); rerr != nil {
			return changed, removed, fmt.Errorf("reconcile removal: %w", rerr)
		}
	}

	f.adopt(ch)
	return changed, removed, nil
}
