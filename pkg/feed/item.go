package feed

import (
	"fmt"
	"time"
)

// Item is one dated entry extracted from a channel, e.g. a single calendar
// event. Items are built by a Parser (or the custom-item endpoint) and never
// modified after insertion; the owning Feed holds the only references.
type Item struct {
	Title       string
	Published   time.Time
	Description string // opaque rich text, sanitized at render time
	Start       time.Time
	End         time.Time
	Location    string // meetings variant only, raw address<br>city value
}

// ID returns the stable identity used to deduplicate events across polls.
// It is derived from the title and the start instant only, so two parses of
// the same logical event agree on it even when the description text moved.
func (i *Item) ID() string {
	return fmt.Sprintf("%s || %d", i.Title, i.Start.UnixMilli())
}

// key is the start-time bucket key. It uses the same epoch-ms granularity
// the identity embeds, so the two indices can never disagree about which
// instant an item belongs to.
func (i *Item) key() int64 { return i.Start.UnixMilli() }
