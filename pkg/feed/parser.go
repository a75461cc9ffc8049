package feed

import (
	"fmt"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/mmcdole/gofeed"
)

// Parser builds an Item from one raw channel entry. Implementations are
// pure: no side effects, the same entry always yields the same item.
type Parser interface {
	ParseEntry(entry *gofeed.Item) (*Item, error)
}

// NewParser returns the entry parser for a configured feed variant.
func NewParser(variant string) (Parser, error) {
	switch variant {
	case "calendar", "":
		return CalendarParser{}, nil
	case "meetings":
		return MeetingsParser{}, nil
	}
	return nil, fmt.Errorf("unknown feed variant %q", variant)
}

// calendarExt is the extension namespace municipal calendar channels use
// for event date and time fields.
const calendarExt = "calendarEvent"

// timestampLayouts cover the formats the channels publish, e.g.
// "September 02, 2020 10:00 AM", plus the abbreviated forms seen in older
// ones. Values carry wall-clock local time with no zone designator and are
// parsed as UTC.
var timestampLayouts = []string{
	"January 2, 2006 3:04 PM",
	"Jan 2, 2006 3:04 PM",
	"Jan 2 2006 3:04 PM",
	"January 2, 2006",
	"Jan 2, 2006",
	"Jan 2 2006",
}

// CalendarParser extracts items from CivicPlus-style calendar channels. The
// EventTimes extension field holds "10:00 AM - 11:00 AM" (the end half may
// be missing), EventDates holds a single date or a "date - date" range
// applied to start and end respectively.
type CalendarParser struct{}

// ParseEntry converts one raw entry into an Item, failing with ErrInvalidDate
// when the event span cannot be resolved.
func (CalendarParser) ParseEntry(entry *gofeed.Item) (*Item, error) {
	start, end, err := eventSpan(entry)
	if err != nil {
		return nil, err
	}

	it := &Item{
		Title:       entry.Title,
		Description: entry.Description,
		Start:       start,
		End:         end,
	}
	if entry.PublishedParsed != nil {
		it.Published = *entry.PublishedParsed
	} else if entry.UpdatedParsed != nil {
		it.Published = *entry.UpdatedParsed
	}
	return it, nil
}

// MeetingsParser is CalendarParser plus the meeting location field, kept raw
// for the renderer to split into address and city.
type MeetingsParser struct{}

// ParseEntry converts one raw entry into an Item with its meeting location.
func (MeetingsParser) ParseEntry(entry *gofeed.Item) (*Item, error) {
	it, err := CalendarParser{}.ParseEntry(entry)
	if err != nil {
		return nil, err
	}
	it.Location = extText(entry, "Location")
	return it, nil
}

// ParseEventTime parses a manually entered event timestamp. Datetime-local
// form input ("2024-06-05T19:00") is tried first, anything else goes through
// the same layouts feed entries use.
func ParseEventTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if ts, err := time.Parse("2006-01-02T15:04", s); err == nil {
		return ts, nil
	}
	return parseTimestamp(s, "")
}

// eventSpan resolves the start and end instants from the date and time
// extension fields of one entry.
func eventSpan(entry *gofeed.Item) (start, end time.Time, err error) {
	times := strings.SplitN(extText(entry, "EventTimes"), " - ", 2)
	for len(times) < 2 {
		times = append(times, "") // missing end half falls back to the date alone
	}

	dates := strings.SplitN(extText(entry, "EventDates"), " - ", 2)
	if len(dates) == 1 {
		dates = append(dates, dates[0]) // single date serves both ends
	}

	if start, err = parseTimestamp(dates[0], times[0]); err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("event start: %w", err)
	}
	if end, err = parseTimestamp(dates[1], times[1]); err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("event end: %w", err)
	}
	return start, end, nil
}

// parseTimestamp combines a date half with a clock-time half and parses the
// result; when either half is absent the date text alone is parsed. Channels
// that deviate from the published layouts go through lenient detection.
func parseTimestamp(dateStr, timeStr string) (time.Time, error) {
	dateStr, timeStr = strings.TrimSpace(dateStr), strings.TrimSpace(timeStr)

	s := dateStr
	if dateStr != "" && timeStr != "" {
		s = dateStr + " " + timeStr
	}
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date: %w", ErrInvalidDate)
	}

	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, nil
		}
	}
	ts, err := dateparse.ParseAny(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("unparsable date %q: %w", s, ErrInvalidDate)
	}
	return ts, nil
}

// extText returns the text of a calendarEvent extension element, empty when
// the entry does not carry it.
func extText(entry *gofeed.Item, name string) string {
	for _, e := range entry.Extensions[calendarExt][name] {
		if v := strings.TrimSpace(e.Value); v != "" {
			return v
		}
	}
	return ""
}
