package feed

import (
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"
)

// RenderedItem is the display-ready projection of an Item handed to the
// templates and the JSON API. Description passes through the sanitizer
// before it is trusted as HTML.
type RenderedItem struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Description template.HTML `json:"description,omitempty"`
	Sections    []Section     `json:"sections,omitempty"`
	Start       time.Time     `json:"start"`
	End         time.Time     `json:"end"`
	TimeLabel   string        `json:"time_label"`
	Address     string        `json:"address,omitempty"`
	City        string        `json:"city,omitempty"`
}

// Section is one strong-headed block of a calendar event description.
type Section struct {
	Heading string `json:"heading"`
	Body    string `json:"body"`
}

// Renderer projects items into display form. Variants pair with the Parser
// variants and are selected by the same configuration value.
type Renderer interface {
	Render(it *Item) RenderedItem
}

// NewRenderer returns the renderer for a configured feed variant.
func NewRenderer(variant string) (Renderer, error) {
	switch variant {
	case "calendar", "":
		return &CalendarRenderer{policy: bluemonday.UGCPolicy()}, nil
	case "meetings":
		return &MeetingsRenderer{policy: bluemonday.UGCPolicy()}, nil
	}
	return nil, fmt.Errorf("unknown feed variant %q", variant)
}

// CalendarRenderer renders calendar events: the description is segmented
// into strong-headed sections the way the lobby display lays them out.
type CalendarRenderer struct {
	policy *bluemonday.Policy
}

// Render produces the display projection of one calendar item.
func (r *CalendarRenderer) Render(it *Item) RenderedItem {
	return RenderedItem{
		ID:          it.ID(),
		Title:       it.Title,
		Description: template.HTML(r.policy.Sanitize(it.Description)), //nolint:gosec // sanitized right here
		Sections:    sections(it.Description),
		Start:       it.Start,
		End:         it.End,
		TimeLabel:   timeLabel(it.Start, it.End),
	}
}

// MeetingsRenderer renders meeting events with the location split into
// address and city.
type MeetingsRenderer struct {
	policy *bluemonday.Policy
}

// Render produces the display projection of one meeting item.
func (r *MeetingsRenderer) Render(it *Item) RenderedItem {
	address, city := SplitLocation(it.Location)
	return RenderedItem{
		ID:          it.ID(),
		Title:       it.Title,
		Description: template.HTML(r.policy.Sanitize(it.Description)), //nolint:gosec // sanitized right here
		Start:       it.Start,
		End:         it.End,
		TimeLabel:   timeLabel(it.Start, it.End),
		Address:     address,
		City:        city,
	}
}

// SplitLocation splits the raw meeting location into its address and city
// halves. The channels join the two with a <br> tag.
func SplitLocation(loc string) (address, city string) {
	loc = strings.NewReplacer("<br/>", "<br>", "<br />", "<br>").Replace(loc)
	parts := strings.SplitN(loc, "<br>", 2)
	address = strings.TrimSpace(parts[0])
	if len(parts) > 1 {
		city = strings.TrimSpace(parts[1])
	}
	return address, city
}

// timeLabel formats the event span for display, collapsing a zero-length
// span to a single clock time and including dates when the span crosses
// midnight.
func timeLabel(start, end time.Time) string {
	const clock = "3:04 PM"
	const dated = "Jan 2 3:04 PM"

	if start.Year() != end.Year() || start.YearDay() != end.YearDay() {
		return start.Format(dated) + " - " + end.Format(dated)
	}
	if end.Equal(start) {
		return start.Format(clock)
	}
	return start.Format(clock) + " - " + end.Format(clock)
}

// sections splits a description into strong-headed blocks: every <strong>
// heading starts a section collecting the text that follows it, up to the
// next heading. Text before the first heading is dropped, same as the
// original display layout did.
func sections(desc string) []Section {
	var out []Section
	cur := -1 // index of the section collecting text, none before the first heading
	inHeading := false

	z := html.NewTokenizer(strings.NewReader(desc))
	for {
		switch z.Next() {
		case html.ErrorToken: // io.EOF or malformed tail, either way we are done
			return trimSections(out)
		case html.StartTagToken:
			if name, _ := z.TagName(); string(name) == "strong" {
				out = append(out, Section{})
				cur = len(out) - 1
				inHeading = true
			}
		case html.EndTagToken:
			if name, _ := z.TagName(); string(name) == "strong" {
				inHeading = false
			}
		case html.TextToken:
			if cur < 0 {
				continue
			}
			if inHeading {
				out[cur].Heading += string(z.Text())
			} else {
				out[cur].Body += " " + string(z.Text())
			}
		}
	}
}

// trimSections normalizes whitespace and drops empty blocks.
func trimSections(in []Section) []Section {
	out := make([]Section, 0, len(in))
	for _, s := range in {
		s.Heading = strings.Join(strings.Fields(s.Heading), " ")
		s.Body = strings.Join(strings.Fields(s.Body), " ")
		if s.Heading == "" && s.Body == "" {
			continue
		}
		out = append(out, s)
	}
	return out
}
