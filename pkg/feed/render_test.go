package feed

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalendarRenderer_Render(t *testing.T) {
	r, err := NewRenderer("calendar")
	require.NoError(t, err)

	start := time.Date(2024, 1, 5, 10, 0, 0, 0, time.UTC)
	it := &Item{
		Title: "Staff Meeting",
		Start: start,
		End:   start.Add(time.Hour),
		Description: `intro text is dropped` +
			`<strong>Agenda</strong> Budget review &amp; vote` +
			`<strong>Notes</strong> <em>Open</em> to the public`,
	}

	out := r.Render(it)
	assert.Equal(t, it.ID(), out.ID)
	assert.Equal(t, "Staff Meeting", out.Title)
	assert.Equal(t, "10:00 AM - 11:00 AM", out.TimeLabel)

	require.Len(t, out.Sections, 2)
	assert.Equal(t, Section{Heading: "Agenda", Body: "Budget review & vote"}, out.Sections[0])
	assert.Equal(t, Section{Heading: "Notes", Body: "Open to the public"}, out.Sections[1])
}

func TestCalendarRenderer_SanitizesDescription(t *testing.T) {
	r, err := NewRenderer("")
	require.NoError(t, err)

	it := &Item{
		Title:       "Open House",
		Start:       time.Date(2024, 1, 5, 10, 0, 0, 0, time.UTC),
		End:         time.Date(2024, 1, 5, 10, 0, 0, 0, time.UTC),
		Description: `<p>Welcome</p><script>alert("x")</script>`,
	}

	out := r.Render(it)
	assert.Contains(t, string(out.Description), "<p>Welcome</p>")
	assert.NotContains(t, string(out.Description), "<script>")
	assert.Equal(t, "10:00 AM", out.TimeLabel, "zero length span collapses to one clock time")
}

func TestMeetingsRenderer_Render(t *testing.T) {
	r, err := NewRenderer("meetings")
	require.NoError(t, err)

	start := time.Date(2024, 1, 5, 18, 0, 0, 0, time.UTC)
	it := &Item{
		Title:    "City Council",
		Start:    start,
		End:      start.Add(2 * time.Hour),
		Location: "1200 E. Broad St.<br>Mansfield, TX 76063",
	}

	out := r.Render(it)
	assert.Equal(t, "1200 E. Broad St.", out.Address)
	assert.Equal(t, "Mansfield, TX 76063", out.City)
	assert.Equal(t, "6:00 PM - 8:00 PM", out.TimeLabel)
	assert.Empty(t, out.Sections, "meetings variant does not segment descriptions")
}

func TestSplitLocation(t *testing.T) {
	tests := []struct {
		name    string
		loc     string
		address string
		city    string
	}{
		{name: "plain br", loc: "1200 E. Broad St.<br>Mansfield, TX", address: "1200 E. Broad St.", city: "Mansfield, TX"},
		{name: "self closing br", loc: "1200 E. Broad St.<br/>Mansfield, TX", address: "1200 E. Broad St.", city: "Mansfield, TX"},
		{name: "spaced self closing br", loc: "1200 E. Broad St.<br />Mansfield, TX", address: "1200 E. Broad St.", city: "Mansfield, TX"},
		{name: "no city half", loc: "1200 E. Broad St.", address: "1200 E. Broad St.", city: ""},
		{name: "empty", loc: "", address: "", city: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			address, city := SplitLocation(tt.loc)
			assert.Equal(t, tt.address, address)
			assert.Equal(t, tt.city, city)
		})
	}
}

func TestTimeLabel_CrossMidnight(t *testing.T) {
	start := time.Date(2024, 1, 5, 22, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 6, 1, 0, 0, 0, time.UTC)
	assert.Equal(t, "Jan 5 10:00 PM - Jan 6 1:00 AM", timeLabel(start, end))
}

func TestSections_EdgeCases(t *testing.T) {
	assert.Empty(t, sections(""), "empty description has no sections")
	assert.Empty(t, sections("plain text without headings"))
	assert.Equal(t, []Section{{Heading: "Only heading"}}, sections("<strong>Only heading</strong>"))
}
