package weather

import "strings"

// Condition describes an OpenWeatherMap condition code with the display
// assets picked for it. Meteocon holds a {day} placeholder resolved per
// daylight at render time.
type Condition struct {
	ID       int
	Group    string
	Desc     string
	Icon     string
	Meteocon string
}

type conditionOverride struct {
	id       int
	desc     string
	icon     string
	meteocon string
}

// condition groups per the OpenWeatherMap code table, each with a default
// icon and meteocon plus per-code overrides
var conditionGroups = []struct {
	name     string
	icon     string
	meteocon string
	codes    []conditionOverride
}{
	{name: "Thunderstorm", icon: "11d", meteocon: "thunderstorms-{day}-rain", codes: []conditionOverride{
		{id: 200, desc: "thunderstorm with light rain"},
		{id: 201, desc: "thunderstorm with rain"},
		{id: 202, desc: "thunderstorm with heavy rain"},
		{id: 210, desc: "light thunderstorm"},
		{id: 211, desc: "thunderstorm", meteocon: "thunderstorms-{day}"},
		{id: 212, desc: "heavy thunderstorm", meteocon: "thunderstorms-{day}-extreme"},
		{id: 221, desc: "ragged thunderstorm", meteocon: "thunderstorms-{day}-extreme"},
		{id: 230, desc: "thunderstorm with light drizzle"},
		{id: 231, desc: "thunderstorm with drizzle"},
		{id: 232, desc: "thunderstorm with heavy drizzle"},
	}},
	{name: "Drizzle", icon: "09d", meteocon: "partly-cloudy-{day}-drizzle", codes: []conditionOverride{
		{id: 300, desc: "light intensity drizzle"},
		{id: 301, desc: "drizzle"},
		{id: 302, desc: "heavy intensity drizzle"},
		{id: 310, desc: "light intensity drizzle"},
		{id: 311, desc: "drizzle rain"},
		{id: 312, desc: "heavy intensity drizzle rain"},
		{id: 313, desc: "shower rain and drizzle"},
		{id: 314, desc: "heavy shower rain and drizzle"},
		{id: 321, desc: "shower drizzle"},
	}},
	{name: "Rain", icon: "10d", meteocon: "partly-cloudy-{day}-rain", codes: []conditionOverride{
		{id: 500, desc: "light rain"},
		{id: 501, desc: "moderate rain"},
		{id: 502, desc: "heavy intensity rain"},
		{id: 503, desc: "very heavy rain"},
		{id: 504, desc: "extreme rain", meteocon: "extreme-{day}-rain"},
		{id: 511, desc: "freezing rain", icon: "13d", meteocon: "partly-cloudy-{day}-sleet"},
		{id: 520, desc: "light intensity shower rain", icon: "09d"},
		{id: 521, desc: "shower rain", icon: "09d"},
		{id: 522, desc: "heavy intensity shower rain", icon: "09d"},
		{id: 531, desc: "ragged shower rain", icon: "09d"},
	}},
	{name: "Snow", icon: "13d", meteocon: "partly-cloudy-{day}-snow", codes: []conditionOverride{
		{id: 600, desc: "light snow"},
		{id: 601, desc: "snow"},
		{id: 602, desc: "heavy snow"},
		{id: 611, desc: "sleet", meteocon: "partly-cloudy-{day}-sleet"},
		{id: 612, desc: "light shower sleet", meteocon: "partly-cloudy-{day}-sleet"},
		{id: 613, desc: "shower sleet", meteocon: "partly-cloudy-{day}-sleet"},
		{id: 615, desc: "light rain and snow"},
		{id: 616, desc: "rain and snow"},
		{id: 620, desc: "light shower snow"},
		{id: 621, desc: "shower snow"},
		{id: 622, desc: "heavy shower snow", meteocon: "extreme-{day}-snow"},
	}},
	{name: "Atmosphere", icon: "50d", meteocon: "fog-{day}", codes: []conditionOverride{
		{id: 701, desc: "mist", meteocon: "mist"},
		{id: 711, desc: "smoke", meteocon: "overcast-{day}-smoke"},
		{id: 721, desc: "haze", meteocon: "haze-{day}"},
		{id: 731, desc: "sand/dust whirls", meteocon: "dust-wind"},
		{id: 741, desc: "fog", meteocon: "fog-{day}"},
		{id: 751, desc: "sand", meteocon: "dust"},
		{id: 761, desc: "dust", meteocon: "dust"},
		{id: 762, desc: "volcanic ash", meteocon: "dust"},
		{id: 771, desc: "squalls", meteocon: "wind"},
		{id: 781, desc: "tornado", meteocon: "tornado"},
	}},
	{name: "Clear", icon: "01d", meteocon: "clear-{day}", codes: []conditionOverride{
		{id: 800, desc: "clear sky"},
	}},
	{name: "Clouds", icon: "03d", meteocon: "partly-cloudy-{day}", codes: []conditionOverride{
		{id: 801, desc: "few clouds", icon: "02d"},
		{id: 802, desc: "scattered clouds", icon: "03d"},
		{id: 803, desc: "broken clouds", icon: "04d"},
		{id: 804, desc: "overcast clouds", icon: "04d", meteocon: "overcast-{day}"},
	}},
}

var conditionsByCode = buildConditions()

func buildConditions() map[int]Condition {
	out := make(map[int]Condition)
	for _, g := range conditionGroups {
		for _, c := range g.codes {
			cond := Condition{ID: c.id, Group: g.name, Desc: c.desc, Icon: g.icon, Meteocon: g.meteocon}
			if c.icon != "" {
				cond.Icon = c.icon
			}
			if c.meteocon != "" {
				cond.Meteocon = c.meteocon
			}
			out[c.id] = cond
		}
	}
	return out
}

// ConditionFor looks up the condition for an OpenWeatherMap code.
func ConditionFor(id int) (Condition, bool) {
	c, ok := conditionsByCode[id]
	return c, ok
}

// MeteoconFile resolves the meteocon file name for day or night.
func (c Condition) MeteoconFile(daytime bool) string {
	day := "day"
	if !daytime {
		day = "night"
	}
	return strings.ReplaceAll(c.Meteocon, "{day}", day) + ".svg"
}

// dayIcon adjusts a day-form OWM icon id for night. Icons already carrying
// a night suffix are kept as is.
func dayIcon(icon string, daytime bool) string {
	if !strings.HasSuffix(icon, "d") {
		return icon
	}
	if daytime {
		return icon
	}
	return icon[:len(icon)-1] + "n"
}
