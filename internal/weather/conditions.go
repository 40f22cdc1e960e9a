package weather

// ConditionEntry describes one WMO weather code.
type ConditionEntry struct {
	Code     int       `json:"code"`
	Label    string    `json:"label"`
	Icon     string    `json:"icon"`
	Category Condition `json:"category"`
}

// UnknownCondition is returned by Lookup for codes outside the table.
var UnknownCondition = ConditionEntry{Code: -1, Label: "Unknown", Icon: "🌡️", Category: ConditionCloudy}

// UnknownIcon is shown on forecast items whose code is not in the table.
const UnknownIcon = "?"

var conditionTable = map[int]ConditionEntry{
	0:  {0, "Clear Sky", "☀️", ConditionClear},
	1:  {1, "Mainly Clear", "🌤️", ConditionClear},
	2:  {2, "Partly Cloudy", "⛅", ConditionCloudy},
	3:  {3, "Overcast", "☁️", ConditionCloudy},
	45: {45, "Foggy", "🌫️", ConditionCloudy},
	48: {48, "Icy Fog", "🌫️", ConditionCloudy},
	51: {51, "Light Drizzle", "🌦️", ConditionRain},
	53: {53, "Drizzle", "🌦️", ConditionRain},
	55: {55, "Heavy Drizzle", "🌧️", ConditionRain},
	56: {56, "Freezing Drizzle", "🌨️", ConditionSnow},
	57: {57, "Heavy Freezing Drizzle", "🌨️", ConditionSnow},
	61: {61, "Light Rain", "🌦️", ConditionRain},
	63: {63, "Rain", "🌧️", ConditionRain},
	65: {65, "Heavy Rain", "🌧️", ConditionRain},
	66: {66, "Freezing Rain", "🌨️", ConditionSnow},
	67: {67, "Heavy Freezing Rain", "🌨️", ConditionSnow},
	71: {71, "Light Snow", "❄️", ConditionSnow},
	73: {73, "Snow", "❄️", ConditionSnow},
	75: {75, "Heavy Snow", "❄️", ConditionSnow},
	77: {77, "Snow Grains", "🌨️", ConditionSnow},
	80: {80, "Light Showers", "🌦️", ConditionRain},
	81: {81, "Showers", "🌧️", ConditionRain},
	82: {82, "Heavy Showers", "⛈️", ConditionStorm},
	85: {85, "Snow Showers", "🌨️", ConditionSnow},
	86: {86, "Heavy Snow Showers", "🌨️", ConditionSnow},
	95: {95, "Thunderstorm", "⛈️", ConditionStorm},
	96: {96, "Thunderstorm w/ Hail", "⛈️", ConditionStorm},
	99: {99, "Thunderstorm w/ Heavy Hail", "⛈️", ConditionStorm},
}

// Lookup maps a WMO code to its entry. It is total: unknown codes get UnknownCondition.
func Lookup(code int) ConditionEntry {
	if e, ok := conditionTable[code]; ok {
		return e
	}
	return UnknownCondition
}

// ForecastIcon returns the icon for an hourly or daily item.
func ForecastIcon(code int) string {
	if e, ok := conditionTable[code]; ok {
		return e.Icon
	}
	return UnknownIcon
}

// KnownCodes returns the number of codes in the table.
func KnownCodes() int {
	return len(conditionTable)
}
