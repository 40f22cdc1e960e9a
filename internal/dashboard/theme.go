package dashboard

import (
	"github.com/i474232898/weather-clock/internal/weather"
)

// Theme is one of the ten day/night condition themes, e.g. "night-rain".
type Theme string

// Themes lists every theme identifier.
var Themes = func() []Theme {
	out := make([]Theme, 0, 2*len(weather.Categories))
	for _, prefix := range []string{"day", "night"} {
		for _, c := range weather.Categories {
			out = append(out, Theme(prefix+"-"+string(c)))
		}
	}
	return out
}()

// SelectTheme picks the theme for a condition category and time of day.
func SelectTheme(category weather.Condition, isDay bool) Theme {
	prefix := "night"
	if isDay {
		prefix = "day"
	}
	return Theme(prefix + "-" + string(category))
}

// ApplyTheme leaves exactly one theme class on classes.
func ApplyTheme(classes *ClassList, theme Theme) {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = string(t)
	}
	classes.Remove(names...)
	classes.Add(string(theme))
}
