package dashboard

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/language"
)

// ClockView is the rendered clock. Meridiem is empty on 24-hour displays.
type ClockView struct {
	Time     string `json:"time"`
	Meridiem string `json:"meridiem"`
	Date     string `json:"date"`
}

// Regions whose conventional clock is 12-hour.
var twelveHourRegions = map[string]bool{
	"US": true, "CA": true, "AU": true, "NZ": true, "IN": true, "PH": true,
	"PK": true, "BD": true, "EG": true, "SA": true, "CO": true, "MY": true,
}

// Regions that write the month before the day.
var monthFirstRegions = map[string]bool{
	"US": true, "CA": true, "PH": true,
}

// Format describes how times and dates are shown.
type Format struct {
	Hour12     bool
	MonthFirst bool
	Location   *time.Location
}

// NewFormat derives the display format from a BCP 47 locale such as "en-GB".
// An empty locale means "en-US". loc defaults to the local zone.
func NewFormat(locale string, loc *time.Location) (Format, error) {
	if strings.TrimSpace(locale) == "" {
		locale = "en-US"
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return Format{}, fmt.Errorf("invalid locale %q: %w", locale, err)
	}
	region, _ := tag.Region()
	if loc == nil {
		loc = time.Local
	}
	code := region.String()
	return Format{
		Hour12:     twelveHourRegions[code],
		MonthFirst: monthFirstRegions[code],
		Location:   loc,
	}, nil
}

// Clock renders t as a ClockView in the display zone.
func (f Format) Clock(t time.Time) ClockView {
	t = f.in(t)
	v := ClockView{}
	if f.Hour12 {
		v.Time = t.Format("03:04")
		v.Meridiem = t.Format("PM")
	} else {
		v.Time = t.Format("15:04")
	}
	if f.MonthFirst {
		v.Date = t.Format("Monday, January 2, 2006")
	} else {
		v.Date = t.Format("Monday 2 January 2006")
	}
	return v
}

// HourLabel is the label of an hourly forecast item, "3 PM" or "15".
// t is shown in its own zone.
func (f Format) HourLabel(t time.Time) string {
	if f.Hour12 {
		return t.Format("3 PM")
	}
	return t.Format("15")
}

func (f Format) in(t time.Time) time.Time {
	if f.Location == nil {
		return t
	}
	return t.In(f.Location)
}

// ClockUpdater writes the current time to the board.
type ClockUpdater struct {
	board  *Board
	format Format
	now    func() time.Time
}

func NewClockUpdater(board *Board, format Format) *ClockUpdater {
	return &ClockUpdater{board: board, format: format, now: time.Now}
}

// Tick renders the clock for the current instant.
func (c *ClockUpdater) Tick() ClockView {
	v := c.format.Clock(c.now())
	c.board.Update(func(s *State) {
		s.Clock = v
	})
	return v
}
