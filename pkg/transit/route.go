package transit

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/omerdikyol/rayda/pkg/util"
)

type Direction string

const (
	DirectionForward  Direction = "forward"
	DirectionBackward Direction = "backward"
)

type Route struct {
	PrimaryIdentifier string `groups:"basic" yaml:"id" validate:"required"`
	Name              string `groups:"basic" yaml:"name" validate:"required"`

	Termini [2]string `groups:"basic" yaml:"termini"`

	// Canonical forward traversal; backward is the reverse
	StationIDs []string `groups:"basic" yaml:"stations" validate:"min=2"`

	FrequencyMinutes int           `groups:"basic" yaml:"frequency" validate:"gt=0"`
	ServiceWindow    ServiceWindow `groups:"basic" yaml:"service_window"`

	Colour string `groups:"basic" yaml:"colour"`
}

// StationIndex returns the position of a station within the route's canonical
// ordering, or -1 when the route does not serve it.
func (r *Route) StationIndex(stationID string) int {
	for i, id := range r.StationIDs {
		if id == stationID {
			return i
		}
	}
	return -1
}

func (r *Route) ServesStation(stationID string) bool {
	return util.ContainsString(r.StationIDs, stationID)
}

// DirectionBetween reports the travel direction from one served station to
// another along this route.
func (r *Route) DirectionBetween(fromID string, toID string) (Direction, error) {
	fromIndex := r.StationIndex(fromID)
	toIndex := r.StationIndex(toID)

	if fromIndex == -1 || toIndex == -1 {
		return DirectionForward, fmt.Errorf("route %s does not serve both %s and %s", r.PrimaryIdentifier, fromID, toID)
	}
	if fromIndex == toIndex {
		return DirectionForward, fmt.Errorf("identical origin and destination %s", fromID)
	}

	if fromIndex < toIndex {
		return DirectionForward, nil
	}
	return DirectionBackward, nil
}

// OrderedStationIDs returns the station sequence for a direction of travel.
func (r *Route) OrderedStationIDs(direction Direction) []string {
	if direction == DirectionForward {
		return r.StationIDs
	}

	reversed := make([]string, len(r.StationIDs))
	for i, id := range r.StationIDs {
		reversed[len(r.StationIDs)-1-i] = id
	}
	return reversed
}

// ClockTime is a day-relative time of day stored as minutes since midnight.
type ClockTime int

func ParseClockTime(value string) (ClockTime, error) {
	parts := strings.Split(value, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("clock time %q is not HH:MM", value)
	}

	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("clock time %q has invalid hour: %w", value, err)
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("clock time %q has invalid minute: %w", value, err)
	}

	if hours < 0 || hours > 23 || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("clock time %q out of range", value)
	}

	return ClockTime(hours*60 + minutes), nil
}

func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", int(c)/60, int(c)%60)
}

// OnDate anchors the clock time onto a calendar day
func (c ClockTime) OnDate(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), int(c)/60, int(c)%60, 0, 0, date.Location())
}

func (c *ClockTime) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var raw string
	if err := unmarshal(&raw); err != nil {
		return err
	}

	parsed, err := ParseClockTime(raw)
	if err != nil {
		return err
	}

	*c = parsed
	return nil
}

// ServiceWindow is the daily time range a route operates in. End before Start
// means the window crosses midnight (eg. a late evening only service).
type ServiceWindow struct {
	Start ClockTime `groups:"basic" yaml:"start"`
	End   ClockTime `groups:"basic" yaml:"end"`
}

func (w ServiceWindow) wrapsMidnight() bool {
	return w.End < w.Start
}

// ActiveStart returns the start instant of the window containing now, or
// false when the route is not currently in service.
func (w ServiceWindow) ActiveStart(now time.Time) (time.Time, bool) {
	startToday := w.Start.OnDate(now)
	endToday := w.End.OnDate(now)

	if !w.wrapsMidnight() {
		if (now.Equal(startToday) || now.After(startToday)) && now.Before(endToday) {
			return startToday, true
		}
		return time.Time{}, false
	}

	// Window runs over midnight: either it started today, or it started
	// yesterday and we are in the early-morning tail.
	if now.Equal(startToday) || now.After(startToday) {
		return startToday, true
	}
	if now.Before(endToday) {
		return startToday.AddDate(0, 0, -1), true
	}

	return time.Time{}, false
}

// NextStart returns the start of the next window at or after now. When the
// window is currently active this is still the upcoming start, not the
// active one.
func (w ServiceWindow) NextStart(now time.Time) time.Time {
	startToday := w.Start.OnDate(now)

	if now.Before(startToday) {
		return startToday
	}
	return startToday.AddDate(0, 0, 1)
}
