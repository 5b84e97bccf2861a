package matchtime

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/en"
)

// TimeParserInterface defines time parsing and timezone handling for
// user-supplied schedule input like "tomorrow 7pm".
type TimeParserInterface interface {
	GetTimezoneFromInput(input string) (string, bool)
	ParseUserTimeInput(input string, timezone string, clock Clock) (time.Time, error)
}

// TimeParser holds the timezone mappings and implements
// TimeParserInterface.
type TimeParser struct {
	TimezoneMap map[string]string
}

// NewTimeParser creates a TimeParser with the US timezone mappings the
// Discord front-end offers.
func NewTimeParser() *TimeParser {
	return &TimeParser{
		TimezoneMap: map[string]string{
			"PST": "America/Los_Angeles",
			"PDT": "America/Los_Angeles",
			"MST": "America/Denver",
			"MDT": "America/Denver",
			"CST": "America/Chicago",
			"CDT": "America/Chicago",
			"EST": "America/New_York",
			"EDT": "America/New_York",
		},
	}
}

// GetTimezoneFromInput resolves a timezone abbreviation or full IANA
// name from user input.
func (tp *TimeParser) GetTimezoneFromInput(input string) (string, bool) {
	inputUpper := strings.ToUpper(input)

	for _, fullName := range tp.TimezoneMap {
		if inputUpper == strings.ToUpper(fullName) {
			return fullName, true
		}
	}
	if fullName, exists := tp.TimezoneMap[inputUpper]; exists {
		return fullName, true
	}
	return "", false
}

// Compact forms like "932am" become "9:32 am" before parsing.
var compactTimePattern = regexp.MustCompile(`(\d{1,2})(\d{2})(am|pm)`)

// ParseUserTimeInput parses user-provided schedule text in the given
// timezone and returns a UTC time. The result must be in the future
// relative to the clock.
func (tp *TimeParser) ParseUserTimeInput(input string, timezone string, clock Clock) (time.Time, error) {
	userTimeZone, found := tp.GetTimezoneFromInput(timezone)
	if !found {
		return time.Time{}, fmt.Errorf("invalid timezone: %s", timezone)
	}

	loc, err := time.LoadLocation(userTimeZone)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to load timezone: %s", timezone)
	}

	input = strings.ToLower(input)
	input = strings.ReplaceAll(input, "today ", "today at ")
	input = compactTimePattern.ReplaceAllString(input, "$1:$2 $3")

	w := when.New(nil)
	w.Add(en.All...)

	r, err := w.Parse(input, clock.Now().In(loc))
	if err != nil || r == nil {
		// Fall back to "Monday 3:04 PM" against the current weekday.
		manual := fmt.Sprintf("%s %s", clock.Now().Weekday().String(), input)
		parsed, perr := time.ParseInLocation("Monday 3:04 pm", manual, loc)
		if perr != nil {
			return time.Time{}, fmt.Errorf("could not recognize time format: %s", input)
		}
		return parsed.UTC(), nil
	}

	parsed := r.Time.In(loc).Truncate(time.Minute)
	nowInLoc := clock.Now().In(loc).Truncate(time.Minute)
	if parsed.Before(nowInLoc) {
		return time.Time{}, fmt.Errorf("scheduled time must be in the future (parsed: %s, now: %s)", parsed, nowInLoc)
	}

	return parsed.UTC(), nil
}
