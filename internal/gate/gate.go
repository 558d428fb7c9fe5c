// Package gate guards runs behind a local-time window. The bot is
// triggered by an hourly schedule around the clock; the gate keeps
// channel posts inside waking hours for the audience's timezone.
package gate

import (
	"fmt"
	"strings"
	"time"
)

const (
	DefaultTimezone  = "Asia/Kolkata"
	DefaultStartHour = 11
	DefaultEndHour   = 22
)

// Gate allows execution only when the local hour falls in [start, end).
type Gate struct {
	loc   *time.Location
	start int
	end   int
}

func New(timezone string, startHour, endHour int) (*Gate, error) {
	tz := strings.TrimSpace(timezone)
	if tz == "" {
		tz = DefaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("gate: load timezone %q: %w", tz, err)
	}
	if startHour < 0 || startHour > 23 || endHour < 1 || endHour > 24 || startHour >= endHour {
		return nil, fmt.Errorf("gate: invalid window %d-%d", startHour, endHour)
	}
	return &Gate{loc: loc, start: startHour, end: endHour}, nil
}

func (g *Gate) Allows(t time.Time) bool {
	h := t.In(g.loc).Hour()
	return h >= g.start && h < g.end
}

func (g *Gate) Location() *time.Location { return g.loc }

// Window describes the gate for logging.
func (g *Gate) Window() string {
	return fmt.Sprintf("%02d:00-%02d:00 %s", g.start, g.end, g.loc)
}
