// Package clock fornece o instante atual no fuso de negócio.
package clock

import (
	"time"

	"github.com/jonboulle/clockwork"
)

// Clock relógio com fuso fixo sobre um clockwork.Clock. O valor zero usa o
// relógio real em UTC.
type Clock struct {
	loc *time.Location
	src clockwork.Clock
}

// New relógio real no fuso loc.
func New(loc *time.Location) Clock {
	return Clock{loc: loc, src: clockwork.NewRealClock()}
}

// Fixed relógio parado em t, para testes.
func Fixed(t time.Time, loc *time.Location) Clock {
	c, _ := Fake(t, loc)
	return c
}

// Fake relógio controlado pelo FakeClock devolvido (Advance move o tempo).
func Fake(t time.Time, loc *time.Location) (Clock, *clockwork.FakeClock) {
	fc := clockwork.NewFakeClockAt(t)
	return Clock{loc: loc, src: fc}, fc
}

// Location fuso de negócio.
func (c Clock) Location() *time.Location {
	if c.loc == nil {
		return time.UTC
	}
	return c.loc
}

// Now instante atual no fuso de negócio.
func (c Clock) Now() time.Time {
	if c.src == nil {
		return time.Now().In(c.Location())
	}
	return c.src.Now().In(c.Location())
}

// Today data civil de hoje no fuso de negócio, à meia-noite UTC (mesma representação das colunas DATE).
func (c Clock) Today() time.Time {
	y, m, d := c.Now().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
