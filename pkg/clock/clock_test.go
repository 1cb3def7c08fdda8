package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestToday_UsaFusoDeNegocio(t *testing.T) {
	sp := time.FixedZone("BRT", -3*3600)
	c := Fixed(time.Date(2025, time.July, 15, 1, 0, 0, 0, time.UTC), sp)

	assert.Equal(t, time.Date(2025, time.July, 14, 0, 0, 0, 0, time.UTC), c.Today())
	assert.Equal(t, sp, c.Now().Location())
}

func TestZeroValue(t *testing.T) {
	var c Clock
	assert.Equal(t, time.UTC, c.Location())
	assert.False(t, c.Now().IsZero())
}

func TestFake_AvancaDataCivil(t *testing.T) {
	sp := time.FixedZone("BRT", -3*3600)
	c, fc := Fake(time.Date(2025, time.July, 14, 23, 0, 0, 0, sp), sp)
	assert.Equal(t, time.Date(2025, time.July, 14, 0, 0, 0, 0, time.UTC), c.Today())

	fc.Advance(2 * time.Hour)
	assert.Equal(t, time.Date(2025, time.July, 15, 0, 0, 0, 0, time.UTC), c.Today())
}
