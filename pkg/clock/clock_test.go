package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDaySeed(t *testing.T) {
	ts := time.Date(2026, time.October, 19, 0, 0, 1, 0, time.UTC)
	assert.Equal(t, 20261019, DaySeed(ts, time.UTC))

	late := time.Date(2026, time.October, 19, 23, 59, 59, 0, time.UTC)
	assert.Equal(t, DaySeed(ts, time.UTC), DaySeed(late, time.UTC))
}

func TestDaySeed_Location(t *testing.T) {
	loc := time.FixedZone("MSK", 3*60*60)
	ts := time.Date(2026, time.October, 19, 22, 0, 0, 0, time.UTC)

	assert.Equal(t, 20261019, DaySeed(ts, time.UTC))
	assert.Equal(t, 20261020, DaySeed(ts, loc))
}

func TestFixed(t *testing.T) {
	start := time.Date(2026, time.January, 1, 12, 0, 0, 0, time.UTC)
	c := NewFixed(start)
	assert.Equal(t, start, c.Now())

	c.Add(24 * time.Hour)
	assert.Equal(t, 20260102, DaySeed(c.Now(), time.UTC))

	c.Set(start)
	assert.Equal(t, start, c.Now())
}

func TestStartOfDay(t *testing.T) {
	loc := time.FixedZone("MSK", 3*60*60)
	ts := time.Date(2026, time.October, 19, 22, 30, 0, 0, time.UTC)

	assert.True(t, time.Date(2026, time.October, 19, 0, 0, 0, 0, time.UTC).Equal(StartOfDay(ts, time.UTC)))
	// MSK 下已是 10 月 20 日
	assert.True(t, time.Date(2026, time.October, 19, 21, 0, 0, 0, time.UTC).Equal(StartOfDay(ts, loc)))
}
