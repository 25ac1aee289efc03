package scheduler

import (
	"math/rand/v2"
	"time"

	"github.com/julianstephens/alarmnote/internal/models"
	"github.com/julianstephens/alarmnote/internal/utils"
)

const (
	randomMinHour      = 8
	randomMaxHour      = 18
	randomMinuteStride = 5
)

// RandomTimeGenerator picks per-weekday times for random alarms, between
// 08:00 and 18:55 on five-minute boundaries.
type RandomTimeGenerator struct {
	rng *rand.Rand
}

// NewRandomTimeGenerator returns a generator seeded from src, or from the
// runtime's random source when src is nil.
func NewRandomTimeGenerator(src rand.Source) *RandomTimeGenerator {
	if src == nil {
		return &RandomTimeGenerator{}
	}
	return &RandomTimeGenerator{rng: rand.New(src)}
}

func (g *RandomTimeGenerator) intN(n int) int {
	if g.rng == nil {
		return rand.IntN(n)
	}
	return g.rng.IntN(n)
}

// Time returns one random HH:MM value
func (g *RandomTimeGenerator) Time() string {
	hour := randomMinHour + g.intN(randomMaxHour-randomMinHour+1)
	minute := g.intN(60/randomMinuteStride) * randomMinuteStride
	return utils.FormatTimeOfDay(hour, minute)
}

// Fill returns times with an entry for every weekday in weekdays. Existing
// entries are kept.
func (g *RandomTimeGenerator) Fill(weekdays []time.Weekday, times models.RandomTimes) models.RandomTimes {
	out := times.Clone()
	if out == nil {
		out = models.RandomTimes{}
	}
	for _, wd := range weekdays {
		if _, ok := out.TimeFor(wd); !ok {
			out[wd] = g.Time()
		}
	}
	return out
}
