package scheduler

import (
	"errors"
	"testing"
	"time"

	"github.com/julianstephens/alarmnote/internal/constants"
	"github.com/julianstephens/alarmnote/internal/models"
	"github.com/julianstephens/alarmnote/internal/utils"
)

// 2026-01-06 is a Tuesday.
var tuesday10 = time.Date(2026, 1, 6, 10, 0, 0, 0, time.UTC)

func TestNextFireAt_OneTime(t *testing.T) {
	now := time.Date(2026, 1, 6, 9, 0, 0, 0, time.UTC)
	in5 := now.Add(5 * time.Minute)
	alarm := models.Alarm{
		ID:        "once",
		Type:      constants.AlarmOneTime,
		Date:      in5.Format(constants.DateFormat),
		TimeOfDay: in5.Format(constants.TimeFormat),
		Enabled:   true,
	}

	c := New()
	got, ok, err := c.NextFireAt(alarm, now)
	if err != nil {
		t.Fatalf("NextFireAt() error = %v", err)
	}
	if !ok || !got.Equal(in5) {
		t.Errorf("NextFireAt() = %v, %v, want %v, true", got, ok, in5)
	}

	_, ok, err = c.NextFireAt(alarm, now.Add(10*time.Minute))
	if err != nil {
		t.Fatalf("NextFireAt() error = %v", err)
	}
	if ok {
		t.Error("NextFireAt() 10 minutes later returned an occurrence, want none")
	}
}

func TestNextFireAt_OneTimeAtExactlyNow(t *testing.T) {
	now := time.Date(2026, 1, 6, 9, 0, 0, 0, time.UTC)
	alarm := models.Alarm{Type: constants.AlarmOneTime, Date: "2026-01-06", TimeOfDay: "09:00"}

	_, ok, err := New().NextFireAt(alarm, now)
	if err != nil || ok {
		t.Errorf("NextFireAt() = _, %v, %v, want none for candidate == now", ok, err)
	}
}

func TestNextFireAt_OneTimeIdempotent(t *testing.T) {
	c := New()
	alarm := models.Alarm{Type: constants.AlarmOneTime, Date: "2026-02-14", TimeOfDay: "18:30"}

	first, ok1, err1 := c.NextFireAt(alarm, tuesday10)
	second, ok2, err2 := c.NextFireAt(alarm, tuesday10)
	if err1 != nil || err2 != nil {
		t.Fatalf("NextFireAt() errors = %v, %v", err1, err2)
	}
	if ok1 != ok2 || !first.Equal(second) {
		t.Errorf("NextFireAt() not idempotent: (%v, %v) vs (%v, %v)", first, ok1, second, ok2)
	}
}

func TestNextFireAt_Repeating(t *testing.T) {
	tests := []struct {
		name      string
		now       time.Time
		timeOfDay string
		weekdays  []time.Weekday
		want      time.Time
	}{
		{
			name:      "today's time already passed resolves to next week",
			now:       tuesday10,
			timeOfDay: "09:59",
			weekdays:  []time.Weekday{time.Tuesday},
			want:      time.Date(2026, 1, 13, 9, 59, 0, 0, time.UTC),
		},
		{
			name:      "later today",
			now:       tuesday10,
			timeOfDay: "10:01",
			weekdays:  []time.Weekday{time.Tuesday},
			want:      time.Date(2026, 1, 6, 10, 1, 0, 0, time.UTC),
		},
		{
			name:      "exactly now is not future",
			now:       tuesday10,
			timeOfDay: "10:00",
			weekdays:  []time.Weekday{time.Tuesday, time.Thursday},
			want:      time.Date(2026, 1, 8, 10, 0, 0, 0, time.UTC),
		},
		{
			name:      "earliest of several weekdays",
			now:       tuesday10,
			timeOfDay: "07:00",
			weekdays:  []time.Weekday{time.Monday, time.Saturday, time.Wednesday},
			want:      time.Date(2026, 1, 7, 7, 0, 0, 0, time.UTC),
		},
		{
			name:      "wraps into next month",
			now:       time.Date(2026, 1, 30, 12, 0, 0, 0, time.UTC),
			timeOfDay: "06:15",
			weekdays:  []time.Weekday{time.Monday},
			want:      time.Date(2026, 2, 2, 6, 15, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			alarm := models.Alarm{ID: "r", Type: constants.AlarmRepeating, TimeOfDay: tt.timeOfDay, Weekdays: tt.weekdays}
			got, ok, err := New().NextFireAt(alarm, tt.now)
			if err != nil {
				t.Fatalf("NextFireAt() error = %v", err)
			}
			if !ok || !got.Equal(tt.want) {
				t.Errorf("NextFireAt() = %v, %v, want %v", got, ok, tt.want)
			}
		})
	}
}

func TestNextFireAt_RepeatingOneMinuteAgo(t *testing.T) {
	now := time.Date(2026, 3, 18, 14, 27, 30, 0, time.UTC)
	oneMinuteAgo := now.Add(-time.Minute)
	alarm := models.Alarm{
		Type:      constants.AlarmRepeating,
		TimeOfDay: oneMinuteAgo.Format(constants.TimeFormat),
		Weekdays:  []time.Weekday{now.Weekday()},
	}

	got, ok, err := New().NextFireAt(alarm, now)
	if err != nil || !ok {
		t.Fatalf("NextFireAt() = _, %v, %v", ok, err)
	}
	want := utils.Combine(utils.AddDays(now, 7), oneMinuteAgo.Hour(), oneMinuteAgo.Minute())
	if !got.Equal(want) {
		t.Errorf("NextFireAt() = %v, want %v", got, want)
	}
}

func TestNextFireAt_Random(t *testing.T) {
	c := New()
	alarm := models.Alarm{
		ID:          "rnd",
		Type:        constants.AlarmRandom,
		Weekdays:    []time.Weekday{time.Monday, time.Wednesday},
		RandomTimes: models.RandomTimes{time.Monday: "09:00", time.Wednesday: "21:00"},
	}

	got, ok, err := c.NextFireAt(alarm, tuesday10)
	if err != nil {
		t.Fatalf("NextFireAt() error = %v", err)
	}
	want := time.Date(2026, 1, 7, 21, 0, 0, 0, time.UTC)
	if !ok || !got.Equal(want) {
		t.Errorf("NextFireAt() = %v, %v, want %v", got, ok, want)
	}
	if c.Anomalies() != 0 {
		t.Errorf("Anomalies() = %d, want 0", c.Anomalies())
	}
}

func TestNextFireAt_RandomMissingEntry(t *testing.T) {
	c := New()
	alarm := models.Alarm{
		ID:          "rnd",
		Type:        constants.AlarmRandom,
		Weekdays:    []time.Weekday{time.Tuesday},
		RandomTimes: models.RandomTimes{},
	}

	_, ok, err := c.NextFireAt(alarm, tuesday10)
	if err != nil {
		t.Fatalf("NextFireAt() error = %v, want nil", err)
	}
	if ok {
		t.Error("NextFireAt() returned an occurrence, want none")
	}
	if c.Anomalies() == 0 {
		t.Error("Anomalies() = 0, want the missing entry recorded")
	}
}

func TestNextFireAt_RandomSkipsMissingDay(t *testing.T) {
	alarm := models.Alarm{
		Type:        constants.AlarmRandom,
		Weekdays:    []time.Weekday{time.Wednesday, time.Friday},
		RandomTimes: models.RandomTimes{time.Friday: "08:05"},
	}

	got, ok, err := New().NextFireAt(alarm, tuesday10)
	if err != nil || !ok {
		t.Fatalf("NextFireAt() = _, %v, %v", ok, err)
	}
	if want := time.Date(2026, 1, 9, 8, 5, 0, 0, time.UTC); !got.Equal(want) {
		t.Errorf("NextFireAt() = %v, want %v", got, want)
	}
}

func TestNextFireAt_Errors(t *testing.T) {
	tests := []struct {
		name  string
		alarm models.Alarm
	}{
		{
			name:  "repeating malformed time",
			alarm: models.Alarm{Type: constants.AlarmRepeating, TimeOfDay: "7:00", Weekdays: []time.Weekday{time.Monday}},
		},
		{
			name:  "one-time malformed time",
			alarm: models.Alarm{Type: constants.AlarmOneTime, TimeOfDay: "24:00", Date: "2026-01-10"},
		},
		{
			name: "random malformed time",
			alarm: models.Alarm{
				Type:        constants.AlarmRandom,
				Weekdays:    []time.Weekday{time.Wednesday},
				RandomTimes: models.RandomTimes{time.Wednesday: "noon"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok, err := New().NextFireAt(tt.alarm, tuesday10)
			if !errors.Is(err, utils.ErrInvalidFormat) {
				t.Errorf("NextFireAt() error = %v, want ErrInvalidFormat", err)
			}
			if ok {
				t.Error("NextFireAt() ok = true alongside an error")
			}
		})
	}
}

func TestNextFireAt_EmptyWeekdays(t *testing.T) {
	for _, typ := range []models.AlarmType{constants.AlarmRepeating, constants.AlarmRandom} {
		alarm := models.Alarm{Type: typ, TimeOfDay: "09:00"}
		_, ok, err := New().NextFireAt(alarm, tuesday10)
		if err != nil || ok {
			t.Errorf("NextFireAt(%s, no weekdays) = _, %v, %v, want none without error", typ, ok, err)
		}
	}
}

// bruteForceNext enumerates every candidate in the scan window and returns
// the minimum strictly after now.
func bruteForceNext(alarm models.Alarm, now time.Time) (time.Time, bool) {
	var best time.Time
	found := false
	for i := 0; i <= constants.ScanHorizonDays; i++ {
		day := utils.AddDays(utils.StartOfDay(now), i)
		if !alarm.HasWeekday(day.Weekday()) {
			continue
		}
		tod := alarm.TimeOfDay
		if alarm.Type == constants.AlarmRandom {
			var ok bool
			if tod, ok = alarm.RandomTimes.TimeFor(day.Weekday()); !ok {
				continue
			}
		}
		h, m, err := utils.ParseTimeOfDay(tod)
		if err != nil {
			continue
		}
		c := utils.Combine(day, h, m)
		if c.After(now) && (!found || c.Before(best)) {
			best, found = c, true
		}
	}
	return best, found
}

func TestNextFireAt_FutureOnlyAndEarliest(t *testing.T) {
	locs := []*time.Location{time.UTC, time.FixedZone("UTC-7", -7*60*60)}
	if ny, err := time.LoadLocation("America/New_York"); err == nil {
		locs = append(locs, ny)
	}

	alarms := []models.Alarm{
		{ID: "weekdays", Type: constants.AlarmRepeating, TimeOfDay: "07:30", Weekdays: []time.Weekday{1, 2, 3, 4, 5}},
		{ID: "sunday", Type: constants.AlarmRepeating, TimeOfDay: "23:59", Weekdays: []time.Weekday{0}},
		{ID: "midnight", Type: constants.AlarmRepeating, TimeOfDay: "00:00", Weekdays: []time.Weekday{6, 2}},
		{
			ID: "random", Type: constants.AlarmRandom, Weekdays: []time.Weekday{0, 3, 5},
			RandomTimes: models.RandomTimes{0: "12:00", 3: "08:45", 5: "17:10"},
		},
		{ID: "once", Type: constants.AlarmOneTime, TimeOfDay: "08:00", Date: "2026-03-09"},
	}

	for _, loc := range locs {
		// Two weeks around the March DST change, every 47 minutes.
		start := time.Date(2026, 3, 1, 0, 3, 0, 0, loc)
		for now := start; now.Before(start.AddDate(0, 0, 14)); now = now.Add(47 * time.Minute) {
			for _, alarm := range alarms {
				got, ok, err := New().NextFireAt(alarm, now)
				if err != nil {
					t.Fatalf("NextFireAt(%s, %v) error = %v", alarm.ID, now, err)
				}
				if ok && !got.After(now) {
					t.Errorf("NextFireAt(%s, %v) = %v, not strictly after now", alarm.ID, now, got)
				}
				if alarm.IsWeekly() {
					want, wantOK := bruteForceNext(alarm, now)
					if ok != wantOK || (ok && !got.Equal(want)) {
						t.Errorf("NextFireAt(%s, %v) = %v, %v, want %v, %v", alarm.ID, now, got, ok, want, wantOK)
					}
				}
			}
		}
	}
}

func TestRecomputeAfterFire(t *testing.T) {
	c := New()
	fired := time.Date(2026, 1, 5, 7, 0, 0, 0, time.UTC)
	now := fired.Add(time.Minute)

	repeating := models.Alarm{
		Type: constants.AlarmRepeating, TimeOfDay: "07:00",
		Weekdays: []time.Weekday{time.Monday, time.Thursday}, NextFireAt: &fired,
	}
	got, ok, err := c.RecomputeAfterFire(repeating, now)
	if err != nil {
		t.Fatalf("RecomputeAfterFire() error = %v", err)
	}
	if want := time.Date(2026, 1, 8, 7, 0, 0, 0, time.UTC); !ok || !got.Equal(want) {
		t.Errorf("RecomputeAfterFire(repeating) = %v, %v, want %v", got, ok, want)
	}

	for _, a := range []models.Alarm{
		{Type: constants.AlarmOneTime, TimeOfDay: "07:00", Date: "2026-01-05"},
		{
			Type: constants.AlarmRandom, Weekdays: []time.Weekday{time.Thursday},
			RandomTimes: models.RandomTimes{time.Thursday: "09:00"},
		},
	} {
		if _, ok, err := c.RecomputeAfterFire(a, now); ok || err != nil {
			t.Errorf("RecomputeAfterFire(%s) = _, %v, %v, want none", a.Type, ok, err)
		}
	}
}
