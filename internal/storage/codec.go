package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/julianstephens/alarmnote/internal/models"
	"github.com/julianstephens/alarmnote/internal/utils"
)

// Column encodings shared by the SQL stores. Weekdays are stored as a JSON
// array of ints, random times as a JSON object keyed by weekday number and
// instants as epoch milliseconds.

// EncodeWeekdays returns the weekday column value
func EncodeWeekdays(days []time.Weekday) string {
	if len(days) == 0 {
		return ""
	}
	ints := make([]int, len(days))
	for i, wd := range days {
		ints[i] = int(wd)
	}
	data, _ := json.Marshal(ints)
	return string(data)
}

// DecodeWeekdays parses the weekday column value
func DecodeWeekdays(s string) ([]time.Weekday, error) {
	if s == "" {
		return nil, nil
	}
	var ints []int
	if err := json.Unmarshal([]byte(s), &ints); err != nil {
		return nil, fmt.Errorf("decoding weekdays %q: %w", s, err)
	}
	days := make([]time.Weekday, len(ints))
	for i, n := range ints {
		days[i] = time.Weekday(n)
	}
	return days, nil
}

// EncodeRandomTimes returns the random_times column value
func EncodeRandomTimes(r models.RandomTimes) string {
	if len(r) == 0 {
		return ""
	}
	m := make(map[string]string, len(r))
	for wd, tod := range r {
		m[strconv.Itoa(int(wd))] = tod
	}
	data, _ := json.Marshal(m)
	return string(data)
}

// DecodeRandomTimes parses the random_times column value
func DecodeRandomTimes(s string) (models.RandomTimes, error) {
	if s == "" {
		return nil, nil
	}
	var m map[string]string
	if err := json.Unmarshal([]byte(s), &m); err != nil {
		return nil, fmt.Errorf("decoding random times: %w", err)
	}
	out := make(models.RandomTimes, len(m))
	for k, v := range m {
		n, err := strconv.Atoi(k)
		if err != nil {
			return nil, fmt.Errorf("decoding random times: weekday key %q: %w", k, err)
		}
		out[time.Weekday(n)] = v
	}
	return out, nil
}

// NullMillis converts an optional instant to a nullable column value
func NullMillis(t *time.Time) sql.NullInt64 {
	if t == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: utils.ToEpochMillis(*t), Valid: true}
}

// TimeFromNullMillis converts a nullable column value to an optional instant
func TimeFromNullMillis(n sql.NullInt64) *time.Time {
	if !n.Valid {
		return nil
	}
	t := utils.FromEpochMillis(n.Int64)
	return &t
}

// NullWeekday converts an optional weekday to a nullable column value
func NullWeekday(wd *time.Weekday) sql.NullInt16 {
	if wd == nil {
		return sql.NullInt16{}
	}
	return sql.NullInt16{Int16: int16(*wd), Valid: true}
}

// WeekdayFromNull converts a nullable column value to an optional weekday
func WeekdayFromNull(n sql.NullInt16) *time.Weekday {
	if !n.Valid {
		return nil
	}
	wd := time.Weekday(n.Int16)
	return &wd
}

// EncodeData returns the JSON payload column value
func EncodeData(data map[string]string) string {
	if len(data) == 0 {
		return "{}"
	}
	out, _ := json.Marshal(data)
	return string(out)
}

// DecodeData parses the JSON payload column value
func DecodeData(s string) (map[string]string, error) {
	if s == "" || s == "{}" {
		return map[string]string{}, nil
	}
	var m map[string]string
	if err := json.Unmarshal([]byte(s), &m); err != nil {
		return nil, fmt.Errorf("decoding notification data: %w", err)
	}
	return m, nil
}

// SortNotifications orders requests by fire time then id
func SortNotifications(reqs []models.NotificationRequest) {
	sort.Slice(reqs, func(i, j int) bool {
		if !reqs[i].FireAt.Equal(reqs[j].FireAt) {
			return reqs[i].FireAt.Before(reqs[j].FireAt)
		}
		return reqs[i].ID < reqs[j].ID
	})
}
