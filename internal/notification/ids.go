package notification

import (
	"strconv"
	"time"

	"github.com/julianstephens/alarmnote/internal/constants"
)

// WeekdayID returns the id of the weekly request registered for wd
func WeekdayID(alarmID string, wd time.Weekday) string {
	return alarmID + ":" + strconv.Itoa(int(wd))
}

// CancellationIDs returns every id an alarm may have registered: the base id
// and one per weekday. The set does not depend on the alarm's type.
func CancellationIDs(alarmID string) []string {
	ids := make([]string, 0, constants.DaysPerWeek+1)
	ids = append(ids, alarmID)
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		ids = append(ids, WeekdayID(alarmID, wd))
	}
	return ids
}
