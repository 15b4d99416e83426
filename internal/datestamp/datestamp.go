// Package datestamp extracts capture timestamps from media filenames.
//
// Filenames from cameras and phones commonly embed an 8-digit date followed
// by a 6-digit time (e.g. "IMG_20240612_183015.jpg", "20240612-183015_1.heic").
// The extractor matches that pattern anywhere in the filename stem, validates
// the digits against the real calendar, and constructs the timestamp in a
// fixed reference zone so results do not depend on the host locale.
package datestamp

import (
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"time"

	"github.com/rwcarlsen/goexif/exif"
)

// Location is the fixed reference zone for all extracted timestamps.
var Location = time.FixedZone("UTC+8", 8*60*60)

// Accepted year range. Anything outside is treated as a false-positive match
// (phone serial numbers and similar digit runs).
const (
	minYear = 2000
	maxYear = 2050
)

// stampPattern matches an 8-digit date, an optional single separator, and a
// 6-digit time anywhere in the filename stem.
var stampPattern = regexp.MustCompile(`(\d{8})[-_.\s]?(\d{6})`)

// Stamp is a validated capture timestamp with its calendar day key.
type Stamp struct {
	Taken  time.Time
	DayKey string
}

// Extract parses a capture timestamp from a filename. The second return
// value is false when no pattern matches or the matched digits do not form a
// valid calendar date/time. Extract never panics on any input.
func Extract(name string) (Stamp, bool) {
	stem := name
	if ext := filepath.Ext(name); ext != "" {
		stem = name[:len(name)-len(ext)]
	}

	match := stampPattern.FindStringSubmatch(stem)
	if match == nil {
		return Stamp{}, false
	}

	date, clock := match[1], match[2]
	year, _ := strconv.Atoi(date[:4])
	month, _ := strconv.Atoi(date[4:6])
	day, _ := strconv.Atoi(date[6:8])
	hour, _ := strconv.Atoi(clock[:2])
	minute, _ := strconv.Atoi(clock[2:4])
	second, _ := strconv.Atoi(clock[4:6])

	if !validDate(year, month, day) {
		return Stamp{}, false
	}
	if hour > 23 || minute > 59 || second > 59 {
		return Stamp{}, false
	}

	taken := time.Date(year, time.Month(month), day, hour, minute, second, 0, Location)
	return Stamp{Taken: taken, DayKey: taken.Format("2006-01-02")}, true
}

// validDate checks year/month/day against the real calendar. Day counts are
// checked per month (including leap-year February) so invalid combinations
// like Feb 30 are rejected rather than rolled forward.
func validDate(year, month, day int) bool {
	if year < minYear || year > maxYear {
		return false
	}
	if month < 1 || month > 12 {
		return false
	}
	if day < 1 || day > daysInMonth(year, month) {
		return false
	}
	return true
}

func daysInMonth(year, month int) int {
	switch month {
	case 1, 3, 5, 7, 8, 10, 12:
		return 31
	case 4, 6, 9, 11:
		return 30
	default: // February
		if isLeap(year) {
			return 29
		}
		return 28
	}
}

func isLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// FromEXIF reads the capture timestamp from a file's EXIF metadata, used as
// an optional fallback when the filename carries no parseable stamp. The
// wall-clock fields are re-anchored in the fixed reference zone; the same
// year-range validation as Extract applies.
func FromEXIF(path string) (Stamp, bool) {
	f, err := os.Open(path)
	if err != nil {
		return Stamp{}, false
	}
	defer f.Close()

	x, err := exif.Decode(f)
	if err != nil {
		return Stamp{}, false
	}
	tm, err := x.DateTime()
	if err != nil {
		return Stamp{}, false
	}
	if !validDate(tm.Year(), int(tm.Month()), tm.Day()) {
		return Stamp{}, false
	}

	taken := time.Date(tm.Year(), tm.Month(), tm.Day(), tm.Hour(), tm.Minute(), tm.Second(), 0, Location)
	return Stamp{Taken: taken, DayKey: taken.Format("2006-01-02")}, true
}
