package parser

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	samplePattern = regexp.MustCompile(`^(\d+) out of ([\d,]+)$`)

	// Matches lines such as "Mon, 05 Jan 2009" and "Mon, 05 Jan 2009 13:45:02 +0000".
	timestampPattern = regexp.MustCompile(`^[A-Za-z]{3}, (\d{2}) ([A-Za-z]{3,4}) (\d{4})(?: (\d{2}):(\d{2}):(\d{2}))?`)
)

var months = map[string]time.Month{
	"jan":  time.January,
	"feb":  time.February,
	"mar":  time.March,
	"apr":  time.April,
	"may":  time.May,
	"jun":  time.June,
	"june": time.June,
	"jul":  time.July,
	"july": time.July,
	"aug":  time.August,
	"sep":  time.September,
	"sept": time.September,
	"oct":  time.October,
	"nov":  time.November,
	"dec":  time.December,
}

// Classifier turns log lines into records. The zero value uses time.Local.
type Classifier struct {
	// Location is the zone timestamps are interpreted in. Nil means time.Local.
	Location *time.Location
}

// Classify classifies a line using the local time zone.
func Classify(line string) (Record, error) {
	return Classifier{}.Classify(line)
}

// Classify returns exactly one of a sample record, a timestamp record or a
// KindNone record. Lines of a recognized shape with invalid fields return a
// *MalformedRecordError.
func (c Classifier) Classify(line string) (Record, error) {
	line = strings.TrimRight(line, "\r\n")

	if m := samplePattern.FindStringSubmatch(line); m != nil {
		return parseSample(line, m[1], m[2])
	}

	if m := timestampPattern.FindStringSubmatch(line); m != nil {
		return c.parseTimestamp(line, m)
	}

	return Record{Kind: KindNone}, nil
}

func parseSample(line, rankStr, totalStr string) (Record, error) {
	rank, err := strconv.ParseInt(rankStr, 10, 64)
	if err != nil {
		return Record{}, malformed(KindSample, line, "rank: %v", err)
	}

	digits := strings.ReplaceAll(totalStr, ",", "")
	if digits == "" {
		return Record{}, malformed(KindSample, line, "total has no digits")
	}

	total, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return Record{}, malformed(KindSample, line, "total: %v", err)
	}

	if total == 0 {
		return Record{}, malformed(KindSample, line, "total is zero")
	}

	if rank > total {
		return Record{}, malformed(KindSample, line, "rank %d exceeds total %d", rank, total)
	}

	return Record{Kind: KindSample, Rank: rank, Total: total}, nil
}

func (c Classifier) parseTimestamp(line string, m []string) (Record, error) {
	month, ok := months[strings.ToLower(m[2])]
	if !ok {
		return Record{}, malformed(KindTimestamp, line, "unknown month %q", m[2])
	}

	// The pattern guarantees digits, so Atoi cannot fail here.
	day, _ := strconv.Atoi(m[1])
	year, _ := strconv.Atoi(m[3])

	var hour, minute, second int
	hasClock := m[4] != ""
	if hasClock {
		hour, _ = strconv.Atoi(m[4])
		minute, _ = strconv.Atoi(m[5])
		second, _ = strconv.Atoi(m[6])
		if hour > 23 || minute > 59 || second > 59 {
			return Record{}, malformed(KindTimestamp, line, "time of day %s:%s:%s out of range", m[4], m[5], m[6])
		}
	}

	if day < 1 || day > daysIn(month, year) {
		return Record{}, malformed(KindTimestamp, line, "day %d out of range for %s %d", day, month, year)
	}

	loc := c.Location
	if loc == nil {
		loc = time.Local
	}

	return Record{
		Kind:     KindTimestamp,
		Time:     time.Date(year, month, day, hour, minute, second, 0, loc),
		HasClock: hasClock,
	}, nil
}

// daysIn returns the number of days in the month, leaning on time.Date
// normalization of day zero of the following month.
func daysIn(month time.Month, year int) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
