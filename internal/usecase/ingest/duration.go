package ingest

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	hourMinRe   = regexp.MustCompile(`(?i)^(?:(\d+)\s*h)?\s*(?:(\d+)\s*m)?$`)
	floatHourRe = regexp.MustCompile(`(?i)^(\d+(?:\.\d+)?)\s*h$`)
)

// ParseDurationSeconds normalizes the duration conventions seen in external
// payloads ("00:45:30", "1h 30m", "45m", "1.5h", "2700") into a count of
// seconds. Unparseable input yields nil; the parser never errors, the call
// is simply stored without a duration.
func ParseDurationSeconds(raw string) *int {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}

	// 1. Colon-delimited H:M:S or M:S
	if strings.Contains(s, ":") {
		return parseColonDuration(s)
	}

	// 2. Hour/minute tokens: "1h 30m", "45m", "2h"
	if m := hourMinRe.FindStringSubmatch(s); m != nil && (m[1] != "" || m[2] != "") {
		hours, _ := strconv.Atoi(zeroIfEmpty(m[1]))
		minutes, _ := strconv.Atoi(zeroIfEmpty(m[2]))
		secs := hours*3600 + minutes*60
		return &secs
	}

	// 3. Fractional hours: "1.5h"
	if m := floatHourRe.FindStringSubmatch(s); m != nil {
		hours, err := strconv.ParseFloat(m[1], 64)
		if err == nil {
			secs := int(math.Round(hours * 3600))
			return &secs
		}
	}

	// 4. Bare integer seconds
	if secs, err := strconv.Atoi(s); err == nil {
		return &secs
	}

	return nil
}

func parseColonDuration(s string) *int {
	parts := strings.Split(s, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return nil
	}

	// Missing leading component counts as zero
	var hours, minutes, seconds int
	var err error
	if len(parts) == 3 {
		if hours, err = atoiLoose(parts[0]); err != nil {
			return nil
		}
		parts = parts[1:]
	}
	if minutes, err = atoiLoose(parts[0]); err != nil {
		return nil
	}
	if seconds, err = atoiLoose(parts[1]); err != nil {
		return nil
	}

	total := hours*3600 + minutes*60 + seconds
	return &total
}

func atoiLoose(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	return strconv.Atoi(s)
}

func zeroIfEmpty(s string) string {
	if s == "" {
		return "0"
	}
	return s
}
