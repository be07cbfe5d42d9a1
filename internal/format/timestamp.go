package format

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

func millis(d time.Duration) int64 {
	return d.Milliseconds()
}

func fromMillis(ms int64) time.Duration {
	return time.Duration(ms) * time.Millisecond
}

func clampZero(d time.Duration) time.Duration {
	if d < 0 {
		return 0
	}
	return d
}

func parseClock(hours, minutes, seconds, frac string) (time.Duration, error) {
	h := 0
	if hours != "" {
		var err error
		if h, err = strconv.Atoi(hours); err != nil {
			return 0, err
		}
	}
	m, err := strconv.Atoi(minutes)
	if err != nil {
		return 0, err
	}
	s, err := strconv.Atoi(seconds)
	if err != nil {
		return 0, err
	}
	ms, err := fractionMillis(frac)
	if err != nil {
		return 0, err
	}

	return time.Duration(h)*time.Hour +
		time.Duration(m)*time.Minute +
		time.Duration(s)*time.Second +
		time.Duration(ms)*time.Millisecond, nil
}

// fractionMillis reads ".5", ".50" and ".500" all as 500ms.
func fractionMillis(frac string) (int, error) {
	if frac == "" {
		return 0, nil
	}
	if len(frac) > 3 {
		frac = frac[:3]
	}
	n, err := strconv.Atoi(frac)
	if err != nil {
		return 0, err
	}
	for i := len(frac); i < 3; i++ {
		n *= 10
	}
	return n, nil
}

// [mm:ss.mmm], minutes are not wrapped into hours
func formatLRCTime(d time.Duration) string {
	d = clampZero(d)
	minutes := int(d / time.Minute)
	seconds := int(d/time.Second) % 60
	ms := int(d.Milliseconds()) % 1000

	return fmt.Sprintf("%02d:%02d.%03d", minutes, seconds, ms)
}

// parseLRCTime accepts mm:ss, mm:ss.xx, mm:ss.xxx and mm:ss:xx.
func parseLRCTime(s string) (time.Duration, bool) {
	s = strings.TrimSpace(s)
	mins, rest, ok := strings.Cut(s, ":")
	if !ok || mins == "" {
		return 0, false
	}
	secs, frac, _ := strings.Cut(rest, ".")
	if strings.Contains(secs, ":") {
		secs, frac, _ = strings.Cut(secs, ":")
	}
	if !isDigits(mins) || !isDigits(secs) || (frac != "" && !isDigits(frac)) {
		return 0, false
	}
	d, err := parseClock("", mins, secs, frac)
	if err != nil {
		return 0, false
	}
	return d, true
}

func formatSRTTime(d time.Duration) string {
	d = clampZero(d)
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	ms := int(d.Milliseconds()) % 1000

	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, seconds, ms)
}

func formatVTTTime(d time.Duration) string {
	return strings.Replace(formatSRTTime(d), ",", ".", 1)
}

func formatASSTime(d time.Duration) string {
	d = clampZero(d)
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	centis := (int(d.Milliseconds()) % 1000) / 10

	return fmt.Sprintf("%d:%02d:%02d.%02d", hours, minutes, seconds, centis)
}

// TTML clock values: [hh:]mm:ss.mmm, minutes are wrapped once an hour passes
func formatTTMLTime(d time.Duration) string {
	d = clampZero(d)
	if d >= time.Hour {
		return formatVTTTime(d)
	}
	return formatLRCTime(d)
}

// parseTTMLTime accepts clock values ([hh:]mm:ss.fff or ss.fff) and offset
// values with an "s" or "ms" suffix.
func parseTTMLTime(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty time value")
	}
	switch {
	case strings.HasSuffix(s, "ms"):
		n, err := strconv.ParseFloat(strings.TrimSuffix(s, "ms"), 64)
		if err != nil {
			return 0, err
		}
		return time.Duration(n * float64(time.Millisecond)), nil
	case strings.HasSuffix(s, "s"):
		n, err := strconv.ParseFloat(strings.TrimSuffix(s, "s"), 64)
		if err != nil {
			return 0, err
		}
		return time.Duration(n * float64(time.Second)), nil
	}

	parts := strings.Split(s, ":")
	var hours, minutes, rest string
	switch len(parts) {
	case 1:
		minutes, rest = "0", parts[0]
	case 2:
		minutes, rest = parts[0], parts[1]
	case 3:
		hours, minutes, rest = parts[0], parts[1], parts[2]
	default:
		return 0, fmt.Errorf("invalid time value %q", s)
	}
	secs, frac, _ := strings.Cut(rest, ".")
	return parseClock(hours, minutes, secs, frac)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
