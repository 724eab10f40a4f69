package typst

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DefaultPresentLabel is used by DateRange when no localized label is given.
const DefaultPresentLabel = "Present"

// FormatMonthYear converts "YYYY-MM" into "January 2024".
// Any other input is returned unchanged.
func FormatMonthYear(date string) string {
	parts := strings.Split(date, "-")
	if len(parts) != 2 {
		return date
	}

	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return date
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil || month < 1 || month > 12 {
		return date
	}

	return fmt.Sprintf("%s %d", time.Month(month), year)
}

// DateRange renders "start - end" or "start - Present" as gray text.
// The end date is ignored when isPresent is set. Returns "" with no dates and not present.
func DateRange(start, end string, isPresent bool, presentLabel string) string {
	text := DateRangeText(start, end, isPresent, presentLabel)
	if text == "" {
		return ""
	}
	return fmt.Sprintf(`#text(fill: gray, "%s")`, EscapeStringLiteral(text))
}

// DateRangeText is DateRange without markup.
func DateRangeText(start, end string, isPresent bool, presentLabel string) string {
	start = strings.TrimSpace(start)
	end = strings.TrimSpace(end)
	if start == "" && end == "" && !isPresent {
		return ""
	}
	if presentLabel == "" {
		presentLabel = DefaultPresentLabel
	}

	var parts []string
	if start != "" {
		parts = append(parts, FormatMonthYear(start))
	}
	if isPresent {
		parts = append(parts, presentLabel)
	} else if end != "" {
		parts = append(parts, FormatMonthYear(end))
	}

	return strings.Join(parts, " - ")
}
