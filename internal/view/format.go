package view

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var dateOnlyPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// 远端 API 返回的日期可能带或不带时区
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	time.DateOnly,
}

func parseDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatInputValue renders value as the default value of an <input> of the
// given type. Dates become YYYY-MM-DD; unparsable numbers and dates become "".
func FormatInputValue(value any, inputType string) string {
	if value == nil {
		return ""
	}

	switch inputType {
	case "number":
		return formatNumber(value)
	case "date":
		return formatDateInput(value)
	}

	switch v := value.(type) {
	case *string:
		if v == nil {
			return ""
		}
		return *v
	case *time.Time:
		if v == nil {
			return ""
		}
		return v.String()
	}
	return fmt.Sprint(value)
}

func formatNumber(value any) string {
	switch v := value.(type) {
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return ""
		}
		return strconv.FormatFloat(f, 'f', -1, 64)
	default:
		return ""
	}
}

func formatDateInput(value any) string {
	switch v := value.(type) {
	case string:
		if dateOnlyPattern.MatchString(v) {
			return v
		}
		if t, ok := parseDate(v); ok {
			return t.UTC().Format(time.DateOnly)
		}
		return ""
	case *string:
		if v == nil {
			return ""
		}
		return formatDateInput(*v)
	case time.Time:
		if v.IsZero() {
			return ""
		}
		return v.UTC().Format(time.DateOnly)
	case *time.Time:
		if v == nil {
			return ""
		}
		return formatDateInput(*v)
	default:
		return ""
	}
}

// FormatDate renders an ISO timestamp as dd/mm/yyyy.
func FormatDate(iso string) string {
	t, ok := parseDate(iso)
	if !ok {
		return "Invalid Date"
	}
	return t.Format("02/01/2006")
}

// FormatOptionalDate is FormatDate for nullable end dates.
func FormatOptionalDate(iso *string, fallback string) string {
	if iso == nil || strings.TrimSpace(*iso) == "" {
		return fallback
	}
	return FormatDate(*iso)
}
