package importer

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/emilianohg/staffboard/internal/calendar"
	"github.com/emilianohg/staffboard/internal/models"
)

var dateLayouts = []string{
	calendar.DateLayout,
	"2006-01-02 15:04:05",
	time.RFC3339,
	"1/2/2006",
	"2-Jan-2006",
}

// parseDate accepts the text layouts above or an Excel serial day number.
func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return calendar.Date(t), nil
		}
	}

	if serial, err := strconv.ParseFloat(s, 64); err == nil && serial > 0 {
		t, err := excelize.ExcelDateToTime(serial, false)
		if err == nil {
			return calendar.Date(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

// parseHours returns the whole hours in s, or 0 when s is blank, not a
// number, NaN, or not positive. Infinite or implausibly large values are an
// error.
func parseHours(s string) (int, error) {
	h, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(h) || h <= 0 {
		return 0, nil
	}
	if math.IsInf(h, 1) || h > math.MaxInt32 {
		return 0, fmt.Errorf("hours %q is out of range", s)
	}
	return int(h), nil
}

// parseFlag maps Y/N style answers, booleans and Excel 1/0 cells to Yes/No.
// Anything else is returned as is and left to validation.
func parseFlag(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "n", "no", "false", "0":
		return models.No
	case "y", "yes", "true", "1":
		return models.Yes
	default:
		return s
	}
}
