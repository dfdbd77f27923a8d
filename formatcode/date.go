package formatcode

import (
	"html"
	"regexp"
	"strings"
	"time"

	"github.com/ncruces/go-strftime"
)

const defaultDateLayout = "%d/%m/%y"

// Conversion characters understood by strftime.Format.
const conversions = "aAbBcCdDeFfgGhHIjklLmMnNpPQrRsStTuUvVwWxXyYzZ%+"

var dateInputRe = regexp.MustCompile(`^(\+{0,3}|-{0,3})([0-7])(\s+(?s:.*))?$`)

// validLayout reports whether every conversion in layout is one strftime
// knows, allowing the '-' and ':' flags and the E and O modifiers.
func validLayout(layout string) bool {
	if strings.IndexByte(layout, 0) >= 0 {
		return false
	}
	for i := 0; i < len(layout); i++ {
		if layout[i] != '%' {
			continue
		}
		i++
		if i < len(layout) && (layout[i] == '-' || layout[i] == ':') {
			i++
		}
		if i < len(layout) && (layout[i] == 'E' || layout[i] == 'O') {
			i++
		}
		if i >= len(layout) || strings.IndexByte(conversions, layout[i]) < 0 {
			return false
		}
	}
	return true
}

// isoWeekday numbers Monday 1 through Sunday 7.
func isoWeekday(t time.Time) int {
	if wd := t.Weekday(); wd != time.Sunday {
		return int(wd)
	}
	return 7
}

// relativeDate moves now to the given ISO weekday (0 keeps today's) and
// then by one week per symbol, forward for '+' and back for '-'.
func relativeDate(now time.Time, symbols string, day int) time.Time {
	weeks := len(symbols)
	if weeks > 0 && symbols[0] == '-' {
		weeks = -weeks
	}
	today := isoWeekday(now)
	if day == 0 {
		day = today
	}
	return now.AddDate(0, 0, day-today+7*weeks)
}

// defaultLayout extracts the layout carried by a stored date default.
func defaultLayout(def string) string {
	if m := dateDefaultRe.FindStringSubmatch(def); m != nil {
		if layout := strings.TrimSpace(m[2]); layout != "" {
			return layout
		}
	}
	return defaultDateLayout
}

func convertDate(now time.Time, label string, code Code, input string) (string, error) {
	m := dateInputRe.FindStringSubmatch(input)
	if m == nil {
		return "", dateInputError(label, input)
	}
	layout := strings.TrimSpace(m[3])
	if layout == "" {
		layout = defaultLayout(code.Default)
	}
	if !validLayout(layout) {
		return "", dateInputError(label, input)
	}
	day := int(m[2][0] - '0')
	return strftime.Format(layout, relativeDate(now, m[1], day)), nil
}

func dateInputError(label, input string) error {
	return newError(FillValueError,
		"Format input for <u>%s</u> is not in the correct date format.\n<i>%s</i>\n<i>E.g. 1 %%d/%%m/%%y</i>",
		label, html.EscapeString(input))
}
