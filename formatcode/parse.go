package formatcode

import (
	"html"
	"regexp"
	"strconv"
	"strings"
)

// wordClass matches word characters in any script.
const wordClass = `[\p{L}\p{N}_]`

var (
	// %<kind>, an optional #label, and an optional $( default )$ that may
	// span lines. The default ends at the first ")$".
	directiveRe   = regexp.MustCompile(`%(st|dg|dt)(#` + wordClass + `+)?(\$\((?s:.+?)\)\$)?`)
	labelRe       = regexp.MustCompile(`^[A-Za-z]` + wordClass + `{0,11}$`)
	digitRe       = regexp.MustCompile(`^[+-]?\d+$`)
	dateDefaultRe = regexp.MustCompile(`^((?:\+{0,3}|-{0,3})[0-7])(\s+(?s:.*))?$`)
)

const (
	defaultDigit = "0"
	defaultDate  = "0 " + defaultDateLayout
)

// Parse scans raw for directives and builds a Spec from them.
//
// On failure Parse returns an empty (non-nil) spec together with an *Error
// describing the first problem found.
func Parse(raw string) (*Spec, error) {
	matches := directiveRe.FindAllStringSubmatchIndex(raw, -1)
	s := &Spec{index: make(map[string]int, len(matches))}

	for i, m := range matches {
		label := strconv.Itoa(i + 1)
		if m[4] >= 0 {
			label = raw[m[4]+1 : m[5]]
			if !labelRe.MatchString(label) {
				return Empty(), newError(ParseError,
					"Invalid label <u>%s</u> found.\n"+
						"<i>Labels must have up to 12 alphanumeric characters, including underscores, "+
						"and must start with a letter.</i>", html.EscapeString(label))
			}
			if _, ok := s.index[label]; ok {
				return Empty(), newError(ParseError,
					"Duplicated <u>%s</u> found.\n<i>Labels must be unique.</i>", label)
			}
		}

		var def string
		if m[6] >= 0 {
			def = strings.TrimSpace(raw[m[6]+2 : m[7]-2])
		}

		kind, err := parseKind(raw[m[2]:m[3]])
		if err != nil {
			return Empty(), err
		}
		def, err = checkDefault(label, kind, def)
		if err != nil {
			return Empty(), err
		}

		s.index[label] = len(s.entries)
		s.entries = append(s.entries, Entry{Label: label, Code: Code{Kind: kind, Default: def}})
	}

	var b strings.Builder
	last := 0
	for i, m := range matches {
		b.WriteString(raw[last:m[0]])
		b.WriteString(marker(s.entries[i].Label))
		last = m[1]
	}
	b.WriteString(raw[last:])
	s.text = b.String()

	return s, nil
}

// checkDefault validates def for kind and returns the default to store.
func checkDefault(label string, kind Kind, def string) (string, error) {
	switch kind {
	case Digit:
		if def == "" {
			def = defaultDigit
		}
		if !digitRe.MatchString(def) {
			return "", newError(ParseError, "Default value for <u>%s</u> is not a digit.", label)
		}
		return def, nil
	case Date:
		if def == "" {
			def = defaultDate
		}
		m := dateDefaultRe.FindStringSubmatch(def)
		if m == nil {
			return "", dateDefaultError(label)
		}
		layout := strings.TrimSpace(m[2])
		if layout == "" {
			return m[1] + " " + defaultDateLayout, nil
		}
		if !validLayout(layout) {
			return "", dateDefaultError(label)
		}
		return def, nil
	}
	return def, nil
}

func dateDefaultError(label string) error {
	return newError(ParseError,
		"Default value for <u>%s</u> is not in the correct date format.\n<i>E.g. 1 %%d/%%m/%%y</i>", label)
}
