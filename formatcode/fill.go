package formatcode

import (
	"html"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	assignRe   = regexp.MustCompile(`^(` + wordClass + `+)\s*=\s*((?s:.*))$`)
	wrappedRe  = regexp.MustCompile(`^(.*?)\$\(((?s:.*?))\)\$(.*)$`)
	positionRe = regexp.MustCompile(`^\d+$`)
)

// ParseFills resolves a block of fills into one display value per label.
//
// Each line of fills is one fill, except that a $( ... )$ wrapper may carry
// a value across lines. A fill is either "." (the next label's default),
// "label = value", "n = value" with n a 1-based position shifted by offset,
// or a bare value for the next unfilled label. Labels left unfilled resolve
// to their defaults.
func (s *Spec) ParseFills(clk Clock, fills string, offset int) (map[string]string, error) {
	now := clk.Now()

	segments := splitFills(fills)
	if len(segments) > len(s.entries) {
		return nil, newError(FillCountError, "Too many format inputs. Only %d required.", len(s.entries))
	}

	values := make(map[string]string, len(s.entries))
	next := 0
	nextUnfilled := func() string {
		for ; next < len(s.entries); next++ {
			if _, ok := values[s.entries[next].Label]; !ok {
				return s.entries[next].Label
			}
		}
		return ""
	}

	for _, seg := range segments {
		var label, input string
		switch m := assignRe.FindStringSubmatch(seg); {
		case seg == ".":
			label = nextUnfilled()
			input = s.entries[s.index[label]].Default
		case m == nil:
			label, input = nextUnfilled(), seg
		default:
			label, input = m[1], m[2]
			if positionRe.MatchString(label) {
				n, err := strconv.Atoi(label)
				if err != nil || n-offset < 1 || n-offset > len(s.entries) {
					return nil, newError(FillValueError, "Label index out of range: <i>%s</i>.", label)
				}
				label = s.entries[n-offset-1].Label
			}
		}

		if _, ok := values[label]; ok {
			return nil, newError(FillValueError, "Duplicate values for <u>%s</u> given.", label)
		}
		value, err := s.convert(now, label, input)
		if err != nil {
			return nil, err
		}
		values[label] = value
	}

	for _, e := range s.entries {
		if _, ok := values[e.Label]; ok {
			continue
		}
		value, err := s.convert(now, e.Label, e.Default)
		if err != nil {
			return nil, err
		}
		values[e.Label] = value
	}
	return values, nil
}

// convert validates input against the kind of label and returns the text
// that replaces the label's marker.
func (s *Spec) convert(now time.Time, label, input string) (string, error) {
	code, ok := s.Code(label)
	if !ok {
		return "", newError(LookupError, "Label <u>%s</u> does not exist.", html.EscapeString(label))
	}

	if m := wrappedRe.FindStringSubmatch(input); m != nil {
		if m[1] != "" || m[3] != "" {
			return "", newError(FillValueError,
				"Multi-line format input for <u>%s</u> has excess wrapping characters.\n<i>%s</i>",
				label, html.EscapeString(input))
		}
		input = strings.TrimSpace(m[2])
	}
	if input == "" {
		input = code.Default
	}

	switch code.Kind {
	case Digit:
		if !digitRe.MatchString(input) {
			return "", newError(FillValueError,
				"Format input for <u>%s</u> is not a digit.\n<i>%s</i>", label, html.EscapeString(input))
		}
		return input, nil
	case Date:
		return convertDate(now, label, code, input)
	}
	return input, nil
}

// splitFills cuts fills into trimmed, non-blank segments.
func splitFills(fills string) []string {
	var segments []string
	start := 0
	for {
		seg, end := scanSegment(fills, start)
		if seg = strings.TrimSpace(seg); seg != "" {
			segments = append(segments, seg)
		}
		nl := strings.IndexByte(fills[end:], '\n')
		if nl < 0 {
			return segments
		}
		start = end + nl + 1
	}
}

// scanSegment returns the segment starting at the beginning of a line and
// the offset where scanning resumes. The segment is the rest of the line,
// unless a $( wrapper on the line closes with ")$" at the end of this or a
// later line, in which case it runs through that close.
func scanSegment(s string, start int) (string, int) {
	lineEnd := len(s)
	if i := strings.IndexByte(s[start:], '\n'); i >= 0 {
		lineEnd = start + i
	}
	for p := start; ; p++ {
		if strings.HasPrefix(s[p:], "$(") {
			if closing, resume, ok := closeWrapper(s, p); ok {
				return s[start:closing], resume
			}
		}
		if strings.TrimLeft(s[p:lineEnd], " ") == "" {
			return s[start:p], lineEnd
		}
	}
}

// closeWrapper finds the first ")$" after the wrapper opened at p that is
// followed only by spaces up to a newline or the end of s.
func closeWrapper(s string, p int) (closing, resume int, ok bool) {
	for k := p + 3; k+1 < len(s); k++ {
		if s[k] != ')' || s[k+1] != '$' {
			continue
		}
		resume = k + 2
		for resume < len(s) && s[resume] == ' ' {
			resume++
		}
		if resume == len(s) || s[resume] == '\n' {
			return k + 2, resume, true
		}
	}
	return 0, 0, false
}
