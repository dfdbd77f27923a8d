package formatcode

import (
	"fmt"
	"html"
	"regexp"
	"strings"
)

var markerRe = regexp.MustCompile(`<u>(` + wordClass + `+)</u>`)

// Render resolves fills against s and substitutes each label's marker with
// its value. On failure the returned text is empty and the error carries the
// message to show the user.
func (s *Spec) Render(clk Clock, fills string, offset int) (string, error) {
	values, err := s.ParseFills(clk, fills, offset)
	if err != nil {
		return "", err
	}

	used := make(map[string]bool, len(values))
	return markerRe.ReplaceAllStringFunc(s.text, func(m string) string {
		label := m[len("<u>") : len(m)-len("</u>")]
		v, ok := values[label]
		if !ok || used[label] {
			return m
		}
		used[label] = true
		return v
	}), nil
}

// Details lists the display text followed by every label with its kind and
// default, in declaration order.
func (s *Spec) Details() string {
	if s.text == "" {
		return "<i>None</i>"
	}
	text := s.escapedText()
	if len(s.entries) == 0 {
		return text + "\n\n<b>Details</b>\n<i>None</i>"
	}

	lines := make([]string, len(s.entries))
	for i, e := range s.entries {
		lines[i] = fmt.Sprintf("%d. %s - <b>type</b> %s\n<b>default</b> %s",
			i+1, marker(e.Label), e.Kind.Name(), html.EscapeString(e.Default))
	}
	return text + "\n\n<b>Details</b>\n" + strings.Join(lines, "\n")
}

// escapedText is the display text with everything but the label markers
// HTML escaped.
func (s *Spec) escapedText() string {
	var b strings.Builder
	last := 0
	for _, m := range markerRe.FindAllStringSubmatchIndex(s.text, -1) {
		if _, ok := s.index[s.text[m[2]:m[3]]]; !ok {
			continue
		}
		b.WriteString(html.EscapeString(s.text[last:m[0]]))
		b.WriteString(s.text[m[0]:m[1]])
		last = m[1]
	}
	b.WriteString(html.EscapeString(s.text[last:]))
	return b.String()
}
