package formatcode

import "fmt"

// Kind is the type of a placeholder, spelled the way it appears in a
// directive.
type Kind string

// Placeholder kinds.
const (
	Digit  Kind = "dg"
	String Kind = "st"
	Date   Kind = "dt"
)

// Name returns the readable name of k, or "" for an unknown kind.
func (k Kind) Name() string {
	switch k {
	case Digit:
		return "digit"
	case String:
		return "string"
	case Date:
		return "date"
	}
	return ""
}

func parseKind(token string) (Kind, error) {
	switch k := Kind(token); k {
	case Digit, String, Date:
		return k, nil
	}
	return "", newError(ParseError, "Invalid format type found: %%%s", token)
}

// Code is the declared kind and default value of one label.
type Code struct {
	Kind    Kind
	Default string
}

// Entry pairs a label with its code.
type Entry struct {
	Label string
	Code
}

// Spec is a parsed template: display text holding one <u>label</u> marker
// per placeholder, and the placeholders' codes in declaration order.
type Spec struct {
	text    string
	entries []Entry
	index   map[string]int
}

// Empty returns a spec with no text and no placeholders.
func Empty() *Spec {
	return &Spec{index: map[string]int{}}
}

// Load builds a spec from previously stored parts. The parts are trusted:
// nothing is validated, and only the first entry of a repeated label is kept.
func Load(text string, entries []Entry) *Spec {
	s := &Spec{text: text, index: make(map[string]int, len(entries))}
	for _, e := range entries {
		if _, ok := s.index[e.Label]; ok {
			continue
		}
		s.index[e.Label] = len(s.entries)
		s.entries = append(s.entries, e)
	}
	return s
}

// Text returns the display text.
func (s *Spec) Text() string { return s.text }

// Len returns the number of placeholders.
func (s *Spec) Len() int { return len(s.entries) }

// Labels returns the labels in declaration order.
func (s *Spec) Labels() []string {
	labels := make([]string, len(s.entries))
	for i, e := range s.entries {
		labels[i] = e.Label
	}
	return labels
}

// Entries returns a copy of the placeholders in declaration order.
func (s *Spec) Entries() []Entry {
	return append([]Entry(nil), s.entries...)
}

// Code returns the code declared for label.
func (s *Spec) Code(label string) (Code, bool) {
	i, ok := s.index[label]
	if !ok {
		return Code{}, false
	}
	return s.entries[i].Code, true
}

func (s *Spec) String() string {
	return fmt.Sprintf("formatcode.Spec{%q, %d codes}", s.text, len(s.entries))
}

func marker(label string) string {
	return "<u>" + label + "</u>"
}
