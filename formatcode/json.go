package formatcode

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// JSON keys of a serialized spec.
const (
	TextKey  = "format_text"
	CodesKey = "format_codes"
)

// MarshalJSON encodes s as {"format_text": text, "format_codes": {label:
// [kind, default], ...}} with the codes in declaration order.
func (s *Spec) MarshalJSON() ([]byte, error) {
	var b bytes.Buffer
	text, err := json.Marshal(s.text)
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(&b, "{%q:%s,%q:{", TextKey, text, CodesKey)
	for i, e := range s.entries {
		if i > 0 {
			b.WriteByte(',')
		}
		label, err := json.Marshal(e.Label)
		if err != nil {
			return nil, err
		}
		code, err := json.Marshal([2]string{string(e.Kind), e.Default})
		if err != nil {
			return nil, err
		}
		b.Write(label)
		b.WriteByte(':')
		b.Write(code)
	}
	b.WriteString("}}")
	return b.Bytes(), nil
}

// UnmarshalJSON decodes the form written by MarshalJSON, keeping the order
// of the codes object. Like Load it does not validate the codes.
func (s *Spec) UnmarshalJSON(data []byte) error {
	var raw struct {
		Text  string          `json:"format_text"`
		Codes json.RawMessage `json:"format_codes"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("could not decode format spec: %v", err)
	}
	entries, err := decodeCodes(raw.Codes)
	if err != nil {
		return fmt.Errorf("could not decode format codes: %v", err)
	}
	*s = *Load(raw.Text, entries)
	return nil
}

func decodeCodes(data json.RawMessage) ([]Entry, error) {
	if len(data) == 0 || string(data) == "null" {
		return nil, nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("expected an object, got %v", tok)
	}

	var entries []Entry
	for dec.More() {
		tok, err = dec.Token()
		if err != nil {
			return nil, err
		}
		label, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("expected a label, got %v", tok)
		}
		var details []string
		if err := dec.Decode(&details); err != nil {
			return nil, fmt.Errorf("label %q: %v", label, err)
		}
		if len(details) != 2 {
			return nil, fmt.Errorf("label %q: expected [kind, default], got %d values", label, len(details))
		}
		entries = append(entries, Entry{Label: label, Code: Code{Kind: Kind(details[0]), Default: details[1]}})
	}
	return entries, nil
}
