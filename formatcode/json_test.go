package formatcode

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestJSONRoundTripKeepsOrder(t *testing.T) {
	s := mustParse(t, "%st#zeta$(<z>)$ %dg#alpha %dt#mid$(-2 %d.%m)$ %st")

	data, err := json.Marshal(s)
	if err != nil {
		t.Fatal(err)
	}
	var got Spec
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("could not decode %s: %v", data, err)
	}

	if got.Text() != s.Text() {
		t.Errorf("text = %q, expected %q", got.Text(), s.Text())
	}
	if diff := cmp.Diff(s.Entries(), got.Entries()); diff != "" {
		t.Errorf("entries mismatch (-want +got):\n%s", diff)
	}
}

func TestUnmarshalStoredSpec(t *testing.T) {
	data := []byte(`{"format_text": "Game <u>b</u> vs <u>a</u>", "format_codes": {"b": ["st", "Home"], "a": ["dg", "x"]}}`)

	var s Spec
	if err := json.Unmarshal(data, &s); err != nil {
		t.Fatal(err)
	}
	want := []Entry{
		{Label: "b", Code: Code{Kind: String, Default: "Home"}},
		{Label: "a", Code: Code{Kind: Digit, Default: "x"}},
	}
	if diff := cmp.Diff(want, s.Entries()); diff != "" {
		t.Errorf("entries mismatch (-want +got):\n%s", diff)
	}
	if got, err := s.Render(testClock, "Away\n3", 0); err != nil || got != "Game Away vs 3" {
		t.Errorf("Render = %q, %v", got, err)
	}
}

func TestUnmarshalRejectsMalformedCodes(t *testing.T) {
	for _, doc := range []string{
		`{"format_text": "", "format_codes": []}`,
		`{"format_text": "", "format_codes": {"a": ["st"]}}`,
		`{"format_text": "", "format_codes": {"a": "st"}}`,
	} {
		var s Spec
		if err := json.Unmarshal([]byte(doc), &s); err == nil {
			t.Errorf("Unmarshal(%s) succeeded", doc)
		}
	}
}

func TestUnmarshalEmpty(t *testing.T) {
	var s Spec
	if err := json.Unmarshal([]byte(`{"format_text": "Plain"}`), &s); err != nil {
		t.Fatal(err)
	}
	if s.Text() != "Plain" || s.Len() != 0 {
		t.Errorf("unexpected spec %v", &s)
	}
}

func TestLoadKeepsFirstDuplicate(t *testing.T) {
	s := Load("<u>a</u>", []Entry{
		{Label: "a", Code: Code{Kind: String, Default: "one"}},
		{Label: "a", Code: Code{Kind: String, Default: "two"}},
	})
	if s.Len() != 1 {
		t.Fatalf("Len = %d", s.Len())
	}
	if code, _ := s.Code("a"); code.Default != "one" {
		t.Errorf("default = %q", code.Default)
	}
}
