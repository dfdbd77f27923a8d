package main

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/semog/templatebot/formatcode"
)

// Wednesday.
var testNow = time.Date(2024, time.January, 17, 9, 30, 0, 0, time.UTC)

func mustTemplate(t *testing.T, title, description string, options ...string) *pollTemplate {
	t.Helper()
	tmpl, err := newPollTemplate(42, "Training", title, description, options, true)
	if err != nil {
		t.Fatalf("newPollTemplate failed: %v", err)
	}
	tmpl.ID = 7
	return tmpl
}

func TestNewPollTemplateRejectsBadFormat(t *testing.T) {
	if _, err := newPollTemplate(1, "x", "%dg$(abc)$", "", nil, true); err == nil {
		t.Error("expected a bad title format to fail")
	}
	if _, err := newPollTemplate(1, "x", "", "%st#a %st#a", nil, true); err == nil {
		t.Error("expected a bad description format to fail")
	}
}

func TestSplitTitleAndDescription(t *testing.T) {
	tests := []struct {
		fills       string
		title       string
		description string
	}{
		{"", "", ""},
		{"a\nb", "a\nb", ""},
		{"a\n..\nb", "a", "b"},
		{"..\nb", "", "b"},
		{"a\n..", "a", ""},
		{"a\n..\nb\n..\nc", "a\n..\nb", "c"},
		{"a\n ..\nb", "a\n ..\nb", ""},
		{"a\n...\nb", "a\n...\nb", ""},
	}
	for _, tt := range tests {
		title, description := splitTitleAndDescription(tt.fills)
		if title != tt.title || description != tt.description {
			t.Errorf("splitTitleAndDescription(%q) = %q, %q; expected %q, %q",
				tt.fills, title, description, tt.title, tt.description)
		}
	}
}

func TestRenderTitleAndDescription(t *testing.T) {
	tmpl := mustTemplate(t, "Training at %st#venue$(the hall)$", "Bring %st$(water)$ x%dg$(2)$")
	clk := formatcode.Fixed(testNow)

	tests := []struct {
		name        string
		fills       string
		title       string
		description string
	}{
		{"defaults", "", "Training at the hall", "Bring water x2"},
		{"title only", "the gym", "Training at the gym", "Bring water x2"},
		{"description by offset", "the gym\n..\n3 = 5", "Training at the gym", "Bring water x5"},
		{"description positional", ".\n..\ntowels\n9", "Training at the hall", "Bring towels x9"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			title, description, err := tmpl.renderTitleAndDescription(clk, tt.fills)
			if err != nil {
				t.Fatal(err)
			}
			if title != tt.title {
				t.Errorf("title = %q, expected %q", title, tt.title)
			}
			if description != tt.description {
				t.Errorf("description = %q, expected %q", description, tt.description)
			}
		})
	}
}

func TestRenderTitleAndDescriptionErrors(t *testing.T) {
	tmpl := mustTemplate(t, "%dg#count", "%dg")
	clk := formatcode.Fixed(testNow)

	_, _, err := tmpl.renderTitleAndDescription(clk, "abc\n..\nxyz")
	var fe *formatcode.Error
	if !errors.As(err, &fe) {
		t.Fatalf("expected a format code error, got %v", err)
	}
	if !strings.Contains(fe.Msg, "<u>count</u>") {
		t.Errorf("expected the title error first, got %q", fe.Msg)
	}

	// The description label is only reachable through the offset.
	if _, _, err := tmpl.renderTitleAndDescription(clk, "1\n..\n1 = 2"); err == nil {
		t.Error("expected position 1 to be out of range for the description")
	}
}

func TestGeneratePoll(t *testing.T) {
	tmpl := mustTemplate(t, "Match on %dt$(3 %A)$", "", "Yes", "No")
	p, err := tmpl.generatePoll(formatcode.Fixed(testNow), 99, "")
	if err != nil {
		t.Fatal(err)
	}
	want := &poll{
		UserID:     99,
		TemplateID: 7,
		Question:   "Match on Wednesday",
		Inactive:   open,
		Type:       standard,
		Options:    []option{{Text: "Yes"}, {Text: "No"}},
	}
	if diff := cmp.Diff(want, p); diff != "" {
		t.Errorf("poll mismatch (-want +got):\n%s", diff)
	}

	tmpl.SingleResponse = false
	p, err = tmpl.generatePoll(formatcode.Fixed(testNow), 99, "+0")
	if err != nil {
		t.Fatal(err)
	}
	if !p.isMultipleChoice() {
		t.Error("expected a multiple choice poll")
	}
	if p.Question != "Match on Wednesday" {
		t.Errorf("question = %q", p.Question)
	}
}

func TestGeneratePollFallsBackToName(t *testing.T) {
	tmpl := mustTemplate(t, "", "")
	p, err := tmpl.generatePoll(formatcode.Fixed(testNow), 1, "")
	if err != nil {
		t.Fatal(err)
	}
	if p.Question != "Training" {
		t.Errorf("question = %q, expected the template name", p.Question)
	}
}

func TestRenderText(t *testing.T) {
	tmpl := mustTemplate(t, "Hi %st#who$(all)$", "", "<yes>", "no")
	tmpl.Description = "weekly"

	got := tmpl.renderText()
	for _, want := range []string{
		"Training (Template)</b>\n<i>weekly</i>",
		"<b>Title</b>\nHi <u>who</u>\n\n<b>Details</b>\n1. <u>who</u> - <b>type</b> string\n<b>default</b> all",
		"<b>Description</b>\n<i>None</i>",
		"<b>Options</b>\n1. &lt;yes&gt;\n2. no",
		"<b>Response Type</b> - Single Response",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("renderText() = %q\nmissing %q", got, want)
		}
	}
}

func TestSummaryLine(t *testing.T) {
	tmpl := mustTemplate(t, "", "")
	tmpl.Name = "<Sunday>"
	tmpl.CreatedAt = testNow.Add(-72 * time.Hour).UnixNano()

	got := tmpl.summaryLine(testNow)
	if !strings.HasPrefix(got, "<b>&lt;Sunday&gt;</b>") {
		t.Errorf("summaryLine() = %q, expected an escaped name", got)
	}
	if !strings.Contains(got, "\n/temp_7 · created 3 days ago") {
		t.Errorf("summaryLine() = %q", got)
	}
}
