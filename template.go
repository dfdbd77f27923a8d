package main

import (
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/kyokomi/emoji"
	"github.com/semog/templatebot/formatcode"
)

const fillSeparator = ".."

// pollTemplate is a stored poll blueprint. Its title and description are
// format specs that are filled in when a poll is generated.
type pollTemplate struct {
	ID                int
	UserID            int64
	Name              string
	Description       string
	TitleFormat       *formatcode.Spec
	DescriptionFormat *formatcode.Spec
	Options           []string
	SingleResponse    bool
	CreatedAt         int64
}

func newPollTemplate(userID int64, name, titleFormat, descriptionFormat string, options []string, singleResponse bool) (*pollTemplate, error) {
	title, err := formatcode.Parse(titleFormat)
	if err != nil {
		return nil, err
	}
	description, err := formatcode.Parse(descriptionFormat)
	if err != nil {
		return nil, err
	}
	return &pollTemplate{
		UserID:            userID,
		Name:              name,
		TitleFormat:       title,
		DescriptionFormat: description,
		Options:           options,
		SingleResponse:    singleResponse,
	}, nil
}

func (t *pollTemplate) fmtQuery(query string) string {
	return fmt.Sprintf("%c:%d:%s", qryTemplatePayload, t.ID, query)
}

func (t *pollTemplate) command() string {
	return fmt.Sprintf("%s%d", locTemplateCommandPrefix, t.ID)
}

func (t *pollTemplate) responseType() string {
	if t.SingleResponse {
		return "Single Response"
	}
	return "Multi-Response"
}

// splitTitleAndDescription cuts fills at the last line consisting solely of
// "..". Without such a line every fill belongs to the title.
func splitTitleAndDescription(fills string) (title, description string) {
	lines := strings.Split(fills, "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if lines[i] == fillSeparator {
			title = strings.Join(lines[:i], "\n")
			description = strings.Join(lines[i+1:], "\n")
			return strings.TrimSpace(title), strings.TrimSpace(description)
		}
	}
	return strings.TrimSpace(fills), ""
}

// renderTitleAndDescription fills both formats from one block of fills.
// Description labels are numbered after the title labels.
func (t *pollTemplate) renderTitleAndDescription(clk formatcode.Clock, fills string) (title, description string, err error) {
	titleFills, descriptionFills := splitTitleAndDescription(fills)
	title, err = t.TitleFormat.Render(clk, titleFills, 0)
	if err != nil {
		return "", "", err
	}
	description, err = t.DescriptionFormat.Render(clk, descriptionFills, t.TitleFormat.Len())
	if err != nil {
		return "", "", err
	}
	return title, description, nil
}

// generatePoll renders a new, unsaved poll from the template.
func (t *pollTemplate) generatePoll(clk formatcode.Clock, userID int64, fills string) (*poll, error) {
	title, description, err := t.renderTitleAndDescription(clk, fills)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(title) == "" {
		title = t.Name
	}
	p := &poll{
		UserID:      userID,
		TemplateID:  t.ID,
		Question:    title,
		Description: description,
		Inactive:    open,
		Type:        multipleChoice,
	}
	if t.SingleResponse {
		p.Type = standard
	}
	for _, o := range t.Options {
		p.Options = append(p.Options, option{Text: o})
	}
	return p, nil
}

func (t *pollTemplate) renderText() string {
	header := emoji.Sprintf("<b>:bar_chart: %s (Template)</b>", html.EscapeString(t.Name))
	if t.Description != "" {
		header += fmt.Sprintf("\n<i>%s</i>", html.EscapeString(t.Description))
	}
	options := make([]string, len(t.Options))
	for i, o := range t.Options {
		options[i] = html.EscapeString(o)
	}
	return strings.Join([]string{
		header,
		"<b>Title</b>\n" + t.TitleFormat.Details(),
		"<b>Description</b>\n" + t.DescriptionFormat.Details(),
		"<b>Options</b>\n" + indexedList(options),
		"<b>Response Type</b> - " + t.responseType(),
	}, "\n\n")
}

// summaryLine is the template's entry in a template list.
func (t *pollTemplate) summaryLine(now time.Time) string {
	created := time.Unix(0, t.CreatedAt)
	return emoji.Sprintf("<b>%s</b> :bar_chart:\n%s · created %s",
		html.EscapeString(t.Name), t.command(), humanize.RelTime(created, now, "ago", "from now"))
}
