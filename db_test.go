package main

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	tg "github.com/semog/go-bot-api/v4"
)

func newTestStore(t *testing.T) *sqlStore {
	t.Helper()
	st, err := newSQLStore(filepath.Join(t.TempDir(), "templates.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(st.Close)
	return st
}

func TestStoreTemplateRoundTrip(t *testing.T) {
	st := newTestStore(t)

	tmpl, err := newPollTemplate(11, "Training", "%st#zeta$(z)$ on %dt#alpha$(+3 %A)$", "Bring %st", []string{"Yes", "No"}, false)
	if err != nil {
		t.Fatal(err)
	}
	tmpl.Description = "weekly"
	id, err := st.SaveTemplate(tmpl)
	if err != nil {
		t.Fatal(err)
	}
	if id == 0 || tmpl.ID != id {
		t.Fatalf("SaveTemplate returned id %d, template has %d", id, tmpl.ID)
	}

	got, err := st.GetTemplate(id)
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != "Training" || got.Description != "weekly" || got.UserID != 11 || got.SingleResponse {
		t.Errorf("unexpected template %+v", got)
	}
	if diff := cmp.Diff(tmpl.Options, got.Options); diff != "" {
		t.Errorf("options mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(tmpl.TitleFormat.Entries(), got.TitleFormat.Entries()); diff != "" {
		t.Errorf("title codes mismatch (-want +got):\n%s", diff)
	}
	if got.TitleFormat.Text() != tmpl.TitleFormat.Text() {
		t.Errorf("title text = %q, expected %q", got.TitleFormat.Text(), tmpl.TitleFormat.Text())
	}
	if got.DescriptionFormat.Text() != "Bring <u>1</u>" {
		t.Errorf("description text = %q", got.DescriptionFormat.Text())
	}

	got.SingleResponse = true
	got.Options = append(got.Options, "Maybe")
	if _, err := st.SaveTemplate(got); err != nil {
		t.Fatal(err)
	}
	again, err := st.GetUserTemplate(id, 11)
	if err != nil {
		t.Fatal(err)
	}
	if !again.SingleResponse || len(again.Options) != 3 {
		t.Errorf("update not stored: %+v", again)
	}
}

func TestStoreTemplatesByUserAndDelete(t *testing.T) {
	st := newTestStore(t)

	var ids []int
	for _, name := range []string{"a", "b"} {
		tmpl, err := newPollTemplate(5, name, "", "", nil, true)
		if err != nil {
			t.Fatal(err)
		}
		id, err := st.SaveTemplate(tmpl)
		if err != nil {
			t.Fatal(err)
		}
		ids = append(ids, id)
	}

	templates, err := st.GetTemplatesByUser(5)
	if err != nil {
		t.Fatal(err)
	}
	if len(templates) != 2 || templates[0].Name != "b" {
		t.Fatalf("expected newest template first, got %v", templates)
	}
	if templates[0].Options != nil && len(templates[0].Options) != 0 {
		t.Errorf("expected no options, got %v", templates[0].Options)
	}

	if _, err := st.GetUserTemplate(ids[0], 6); err == nil {
		t.Error("expected another user's template to be hidden")
	}
	if err := st.DeleteTemplate(6, ids[0]); err == nil {
		t.Error("expected deleting another user's template to fail")
	}
	if err := st.DeleteTemplate(5, ids[0]); err != nil {
		t.Fatal(err)
	}
	if _, err := st.GetTemplate(ids[0]); err == nil {
		t.Error("template still present after delete")
	}
}

func TestStoreState(t *testing.T) {
	st := newTestStore(t)

	if _, _, err := st.GetState(3); err == nil {
		t.Error("expected no state for a new user")
	}
	if err := st.SaveState(3, 17, waitingForFormatInputs); err != nil {
		t.Fatal(err)
	}
	if err := st.SaveState(3, 18, waitingForTitleFormat); err != nil {
		t.Fatal(err)
	}
	state, templateID, err := st.GetState(3)
	if err != nil {
		t.Fatal(err)
	}
	if state != waitingForTitleFormat || templateID != 18 {
		t.Errorf("GetState = %d, %d", state, templateID)
	}
	if err := st.SaveState(0, 1, ohHi); err == nil {
		t.Error("expected user 0 to be rejected")
	}
}

func TestStoreUpdateOffset(t *testing.T) {
	st := newTestStore(t)

	if got := st.GetUpdateOffset(); got != 0 {
		t.Errorf("initial offset = %d", got)
	}
	for _, offset := range []int{10, 42} {
		if err := st.SaveUpdateOffset(offset); err != nil {
			t.Fatal(err)
		}
	}
	if got := st.GetUpdateOffset(); got != 42 {
		t.Errorf("offset = %d, expected 42", got)
	}
}

func TestStoreUser(t *testing.T) {
	st := newTestStore(t)

	if err := st.SaveUser(&tg.User{ID: 9, FirstName: "Ann", UserName: "ann"}); err != nil {
		t.Fatal(err)
	}
	if err := st.SaveUser(&tg.User{ID: 9, FirstName: "Anne", LastName: "Lee", UserName: "ann"}); err != nil {
		t.Fatal(err)
	}
	u, err := st.GetUser(9)
	if err != nil {
		t.Fatal(err)
	}
	if u.FirstName != "Anne" || u.LastName != "Lee" {
		t.Errorf("user not updated: %+v", u)
	}
}

func savedTestPoll(t *testing.T, st *sqlStore, pollType int) *poll {
	t.Helper()
	p := &poll{UserID: 1, TemplateID: 4, Question: "Lunch?", Description: "Friday", Type: pollType}
	id, err := st.SavePoll(p)
	if err != nil {
		t.Fatal(err)
	}
	p.ID = id
	p.Options = []option{{PollID: id, Text: "Yes"}, {PollID: id, Text: "No"}}
	if err := st.SaveOptions(p.Options); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestStorePollVoting(t *testing.T) {
	st := newTestStore(t)
	p := savedTestPoll(t, st, standard)

	got, err := st.GetPoll(p.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Question != "Lunch?" || got.Description != "Friday" || got.TemplateID != 4 {
		t.Errorf("unexpected poll %+v", got)
	}
	if diff := cmp.Diff(p.Options, got.Options); diff != "" {
		t.Errorf("options mismatch (-want +got):\n%s", diff)
	}

	yes, no := p.Options[0].ID, p.Options[1].ID
	vote := func(optionID int) bool {
		t.Helper()
		unvoted, err := st.SaveAnswer(p, answer{PollID: p.ID, UserID: 2, OptionID: optionID})
		if err != nil {
			t.Fatal(err)
		}
		return unvoted
	}
	answersOf := func() []int {
		t.Helper()
		answers, err := st.GetAnswers(p.ID)
		if err != nil {
			t.Fatal(err)
		}
		var ids []int
		for _, a := range answers {
			ids = append(ids, a.OptionID)
		}
		return ids
	}

	if vote(yes) {
		t.Error("first vote reported as removed")
	}
	vote(no)
	if diff := cmp.Diff([]int{no}, answersOf()); diff != "" {
		t.Errorf("single choice answers mismatch (-want +got):\n%s", diff)
	}
	if !vote(no) {
		t.Error("second click on the same option should remove the vote")
	}
	if got := answersOf(); len(got) != 0 {
		t.Errorf("expected no answers, got %v", got)
	}

	if _, err := st.SaveAnswer(p, answer{PollID: p.ID, OptionID: yes}); err == nil {
		t.Error("expected user 0 to be rejected")
	}
}

func TestStoreMultipleChoiceResetAndDelete(t *testing.T) {
	st := newTestStore(t)
	p := savedTestPoll(t, st, multipleChoice)

	for _, o := range p.Options {
		if _, err := st.SaveAnswer(p, answer{PollID: p.ID, UserID: 2, OptionID: o.ID}); err != nil {
			t.Fatal(err)
		}
	}
	answers, err := st.GetAnswers(p.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(answers) != 2 {
		t.Fatalf("expected both answers kept, got %v", answers)
	}

	if err := st.ResetPoll(2, p.ID); err == nil {
		t.Error("expected reset by a non owner to fail")
	}
	if err := st.ResetPoll(1, p.ID); err != nil {
		t.Fatal(err)
	}
	if answers, _ := st.GetAnswers(p.ID); len(answers) != 0 {
		t.Errorf("answers left after reset: %v", answers)
	}

	if err := st.AddInlineMsgToPoll(p.ID, "inline-1"); err != nil {
		t.Fatal(err)
	}
	msgs, err := st.GetAllPollInlineMsg(p.ID)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]pollident{{PollID: p.ID, InlineMessageID: "inline-1"}}, msgs); diff != "" {
		t.Errorf("inline messages mismatch (-want +got):\n%s", diff)
	}

	if err := st.DeletePoll(1, p.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := st.GetPoll(p.ID); err == nil {
		t.Error("poll still present after delete")
	}
	if msgs, _ := st.GetAllPollInlineMsg(p.ID); len(msgs) != 0 {
		t.Errorf("inline messages left after delete: %v", msgs)
	}
}

func TestStorePollsByUser(t *testing.T) {
	st := newTestStore(t)
	for i := 0; i < maxPollsInlineQuery+2; i++ {
		savedTestPoll(t, st, standard)
	}
	polls, err := st.GetPollsByUser(1)
	if err != nil {
		t.Fatal(err)
	}
	if len(polls) != maxPollsInlineQuery {
		t.Errorf("got %d polls, expected %d", len(polls), maxPollsInlineQuery)
	}
	for i := 1; i < len(polls); i++ {
		if polls[i-1].ID < polls[i].ID {
			t.Errorf("polls not ordered newest first: %d before %d", polls[i-1].ID, polls[i].ID)
		}
	}
	if len(polls[0].Options) != 2 {
		t.Errorf("options not loaded: %v", polls[0].Options)
	}
}
