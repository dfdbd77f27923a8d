package main

import "testing"

func TestMatchingPolls(t *testing.T) {
	polls := []*poll{{ID: 1, Question: "Futsal Friday"}, {ID: 2, Question: "Book club"}}

	if got := matchingPolls(polls, "  "); len(got) != 2 {
		t.Errorf("empty query matched %d polls", len(got))
	}
	got := matchingPolls(polls, "friday")
	if len(got) != 1 || got[0].ID != 1 {
		t.Errorf("matchingPolls(friday) = %v", got)
	}
	if got := matchingPolls(polls, "tennis"); len(got) != 0 {
		t.Errorf("matchingPolls(tennis) = %v", got)
	}
}
