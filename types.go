package main

import (
	"fmt"
)

type answer struct {
	ID        int
	PollID    int
	UserID    int64
	OptionID  int
	LastSaved int64
}

type option struct {
	ID     int
	PollID int
	Text   string
}

type poll struct {
	ID          int
	UserID      int64
	TemplateID  int
	Question    string
	Description string
	Inactive    int
	Type        int
	Options     []option
	Answers     []answer
}

func (poll *poll) fmtQuery(query string) string {
	return fmt.Sprintf("%c:%d:%s", qryPollPayload, poll.ID, query)
}

func (poll *poll) isInactive() bool {
	return poll.Inactive == inactive
}

func (poll *poll) isSingleChoice() bool {
	return poll.Type == standard
}

func (poll *poll) isMultipleChoice() bool {
	return poll.Type == multipleChoice
}
