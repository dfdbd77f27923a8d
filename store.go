package main

import tg "github.com/semog/go-bot-api/v4"

// Store is an interface for the persistent storage
// should allow easier swapping of databases
type Store interface {
	Init(databaseFile string) error
	Close()
	GetUpdateOffset() int
	SaveUpdateOffset(offset int) error
	AddInlineMsgToPoll(pollID int, inlineMessageID string) error
	GetAllPollInlineMsg(pollID int) ([]pollident, error)
	GetUser(userID int64) (*tg.User, error)
	SaveUser(*tg.User) error
	GetState(userID int64) (state int, templateID int, err error)
	SaveState(userID int64, templateID int, state int) error
	GetPoll(pollID int) (*poll, error)
	GetUserPoll(pollID int, userID int64) (*poll, error)
	GetPollsByUser(userID int64) ([]*poll, error)
	SavePoll(*poll) (int, error)
	SaveOptions([]option) error
	SaveAnswer(*poll, answer) (unvoted bool, err error)
	ResetPoll(userID int64, pollID int) error
	DeletePoll(userID int64, pollID int) error
	GetTemplate(templateID int) (*pollTemplate, error)
	GetUserTemplate(templateID int, userID int64) (*pollTemplate, error)
	GetTemplatesByUser(userID int64) ([]*pollTemplate, error)
	SaveTemplate(*pollTemplate) (int, error)
	DeleteTemplate(userID int64, templateID int) error
}

type pollident struct {
	PollID          int
	InlineMessageID string
}
