package main

import (
	"database/sql"
	"fmt"

	tg "github.com/semog/go-bot-api/v4"
	"github.com/semog/go-sqldb"
	"k8s.io/klog"
)

type sqlStore struct {
	db *sqldb.SQLDb
}

func (st *sqlStore) Close() {
	err := st.db.Close()
	if err != nil {
		klog.Infof("could not close database properly: %v\n", err)
	}
}

type closable interface {
	Close() error
}

func close(c closable) {
	err := c.Close()
	if err != nil {
		klog.Infof("could not close stmt or rows properly: %v\n", err)
	}
}

func newSQLStore(databaseFile string) (*sqlStore, error) {
	st := &sqlStore{}
	if err := st.Init(databaseFile); err != nil {
		return nil, fmt.Errorf("could not open database %s: %v", databaseFile, err)
	}
	return st, nil
}

// withTx runs fn in a transaction that is committed when fn succeeds and
// rolled back otherwise.
func (st *sqlStore) withTx(fn func(tx *sql.Tx) error) (err error) {
	tx, err := st.db.Begin()
	if err != nil {
		return fmt.Errorf("could not begin database transaction: %v", err)
	}
	defer func() {
		if err != nil {
			if err := tx.Rollback(); err != nil {
				klog.Infof("could not rollback database change: %v", err)
			}
			return
		}
		err = tx.Commit()
	}()
	return fn(tx)
}

func (st *sqlStore) GetUpdateOffset() (offset int) {
	row := st.db.QueryRow("SELECT Offset FROM bot_updates WHERE ID = 1")
	if err := row.Scan(&offset); err != nil {
		return 0
	}
	return offset
}

func (st *sqlStore) SaveUpdateOffset(offset int) (err error) {
	// DO an upsert into the bot_updates table
	err = st.db.Exec("INSERT INTO bot_updates(ID, Offset) values(1, ?) ON CONFLICT(ID) DO UPDATE SET Offset = excluded.Offset", offset)
	if err != nil {
		return fmt.Errorf("could not save bot updates offset: %v", err)
	}
	return nil
}

func (st *sqlStore) GetUser(userID int64) (*tg.User, error) {
	u := &tg.User{ID: userID}
	row := st.db.QueryRow("SELECT FirstName, LastName, UserName FROM user WHERE ID = ?", userID)
	if err := row.Scan(&u.FirstName, &u.LastName, &u.UserName); err != nil {
		return u, fmt.Errorf(`could not scan user "%d": %v`, u.ID, err)
	}

	return u, nil
}

func (st *sqlStore) SaveUser(u *tg.User) error {
	if u.ID == 0 {
		return fmt.Errorf("invalid user ID 0 for user '%s'", u.UserName)
	}

	now := getTimeStamp()
	err := st.db.Exec(`INSERT INTO user(ID, FirstName, LastName, UserName, LastSaved, CreatedAt) values(?, ?, ?, ?, ?, ?)
		ON CONFLICT(ID) DO UPDATE SET FirstName = excluded.FirstName, LastName = excluded.LastName,
		UserName = excluded.UserName, LastSaved = excluded.LastSaved`,
		u.ID, u.FirstName, u.LastName, u.UserName, now, now)
	if err != nil {
		return fmt.Errorf("could not save user '%s': %v", u.UserName, err)
	}
	return nil
}

func (st *sqlStore) GetState(userID int64) (state int, templateID int, err error) {
	row := st.db.QueryRow("SELECT state, TemplateID FROM dialog WHERE UserID = ?", userID)
	if err := row.Scan(&state, &templateID); err != nil {
		return state, templateID, fmt.Errorf("could not scan state from row: %v", err)
	}
	return state, templateID, nil
}

func (st *sqlStore) SaveState(userID int64, templateID int, state int) error {
	if userID == 0 {
		return fmt.Errorf("could not save state: invalid user ID 0 for template #%d", templateID)
	}

	err := st.db.Exec("INSERT OR REPLACE INTO dialog(UserID, TemplateID, state) values(?, ?, ?)", userID, templateID, state)
	if err != nil {
		return fmt.Errorf("could not save state: could not insert or replace state database entry: %v", err)
	}
	return nil
}

const pollColumns = "ID, UserID, TemplateID, Question, Description, Inactive, Type"

func (st *sqlStore) GetPoll(pollID int) (*poll, error) {
	return st.GetUserPoll(pollID, 0)
}

func (st *sqlStore) GetUserPoll(pollID int, userID int64) (*poll, error) {
	var row *sql.Row
	if userID > 0 {
		row = st.db.QueryRow("SELECT "+pollColumns+" FROM poll WHERE ID = ? AND UserID = ?", pollID, userID)
	} else {
		row = st.db.QueryRow("SELECT "+pollColumns+" FROM poll WHERE ID = ?", pollID)
	}

	p := &poll{}
	if err := row.Scan(&p.ID, &p.UserID, &p.TemplateID, &p.Question, &p.Description, &p.Inactive, &p.Type); err != nil {
		return p, fmt.Errorf("could not scan poll #%d: %v", pollID, err)
	}
	return p, st.loadPollChildren(p)
}

func (st *sqlStore) loadPollChildren(p *poll) (err error) {
	p.Options, err = st.GetOptions(p.ID)
	if err != nil {
		return fmt.Errorf("could not query options: %v", err)
	}

	p.Answers, err = st.GetAnswers(p.ID)
	if err != nil {
		return fmt.Errorf("could not query answers: %v", err)
	}
	return nil
}

func (st *sqlStore) GetPollsByUser(userID int64) ([]*poll, error) {
	polls := make([]*poll, 0)
	rows, err := st.db.Query("SELECT "+pollColumns+" FROM poll WHERE UserID = ? ORDER BY ID DESC LIMIT ?", userID, maxPollsInlineQuery)
	if err != nil {
		return polls, fmt.Errorf("could not query polls for userID #%d: %v", userID, err)
	}
	defer close(rows)

	for rows.Next() {
		p := &poll{}
		if err := rows.Scan(&p.ID, &p.UserID, &p.TemplateID, &p.Question, &p.Description, &p.Inactive, &p.Type); err != nil {
			return polls, fmt.Errorf("could not scan poll for userID #%d: %v", userID, err)
		}
		polls = append(polls, p)
	}
	if err := rows.Err(); err != nil {
		return polls, fmt.Errorf("could not read polls for userID #%d: %v", userID, err)
	}

	for _, p := range polls {
		if err := st.loadPollChildren(p); err != nil {
			return polls, err
		}
	}
	return polls, nil
}

func (st *sqlStore) GetAllPollInlineMsg(pollID int) ([]pollident, error) {
	msgs := make([]pollident, 0)
	rows, err := st.db.Query("SELECT InlineMessageID FROM pollinlinemsg WHERE PollID = ?", pollID)
	if err != nil {
		return msgs, fmt.Errorf("could not query pollinlinemsg: %v", err)
	}
	defer close(rows)
	msg := pollident{PollID: pollID}
	for rows.Next() {
		err = rows.Scan(&msg.InlineMessageID)
		if err != nil {
			return msgs, fmt.Errorf("could not scan pollID: %v", err)
		}
		msgs = append(msgs, msg)
	}
	return msgs, nil
}

func (st *sqlStore) AddInlineMsgToPoll(pollID int, inlinemessageid string) error {
	// InlineMessageId is the primary key
	err := st.db.Exec("INSERT OR REPLACE INTO pollinlinemsg(PollID, InlineMessageID) values(?, ?)", pollID, inlinemessageid)
	if err != nil {
		return fmt.Errorf("could not add message to poll: %v", err)
	}
	return nil
}

func (st *sqlStore) GetOptions(pollID int) ([]option, error) {
	options := make([]option, 0)
	rows, err := st.db.Query("SELECT PollID, ID, Text FROM option WHERE PollID = ? ORDER BY ID", pollID)
	if err != nil {
		return options, fmt.Errorf("could not query options: %v", err)
	}
	defer close(rows)
	var o option
	for rows.Next() {
		err = rows.Scan(&o.PollID, &o.ID, &o.Text)
		if err != nil {
			return options, fmt.Errorf("could not scan option: %v", err)
		}
		options = append(options, o)
	}
	return options, nil
}

func (st *sqlStore) GetAnswers(pollID int) ([]answer, error) {
	answers := make([]answer, 0)
	rows, err := st.db.Query("SELECT ID, PollID, OptionID, UserID, LastSaved FROM answer WHERE PollID = ?", pollID)
	if err != nil {
		return answers, fmt.Errorf("could not query answers: %v", err)
	}
	defer close(rows)
	var a answer
	for rows.Next() {
		err = rows.Scan(&a.ID, &a.PollID, &a.OptionID, &a.UserID, &a.LastSaved)
		if err != nil {
			return answers, fmt.Errorf("could not scan answer: %v", err)
		}
		answers = append(answers, a)
	}
	return answers, nil
}

func (st *sqlStore) SaveAnswer(p *poll, a answer) (unvoted bool, err error) {
	if a.UserID == 0 {
		return false, fmt.Errorf("invalid user ID 0 for poll #%d", a.PollID)
	}

	err = st.withTx(func(tx *sql.Tx) error {
		// find previous votes in this poll
		rows, err := tx.Query("SELECT OptionID FROM answer WHERE PollID = ? AND UserID = ?", a.PollID, a.UserID)
		if err != nil {
			return fmt.Errorf("could not query option rows: %v", err)
		}
		var optionid int
		prevOpts := make([]int, 0) // len should be 0 or 1 for single choice
		for rows.Next() {
			if err := rows.Scan(&optionid); err != nil {
				close(rows)
				return fmt.Errorf("could not scan optionid: %v", err)
			}
			prevOpts = append(prevOpts, optionid)
		}
		close(rows)

		// user clicked the same answer again, so remove vote
		if containsInt(prevOpts, a.OptionID) {
			if _, err := tx.Exec("DELETE FROM answer WHERE PollID = ? AND UserID = ? AND OptionID = ?", a.PollID, a.UserID, a.OptionID); err != nil {
				return fmt.Errorf("could not delete previous answer: %v", err)
			}
			unvoted = true
			return nil
		}

		if len(prevOpts) > 0 && p.isSingleChoice() {
			// remove previous answers
			if _, err := tx.Exec("DELETE FROM answer WHERE UserID = ? AND PollID = ?", a.UserID, a.PollID); err != nil {
				return fmt.Errorf("could not update vote: %v", err)
			}
		}
		return addNewVote(tx, a)
	})
	return unvoted, err
}

func addNewVote(tx *sql.Tx, a answer) error {
	now := getTimeStamp()
	_, err := tx.Exec("INSERT INTO answer(PollID, OptionID, UserID, LastSaved, CreatedAt) values(?, ?, ?, ?, ?)",
		a.PollID, a.OptionID, a.UserID, now, now)
	if err != nil {
		return fmt.Errorf("could not insert answer: %v", err)
	}
	return nil
}

func (st *sqlStore) SaveOptions(options []option) error {
	for i := range options {
		if options[i].ID == 0 {
			// Adding a new option
			id64, err := st.db.GetGkey()
			if err != nil {
				return fmt.Errorf("could not get gkey for option: %v", err)
			}
			options[i].ID = int(id64)
		}
	}

	return st.withTx(func(tx *sql.Tx) error {
		stmt, err := tx.Prepare("INSERT OR REPLACE INTO option(ID, PollID, Text) values(?, ?, ?)")
		if err != nil {
			return fmt.Errorf("could not prepare insert sql statement for options: %v", err)
		}
		defer close(stmt)

		for _, o := range options {
			if _, err := stmt.Exec(o.ID, o.PollID, o.Text); err != nil {
				return fmt.Errorf("could not insert or update option into sql database: %v", err)
			}
		}
		return nil
	})
}

func (st *sqlStore) SavePoll(p *poll) (id int, err error) {
	if p.UserID == 0 {
		return id, fmt.Errorf("invalid user ID 0 for poll #%d", p.ID)
	}

	now := getTimeStamp()
	if p.ID != 0 {
		err = st.db.Exec("UPDATE poll SET Question = ?, Description = ?, Inactive = ?, Type = ?, LastSaved = ? WHERE ID = ? AND UserID = ?",
			p.Question, p.Description, p.Inactive, p.Type, now, p.ID, p.UserID)
		if err != nil {
			return p.ID, fmt.Errorf("could not update poll #%d: %v", p.ID, err)
		}
		return p.ID, nil
	}

	id64, err := st.db.GetGkey()
	if err != nil {
		return id, fmt.Errorf("could not get poll gkey id: %v", err)
	}
	id = int(id64)

	err = st.db.Exec("INSERT INTO poll(ID, UserID, TemplateID, Question, Description, Inactive, Type, LastSaved, CreatedAt) values(?, ?, ?, ?, ?, ?, ?, ?, ?)",
		id, p.UserID, p.TemplateID, p.Question, p.Description, p.Inactive, p.Type, now, now)
	if err != nil {
		return id, fmt.Errorf("could not execute sql insert statement: %v", err)
	}
	return id, nil
}

// ownsPoll ensures this user owns the poll.
func (st *sqlStore) ownsPoll(userID int64, pollID int) error {
	var id int
	row := st.db.QueryRow("SELECT ID FROM poll WHERE UserID = ? AND ID = ?", userID, pollID)
	if err := row.Scan(&id); err != nil {
		return fmt.Errorf("could not scan poll #%d of user %d: %v", pollID, userID, err)
	}
	return nil
}

func (st *sqlStore) ResetPoll(userID int64, pollID int) error {
	if err := st.ownsPoll(userID, pollID); err != nil {
		return err
	}
	return st.withTx(func(tx *sql.Tx) error {
		if _, err := tx.Exec("DELETE FROM answer WHERE PollID = ?", pollID); err != nil {
			return fmt.Errorf("could not delete poll answers: %v", err)
		}
		return nil
	})
}

func (st *sqlStore) DeletePoll(userID int64, pollID int) error {
	if err := st.ownsPoll(userID, pollID); err != nil {
		return err
	}
	return st.withTx(func(tx *sql.Tx) error {
		for _, q := range []struct{ what, query string }{
			{"answers", "DELETE FROM answer WHERE PollID = ?"},
			{"options", "DELETE FROM option WHERE PollID = ?"},
			{"inline messages", "DELETE FROM pollinlinemsg WHERE PollID = ?"},
			{"poll", "DELETE FROM poll WHERE ID = ?"},
		} {
			if _, err := tx.Exec(q.query, pollID); err != nil {
				return fmt.Errorf("could not delete poll %s: %v", q.what, err)
			}
		}
		return nil
	})
}
