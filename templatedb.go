package main

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/semog/templatebot/formatcode"
)

const templateColumns = "ID, UserID, Name, Description, TitleFormat, DescriptionFormat, Options, SingleResponse, CreatedAt"

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTemplate(row rowScanner) (*pollTemplate, error) {
	t := &pollTemplate{}
	var title, description, options string
	if err := row.Scan(&t.ID, &t.UserID, &t.Name, &t.Description, &title, &description, &options, &t.SingleResponse, &t.CreatedAt); err != nil {
		return nil, err
	}
	t.TitleFormat = &formatcode.Spec{}
	if err := json.Unmarshal([]byte(title), t.TitleFormat); err != nil {
		return nil, fmt.Errorf("could not decode title format of template #%d: %v", t.ID, err)
	}
	t.DescriptionFormat = &formatcode.Spec{}
	if err := json.Unmarshal([]byte(description), t.DescriptionFormat); err != nil {
		return nil, fmt.Errorf("could not decode description format of template #%d: %v", t.ID, err)
	}
	if err := json.Unmarshal([]byte(options), &t.Options); err != nil {
		return nil, fmt.Errorf("could not decode options of template #%d: %v", t.ID, err)
	}
	return t, nil
}

func (st *sqlStore) GetTemplate(templateID int) (*pollTemplate, error) {
	return st.GetUserTemplate(templateID, 0)
}

func (st *sqlStore) GetUserTemplate(templateID int, userID int64) (*pollTemplate, error) {
	var row *sql.Row
	if userID > 0 {
		row = st.db.QueryRow("SELECT "+templateColumns+" FROM template WHERE ID = ? AND UserID = ?", templateID, userID)
	} else {
		row = st.db.QueryRow("SELECT "+templateColumns+" FROM template WHERE ID = ?", templateID)
	}
	t, err := scanTemplate(row)
	if err != nil {
		return nil, fmt.Errorf("could not scan template #%d: %v", templateID, err)
	}
	return t, nil
}

func (st *sqlStore) GetTemplatesByUser(userID int64) ([]*pollTemplate, error) {
	templates := make([]*pollTemplate, 0)
	rows, err := st.db.Query("SELECT "+templateColumns+" FROM template WHERE UserID = ? ORDER BY ID DESC LIMIT ?", userID, maxTemplatesListed)
	if err != nil {
		return templates, fmt.Errorf("could not query templates for userID #%d: %v", userID, err)
	}
	defer close(rows)

	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return templates, fmt.Errorf("could not scan template for userID #%d: %v", userID, err)
		}
		templates = append(templates, t)
	}
	return templates, rows.Err()
}

func encodeTemplate(t *pollTemplate) (title, description, options []byte, err error) {
	if title, err = json.Marshal(t.TitleFormat); err != nil {
		return nil, nil, nil, fmt.Errorf("could not encode title format: %v", err)
	}
	if description, err = json.Marshal(t.DescriptionFormat); err != nil {
		return nil, nil, nil, fmt.Errorf("could not encode description format: %v", err)
	}
	if t.Options == nil {
		options = []byte("[]")
	} else if options, err = json.Marshal(t.Options); err != nil {
		return nil, nil, nil, fmt.Errorf("could not encode options: %v", err)
	}
	return title, description, options, nil
}

func (st *sqlStore) SaveTemplate(t *pollTemplate) (id int, err error) {
	if t.UserID == 0 {
		return id, fmt.Errorf("invalid user ID 0 for template #%d", t.ID)
	}
	title, description, options, err := encodeTemplate(t)
	if err != nil {
		return id, err
	}

	now := getTimeStamp()
	if t.ID != 0 {
		err = st.db.Exec(`UPDATE template SET Name = ?, Description = ?, TitleFormat = ?, DescriptionFormat = ?,
			Options = ?, SingleResponse = ?, LastSaved = ? WHERE ID = ? AND UserID = ?`,
			t.Name, t.Description, string(title), string(description), string(options), t.SingleResponse, now, t.ID, t.UserID)
		if err != nil {
			return t.ID, fmt.Errorf("could not update template #%d: %v", t.ID, err)
		}
		return t.ID, nil
	}

	id64, err := st.db.GetGkey()
	if err != nil {
		return id, fmt.Errorf("could not get template gkey id: %v", err)
	}
	id = int(id64)

	err = st.db.Exec(`INSERT INTO template(ID, UserID, Name, Description, TitleFormat, DescriptionFormat,
		Options, SingleResponse, LastSaved, CreatedAt) values(?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, t.UserID, t.Name, t.Description, string(title), string(description), string(options), t.SingleResponse, now, now)
	if err != nil {
		return id, fmt.Errorf("could not execute sql insert statement: %v", err)
	}
	t.ID = id
	t.CreatedAt = now
	return id, nil
}

func (st *sqlStore) DeleteTemplate(userID int64, templateID int) error {
	if _, err := st.GetUserTemplate(templateID, userID); err != nil {
		return err
	}
	return st.withTx(func(tx *sql.Tx) error {
		if _, err := tx.Exec("DELETE FROM dialog WHERE TemplateID = ?", templateID); err != nil {
			return fmt.Errorf("could not delete template dialog: %v", err)
		}
		if _, err := tx.Exec("DELETE FROM template WHERE ID = ?", templateID); err != nil {
			return fmt.Errorf("could not delete template: %v", err)
		}
		return nil
	})
}
