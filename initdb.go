package main

import (
	"github.com/semog/go-sqldb"
)

func (st *sqlStore) Init(databaseFile string) error {
	var err error
	st.db, err = sqldb.OpenAndPatchDb(databaseFile, dbPatchFuncs)
	return err
}

// The array of patch functions that will automatically upgrade the database.
var dbPatchFuncs = []sqldb.PatchFuncType{
	// Add new patch functions to this array to automatically upgrade the database.
	{PatchID: 1, PatchFunc: func(sdb *sqldb.SQLDb) error {
		if err := sdb.CreateTable(`poll(
			ID INTEGER PRIMARY KEY ASC,
			UserID INTEGER,
			TemplateID INTEGER,
			LastSaved INTEGER,
			CreatedAt INTEGER,
			Type INTEGER,
			Inactive INTEGER,
			Question TEXT,
			Description TEXT)`); err != nil {
			return err
		}
		if err := sdb.CreateIndex("poll_user_index ON poll(UserID)"); err != nil {
			return err
		}
		if err := sdb.CreateTable(`pollinlinemsg(
			InlineMessageID TEXT PRIMARY KEY,
			PollID INTEGER)`); err != nil {
			return err
		}
		if err := sdb.CreateTable(`answer(
			ID INTEGER PRIMARY KEY ASC,
			PollID INTEGER,
			OptionID INTEGER,
			LastSaved INTEGER,
			CreatedAt INTEGER,
			UserID INTEGER)`); err != nil {
			return err
		}
		if err := sdb.CreateIndex("answer_index ON answer(PollID)"); err != nil {
			return err
		}
		if err := sdb.CreateTable(`option(
			ID INTEGER PRIMARY KEY ASC,
			PollID INTEGER,
			Text TEXT)`); err != nil {
			return err
		}
		if err := sdb.CreateIndex("option_index ON option(PollID)"); err != nil {
			return err
		}
		return sdb.CreateTable(`user(
			ID INTEGER PRIMARY KEY,
			FirstName TEXT,
			LastName Text,
			LastSaved INTEGER,
			CreatedAt INTEGER,
			UserName TEXT)`)
	}},
	{PatchID: 2, PatchFunc: func(sdb *sqldb.SQLDb) error {
		// Table for tracking the bot update offset
		return sdb.CreateTable(`bot_updates(
			ID INTEGER PRIMARY KEY ASC,
			Offset INTEGER)`)
	}},
	{PatchID: 3, PatchFunc: func(sdb *sqldb.SQLDb) error {
		// Formats are stored as {"format_text": ..., "format_codes": {...}}
		// and options as a JSON array.
		if err := sdb.CreateTable(`template(
			ID INTEGER PRIMARY KEY ASC,
			UserID INTEGER,
			Name TEXT,
			Description TEXT,
			TitleFormat TEXT,
			DescriptionFormat TEXT,
			Options TEXT,
			SingleResponse INTEGER,
			LastSaved INTEGER,
			CreatedAt INTEGER)`); err != nil {
			return err
		}
		if err := sdb.CreateIndex("template_user_index ON template(UserID)"); err != nil {
			return err
		}
		return sdb.CreateTable(`dialog(
			UserID INTEGER PRIMARY KEY,
			TemplateID INTEGER,
			state INTEGER)`)
	}},
}
