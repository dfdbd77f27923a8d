package main

import (
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/kyokomi/emoji"
	tg "github.com/semog/go-bot-api/v4"
	cmn "github.com/semog/go-common"
	"k8s.io/klog"
)

func getUpdateUserID(update tg.Update) (int64, error) {
	if update.Message != nil && update.Message.From != nil {
		return update.Message.From.ID, nil
	}
	if update.CallbackQuery != nil && update.CallbackQuery.From != nil {
		return update.CallbackQuery.From.ID, nil
	}
	return 0, fmt.Errorf("invalid update info: no valid user ID found")
}

func sendHTMLMessage(bot *tg.BotAPI, chatID int64, text string, markup *tg.InlineKeyboardMarkup) (tg.Message, error) {
	msg := tg.NewMessage(chatID, text)
	msg.ParseMode = tg.ModeHTML
	msg.DisableWebPagePreview = true
	if markup != nil {
		msg.ReplyMarkup = markup
	}
	m, err := bot.Send(msg)
	if err != nil {
		return m, fmt.Errorf("could not send message: %v", err)
	}
	return m, nil
}

func editHTMLMessage(bot *tg.BotAPI, update tg.Update, text string, markup *tg.InlineKeyboardMarkup) error {
	if update.CallbackQuery.Message == nil {
		return fmt.Errorf("callback query has no message to edit")
	}
	var ed tg.EditMessageTextConfig
	ed.Text = text
	ed.ParseMode = tg.ModeHTML
	ed.DisableWebPagePreview = true
	ed.ReplyMarkup = markup
	ed.ChatID = update.CallbackQuery.Message.Chat.ID
	ed.MessageID = update.CallbackQuery.Message.MessageID
	if _, err := bot.Send(ed); err != nil {
		return fmt.Errorf("could not update message: %v", err)
	}
	return nil
}

func sendMainMenuMessage(bot *tg.BotAPI, chatID int64) error {
	markup := tg.NewInlineKeyboardMarkup(tg.NewInlineKeyboardRow(
		tg.NewInlineKeyboardButtonData(locCreateTemplateButton, qryCreateTemplate),
		tg.NewInlineKeyboardButtonData(locListTemplatesButton, qryListTemplates),
	))
	_, err := sendHTMLMessage(bot, chatID, locMainMenu, &markup)
	return err
}

func sendNewTemplateMessage(bot *tg.BotAPI, userID int64, st Store) error {
	if _, err := sendHTMLMessage(bot, userID, locNewTemplate, nil); err != nil {
		return err
	}
	if err := st.SaveState(userID, -1, waitingForName); err != nil {
		return fmt.Errorf("could not change state to waiting for template name: %v", err)
	}
	return nil
}

func sendTemplateList(bot *tg.BotAPI, userID int64, st Store) error {
	templates, err := st.GetTemplatesByUser(userID)
	if err != nil {
		return fmt.Errorf("could not get templates of user %d: %v", userID, err)
	}
	if len(templates) == 0 {
		markup := tg.NewInlineKeyboardMarkup(tg.NewInlineKeyboardRow(
			tg.NewInlineKeyboardButtonData(locCreateTemplateButton, qryCreateTemplate)))
		_, err = sendHTMLMessage(bot, userID, locNoTemplates, &markup)
		return err
	}
	_, err = sendHTMLMessage(bot, userID, buildTemplateListing(templates, time.Now()), nil)
	return err
}

func buildTemplateListing(templates []*pollTemplate, now time.Time) string {
	entries := make([]string, len(templates))
	for i, t := range templates {
		entries[i] = t.summaryLine(now)
	}
	return locTemplateList + strings.Join(entries, "\n\n")
}

func sendTemplateMessage(bot *tg.BotAPI, chatID int64, t *pollTemplate, isCreator bool) error {
	_, err := sendHTMLMessage(bot, chatID, t.renderText(), buildTemplateMarkup(t, isCreator))
	return err
}

func buildTemplateMarkup(t *pollTemplate, isCreator bool) *tg.InlineKeyboardMarkup {
	buttonrows := [][]tg.InlineKeyboardButton{
		{tg.NewInlineKeyboardButtonData(locGeneratePollButton, t.fmtQuery(qryGeneratePoll))},
		{
			tg.NewInlineKeyboardButtonData(locTitleDetailsButton, t.fmtQuery(qryTitleDetails)),
			tg.NewInlineKeyboardButtonData(locDescriptionDetailsBtn, t.fmtQuery(qryDescriptionDetails)),
		},
	}
	if isCreator {
		responseText := locToMultiResponse
		if !t.SingleResponse {
			responseText = locToSingleResponse
		}
		buttonrows = append(buttonrows,
			[]tg.InlineKeyboardButton{tg.NewInlineKeyboardButtonData(responseText, t.fmtQuery(qryToggleResponse))},
			[]tg.InlineKeyboardButton{tg.NewInlineKeyboardButtonData(locDeleteTemplateButton, t.fmtQuery(qryDeleteTemplate))},
		)
	}
	markup := tg.NewInlineKeyboardMarkup(buttonrows...)
	return &markup
}

// buildFormatMarkup is shown below the details of one of the template's
// formats.
func buildFormatMarkup(t *pollTemplate, editQuery string, isCreator bool) *tg.InlineKeyboardMarkup {
	row := make([]tg.InlineKeyboardButton, 0, 2)
	if isCreator {
		editText := locEditTitleButton
		if editQuery == qryEditDescription {
			editText = locEditDescriptionButton
		}
		row = append(row, tg.NewInlineKeyboardButtonData(editText, t.fmtQuery(editQuery)))
	}
	row = append(row, tg.NewInlineKeyboardButtonData(locBackButton, t.fmtQuery(qryBackToTemplate)))
	markup := tg.NewInlineKeyboardMarkup(row)
	return &markup
}

func buildTemplateDraft(t *pollTemplate) string {
	return fmt.Sprintf("%s\n\n%s", locAskOptions, t.renderText())
}

func buildPollMarkup(p *poll) *tg.InlineKeyboardMarkup {
	buttonrows := make([][]tg.InlineKeyboardButton, 0)
	row := -1

	for _, o := range p.Options {
		textWidth := 0
		if row != -1 {
			for _, b := range buttonrows[row] {
				textWidth += len(b.Text)
			}
		}
		textWidth += len(o.Text)
		if row == -1 || textWidth > 30 {
			row++
			buttonrows = append(buttonrows, make([]tg.InlineKeyboardButton, 0))
		}
		callback := fmt.Sprintf("%d:%d", p.ID, o.ID)
		button := tg.NewInlineKeyboardButtonData(o.Text, callback)
		buttonrows[row] = append(buttonrows[row], button)
	}
	markup := tg.NewInlineKeyboardMarkup(buttonrows...)
	return &markup
}

// userLookup is the part of Store needed to name voters.
type userLookup interface {
	GetUser(userID int64) (*tg.User, error)
}

func buildPollListing(p *poll, users userLookup) (listing string) {
	polledUsers := make(map[int64]struct{})
	listOfUsers := make([][]*tg.User, len(p.Options))
	for i, o := range p.Options {
		for _, a := range p.Answers {
			if a.OptionID != o.ID {
				continue
			}
			polledUsers[a.UserID] = struct{}{}
			u, err := users.GetUser(a.UserID)
			if err != nil {
				klog.Infof("could not get user: %v", err)
				u = &tg.User{ID: a.UserID}
			}
			listOfUsers[i] = append(listOfUsers[i], u)
		}
	}

	listing += emoji.Sprintf("<b>%s</b>", html.EscapeString(p.Question))
	if p.Description != "" {
		listing += "\n" + html.EscapeString(p.Description)
	}
	listing += "\n" + lineSep
	numPolledUsers := len(polledUsers)

	for i, o := range p.Options {
		usersOnAnswer := len(listOfUsers[i])
		listing += fmt.Sprintf("\n<b>%s</b>", html.EscapeString(o.Text))
		// Only list voters if there is at least one
		if usersOnAnswer < 1 {
			listing += "\n"
			continue
		}
		listing += emoji.Sprintf(" (%d :busts_in_silhouette:)", usersOnAnswer)

		maxNumberDisplayUsers := cmn.Mini(usersOnAnswer, maxNumberOfUsersListed)
		for j := 0; j+1 < maxNumberDisplayUsers; j++ {
			listing += "\n├ " + getFormattedUserLink(listOfUsers[i][j])
		}
		listing += "\n└ " + getFormattedUserLink(listOfUsers[i][maxNumberDisplayUsers-1])
		listing += "\n"
	}
	listing += emoji.Sprintf("\n%d :busts_in_silhouette:\n", numPolledUsers)
	return listing
}

func buildPollEditMarkup(p *poll) *tg.InlineKeyboardMarkup {
	buttonShare := tg.InlineKeyboardButton{
		Text:              locSharePoll,
		SwitchInlineQuery: &p.Question,
	}

	buttonInactiveText := locToggleOpen
	if p.isInactive() {
		buttonInactiveText = locToggleInactive
	}
	buttonInactive := tg.NewInlineKeyboardButtonData(buttonInactiveText, p.fmtQuery(qryToggleActive))
	buttonReset := tg.NewInlineKeyboardButtonData(locResetPollButton, p.fmtQuery(qryResetPoll))
	buttonDelete := tg.NewInlineKeyboardButtonData(locDeletePollButton, p.fmtQuery(qryDeletePoll))

	markup := tg.NewInlineKeyboardMarkup(
		[]tg.InlineKeyboardButton{buttonShare},
		[]tg.InlineKeyboardButton{buttonInactive, buttonReset},
		[]tg.InlineKeyboardButton{buttonDelete},
	)
	return &markup
}

func getFormattedUserLink(u *tg.User) string {
	return fmt.Sprintf("<a href=\"tg://user?id=%d\">%s</a>", u.ID, html.EscapeString(getDisplayUserName(u)))
}

func getDisplayUserName(u *tg.User) string {
	name := u.FirstName
	if len(u.LastName) > 0 {
		name += " " + u.LastName
	}
	if len(name) == 0 {
		name = u.UserName
	}
	return name
}
