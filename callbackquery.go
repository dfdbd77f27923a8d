package main

import (
	"fmt"
	"html"
	"strconv"
	"strings"

	tg "github.com/semog/go-bot-api/v4"
	"k8s.io/klog"
)

func handleCallbackQuery(bot *tg.BotAPI, update tg.Update, st Store) error {
	data := update.CallbackQuery.Data
	userID, err := getUpdateUserID(update)
	if err != nil {
		sendToastMessage(bot, update, locInvalidUserMessage)
		return err
	}

	switch data {
	case "":
		return fmt.Errorf("empty callback query")
	case qryDummy:
		return sendToastMessage(bot, update, "")
	case qryCreateTemplate:
		sendToastMessage(bot, update, "")
		return sendNewTemplateMessage(bot, userID, st)
	case qryListTemplates:
		sendToastMessage(bot, update, "")
		return sendTemplateList(bot, userID, st)
	case qrySkipDescription:
		return handleSkipDescription(bot, update, userID, st)
	case qryTemplateDone:
		return handleTemplateDone(bot, update, userID, st)
	}

	switch data[0] {
	case qryTemplatePayload:
		return handleTemplateQuery(bot, update, userID, st)
	case qryPollPayload:
		return handlePollEditQuery(bot, update, userID, st)
	}
	return handleVote(bot, update, userID, st)
}

func handleSkipDescription(bot *tg.BotAPI, update tg.Update, userID int64, st Store) error {
	state, templateID, err := st.GetState(userID)
	if err != nil || state != waitingForDescriptionFormat {
		sendToastMessage(bot, update, "")
		return fmt.Errorf("not waiting for a description format: %v", err)
	}
	t, err := st.GetUserTemplate(templateID, userID)
	if err != nil {
		sendToastMessage(bot, update, locTemplateNotFound)
		return fmt.Errorf("could not get template: %v", err)
	}
	sendToastMessage(bot, update, "")
	return askForOptions(bot, userID, userID, t, st)
}

func handleTemplateDone(bot *tg.BotAPI, update tg.Update, userID int64, st Store) error {
	state, templateID, err := st.GetState(userID)
	if err != nil || state != waitingForOption {
		sendToastMessage(bot, update, "")
		return fmt.Errorf("not waiting for template options: %v", err)
	}
	t, err := st.GetUserTemplate(templateID, userID)
	if err != nil {
		sendToastMessage(bot, update, locTemplateNotFound)
		return fmt.Errorf("could not get template: %v", err)
	}
	if len(t.Options) == 0 {
		return sendToastMessage(bot, update, locNoOptions)
	}
	if err := st.SaveState(userID, t.ID, templateDone); err != nil {
		return fmt.Errorf("could not change state to template done: %v", err)
	}
	sendToastMessage(bot, update, locTemplateSaved)
	return editHTMLMessage(bot, update, t.renderText(), buildTemplateMarkup(t, true))
}

// parseIDPayload splits "<prefix>:<id>:<op>".
func parseIDPayload(data string) (id int, op string, err error) {
	splits := strings.Split(data, ":")
	if len(splits) != 3 {
		return 0, "", fmt.Errorf("query wrongly formatted: %q", data)
	}
	id, err = strconv.Atoi(splits[1])
	if err != nil {
		return 0, "", fmt.Errorf("could not convert string payload to int: %v", err)
	}
	return id, splits[2], nil
}

func handleTemplateQuery(bot *tg.BotAPI, update tg.Update, userID int64, st Store) error {
	templateID, op, err := parseIDPayload(update.CallbackQuery.Data)
	if err != nil {
		sendToastMessage(bot, update, locErrUpdatingPoll)
		return err
	}
	t, err := st.GetTemplate(templateID)
	if err != nil {
		sendToastMessage(bot, update, locTemplateNotFound)
		return fmt.Errorf("could not get template: %v", err)
	}
	isCreator := t.UserID == userID
	// Templates are handled in the private chat, whose ID is the user's.
	chatID := userID

	switch op {
	case qryGeneratePoll:
		if err := st.SaveState(userID, t.ID, waitingForFormatInputs); err != nil {
			sendToastMessage(bot, update, locErrUpdatingPoll)
			return err
		}
		sendToastMessage(bot, update, "")
		text := fmt.Sprintf("<b>Title</b>\n%s\n\n<b>Description</b>\n%s\n\n%s",
			t.TitleFormat.Details(), t.DescriptionFormat.Details(), locFormatInputsHelp)
		_, err = sendHTMLMessage(bot, chatID, text, nil)
		return err
	case qryTitleDetails:
		sendToastMessage(bot, update, "")
		return editHTMLMessage(bot, update, "<b>Title</b>\n"+t.TitleFormat.Details(), buildFormatMarkup(t, qryEditTitle, isCreator))
	case qryDescriptionDetails:
		sendToastMessage(bot, update, "")
		return editHTMLMessage(bot, update, "<b>Description</b>\n"+t.DescriptionFormat.Details(), buildFormatMarkup(t, qryEditDescription, isCreator))
	case qryBackToTemplate:
		sendToastMessage(bot, update, "")
		return editHTMLMessage(bot, update, t.renderText(), buildTemplateMarkup(t, isCreator))
	}

	if !isCreator {
		return sendToastMessage(bot, update, locNotTemplateOwner)
	}

	switch op {
	case qryToggleResponse:
		t.SingleResponse = !t.SingleResponse
		if _, err := st.SaveTemplate(t); err != nil {
			sendToastMessage(bot, update, locErrUpdatingPoll)
			return fmt.Errorf("could not save toggled response type: %v", err)
		}
		sendToastMessage(bot, update, t.responseType())
		return editHTMLMessage(bot, update, t.renderText(), buildTemplateMarkup(t, true))
	case qryEditTitle, qryEditDescription:
		state, prompt := editTitleFormat, locEditTitleFormat
		if op == qryEditDescription {
			state, prompt = editDescriptionFormat, locEditDescriptionFormat
		}
		if err := st.SaveState(userID, t.ID, state); err != nil {
			sendToastMessage(bot, update, locErrUpdatingPoll)
			return err
		}
		sendToastMessage(bot, update, "")
		_, err = sendHTMLMessage(bot, chatID, prompt+"\n\n"+locFormatHelp, nil)
		return err
	case qryDeleteTemplate:
		if err := st.DeleteTemplate(userID, t.ID); err != nil {
			sendToastMessage(bot, update, locErrUpdatingPoll)
			return fmt.Errorf("could not delete template: %v", err)
		}
		sendToastMessage(bot, update, fmt.Sprintf(locTemplateDeleted, t.Name))
		if err := editHTMLMessage(bot, update, fmt.Sprintf(locTemplateDeleted, html.EscapeString(t.Name)), nil); err != nil {
			klog.Infof("%v", err)
		}
		return sendMainMenuMessage(bot, chatID)
	}
	return fmt.Errorf("query wrongly formatted: %q", update.CallbackQuery.Data)
}

func handlePollEditQuery(bot *tg.BotAPI, update tg.Update, userID int64, st Store) error {
	pollID, op, err := parseIDPayload(update.CallbackQuery.Data)
	if err != nil {
		sendToastMessage(bot, update, locErrUpdatingPoll)
		return err
	}
	p, err := st.GetUserPoll(pollID, userID)
	if err != nil {
		sendToastMessage(bot, update, locErrUpdatingPoll)
		return fmt.Errorf("could not get poll: %v", err)
	}

	switch op {
	case qryToggleActive:
		if p.Inactive == open {
			p.Inactive = inactive
		} else {
			p.Inactive = open
		}
		if _, err := st.SavePoll(p); err != nil {
			sendToastMessage(bot, update, locErrUpdatingPoll)
			return fmt.Errorf("could not save toggled inactive state: %v", err)
		}
		sendToastMessage(bot, update, "")
	case qryResetPoll:
		if err := st.ResetPoll(userID, pollID); err != nil {
			sendToastMessage(bot, update, locErrUpdatingPoll)
			return fmt.Errorf("could not reset poll: %v", err)
		}
		p.Answers = nil
		sendToastMessage(bot, update, locResetPollMessage)
	case qryDeletePoll:
		// The poll must be closed first
		if !p.isInactive() {
			return sendToastMessage(bot, update, locClosePollBeforeDelete)
		}
		msgs, err := st.GetAllPollInlineMsg(pollID)
		if err != nil {
			klog.Infof("could not get inline messages of poll #%d: %v", pollID, err)
		}
		if err := st.DeletePoll(userID, pollID); err != nil {
			sendToastMessage(bot, update, locErrUpdatingPoll)
			return fmt.Errorf("could not delete poll: %v", err)
		}
		deleted := fmt.Sprintf(locPollDeletedMessage, p.Question)
		sendToastMessage(bot, update, deleted)
		markDeletedPollMessages(bot, msgs, html.EscapeString(deleted))
		return editHTMLMessage(bot, update, html.EscapeString(deleted), nil)
	default:
		return fmt.Errorf("query wrongly formatted: %q", update.CallbackQuery.Data)
	}

	if err := editHTMLMessage(bot, update, buildPollListing(p, st), buildPollEditMarkup(p)); err != nil {
		klog.Infof("%v", err)
	}
	pollsToUpdate.enqueue(p.ID)
	return nil
}

func handleVote(bot *tg.BotAPI, update tg.Update, userID int64, st Store) error {
	pollID, optionid, err := parseQueryPayload(update)
	if err != nil {
		return fmt.Errorf("could not parse query payload: %v", err)
	}

	if update.CallbackQuery.InlineMessageID != "" {
		if err := st.AddInlineMsgToPoll(pollID, update.CallbackQuery.InlineMessageID); err != nil {
			return fmt.Errorf("could not add inline message to poll: %v", err)
		}
	}

	p, err := st.GetPoll(pollID)
	if err != nil {
		sendToastMessage(bot, update, locErrUpdatingPoll)
		return fmt.Errorf("could not get poll: %v", err)
	}
	if p.isInactive() {
		sendToastMessage(bot, update, locPollIsInactive)
		return fmt.Errorf("poll %d is inactive", pollID)
	}
	choice, err := findChoice(p, optionid)
	if err != nil {
		sendToastMessage(bot, update, locErrUpdatingPoll)
		return err
	}

	newAnswer := answer{
		UserID:   userID,
		PollID:   pollID,
		OptionID: optionid,
	}
	unvoted, err := st.SaveAnswer(p, newAnswer)
	if err != nil {
		sendToastMessage(bot, update, locErrUpdatingPoll)
		return fmt.Errorf("could not save answers: %v", err)
	}

	pollsToUpdate.enqueue(p.ID)

	popupText := fmt.Sprintf(locYouSelected, choice.Text)
	if unvoted {
		popupText = locSelectionRemoved
	}
	return sendToastMessage(bot, update, popupText)
}

func findChoice(p *poll, optionID int) (option, error) {
	for _, o := range p.Options {
		if o.ID == optionID {
			return o, nil
		}
	}
	return option{}, fmt.Errorf("could not find option %d in poll #%d", optionID, p.ID)
}

func updatePollMessages(bot *tg.BotAPI, pollID int, st Store) error {
	p, err := st.GetPoll(pollID)
	if err != nil {
		return fmt.Errorf("could not find poll #%d: %v", pollID, err)
	}

	var ed tg.EditMessageTextConfig
	ed.Text = buildPollListing(p, st)
	ed.ParseMode = tg.ModeHTML
	ed.DisableWebPagePreview = true
	if !p.isInactive() {
		ed.ReplyMarkup = buildPollMarkup(p)
	}

	msgs, err := st.GetAllPollInlineMsg(p.ID)
	if err != nil {
		return fmt.Errorf("could not get all poll inline messages: %v", err)
	}

	for _, msg := range msgs {
		ed.InlineMessageID = msg.InlineMessageID
		if _, err := bot.Send(ed); err != nil {
			klog.Infof("could not update inline message of poll #%d: %v", pollID, err)
		}
	}
	return nil
}

func markDeletedPollMessages(bot *tg.BotAPI, msgs []pollident, text string) {
	var ed tg.EditMessageTextConfig
	ed.Text = text
	ed.ParseMode = tg.ModeHTML
	for _, msg := range msgs {
		ed.InlineMessageID = msg.InlineMessageID
		if _, err := bot.Send(ed); err != nil {
			klog.Infof("could not mark inline message of poll #%d deleted: %v", msg.PollID, err)
		}
	}
}

func sendToastMessage(bot *tg.BotAPI, update tg.Update, msg string) error {
	callbackConfig := tg.NewCallback(update.CallbackQuery.ID, msg)
	_, err := bot.Request(callbackConfig)
	if err != nil {
		klog.Infof("could not send toast message: %v\n", err)
	}
	return nil
}

func parseQueryPayload(update tg.Update) (pollID int, optionid int, err error) {
	dataSplit := strings.Split(update.CallbackQuery.Data, ":")
	if len(dataSplit) != 2 {
		return pollID, optionid, fmt.Errorf("could not parse response")
	}
	pollID, err = strconv.Atoi(dataSplit[0])
	if err != nil {
		return pollID, optionid, fmt.Errorf("could not convert CallbackQuery data pollID to int: %v", err)
	}

	optionid, err = strconv.Atoi(dataSplit[1])
	if err != nil {
		return pollID, optionid, fmt.Errorf("could not convert CallbackQuery data OptionID to int: %v", err)
	}
	return pollID, optionid, nil
}
