package main

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	tg "github.com/semog/go-bot-api/v4"
	"github.com/semog/templatebot/formatcode"
	"k8s.io/klog"
)

var templateCommandRe = regexp.MustCompile(`^` + locTemplateCommandPrefix + `(\d+)(?:@\w+)?$`)

func handleDialog(bot *tg.BotAPI, update tg.Update, st Store) error {
	userID, err := getUpdateUserID(update)
	if err != nil {
		return err
	}
	chatID := update.Message.Chat.ID
	text := strings.TrimSpace(update.Message.Text)

	switch {
	case strings.HasPrefix(text, locAboutCommand):
		_, err = sendHTMLMessage(bot, chatID, locAboutMessage, nil)
		return err
	case strings.HasPrefix(text, locStartCommand):
		if err := st.SaveState(userID, -1, ohHi); err != nil {
			return err
		}
		return sendMainMenuMessage(bot, chatID)
	case strings.HasPrefix(text, locNewTemplateCommand):
		return sendNewTemplateMessage(bot, userID, st)
	case text == locTemplatesCommand || strings.HasPrefix(text, locTemplatesCommand+"@"):
		if err := st.SaveState(userID, -1, ohHi); err != nil {
			return err
		}
		return sendTemplateList(bot, userID, st)
	}
	if m := templateCommandRe.FindStringSubmatch(text); m != nil {
		templateID, err := strconv.Atoi(m[1])
		if err != nil {
			return fmt.Errorf("could not parse template ID: %v", err)
		}
		return showTemplate(bot, chatID, userID, templateID, st)
	}

	state, templateID, err := st.GetState(userID)
	if err != nil {
		// could not retrieve state -> state is zero
		state = ohHi
		klog.Infof("could not get state from database: %v\n", err)
	}

	switch state {
	case waitingForName:
		return handleTemplateName(bot, chatID, userID, text, st)
	case waitingForTitleFormat, editTitleFormat:
		return handleFormat(bot, chatID, userID, templateID, state, update.Message.Text, st)
	case waitingForDescriptionFormat, editDescriptionFormat:
		return handleFormat(bot, chatID, userID, templateID, state, update.Message.Text, st)
	case waitingForOption:
		return handleOptions(bot, chatID, userID, templateID, text, st)
	case waitingForFormatInputs:
		return handleFormatInputs(bot, chatID, userID, templateID, update.Message.Text, st)
	}
	return sendMainMenuMessage(bot, chatID)
}

func showTemplate(bot *tg.BotAPI, chatID int64, userID int64, templateID int, st Store) error {
	t, err := st.GetTemplate(templateID)
	if err != nil {
		klog.Infof("could not get template #%d: %v", templateID, err)
		_, err = sendHTMLMessage(bot, chatID, locTemplateNotFound, nil)
		return err
	}
	if err := st.SaveState(userID, t.ID, templateDone); err != nil {
		return err
	}
	return sendTemplateMessage(bot, chatID, t, t.UserID == userID)
}

func handleTemplateName(bot *tg.BotAPI, chatID int64, userID int64, text string, st Store) error {
	name, description := text, ""
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		name, description = strings.TrimSpace(text[:i]), strings.TrimSpace(text[i+1:])
	}
	if name == "" {
		_, err := sendHTMLMessage(bot, chatID, locNewTemplate, nil)
		return err
	}

	t, err := newPollTemplate(userID, name, "", "", nil, true)
	if err != nil {
		return fmt.Errorf("could not create template: %v", err)
	}
	t.Description = description
	templateID, err := st.SaveTemplate(t)
	if err != nil {
		return fmt.Errorf("could not save template: %v", err)
	}
	if err := st.SaveState(userID, templateID, waitingForTitleFormat); err != nil {
		return fmt.Errorf("could not change state to waiting for title format: %v", err)
	}
	_, err = sendHTMLMessage(bot, chatID, locAskTitleFormat, nil)
	return err
}

func handleFormat(bot *tg.BotAPI, chatID int64, userID int64, templateID int, state int, text string, st Store) error {
	t, err := st.GetUserTemplate(templateID, userID)
	if err != nil {
		return fmt.Errorf("could not get template #%d: %v", templateID, err)
	}

	spec, err := formatcode.Parse(strings.TrimSpace(text))
	if err != nil {
		_, sendErr := sendHTMLMessage(bot, chatID, err.Error()+"\n\n"+locFormatRetry, nil)
		return sendErr
	}

	isTitle := state == waitingForTitleFormat || state == editTitleFormat
	if isTitle {
		t.TitleFormat = spec
	} else {
		t.DescriptionFormat = spec
	}
	if _, err := st.SaveTemplate(t); err != nil {
		return fmt.Errorf("could not save template: %v", err)
	}

	switch state {
	case waitingForTitleFormat:
		if err := st.SaveState(userID, templateID, waitingForDescriptionFormat); err != nil {
			return err
		}
		markup := tg.NewInlineKeyboardMarkup(tg.NewInlineKeyboardRow(
			tg.NewInlineKeyboardButtonData(locSkipDescriptionButton, qrySkipDescription)))
		_, err = sendHTMLMessage(bot, chatID, spec.Details()+"\n\n"+locAskDescriptionFormat, &markup)
		return err
	case waitingForDescriptionFormat:
		return askForOptions(bot, chatID, userID, t, st)
	}

	// Editing an existing template
	if err := st.SaveState(userID, templateID, templateDone); err != nil {
		return err
	}
	if _, err := sendHTMLMessage(bot, chatID, locTemplateSaved, nil); err != nil {
		return err
	}
	return sendTemplateMessage(bot, chatID, t, true)
}

func askForOptions(bot *tg.BotAPI, chatID int64, userID int64, t *pollTemplate, st Store) error {
	if err := st.SaveState(userID, t.ID, waitingForOption); err != nil {
		return fmt.Errorf("could not change state to waiting for options: %v", err)
	}
	_, err := sendHTMLMessage(bot, chatID, buildTemplateDraft(t), buildOptionsMarkup())
	return err
}

func buildOptionsMarkup() *tg.InlineKeyboardMarkup {
	markup := tg.NewInlineKeyboardMarkup(tg.NewInlineKeyboardRow(
		tg.NewInlineKeyboardButtonData(locTemplateDoneButton, qryTemplateDone)))
	return &markup
}

func handleOptions(bot *tg.BotAPI, chatID int64, userID int64, templateID int, text string, st Store) error {
	t, err := st.GetUserTemplate(templateID, userID)
	if err != nil {
		return fmt.Errorf("could not get template #%d: %v", templateID, err)
	}
	t.Options = append(t.Options, splitLines(text)...)
	if _, err := st.SaveTemplate(t); err != nil {
		return fmt.Errorf("could not save template options: %v", err)
	}
	_, err = sendHTMLMessage(bot, chatID, buildTemplateDraft(t), buildOptionsMarkup())
	return err
}

func handleFormatInputs(bot *tg.BotAPI, chatID int64, userID int64, templateID int, fills string, st Store) error {
	t, err := st.GetTemplate(templateID)
	if err != nil {
		klog.Infof("could not get template #%d: %v", templateID, err)
		if err := st.SaveState(userID, -1, ohHi); err != nil {
			return err
		}
		_, err = sendHTMLMessage(bot, chatID, locTemplateNotFound, nil)
		return err
	}

	p, err := t.generatePoll(clock, userID, fills)
	if err != nil {
		_, sendErr := sendHTMLMessage(bot, chatID, err.Error()+"\n\n"+locFormatInputsRetry, nil)
		return sendErr
	}

	p.ID, err = st.SavePoll(p)
	if err != nil {
		return fmt.Errorf("could not save poll: %v", err)
	}
	for i := range p.Options {
		p.Options[i].PollID = p.ID
	}
	if err := st.SaveOptions(p.Options); err != nil {
		return fmt.Errorf("could not save options: %v", err)
	}
	if err := st.SaveState(userID, -1, ohHi); err != nil {
		return err
	}

	if _, err := sendHTMLMessage(bot, chatID, locPollGenerated, nil); err != nil {
		return err
	}
	_, err = sendHTMLMessage(bot, chatID, buildPollListing(p, st), buildPollEditMarkup(p))
	return err
}
