package main

import (
	"fmt"
	"strconv"
	"strings"

	tg "github.com/semog/go-bot-api/v4"
)

func handleInlineQuery(bot *tg.BotAPI, update tg.Update, st Store) error {
	polls, err := st.GetPollsByUser(update.InlineQuery.From.ID)
	if err != nil {
		return fmt.Errorf("could not get polls for user: %v", err)
	}

	results := make([]interface{}, 0, len(polls))
	for _, p := range matchingPolls(polls, update.InlineQuery.Query) {
		article := tg.NewInlineQueryResultArticleHTML(strconv.Itoa(p.ID), p.Question, buildPollListing(p, st))
		if len(p.Options) > 0 && !p.isInactive() {
			article.ReplyMarkup = buildPollMarkup(p)
		}
		article.Description = locInlineInsertPoll
		if p.Description != "" {
			article.Description = p.Description
		}
		results = append(results, article)
	}
	inlineConfig := tg.InlineConfig{
		InlineQueryID:     update.InlineQuery.ID,
		Results:           results,
		IsPersonal:        true,
		CacheTime:         0,
		SwitchPMText:      locCreateTemplateButton,
		SwitchPMParameter: qryCreateTemplate,
	}

	_, err = bot.Request(inlineConfig)
	if err != nil {
		return fmt.Errorf("could not answer inline query: %v", err)
	}

	return nil
}

// matchingPolls keeps the polls whose question contains query, ignoring
// case. An empty query matches every poll.
func matchingPolls(polls []*poll, query string) []*poll {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return polls
	}
	matched := make([]*poll, 0, len(polls))
	for _, p := range polls {
		if strings.Contains(strings.ToLower(p.Question), query) {
			matched = append(matched, p)
		}
	}
	return matched
}
