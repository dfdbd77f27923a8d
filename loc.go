package main

const (
	locStartCommand          = "/start"
	locAboutCommand          = "/about"
	locNewTemplateCommand    = "/newtemp"
	locTemplatesCommand      = "/temps"
	locTemplateCommandPrefix = "/temp_"
	locAboutMessage          = "I turn templates into polls.\nYou can find me on github:\nhttps://github.com/semog/templatebot"
	locMainMenu              = "I can help you create poll templates and generate polls from them.\n\nWhat do you want to do?"
	locCreateTemplateButton  = "create template"
	locListTemplatesButton   = "my templates"
	locNewTemplate           = "Great! Send a name for the new template, please.\n<i>Anything after the first line becomes its description.</i>"
	locAskTitleFormat        = "Now send the poll title format.\n\n" + locFormatHelp
	locAskDescriptionFormat  = "Send the poll description format, or skip it."
	locAskOptions            = "Send the poll options, one per line. You can send several messages. Push 'done' when finished."
	locFormatHelp            = "<b>Format codes</b>\n" +
		"<code>%st</code> text, <code>%dg</code> number, <code>%dt</code> date\n" +
		"Add <code>#label</code> to name a code and <code>$(default)$</code> to give it a default.\n" +
		"<i>E.g. Training on %dt#day$(+3 %A %d/%m)$ at %st#venue$(the hall)$</i>"
	locFormatInputsHelp = "Send the values for the format codes, one per line.\n" +
		"<code>.</code> keeps a default, <code>label = value</code> fills a label, " +
		"<code>$( ... )$</code> spans several lines and a line with <code>..</code> " +
		"separates title values from description values."
	locFormatRetry           = "Please send the format again."
	locFormatInputsRetry     = "Please send the values again."
	locSkipDescriptionButton = "skip"
	locTemplateDoneButton    = "done"
	locGeneratePollButton    = "generate poll"
	locTitleDetailsButton    = "title format"
	locDescriptionDetailsBtn = "description format"
	locEditTitleButton       = "change title format"
	locEditDescriptionButton = "change description format"
	locToSingleResponse      = "set single response"
	locToMultiResponse       = "set multi-response"
	locDeleteTemplateButton  = "delete template"
	locBackButton            = "back"
	locEditTitleFormat       = "Okay, send the new title format, please."
	locEditDescriptionFormat = "Okay, send the new description format, please."
	locTemplateSaved         = "Template saved."
	locTemplateDeleted       = "Template \"%s\" deleted."
	locTemplateNotFound      = "Sorry, I could not find that template."
	locNoTemplates           = "You have no templates yet."
	locTemplateList          = "<b>Your templates</b>\n\n"
	locNoOptions             = "A template needs at least one option."
	locPollGenerated         = "Here is your poll. Share it into a chat:"
	locSharePoll             = "share poll"
	locInlineInsertPoll      = "insert poll into chat"
	locToggleInactive        = "open poll"
	locToggleOpen            = "close poll"
	locResetPollButton       = "reset votes"
	locDeletePollButton      = "delete poll"
	locPollIsInactive        = "This poll is inactive."
	locYouSelected           = "You selected \"%s\"."
	locSelectionRemoved      = "Your selection was removed."
	locResetPollMessage      = "All votes were removed."
	locClosePollBeforeDelete = "Close the poll before deleting it."
	locPollDeletedMessage    = "Poll \"%s\" deleted."
	locNotTemplateOwner      = "Only the creator can change this template."
	locErrUpdatingPoll       = "Sorry, something went wrong."
	locInvalidUserMessage    = "Sorry, I could not tell who you are."
)

/*
Following is the command menu for constructing the bot with @BotFather.
Use the /setcommands command and reply with the following list of commands.
---------------------
start - Start the bot.
newtemp - Create a poll template.
temps - List your templates.
about - About this bot.
*/
