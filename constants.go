package main

// Command list
const (
	qryDummy           = "dummy"
	qryCreateTemplate  = "createTemplate"
	qryListTemplates   = "listTemplates"
	qrySkipDescription = "skipDescription"
	qryTemplateDone    = "templateDone"
)

// Query payload prefixes. Payloads look like "t:<templateID>:<op>" and
// "p:<pollID>:<op>"; votes are "<pollID>:<optionID>".
const (
	qryTemplatePayload = 't'
	qryPollPayload     = 'p'
)

// Template query sub-operators
const (
	qryGeneratePoll       = "g"
	qryTitleDetails       = "ti"
	qryDescriptionDetails = "de"
	qryToggleResponse     = "r"
	qryEditTitle          = "et"
	qryEditDescription    = "ed"
	qryDeleteTemplate     = "d"
	qryBackToTemplate     = "b"
)

// Poll query sub-operators
const (
	qryToggleActive = "c"
	qryResetPoll    = "r"
	qryDeletePoll   = "d"
)

// Dialog states. Do not change the order of these constants.
// Their values are persisted to the database, and changing them could
// break the application.
const (
	ohHi = iota
	waitingForName
	waitingForTitleFormat
	waitingForDescriptionFormat
	waitingForOption
	templateDone
	waitingForFormatInputs
	editTitleFormat
	editDescriptionFormat
)

const (
	open = iota
	inactive
)

const (
	standard = iota
	multipleChoice
)

const (
	maxNumberOfUsersListed = 100
	maxPollsInlineQuery    = 5
	maxTemplatesListed     = 20
	lineSep                = "╼━━━━━━━━━━━━━━━━╾"
)
