package constant

const (
	ChatMessageRoleUser      = "user"
	ChatMessageRoleAssistant = "assistant"
	ChatMessageRoleSystem    = "system"

	ChatResponseModeQuick    = "quick"
	ChatResponseModeDetailed = "detailed"
)

// Watermill topic carrying chat usage records.
const ChatUsageTopic = "chat.usage"

// Chat outcomes reported in usage events.
const (
	ChatOutcomeCompleted    = "completed"
	ChatOutcomeClientGone   = "client_gone"
	ChatOutcomeUpstreamFail = "upstream_failed"
	ChatOutcomeOpenFail     = "open_failed"
)

const (
	ErrMsgUnauthorized    = "Unauthorized"
	ErrMsgInvalidBody     = "Invalid request body"
	ErrMsgUpstreamFailure = "Failed to get response from the language model"
)
