package dto

import "time"

// ChatHistoryMessage is passed through as given. Turns whose role is not
// user, assistant or model are dropped when the prompt is built.
type ChatHistoryMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ContextDocumentRequest accepts both the web client's field names
// (type, name) and the newer ones (kind, displayName).
type ContextDocumentRequest struct {
	Id          string `json:"id" validate:"notblank"`
	Kind        string `json:"kind"`
	Type        string `json:"type"`
	DisplayName string `json:"displayName"`
	Name        string `json:"name"`
}

func (d ContextDocumentRequest) ResolvedKind() string {
	if d.Kind != "" {
		return d.Kind
	}
	return d.Type
}

func (d ContextDocumentRequest) ResolvedName() string {
	if d.DisplayName != "" {
		return d.DisplayName
	}
	return d.Name
}

type SendChatRequest struct {
	Message         string                  `json:"message" validate:"required"`
	Stream          bool                    `json:"stream"`
	ResponseMode    string                  `json:"responseMode" validate:"omitempty,oneof=quick detailed"`
	ResponseType    string                  `json:"responseType" validate:"omitempty,oneof=quick detailed"`
	ContextDocument *ContextDocumentRequest `json:"contextDocument"`
	History         []ChatHistoryMessage    `json:"history"`
}

// Mode prefers responseMode and falls back to the legacy responseType.
func (r SendChatRequest) Mode() string {
	if r.ResponseMode != "" {
		return r.ResponseMode
	}
	return r.ResponseType
}

type SendChatResponse struct {
	Success  bool   `json:"success"`
	Response string `json:"response,omitempty"`
	Message  string `json:"message,omitempty"`
}

// ChatUsageMessage is published on the internal bus after every chat request.
// It never carries message content.
type ChatUsageMessage struct {
	UserId     string        `json:"user_id"`
	Mode       string        `json:"mode"`
	Model      string        `json:"model"`
	Scope      string        `json:"scope"`
	Streamed   bool          `json:"streamed"`
	Bytes      int64         `json:"bytes"`
	Outcome    string        `json:"outcome"`
	Duration   time.Duration `json:"duration"`
	OccurredAt time.Time     `json:"occurred_at"`
}
