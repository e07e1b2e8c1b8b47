package chatstream

// ErrorText replaces the content of a message whose stream ended without
// the terminal marker.
const ErrorText = "Error: failed to get response"

// Message is the client-side view of one assistant reply.
type Message struct {
	Role        string
	RawText     string
	DisplayText string
	Blocks      []Block
	Streaming   bool
	Failed      bool
	// Err holds the transport or upstream error behind a failed message.
	Err error
}

func newAssistantMessage() Message {
	return Message{Role: "assistant", Streaming: true}
}

func (m *Message) appendDelta(text string) {
	m.RawText += text
	m.DisplayText, m.Blocks = Extract(m.RawText)
}

func (m *Message) fail(err error) {
	m.Streaming = false
	m.Failed = true
	m.Err = err
	m.DisplayText = ErrorText
	m.Blocks = nil
}

func (m Message) clone() Message {
	if m.Blocks != nil {
		m.Blocks = append([]Block(nil), m.Blocks...)
	}
	return m
}
