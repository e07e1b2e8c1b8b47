package chatstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// DocumentRef selects a single document as the answer's only source.
type DocumentRef struct {
	ID          string `json:"id"`
	Kind        string `json:"kind"`
	DisplayName string `json:"displayName,omitempty"`
}

type HistoryMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request mirrors the body of POST /api/chatbot.
type Request struct {
	Message         string           `json:"message"`
	Stream          bool             `json:"stream"`
	ResponseMode    string           `json:"responseMode,omitempty"`
	ContextDocument *DocumentRef     `json:"contextDocument,omitempty"`
	History         []HistoryMessage `json:"history,omitempty"`
}

type completeResponse struct {
	Success  bool   `json:"success"`
	Response string `json:"response"`
	Message  string `json:"message"`
}

// Client talks to the chat endpoint. Exactly one of UserID (header auth)
// or Token (bearer auth) is normally set.
type Client struct {
	BaseURL    string
	UserID     string
	UserHeader string
	Token      string
	HTTP       *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		UserHeader: "X-User-Id",
		HTTP:       &http.Client{},
	}
}

// Stream sends req with stream=true and feeds the response through a Parser.
// The returned Message is final: either terminal or failed. The error is
// only non-nil when the request could not be built.
func (c *Client) Stream(ctx context.Context, req Request, onUpdate func(Message)) (Message, error) {
	req.Stream = true
	parser := NewParser(onUpdate)

	httpReq, err := c.newRequest(ctx, req)
	if err != nil {
		return Message{}, err
	}
	httpReq.Header.Set("Accept", "text/event-stream")

	resp, err := c.HTTP.Do(httpReq)
	if err != nil {
		return parser.Finish(err), nil
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return parser.Finish(responseError(resp)), nil
	}

	_, copyErr := io.Copy(parser, resp.Body)
	return parser.Finish(copyErr), nil
}

// Complete sends req with stream=false and returns the whole answer.
func (c *Client) Complete(ctx context.Context, req Request) (string, error) {
	req.Stream = false
	httpReq, err := c.newRequest(ctx, req)
	if err != nil {
		return "", err
	}

	resp, err := c.HTTP.Do(httpReq)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", responseError(resp)
	}

	var body completeResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if !body.Success {
		return "", fmt.Errorf("chat failed: %s", body.Message)
	}
	return body.Response, nil
}

func (c *Client) newRequest(ctx context.Context, req Request) (*http.Request, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/api/chatbot", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.Token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.Token)
	}
	if c.UserID != "" {
		httpReq.Header.Set(c.UserHeader, c.UserID)
	}
	return httpReq, nil
}

func responseError(resp *http.Response) error {
	var body completeResponse
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 16*1024))
	if err := json.Unmarshal(raw, &body); err == nil && body.Message != "" {
		return fmt.Errorf("status %d: %s", resp.StatusCode, body.Message)
	}
	return fmt.Errorf("status %d", resp.StatusCode)
}
