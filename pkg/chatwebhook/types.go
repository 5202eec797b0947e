package chatwebhook

import (
	"net/http"
	"time"

	"visitor-alert-srv/pkg/log"
)

// Config holds chat webhook client configuration.
type Config struct {
	Timeout time.Duration
}

type chatImpl struct {
	l      log.Logger
	config Config
	client *http.Client
}

// TextObject is one text element inside a block.
type TextObject struct {
	Type  string `json:"type"` // "plain_text" or "mrkdwn"
	Text  string `json:"text"`
	Emoji bool   `json:"emoji,omitempty"`
}

// ButtonElement is a link button inside an actions block.
type ButtonElement struct {
	Type string      `json:"type"` // "button"
	Text *TextObject `json:"text"`
	URL  string      `json:"url"`
}

// Block is one unit of the block-structured payload.
type Block struct {
	Type     string          `json:"type"` // "header", "section", "actions"
	Text     *TextObject     `json:"text,omitempty"`
	Fields   []TextObject    `json:"fields,omitempty"`
	Elements []ButtonElement `json:"elements,omitempty"`
}

// Payload is the JSON body posted to the webhook URL.
type Payload struct {
	Blocks []Block `json:"blocks"`
}

// Field is one labelled value rendered into the fields block.
type Field struct {
	Label string
	Value string
}

// Message is the channel-agnostic input the client renders into blocks.
type Message struct {
	Title      string
	Text       string
	Fields     []Field
	ActionText string
	ActionURL  string
}
