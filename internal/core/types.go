package core

import "time"

const (
	AppName      = "Raider"
	AppUserAgent = "Raider-Assistant/0.2"
	AppVersion   = "0.2.0"
)

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Turn is one persisted user/assistant exchange within a subject.
// Seq is the position in the subject's history (1-based, storage assigned).
type Turn struct {
	Subject   string    `json:"subject" yaml:"subject"`
	UserText  string    `json:"user_text" yaml:"user_text"`
	BotText   string    `json:"bot_text" yaml:"bot_text"`
	Seq       int64     `json:"seq" yaml:"seq"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

// Message is a chat message sent to an inference backend.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Reply is the outcome of one dialogue request.
type Reply struct {
	Text string `json:"reply_text"`
	// Degraded is set when Text describes an inference failure instead of an answer.
	Degraded bool `json:"degraded"`
	// Persisted reports whether the turn reached the store.
	Persisted bool `json:"persisted"`
}

// Model describes a model offered by an inference backend.
type Model struct {
	ID            string
	Name          string
	ContextLength int
}
