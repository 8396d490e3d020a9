package errors

import (
	"sync"
	"time"
)

// Severity selects how a message is styled.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityInfo
	SeveritySuccess
)

// Message is a single user-facing message.
type Message struct {
	Text     string
	Severity Severity
	At       time.Time
}

// TUIHandler keeps the message for the status line. Only the latest message
// is kept; notify runs for each one on the caller's goroutine.
type TUIHandler struct {
	mu     sync.Mutex
	latest *Message
	notify func(Message)
	now    func() time.Time
}

// NewTUIHandler returns a handler calling notify for every message. notify
// may be nil.
func NewTUIHandler(notify func(Message)) *TUIHandler {
	return &TUIHandler{notify: notify, now: time.Now}
}

func (h *TUIHandler) Error(msg string)   { h.publish(msg, SeverityError) }
func (h *TUIHandler) Warning(msg string) { h.publish(msg, SeverityWarning) }
func (h *TUIHandler) Info(msg string)    { h.publish(msg, SeverityInfo) }
func (h *TUIHandler) Success(msg string) { h.publish(msg, SeveritySuccess) }

func (h *TUIHandler) publish(text string, severity Severity) {
	m := Message{Text: text, Severity: severity, At: h.now()}
	h.mu.Lock()
	h.latest = &m
	h.mu.Unlock()

	if h.notify != nil {
		h.notify(m)
	}
}

// Latest returns the last message since the last Clear.
func (h *TUIHandler) Latest() (Message, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.latest == nil {
		return Message{}, false
	}
	return *h.latest, true
}

// Clear drops the current message.
func (h *TUIHandler) Clear() {
	h.mu.Lock()
	h.latest = nil
	h.mu.Unlock()
}
