// Package chat implements the demo chat widget: user messages are echoed
// and answered by a canned bot reply after a short delay.
package chat

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/evcraddock/sentiboard/internal/clock"
)

// ReplyDelay is how long the bot waits before answering.
const ReplyDelay = time.Second

// MaxHistory is the number of most recent messages a session keeps.
const MaxHistory = 50

// DemoReply is the only thing the bot ever says.
const DemoReply = "Chatbot functionality is configured separately and is currently for demonstration."

var (
	// ErrEmptyMessage is returned for blank user input.
	ErrEmptyMessage = errors.New("empty message")
	// ErrNotOpen is returned when the widget is hidden.
	ErrNotOpen = errors.New("chat widget is not open")
	// ErrClosed is returned after Shutdown.
	ErrClosed = errors.New("chat session closed")
)

// Sender identifies who wrote a message.
type Sender string

const (
	User Sender = "user"
	Bot  Sender = "bot"
)

// Message is one chat bubble.
type Message struct {
	ID     string    `json:"id"`
	Sender Sender    `json:"sender"`
	Text   string    `json:"text"`
	At     time.Time `json:"at"`
}

// Session is the chat state of one connection. send is called outside
// the session lock for every message, user echoes included, and must
// not block for long.
type Session struct {
	clock clock.Clock
	send  func(Message)

	mu       sync.Mutex
	open     bool
	shutdown bool
	pending  map[string]*clock.Timer
	history  []Message
}

// NewSession returns a hidden chat widget.
func NewSession(c clock.Clock, send func(Message)) *Session {
	return &Session{
		clock:   c,
		send:    send,
		pending: make(map[string]*clock.Timer),
	}
}

// Open shows the widget.
func (s *Session) Open() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.shutdown {
		s.open = true
	}
}

// IsOpen reports whether the widget is visible.
func (s *Session) IsOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.open
}

// Close hides the widget and cancels pending replies. It returns the
// number of replies cancelled.
func (s *Session) Close() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.open = false
	return s.cancelLocked()
}

// Shutdown cancels pending replies and rejects further input. It is
// called when the connection goes away.
func (s *Session) Shutdown() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.open = false
	s.shutdown = true
	s.cancelLocked()
}

func (s *Session) cancelLocked() int {
	n := 0
	for id, t := range s.pending {
		t.Stop()
		delete(s.pending, id)
		n++
	}
	return n
}

// Submit echoes a user message and schedules the bot reply.
func (s *Session) Submit(text string) (Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Message{}, ErrEmptyMessage
	}

	s.mu.Lock()
	switch {
	case s.shutdown:
		s.mu.Unlock()
		return Message{}, ErrClosed
	case !s.open:
		s.mu.Unlock()
		return Message{}, ErrNotOpen
	}

	msg := s.newMessageLocked(uuid.New().String(), User, text)
	replyID := uuid.New().String()
	s.pending[replyID] = s.clock.AfterFunc(ReplyDelay, func() { s.reply(replyID) })
	s.mu.Unlock()

	s.send(msg)
	return msg, nil
}

func (s *Session) reply(id string) {
	s.mu.Lock()
	if _, ok := s.pending[id]; !ok {
		// cancelled after the timer fired
		s.mu.Unlock()
		return
	}
	delete(s.pending, id)
	msg := s.newMessageLocked(id, Bot, DemoReply)
	s.mu.Unlock()

	s.send(msg)
}

func (s *Session) newMessageLocked(id string, from Sender, text string) Message {
	msg := Message{
		ID:     id,
		Sender: from,
		Text:   text,
		At:     s.clock.Now(),
	}
	if len(s.history) == MaxHistory {
		copy(s.history, s.history[1:])
		s.history = s.history[:MaxHistory-1]
	}
	s.history = append(s.history, msg)
	return msg
}

// Pending returns the number of scheduled replies.
func (s *Session) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// History returns the last MaxHistory messages, oldest first.
func (s *Session) History() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Message(nil), s.history...)
}
