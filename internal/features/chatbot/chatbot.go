// Package chatbot is the fraud investigation assistant.
package chatbot

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/healthkathon/jkb/internal/i18n"
	"github.com/healthkathon/jkb/internal/mvi"
	"github.com/healthkathon/jkb/internal/service"
)

type Message struct {
	ID        string
	Content   string
	IsUser    bool
	Timestamp string
}

type State struct {
	Messages []Message
	IsTyping bool
	Error    string
}

type Intent interface{ chatbotIntent() }

// SendMessage posts the user's question and waits for the answer. Blank
// messages are ignored.
type SendMessage struct{ Text string }

type ClearChat struct{}

func (SendMessage) chatbotIntent() {}
func (ClearChat) chatbotIntent()   {}

type Deps struct {
	API     service.ChatbotAPI
	Catalog *i18n.Catalog
	Log     *zap.Logger
	// Now defaults to time.Now.
	Now func() time.Time
}

type Container = mvi.Container[State, struct{}]

func New(d Deps, buses mvi.Buses) *Container {
	if d.Log == nil {
		d.Log = zap.NewNop()
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	h := &handler{Deps: d}
	return mvi.New[State, struct{}]("chatbot", State{}, h.handle, func(st State, err error) State {
		st.IsTyping = false
		st.Error = d.Catalog.Err("generic_error", err)
		return st
	}, buses, mvi.WithLogger[State, struct{}](d.Log))
}

type handler struct {
	Deps
}

func (h *handler) handle(ctx context.Context, s *mvi.Scope[State, struct{}], intent any) error {
	switch ev := intent.(type) {
	case SendMessage:
		return h.send(ctx, s, ev.Text)
	case ClearChat:
		s.Reduce(func(st State) State {
			st.Messages = nil
			return st
		})
	}
	return nil
}

func (h *handler) send(ctx context.Context, s *mvi.Scope[State, struct{}], text string) error {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	s.Reduce(func(st State) State {
		st.Messages = appendMessage(st.Messages, h.message(text, true))
		st.IsTyping = true
		st.Error = ""
		return st
	})

	answer, err := h.API.Ask(ctx, text)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		h.Log.Warn("chatbot ask failed", zap.Error(err))
		answer = "⚠️ " + h.Catalog.T("chat_error")
	}
	s.Reduce(func(st State) State {
		st.Messages = appendMessage(st.Messages, h.message(answer, false))
		st.IsTyping = false
		return st
	})
	return nil
}

func (h *handler) message(content string, user bool) Message {
	return Message{
		ID:        uuid.NewString(),
		Content:   content,
		IsUser:    user,
		Timestamp: h.Now().Format("15:04"),
	}
}

// appendMessage copies so committed states never share a backing array.
func appendMessage(msgs []Message, m Message) []Message {
	out := make([]Message, len(msgs), len(msgs)+1)
	copy(out, msgs)
	return append(out, m)
}
