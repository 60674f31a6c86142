// Package engine is the conversation state machine: it turns an inbound
// utterance into sentiment, intent, a scripted reply, and durable state
// transitions on the conversation record, coordinating the transcription,
// sentiment, and ticketing gateways.
package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"assistlink-go/internal/intent"
	"assistlink-go/internal/knowledge"
	"assistlink-go/internal/logger"
	"assistlink-go/internal/sentiment"
	"assistlink-go/internal/store"
	"assistlink-go/internal/types"
)

const (
	GreetingMessage = "Hello! I'm your Assist Link support agent. " +
		"How can I help you with your credit card today?"

	initialTitle = "New Support Session"
	genericTitle = "Support Session"

	// Fixed-width microsecond fraction: the store orders conversations by
	// raw string comparison of created_at, which is only chronological when
	// every timestamp carries the same number of fraction digits.
	timestampLayout = "2006-01-02T15:04:05.000000Z07:00"
)

// ErrNotFound mirrors the store sentinel so handlers depend on one package.
var ErrNotFound = store.ErrNotFound

// ErrEmptyTranscript aborts a voice turn before any state mutation.
var ErrEmptyTranscript = errors.New("could not transcribe audio")

// Transcriber converts audio to text; empty string means unintelligible.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte) string
}

// AudioAnalyzer infers sentiment from raw audio, failing open to neutral.
type AudioAnalyzer interface {
	AnalyzeAudio(ctx context.Context, audio []byte) types.SentimentResult
}

// Ticketer creates a tracking ticket and always yields a non-empty id.
type Ticketer interface {
	CreateTicket(ctx context.Context, title, description string, labels []string) string
}

type Engine struct {
	store       *store.Store
	transcriber Transcriber
	audio       AudioAnalyzer
	tickets     Ticketer
	now         func() time.Time
	log         *logrus.Entry
}

func New(st *store.Store, tr Transcriber, aa AudioAnalyzer, tk Ticketer) *Engine {
	return &Engine{
		store:       st,
		transcriber: tr,
		audio:       aa,
		tickets:     tk,
		now:         time.Now,
		log:         logger.New().WithComponent("engine"),
	}
}

// Start creates a conversation seeded with the assistant greeting.
func (e *Engine) Start() types.Conversation {
	t := e.now()
	ts := t.Format(timestampLayout)
	conv := types.Conversation{
		// Two starts within the same microsecond would collide and overwrite;
		// the id format is kept as-is for compatibility.
		ID:               fmt.Sprintf("conv-%s%06d", t.Format("20060102150405"), t.Nanosecond()/1000),
		Title:            initialTitle,
		Status:           types.StatusActive,
		Sentiment:        types.SentimentNeutral,
		TicketType:       types.TicketInformational,
		ResolutionStatus: types.ResolutionInProgress,
		Messages: []types.ConversationMessage{
			{Role: types.RoleAssistant, Content: GreetingMessage, Timestamp: ts},
		},
		CreatedAt: ts,
	}
	e.store.Put(conv)
	e.log.WithField("conversation_id", conv.ID).Info("conversation started")
	return conv
}

// ProcessMessage runs one text turn.
func (e *Engine) ProcessMessage(ctx context.Context, convID, message string) (types.TurnResponse, error) {
	sres := sentiment.AnalyzeText(message)
	return e.runTurn(ctx, convID, message, sres, "")
}

// ProcessVoice runs one voice turn. Transcription and audio sentiment are
// issued concurrently; the turn waits for both. An empty transcript aborts
// the turn with no state mutation. Neutral audio sentiment falls back to the
// text analyzer on the transcript, but only a negative text result wins;
// audio inference is trusted first.
func (e *Engine) ProcessVoice(ctx context.Context, convID string, audio []byte) (types.TurnResponse, error) {
	if _, ok := e.store.Get(convID); !ok {
		return types.TurnResponse{}, ErrNotFound
	}

	trCh := make(chan string, 1)
	go func() {
		trCh <- e.transcriber.Transcribe(ctx, audio)
	}()
	sres := e.audio.AnalyzeAudio(ctx, audio)
	transcript := <-trCh

	if transcript == "" {
		return types.TurnResponse{}, ErrEmptyTranscript
	}

	if sres.Sentiment == types.SentimentNeutral {
		if tres := sentiment.AnalyzeText(transcript); tres.Sentiment == types.SentimentNegative {
			sres = tres
		}
	}

	return e.runTurn(ctx, convID, transcript, sres, transcript)
}

// Close closes a conversation explicitly, opening a wrap-up ticket only if
// no turn ever attached one.
func (e *Engine) Close(ctx context.Context, convID string) (types.Conversation, error) {
	var needTicket bool
	var title, desc string
	conv, err := e.store.Update(convID, func(c *types.Conversation) error {
		c.Status = types.StatusClosed
		needTicket = c.TicketID == ""
		title = "Session: " + c.Title
		desc = fmt.Sprintf("Conversation closed.\nMessages: %d\nSentiment: %s\nResolution: %s",
			len(c.Messages), c.Sentiment, c.ResolutionStatus)
		return nil
	})
	if err != nil {
		return types.Conversation{}, err
	}
	if needTicket {
		ticketID := e.tickets.CreateTicket(ctx, title, desc, nil)
		conv, err = e.store.Update(convID, func(c *types.Conversation) error {
			c.TicketID = ticketID
			return nil
		})
		if err != nil {
			return types.Conversation{}, err
		}
	}
	return conv, nil
}

// Get returns one conversation.
func (e *Engine) Get(convID string) (types.Conversation, bool) {
	return e.store.Get(convID)
}

// List returns all conversations, most recently created first.
func (e *Engine) List() []types.Conversation {
	return e.store.List()
}

// runTurn applies the per-turn algorithm. The conversation mutation and
// reply composition happen in one store.Update critical section; the ticket
// call runs unlocked afterwards and the id is attached in a second Update.
func (e *Engine) runTurn(ctx context.Context, convID, message string, sres types.SentimentResult, transcript string) (types.TurnResponse, error) {
	queryType, topic := intent.Classify(message)
	topicLabel := intent.TopicLabel(topic)

	var reply, ticketTitle, ticketDesc string
	var labels []string

	conv, err := e.store.Update(convID, func(c *types.Conversation) error {
		c.Messages = append(c.Messages, types.ConversationMessage{
			Role:      types.RoleUser,
			Content:   message,
			Timestamp: e.timestamp(),
		})

		switch {
		case queryType == intent.QueryFarewell:
			reply = e.applyFarewell(c)
			ticketTitle = "Resolved: " + c.Title
			ticketDesc = fmt.Sprintf(
				"Session completed normally.\nMessages: %d\nSentiment: %s\nResolution: Customer ended conversation - AI Resolved",
				len(c.Messages), strings.ToUpper(sres.Sentiment))

		case sres.Sentiment == types.SentimentNegative:
			reply = e.applyEscalation(c, topic, topicLabel)
			ticketTitle = "ESCALATED: " + topicLabel
			ticketDesc = fmt.Sprintf(
				"Customer Query: %s\n\nSentiment: NEGATIVE - Dissatisfaction detected\nEscalation: YES - Human follow-up required within 30 minutes\nQuery Type: %s\nTopic: %s",
				message, strings.ToUpper(queryType), topicLabel)
			labels = []string{"urgent", "escalated"}

		default:
			reply = e.applyResolved(c, sres, queryType, topic, topicLabel)
			ticketTitle = fmt.Sprintf("%s: %s", intent.TopicLabel(queryType), topicLabel)
			ticketDesc = fmt.Sprintf(
				"Customer Query: %s\n\nSentiment: %s\nQuery Type: %s\nTopic: %s\nResolution: AI Resolved",
				message, strings.ToUpper(sres.Sentiment), strings.ToUpper(queryType), topicLabel)
		}
		return nil
	})
	if err != nil {
		return types.TurnResponse{}, err
	}

	ticketID := e.tickets.CreateTicket(ctx, ticketTitle, ticketDesc, labels)
	conv, err = e.store.Update(convID, func(c *types.Conversation) error {
		c.TicketID = ticketID
		return nil
	})
	if err != nil {
		return types.TurnResponse{}, err
	}

	e.log.WithFields(logrus.Fields{
		"conversation_id": convID,
		"query_type":      queryType,
		"topic":           topic,
		"sentiment":       sres.Sentiment,
		"ticket_id":       ticketID,
	}).Info("turn completed")

	return types.TurnResponse{
		Conversation: conv,
		Sentiment:    sres,
		Response:     reply,
		Transcript:   transcript,
	}, nil
}

func (e *Engine) applyFarewell(c *types.Conversation) string {
	c.Status = types.StatusClosed
	c.ResolutionStatus = types.ResolutionAIResolved
	if c.Title == initialTitle {
		c.Title = genericTitle
	}
	c.Summary = "Customer ended conversation. Query resolved by AI agent."
	c.Messages = append(c.Messages, types.ConversationMessage{
		Role:      types.RoleAssistant,
		Content:   knowledge.FarewellResponse,
		Timestamp: e.timestamp(),
	})
	return knowledge.FarewellResponse
}

// applyEscalation keeps status=escalated rather than closing: escalation
// means the conversation needs a human, not that it is done. Escalated is
// monotonic and never resets.
func (e *Engine) applyEscalation(c *types.Conversation, topic, topicLabel string) string {
	c.Sentiment = types.SentimentNegative
	c.Status = types.StatusEscalated
	c.Escalated = true
	c.TicketType = types.TicketComplaint
	c.ResolutionStatus = types.ResolutionHumanFollowup
	c.Title = topicLabel
	c.Summary = fmt.Sprintf("Customer reported %s and showed dissatisfaction. Escalated to human agent.",
		strings.ReplaceAll(topic, "_", " "))
	c.Messages = append(c.Messages, types.ConversationMessage{
		Role:      types.RoleAssistant,
		Content:   knowledge.EscalationResponse,
		Timestamp: e.timestamp(),
	})
	return knowledge.EscalationResponse
}

func (e *Engine) applyResolved(c *types.Conversation, sres types.SentimentResult, queryType, topic, topicLabel string) string {
	switch sres.Sentiment {
	case types.SentimentMixed:
		c.Sentiment = types.SentimentMixed
	case types.SentimentNeutral:
		// only reachable from audio analysis
		c.Sentiment = types.SentimentNeutral
	default:
		c.Sentiment = types.SentimentPositive
	}
	c.TicketType = queryType
	c.Title = topicLabel
	c.ResolutionStatus = types.ResolutionAIResolved
	c.Summary = fmt.Sprintf("User asked about %s. Query resolved by AI agent.",
		strings.ReplaceAll(topic, "_", " "))

	reply := knowledge.GetResponse(topic) + "\n\nIs there anything else I can help you with?"
	c.Messages = append(c.Messages, types.ConversationMessage{
		Role:      types.RoleAssistant,
		Content:   reply,
		Timestamp: e.timestamp(),
	})
	return reply
}

func (e *Engine) timestamp() string {
	return e.now().Format(timestampLayout)
}
