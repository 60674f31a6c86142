package types

// Conversation status values.
const (
	StatusActive    = "active"
	StatusEscalated = "escalated"
	StatusClosed    = "closed"
)

// Resolution status values.
const (
	ResolutionInProgress    = "in_progress"
	ResolutionAIResolved    = "ai_resolved"
	ResolutionHumanFollowup = "human_followup_required"
)

// Sentiment labels shared by the text and audio analyzers.
const (
	SentimentNegative = "negative"
	SentimentMixed    = "mixed"
	SentimentPositive = "positive"
	SentimentNeutral  = "neutral"
)

// Ticket types mirror the coarse query classification.
const (
	TicketInformational = "informational"
	TicketComplaint     = "complaint"
)

// Message roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

type ConversationMessage struct {
	Role      string `json:"role"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
}

// Conversation is the aggregate root. Messages are append-only; id and
// created_at never change after creation.
type Conversation struct {
	ID               string                `json:"id"`
	Title            string                `json:"title"`
	Status           string                `json:"status"`
	Sentiment        string                `json:"sentiment"`
	TicketID         string                `json:"ticket_id,omitempty"`
	TicketType       string                `json:"ticket_type"`
	ResolutionStatus string                `json:"resolution_status"`
	Messages         []ConversationMessage `json:"messages"`
	CreatedAt        string                `json:"created_at"`
	Summary          string                `json:"summary,omitempty"`
	Escalated        bool                  `json:"escalated"`
}

// SentimentResult is transient; only the conversation's rolled-up
// sentiment field persists.
type SentimentResult struct {
	Sentiment  string  `json:"sentiment"`
	Confidence float64 `json:"confidence"`
	Details    string  `json:"details"`
}

type TextQueryRequest struct {
	ConversationID string `json:"conversation_id"`
	Message        string `json:"message"`
}

// TurnResponse is returned by the message and voice endpoints.
type TurnResponse struct {
	Conversation Conversation    `json:"conversation"`
	Sentiment    SentimentResult `json:"sentiment"`
	Response     string          `json:"response"`
	Transcript   string          `json:"transcript,omitempty"`
}
