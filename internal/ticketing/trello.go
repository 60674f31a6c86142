// Package ticketing creates tracking cards on a Trello board. Ticket
// creation is best-effort telemetry: any failure degrades to a locally
// generated id and never reaches the caller as an error.
package ticketing

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"time"

	"assistlink-go/internal/config"
	"assistlink-go/internal/logger"
)

type Client struct {
	cfg        config.TrelloConfig
	httpClient *http.Client
	now        func() time.Time
}

func NewClient(cfg config.TrelloConfig) *Client {
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout()},
		now:        time.Now,
	}
}

type cardResponse struct {
	ID       string `json:"id"`
	ShortURL string `json:"shortUrl"`
}

// CreateTicket returns a non-empty ticket id, external when the provider
// cooperates and LOCAL-<timestamp> otherwise. Labels are recorded on the
// conversation side only; the card API call does not transmit them.
func (c *Client) CreateTicket(ctx context.Context, title, description string, labels []string) string {
	if !c.cfg.IsConfigured() {
		return c.localTicketID()
	}

	log := logger.New().WithComponent("ticketing").WithField("title", title)

	params := url.Values{}
	params.Set("key", c.cfg.APIKey)
	params.Set("token", c.cfg.Token)
	params.Set("idList", c.cfg.ListID)
	params.Set("name", title)
	params.Set("desc", description)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.cfg.CardsURL()+"?"+params.Encode(), nil)
	if err != nil {
		return c.localTicketID()
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.WithError(err).Warn("trello call failed, using local ticket id")
		return c.localTicketID()
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		log.WithField("status", resp.StatusCode).Warn("trello returned non-success status")
		return c.localTicketID()
	}

	body, _ := io.ReadAll(resp.Body)
	var card cardResponse
	if err := json.Unmarshal(body, &card); err != nil || card.ID == "" {
		return c.localTicketID()
	}

	log.WithField("ticket_id", card.ID).Info("ticket created")
	return card.ID
}

func (c *Client) localTicketID() string {
	return "LOCAL-" + c.now().Format("20060102150405")
}
