package tonapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
)

// Account is the /accounts/{id} response, balance in nanotons.
type Account struct {
	Balance int64 `json:"balance"`
}

// AccountEvents is the /accounts/{id}/events response, newest event first.
type AccountEvents struct {
	Events []Event `json:"events"`
}

type Event struct {
	EventID   string   `json:"event_id"`
	Timestamp int64    `json:"timestamp"`
	Actions   []Action `json:"actions"`
}

type Action struct {
	Type        string       `json:"type"`
	TonTransfer *TonTransfer `json:"TonTransfer,omitempty"`
}

// TonTransfer carries the amount in nanotons plus both parties.
type TonTransfer struct {
	Amount    int64          `json:"amount"`
	Sender    AccountAddress `json:"sender"`
	Recipient AccountAddress `json:"recipient"`
}

type AccountAddress struct {
	Address string `json:"address"`
}

func (c *Client) GetAccount(ctx context.Context, address string) (*Account, error) {
	body, err := c.doGET(ctx, "/accounts/"+url.PathEscape(address), nil)
	if err != nil {
		return nil, err
	}

	var account Account
	if err := json.Unmarshal(body, &account); err != nil {
		return nil, fmt.Errorf("failed to unmarshal account: %w", err)
	}
	return &account, nil
}

func (c *Client) GetAccountEvents(ctx context.Context, address string, limit int) (*AccountEvents, error) {
	query := url.Values{}
	query.Set("limit", strconv.Itoa(limit))

	body, err := c.doGET(ctx, "/accounts/"+url.PathEscape(address)+"/events", query)
	if err != nil {
		return nil, err
	}

	var events AccountEvents
	if err := json.Unmarshal(body, &events); err != nil {
		return nil, fmt.Errorf("failed to unmarshal account events: %w", err)
	}
	return &events, nil
}
