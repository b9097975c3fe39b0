package blockchain

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// RawAddress is the /rawaddr/{address} response, newest transaction first.
type RawAddress struct {
	Txs []Tx `json:"txs"`
}

type Tx struct {
	Hash   string   `json:"hash"`
	Time   int64    `json:"time"`
	Inputs []Input  `json:"inputs"`
	Out    []Output `json:"out"`
}

type Input struct {
	PrevOut *Output `json:"prev_out"`
}

// Output value is in satoshis.
type Output struct {
	Addr  string `json:"addr"`
	Value int64  `json:"value"`
}

// AddressBalance returns the confirmed balance in satoshis. The endpoint
// responds with a plain-text integer, not JSON.
func (c *Client) AddressBalance(ctx context.Context, address string) (int64, error) {
	body, err := c.doGET(ctx, "/q/addressbalance/"+url.PathEscape(address))
	if err != nil {
		return 0, err
	}

	satoshi, err := strconv.ParseInt(strings.TrimSpace(string(body)), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse address balance %q: %w", string(body), err)
	}
	return satoshi, nil
}

func (c *Client) GetRawAddress(ctx context.Context, address string, limit int) (*RawAddress, error) {
	path := fmt.Sprintf("/rawaddr/%s?limit=%d", url.PathEscape(address), limit)
	body, err := c.doGET(ctx, path)
	if err != nil {
		return nil, err
	}

	var raw RawAddress
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("failed to unmarshal raw address: %w", err)
	}
	return &raw, nil
}
