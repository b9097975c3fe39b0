package etherscan

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
)

// Tx is one entry of the txlist/tokentx actions. Etherscan returns every
// field as a string, including numbers.
type Tx struct {
	Hash      string `json:"hash"`
	TimeStamp string `json:"timeStamp"`
	From      string `json:"from"`
	To        string `json:"to"`
	Value     string `json:"value"`
}

// Balance returns the raw integer balance string in wei.
func (c *Client) Balance(ctx context.Context, address string) (string, error) {
	params := url.Values{}
	params.Set("module", "account")
	params.Set("action", "balance")
	params.Set("address", address)
	params.Set("tag", "latest")
	return c.stringResult(ctx, params)
}

// TokenBalance returns the raw integer token balance string in the token's
// smallest unit for the given ERC-20 contract.
func (c *Client) TokenBalance(ctx context.Context, contract, address string) (string, error) {
	params := url.Values{}
	params.Set("module", "account")
	params.Set("action", "tokenbalance")
	params.Set("contractaddress", contract)
	params.Set("address", address)
	params.Set("tag", "latest")
	return c.stringResult(ctx, params)
}

// TxList returns the newest normal transactions for an address, newest first.
func (c *Client) TxList(ctx context.Context, address string, limit int) ([]Tx, error) {
	params := url.Values{}
	params.Set("module", "account")
	params.Set("action", "txlist")
	params.Set("address", address)
	params.Set("startblock", "0")
	params.Set("endblock", "99999999")
	params.Set("page", "1")
	params.Set("offset", strconv.Itoa(limit))
	params.Set("sort", "desc")
	return c.txResult(ctx, params)
}

// TokenTxList returns the newest ERC-20 transfers touching an address for the
// given contract, newest first.
func (c *Client) TokenTxList(ctx context.Context, contract, address string, limit int) ([]Tx, error) {
	params := url.Values{}
	params.Set("module", "account")
	params.Set("action", "tokentx")
	params.Set("contractaddress", contract)
	params.Set("address", address)
	params.Set("page", "1")
	params.Set("offset", strconv.Itoa(limit))
	params.Set("sort", "desc")
	return c.txResult(ctx, params)
}

func (c *Client) stringResult(ctx context.Context, params url.Values) (string, error) {
	raw, err := c.call(ctx, params)
	if err != nil {
		return "", err
	}
	var result string
	if err := json.Unmarshal(raw, &result); err != nil {
		return "", fmt.Errorf("failed to unmarshal %s result: %w", params.Get("action"), err)
	}
	return result, nil
}

func (c *Client) txResult(ctx context.Context, params url.Values) ([]Tx, error) {
	raw, err := c.call(ctx, params)
	if err != nil {
		return nil, err
	}
	var txs []Tx
	if err := json.Unmarshal(raw, &txs); err != nil {
		return nil, fmt.Errorf("failed to unmarshal %s result: %w", params.Get("action"), err)
	}
	return txs, nil
}
