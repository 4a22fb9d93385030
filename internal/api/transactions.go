package api

import (
	"context"
	"net/http"
)

// Transaction is a wallet debit record. Profile entries carry the game name;
// admin listings add the member, type, and description columns.
type Transaction struct {
	ID              int64   `json:"id"`
	MemberID        int64   `json:"memberId,omitempty"`
	GameName        string  `json:"gameName,omitempty"`
	Type            string  `json:"type,omitempty"`
	Description     string  `json:"description,omitempty"`
	Amount          float64 `json:"amount"`
	Date            string  `json:"date,omitempty"`
	TransactionDate string  `json:"transactionDate,omitempty"`
}

// When returns the best available timestamp for the transaction.
func (t Transaction) When() string {
	if t.TransactionDate != "" {
		return t.TransactionDate
	}
	return t.Date
}

type purchaseRequest struct {
	GameID int64 `json:"gameId"`
}

// Purchase debits the wallet and grants the game, returning the server's
// message. The server is the sole arbiter of pricing and balance; the client
// only caches the outcome.
func (c *Client) Purchase(ctx context.Context, gameID int64) (string, error) {
	var resp messageResponse
	if err := c.do(ctx, http.MethodPost, "/transactions/purchase", purchaseRequest{GameID: gameID}, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

// ListTransactions fetches every transaction. Admin only.
func (c *Client) ListTransactions(ctx context.Context) ([]Transaction, error) {
	var transactions []Transaction
	if err := c.do(ctx, http.MethodGet, "/admin/transactions", nil, &transactions); err != nil {
		return nil, err
	}
	return transactions, nil
}
