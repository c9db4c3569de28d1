package domain

import "time"

// Comment is a single entry in a product's comment ledger. Comments carry no
// identifier of their own; their identity is the owning product's slug plus
// their position in the ledger.
type Comment struct {
	Author    string    `json:"author"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}
