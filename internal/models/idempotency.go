package models

import "time"

// IdempotencyKey tracks processed requests so a retried mutation is replayed
// instead of being applied twice.
type IdempotencyKey struct {
	CreatedAt      time.Time `db:"created_at"`
	Key            string    `db:"key"`
	RequestPath    string    `db:"request_path"`
	RequestHash    string    `db:"request_hash"`
	ResponseBody   string    `db:"response_body"`
	ResponseStatus int       `db:"response_status"`
}
