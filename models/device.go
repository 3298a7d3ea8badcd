package models

import "time"

// Device is one registered push target. The registry is persisted as JSON
// under DevicesKey alongside the ledger and settings records.
type Device struct {
	Platform    string    `json:"platform"` // "android" | "ios"
	TokenHash   string    `json:"tokenHash"`
	EndpointARN string    `json:"endpointArn"`
	Enabled     bool      `json:"enabled"`
	UpdatedAt   time.Time `json:"updatedAt"`
	CreatedAt   time.Time `json:"createdAt"`
}
