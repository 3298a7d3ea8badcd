// Package storage provides the key-value persistence boundary the hydration
// ledger and push registry are written through. Records are whole JSON
// documents; there is no partial update at this layer.
package storage

import "context"

// Store is an asynchronous get/set/remove facade over a keyed record store.
// Get reports found=false (not an error) when the key has never been written.
type Store interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}
