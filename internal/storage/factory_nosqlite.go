//go:build !sqlite

package storage

import "errors"

// Default builds leave the sqlite driver out; selecting the backend then
// fails at construction time instead of at first query.
func newSQLiteStore(_ string) (Store, error) {
	return nil, errors.New("sqlite store requires building with -tags sqlite")
}
