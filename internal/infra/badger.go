package infra

import (
	badger "github.com/dgraph-io/badger/v4"
)

// NewBadger opens an embedded BadgerDB. An empty path or ":memory:" opens an
// in-memory database whose contents vanish on Close.
func NewBadger(path string) (*badger.DB, error) {
	var opts badger.Options
	if path == "" || path == ":memory:" {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		opts = badger.DefaultOptions(path)
	}
	// badger logs every compaction at INFO
	opts = opts.WithLoggingLevel(badger.WARNING)
	return badger.Open(opts)
}
