package logbook

import "github.com/claude/trainlog/internal/storage"

// Compile-time check: *storage.DB satisfies Store.
var _ Store = (*storage.DB)(nil)
