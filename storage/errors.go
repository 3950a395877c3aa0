package storage

import "errors"

var (
	ErrLayoutMismatch  = errors.New("storage: stored layout does not match the registered layout")
	ErrManifestMissing = errors.New("storage: no manifest stored")
	ErrRecordCorrupt   = errors.New("storage: stored record has the wrong size")
)
