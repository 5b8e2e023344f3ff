// Package store defines the key-value persistence contract used by the
// trainer and the typed helpers layered on top of it.
//
// Every learner datum lives under a string key derived from the learner's
// scope (user and language) and the datum kind. Values are JSON documents;
// a value that no longer decodes is treated as absent and removed so the
// caller falls back to its default.
package store
