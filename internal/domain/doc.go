// Package domain contains the core entities of the vocabulary trainer: word
// records, candidate cards, learner verdicts, CEFR levels, supported languages
// and end-of-session revision statistics. It is independent of storage,
// word generation and delivery concerns.
package domain
