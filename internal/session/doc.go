// Package session runs the learner's practice loop: it chooses the next card
// (a due review or a freshly generated word), applies verdicts through the
// scheduler and difficulty adjuster, and ends the session after a fixed
// number of new words.
//
// A Controller serves one scope (user and language). The Manager creates
// controllers on first use, loading the scope's word bank, level and last
// revision statistic from the store.
package session
