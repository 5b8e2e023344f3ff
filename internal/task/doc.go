// Package task runs background work for the trainer. Its main use is
// fire-and-forget persistence: tasks are keyed, a newer task replaces a
// pending one with the same key, and tasks sharing a key never run
// concurrently, so the last enqueued write for a key is the one that lands.
package task
