// Package gemini provides an implementation of the generation.Generator
// interface backed by Google's Gemini API.
//
// The generator renders the shared word prompt, asks the model for a JSON
// object constrained by a response schema (word, translation,
// exampleSentence) and maps API failures onto the generation package's
// error values. It performs a single attempt per call; retrying is left to
// the learner.
package gemini
