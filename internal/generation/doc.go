// Package generation defines the Word Source boundary: given a language, a
// CEFR level and an exclusion list, a Generator produces one new vocabulary
// item or fails with a reason. Concrete LLM-backed generators live under
// internal/platform (Gemini, OpenAI-compatible); this package holds the
// contract, the shared prompt and the response guard applied to every
// implementation.
package generation
