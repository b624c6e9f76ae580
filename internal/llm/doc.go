// Package llm provides clients for the language-model services that turn
// bulletin text into structured records. It supports Gemini, OpenAI and
// Anthropic behind one interface, with schema-constrained JSON output,
// transient-error classification and optional client-side rate limiting.
package llm
