// Package translation translates the composed advice text into the output
// language. Backends talk to OpenAI or Gemini; Service wraps a backend with
// a cache, rate limiting, a circuit breaker and the fallback to the
// untranslated text when the remote call fails.
package translation
