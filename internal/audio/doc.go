// Package audio turns advice text into speech. Providers wrap a speech
// backend (OpenAI TTS or a local espeak-ng); Synthesizer names, writes and
// returns the resulting audio artifact.
package audio
