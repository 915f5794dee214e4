// Package models lists the OpenAI models available to an API key, split
// into speech models for the audio provider and chat models usable for
// translation.
package models
