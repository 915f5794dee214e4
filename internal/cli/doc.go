// Package cli provides command-line interface setup and configuration
// for the cropvoice application. It handles flag parsing, command
// creation, secrets from the environment and logger setup using cobra,
// viper and caarlos0/env.
package cli
