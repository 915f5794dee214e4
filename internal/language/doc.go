// Package language holds the table of output languages offered to the
// user, mapping display names to service language codes. Languages that
// support regional pronunciation variants list them as accents.
package language
