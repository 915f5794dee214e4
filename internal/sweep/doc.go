// Package sweep deletes generated audio files once they are older than
// the retention period. Sweeps are non-recursive and only touch files
// with an audio extension.
package sweep
