// Package batch reads files of crop/disease requests for pre-generating
// audio in bulk.
package batch
