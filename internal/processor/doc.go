// Package processor contains the interaction layer of cropvoice. It looks
// up a crop disease, composes the advice text, translates it, synthesizes
// speech and sweeps expired audio afterwards. It also turns every failure
// into a message fit for the user. This package serves as the main
// coordinator between all other components.
package processor
