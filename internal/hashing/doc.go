// Package hashing defines the normalized content digest and the tagged
// Outcome type that keeps skip reasons from ever being mistaken for hashes.
package hashing
