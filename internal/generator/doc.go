// Package generator walks a validated annotation stream and assembles the
// documents it describes, splicing code excerpts from the original listing.
package generator
