// Package storage persists the match snapshot handed from the extractor to
// the calendar synchronizer.
//
// The snapshot is a single JSON file holding the ordered list of extracted
// match records. It is overwritten on every extraction run and has no other
// consumer; the file path is the only contract between the two phases.
package storage
