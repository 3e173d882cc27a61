// Package player provides the raw player records produced by a wiki scrape.
//
// A Player carries identity fields and the career history exactly as scraped:
// an ordered list of free-text date ranges and team labels. Records are never
// mutated after they are produced. Independent scrape batches are combined with
// Merge, which deduplicates by player ID keeping the first record seen.
package player
