// Package cli implements the command-line interface for careerdb.
//
// The cli package provides the Cobra-based CLI that extracts players from
// downloaded wiki pages, merges scrape batches, builds and cleans the career
// dataset, filters tier-1 players and reports on stored datasets. Output is
// text or JSON (--format). It coordinates the extract, storage, career,
// export and store packages.
package cli
