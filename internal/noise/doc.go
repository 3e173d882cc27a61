// Package noise decides whether a scraped team label names a real team.
//
// Wiki career tables mix real organisations with artifacts of the page layout:
// tournament tiers ("S-Tier"), placements ("3rd - 4th"), lifecycle words
// ("Retired") and placeholders ("TBD"). A Classifier is built from an
// immutable Vocabulary so alternate word lists can be injected per run.
//
// Example usage:
//
//	c := noise.Default()
//	c.IsNoise("S-Tier")    // true
//	c.IsNoise("Sentinels") // false
package noise
