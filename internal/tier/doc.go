// Package tier identifies players with experience on top-flight teams.
//
// A Matcher holds an allowlist of organisation names and abbreviations.
// Matching is case-insensitive: an exact hit first, then containment in either
// direction, so "Sentinels Academy" and "Sentinels" both match "sentinels".
//
// Example usage:
//
//	m := tier.Default()
//	results := m.Filter(players)
//	rows := m.Expand(stints, results)
package tier
