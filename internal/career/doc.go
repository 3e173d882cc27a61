// Package career builds the relational career dataset from scraped players.
//
// The package has three stages, each a pure function of its input:
//
//   - Builder turns each player's raw history into ordered Stint rows.
//   - Derive groups stints by player once and produces Transitions between
//     consecutive stints plus one PlayerStatistics row per player.
//   - Cleaner drops stints whose team is a noise label, re-sequences the
//     survivors and recomputes transitions and statistics from scratch.
//
// Every stage returns a fresh Dataset; nothing is patched in place, so the
// three views always agree with each other.
package career
