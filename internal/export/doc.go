// Package export writes career datasets as CSV files and Excel workbooks.
//
// CSV output is one file per view, named <prefix>_stints.csv,
// <prefix>_transitions.csv and <prefix>_player_stats.csv, with column names
// taken from the csv struct tags. Workbooks hold the same three views as
// sheets with typed cells.
package export
