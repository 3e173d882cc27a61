// Package store persists derived career datasets in SQLite.
//
// Every SaveDataset call is a run: one row in runs keyed by a random UUID plus
// the run's stints, transitions and player statistics, written in a single
// transaction. Rows keep their position within the run so LoadDataset returns
// the dataset exactly as it was saved.
package store
