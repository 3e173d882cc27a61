// Package storage provides JSON-based persistence for player batches and
// derived datasets.
//
// Each scrape run is stored as a batch file (players.json for the default
// batch, players_<name>.json for named ones). Derived datasets are stored next
// to them as dataset.json or dataset_<name>.json. The default storage location
// is ~/.local/share/careerdb/.
package storage
