package export

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"

	"github.com/pfrederiksen/careerdb/internal/career"
)

// WriteJSON writes ds as one indented JSON document
func WriteJSON(path string, ds career.Dataset) error {
	data, err := json.MarshalIndent(ds, "", "  ")
	if err != nil {
		return eris.Wrap(err, "json: marshal dataset")
	}
	return eris.Wrapf(os.WriteFile(path, data, 0644), "json: write %s", path)
}

// ReadJSON reads a dataset written by WriteJSON
func ReadJSON(path string) (career.Dataset, error) {
	var ds career.Dataset
	data, err := os.ReadFile(path)
	if err != nil {
		return ds, eris.Wrapf(err, "json: read %s", path)
	}
	if err := json.Unmarshal(data, &ds); err != nil {
		return ds, eris.Wrapf(err, "json: decode %s", path)
	}
	return ds, nil
}
