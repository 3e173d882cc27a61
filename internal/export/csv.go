package export

import (
	"encoding/csv"
	"io"
	"os"

	"github.com/jszwec/csvutil"
	"github.com/rotisserie/eris"

	"github.com/pfrederiksen/careerdb/internal/career"
)

// Paths lists the CSV files of one dataset
type Paths struct {
	Stints      string
	Transitions string
	Stats       string
}

// CSVPaths returns the file names used for prefix
func CSVPaths(prefix string) Paths {
	return Paths{
		Stints:      prefix + "_stints.csv",
		Transitions: prefix + "_transitions.csv",
		Stats:       prefix + "_player_stats.csv",
	}
}

// All returns the paths in write order
func (p Paths) All() []string {
	return []string{p.Stints, p.Transitions, p.Stats}
}

// WriteCSV writes the three views of ds next to each other
func WriteCSV(prefix string, ds career.Dataset) (Paths, error) {
	paths := CSVPaths(prefix)

	if err := WriteRows(paths.Stints, ds.Stints); err != nil {
		return paths, err
	}
	if err := WriteRows(paths.Transitions, ds.Transitions); err != nil {
		return paths, err
	}
	if err := WriteRows(paths.Stats, ds.Stats); err != nil {
		return paths, err
	}
	return paths, nil
}

// ReadCSV reads a dataset written by WriteCSV
func ReadCSV(prefix string) (career.Dataset, error) {
	paths := CSVPaths(prefix)

	stints, err := ReadRows[career.Stint](paths.Stints)
	if err != nil {
		return career.Dataset{}, err
	}
	transitions, err := ReadRows[career.Transition](paths.Transitions)
	if err != nil {
		return career.Dataset{}, err
	}
	stats, err := ReadRows[career.PlayerStatistics](paths.Stats)
	if err != nil {
		return career.Dataset{}, err
	}

	return career.Dataset{Stints: stints, Transitions: transitions, Stats: stats}, nil
}

// WriteRows writes rows to path with a header row, even when rows is empty
func WriteRows[T any](path string, rows []T) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "csv: create %s", path)
	}
	defer f.Close()

	if err := EncodeRows(f, rows); err != nil {
		return eris.Wrapf(err, "csv: write %s", path)
	}
	return eris.Wrapf(f.Close(), "csv: close %s", path)
}

// EncodeRows writes rows as CSV to w
func EncodeRows[T any](w io.Writer, rows []T) error {
	cw := csv.NewWriter(w)
	enc := csvutil.NewEncoder(cw)

	var zero T
	if err := enc.EncodeHeader(zero); err != nil {
		return eris.Wrap(err, "csv: encode header")
	}
	for i := range rows {
		if err := enc.Encode(rows[i]); err != nil {
			return eris.Wrapf(err, "csv: encode row %d", i)
		}
	}

	cw.Flush()
	return eris.Wrap(cw.Error(), "csv: flush")
}

// ReadRows reads every row of a CSV file written by WriteRows
func ReadRows[T any](path string) ([]T, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "csv: open %s", path)
	}
	defer f.Close()

	rows, err := DecodeRows[T](f)
	if err != nil {
		return nil, eris.Wrapf(err, "csv: read %s", path)
	}
	return rows, nil
}

// DecodeRows reads CSV rows from r. Input without a header decodes to no rows.
func DecodeRows[T any](r io.Reader) ([]T, error) {
	rows := make([]T, 0)

	dec, err := csvutil.NewDecoder(csv.NewReader(r))
	if err == io.EOF {
		return rows, nil
	}
	if err != nil {
		return nil, eris.Wrap(err, "csv: read header")
	}

	for {
		var row T
		err := dec.Decode(&row)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, eris.Wrapf(err, "csv: decode row %d", len(rows)+1)
		}
		rows = append(rows, row)
	}
	return rows, nil
}
