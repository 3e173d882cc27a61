package store

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/pfrederiksen/careerdb/internal/career"
)

// Run describes one saved dataset
type Run struct {
	ID          string    `json:"id"`
	Label       string    `json:"label"`
	Stints      int       `json:"stints"`
	Transitions int       `json:"transitions"`
	Players     int       `json:"players"`
	CreatedAt   time.Time `json:"created_at"`
}

// Store is a SQLite-backed dataset store
type Store struct {
	db *sql.DB
}

// Open opens a SQLite database at the given path and configures WAL mode
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &Store{db: db}, nil
}

const migration = `
CREATE TABLE IF NOT EXISTS runs (
	id          TEXT PRIMARY KEY,
	label       TEXT NOT NULL DEFAULT '',
	stints      INTEGER NOT NULL DEFAULT 0,
	transitions INTEGER NOT NULL DEFAULT 0,
	players     INTEGER NOT NULL DEFAULT 0,
	created_at  DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS stints (
	run_id          TEXT NOT NULL REFERENCES runs(id),
	seq             INTEGER NOT NULL,
	stint_id        INTEGER NOT NULL,
	player_id       TEXT NOT NULL,
	real_name       TEXT NOT NULL,
	country         TEXT NOT NULL,
	current_team    TEXT NOT NULL,
	player_status   TEXT NOT NULL,
	stint_number    INTEGER NOT NULL,
	team            TEXT NOT NULL,
	date_start      TEXT NOT NULL,
	date_end        TEXT NOT NULL,
	date_range      TEXT NOT NULL,
	stint_status    TEXT NOT NULL,
	is_current_team INTEGER NOT NULL,
	duration_days   INTEGER NOT NULL,
	year_start      INTEGER NOT NULL,
	year_end        INTEGER NOT NULL,
	roles           TEXT NOT NULL,
	player_url      TEXT NOT NULL,
	PRIMARY KEY (run_id, seq)
);

CREATE TABLE IF NOT EXISTS transitions (
	run_id             TEXT NOT NULL REFERENCES runs(id),
	seq                INTEGER NOT NULL,
	transition_id      INTEGER NOT NULL,
	player_id          TEXT NOT NULL,
	real_name          TEXT NOT NULL,
	country            TEXT NOT NULL,
	from_team          TEXT NOT NULL,
	to_team            TEXT NOT NULL,
	from_stint_status  TEXT NOT NULL,
	to_stint_status    TEXT NOT NULL,
	transition_date    TEXT NOT NULL,
	transition_year    INTEGER NOT NULL,
	from_duration_days INTEGER NOT NULL,
	stint_number       INTEGER NOT NULL,
	PRIMARY KEY (run_id, seq)
);

CREATE TABLE IF NOT EXISTS player_stats (
	run_id                      TEXT NOT NULL REFERENCES runs(id),
	seq                         INTEGER NOT NULL,
	player_id                   TEXT NOT NULL,
	real_name                   TEXT NOT NULL,
	country                     TEXT NOT NULL,
	current_team                TEXT NOT NULL,
	player_status               TEXT NOT NULL,
	total_teams                 INTEGER NOT NULL,
	unique_teams                INTEGER NOT NULL,
	teams_played_multiple_times INTEGER NOT NULL,
	career_start_date           TEXT NOT NULL,
	career_end_date             TEXT NOT NULL,
	career_start_year           INTEGER NOT NULL,
	career_end_year             INTEGER NOT NULL,
	career_span_years           INTEGER NOT NULL,
	total_career_days           INTEGER NOT NULL,
	avg_stint_duration_days     REAL NOT NULL,
	is_active                   INTEGER NOT NULL,
	has_current_team            INTEGER NOT NULL,
	inactive_stints             INTEGER NOT NULL,
	loan_stints                 INTEGER NOT NULL,
	standin_stints              INTEGER NOT NULL,
	roles                       TEXT NOT NULL,
	player_url                  TEXT NOT NULL,
	PRIMARY KEY (run_id, seq)
);

CREATE INDEX IF NOT EXISTS idx_stints_player ON stints(run_id, player_id);
CREATE INDEX IF NOT EXISTS idx_transitions_player ON transitions(run_id, player_id);
CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at);
`

// Migrate creates the schema if it does not exist
func (s *Store) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, migration)
	return eris.Wrap(err, "sqlite: migrate")
}

// Close closes the database
func (s *Store) Close() error {
	return s.db.Close()
}

const (
	stintColumns = `stint_id, player_id, real_name, country, current_team, player_status,
		stint_number, team, date_start, date_end, date_range, stint_status,
		is_current_team, duration_days, year_start, year_end, roles, player_url`

	transitionColumns = `transition_id, player_id, real_name, country, from_team, to_team,
		from_stint_status, to_stint_status, transition_date, transition_year,
		from_duration_days, stint_number`

	statsColumns = `player_id, real_name, country, current_team, player_status,
		total_teams, unique_teams, teams_played_multiple_times,
		career_start_date, career_end_date, career_start_year, career_end_year,
		career_span_years, total_career_days, avg_stint_duration_days,
		is_active, has_current_team, inactive_stints, loan_stints, standin_stints,
		roles, player_url`
)

// insertSQL builds an insert for table with run_id, seq and n value columns
func insertSQL(table, columns string, n int) string {
	return `INSERT INTO ` + table + ` (run_id, seq, ` + columns + `) VALUES (?, ?` +
		strings.Repeat(", ?", n) + `)`
}

// SaveDataset writes ds as a new run and returns the run ID
func (s *Store) SaveDataset(ctx context.Context, label string, ds career.Dataset) (string, error) {
	id := uuid.New().String()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", eris.Wrap(err, "sqlite: begin")
	}
	defer tx.Rollback() //nolint:errcheck

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, label, stints, transitions, players, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		id, label, len(ds.Stints), len(ds.Transitions), len(ds.Stats), time.Now().UTC(),
	)
	if err != nil {
		return "", eris.Wrap(err, "sqlite: insert run")
	}

	if err := insertStints(ctx, tx, id, ds.Stints); err != nil {
		return "", err
	}
	if err := insertTransitions(ctx, tx, id, ds.Transitions); err != nil {
		return "", err
	}
	if err := insertStats(ctx, tx, id, ds.Stats); err != nil {
		return "", err
	}

	if err := tx.Commit(); err != nil {
		return "", eris.Wrapf(err, "sqlite: commit run %s", id)
	}
	return id, nil
}

func insertStints(ctx context.Context, tx *sql.Tx, runID string, stints []career.Stint) error {
	stmt, err := tx.PrepareContext(ctx, insertSQL("stints", stintColumns, 18))
	if err != nil {
		return eris.Wrap(err, "sqlite: prepare stints")
	}
	defer stmt.Close()

	for i, st := range stints {
		_, err := stmt.ExecContext(ctx, runID, i,
			st.StintID, st.PlayerID, st.RealName, st.Country, st.CurrentTeam, string(st.PlayerStatus),
			st.StintNumber, st.Team, st.DateStart, st.DateEnd, st.DateRange, string(st.Status),
			st.IsCurrentTeam, st.DurationDays, st.YearStart, st.YearEnd, st.Roles, st.PlayerURL,
		)
		if err != nil {
			return eris.Wrapf(err, "sqlite: insert stint %d", st.StintID)
		}
	}
	return nil
}

func insertTransitions(ctx context.Context, tx *sql.Tx, runID string, transitions []career.Transition) error {
	stmt, err := tx.PrepareContext(ctx, insertSQL("transitions", transitionColumns, 12))
	if err != nil {
		return eris.Wrap(err, "sqlite: prepare transitions")
	}
	defer stmt.Close()

	for i, t := range transitions {
		_, err := stmt.ExecContext(ctx, runID, i,
			t.TransitionID, t.PlayerID, t.RealName, t.Country, t.FromTeam, t.ToTeam,
			string(t.FromStintStatus), string(t.ToStintStatus), t.TransitionDate, t.TransitionYear,
			t.FromDurationDays, t.StintNumber,
		)
		if err != nil {
			return eris.Wrapf(err, "sqlite: insert transition %d", t.TransitionID)
		}
	}
	return nil
}

func insertStats(ctx context.Context, tx *sql.Tx, runID string, stats []career.PlayerStatistics) error {
	stmt, err := tx.PrepareContext(ctx, insertSQL("player_stats", statsColumns, 22))
	if err != nil {
		return eris.Wrap(err, "sqlite: prepare player stats")
	}
	defer stmt.Close()

	for i, st := range stats {
		_, err := stmt.ExecContext(ctx, runID, i,
			st.PlayerID, st.RealName, st.Country, st.CurrentTeam, string(st.PlayerStatus),
			st.TotalTeams, st.UniqueTeams, st.TeamsPlayedMultipleTimes,
			st.CareerStartDate, st.CareerEndDate, st.CareerStartYear, st.CareerEndYear,
			st.CareerSpanYears, st.TotalCareerDays, st.AvgStintDurationDays,
			st.IsActive, st.HasCurrentTeam, st.InactiveStints, st.LoanStints, st.StandinStints,
			st.Roles, st.PlayerURL,
		)
		if err != nil {
			return eris.Wrapf(err, "sqlite: insert stats for %s", st.PlayerID)
		}
	}
	return nil
}

// GetRun returns the metadata of one run
func (s *Store) GetRun(ctx context.Context, runID string) (*Run, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, label, stints, transitions, players, created_at FROM runs WHERE id = ?`,
		runID,
	)
	var r Run
	err := row.Scan(&r.ID, &r.Label, &r.Stints, &r.Transitions, &r.Players, &r.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, eris.Errorf("run not found: %s", runID)
	}
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: scan run")
	}
	return &r, nil
}

// ListRuns returns all runs, newest first
func (s *Store) ListRuns(ctx context.Context) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, label, stints, transitions, players, created_at FROM runs ORDER BY created_at DESC, id`,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list runs")
	}
	defer rows.Close()

	runs := make([]Run, 0)
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.Label, &r.Stints, &r.Transitions, &r.Players, &r.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan run")
		}
		runs = append(runs, r)
	}
	return runs, eris.Wrap(rows.Err(), "sqlite: list runs iterate")
}

// DeleteRun removes a run and its rows
func (s *Store) DeleteRun(ctx context.Context, runID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return eris.Wrap(err, "sqlite: begin")
	}
	defer tx.Rollback() //nolint:errcheck

	for _, table := range []string{"stints", "transitions", "player_stats"} {
		if _, err := tx.ExecContext(ctx, `DELETE FROM `+table+` WHERE run_id = ?`, runID); err != nil {
			return eris.Wrapf(err, "sqlite: delete %s of run %s", table, runID)
		}
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM runs WHERE id = ?`, runID)
	if err != nil {
		return eris.Wrapf(err, "sqlite: delete run %s", runID)
	}
	if err := checkRowsAffected(res, "run", runID); err != nil {
		return err
	}

	return eris.Wrapf(tx.Commit(), "sqlite: commit delete %s", runID)
}

// LoadDataset reads back the dataset saved under runID
func (s *Store) LoadDataset(ctx context.Context, runID string) (career.Dataset, error) {
	if _, err := s.GetRun(ctx, runID); err != nil {
		return career.Dataset{}, err
	}

	stints, err := s.loadStints(ctx, runID)
	if err != nil {
		return career.Dataset{}, err
	}
	transitions, err := s.loadTransitions(ctx, runID)
	if err != nil {
		return career.Dataset{}, err
	}
	stats, err := s.loadStats(ctx, runID)
	if err != nil {
		return career.Dataset{}, err
	}

	return career.Dataset{Stints: stints, Transitions: transitions, Stats: stats}, nil
}

func (s *Store) loadStints(ctx context.Context, runID string) ([]career.Stint, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+stintColumns+` FROM stints WHERE run_id = ? ORDER BY seq`, runID)
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: query stints for run %s", runID)
	}
	defer rows.Close()

	out := make([]career.Stint, 0)
	for rows.Next() {
		var st career.Stint
		err := rows.Scan(
			&st.StintID, &st.PlayerID, &st.RealName, &st.Country, &st.CurrentTeam, &st.PlayerStatus,
			&st.StintNumber, &st.Team, &st.DateStart, &st.DateEnd, &st.DateRange, &st.Status,
			&st.IsCurrentTeam, &st.DurationDays, &st.YearStart, &st.YearEnd, &st.Roles, &st.PlayerURL,
		)
		if err != nil {
			return nil, eris.Wrap(err, "sqlite: scan stint")
		}
		out = append(out, st)
	}
	return out, eris.Wrap(rows.Err(), "sqlite: stints iterate")
}

func (s *Store) loadTransitions(ctx context.Context, runID string) ([]career.Transition, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+transitionColumns+` FROM transitions WHERE run_id = ? ORDER BY seq`, runID)
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: query transitions for run %s", runID)
	}
	defer rows.Close()

	out := make([]career.Transition, 0)
	for rows.Next() {
		var t career.Transition
		err := rows.Scan(
			&t.TransitionID, &t.PlayerID, &t.RealName, &t.Country, &t.FromTeam, &t.ToTeam,
			&t.FromStintStatus, &t.ToStintStatus, &t.TransitionDate, &t.TransitionYear,
			&t.FromDurationDays, &t.StintNumber,
		)
		if err != nil {
			return nil, eris.Wrap(err, "sqlite: scan transition")
		}
		out = append(out, t)
	}
	return out, eris.Wrap(rows.Err(), "sqlite: transitions iterate")
}

func (s *Store) loadStats(ctx context.Context, runID string) ([]career.PlayerStatistics, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+statsColumns+` FROM player_stats WHERE run_id = ? ORDER BY seq`, runID)
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: query player stats for run %s", runID)
	}
	defer rows.Close()

	out := make([]career.PlayerStatistics, 0)
	for rows.Next() {
		var st career.PlayerStatistics
		err := rows.Scan(
			&st.PlayerID, &st.RealName, &st.Country, &st.CurrentTeam, &st.PlayerStatus,
			&st.TotalTeams, &st.UniqueTeams, &st.TeamsPlayedMultipleTimes,
			&st.CareerStartDate, &st.CareerEndDate, &st.CareerStartYear, &st.CareerEndYear,
			&st.CareerSpanYears, &st.TotalCareerDays, &st.AvgStintDurationDays,
			&st.IsActive, &st.HasCurrentTeam, &st.InactiveStints, &st.LoanStints, &st.StandinStints,
			&st.Roles, &st.PlayerURL,
		)
		if err != nil {
			return nil, eris.Wrap(err, "sqlite: scan player stats")
		}
		out = append(out, st)
	}
	return out, eris.Wrap(rows.Err(), "sqlite: player stats iterate")
}

func checkRowsAffected(res sql.Result, entity, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return eris.Wrap(err, "rows affected")
	}
	if n == 0 {
		return eris.Errorf("%s not found: %s", entity, id)
	}
	return nil
}
