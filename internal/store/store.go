// Package store provides a SQLite-backed library of named scenarios.
package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/theirongolddev/buyrent/internal/model"

	_ "modernc.org/sqlite" // register sqlite driver
)

// ErrNotFound is returned when a named scenario does not exist.
var ErrNotFound = errors.New("scenario not found")

// Scenario is a saved parameter set with the headline figures of its
// projection at save time.
type Scenario struct {
	Name           string           `json:"name"`
	Params         model.Parameters `json:"params"`
	Winner         model.Winner     `json:"winner"`
	MonthlyPayment float64          `json:"monthly_payment"`
	BuyWealth      float64          `json:"buy_wealth"`
	RentWealth     float64          `json:"rent_wealth"`
	BreakevenMonth int              `json:"breakeven_month"`
	SavedAt        time.Time        `json:"saved_at"`
}

// Store provides SQLite-backed scenario storage.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens or creates the scenario database at the given path.
func Open(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating store dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("opening store db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Store{db: db, now: time.Now}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveScenario stores params and its summary under name, replacing any
// scenario already saved with that name.
func (s *Store) SaveScenario(name string, p model.Parameters, sum model.Summary) error {
	if name == "" {
		return errors.New("scenario name is empty")
	}
	raw, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encoding params: %w", err)
	}

	_, err = s.db.Exec(`INSERT OR REPLACE INTO scenarios
		(name, params, winner, monthly_payment, buy_wealth, rent_wealth, breakeven_month, saved_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		name, string(raw), string(sum.Winner), sum.MonthlyPayment,
		sum.FinalBuyWealth, sum.FinalRentPortfolio, sum.BreakevenMonth,
		s.now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("saving scenario %q: %w", name, err)
	}
	return nil
}

// ListScenarios returns all saved scenarios ordered by name.
func (s *Store) ListScenarios() ([]Scenario, error) {
	rows, err := s.db.Query(`SELECT
		name, params, winner, monthly_payment, buy_wealth, rent_wealth, breakeven_month, saved_at
		FROM scenarios ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []Scenario
	for rows.Next() {
		sc, err := scanScenario(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, sc)
	}
	return out, rows.Err()
}

// LoadScenario returns the scenario saved under name, or ErrNotFound.
func (s *Store) LoadScenario(name string) (Scenario, error) {
	row := s.db.QueryRow(`SELECT
		name, params, winner, monthly_payment, buy_wealth, rent_wealth, breakeven_month, saved_at
		FROM scenarios WHERE name = ?`, name)
	sc, err := scanScenario(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Scenario{}, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return sc, err
}

// DeleteScenario removes the named scenario. Deleting a missing name
// returns ErrNotFound.
func (s *Store) DeleteScenario(name string) error {
	res, err := s.db.Exec("DELETE FROM scenarios WHERE name = ?", name)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return nil
}

// ScenarioCount returns the number of saved scenarios.
func (s *Store) ScenarioCount() (int, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM scenarios").Scan(&count)
	return count, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanScenario(r scanner) (Scenario, error) {
	var sc Scenario
	var raw, winner, savedAt string
	var payment, buy, rent sql.NullFloat64
	var breakeven sql.NullInt64

	if err := r.Scan(&sc.Name, &raw, &winner, &payment, &buy, &rent, &breakeven, &savedAt); err != nil {
		return Scenario{}, err
	}
	if err := json.Unmarshal([]byte(raw), &sc.Params); err != nil {
		return Scenario{}, fmt.Errorf("decoding params of %q: %w", sc.Name, err)
	}
	sc.Winner = model.Winner(winner)
	sc.MonthlyPayment = payment.Float64
	sc.BuyWealth = buy.Float64
	sc.RentWealth = rent.Float64
	sc.BreakevenMonth = int(breakeven.Int64)
	sc.SavedAt, _ = time.Parse(time.RFC3339, savedAt)
	return sc, nil
}
