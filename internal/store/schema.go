package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS scenarios (
    name                 TEXT PRIMARY KEY,
    params               TEXT NOT NULL,
    winner               TEXT NOT NULL,
    monthly_payment      REAL,
    buy_wealth           REAL,
    rent_wealth          REAL,
    breakeven_month      INTEGER,
    saved_at             TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_scenarios_saved ON scenarios(saved_at);
`
