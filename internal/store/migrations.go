package store

const schema = `
CREATE TABLE IF NOT EXISTS countries (
    name      TEXT PRIMARY KEY,
    code      TEXT NOT NULL DEFAULT '',
    pwr_index TEXT NOT NULL DEFAULT '',
    stats     TEXT NOT NULL DEFAULT '{}'
);

CREATE INDEX IF NOT EXISTS idx_countries_code ON countries(code);

CREATE TABLE IF NOT EXISTS budget_series (
    code  TEXT NOT NULL,
    year  INTEGER NOT NULL,
    value TEXT NOT NULL DEFAULT '',
    PRIMARY KEY (code, year)
);

CREATE INDEX IF NOT EXISTS idx_budget_code ON budget_series(code);

CREATE TABLE IF NOT EXISTS company_revenue (
    company TEXT NOT NULL,
    country TEXT NOT NULL DEFAULT '',
    year    INTEGER NOT NULL,
    revenue REAL,
    PRIMARY KEY (company, year)
);

CREATE INDEX IF NOT EXISTS idx_revenue_company ON company_revenue(company);

CREATE TABLE IF NOT EXISTS trade_flows (
    country TEXT NOT NULL,
    year    INTEGER NOT NULL,
    exports REAL,
    imports REAL,
    PRIMARY KEY (country, year)
);

CREATE INDEX IF NOT EXISTS idx_trade_country ON trade_flows(country);
`
