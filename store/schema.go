package store

const schema = `
CREATE TABLE IF NOT EXISTS builds (
	seq        INTEGER PRIMARY KEY AUTOINCREMENT,
	id         TEXT NOT NULL UNIQUE,
	created_at TEXT NOT NULL,
	units      INTEGER NOT NULL,
	failed     INTEGER NOT NULL,
	entities   INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS symbols (
	build_id  TEXT NOT NULL,
	id        TEXT NOT NULL,
	kind      INTEGER NOT NULL,
	name      TEXT NOT NULL,
	path      TEXT NOT NULL,
	qualified TEXT NOT NULL,
	brief     TEXT NOT NULL,
	owned     INTEGER NOT NULL,
	payload   BLOB NOT NULL,
	PRIMARY KEY (build_id, id)
);

CREATE INDEX IF NOT EXISTS symbols_qualified ON symbols (build_id, qualified);

CREATE TABLE IF NOT EXISTS anomalies (
	build_id TEXT NOT NULL,
	kind     TEXT NOT NULL,
	symbol   TEXT NOT NULL,
	unit     TEXT NOT NULL,
	detail   TEXT NOT NULL
);
`
