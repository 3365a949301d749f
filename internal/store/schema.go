package store

// schemaSQL creates the cache tables. The cache holds derived data only:
// deleting the database is always safe.
const schemaSQL = `
CREATE TABLE IF NOT EXISTS files (
	file_path    TEXT PRIMARY KEY,
	mtime_ns     INTEGER NOT NULL,
	size_bytes   INTEGER NOT NULL,
	skipped_rows INTEGER NOT NULL DEFAULT 0,
	parsed_at    TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS records (
	file_path   TEXT NOT NULL,
	seq         INTEGER NOT NULL,
	date        TEXT NOT NULL,
	category    TEXT NOT NULL,
	amount      TEXT NOT NULL,
	description TEXT NOT NULL,
	PRIMARY KEY (file_path, seq)
);
`
