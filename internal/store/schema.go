package store

// schemaVersionV1 is the current schema.
const schemaVersionV1 = 1

// schemaV1 holds merge runs: scalar columns for listing plus the full
// report as a JSON payload.
var schemaV1 = `
CREATE TABLE IF NOT EXISTS schema_version (version INTEGER NOT NULL);

CREATE TABLE IF NOT EXISTS merge_runs (
	id               TEXT PRIMARY KEY,
	dataset          TEXT NOT NULL,
	key_field        TEXT NOT NULL,
	created_at       TEXT NOT NULL,
	input_count      INTEGER NOT NULL,
	output_count     INTEGER NOT NULL,
	group_count      INTEGER NOT NULL,
	merged_groups    INTEGER NOT NULL,
	keyless_count    INTEGER NOT NULL,
	high_risk_groups INTEGER NOT NULL,
	report_payload   BLOB NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_merge_runs_created ON merge_runs(created_at);
`
