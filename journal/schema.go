// journal/schema.go
package journal

const Schema = `
CREATE TABLE IF NOT EXISTS trades (
	id TEXT PRIMARY KEY,
	ticker TEXT NOT NULL,
	entry_price TEXT NOT NULL,
	initial_sl TEXT NOT NULL,
	current_sl TEXT NOT NULL,
	status TEXT NOT NULL CHECK (status IN ('open', 'closed')),
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_trades_status ON trades(status);
`
