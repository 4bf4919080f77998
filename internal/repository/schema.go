package repository

const schema = `
CREATE TABLE IF NOT EXISTS orders (
	order_id        TEXT PRIMARY KEY,
	tracking_number TEXT NOT NULL UNIQUE,
	owner_email     TEXT NOT NULL,
	status          TEXT NOT NULL,
	price           NUMERIC NOT NULL CHECK (price >= 0),
	address         TEXT NOT NULL DEFAULT '',
	billing_info    TEXT NOT NULL DEFAULT '',
	created_at      TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS order_items (
	order_id TEXT NOT NULL REFERENCES orders(order_id) ON DELETE CASCADE,
	item_id  TEXT NOT NULL,
	width    DOUBLE PRECISION NOT NULL CHECK (width > 0),
	height   DOUBLE PRECISION NOT NULL CHECK (height > 0),
	quantity INTEGER NOT NULL CHECK (quantity >= 1),
	model    TEXT NOT NULL,
	color    TEXT NOT NULL,
	notes    TEXT NOT NULL DEFAULT '',
	position INTEGER NOT NULL,
	PRIMARY KEY (order_id, item_id)
);

CREATE TABLE IF NOT EXISTS order_files (
	order_id  TEXT PRIMARY KEY REFERENCES orders(order_id) ON DELETE CASCADE,
	name      TEXT NOT NULL,
	reference TEXT NOT NULL
);
`
