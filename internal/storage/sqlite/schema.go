package sqlite

const schemaSQL = `
CREATE TABLE IF NOT EXISTS pokemon (
	id INTEGER PRIMARY KEY,
	name TEXT NOT NULL UNIQUE,
	height INTEGER NOT NULL DEFAULT 0,
	weight INTEGER NOT NULL DEFAULT 0,
	base_experience INTEGER NOT NULL DEFAULT 0,
	sprite TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS pokemon_types (
	pokemon_id INTEGER NOT NULL REFERENCES pokemon(id) ON DELETE CASCADE,
	slot INTEGER NOT NULL,
	type TEXT NOT NULL,
	PRIMARY KEY (pokemon_id, type)
);
CREATE INDEX IF NOT EXISTS idx_pokemon_types_type ON pokemon_types(type);

CREATE TABLE IF NOT EXISTS pokemon_stats (
	pokemon_id INTEGER NOT NULL REFERENCES pokemon(id) ON DELETE CASCADE,
	slot INTEGER NOT NULL,
	name TEXT NOT NULL,
	base_stat INTEGER NOT NULL,
	PRIMARY KEY (pokemon_id, name)
);

CREATE TABLE IF NOT EXISTS pokemon_abilities (
	pokemon_id INTEGER NOT NULL REFERENCES pokemon(id) ON DELETE CASCADE,
	slot INTEGER NOT NULL,
	name TEXT NOT NULL,
	PRIMARY KEY (pokemon_id, name)
);

CREATE TABLE IF NOT EXISTS reviews (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	pokemon_id INTEGER NOT NULL REFERENCES pokemon(id) ON DELETE CASCADE,
	user_id TEXT NOT NULL,
	rating INTEGER NOT NULL CHECK (rating BETWEEN 1 AND 5),
	description TEXT NOT NULL,
	created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_reviews_pokemon ON reviews(pokemon_id, id);

CREATE TABLE IF NOT EXISTS prefs (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL,
	updated_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS session_prefs (
	session TEXT NOT NULL,
	key TEXT NOT NULL,
	value TEXT NOT NULL,
	updated_at TEXT NOT NULL,
	PRIMARY KEY (session, key)
);
CREATE INDEX IF NOT EXISTS idx_session_prefs_updated_at ON session_prefs(updated_at);
`
