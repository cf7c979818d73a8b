package store

import "github.com/cesargomez89/fullstack/internal/constants"

// Schema holds the DDL of one application in both supported dialects.
type Schema struct {
	SQLite   string
	Postgres string
}

func (s Schema) For(driver string) string {
	if driver == constants.DriverPostgres {
		return s.Postgres
	}
	return s.SQLite
}

// SchemaFor returns the schema of the named application.
func SchemaFor(app string) Schema {
	switch app {
	case constants.AppFyyur:
		return BookingSchema
	case constants.AppTrivia:
		return TriviaSchema
	case constants.AppBookmarkie:
		return BookmarkSchema
	case constants.AppCoffeeShop:
		return DrinkSchema
	}
	return Schema{}
}

var BookingSchema = Schema{
	SQLite: `
CREATE TABLE IF NOT EXISTS venues (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	city TEXT NOT NULL,
	state TEXT NOT NULL,
	address TEXT NOT NULL,
	phone TEXT NOT NULL DEFAULT '',
	image_link TEXT NOT NULL DEFAULT '',
	facebook_link TEXT NOT NULL DEFAULT '',
	website TEXT NOT NULL DEFAULT '',
	genres TEXT NOT NULL DEFAULT '[]',  -- JSON array
	seeking_talent BOOLEAN NOT NULL DEFAULT 0,
	seeking_description TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS artists (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	city TEXT NOT NULL,
	state TEXT NOT NULL,
	phone TEXT NOT NULL DEFAULT '',
	image_link TEXT NOT NULL DEFAULT '',
	facebook_link TEXT NOT NULL DEFAULT '',
	website TEXT NOT NULL DEFAULT '',
	genres TEXT NOT NULL DEFAULT '[]',  -- JSON array
	seeking_venue BOOLEAN NOT NULL DEFAULT 0,
	seeking_description TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS shows (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	artist_id INTEGER NOT NULL REFERENCES artists(id) ON DELETE CASCADE,
	venue_id INTEGER NOT NULL REFERENCES venues(id) ON DELETE CASCADE,
	start_time DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_shows_artist_id ON shows(artist_id);
CREATE INDEX IF NOT EXISTS idx_shows_venue_id ON shows(venue_id);
`,
	Postgres: `
CREATE TABLE IF NOT EXISTS venues (
	id SERIAL PRIMARY KEY,
	name VARCHAR(120) NOT NULL,
	city VARCHAR(120) NOT NULL,
	state VARCHAR(120) NOT NULL,
	address VARCHAR(120) NOT NULL,
	phone VARCHAR(120) NOT NULL DEFAULT '',
	image_link VARCHAR(500) NOT NULL DEFAULT '',
	facebook_link VARCHAR(120) NOT NULL DEFAULT '',
	website VARCHAR(120) NOT NULL DEFAULT '',
	genres TEXT NOT NULL DEFAULT '[]',
	seeking_talent BOOLEAN NOT NULL DEFAULT FALSE,
	seeking_description VARCHAR(500) NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS artists (
	id SERIAL PRIMARY KEY,
	name VARCHAR(120) NOT NULL,
	city VARCHAR(120) NOT NULL,
	state VARCHAR(120) NOT NULL,
	phone VARCHAR(120) NOT NULL DEFAULT '',
	image_link VARCHAR(500) NOT NULL DEFAULT '',
	facebook_link VARCHAR(120) NOT NULL DEFAULT '',
	website VARCHAR(120) NOT NULL DEFAULT '',
	genres TEXT NOT NULL DEFAULT '[]',
	seeking_venue BOOLEAN NOT NULL DEFAULT FALSE,
	seeking_description VARCHAR(500) NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS shows (
	id SERIAL PRIMARY KEY,
	artist_id INTEGER NOT NULL REFERENCES artists(id) ON DELETE CASCADE,
	venue_id INTEGER NOT NULL REFERENCES venues(id) ON DELETE CASCADE,
	start_time TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_shows_artist_id ON shows(artist_id);
CREATE INDEX IF NOT EXISTS idx_shows_venue_id ON shows(venue_id);
`,
}

var TriviaSchema = Schema{
	SQLite: `
CREATE TABLE IF NOT EXISTS categories (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	type TEXT NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS questions (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	question TEXT NOT NULL,
	answer TEXT NOT NULL,
	category INTEGER NOT NULL,
	difficulty INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_questions_category ON questions(category);
`,
	Postgres: `
CREATE TABLE IF NOT EXISTS categories (
	id SERIAL PRIMARY KEY,
	type TEXT NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS questions (
	id SERIAL PRIMARY KEY,
	question TEXT NOT NULL,
	answer TEXT NOT NULL,
	category INTEGER NOT NULL,
	difficulty INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_questions_category ON questions(category);
`,
}

var BookmarkSchema = Schema{
	SQLite: `
CREATE TABLE IF NOT EXISTS directories (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS bookmarks (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	title TEXT NOT NULL DEFAULT '',
	url TEXT NOT NULL,
	date_add DATETIME NOT NULL,
	directory_id INTEGER REFERENCES directories(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_bookmarks_directory_id ON bookmarks(directory_id);
`,
	Postgres: `
CREATE TABLE IF NOT EXISTS directories (
	id SERIAL PRIMARY KEY,
	name VARCHAR(50) NOT NULL
);

CREATE TABLE IF NOT EXISTS bookmarks (
	id SERIAL PRIMARY KEY,
	title VARCHAR(256) NOT NULL DEFAULT '',
	url TEXT NOT NULL,
	date_add TIMESTAMPTZ NOT NULL,
	directory_id INTEGER REFERENCES directories(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_bookmarks_directory_id ON bookmarks(directory_id);
`,
}

var DrinkSchema = Schema{
	SQLite: `
CREATE TABLE IF NOT EXISTS drinks (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	title TEXT NOT NULL UNIQUE,
	recipe TEXT NOT NULL  -- JSON array of ingredients
);
`,
	Postgres: `
CREATE TABLE IF NOT EXISTS drinks (
	id SERIAL PRIMARY KEY,
	title VARCHAR(80) NOT NULL UNIQUE,
	recipe TEXT NOT NULL
);
`,
}
