package sqlite

const schema = `
BEGIN TRANSACTION;

CREATE TABLE
	IF NOT EXISTS users (
		id TEXT NOT NULL,
		name TEXT NOT NULL,
		surname TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		password TEXT NOT NULL,
		role TEXT NOT NULL DEFAULT 'Lector' CHECK (role IN ('Lector', 'Autor', 'Admin')),
		created datetime NOT NULL,
		PRIMARY KEY ("id")
	);

CREATE TABLE
	IF NOT EXISTS recipes (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		description TEXT,
		servings INTEGER NOT NULL,
		difficulty TEXT NOT NULL,
		prep_time INTEGER NOT NULL DEFAULT 0,
		status TEXT NOT NULL DEFAULT 'En_Revision'
			CHECK (status IN ('En_Revision', 'Publicada', 'Rechazada', 'Borrador', 'Eliminada')),
		deleted BOOLEAN NOT NULL DEFAULT FALSE,
		likes INTEGER NOT NULL DEFAULT 0,
		saves INTEGER NOT NULL DEFAULT 0,
		views INTEGER NOT NULL DEFAULT 0,
		created datetime NOT NULL,
		published datetime
	);

CREATE TABLE
	IF NOT EXISTS recipe_authors (
		recipe TEXT NOT NULL,
		user TEXT NOT NULL,
		role TEXT NOT NULL CHECK (role IN ('Principal', 'Colaborador')),
		can_edit BOOLEAN NOT NULL DEFAULT FALSE,
		PRIMARY KEY (recipe, user),
		FOREIGN KEY (recipe) REFERENCES recipes (id),
		FOREIGN KEY (user) REFERENCES users (id)
	);

CREATE TABLE
	IF NOT EXISTS steps (
		recipe TEXT NOT NULL,
		number INTEGER NOT NULL,
		description TEXT NOT NULL,
		duration INTEGER,
		image_url TEXT,
		PRIMARY KEY (recipe, number),
		FOREIGN KEY (recipe) REFERENCES recipes (id)
	);

CREATE TABLE
	IF NOT EXISTS ingredients (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL UNIQUE
	);

CREATE TABLE
	IF NOT EXISTS recipe_ingredients (
		recipe TEXT NOT NULL,
		ingredient TEXT NOT NULL,
		unit TEXT NOT NULL,
		quantity REAL NOT NULL,
		notes TEXT,
		PRIMARY KEY (recipe, ingredient),
		FOREIGN KEY (recipe) REFERENCES recipes (id),
		FOREIGN KEY (ingredient) REFERENCES ingredients (id)
	);

CREATE TABLE
	IF NOT EXISTS categories (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL UNIQUE
	);

CREATE TABLE
	IF NOT EXISTS recipe_categories (
		recipe TEXT NOT NULL,
		category TEXT NOT NULL,
		PRIMARY KEY (recipe, category),
		FOREIGN KEY (recipe) REFERENCES recipes (id),
		FOREIGN KEY (category) REFERENCES categories (id)
	);

CREATE TABLE
	IF NOT EXISTS likes (
		recipe TEXT NOT NULL,
		user TEXT NOT NULL,
		date datetime NOT NULL,
		PRIMARY KEY (recipe, user),
		FOREIGN KEY (recipe) REFERENCES recipes (id),
		FOREIGN KEY (user) REFERENCES users (id)
	);

CREATE TABLE
	IF NOT EXISTS favorites (
		recipe TEXT NOT NULL,
		user TEXT NOT NULL,
		date datetime NOT NULL,
		PRIMARY KEY (recipe, user),
		FOREIGN KEY (recipe) REFERENCES recipes (id),
		FOREIGN KEY (user) REFERENCES users (id)
	);

CREATE TABLE
	IF NOT EXISTS ratings (
		recipe TEXT NOT NULL,
		user TEXT NOT NULL,
		score INTEGER NOT NULL CHECK (score BETWEEN 1 AND 5),
		date datetime NOT NULL,
		PRIMARY KEY (recipe, user),
		FOREIGN KEY (recipe) REFERENCES recipes (id),
		FOREIGN KEY (user) REFERENCES users (id)
	);

CREATE TABLE
	IF NOT EXISTS recipe_views (
		recipe TEXT NOT NULL,
		viewer TEXT NOT NULL,
		date datetime NOT NULL,
		FOREIGN KEY (recipe) REFERENCES recipes (id)
	);

CREATE INDEX IF NOT EXISTS "Viewer Index" ON "recipe_views" ("recipe", "viewer");

CREATE TABLE
	IF NOT EXISTS lists (
		id TEXT PRIMARY KEY,
		user TEXT NOT NULL,
		name TEXT NOT NULL,
		description TEXT,
		created datetime NOT NULL,
		FOREIGN KEY (user) REFERENCES users (id)
	);

CREATE TABLE
	IF NOT EXISTS list_recipes (
		list TEXT NOT NULL,
		recipe TEXT NOT NULL,
		PRIMARY KEY (list, recipe),
		FOREIGN KEY (list) REFERENCES lists (id),
		FOREIGN KEY (recipe) REFERENCES recipes (id)
	);

CREATE TABLE
	IF NOT EXISTS comments (
		id TEXT PRIMARY KEY,
		recipe TEXT NOT NULL,
		user TEXT NOT NULL,
		text TEXT NOT NULL,
		parent TEXT,
		state TEXT NOT NULL DEFAULT 'Visible' CHECK (state IN ('Visible', 'Eliminado', 'Reportado')),
		reports INTEGER NOT NULL DEFAULT 0,
		date datetime NOT NULL,
		FOREIGN KEY (recipe) REFERENCES recipes (id),
		FOREIGN KEY (user) REFERENCES users (id),
		FOREIGN KEY (parent) REFERENCES comments (id)
	);

CREATE TABLE
	IF NOT EXISTS comment_reports (
		id TEXT PRIMARY KEY,
		comment TEXT NOT NULL,
		user TEXT NOT NULL,
		reason TEXT NOT NULL,
		date datetime NOT NULL,
		FOREIGN KEY (comment) REFERENCES comments (id),
		FOREIGN KEY (user) REFERENCES users (id)
	);

CREATE TABLE
	IF NOT EXISTS reviews (
		id TEXT PRIMARY KEY,
		recipe TEXT NOT NULL,
		admin TEXT NOT NULL,
		outcome TEXT NOT NULL,
		notes TEXT,
		date datetime NOT NULL,
		FOREIGN KEY (recipe) REFERENCES recipes (id),
		FOREIGN KEY (admin) REFERENCES users (id)
	);

COMMIT;
`
