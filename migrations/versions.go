package migrations

import "database/sql"

// registry holds the full schema history, root first. Order here is
// cosmetic; the real order comes from the parent links.
var registry = []*Migration{
	createBaseTables,
	createReviewsTable,
	enhanceColorsForGradientsAndMetallics,
	addIsNewToColors,
	addOrderContactFields,
	removePricesFromServices,
	addFeaturesToServices,
	removeOrderDependencyFromReviews,
	addIconToServices,
}

var createBaseTables = &Migration{
	ID:     "create_base_tables",
	Parent: "",
	Label:  "Create users, services, colors, orders and order_files tables",
	Upgrade: func(tx *sql.Tx) error {
		return execAll(tx,
			`CREATE TABLE users (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				email VARCHAR(200) NOT NULL UNIQUE,
				hashed_password VARCHAR(200) NOT NULL,
				full_name VARCHAR(100),
				is_active BOOLEAN NOT NULL DEFAULT 1,
				is_admin BOOLEAN NOT NULL DEFAULT 0,
				created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
				updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
			)`,
			`CREATE INDEX ix_users_id ON users (id)`,
			`CREATE TABLE services (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				name VARCHAR(100) NOT NULL,
				description TEXT,
				is_active BOOLEAN NOT NULL DEFAULT 1,
				category VARCHAR(50),
				base_price NUMERIC(10,2),
				price_factors JSON,
				created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
				updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
			)`,
			`CREATE INDEX ix_services_id ON services (id)`,
			`CREATE TABLE colors (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				name VARCHAR(100) NOT NULL,
				hex_code VARCHAR(7) NOT NULL,
				is_active BOOLEAN NOT NULL DEFAULT 1,
				sort_order INTEGER NOT NULL DEFAULT 0,
				created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
				updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
			)`,
			`CREATE INDEX ix_colors_id ON colors (id)`,
			`CREATE INDEX ix_colors_name ON colors (name)`,
			`CREATE TABLE orders (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				customer_name VARCHAR(100) NOT NULL,
				customer_contact VARCHAR(200),
				service_id INTEGER NOT NULL REFERENCES services (id),
				customer_id INTEGER REFERENCES users (id),
				specifications JSON,
				status VARCHAR(20) DEFAULT 'new',
				total_price NUMERIC(10,2),
				source VARCHAR(20) NOT NULL,
				notes TEXT,
				created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
				updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
			)`,
			`CREATE INDEX ix_orders_id ON orders (id)`,
			`CREATE TABLE order_files (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				order_id INTEGER NOT NULL REFERENCES orders (id),
				file_path VARCHAR(255) NOT NULL,
				original_filename VARCHAR(255) NOT NULL,
				file_size INTEGER,
				file_type VARCHAR(50),
				created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
				updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
			)`,
			`CREATE INDEX ix_order_files_id ON order_files (id)`,
		)
	},
	Downgrade: func(tx *sql.Tx) error {
		return execAll(tx,
			`DROP TABLE order_files`,
			`DROP TABLE orders`,
			`DROP TABLE colors`,
			`DROP TABLE services`,
			`DROP TABLE users`,
		)
	},
}

var createReviewsTable = &Migration{
	ID:     "create_reviews_table",
	Parent: "create_base_tables",
	Label:  "Create reviews table tied one-to-one to orders",
	Upgrade: func(tx *sql.Tx) error {
		return execAll(tx,
			`CREATE TABLE reviews (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				order_id INTEGER NOT NULL UNIQUE REFERENCES orders (id),
				customer_name VARCHAR(100) NOT NULL,
				customer_email VARCHAR(200) NOT NULL,
				rating INTEGER NOT NULL,
				title VARCHAR(200),
				content TEXT NOT NULL,
				images JSON,
				is_approved BOOLEAN DEFAULT 0,
				is_featured BOOLEAN DEFAULT 0,
				created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
				updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
			)`,
			`CREATE INDEX ix_reviews_id ON reviews (id)`,
		)
	},
	Downgrade: func(tx *sql.Tx) error {
		return execAll(tx, `DROP TABLE reviews`)
	},
}

// SQLite cannot alter a column in place, so widening colors to the
// solid/gradient/metallic shape recreates the table: build colors_new,
// copy rows (defaulting every pre-existing row to 'solid', keeping ids),
// drop the old table, rename, rebuild indexes.
var enhanceColorsForGradientsAndMetallics = &Migration{
	ID:     "enhance_colors_for_gradients_and_metallics",
	Parent: "create_reviews_table",
	Label:  "Enhance colors table for gradients and metallics",
	Lossy:  true,
	Upgrade: func(tx *sql.Tx) error {
		return execAll(tx,
			`CREATE TABLE colors_new (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				name VARCHAR(100) NOT NULL,
				type VARCHAR(8) NOT NULL DEFAULT 'solid' CHECK (type IN ('solid', 'gradient', 'metallic')),
				hex_code VARCHAR(7),
				gradient_colors JSON,
				gradient_direction VARCHAR(20),
				metallic_base VARCHAR(7),
				metallic_intensity FLOAT,
				is_active BOOLEAN NOT NULL DEFAULT 1,
				sort_order INTEGER NOT NULL DEFAULT 0,
				price_modifier FLOAT NOT NULL DEFAULT 1.0,
				created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
				updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
			)`,
			`INSERT INTO colors_new (id, name, type, hex_code, is_active, sort_order, price_modifier, created_at, updated_at)
				SELECT id, name, 'solid', hex_code, is_active, sort_order, 1.0, created_at, updated_at
				FROM colors`,
			`DROP TABLE colors`,
			`ALTER TABLE colors_new RENAME TO colors`,
			`CREATE INDEX ix_colors_id ON colors (id)`,
			`CREATE INDEX ix_colors_name ON colors (name)`,
		)
	},
	// Only solid colors with a hex code survive the way back.
	Downgrade: func(tx *sql.Tx) error {
		return execAll(tx,
			`CREATE TABLE colors_old (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				name VARCHAR(100) NOT NULL,
				hex_code VARCHAR(7) NOT NULL,
				is_active BOOLEAN NOT NULL DEFAULT 1,
				sort_order INTEGER NOT NULL DEFAULT 0,
				created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
				updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
			)`,
			`INSERT INTO colors_old (id, name, hex_code, is_active, sort_order, created_at, updated_at)
				SELECT id, name, hex_code, is_active, sort_order, created_at, updated_at
				FROM colors
				WHERE type = 'solid' AND hex_code IS NOT NULL`,
			`DROP TABLE colors`,
			`ALTER TABLE colors_old RENAME TO colors`,
			`CREATE INDEX ix_colors_id ON colors (id)`,
			`CREATE INDEX ix_colors_name ON colors (name)`,
		)
	},
}

var addIsNewToColors = &Migration{
	ID:     "add_is_new_to_colors",
	Parent: "enhance_colors_for_gradients_and_metallics",
	Label:  "Add is_new flag to colors",
	Upgrade: func(tx *sql.Tx) error {
		return execAll(tx, `ALTER TABLE colors ADD COLUMN is_new BOOLEAN NOT NULL DEFAULT 0`)
	},
	Downgrade: func(tx *sql.Tx) error {
		return execAll(tx, `ALTER TABLE colors DROP COLUMN is_new`)
	},
}

var addOrderContactFields = &Migration{
	ID:     "add_order_contact_fields",
	Parent: "add_is_new_to_colors",
	Label:  "Add contact and delivery fields to orders",
	Upgrade: func(tx *sql.Tx) error {
		return execAll(tx,
			`ALTER TABLE orders ADD COLUMN customer_email VARCHAR(200)`,
			`ALTER TABLE orders ADD COLUMN customer_phone VARCHAR(50)`,
			`ALTER TABLE orders ADD COLUMN alternative_contact VARCHAR(200)`,
			`ALTER TABLE orders ADD COLUMN delivery_needed VARCHAR(10)`,
			`ALTER TABLE orders ADD COLUMN delivery_details TEXT`,
			// Legacy rows kept the email in customer_contact
			`UPDATE orders SET customer_email = customer_contact WHERE customer_contact LIKE '%@%'`,
		)
	},
	Downgrade: func(tx *sql.Tx) error {
		return execAll(tx,
			`ALTER TABLE orders DROP COLUMN delivery_details`,
			`ALTER TABLE orders DROP COLUMN delivery_needed`,
			`ALTER TABLE orders DROP COLUMN alternative_contact`,
			`ALTER TABLE orders DROP COLUMN customer_phone`,
			`ALTER TABLE orders DROP COLUMN customer_email`,
		)
	},
}

// Pricing moved out of the services catalog entirely. The downgrade
// re-adds empty columns; the original values are gone.
var removePricesFromServices = &Migration{
	ID:     "remove_prices_from_services",
	Parent: "add_order_contact_fields",
	Label:  "Remove prices and technical parameters from services",
	Lossy:  true,
	Upgrade: func(tx *sql.Tx) error {
		return execAll(tx,
			`ALTER TABLE services DROP COLUMN base_price`,
			`ALTER TABLE services DROP COLUMN price_factors`,
		)
	},
	Downgrade: func(tx *sql.Tx) error {
		return execAll(tx,
			`ALTER TABLE services ADD COLUMN base_price NUMERIC(10,2)`,
			`ALTER TABLE services ADD COLUMN price_factors JSON`,
		)
	},
}

var addFeaturesToServices = &Migration{
	ID:     "add_features_to_services",
	Parent: "remove_prices_from_services",
	Label:  "Add features column to services",
	Upgrade: func(tx *sql.Tx) error {
		return execAll(tx, `ALTER TABLE services ADD COLUMN features JSON`)
	},
	Downgrade: func(tx *sql.Tx) error {
		return execAll(tx, `ALTER TABLE services DROP COLUMN features`)
	},
}

// Reviews stop referencing orders. Dropping the unique foreign key needs
// the same recreate dance as the colors migration. The downgrade cannot
// know which order a review belonged to, so it writes order_id = 0 for
// every row; that placeholder is a documented caveat, not an inverse.
var removeOrderDependencyFromReviews = &Migration{
	ID:     "remove_order_dependency_from_reviews",
	Parent: "add_features_to_services",
	Label:  "Remove order dependency from reviews",
	Lossy:  true,
	Upgrade: func(tx *sql.Tx) error {
		return execAll(tx,
			`CREATE TABLE reviews_new (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				customer_name VARCHAR(100) NOT NULL,
				customer_email VARCHAR(200) NOT NULL,
				rating INTEGER NOT NULL,
				title VARCHAR(200),
				content TEXT NOT NULL,
				images JSON,
				is_approved BOOLEAN DEFAULT 0,
				is_featured BOOLEAN DEFAULT 0,
				created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
				updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
			)`,
			`INSERT INTO reviews_new (id, customer_name, customer_email, rating, title, content, images, is_approved, is_featured, created_at, updated_at)
				SELECT id, customer_name, customer_email, rating, title, content, images, is_approved, is_featured, created_at, updated_at
				FROM reviews`,
			`DROP TABLE reviews`,
			`ALTER TABLE reviews_new RENAME TO reviews`,
			`CREATE INDEX ix_reviews_id ON reviews (id)`,
		)
	},
	// order_id comes back as a bare NOT NULL column: the original unique
	// foreign key cannot hold over fabricated placeholder values.
	Downgrade: func(tx *sql.Tx) error {
		return execAll(tx,
			`CREATE TABLE reviews_old (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				order_id INTEGER NOT NULL,
				customer_name VARCHAR(100) NOT NULL,
				customer_email VARCHAR(200) NOT NULL,
				rating INTEGER NOT NULL,
				title VARCHAR(200),
				content TEXT NOT NULL,
				images JSON,
				is_approved BOOLEAN DEFAULT 0,
				is_featured BOOLEAN DEFAULT 0,
				created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
				updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
			)`,
			`INSERT INTO reviews_old (id, order_id, customer_name, customer_email, rating, title, content, images, is_approved, is_featured, created_at, updated_at)
				SELECT id, 0, customer_name, customer_email, rating, title, content, images, is_approved, is_featured, created_at, updated_at
				FROM reviews`,
			`DROP TABLE reviews`,
			`ALTER TABLE reviews_old RENAME TO reviews`,
			`CREATE INDEX ix_reviews_id ON reviews (id)`,
		)
	},
}

var addIconToServices = &Migration{
	ID:     "add_icon_to_services",
	Parent: "remove_order_dependency_from_reviews",
	Label:  "Add icon field to services",
	Upgrade: func(tx *sql.Tx) error {
		return execAll(tx, `ALTER TABLE services ADD COLUMN icon VARCHAR(50)`)
	},
	Downgrade: func(tx *sql.Tx) error {
		return execAll(tx, `ALTER TABLE services DROP COLUMN icon`)
	},
}
