package repositories

// query to categories database
var (
	queryCategoryCreate = `
		INSERT INTO categories(
			id, name, color_hex, icon, type, is_system
		)
		VALUES(
			gen_random_uuid(), $1, $2, $3, $4, $5
		)
		RETURNING id, name, color_hex, icon, type, is_system;
	`

	queryCategoryGetByID = `SELECT
		id, name, color_hex, icon, type, is_system
	FROM categories
	WHERE id = $1;`

	queryCategoryGetByNameAndType = `SELECT
		id, name, color_hex, icon, type, is_system
	FROM categories
	WHERE LOWER(name) = LOWER($1) AND type = $2;`

	queryCategoryList = `SELECT
		id, name, color_hex, icon, type, is_system
	FROM categories
	ORDER BY name ASC;`
)
