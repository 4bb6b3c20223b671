package repositories

// query to users database
var (
	queryUserCreate = `
		INSERT INTO users(
			id, telegram_id, name, email, is_pro, created_at, updated_at
		)
		VALUES(
			gen_random_uuid(), $1, $2, $3, false, now(), now()
		)
		RETURNING id, telegram_id, name, email, is_pro, created_at, updated_at;
	`

	queryUserGetByID = `SELECT
		id, telegram_id, name, email, is_pro, created_at, updated_at
	FROM users
	WHERE id = $1;`

	queryUserGetByTelegramID = `SELECT
		id, telegram_id, name, email, is_pro, created_at, updated_at
	FROM users
	WHERE telegram_id = $1;`
)
