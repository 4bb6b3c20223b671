package repositories

// query to wallets database
var (
	queryWalletCreate = `
		INSERT INTO wallets(
			id, user_id, name, balance, color_hex, icon, created_at
		)
		VALUES(
			gen_random_uuid(), $1, $2, $3, $4, $5, now()
		)
		RETURNING id, user_id, name, balance, color_hex, icon, created_at;
	`

	queryWalletGetByID = `SELECT
		id, user_id, name, balance, color_hex, icon, created_at
	FROM wallets
	WHERE id = $1;`

	queryWalletGetByUserAndName = `SELECT
		id, user_id, name, balance, color_hex, icon, created_at
	FROM wallets
	WHERE user_id = $1 AND LOWER(name) = LOWER($2);`

	queryWalletListByUser = `SELECT
		id, user_id, name, balance, color_hex, icon, created_at
	FROM wallets
	WHERE user_id = $1
	ORDER BY created_at ASC;`

	queryWalletAddBalance = `
		UPDATE wallets
		SET balance = balance + $1
		WHERE id = $2;
	`
)
