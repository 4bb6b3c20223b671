package repositories

// query to analytics_cache database
var (
	queryAnalyticsCacheUpsert = `
		INSERT INTO analytics_cache(
			id, user_id, month, total_income, total_expense,
			net_income, expense_ratio, saving_ratio, top_categories, updated_at
		)
		VALUES(
			gen_random_uuid(), $1, $2, $3, $4,
			$5, $6, $7, $8, now()
		)
		ON CONFLICT (user_id, month) DO UPDATE SET
			total_income = EXCLUDED.total_income,
			total_expense = EXCLUDED.total_expense,
			net_income = EXCLUDED.net_income,
			expense_ratio = EXCLUDED.expense_ratio,
			saving_ratio = EXCLUDED.saving_ratio,
			top_categories = EXCLUDED.top_categories,
			updated_at = now()
		RETURNING
			id, user_id, month, total_income, total_expense,
			net_income, expense_ratio, saving_ratio, top_categories, updated_at;
	`

	queryAnalyticsCacheGetByUserMonth = `SELECT
		id, user_id, month, total_income, total_expense,
		net_income, expense_ratio, saving_ratio, top_categories, updated_at
	FROM analytics_cache
	WHERE user_id = $1 AND month = $2;`
)
