package repositories

import (
	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/catatduit/go-catatduit/internal/models"
)

// query to transactions database
var (
	queryTransactionCreate = `
		INSERT INTO transactions(
			id, user_id, wallet_id, category_id, type, amount,
			description, raw_input, ai_confidence, source, receipt_image_path, created_at
		)
		VALUES(
			gen_random_uuid(), $1, $2, $3, $4, $5,
			NULLIF($6, ''), NULLIF($7, ''), $8, $9, NULLIF($10, ''), now()
		)
		RETURNING
			id, user_id, wallet_id, category_id, type, amount,
			description, raw_input, ai_confidence, source, receipt_image_path, created_at;
	`

	queryTransactionGetByID = `SELECT
		id, user_id, wallet_id, category_id, type, amount,
		description, raw_input, ai_confidence, source, receipt_image_path, created_at
	FROM transactions
	WHERE id = $1;`

	queryTransactionGetLastByUser = `SELECT
		id, user_id, wallet_id, category_id, type, amount,
		description, raw_input, ai_confidence, source, receipt_image_path, created_at
	FROM transactions
	WHERE user_id = $1
	ORDER BY created_at DESC
	LIMIT 1;`

	queryTransactionDelete = `DELETE FROM transactions WHERE id = $1;`

	queryTransactionSumByTypeBetween = `SELECT
		COALESCE(SUM(amount) FILTER (WHERE type = 'income'), 0) AS total_income,
		COALESCE(SUM(amount) FILTER (WHERE type = 'expense'), 0) AS total_expense
	FROM transactions
	WHERE user_id = $1 AND created_at >= $2 AND created_at < $3;`

	queryTransactionTopCategoriesBetween = `SELECT
		c.name, c.color_hex, c.icon, SUM(t.amount) AS total
	FROM transactions t
	JOIN categories c ON c.id = t.category_id
	WHERE t.user_id = $1 AND t.type = 'expense' AND t.created_at >= $2 AND t.created_at < $3
	GROUP BY c.name, c.color_hex, c.icon
	ORDER BY total DESC
	LIMIT $4;`

	queryTransactionDailyExpenseBetween = `SELECT
		date_trunc('day', created_at)::date AS day, COALESCE(SUM(amount), 0) AS total
	FROM transactions
	WHERE user_id = $1 AND type = 'expense' AND created_at >= $2 AND created_at < $3
	GROUP BY day
	ORDER BY day ASC;`

	queryTransactionCountBetween = `SELECT COUNT(1)
	FROM transactions
	WHERE user_id = $1 AND created_at >= $2 AND created_at < $3;`
)

func buildListTransactionQuery(opts models.GetTransactionListIn) (sql string, args []interface{}, err error) {
	columns := []string{
		"t.id",
		"t.user_id",
		"t.wallet_id",
		"t.category_id",
		"t.type",
		"t.amount",
		"t.description",
		"t.raw_input",
		"t.ai_confidence",
		"t.source",
		"t.receipt_image_path",
		"t.created_at",
		"c.name AS category_name",
		"w.name AS wallet_name",
	}
	query := buildFilteredTransactionQuery(columns, opts).
		Join("categories c ON c.id = t.category_id").
		Join("wallets w ON w.id = t.wallet_id")

	sortDirection := opts.SortBy
	if sortDirection != models.SortByASC && sortDirection != models.SortByDESC {
		sortDirection = models.SortByDESC
	}
	query = query.OrderBy("t.created_at " + sortDirection)

	if opts.Limit > 0 {
		query = query.Limit(opts.Limit)
	}
	if opts.Offset > 0 {
		query = query.Offset(opts.Offset)
	}

	return query.ToSql()
}

func buildCountTransactionQuery(opts models.GetTransactionListIn) (sql string, args []interface{}, err error) {
	return buildFilteredTransactionQuery([]string{"COUNT(1)"}, opts).ToSql()
}

func buildFilteredTransactionQuery(cols []string, opts models.GetTransactionListIn) sq.SelectBuilder {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	query := psql.
		Select(cols...).
		From("transactions t").
		Where(sq.Eq{"t.user_id": opts.UserID})

	if opts.WalletID != (uuid.UUID{}) {
		query = query.Where(sq.Eq{"t.wallet_id": opts.WalletID})
	}

	if opts.CategoryID != (uuid.UUID{}) {
		query = query.Where(sq.Eq{"t.category_id": opts.CategoryID})
	}

	if opts.Type != "" {
		query = query.Where(sq.Eq{"t.type": opts.Type})
	}

	if !opts.DateFrom.IsZero() {
		query = query.Where(sq.GtOrEq{"t.created_at": opts.DateFrom})
	}

	if !opts.DateTo.IsZero() {
		query = query.Where(sq.Lt{"t.created_at": opts.DateTo})
	}

	return query
}
