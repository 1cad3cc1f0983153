package postgres

// PostgreSQL Error Codes
const (
	PgErrorCodeUniqueViolation     = "23505"
	PgErrorCodeForeignKeyViolation = "23503"
	PgErrorCodeCheckViolation      = "23514"
)

// Constraint names created by the migrations
const (
	ConstraintPlayersPkey          = "players_pkey"
	ConstraintPlayersReferralCode  = "players_referral_code_key"
	ConstraintReferralsPkey        = "referrals_pkey"
	ConstraintPurchasesChargeIDKey = "purchases_charge_id_key"
)

const (
	queryLoadGame = `
		SELECT document, version, updated_at
		FROM players
		WHERE player_id = $1`

	queryCreateGame = `
		INSERT INTO players (player_id, document, version, referral_code)
		VALUES ($1, $2, 1, NULLIF($3, ''))
		RETURNING updated_at`

	querySaveGame = `
		UPDATE players
		SET document = $2, version = version + 1, referral_code = NULLIF($3, ''), updated_at = NOW()
		WHERE player_id = $1 AND version = $4
		RETURNING version`

	queryPlayerExists = `SELECT EXISTS (SELECT 1 FROM players WHERE player_id = $1)`

	queryFindByReferralCode = `SELECT player_id FROM players WHERE referral_code = $1`

	queryGetReferrer = `SELECT referrer_id FROM referrals WHERE referred_id = $1`

	queryRecordReferral = `
		INSERT INTO referrals (referred_id, referrer_id, created_at)
		VALUES ($1, $2, $3)`

	queryCountReferrals = `SELECT COUNT(*) FROM referrals WHERE referrer_id = $1`

	queryRecordPurchase = `
		INSERT INTO purchases (purchase_id, player_id, item_id, amount, currency, charge_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	queryListPurchases = `
		SELECT purchase_id::text, player_id, item_id, amount, currency, charge_id, created_at
		FROM purchases
		WHERE player_id = $1
		ORDER BY created_at, purchase_id`
)
