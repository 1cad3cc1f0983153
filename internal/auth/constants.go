package auth

import "time"

// HeaderInitData carries the raw Telegram WebApp initData query string
const HeaderInitData = "X-Telegram-Init-Data"

// initData field names
const (
	fieldHash     = "hash"
	fieldAuthDate = "auth_date"
	fieldUser     = "user"
)

// webAppDataKey is the HMAC key used to derive the secret from the bot token
const webAppDataKey = "WebAppData"

// DefaultMaxAge is how long signed initData stays valid
const DefaultMaxAge = time.Hour

// Dev identity used when unsigned requests are allowed
const (
	DevUserID       = int64(12345678)
	DevUserName     = "devuser"
	DevFirstName    = "Dev"
	DevLanguageCode = "en"
)

// DefaultLanguage applies when initData carries no language_code
const DefaultLanguage = "en"

// Error messages
const (
	ErrMsgMissingInitData = "missing Telegram init data"
	ErrMsgMalformed       = "malformed init data"
	ErrMsgMissingHash     = "missing hash in init data"
	ErrMsgBadSignature    = "invalid init data signature"
	ErrMsgExpired         = "init data expired"
	ErrMsgBadUser         = "invalid user data"
	ErrMsgNoUserID        = "no user id in init data"
)
