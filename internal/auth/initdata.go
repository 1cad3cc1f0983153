package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"
)

var (
	ErrMissingInitData = errors.New(ErrMsgMissingInitData)
	ErrMalformed       = errors.New(ErrMsgMalformed)
	ErrBadSignature    = errors.New(ErrMsgBadSignature)
	ErrExpired         = errors.New(ErrMsgExpired)
)

// TelegramUser is the user object embedded in initData
type TelegramUser struct {
	ID           int64  `json:"id"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name,omitempty"`
	Username     string `json:"username,omitempty"`
	LanguageCode string `json:"language_code,omitempty"`
	PhotoURL     string `json:"photo_url,omitempty"`
}

// PlayerID is the storage key for the user's game
func (u TelegramUser) PlayerID() string {
	return strconv.FormatInt(u.ID, 10)
}

// Language returns the user's language code or DefaultLanguage
func (u TelegramUser) Language() string {
	if u.LanguageCode == "" {
		return DefaultLanguage
	}
	return u.LanguageCode
}

// DevUser is the identity used for unsigned requests in development
func DevUser() TelegramUser {
	return TelegramUser{
		ID:           DevUserID,
		FirstName:    DevFirstName,
		Username:     DevUserName,
		LanguageCode: DevLanguageCode,
	}
}

// Verifier checks Telegram WebApp initData signatures
type Verifier struct {
	secret []byte
	maxAge time.Duration
}

// NewVerifier derives the signing secret from the bot token
func NewVerifier(botToken string, maxAge time.Duration) *Verifier {
	if maxAge <= 0 {
		maxAge = DefaultMaxAge
	}
	mac := hmac.New(sha256.New, []byte(webAppDataKey))
	mac.Write([]byte(botToken))
	return &Verifier{secret: mac.Sum(nil), maxAge: maxAge}
}

// Verify validates initData against the bot token and returns the embedded user
func (v *Verifier) Verify(initData string, now time.Time) (*TelegramUser, error) {
	if initData == "" {
		return nil, ErrMissingInitData
	}

	params, err := url.ParseQuery(initData)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	received := params.Get(fieldHash)
	if received == "" {
		return nil, fmt.Errorf("%w: %s", ErrMalformed, ErrMsgMissingHash)
	}
	params.Del(fieldHash)

	expected := v.sign(DataCheckString(params))
	if !hmac.Equal([]byte(expected), []byte(strings.ToLower(received))) {
		return nil, ErrBadSignature
	}

	authDate, err := strconv.ParseInt(params.Get(fieldAuthDate), 10, 64)
	if err != nil {
		authDate = 0
	}
	if now.Sub(time.Unix(authDate, 0)) > v.maxAge {
		return nil, ErrExpired
	}

	user := &TelegramUser{}
	if raw := params.Get(fieldUser); raw != "" {
		if err := json.Unmarshal([]byte(raw), user); err != nil {
			return nil, fmt.Errorf("%w: %s", ErrMalformed, ErrMsgBadUser)
		}
	}
	if user.ID == 0 {
		return nil, fmt.Errorf("%w: %s", ErrMalformed, ErrMsgNoUserID)
	}
	return user, nil
}

// Sign returns the hex hash Telegram would attach to the given fields
func (v *Verifier) Sign(params url.Values) string {
	return v.sign(DataCheckString(params))
}

func (v *Verifier) sign(dataCheck string) string {
	mac := hmac.New(sha256.New, v.secret)
	mac.Write([]byte(dataCheck))
	return hex.EncodeToString(mac.Sum(nil))
}

// DataCheckString joins key=value pairs sorted by key with newlines
func DataCheckString(params url.Values) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		if k == fieldHash {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		lines = append(lines, k+"="+params.Get(k))
	}
	return strings.Join(lines, "\n")
}
