package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/FairyGrove_Go/internal/auth"
	"github.com/osse101/FairyGrove_Go/internal/domain"
	"github.com/osse101/FairyGrove_Go/internal/engine"
	"github.com/osse101/FairyGrove_Go/internal/middleware"
	"github.com/osse101/FairyGrove_Go/internal/player"
	"github.com/osse101/FairyGrove_Go/internal/repository"
)

const testPlayerID = "4242"

var testUser = auth.TelegramUser{ID: 4242, FirstName: "Ada", Username: "ada", LanguageCode: "ru"}

// authedRequest builds a request whose context carries testUser
func authedRequest(method, target, body string) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	return req.WithContext(middleware.WithPlayer(req.Context(), testUser))
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

func sampleGame() *domain.GameDocument {
	return &domain.GameDocument{
		SchemaVersion: domain.CurrentSchemaVersion,
		UnlockedSlots: domain.DefaultUnlockedSlots,
		Resources:     domain.ResourceBundle{Leaves: 10},
		Level:         1,
		ReferralCode:  "ABCD1234",
		Subscription:  domain.SubscriptionNone,
	}
}

func TestHandleAuthTelegram(t *testing.T) {
	t.Run("new player with referral start param", func(t *testing.T) {
		svc := &player.MockService{}
		svc.On("GetState", mock.Anything, testPlayerID, "FRIEND01").Return(&player.State{
			Game:         sampleGame(),
			IsNew:        true,
			OfflineBonus: domain.ResourceBundle{},
		}, nil)

		w := httptest.NewRecorder()
		HandleAuthTelegram(svc).ServeHTTP(w, authedRequest(http.MethodPost, "/api/v1/auth/telegram", `{"startParam":"FRIEND01"}`))

		require.Equal(t, http.StatusOK, w.Code)
		var resp AuthResponse
		decodeBody(t, w, &resp)
		assert.Equal(t, int64(4242), resp.TelegramID)
		assert.Equal(t, "ru", resp.LanguageCode)
		assert.True(t, resp.IsNewUser)
		assert.Equal(t, "ABCD1234", resp.ReferralCode)
		svc.AssertExpectations(t)
	})

	t.Run("empty body", func(t *testing.T) {
		svc := &player.MockService{}
		svc.On("GetState", mock.Anything, testPlayerID, "").Return(&player.State{Game: sampleGame()}, nil)

		w := httptest.NewRecorder()
		HandleAuthTelegram(svc).ServeHTTP(w, authedRequest(http.MethodPost, "/api/v1/auth/telegram", ""))

		assert.Equal(t, http.StatusOK, w.Code)
		svc.AssertExpectations(t)
	})

	t.Run("no player in context", func(t *testing.T) {
		svc := &player.MockService{}

		w := httptest.NewRecorder()
		HandleAuthTelegram(svc).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/auth/telegram", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		svc.AssertNotCalled(t, "GetState")
	})
}

func TestHandleGetState(t *testing.T) {
	svc := &player.MockService{}
	svc.On("GetState", mock.Anything, testPlayerID, "").Return(&player.State{
		Game:         sampleGame(),
		OfflineBonus: domain.ResourceBundle{Leaves: 12},
	}, nil)

	w := httptest.NewRecorder()
	HandleGetState(svc).ServeHTTP(w, authedRequest(http.MethodGet, "/api/v1/game/state", ""))

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]json.RawMessage
	decodeBody(t, w, &body)
	assert.Contains(t, body, "gameState")
	assert.Contains(t, string(body["offlineBonus"]), `"leaves":12`)
}

func TestHandleMerge(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		serviceErr error
		callsSvc   bool
		wantStatus int
		wantError  string
	}{
		{
			name:       "success",
			body:       `{"fromId":"c_a","toId":"c_b"}`,
			callsSvc:   true,
			wantStatus: http.StatusOK,
		},
		{
			name:       "mismatched creatures",
			body:       `{"fromId":"c_a","toId":"c_b"}`,
			serviceErr: fmt.Errorf("merge: %w", domain.ErrInvalidMerge),
			callsSvc:   true,
			wantStatus: http.StatusBadRequest,
			wantError:  ErrMsgInvalidMergeError,
		},
		{
			name:       "unknown creature",
			body:       `{"fromId":"c_a","toId":"c_b"}`,
			serviceErr: fmt.Errorf("creature c_b: %w", domain.ErrNotFound),
			callsSvc:   true,
			wantStatus: http.StatusNotFound,
			wantError:  ErrMsgNotFoundError,
		},
		{
			name:       "catalog drift",
			body:       `{"fromId":"c_a","toId":"c_b"}`,
			serviceErr: fmt.Errorf("%w: ghost L2", domain.ErrInvalidCreatureType),
			callsSvc:   true,
			wantStatus: http.StatusInternalServerError,
			wantError:  ErrMsgGenericServerError,
		},
		{
			name:       "same id rejected before service",
			body:       `{"fromId":"c_a","toId":"c_a"}`,
			wantStatus: http.StatusBadRequest,
			wantError:  ErrMsgInvalidRequestSummary,
		},
		{
			name:       "malformed json",
			body:       `{"fromId":`,
			wantStatus: http.StatusBadRequest,
			wantError:  ErrMsgInvalidRequest,
		},
		{
			name:       "unknown field",
			body:       `{"fromId":"c_a","toId":"c_b","level":9}`,
			wantStatus: http.StatusBadRequest,
			wantError:  ErrMsgInvalidRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &player.MockService{}
			if tt.callsSvc {
				if tt.serviceErr != nil {
					svc.On("Merge", mock.Anything, testPlayerID, "c_a", "c_b", "ru").Return(nil, tt.serviceErr)
				} else {
					svc.On("Merge", mock.Anything, testPlayerID, "c_a", "c_b", "ru").Return(&player.MergeOutcome{
						MergeResult: engine.MergeResult{NewCreatureID: "c_new", NewLevel: 2, XPGained: 10},
						Family:      domain.FamilyFairyCat,
						Name:        "Whisker",
						Game:        sampleGame(),
					}, nil)
				}
			}

			w := httptest.NewRecorder()
			HandleMerge(svc).ServeHTTP(w, authedRequest(http.MethodPost, "/api/v1/game/merge", tt.body))

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantError != "" {
				assert.Contains(t, w.Body.String(), tt.wantError)
			} else {
				assert.Contains(t, w.Body.String(), `"newCreatureId":"c_new"`)
				assert.Contains(t, w.Body.String(), `"aiName":"Whisker"`)
			}
			if !tt.callsSvc {
				svc.AssertNotCalled(t, "Merge")
			}
			svc.AssertExpectations(t)
		})
	}
}

func TestHandleCollect(t *testing.T) {
	svc := &player.MockService{}
	svc.On("Collect", mock.Anything, testPlayerID, "c_x").Return(&player.CollectOutcome{
		Earned: domain.ResourceBundle{Leaves: 3},
		Game:   sampleGame(),
	}, nil)

	w := httptest.NewRecorder()
	HandleCollect(svc).ServeHTTP(w, authedRequest(http.MethodPost, "/api/v1/game/collect", `{"creatureId":"c_x"}`))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"resources":{"leaves":3`)
	svc.AssertExpectations(t)
}

func TestHandleCollectAll(t *testing.T) {
	svc := &player.MockService{}
	svc.On("CollectAll", mock.Anything, testPlayerID).Return(&player.CollectAllOutcome{
		Earned:    domain.ResourceBundle{Leaves: 9, Dew: 1},
		Collected: 3,
		Game:      sampleGame(),
	}, nil)

	w := httptest.NewRecorder()
	HandleCollectAll(svc).ServeHTTP(w, authedRequest(http.MethodPost, "/api/v1/game/collect-all", ""))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"collected":3`)
}

func TestHandleSync_VersionConflict(t *testing.T) {
	svc := &player.MockService{}
	svc.On("Sync", mock.Anything, testPlayerID).Return(nil, fmt.Errorf("sync: %w", repository.ErrVersionConflict))

	w := httptest.NewRecorder()
	HandleSync(svc).ServeHTTP(w, authedRequest(http.MethodPost, "/api/v1/game/sync", ""))

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), ErrMsgConflictError)
}

func TestHandleOfflineBonus(t *testing.T) {
	svc := &player.MockService{}
	svc.On("OfflineBonus", mock.Anything, testPlayerID).Return(domain.ResourceBundle{Leaves: 40, Dew: 2}, nil)

	w := httptest.NewRecorder()
	HandleOfflineBonus(svc).ServeHTTP(w, authedRequest(http.MethodGet, "/api/v1/game/offline-bonus", ""))

	assert.Equal(t, http.StatusOK, w.Code)
	var resp OfflineBonusResponse
	decodeBody(t, w, &resp)
	assert.Equal(t, int64(40), resp.Bonus.Leaves)
	assert.Equal(t, int64(2), resp.Bonus.Dew)
}

func TestRequirePlayer_MissingIdentity(t *testing.T) {
	svc := &player.MockService{}

	w := httptest.NewRecorder()
	HandleCollectAll(svc).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/game/collect-all", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	svc.AssertNotCalled(t, "CollectAll")
}
