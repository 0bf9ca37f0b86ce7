package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kronibola/internal/auth"
	"kronibola/internal/booking"
	"kronibola/internal/config"
	"kronibola/internal/ledger"
	"kronibola/internal/models"
	"kronibola/internal/registry"
	"kronibola/internal/rowstore"
)

func newTestServer(t *testing.T) (http.Handler, *auth.Gate, []models.Session) {
	t.Helper()
	store := rowstore.NewMemory()
	reg := registry.New(store, 20)
	led := ledger.New(store)

	sessions, err := reg.Upsert(context.Background(), []models.Session{
		{Name: "Friday Futsal", Date: "2026-03-06", Time: "20:00", Location: "Arena KL",
			Fee: "15", Status: models.SessionOpen, Capacity: 2},
	})
	require.NoError(t, err)

	svc := booking.New(reg, led, nil, booking.Options{
		AdminWhatsApp:         "60123456789",
		PendingOverdue:        time.Hour,
		AllowRejectedResubmit: true,
	})

	hash, err := auth.HashPassword("bola123")
	require.NoError(t, err)
	gate := auth.NewGate(hash, "test-secret", time.Hour)

	srv := New(config.Config{HTTPAddr: ":0"}, svc, gate)
	return srv.Handler, gate, sessions
}

func doJSON(t *testing.T, h http.Handler, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	r := httptest.NewRequest(method, path, &buf)
	r.Header.Set("Content-Type", "application/json")
	if token != "" {
		r.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	return w
}

func TestRegistrationFlowOverHTTP(t *testing.T) {
	h, _, sessions := newTestServer(t)

	w := doJSON(t, h, http.MethodGet, "/api/sessions", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var listing struct {
		Sessions []struct {
			ID        string `json:"id"`
			SpotsLeft int    `json:"spots_left"`
		} `json:"sessions"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listing))
	require.Len(t, listing.Sessions, 1)
	assert.Equal(t, 2, listing.Sessions[0].SpotsLeft)

	w = doJSON(t, h, http.MethodPost, "/api/registrations", "", map[string]string{
		"session": sessions[0].ID, "name": "John", "phone": "012-345 6789",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var created struct {
		Status      string `json:"status"`
		Fee         string `json:"fee"`
		ReceiptLink string `json:"receipt_link"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, models.StatusPending, created.Status)
	assert.Equal(t, "15", created.Fee)
	assert.Contains(t, created.ReceiptLink, "wa.me/60123456789")

	// Validation failures come back as 422, nothing written.
	w = doJSON(t, h, http.MethodPost, "/api/registrations", "", map[string]string{
		"session": sessions[0].ID, "name": "Jane", "phone": "12345",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = doJSON(t, h, http.MethodGet, "/api/registrations?date=2026-03-06", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var pub struct {
		Registrations []struct {
			PlayerName string `json:"player_name"`
		} `json:"registrations"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &pub))
	require.Len(t, pub.Registrations, 1)
	assert.Equal(t, "John", pub.Registrations[0].PlayerName)
	assert.NotContains(t, w.Body.String(), "0123456789", "public list hides phones")
}

func TestAdminFlowOverHTTP(t *testing.T) {
	h, _, sessions := newTestServer(t)

	// Admin surface locked without a token.
	w := doJSON(t, h, http.MethodGet, "/api/admin/registrations", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, h, http.MethodPost, "/api/admin/login", "", map[string]string{"password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, h, http.MethodPost, "/api/admin/login", "", map[string]string{"password": "bola123"})
	require.Equal(t, http.StatusOK, w.Code)
	var login struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &login))
	require.NotEmpty(t, login.Token)

	w = doJSON(t, h, http.MethodPost, "/api/registrations", "", map[string]string{
		"session": sessions[0].ID, "name": "John", "phone": "0123456789",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	// Without a session_id the edit falls back to date matching.
	w = doJSON(t, h, http.MethodPost, "/api/admin/registrations/status", login.Token, map[string]string{
		"session_date": "2026-03-06", "player_name": "John", "status": models.StatusPaid,
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, h, http.MethodGet, "/api/admin/registrations", login.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), models.StatusPaid)
	assert.Contains(t, w.Body.String(), "0123456789", "admin view includes phones")

	w = doJSON(t, h, http.MethodGet, "/api/admin/export.csv?session="+sessions[0].ID, login.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, w.Body.String(), "John")

	// Bad transitions surface as 422.
	w = doJSON(t, h, http.MethodPost, "/api/admin/registrations/status", login.Token, map[string]string{
		"session_date": "2026-03-06", "player_name": "John", "status": "Maybe",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestSessionUpsertOverHTTP(t *testing.T) {
	h, _, _ := newTestServer(t)

	w := doJSON(t, h, http.MethodPost, "/api/admin/login", "", map[string]string{"password": "bola123"})
	require.Equal(t, http.StatusOK, w.Code)
	var login struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &login))

	w = doJSON(t, h, http.MethodPut, "/api/admin/sessions", login.Token, map[string]interface{}{
		"sessions": []map[string]interface{}{
			{"name": "Friday Futsal", "date": "2026-03-06", "fee": "15", "status": "Open", "capacity": 2},
			{"name": "Sunday League", "date": "2026-03-08", "fee": "20", "status": "Closed", "capacity": 10},
		},
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, h, http.MethodGet, "/api/sessions/all", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Sunday League")

	// Closed sessions stay out of the registration listing.
	w = doJSON(t, h, http.MethodGet, "/api/sessions", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "Sunday League")
}
