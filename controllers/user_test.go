package controllers

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPing(t *testing.T) {
	r := newRouter()
	r.GET("/ping", Ping)

	w := doRequest(r, http.MethodGet, "/ping", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"pong"}`, w.Body.String())
}

func TestGetUserPrivateInfo(t *testing.T) {
	created := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	t.Run("found", func(t *testing.T) {
		db, mock := newMockDB(t)
		r := newRouter()
		r.GET("/auth/me", asUser(5), GetUserPrivateInfo(db))

		mock.ExpectQuery(`SELECT \* FROM "users" WHERE "users"."id" = \$1`).
			WillReturnRows(sqlmock.NewRows(userColumns).
				AddRow(5, "spotify-ana", "ana", "Ana", "ana@example.com", "", "ES", "premium", nil, created))

		w := doRequest(r, http.MethodGet, "/auth/me", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var body map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, float64(5), body["id"])
		assert.Equal(t, "spotify-ana", body["spotify_id"])
		assert.Equal(t, "ana@example.com", body["email"])
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("deleted user", func(t *testing.T) {
		db, mock := newMockDB(t)
		r := newRouter()
		r.GET("/auth/me", asUser(5), GetUserPrivateInfo(db))

		mock.ExpectQuery(`SELECT \* FROM "users"`).WillReturnRows(sqlmock.NewRows(userColumns))

		w := doRequest(r, http.MethodGet, "/auth/me", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not authenticated", func(t *testing.T) {
		db, _ := newMockDB(t)
		r := newRouter()
		r.GET("/auth/me", GetUserPrivateInfo(db))

		w := doRequest(r, http.MethodGet, "/auth/me", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestUpdateUserInfo(t *testing.T) {
	t.Run("updates and returns the profile", func(t *testing.T) {
		db, mock := newMockDB(t)
		r := newRouter()
		r.PUT("/auth/me", asUser(5), UpdateUserInfo(db))

		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE "users" SET "display_name"=\$1 WHERE .*"id" = \$2`).
			WithArgs("Ana B.", 5).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()
		mock.ExpectQuery(`SELECT \* FROM "users" WHERE "users"."id" = \$1`).
			WillReturnRows(sqlmock.NewRows(userColumns).
				AddRow(5, "spotify-ana", "ana", "Ana B.", "", "", "ES", "premium", nil, time.Now()))

		w := doRequest(r, http.MethodPut, "/auth/me", map[string]string{"display_name": "Ana B."})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"display_name":"Ana B."`)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown user", func(t *testing.T) {
		db, mock := newMockDB(t)
		r := newRouter()
		r.PUT("/auth/me", asUser(99), UpdateUserInfo(db))

		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE "users"`).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectCommit()

		w := doRequest(r, http.MethodPut, "/auth/me", map[string]string{"country": "FR"})
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGetUserPublicInfo(t *testing.T) {
	db, mock := newMockDB(t)
	r := newRouter()
	r.GET("/profiles/:username", GetUserPublicInfo(db))

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE username = \$1`).
		WillReturnRows(sqlmock.NewRows(userColumns).
			AddRow(5, "spotify-ana", "ana", "Ana", "ana@example.com", "https://img/ana.jpg", "ES", "premium", nil, time.Now()))
	mock.ExpectQuery(`SELECT \* FROM "users" WHERE username = \$1`).
		WillReturnRows(sqlmock.NewRows(userColumns))

	w := doRequest(r, http.MethodGet, "/profiles/ana", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":5,"username":"ana","display_name":"Ana","image":"https://img/ana.jpg"}`, w.Body.String())

	w = doRequest(r, http.MethodGet, "/profiles/ghost", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
