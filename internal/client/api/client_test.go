package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/vedran77/roster/internal/domain"
)

func strPtr(s string) *string { return &s }

func TestClient_GetAllUsers(t *testing.T) {
	id := uuid.New()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/api/users", r.URL.Path)
		_, _ = w.Write([]byte(`{"success":true,"data":[{"id":"` + id.String() + `","name":"Ann","email":"ann@x.com","skillLevel":"A","createdAt":"2024-01-01T00:00:00Z","updatedAt":"2024-01-01T00:00:00Z"}]}`))
	}))
	defer srv.Close()

	c := New(srv.URL+"/api/", srv.Client())
	users, err := c.GetAllUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 1)
	require.Equal(t, id, users[0].ID)
	require.Equal(t, domain.SkillLevelA, users[0].SkillLevel)
	require.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), users[0].CreatedAt.UTC())
}

func TestClient_EmptyListIsNotNil(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"success":true,"data":[]}`))
	}))
	defer srv.Close()

	users, err := New(srv.URL, srv.Client()).GetAllUsers(context.Background())
	require.NoError(t, err)
	require.NotNil(t, users)
	require.Empty(t, users)
}

func TestClient_CreateSendsBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var in domain.CreateUserInput
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		require.Equal(t, "ann@x.com", in.Email)
		require.Equal(t, "longenough1", in.Password)

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"success":true,"data":{"id":"` + uuid.NewString() + `","name":"Ann","email":"ann@x.com","skillLevel":"F"},"message":"User created successfully"}`))
	}))
	defer srv.Close()

	got, err := New(srv.URL, srv.Client()).CreateUser(context.Background(), domain.CreateUserInput{
		Name: "Ann", Email: "ann@x.com", Password: "longenough1", SkillLevel: "F",
	})
	require.NoError(t, err)
	require.Equal(t, "Ann", got.Name)
}

func TestClient_UpdateOmitsAbsentFields(t *testing.T) {
	id := uuid.NewString()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.Equal(t, "/users/"+id, r.URL.Path)

		raw, _ := io.ReadAll(r.Body)
		require.JSONEq(t, `{"skillLevel":"B"}`, string(raw))

		_, _ = w.Write([]byte(`{"success":true,"data":{"id":"` + id + `","skillLevel":"B"}}`))
	}))
	defer srv.Close()

	got, err := New(srv.URL, srv.Client()).UpdateUser(context.Background(), id, domain.UpdateUserInput{SkillLevel: strPtr("B")})
	require.NoError(t, err)
	require.Equal(t, domain.SkillLevelB, got.SkillLevel)
}

func TestClient_FailureEnvelopeBecomesError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"success":false,"error":"Validation failed","details":[{"field":"email","message":"Invalid email address"}]}`))
	}))
	defer srv.Close()

	_, err := New(srv.URL, srv.Client()).CreateUser(context.Background(), domain.CreateUserInput{})

	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, http.StatusBadRequest, apiErr.Status)
	require.Equal(t, "Validation failed", apiErr.Message)
	require.True(t, apiErr.HasDetails())
	require.Equal(t, "email", apiErr.Details[0].Field)
}

func TestClient_DeleteNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"success":false,"error":"User not found"}`))
	}))
	defer srv.Close()

	err := New(srv.URL, srv.Client()).DeleteUser(context.Background(), uuid.NewString())

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusNotFound, apiErr.Status)
	require.False(t, apiErr.HasDetails())
}

func TestClient_NonJSONIsPlainError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("<html>bad gateway</html>"))
	}))
	defer srv.Close()

	_, err := New(srv.URL, srv.Client()).GetAllUsers(context.Background())
	require.Error(t, err)

	var apiErr *Error
	require.False(t, errors.As(err, &apiErr))
}
