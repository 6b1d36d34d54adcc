package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"time"

	"booklend/internal/auth"
	"booklend/internal/book"
	"booklend/internal/loan"
	"booklend/internal/platform/crypto"
	"booklend/internal/review"
	"booklend/internal/rowstore"
	"booklend/internal/user"

	"github.com/golang-jwt/jwt/v5"
)

// TestSecret signs the development tokens used by handler tests.
const TestSecret = "test-secret"

const (
	UserEmail  = "reader@example.com"
	AdminEmail = "admin@example.com"
)

// TestBook is a complete books row for fixtures.
var TestBook = []string{
	"book-1", "The Go Programming Language", "9780134190440", "Alan Donovan, Brian Kernighan",
	"Addison-Wesley", "2015-10-26", "", "gb-1", "2024-01-01T00:00:00.000Z", AdminEmail, "", "",
}

// NewStore returns an in-memory store holding the header row of every table
// and one admin in the users table.
func NewStore() *rowstore.Memory {
	mem := rowstore.NewMemory()
	mem.Seed(book.Table, book.Header)
	mem.Seed(loan.Table, loan.Header)
	mem.Seed(review.Table, review.Header)
	mem.Seed(user.Table, user.Header, []string{AdminEmail, string(user.RoleAdmin), "2024-01-01T00:00:00.000Z"})
	return mem
}

// GenerateTestToken generates a development identity token for email.
func GenerateTestToken(secret, email string) string {
	token, _ := crypto.GenerateToken(secret, auth.Identity{Email: email}, time.Hour)
	return token
}

// GenerateExpiredToken generates an identity token that expired an hour ago.
func GenerateExpiredToken(secret, email string) string {
	c := crypto.Claims{
		Email:         email,
		EmailVerified: true,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "booklend-dev",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	token, _ := t.SignedString([]byte(secret))
	return token
}

// NewRequest creates a new HTTP request for testing
func NewRequest(method, path string, body interface{}) *http.Request {
	var bodyBytes []byte
	if body != nil {
		bodyBytes, _ = json.Marshal(body)
	}
	var r *http.Request
	if bodyBytes != nil {
		r = httptest.NewRequest(method, path, bytes.NewReader(bodyBytes))
		r.Header.Set("Content-Type", "application/json")
	} else {
		r = httptest.NewRequest(method, path, nil)
	}
	return r
}

// NewRequestWithAuth creates a new HTTP request carrying token in the
// X-Auth-Token header.
func NewRequestWithAuth(method, path string, body interface{}, token string) *http.Request {
	r := NewRequest(method, path, body)
	if token != "" {
		r.Header.Set("X-Auth-Token", token)
	}
	return r
}

// RecordResponse records the HTTP response for testing
type RecordResponse struct {
	Code   int
	Header http.Header
	Body   map[string]interface{}
}

// RecordHTTPResponse records the HTTP response
func RecordHTTPResponse(w *httptest.ResponseRecorder) RecordResponse {
	result := w.Result()
	defer result.Body.Close()

	bodyBytes, _ := io.ReadAll(result.Body)

	var bodyMap map[string]interface{}
	if len(bodyBytes) > 0 {
		json.NewDecoder(bytes.NewReader(bodyBytes)).Decode(&bodyMap)
	}

	return RecordResponse{
		Code:   result.StatusCode,
		Header: result.Header,
		Body:   bodyMap,
	}
}

// Data returns the "data" member of a success envelope.
func (r RecordResponse) Data() interface{} {
	return r.Body["data"]
}

// ErrorMessage returns the "error" member of a failure envelope.
func (r RecordResponse) ErrorMessage() string {
	msg, _ := r.Body["error"].(string)
	return msg
}
