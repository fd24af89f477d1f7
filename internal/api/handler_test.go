package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"homeboard/internal/authz"
	"homeboard/internal/db"
	"homeboard/internal/db/repository"
	"homeboard/internal/domain"
	"homeboard/internal/service"
)

const (
	testJWTSecret     = "handler-test-secret-32-bytes-xx"
	testProductSecret = "handler-test-product-secret"
)

type testServer struct {
	t      *testing.T
	router http.Handler
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	writeDB, readDB := db.OpenTestSQLite(t)

	users := repository.NewUserRepo(writeDB, readDB)
	homes := repository.NewHomeRepo(writeDB, readDB)
	messages := repository.NewMessageRepo(writeDB, readDB)
	audit := repository.NewAuditRepo(writeDB, readDB)

	issuer, err := authz.NewIssuer(testJWTSecret, time.Hour)
	require.NoError(t, err)
	validator, err := authz.NewHS256Validator(testJWTSecret)
	require.NoError(t, err)
	guard := authz.NewGuard(validator, authz.DefaultPolicy())

	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	userSvc := service.NewUserService(users, audit, issuer, testProductSecret)
	homeSvc := service.NewHomeService(homes, messages, audit)
	auditSvc := service.NewAuditService(audit, logger)

	h := NewHandler(guard, userSvc, homeSvc, auditSvc, logger)
	return &testServer{t: t, router: h.Routes()}
}

func (ts *testServer) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	ts.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(ts.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)
	return rec
}

func (ts *testServer) signupBuyer(email string) string {
	ts.t.Helper()
	rec := ts.do(http.MethodPost, "/v1/auth/signup", "", map[string]string{
		"name":     "Buyer",
		"email":    email,
		"password": "password-123",
	})
	require.Equal(ts.t, http.StatusCreated, rec.Code, rec.Body.String())
	return tokenFrom(ts.t, rec)
}

func (ts *testServer) signupRealtor(email string) string {
	ts.t.Helper()
	rec := ts.do(http.MethodPost, "/v1/auth/signup", "", map[string]string{
		"name":        "Realtor",
		"email":       email,
		"password":    "password-123",
		"role":        "REALTOR",
		"product_key": service.GenerateProductKey(testProductSecret, email, domain.RoleRealtor),
	})
	require.Equal(ts.t, http.StatusCreated, rec.Code, rec.Body.String())
	return tokenFrom(ts.t, rec)
}

func tokenFrom(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func (ts *testServer) createHome(token, city string, price float64) int64 {
	ts.t.Helper()
	rec := ts.do(http.MethodPost, "/v1/homes", token, map[string]interface{}{
		"address":       "1 Test Street",
		"city":          city,
		"price":         price,
		"property_type": "RESIDENTIAL",
		"bedrooms":      3,
		"bathrooms":     2,
		"land_size":     250.5,
	})
	require.Equal(ts.t, http.StatusCreated, rec.Code, rec.Body.String())
	var resp struct {
		ID int64 `json:"id"`
	}
	require.NoError(ts.t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp.ID
}

func TestHandler_Health(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)
	rec := ts.do(http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHandler_SignupSigninFlow(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)
	ts.signupBuyer("flow@example.com")

	// Duplicate email conflicts.
	rec := ts.do(http.MethodPost, "/v1/auth/signup", "", map[string]string{
		"name": "Dup", "email": "flow@example.com", "password": "password-123",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = ts.do(http.MethodPost, "/v1/auth/signin", "", map[string]string{
		"email": "flow@example.com", "password": "password-123",
	})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = ts.do(http.MethodPost, "/v1/auth/signin", "", map[string]string{
		"email": "flow@example.com", "password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHandler_RealtorSignupNeedsProductKey(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)
	rec := ts.do(http.MethodPost, "/v1/auth/signup", "", map[string]string{
		"name":     "NoKey",
		"email":    "nokey@example.com",
		"password": "password-123",
		"role":     "REALTOR",
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	ts.signupRealtor("withkey@example.com")
}

func TestHandler_Me(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)
	token := ts.signupBuyer("me@example.com")

	rec := ts.do(http.MethodGet, "/v1/me", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var resp userResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "me@example.com", resp.Email)
	assert.Equal(t, "BUYER", resp.Role)

	rec = ts.do(http.MethodGet, "/v1/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHandler_PublicReadsNeedNoToken(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)

	rec := ts.do(http.MethodGet, "/v1/homes", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())

	// A garbage credential does not break a public route.
	rec = ts.do(http.MethodGet, "/v1/homes", "not-a-jwt", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = ts.do(http.MethodGet, "/v1/homes/9999", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandler_CreateHomeAuthz(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)
	buyerToken := ts.signupBuyer("buyer@example.com")
	realtorToken := ts.signupRealtor("realtor@example.com")

	body := map[string]interface{}{
		"address": "1 Test Street", "city": "Lagos", "price": 100000.0,
		"property_type": "RESIDENTIAL",
	}

	rec := ts.do(http.MethodPost, "/v1/homes", "", body)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = ts.do(http.MethodPost, "/v1/homes", "garbage-token", body)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = ts.do(http.MethodPost, "/v1/homes", buyerToken, body)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = ts.do(http.MethodPost, "/v1/homes", realtorToken, body)
	assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
}

func TestHandler_ExpiredTokenRejected(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  "1",
		"role": "REALTOR",
		"iat":  now.Add(-2 * time.Hour).Unix(),
		"exp":  now.Add(-time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testJWTSecret))
	require.NoError(t, err)

	rec := ts.do(http.MethodPost, "/v1/homes", token, map[string]interface{}{
		"address": "1 Test Street", "city": "Lagos", "price": 1.0,
		"property_type": "CONDO",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHandler_SearchFilters(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)
	token := ts.signupRealtor("search@example.com")
	ts.createHome(token, "Lagos", 100000)
	ts.createHome(token, "Lagos", 300000)
	ts.createHome(token, "Abuja", 200000)

	list := func(query string) []homeSummaryResponse {
		rec := ts.do(http.MethodGet, "/v1/homes"+query, "", nil)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var out []homeSummaryResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&out))
		return out
	}

	assert.Len(t, list(""), 3)
	assert.Len(t, list("?city=Lagos"), 2)
	assert.Len(t, list("?city=Lagos&minPrice=150000"), 1)
	assert.Len(t, list("?maxPrice=250000"), 2)
	assert.Len(t, list("?minPrice=150000&maxPrice=250000"), 1)
	assert.Len(t, list("?propertyType=CONDO"), 0)

	rec := ts.do(http.MethodGet, "/v1/homes?minPrice=abc", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = ts.do(http.MethodGet, "/v1/homes?propertyType=CASTLE", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_UpdateDeleteOwnership(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)
	ownerToken := ts.signupRealtor("owner@example.com")
	otherToken := ts.signupRealtor("other@example.com")
	homeID := ts.createHome(ownerToken, "Lagos", 100000)

	update := map[string]interface{}{"price": 120000.0}
	path := fmt.Sprintf("/v1/homes/%d", homeID)

	rec := ts.do(http.MethodPut, path, otherToken, update)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = ts.do(http.MethodPut, path, ownerToken, update)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var updated homeResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&updated))
	assert.Equal(t, 120000.0, updated.Price)
	// Untouched fields survive a partial update.
	assert.Equal(t, "Lagos", updated.City)

	// Anyone can read the listing.
	rec = ts.do(http.MethodGet, path, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var fetched homeResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&fetched))
	assert.NotZero(t, fetched.RealtorID)

	rec = ts.do(http.MethodDelete, path, otherToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = ts.do(http.MethodDelete, path, ownerToken, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = ts.do(http.MethodGet, path, "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandler_UpdateMissingHome(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)
	token := ts.signupRealtor("missing@example.com")

	rec := ts.do(http.MethodPut, "/v1/homes/424242", token, map[string]interface{}{"price": 1.0})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = ts.do(http.MethodPut, "/v1/homes/not-a-number", token, map[string]interface{}{"price": 1.0})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_Inquiries(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)
	ownerToken := ts.signupRealtor("iowner@example.com")
	otherToken := ts.signupRealtor("iother@example.com")
	buyerToken := ts.signupBuyer("ibuyer@example.com")
	homeID := ts.createHome(ownerToken, "Lagos", 100000)
	path := fmt.Sprintf("/v1/homes/%d/inquiries", homeID)

	// Realtors cannot inquire.
	rec := ts.do(http.MethodPost, path, ownerToken, map[string]string{"message": "hi"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// Empty message rejected.
	rec = ts.do(http.MethodPost, path, buyerToken, map[string]string{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = ts.do(http.MethodPost, path, buyerToken, map[string]string{"message": "Still available?"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	// Only the listing's owner can read inquiries.
	rec = ts.do(http.MethodGet, path, otherToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = ts.do(http.MethodGet, path, buyerToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = ts.do(http.MethodGet, path, ownerToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var msgs []inquiryListItem
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&msgs))
	require.Len(t, msgs, 1)
	assert.Equal(t, "Still available?", msgs[0].Message)
	assert.Equal(t, "ibuyer@example.com", msgs[0].BuyerEmail)
}

func TestHandler_AuditTrail(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)
	realtorToken := ts.signupRealtor("atrail@example.com")
	buyerToken := ts.signupBuyer("abuyer@example.com")
	ts.createHome(realtorToken, "Lagos", 100000)

	rec := ts.do(http.MethodGet, "/v1/audit", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Each caller sees only their own actions, newest first.
	rec = ts.do(http.MethodGet, "/v1/audit", realtorToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var entries []auditEntryResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&entries))
	require.Len(t, entries, 2)
	assert.Equal(t, "CREATE_HOME", entries[0].Action)
	assert.Equal(t, "SIGNUP", entries[1].Action)

	rec = ts.do(http.MethodGet, "/v1/audit", buyerToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	entries = nil
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&entries))
	require.Len(t, entries, 1)
	assert.Equal(t, "SIGNUP", entries[0].Action)

	rec = ts.do(http.MethodGet, "/v1/audit?limit=0", realtorToken, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_MalformedBody(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)
	token := ts.signupRealtor("badbody@example.com")

	req := httptest.NewRequest(http.MethodPost, "/v1/homes", bytes.NewBufferString("{not json"))
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
