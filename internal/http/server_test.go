package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"save-money-go/internal/auth"
	"save-money-go/internal/config"
	"save-money-go/internal/database"
	"save-money-go/internal/session"
)

type ServerSuite struct {
	suite.Suite
	router *gin.Engine
}

func (s *ServerSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(s.T(), err)
	require.NoError(s.T(), database.Migrate(db))

	cfg := &config.Config{
		AllowOrigins: "http://localhost:3000",
		SessionTTL:   time.Hour,
	}
	hasher := &auth.BcryptHasher{Cost: bcrypt.MinCost}
	sessions := session.NewMemoryStore(cfg.SessionTTL)

	s.router = NewServer(cfg, db, sessions, hasher)
}

func (s *ServerSuite) do(method, path string, body any, cookie *http.Cookie) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.T(), json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *ServerSuite) register(username, email, password string) {
	w := s.do("POST", "/api/auth/register", gin.H{
		"username": username, "email": email, "password": password,
	}, nil)
	require.Equal(s.T(), 200, w.Code, "register %s: %s", username, w.Body.String())
}

func (s *ServerSuite) login(identifier, password string) *http.Cookie {
	w := s.do("POST", "/api/auth/login", gin.H{
		"username": identifier, "password": password,
	}, nil)
	require.Equal(s.T(), 200, w.Code, "login %s: %s", identifier, w.Body.String())

	for _, c := range w.Result().Cookies() {
		if c.Name == session.CookieName && c.Value != "" {
			return c
		}
	}
	s.T().Fatal("login did not set a session cookie")
	return nil
}

func (s *ServerSuite) signup(username string) *http.Cookie {
	s.register(username, username+"@example.com", "secret123")
	return s.login(username, "secret123")
}

func (s *ServerSuite) body(w *httptest.ResponseRecorder) map[string]any {
	var out map[string]any
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func (s *ServerSuite) bodyList(w *httptest.ResponseRecorder) []map[string]any {
	var out []map[string]any
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

// --- auth ---

func (s *ServerSuite) TestRegisterAndLogin() {
	s.register("jane", "jane@example.com", "secret123")
	cookie := s.login("jane", "secret123")
	assert.NotEmpty(s.T(), cookie.Value)

	// email works as the login identifier too
	s.login("jane@example.com", "secret123")
}

func (s *ServerSuite) TestRegisterResponseOmitsSecret() {
	w := s.do("POST", "/api/auth/register", gin.H{
		"username": "jane", "email": "jane@example.com", "password": "secret123",
	}, nil)
	require.Equal(s.T(), 200, w.Code)
	assert.NotContains(s.T(), w.Body.String(), "secret123")
	assert.NotContains(s.T(), w.Body.String(), "password")
}

func (s *ServerSuite) TestRegisterDuplicates() {
	s.register("jane", "jane@example.com", "secret123")

	w := s.do("POST", "/api/auth/register", gin.H{
		"username": "jane", "email": "other@example.com", "password": "secret123",
	}, nil)
	assert.Equal(s.T(), 400, w.Code)
	assert.Contains(s.T(), w.Body.String(), "Username already exists")

	w = s.do("POST", "/api/auth/register", gin.H{
		"username": "jane2", "email": "jane@example.com", "password": "secret123",
	}, nil)
	assert.Equal(s.T(), 400, w.Code)
	assert.Contains(s.T(), w.Body.String(), "Email already exists")
}

func (s *ServerSuite) TestRegisterValidation() {
	w := s.do("POST", "/api/auth/register", gin.H{
		"username": "jane", "email": "jane@example.com", "password": "short",
	}, nil)
	assert.Equal(s.T(), 400, w.Code)

	w = s.do("POST", "/api/auth/register", gin.H{
		"username": "", "email": "jane@example.com", "password": "secret123",
	}, nil)
	assert.Equal(s.T(), 400, w.Code)
}

func (s *ServerSuite) TestLoginBadCredentials() {
	s.register("jane", "jane@example.com", "secret123")

	w := s.do("POST", "/api/auth/login", gin.H{"username": "jane", "password": "wrong"}, nil)
	assert.Equal(s.T(), 400, w.Code)

	w = s.do("POST", "/api/auth/login", gin.H{"username": "nobody", "password": "secret123"}, nil)
	assert.Equal(s.T(), 400, w.Code)
}

func (s *ServerSuite) TestLogoutInvalidatesSession() {
	cookie := s.signup("jane")

	w := s.do("GET", "/api/accounts", nil, cookie)
	require.Equal(s.T(), 200, w.Code)

	w = s.do("POST", "/api/auth/logout", nil, cookie)
	require.Equal(s.T(), 200, w.Code)

	w = s.do("GET", "/api/accounts", nil, cookie)
	assert.Equal(s.T(), 401, w.Code)
}

// --- authorization ---

func (s *ServerSuite) TestScopedOperationsRequireSession() {
	paths := []struct{ method, path string }{
		{"GET", "/api/accounts"},
		{"POST", "/api/accounts"},
		{"PUT", "/api/accounts/1"},
		{"DELETE", "/api/accounts/1"},
		{"GET", "/api/expenses"},
		{"POST", "/api/expenses"},
		{"GET", "/api/expenses/range?start=2025-09-01&end=2025-09-10"},
		{"PUT", "/api/expenses/1"},
		{"DELETE", "/api/expenses/1"},
		{"POST", "/api/expenses/import"},
		{"GET", "/api/repeated-transactions"},
		{"POST", "/api/repeated-transactions"},
	}
	for _, p := range paths {
		w := s.do(p.method, p.path, nil, nil)
		assert.Equal(s.T(), 401, w.Code, "%s %s", p.method, p.path)
	}
}

func (s *ServerSuite) TestStaleSessionTokenRejected() {
	bogus := &http.Cookie{Name: session.CookieName, Value: "not-a-real-token"}
	w := s.do("GET", "/api/accounts", nil, bogus)
	assert.Equal(s.T(), 401, w.Code)
}

// --- accounts ---

func (s *ServerSuite) TestAccountLifecycle() {
	cookie := s.signup("jane")

	w := s.do("POST", "/api/accounts", gin.H{
		"name": "  My Wallet  ", "type": "credit", "amount": 120.50, "iconKey": "wallet",
	}, cookie)
	require.Equal(s.T(), 200, w.Code, w.Body.String())
	created := s.body(w)
	assert.Equal(s.T(), "My Wallet", created["name"])
	assert.Equal(s.T(), "CREDIT_CARD", created["type"])
	assert.Equal(s.T(), 120.5, created["amount"])

	id := uint(created["id"].(float64))

	w = s.do("GET", "/api/accounts", nil, cookie)
	require.Equal(s.T(), 200, w.Code)
	require.Len(s.T(), s.bodyList(w), 1)

	w = s.do("PUT", fmt.Sprintf("/api/accounts/%d", id), gin.H{
		"name": "Savings", "type": "ธนาคาร", "amount": 99.99,
	}, cookie)
	require.Equal(s.T(), 200, w.Code)
	updated := s.body(w)
	assert.Equal(s.T(), "Savings", updated["name"])
	assert.Equal(s.T(), "BANK", updated["type"])

	w = s.do("DELETE", fmt.Sprintf("/api/accounts/%d", id), nil, cookie)
	assert.Equal(s.T(), 204, w.Code)

	w = s.do("GET", "/api/accounts", nil, cookie)
	assert.Len(s.T(), s.bodyList(w), 0)
}

func (s *ServerSuite) TestAccountOwnershipHidden() {
	jane := s.signup("jane")
	bob := s.signup("bob")

	w := s.do("POST", "/api/accounts", gin.H{"name": "Wallet", "type": "cash"}, jane)
	require.Equal(s.T(), 200, w.Code)
	id := uint(s.body(w)["id"].(float64))

	// bob sees 404 whether the id is foreign or absent
	w = s.do("PUT", fmt.Sprintf("/api/accounts/%d", id), gin.H{"name": "Mine now"}, bob)
	assert.Equal(s.T(), 404, w.Code)
	w = s.do("DELETE", fmt.Sprintf("/api/accounts/%d", id), nil, bob)
	assert.Equal(s.T(), 404, w.Code)
	w = s.do("DELETE", "/api/accounts/424242", nil, bob)
	assert.Equal(s.T(), 404, w.Code)

	w = s.do("GET", "/api/accounts", nil, bob)
	assert.Len(s.T(), s.bodyList(w), 0)

	// jane's record is untouched
	w = s.do("GET", "/api/accounts", nil, jane)
	require.Len(s.T(), s.bodyList(w), 1)
	assert.Equal(s.T(), "Wallet", s.bodyList(w)[0]["name"])
}

// --- expenses ---

func (s *ServerSuite) createEntry(cookie *http.Cookie, body gin.H) map[string]any {
	w := s.do("POST", "/api/expenses", body, cookie)
	require.Equal(s.T(), 200, w.Code, w.Body.String())
	return s.body(w)
}

func (s *ServerSuite) TestExpenseCreateNormalizesInput() {
	cookie := s.signup("jane")

	created := s.createEntry(cookie, gin.H{
		"type": "รายได้", "category": "salary", "amount": 120.50, "date": "1/9/2025",
	})
	assert.Equal(s.T(), "INCOME", created["type"])
	assert.Equal(s.T(), 120.5, created["amount"])

	// ISO and d/M/yyyy agree on the stored instant
	viaISO := s.createEntry(cookie, gin.H{
		"type": "expense", "category": "food", "amount": 10, "date": "2025-09-01",
	})
	assert.Equal(s.T(), created["date"], viaISO["date"])

	// unrecognized type defaults to EXPENSE
	defaulted := s.createEntry(cookie, gin.H{
		"type": "mystery", "category": "misc", "amount": 5, "date": "2025-09-02",
	})
	assert.Equal(s.T(), "EXPENSE", defaulted["type"])
}

func (s *ServerSuite) TestForcedEntryKindEndpoints() {
	cookie := s.signup("jane")

	w := s.do("POST", "/api/expenses/incomes", gin.H{
		"type": "expense", "category": "salary", "amount": 100, "date": "2025-09-01",
	}, cookie)
	require.Equal(s.T(), 200, w.Code)
	assert.Equal(s.T(), "INCOME", s.body(w)["type"])

	w = s.do("POST", "/api/expenses/spendings", gin.H{
		"type": "income", "category": "food", "amount": 50, "date": "2025-09-01",
	}, cookie)
	require.Equal(s.T(), 200, w.Code)
	assert.Equal(s.T(), "EXPENSE", s.body(w)["type"])
}

func (s *ServerSuite) TestExpenseMalformedDate() {
	cookie := s.signup("jane")

	w := s.do("POST", "/api/expenses", gin.H{
		"type": "expense", "category": "food", "amount": 10, "date": "2025-02-30",
	}, cookie)
	assert.Equal(s.T(), 400, w.Code)
}

func (s *ServerSuite) TestExpenseRangeInclusive() {
	cookie := s.signup("jane")

	s.createEntry(cookie, gin.H{"category": "on-start", "amount": 1, "date": "2025-09-01"})
	s.createEntry(cookie, gin.H{"category": "on-end", "amount": 2, "date": "2025-09-10"})
	s.createEntry(cookie, gin.H{"category": "outside", "amount": 3, "date": "2025-09-20"})

	w := s.do("GET", "/api/expenses/range?start=2025-09-01&end=2025-09-10", nil, cookie)
	require.Equal(s.T(), 200, w.Code)
	entries := s.bodyList(w)
	require.Len(s.T(), entries, 2)
	assert.Equal(s.T(), "on-end", entries[0]["category"])
	assert.Equal(s.T(), "on-start", entries[1]["category"])
}

func (s *ServerSuite) TestExpenseRangeBadBounds() {
	cookie := s.signup("jane")
	w := s.do("GET", "/api/expenses/range?start=bogus&end=2025-09-10", nil, cookie)
	assert.Equal(s.T(), 400, w.Code)
}

func (s *ServerSuite) TestExpenseAmountRoundTrip() {
	cookie := s.signup("jane")
	created := s.createEntry(cookie, gin.H{"category": "lunch", "amount": 120.50, "date": "2025-09-01"})
	id := uint(created["id"].(float64))

	w := s.do("GET", "/api/expenses", nil, cookie)
	entries := s.bodyList(w)
	require.Len(s.T(), entries, 1)
	assert.Equal(s.T(), float64(id), entries[0]["id"])
	assert.Equal(s.T(), 120.5, entries[0]["amount"])
}

func (s *ServerSuite) TestExpenseUpdateAndDeleteScoped() {
	jane := s.signup("jane")
	bob := s.signup("bob")

	created := s.createEntry(jane, gin.H{"category": "lunch", "amount": 10, "date": "2025-09-01"})
	id := uint(created["id"].(float64))

	w := s.do("PUT", fmt.Sprintf("/api/expenses/%d", id), gin.H{
		"category": "stolen", "amount": 1, "date": "2025-09-01",
	}, bob)
	assert.Equal(s.T(), 404, w.Code)

	w = s.do("PUT", fmt.Sprintf("/api/expenses/%d", id), gin.H{
		"type": "income", "category": "refund", "amount": 15.25, "date": "2/9/2025",
	}, jane)
	require.Equal(s.T(), 200, w.Code)
	updated := s.body(w)
	assert.Equal(s.T(), "INCOME", updated["type"])
	assert.Equal(s.T(), "refund", updated["category"])
	assert.Equal(s.T(), 15.25, updated["amount"])

	w = s.do("DELETE", fmt.Sprintf("/api/expenses/%d", id), nil, bob)
	assert.Equal(s.T(), 404, w.Code)
	w = s.do("DELETE", fmt.Sprintf("/api/expenses/%d", id), nil, jane)
	assert.Equal(s.T(), 204, w.Code)
}

func (s *ServerSuite) TestImportExpenses() {
	cookie := s.signup("jane")

	payload := []gin.H{
		{"type": "expense", "category": "food", "amount": 12.50, "date": "2025-09-01"},
		{"type": "รายได้", "category": "salary", "amount": 30000, "date": "2025-09-02"},
	}
	w := s.do("POST", "/api/expenses/import", payload, cookie)
	require.Equal(s.T(), 200, w.Code, w.Body.String())
	assert.Equal(s.T(), float64(2), s.body(w)["imported"])

	listed := s.do("GET", "/api/expenses", nil, cookie)
	assert.Len(s.T(), s.bodyList(listed), 2)
}

func (s *ServerSuite) TestImportRejectsSchemaViolations() {
	cookie := s.signup("jane")

	// amount must be a number, category non-empty
	payload := []gin.H{{"category": "", "amount": "12", "date": "2025-09-01"}}
	w := s.do("POST", "/api/expenses/import", payload, cookie)
	assert.Equal(s.T(), 400, w.Code)

	// nothing persisted from a rejected batch
	listed := s.do("GET", "/api/expenses", nil, cookie)
	assert.Len(s.T(), s.bodyList(listed), 0)
}

// --- recurring templates ---

func (s *ServerSuite) TestRecurringResolvesOwnAccount() {
	cookie := s.signup("jane")

	w := s.do("POST", "/api/accounts", gin.H{"name": "Wallet", "type": "cash"}, cookie)
	require.Equal(s.T(), 200, w.Code)
	accountID := s.body(w)["id"].(float64)

	w = s.do("POST", "/api/repeated-transactions", gin.H{
		"name": "Rent", "account": "Wallet", "amount": 8000, "date": "25/12/2025", "frequency": "monthly",
	}, cookie)
	require.Equal(s.T(), 200, w.Code, w.Body.String())
	created := s.body(w)
	assert.Equal(s.T(), accountID, created["accountId"])

	// unknown account name leaves the reference unresolved
	w = s.do("POST", "/api/repeated-transactions", gin.H{
		"name": "Gym", "account": "NoSuchAccount", "amount": 500, "date": "1/1/2026", "frequency": "monthly",
	}, cookie)
	require.Equal(s.T(), 200, w.Code)
	assert.Nil(s.T(), s.body(w)["accountId"])
}

func (s *ServerSuite) TestRecurringNeverResolvesForeignAccount() {
	jane := s.signup("jane")
	bob := s.signup("bob")

	w := s.do("POST", "/api/accounts", gin.H{"name": "Shared Name", "type": "cash"}, jane)
	require.Equal(s.T(), 200, w.Code)

	w = s.do("POST", "/api/repeated-transactions", gin.H{
		"name": "Rent", "account": "Shared Name", "amount": 100, "frequency": "monthly",
	}, bob)
	require.Equal(s.T(), 200, w.Code)
	assert.Nil(s.T(), s.body(w)["accountId"], "must not attach another user's account")
}

func (s *ServerSuite) TestRecurringLifecycle() {
	cookie := s.signup("jane")

	w := s.do("POST", "/api/repeated-transactions", gin.H{
		"name": "Rent", "account": "Wallet", "amount": 8000, "date": "25/12/2025", "frequency": "monthly",
	}, cookie)
	require.Equal(s.T(), 200, w.Code)
	id := uint(s.body(w)["id"].(float64))

	w = s.do("PUT", fmt.Sprintf("/api/repeated-transactions/%d", id), gin.H{
		"name": "Rent", "account": "Wallet", "amount": 8500, "date": "25/12/2025", "frequency": "ทุกเดือน",
	}, cookie)
	require.Equal(s.T(), 200, w.Code)
	assert.Equal(s.T(), "ทุกเดือน", s.body(w)["frequency"])

	w = s.do("DELETE", fmt.Sprintf("/api/repeated-transactions/%d", id), nil, cookie)
	assert.Equal(s.T(), 204, w.Code)

	w = s.do("GET", "/api/repeated-transactions", nil, cookie)
	assert.Len(s.T(), s.bodyList(w), 0)
}

// --- content ---

func (s *ServerSuite) TestHealthAndProfile() {
	s.register("jane", "jane@example.com", "secret123")

	w := s.do("GET", "/api/public/health", nil, nil)
	require.Equal(s.T(), 200, w.Code)
	assert.Equal(s.T(), "OK", s.body(w)["status"])

	w = s.do("GET", "/api/user/profile/1", nil, nil)
	require.Equal(s.T(), 200, w.Code)
	assert.Equal(s.T(), "jane", s.body(w)["username"])

	w = s.do("GET", "/api/user/profile/999", nil, nil)
	assert.Equal(s.T(), 404, w.Code)
}

func (s *ServerSuite) TestUsersList() {
	s.register("jane", "jane@example.com", "secret123")
	s.register("bob", "bob@example.com", "secret123")

	w := s.do("GET", "/api/users/list", nil, nil)
	require.Equal(s.T(), 200, w.Code)
	out := s.body(w)
	assert.Equal(s.T(), float64(2), out["total"])
}

func TestServerSuite(t *testing.T) {
	suite.Run(t, new(ServerSuite))
}
