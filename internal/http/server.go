package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xeipuuv/gojsonschema"
	"gorm.io/gorm"

	"save-money-go/internal/auth"
	"save-money-go/internal/config"
	"save-money-go/internal/repository"
	"save-money-go/internal/session"
)

const userContextKey = "user"

type Server struct {
	cfg          *config.Config
	users        *repository.UserRepository
	accounts     *repository.AccountRepository
	expenses     *repository.ExpenseRepository
	recurring    *repository.RecurringRepository
	sessions     session.Store
	hasher       auth.PasswordHasher
	importSchema *gojsonschema.Schema
}

// NewServer wires the full route surface onto a gin engine.
func NewServer(cfg *config.Config, db *gorm.DB, sessions session.Store, hasher auth.PasswordHasher) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors(cfg))
	r.Use(requestLog())

	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(importEntrySchema))
	if err != nil {
		panic(err)
	}

	s := &Server{
		cfg:          cfg,
		users:        repository.NewUserRepository(db),
		accounts:     repository.NewAccountRepository(db),
		expenses:     repository.NewExpenseRepository(db),
		recurring:    repository.NewRecurringRepository(db),
		sessions:     sessions,
		hasher:       hasher,
		importSchema: schema,
	}

	api := r.Group("/api")

	// Auth (no session required)
	api.POST("/auth/login", s.login)
	api.POST("/auth/register", s.register)
	api.POST("/auth/signup", s.register)
	api.POST("/auth/logout", s.logout)
	api.GET("/auth/user/:id", s.getUser)

	// Public content
	api.GET("/user/profile/:id", s.userProfile)
	api.GET("/users/list", s.usersList)
	api.GET("/dashboard/stats", s.dashboardStats)
	api.GET("/public/health", s.health)

	// Ownership-scoped resources
	authorized := api.Group("")
	authorized.Use(s.sessionAuth())
	{
		authorized.POST("/accounts", s.createAccount)
		authorized.GET("/accounts", s.listAccounts)
		authorized.PUT("/accounts/:id", s.updateAccount)
		authorized.DELETE("/accounts/:id", s.deleteAccount)

		authorized.POST("/expenses", s.createExpense)
		authorized.POST("/expenses/incomes", s.createIncomeEntry)
		authorized.POST("/expenses/spendings", s.createExpenseEntry)
		authorized.POST("/expenses/import", s.importExpenses)
		authorized.GET("/expenses", s.listExpenses)
		authorized.GET("/expenses/range", s.listExpensesByRange)
		authorized.PUT("/expenses/:id", s.updateExpense)
		authorized.DELETE("/expenses/:id", s.deleteExpense)

		authorized.POST("/repeated-transactions", s.createRecurring)
		authorized.GET("/repeated-transactions", s.listRecurring)
		authorized.PUT("/repeated-transactions/:id", s.updateRecurring)
		authorized.DELETE("/repeated-transactions/:id", s.deleteRecurring)
	}

	return r
}

// sessionAuth resolves the session cookie to a user before any resource logic
// runs. A missing token, an unknown token, or a stale username all abort with
// 401.
func (s *Server) sessionAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(session.CookieName)
		if err != nil || token == "" {
			c.AbortWithStatusJSON(401, gin.H{"error": "unauthorized"})
			return
		}

		username, err := s.sessions.Resolve(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(401, gin.H{"error": "unauthorized"})
			return
		}

		user, err := s.users.FindByUsername(username)
		if err != nil {
			// session references a deleted user
			c.AbortWithStatusJSON(401, gin.H{"error": "unauthorized"})
			return
		}

		c.Set(userContextKey, user)
		c.Next()
	}
}

func cors(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", cfg.AllowOrigins)
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, GET, PUT, DELETE, OPTIONS")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}

func requestLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		slog.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start))
	}
}
