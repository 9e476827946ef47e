package http

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"save-money-go/internal/models"
	"save-money-go/internal/repository"
	"save-money-go/internal/session"
)

const minPasswordLength = 6

type loginRequest struct {
	Username string `json:"username"` // username or email
	Password string `json:"password"`
}

type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
}

// POST /api/auth/login
func (s *Server) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "invalid request body"})
		return
	}

	identifier := strings.TrimSpace(req.Username)
	password := strings.TrimSpace(req.Password)
	if identifier == "" || password == "" {
		c.JSON(400, gin.H{"success": false, "message": "username/email and password are required"})
		return
	}

	user, err := s.users.FindByUsernameOrEmail(identifier)
	if err != nil {
		c.JSON(400, gin.H{"success": false, "message": "user not found"})
		return
	}

	if err := s.hasher.Compare(user.Password, password); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "incorrect password"})
		return
	}

	now := time.Now()
	user.LastLogin = &now
	if err := s.users.Save(user); err != nil {
		c.JSON(500, gin.H{"success": false, "message": "login failed"})
		return
	}

	token, err := s.sessions.Create(c.Request.Context(), user.Username)
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "login failed"})
		return
	}
	s.setSessionCookie(c, token, int(s.cfg.SessionTTL.Seconds()))

	c.JSON(200, gin.H{
		"success": true,
		"message": "Login successful",
		"user":    user.Summary(),
	})
}

// POST /api/auth/register (also mounted at /api/auth/signup)
func (s *Server) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "invalid request body"})
		return
	}

	username := strings.TrimSpace(req.Username)
	email := strings.TrimSpace(req.Email)
	password := strings.TrimSpace(req.Password)

	if username == "" || email == "" || password == "" {
		c.JSON(400, gin.H{"success": false, "message": "username, email and password are required"})
		return
	}
	if len(password) < minPasswordLength {
		c.JSON(400, gin.H{"success": false, "message": "password must be at least 6 characters"})
		return
	}

	if taken, err := s.users.ExistsByUsername(username); err != nil {
		c.JSON(500, gin.H{"success": false, "message": "registration failed"})
		return
	} else if taken {
		c.JSON(400, gin.H{"success": false, "message": "Username already exists"})
		return
	}
	if taken, err := s.users.ExistsByEmail(email); err != nil {
		c.JSON(500, gin.H{"success": false, "message": "registration failed"})
		return
	} else if taken {
		c.JSON(400, gin.H{"success": false, "message": "Email already exists"})
		return
	}

	hashed, err := s.hasher.Hash(password)
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "registration failed"})
		return
	}

	user := models.User{
		Username: username,
		Password: hashed,
		Email:    email,
		Role:     models.RoleUser,
	}
	if err := s.users.Create(&user); err != nil {
		c.JSON(500, gin.H{"success": false, "message": "registration failed"})
		return
	}

	c.JSON(200, gin.H{
		"success": true,
		"message": "Registration successful",
		"user":    user.Summary(),
	})
}

// POST /api/auth/logout
func (s *Server) logout(c *gin.Context) {
	if token, err := c.Cookie(session.CookieName); err == nil && token != "" {
		_ = s.sessions.Destroy(c.Request.Context(), token)
	}
	s.setSessionCookie(c, "", -1)
	c.JSON(200, gin.H{"success": "true", "message": "Logout successful"})
}

// GET /api/auth/user/:id
func (s *Server) getUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	user, err := s.users.FindByID(id)
	if err == repository.ErrNotFound {
		c.JSON(404, gin.H{"error": "user not found"})
		return
	}
	if err != nil {
		c.JSON(500, gin.H{"error": "lookup failed"})
		return
	}

	c.JSON(200, gin.H{
		"id":        user.ID,
		"username":  user.Username,
		"email":     user.Email,
		"role":      user.Role,
		"createdAt": user.CreatedAt,
		"lastLogin": user.LastLogin,
	})
}

func (s *Server) setSessionCookie(c *gin.Context, token string, maxAge int) {
	c.SetCookie(session.CookieName, token, maxAge, "/", "", s.cfg.SecureCookie, true)
}
