package http

import (
	"math"
	"math/rand"
	"time"

	"github.com/gin-gonic/gin"

	"save-money-go/internal/repository"
)

// GET /api/user/profile/:id
func (s *Server) userProfile(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	user, err := s.users.FindByID(id)
	if err == repository.ErrNotFound {
		c.Status(404)
		return
	}
	if err != nil {
		c.JSON(500, gin.H{"error": "lookup failed"})
		return
	}

	c.JSON(200, gin.H{
		"id":          user.ID,
		"email":       user.Email,
		"username":    user.Username,
		"role":        user.Role,
		"memberSince": user.CreatedAt,
		"lastLogin":   user.LastLogin,
	})
}

// GET /api/users/list
func (s *Server) usersList(c *gin.Context) {
	users, err := s.users.FindAll()
	if err != nil {
		c.JSON(400, gin.H{"error": "Unable to fetch users: " + err.Error()})
		return
	}

	list := make([]gin.H, 0, len(users))
	for _, u := range users {
		list = append(list, gin.H{
			"id":        u.ID,
			"username":  u.Username,
			"email":     u.Email,
			"role":      u.Role,
			"createdAt": u.CreatedAt,
			"lastLogin": u.LastLogin,
		})
	}

	c.JSON(200, gin.H{
		"users": list,
		"total": len(list),
		"page":  c.DefaultQuery("page", "0"),
		"size":  c.DefaultQuery("size", "10"),
	})
}

// GET /api/dashboard/stats
// Order and revenue figures are demo placeholders; only the user counts are
// real.
func (s *Server) dashboardStats(c *gin.Context) {
	totalUsers, err := s.users.Count()
	if err != nil {
		c.JSON(200, gin.H{
			"totalUsers":  0,
			"activeUsers": 0,
			"totalOrders": 0,
			"revenue":     0.0,
			"error":       "Unable to fetch stats",
		})
		return
	}
	activeUsers, _ := s.users.CountActiveToday()

	c.JSON(200, gin.H{
		"totalUsers":  totalUsers,
		"activeUsers": activeUsers,
		"totalOrders": 500 + rand.Intn(500),
		"revenue":     math.Round((50000+rand.Float64()*100000)*100) / 100,
		"userGrowth":  math.Round((5.0+rand.Float64()*15.0)*100) / 100,
	})
}

// GET /api/public/health
func (s *Server) health(c *gin.Context) {
	userCount, err := s.users.Count()
	if err != nil {
		c.JSON(200, gin.H{
			"status":   "WARNING",
			"message":  "API is running but database may have issues",
			"database": "Error: " + err.Error(),
		})
		return
	}

	c.JSON(200, gin.H{
		"status":    "OK",
		"message":   "API is running",
		"database":  "Connected",
		"userCount": userCount,
		"timestamp": time.Now().UnixMilli(),
	})
}
