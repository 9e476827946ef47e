package http

import (
	"strings"

	"github.com/gin-gonic/gin"

	"save-money-go/internal/models"
	"save-money-go/internal/normalize"
	"save-money-go/internal/repository"
)

type accountRequest struct {
	Name    string  `json:"name" binding:"required"`
	Type    string  `json:"type"`
	Amount  float64 `json:"amount"`
	IconKey string  `json:"iconKey"`
}

// POST /api/accounts
func (s *Server) createAccount(c *gin.Context) {
	owner := currentUser(c)

	var req accountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	a := models.Account{
		Name:    strings.TrimSpace(req.Name),
		Type:    normalize.AccountKind(req.Type),
		Amount:  normalize.Amount(req.Amount),
		IconKey: req.IconKey,
	}
	if err := s.accounts.Create(owner, &a); err != nil {
		c.JSON(500, gin.H{"error": "create failed"})
		return
	}

	c.JSON(200, a)
}

// GET /api/accounts
func (s *Server) listAccounts(c *gin.Context) {
	owner := currentUser(c)

	accounts, err := s.accounts.ListMine(owner)
	if err != nil {
		c.JSON(500, gin.H{"error": "list failed"})
		return
	}
	c.JSON(200, accounts)
}

// PUT /api/accounts/:id
func (s *Server) updateAccount(c *gin.Context) {
	owner := currentUser(c)
	id, ok := pathID(c)
	if !ok {
		return
	}

	a, err := s.accounts.FindMine(owner, id)
	if err == repository.ErrNotFound {
		c.JSON(404, gin.H{"error": "not found"})
		return
	}
	if err != nil {
		c.JSON(500, gin.H{"error": "lookup failed"})
		return
	}

	var req accountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	a.Name = strings.TrimSpace(req.Name)
	a.Type = normalize.AccountKind(req.Type)
	a.Amount = normalize.Amount(req.Amount)
	a.IconKey = req.IconKey

	if err := s.accounts.UpdateMine(owner, a); err != nil {
		c.JSON(500, gin.H{"error": "update failed"})
		return
	}
	c.JSON(200, a)
}

// DELETE /api/accounts/:id
func (s *Server) deleteAccount(c *gin.Context) {
	owner := currentUser(c)
	id, ok := pathID(c)
	if !ok {
		return
	}

	err := s.accounts.DeleteMine(owner, id)
	if err == repository.ErrNotFound {
		c.JSON(404, gin.H{"error": "not found"})
		return
	}
	if err != nil {
		c.JSON(500, gin.H{"error": "delete failed"})
		return
	}
	c.Status(204)
}
