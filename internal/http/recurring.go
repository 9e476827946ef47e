package http

import (
	"github.com/gin-gonic/gin"

	"save-money-go/internal/models"
	"save-money-go/internal/normalize"
	"save-money-go/internal/repository"
)

type recurringRequest struct {
	Name      string  `json:"name" binding:"required"`
	Account   string  `json:"account"`
	Amount    float64 `json:"amount"`
	Date      string  `json:"date"`
	Frequency string  `json:"frequency"`
}

// resolveAccountRef matches the free-form account name against the caller's
// own accounts. The lookup goes through the ownership-scoped facade, so a
// template can never point at another user's account; an unmatched name
// leaves the reference nil.
func (s *Server) resolveAccountRef(owner *models.User, name string) *uint {
	if name == "" {
		return nil
	}
	a, err := s.accounts.FindMineByName(owner, name)
	if err != nil {
		return nil
	}
	return &a.ID
}

// POST /api/repeated-transactions
func (s *Server) createRecurring(c *gin.Context) {
	owner := currentUser(c)

	var req recurringRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	rt := models.RepeatedTransaction{
		Name:        req.Name,
		AccountName: req.Account,
		AccountID:   s.resolveAccountRef(owner, req.Account),
		Amount:      normalize.Amount(req.Amount),
		Date:        req.Date,
		Frequency:   req.Frequency,
	}
	if err := s.recurring.Create(owner, &rt); err != nil {
		c.JSON(500, gin.H{"error": "create failed"})
		return
	}
	c.JSON(200, rt)
}

// GET /api/repeated-transactions
func (s *Server) listRecurring(c *gin.Context) {
	owner := currentUser(c)

	templates, err := s.recurring.ListMine(owner)
	if err != nil {
		c.JSON(500, gin.H{"error": "list failed"})
		return
	}
	c.JSON(200, templates)
}

// PUT /api/repeated-transactions/:id
func (s *Server) updateRecurring(c *gin.Context) {
	owner := currentUser(c)
	id, ok := pathID(c)
	if !ok {
		return
	}

	rt, err := s.recurring.FindMine(owner, id)
	if err == repository.ErrNotFound {
		c.JSON(404, gin.H{"error": "not found"})
		return
	}
	if err != nil {
		c.JSON(500, gin.H{"error": "lookup failed"})
		return
	}

	var req recurringRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	rt.Name = req.Name
	rt.AccountName = req.Account
	rt.AccountID = s.resolveAccountRef(owner, req.Account)
	rt.Amount = normalize.Amount(req.Amount)
	rt.Date = req.Date
	rt.Frequency = req.Frequency

	if err := s.recurring.UpdateMine(owner, rt); err != nil {
		c.JSON(500, gin.H{"error": "update failed"})
		return
	}
	c.JSON(200, rt)
}

// DELETE /api/repeated-transactions/:id
func (s *Server) deleteRecurring(c *gin.Context) {
	owner := currentUser(c)
	id, ok := pathID(c)
	if !ok {
		return
	}

	err := s.recurring.DeleteMine(owner, id)
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
