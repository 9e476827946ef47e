package http

import (
	"encoding/json"
	"io"

	"github.com/gin-gonic/gin"
	"github.com/xeipuuv/gojsonschema"

	"save-money-go/internal/models"
	"save-money-go/internal/normalize"
	"save-money-go/internal/repository"
)

type expenseRequest struct {
	Type          string  `json:"type"`
	Category      string  `json:"category" binding:"required"`
	Amount        float64 `json:"amount"`
	Note          string  `json:"note"`
	Place         string  `json:"place"`
	Date          string  `json:"date" binding:"required"`
	PaymentMethod string  `json:"paymentMethod"`
	IconKey       string  `json:"iconKey"`
}

func (s *Server) buildExpense(req *expenseRequest, out *models.Expense) error {
	occurred, err := normalize.Occurrence(req.Date)
	if err != nil {
		return err
	}
	out.Type = normalize.EntryKind(req.Type)
	out.Category = req.Category
	out.Amount = normalize.Amount(req.Amount)
	out.Note = req.Note
	out.Place = req.Place
	out.OccurredAt = occurred
	out.PaymentMethod = req.PaymentMethod
	out.IconKey = req.IconKey
	return nil
}

// POST /api/expenses
func (s *Server) createExpense(c *gin.Context) {
	var req expenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	s.createEntry(c, &req)
}

// POST /api/expenses/incomes — forces the entry kind regardless of payload.
func (s *Server) createIncomeEntry(c *gin.Context) {
	var req expenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	req.Type = "รายได้"
	s.createEntry(c, &req)
}

// POST /api/expenses/spendings
func (s *Server) createExpenseEntry(c *gin.Context) {
	var req expenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	req.Type = "ค่าใช้จ่าย"
	s.createEntry(c, &req)
}

func (s *Server) createEntry(c *gin.Context, req *expenseRequest) {
	owner := currentUser(c)

	var e models.Expense
	if err := s.buildExpense(req, &e); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	if err := s.expenses.Create(owner, &e); err != nil {
		c.JSON(500, gin.H{"error": "create failed"})
		return
	}
	c.JSON(200, e)
}

// GET /api/expenses
func (s *Server) listExpenses(c *gin.Context) {
	owner := currentUser(c)

	entries, err := s.expenses.ListMine(owner)
	if err != nil {
		c.JSON(500, gin.H{"error": "list failed"})
		return
	}
	c.JSON(200, entries)
}

// GET /api/expenses/range?start=...&end=...
func (s *Server) listExpensesByRange(c *gin.Context) {
	owner := currentUser(c)

	from, to, err := normalize.RangeBounds(c.Query("start"), c.Query("end"))
	if err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	entries, err := s.expenses.ListMineInRange(owner, from, to)
	if err != nil {
		c.JSON(500, gin.H{"error": "list failed"})
		return
	}
	c.JSON(200, entries)
}

// PUT /api/expenses/:id
func (s *Server) updateExpense(c *gin.Context) {
	owner := currentUser(c)
	id, ok := pathID(c)
	if !ok {
		return
	}

	e, err := s.expenses.FindMine(owner, id)
	if err == repository.ErrNotFound {
		c.JSON(404, gin.H{"error": "not found"})
		return
	}
	if err != nil {
		c.JSON(500, gin.H{"error": "lookup failed"})
		return
	}

	var req expenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	if err := s.buildExpense(&req, e); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	if err := s.expenses.UpdateMine(owner, e); err != nil {
		c.JSON(500, gin.H{"error": "update failed"})
		return
	}
	c.JSON(200, e)
}

// DELETE /api/expenses/:id
func (s *Server) deleteExpense(c *gin.Context) {
	owner := currentUser(c)
	id, ok := pathID(c)
	if !ok {
		return
	}

	err := s.expenses.DeleteMine(owner, id)
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

// POST /api/expenses/import validates a bulk payload against the entry schema
// before any record is written; a schema violation rejects the whole batch.
func (s *Server) importExpenses(c *gin.Context) {
	owner := currentUser(c)

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(400, gin.H{"error": "unreadable body"})
		return
	}

	result, err := s.importSchema.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		c.JSON(400, gin.H{"error": "invalid JSON payload"})
		return
	}
	if !result.Valid() {
		details := []string{}
		for _, e := range result.Errors() {
			details = append(details, e.String())
		}
		c.JSON(400, gin.H{"error": "schema_invalid", "details": details})
		return
	}

	var reqs []expenseRequest
	if err := json.Unmarshal(body, &reqs); err != nil {
		c.JSON(400, gin.H{"error": "invalid JSON payload"})
		return
	}

	created := make([]models.Expense, 0, len(reqs))
	for i := range reqs {
		var e models.Expense
		if err := s.buildExpense(&reqs[i], &e); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		if err := s.expenses.Create(owner, &e); err != nil {
			c.JSON(500, gin.H{"error": "import failed"})
			return
		}
		created = append(created, e)
	}

	c.JSON(200, gin.H{"imported": len(created), "entries": created})
}
