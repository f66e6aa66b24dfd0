package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"expensetracker/internal/core"
	"expensetracker/internal/storage"
)

type expenseJSON struct {
	ID          int64   `json:"id"`
	Date        string  `json:"date"`
	Category    string  `json:"category"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description,omitempty"`
}

func toExpenseJSON(rec core.ExpenseRecord) expenseJSON {
	return expenseJSON{
		ID:          rec.ID,
		Date:        rec.Date.String(),
		Category:    rec.Category,
		Amount:      rec.Amount.Units(),
		Description: rec.Description,
	}
}

func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request, ownerID string) {
	records, err := s.service.ListExpenses(r.Context(), ownerID)
	if err != nil {
		slog.ErrorContext(r.Context(), "List expenses failed", "error", err, "owner_id", ownerID)
		InternalServerError().Write(w)
		return
	}

	out := make([]expenseJSON, 0, len(records))
	for _, rec := range records {
		out = append(out, toExpenseJSON(rec))
	}

	NewJSONResponse().Body(map[string]any{
		"expenses": out,
		"count":    len(out),
	}).Write(w)
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request, ownerID string) {
	parser := NewRequestBodyParser(r)
	if err := parser.Parse(); err != nil {
		slog.WarnContext(r.Context(), "Unparseable request body", "error", err)
		BadRequestError("malformed request body").Write(w)
		return
	}

	rec, err := core.NewExpenseRecord(
		ownerID,
		parser.Get("date"),
		parser.Get("category"),
		parser.Get("amount"),
		parser.Get("description"),
	)
	if err != nil {
		if verr, ok := core.AsValidationError(err); ok {
			ValidationErrorResponse(verr).Write(w)
			return
		}
		BadRequestError("invalid expense").Write(w)
		return
	}

	saved, err := s.service.CreateExpense(r.Context(), rec)
	if err != nil {
		slog.ErrorContext(r.Context(), "Create expense failed", "error", err, "owner_id", ownerID)
		InternalServerError().Write(w)
		return
	}

	s.invalidateOwner(ownerID)

	NewJSONResponse().
		Status(http.StatusCreated).
		Body(map[string]any{
			"message": "Expense added successfully",
			"expense": toExpenseJSON(saved),
		}).
		Write(w)
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request, ownerID string) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		BadRequestError("invalid expense id").Write(w)
		return
	}

	if err := s.service.DeleteExpense(r.Context(), id, ownerID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			NotFoundError("expense not found").Write(w)
			return
		}
		slog.ErrorContext(r.Context(), "Delete expense failed", "error", err, "expense_id", id)
		InternalServerError().Write(w)
		return
	}

	s.invalidateOwner(ownerID)

	NewJSONResponse().Body(map[string]any{
		"message": "Expense deleted successfully",
		"id":      id,
	}).Write(w)
}

// handleTest is a connectivity probe that also reports the record count for
// the caller's data set.
func (s *Server) handleTest(w http.ResponseWriter, r *http.Request, ownerID string) {
	records, err := s.service.ListExpenses(r.Context(), ownerID)
	if err != nil {
		slog.ErrorContext(r.Context(), "Test probe failed", "error", err)
		InternalServerError().Write(w)
		return
	}

	NewJSONResponse().Body(map[string]any{
		"status":  "ok",
		"records": len(records),
	}).Write(w)
}
