package handlers

import (
	"context"
	"time"

	"github.com/gerald0n/finmoni-api/internal/middleware"
	"github.com/gerald0n/finmoni-api/internal/models"
	"github.com/gerald0n/finmoni-api/internal/services"
	"github.com/gerald0n/finmoni-api/pkg/dto"
	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
)

type TransactionHandler struct {
	transactionService TransactionServiceInterface
}

func NewTransactionHandler(transactionService TransactionServiceInterface) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService}
}

func (h *TransactionHandler) Create(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	workspaceID, err := uuid.Parse(c.Param("workspaceId"))
	if err != nil {
		c.BadRequest("invalid workspace id")
		return
	}

	var req dto.CreateTransactionRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if req.Title == "" {
		c.BadRequest("title is required")
		return
	}

	trType := models.TransactionType(req.Type)
	if !trType.Valid() {
		c.BadRequest("type must be INCOME or EXPENSE")
		return
	}

	date, err := time.Parse(time.RFC3339, req.Date)
	if err != nil {
		c.BadRequest("date must be RFC 3339 formatted")
		return
	}

	if req.BankAccountID == uuid.Nil {
		c.BadRequest("bank_account_id is required")
		return
	}

	transaction, err := h.transactionService.Create(context.Background(), workspaceID, userID, services.CreateTransactionInput{
		Title:         req.Title,
		Description:   req.Description,
		Amount:        req.Amount,
		Date:          date,
		Type:          trType,
		BankAccountID: req.BankAccountID,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	_ = c.JSON(201, toTransactionResponse(transaction))
}

func (h *TransactionHandler) List(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	workspaceID, err := uuid.Parse(c.Param("workspaceId"))
	if err != nil {
		c.BadRequest("invalid workspace id")
		return
	}

	var bankAccountID *uuid.UUID
	if raw := c.QueryParam("bank_account_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.BadRequest("invalid bank_account_id filter")
			return
		}
		bankAccountID = &id
	}

	transactions, err := h.transactionService.List(context.Background(), workspaceID, userID, bankAccountID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	response := make([]dto.TransactionResponse, len(transactions))
	for i := range transactions {
		response[i] = toTransactionResponse(&transactions[i])
	}

	_ = c.JSON(200, response)
}

func (h *TransactionHandler) Get(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	workspaceID, err := uuid.Parse(c.Param("workspaceId"))
	if err != nil {
		c.BadRequest("invalid workspace id")
		return
	}

	transactionID, err := uuid.Parse(c.Param("transactionId"))
	if err != nil {
		c.BadRequest("invalid transaction id")
		return
	}

	transaction, err := h.transactionService.Get(context.Background(), workspaceID, transactionID, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	_ = c.JSON(200, toTransactionResponse(transaction))
}

func (h *TransactionHandler) Update(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	workspaceID, err := uuid.Parse(c.Param("workspaceId"))
	if err != nil {
		c.BadRequest("invalid workspace id")
		return
	}

	transactionID, err := uuid.Parse(c.Param("transactionId"))
	if err != nil {
		c.BadRequest("invalid transaction id")
		return
	}

	var req dto.UpdateTransactionRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if req.Title != nil && *req.Title == "" {
		c.BadRequest("title cannot be empty")
		return
	}

	input := services.UpdateTransactionInput{
		Title:         req.Title,
		Description:   req.Description,
		Amount:        req.Amount,
		BankAccountID: req.BankAccountID,
	}

	if req.Date != nil {
		date, err := time.Parse(time.RFC3339, *req.Date)
		if err != nil {
			c.BadRequest("date must be RFC 3339 formatted")
			return
		}
		input.Date = &date
	}

	if req.Type != nil {
		trType := models.TransactionType(*req.Type)
		if !trType.Valid() {
			c.BadRequest("type must be INCOME or EXPENSE")
			return
		}
		input.Type = &trType
	}

	transaction, err := h.transactionService.Update(context.Background(), workspaceID, transactionID, userID, input)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	_ = c.JSON(200, toTransactionResponse(transaction))
}

func (h *TransactionHandler) Delete(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	workspaceID, err := uuid.Parse(c.Param("workspaceId"))
	if err != nil {
		c.BadRequest("invalid workspace id")
		return
	}

	transactionID, err := uuid.Parse(c.Param("transactionId"))
	if err != nil {
		c.BadRequest("invalid transaction id")
		return
	}

	if err := h.transactionService.Delete(context.Background(), workspaceID, transactionID, userID); err != nil {
		respondServiceError(c, err)
		return
	}

	_ = c.JSON(200, map[string]string{"message": "transaction deleted"})
}

func toTransactionResponse(tr *models.Transaction) dto.TransactionResponse {
	resp := dto.TransactionResponse{
		ID:            tr.ID,
		BankAccountID: tr.BankAccountID,
		Title:         tr.Title,
		Description:   tr.Description,
		AmountCents:   tr.AmountCents,
		Date:          tr.Date.Format(time.RFC3339),
		Type:          string(tr.Type),
		CreatedAt:     tr.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     tr.UpdatedAt.Format(time.RFC3339),
	}
	if tr.BankAccount != nil {
		resp.BankAccount = &dto.AccountResponse{
			ID:   tr.BankAccount.ID,
			Name: tr.BankAccount.Name,
		}
	}
	if tr.CreatedBy != nil {
		creator := toUserResponse(tr.CreatedBy)
		resp.CreatedBy = &creator
	}
	return resp
}
