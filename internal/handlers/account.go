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

type AccountHandler struct {
	accountService AccountServiceInterface
}

func NewAccountHandler(accountService AccountServiceInterface) *AccountHandler {
	return &AccountHandler{accountService: accountService}
}

func (h *AccountHandler) Create(c *drift.Context) {
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

	var req dto.CreateAccountRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if req.Name == "" {
		c.BadRequest("name is required")
		return
	}

	account, err := h.accountService.Create(context.Background(), workspaceID, userID, services.CreateAccountInput{
		Name:           req.Name,
		InitialBalance: req.InitialBalance,
		Agency:         req.Agency,
		AccountNumber:  req.AccountNumber,
		OwnerID:        req.OwnerID,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	_ = c.JSON(201, toAccountResponse(account))
}

func (h *AccountHandler) List(c *drift.Context) {
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

	accounts, err := h.accountService.List(context.Background(), workspaceID, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	response := make([]dto.AccountResponse, len(accounts))
	for i := range accounts {
		response[i] = toAccountResponse(&accounts[i])
	}

	_ = c.JSON(200, response)
}

func (h *AccountHandler) Get(c *drift.Context) {
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

	accountID, err := uuid.Parse(c.Param("accountId"))
	if err != nil {
		c.BadRequest("invalid account id")
		return
	}

	account, err := h.accountService.Get(context.Background(), workspaceID, accountID, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	_ = c.JSON(200, toAccountResponse(account))
}

func (h *AccountHandler) Update(c *drift.Context) {
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

	accountID, err := uuid.Parse(c.Param("accountId"))
	if err != nil {
		c.BadRequest("invalid account id")
		return
	}

	var req dto.UpdateAccountRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if req.Name != nil && *req.Name == "" {
		c.BadRequest("name cannot be empty")
		return
	}

	account, err := h.accountService.Update(context.Background(), workspaceID, accountID, userID, services.UpdateAccountInput{
		Name:           req.Name,
		InitialBalance: req.InitialBalance,
		Agency:         req.Agency,
		AccountNumber:  req.AccountNumber,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	_ = c.JSON(200, toAccountResponse(account))
}

func (h *AccountHandler) Delete(c *drift.Context) {
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

	accountID, err := uuid.Parse(c.Param("accountId"))
	if err != nil {
		c.BadRequest("invalid account id")
		return
	}

	if err := h.accountService.Delete(context.Background(), workspaceID, accountID, userID); err != nil {
		respondServiceError(c, err)
		return
	}

	_ = c.JSON(200, map[string]string{"message": "account deleted"})
}

func toAccountResponse(account *models.BankAccount) dto.AccountResponse {
	return dto.AccountResponse{
		ID:                  account.ID,
		WorkspaceID:         account.WorkspaceID,
		OwnerID:             account.OwnerID,
		Name:                account.Name,
		InitialBalanceCents: account.InitialBalanceCents,
		Agency:              account.Agency,
		AccountNumber:       account.AccountNumber,
		CreatedAt:           account.CreatedAt.Format(time.RFC3339),
		UpdatedAt:           account.UpdatedAt.Format(time.RFC3339),
	}
}
