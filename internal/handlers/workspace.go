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

type WorkspaceHandler struct {
	workspaceService WorkspaceServiceInterface
}

func NewWorkspaceHandler(workspaceService WorkspaceServiceInterface) *WorkspaceHandler {
	return &WorkspaceHandler{workspaceService: workspaceService}
}

func (h *WorkspaceHandler) Create(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	var req dto.CreateWorkspaceRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if req.Name == "" {
		c.BadRequest("name is required")
		return
	}
	if len(req.Name) > 100 {
		c.BadRequest("name must be at most 100 characters")
		return
	}

	workspace, err := h.workspaceService.Create(context.Background(), userID, req.Name, req.Description)
	if err != nil {
		c.InternalServerError("failed to create workspace")
		return
	}

	_ = c.JSON(201, toWorkspaceResponse(workspace, models.RoleOwner))
}

func (h *WorkspaceHandler) List(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	workspaces, roles, err := h.workspaceService.GetUserWorkspaces(context.Background(), userID)
	if err != nil {
		c.InternalServerError("failed to get workspaces")
		return
	}

	response := make([]dto.WorkspaceResponse, len(workspaces))
	for i := range workspaces {
		response[i] = toWorkspaceResponse(&workspaces[i], roles[i])
	}

	_ = c.JSON(200, response)
}

func (h *WorkspaceHandler) Get(c *drift.Context) {
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

	workspace, member, err := h.workspaceService.GetForMember(context.Background(), workspaceID, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	_ = c.JSON(200, toWorkspaceResponse(workspace, member.Role))
}

func (h *WorkspaceHandler) Update(c *drift.Context) {
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

	var req dto.UpdateWorkspaceRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if req.Name != nil && (*req.Name == "" || len(*req.Name) > 100) {
		c.BadRequest("name must be between 1 and 100 characters")
		return
	}

	workspace, err := h.workspaceService.Update(context.Background(), workspaceID, userID, services.UpdateWorkspaceInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	_ = c.JSON(200, toWorkspaceResponse(workspace, ""))
}

func (h *WorkspaceHandler) Delete(c *drift.Context) {
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

	if err := h.workspaceService.Delete(context.Background(), workspaceID, userID); err != nil {
		respondServiceError(c, err)
		return
	}

	_ = c.JSON(200, map[string]string{"message": "workspace deleted"})
}

func (h *WorkspaceHandler) GetMembers(c *drift.Context) {
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

	members, err := h.workspaceService.GetMembers(context.Background(), workspaceID, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	response := make([]dto.MemberResponse, len(members))
	for i := range members {
		response[i] = toMemberResponse(&members[i])
	}

	_ = c.JSON(200, response)
}

func (h *WorkspaceHandler) UpdateMemberRole(c *drift.Context) {
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

	memberID, err := uuid.Parse(c.Param("memberId"))
	if err != nil {
		c.BadRequest("invalid member id")
		return
	}

	var req dto.UpdateMemberRoleRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	role := models.WorkspaceRole(req.Role)
	if !role.Valid() {
		c.BadRequest("invalid role")
		return
	}

	member, err := h.workspaceService.UpdateMemberRole(context.Background(), workspaceID, userID, memberID, role)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	_ = c.JSON(200, toMemberResponse(member))
}

func (h *WorkspaceHandler) RemoveMember(c *drift.Context) {
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

	memberID, err := uuid.Parse(c.Param("memberId"))
	if err != nil {
		c.BadRequest("invalid member id")
		return
	}

	if err := h.workspaceService.RemoveMember(context.Background(), workspaceID, userID, memberID); err != nil {
		respondServiceError(c, err)
		return
	}

	_ = c.JSON(200, map[string]string{"message": "member removed"})
}

func (h *WorkspaceHandler) Leave(c *drift.Context) {
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

	if err := h.workspaceService.Leave(context.Background(), workspaceID, userID); err != nil {
		respondServiceError(c, err)
		return
	}

	_ = c.JSON(200, map[string]string{"message": "left workspace"})
}

func toWorkspaceResponse(w *models.Workspace, role models.WorkspaceRole) dto.WorkspaceResponse {
	return dto.WorkspaceResponse{
		ID:          w.ID,
		Name:        w.Name,
		Description: w.Description,
		CreatorID:   w.CreatorID,
		Role:        string(role),
		CreatedAt:   w.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   w.UpdatedAt.Format(time.RFC3339),
	}
}

func toMemberResponse(m *models.WorkspaceMember) dto.MemberResponse {
	resp := dto.MemberResponse{
		ID:       m.ID,
		UserID:   m.UserID,
		Role:     string(m.Role),
		JoinedAt: m.JoinedAt.Format(time.RFC3339),
	}
	if m.User != nil {
		resp.User = toUserResponse(m.User)
	}
	return resp
}
