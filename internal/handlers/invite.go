package handlers

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gerald0n/finmoni-api/internal/config"
	"github.com/gerald0n/finmoni-api/internal/middleware"
	"github.com/gerald0n/finmoni-api/internal/models"
	"github.com/gerald0n/finmoni-api/internal/services"
	"github.com/gerald0n/finmoni-api/pkg/dto"
	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
)

type InviteHandler struct {
	cfg              *config.Config
	inviteService    InviteServiceInterface
	workspaceService WorkspaceServiceInterface
	userService      UserServiceInterface
	emailService     EmailServiceInterface
}

func NewInviteHandler(
	cfg *config.Config,
	inviteService InviteServiceInterface,
	workspaceService WorkspaceServiceInterface,
	userService UserServiceInterface,
	emailService EmailServiceInterface,
) *InviteHandler {
	return &InviteHandler{
		cfg:              cfg,
		inviteService:    inviteService,
		workspaceService: workspaceService,
		userService:      userService,
		emailService:     emailService,
	}
}

func (h *InviteHandler) Invite(c *drift.Context) {
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

	var req dto.InviteMemberRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Email == "" {
		c.BadRequest("email is required")
		return
	}

	role := models.RoleMember
	if req.Role != "" {
		role = models.WorkspaceRole(req.Role)
		if !role.Valid() {
			c.BadRequest("invalid role")
			return
		}
	}

	ctx := context.Background()

	invite, err := h.inviteService.Invite(ctx, workspaceID, userID, services.InviteMemberInput{
		Email:   req.Email,
		Role:    role,
		Message: req.Message,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	h.notifyInvitee(ctx, workspaceID, userID, invite)

	resp := toInviteResponse(invite)
	resp.Token = invite.Token
	_ = c.JSON(201, resp)
}

// notifyInvitee sends the invite email best-effort. A broken SMTP setup
// must not fail the invite itself; the invitee can still see it in-app.
func (h *InviteHandler) notifyInvitee(ctx context.Context, workspaceID, inviterID uuid.UUID, invite *models.WorkspaceInvite) {
	if !h.emailService.IsConfigured() {
		return
	}

	workspace, _, err := h.workspaceService.GetForMember(ctx, workspaceID, inviterID)
	if err != nil {
		return
	}

	inviterName := "Someone"
	if inviter, err := h.userService.GetByID(ctx, inviterID); err == nil {
		inviterName = inviter.Name
	}

	message := ""
	if invite.Message != nil {
		message = *invite.Message
	}

	inviteURL := fmt.Sprintf("%s/invites?token=%s", h.cfg.BaseURL, invite.Token)

	go func() {
		_ = h.emailService.SendWorkspaceInvite(invite.Email, workspace.Name, inviterName, message, inviteURL)
	}()
}

func (h *InviteHandler) ListForWorkspace(c *drift.Context) {
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

	invites, err := h.inviteService.ListPendingForWorkspace(context.Background(), workspaceID, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	response := make([]dto.InviteResponse, len(invites))
	for i := range invites {
		response[i] = toInviteResponse(&invites[i])
	}

	_ = c.JSON(200, response)
}

func (h *InviteHandler) ListMine(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	invites, err := h.inviteService.ListPendingForUser(context.Background(), userID)
	if err != nil {
		c.InternalServerError("failed to get invites")
		return
	}

	response := make([]dto.InviteResponse, len(invites))
	for i := range invites {
		response[i] = toInviteResponse(&invites[i])
		response[i].Token = invites[i].Token
	}

	_ = c.JSON(200, response)
}

func (h *InviteHandler) Accept(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	var req dto.RespondInviteRequest
	if err := c.BindJSON(&req); err != nil || req.Token == "" {
		c.BadRequest("token is required")
		return
	}

	member, err := h.inviteService.Accept(context.Background(), userID, req.Token)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	_ = c.JSON(200, toMemberResponse(member))
}

func (h *InviteHandler) Decline(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	var req dto.RespondInviteRequest
	if err := c.BindJSON(&req); err != nil || req.Token == "" {
		c.BadRequest("token is required")
		return
	}

	if err := h.inviteService.Decline(context.Background(), userID, req.Token); err != nil {
		respondServiceError(c, err)
		return
	}

	_ = c.JSON(200, map[string]string{"message": "invite declined"})
}

func toInviteResponse(invite *models.WorkspaceInvite) dto.InviteResponse {
	resp := dto.InviteResponse{
		ID:          invite.ID,
		WorkspaceID: invite.WorkspaceID,
		Email:       invite.Email,
		Role:        string(invite.Role),
		Message:     invite.Message,
		Status:      string(invite.Status),
		ExpiresAt:   invite.ExpiresAt.Format(time.RFC3339),
		CreatedAt:   invite.CreatedAt.Format(time.RFC3339),
	}
	if invite.Workspace != nil {
		ws := toWorkspaceResponse(invite.Workspace, "")
		resp.Workspace = &ws
	}
	if invite.Sender != nil {
		sender := toUserResponse(invite.Sender)
		resp.Sender = &sender
	}
	return resp
}
