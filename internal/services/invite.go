package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/gerald0n/finmoni-api/internal/database"
	"github.com/gerald0n/finmoni-api/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const inviteTTL = 7 * 24 * time.Hour

type InviteService struct {
	db *database.DB
}

func NewInviteService(db *database.DB) *InviteService {
	return &InviteService{db: db}
}

type InviteMemberInput struct {
	Email   string
	Role    models.WorkspaceRole
	Message *string
}

// Invite creates a PENDING invite addressed by email. The returned invite
// carries the bearer token used to redeem it.
func (s *InviteService) Invite(ctx context.Context, workspaceID, inviterID uuid.UUID, input InviteMemberInput) (*models.WorkspaceInvite, error) {
	if _, err := requireRole(ctx, s.db.Pool, workspaceID, inviterID, models.RoleOwner, models.RoleAdmin); err != nil {
		return nil, err
	}

	var isMember bool
	err := s.db.Pool.QueryRow(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM workspace_members wm
			JOIN users u ON wm.user_id = u.id
			WHERE wm.workspace_id = $1 AND u.email = $2
		)
	`, workspaceID, input.Email).Scan(&isMember)
	if err != nil {
		return nil, fmt.Errorf("failed to check membership: %w", err)
	}
	if isMember {
		return nil, ErrAlreadyMember
	}

	var hasPending bool
	err = s.db.Pool.QueryRow(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM workspace_invites
			WHERE workspace_id = $1 AND email = $2 AND status = $3 AND expires_at > NOW()
		)
	`, workspaceID, input.Email, string(models.InviteStatusPending)).Scan(&hasPending)
	if err != nil {
		return nil, fmt.Errorf("failed to check pending invites: %w", err)
	}
	if hasPending {
		return nil, ErrInvitePending
	}

	token, err := generateInviteToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate invite token: %w", err)
	}
	expiresAt := time.Now().Add(inviteTTL)

	var invite models.WorkspaceInvite
	var role, status string
	err = s.db.Pool.QueryRow(ctx, `
		INSERT INTO workspace_invites (workspace_id, sender_id, email, role, token, message, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, workspace_id, sender_id, email, role, token, message, status,
		          expires_at, accepted_at, accepted_by, created_at, updated_at
	`, workspaceID, inviterID, input.Email, string(input.Role), token, input.Message, expiresAt).Scan(
		&invite.ID, &invite.WorkspaceID, &invite.SenderID, &invite.Email, &role,
		&invite.Token, &invite.Message, &status, &invite.ExpiresAt,
		&invite.AcceptedAt, &invite.AcceptedBy, &invite.CreatedAt, &invite.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create invite: %w", err)
	}
	invite.Role = models.WorkspaceRole(role)
	invite.Status = models.InviteStatus(status)

	return &invite, nil
}

// Accept redeems an invite token for the calling user. Marking the invite
// accepted and inserting the member happen in one transaction; a concurrent
// accept of the same token finds the row no longer PENDING and fails.
func (s *InviteService) Accept(ctx context.Context, userID uuid.UUID, token string) (*models.WorkspaceMember, error) {
	var inviteID, workspaceID uuid.UUID
	var inviteRole string
	err := s.db.Pool.QueryRow(ctx, `
		SELECT id, workspace_id, role FROM workspace_invites
		WHERE token = $1 AND status = $2 AND expires_at > NOW()
	`, token, string(models.InviteStatusPending)).Scan(&inviteID, &workspaceID, &inviteRole)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrInviteNotFound
		}
		return nil, fmt.Errorf("failed to look up invite: %w", err)
	}

	tx, err := s.db.Pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	// re-check status and expiry under lock: only one accept may win, and
	// an invite that expired since the lookup stays unredeemable
	var status string
	var live bool
	err = tx.QueryRow(ctx, `
		SELECT status, expires_at > NOW() FROM workspace_invites WHERE id = $1 FOR UPDATE
	`, inviteID).Scan(&status, &live)
	if err != nil {
		return nil, fmt.Errorf("failed to lock invite: %w", err)
	}
	if models.InviteStatus(status) != models.InviteStatusPending || !live {
		return nil, ErrInviteNotFound
	}

	var isMember bool
	err = tx.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM workspace_members WHERE workspace_id = $1 AND user_id = $2)
	`, workspaceID, userID).Scan(&isMember)
	if err != nil {
		return nil, fmt.Errorf("failed to check membership: %w", err)
	}
	if isMember {
		return nil, ErrAlreadyMember
	}

	_, err = tx.Exec(ctx, `
		UPDATE workspace_invites
		SET status = $1, accepted_at = NOW(), accepted_by = $2, updated_at = NOW()
		WHERE id = $3
	`, string(models.InviteStatusAccepted), userID, inviteID)
	if err != nil {
		return nil, fmt.Errorf("failed to update invite: %w", err)
	}

	var member models.WorkspaceMember
	var memberRole string
	err = tx.QueryRow(ctx, `
		INSERT INTO workspace_members (workspace_id, user_id, role)
		VALUES ($1, $2, $3)
		RETURNING id, workspace_id, user_id, role, joined_at
	`, workspaceID, userID, inviteRole).Scan(
		&member.ID, &member.WorkspaceID, &member.UserID, &memberRole, &member.JoinedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to add member: %w", err)
	}
	member.Role = models.WorkspaceRole(memberRole)

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return &member, nil
}

// Decline flips a pending invite addressed to the caller's email to
// DECLINED. No membership side effects.
func (s *InviteService) Decline(ctx context.Context, userID uuid.UUID, token string) error {
	var email string
	err := s.db.Pool.QueryRow(ctx, `SELECT email FROM users WHERE id = $1`, userID).Scan(&email)
	if err != nil {
		return fmt.Errorf("failed to look up user: %w", err)
	}

	result, err := s.db.Pool.Exec(ctx, `
		UPDATE workspace_invites SET status = $1, updated_at = NOW()
		WHERE token = $2 AND email = $3 AND status = $4 AND expires_at > NOW()
	`, string(models.InviteStatusDeclined), token, email, string(models.InviteStatusPending))
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrInviteNotFound
	}
	return nil
}

// ListPendingForUser returns live invites addressed to the caller's
// registered email, newest first. Tokens are included so the client can
// redeem them.
func (s *InviteService) ListPendingForUser(ctx context.Context, userID uuid.UUID) ([]models.WorkspaceInvite, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT wi.id, wi.workspace_id, wi.sender_id, wi.email, wi.role, wi.token,
		       wi.message, wi.status, wi.expires_at, wi.created_at,
		       w.id, w.name, w.description,
		       sender.id, sender.name, sender.email
		FROM workspace_invites wi
		JOIN users u ON u.email = wi.email
		JOIN workspaces w ON wi.workspace_id = w.id
		JOIN users sender ON wi.sender_id = sender.id
		WHERE u.id = $1 AND wi.status = $2 AND wi.expires_at > NOW()
		ORDER BY wi.created_at DESC
	`, userID, string(models.InviteStatusPending))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanInvites(rows)
}

// ListPendingForWorkspace returns a workspace's live invites for OWNER/ADMIN
// callers.
func (s *InviteService) ListPendingForWorkspace(ctx context.Context, workspaceID, userID uuid.UUID) ([]models.WorkspaceInvite, error) {
	if _, err := requireRole(ctx, s.db.Pool, workspaceID, userID, models.RoleOwner, models.RoleAdmin); err != nil {
		return nil, err
	}

	rows, err := s.db.Pool.Query(ctx, `
		SELECT wi.id, wi.workspace_id, wi.sender_id, wi.email, wi.role, wi.token,
		       wi.message, wi.status, wi.expires_at, wi.created_at,
		       w.id, w.name, w.description,
		       sender.id, sender.name, sender.email
		FROM workspace_invites wi
		JOIN workspaces w ON wi.workspace_id = w.id
		JOIN users sender ON wi.sender_id = sender.id
		WHERE wi.workspace_id = $1 AND wi.status = $2 AND wi.expires_at > NOW()
		ORDER BY wi.created_at DESC
	`, workspaceID, string(models.InviteStatusPending))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanInvites(rows)
}

func scanInvites(rows pgx.Rows) ([]models.WorkspaceInvite, error) {
	var invites []models.WorkspaceInvite
	for rows.Next() {
		var invite models.WorkspaceInvite
		var workspace models.Workspace
		var sender models.User
		var role, status string
		if err := rows.Scan(
			&invite.ID, &invite.WorkspaceID, &invite.SenderID, &invite.Email, &role,
			&invite.Token, &invite.Message, &status, &invite.ExpiresAt, &invite.CreatedAt,
			&workspace.ID, &workspace.Name, &workspace.Description,
			&sender.ID, &sender.Name, &sender.Email,
		); err != nil {
			return nil, err
		}
		invite.Role = models.WorkspaceRole(role)
		invite.Status = models.InviteStatus(status)
		invite.Workspace = &workspace
		invite.Sender = &sender
		invites = append(invites, invite)
	}
	return invites, rows.Err()
}

// generateInviteToken returns 256 bits of entropy hex-encoded. The token is
// the sole credential needed to accept or decline an invite.
func generateInviteToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
