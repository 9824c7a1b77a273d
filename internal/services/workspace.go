package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/gerald0n/finmoni-api/internal/database"
	"github.com/gerald0n/finmoni-api/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type WorkspaceService struct {
	db *database.DB
}

func NewWorkspaceService(db *database.DB) *WorkspaceService {
	return &WorkspaceService{db: db}
}

// UpdateWorkspaceInput carries optional fields; nil means leave unchanged.
type UpdateWorkspaceInput struct {
	Name        *string
	Description *string
}

func (s *WorkspaceService) Create(ctx context.Context, creatorID uuid.UUID, name string, description *string) (*models.Workspace, error) {
	tx, err := s.db.Pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var workspace models.Workspace
	err = tx.QueryRow(ctx, `
		INSERT INTO workspaces (name, description, creator_id)
		VALUES ($1, $2, $3)
		RETURNING id, name, description, creator_id, created_at, updated_at
	`, name, description, creatorID).Scan(
		&workspace.ID, &workspace.Name, &workspace.Description,
		&workspace.CreatorID, &workspace.CreatedAt, &workspace.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create workspace: %w", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO workspace_members (workspace_id, user_id, role)
		VALUES ($1, $2, $3)
	`, workspace.ID, creatorID, string(models.RoleOwner))
	if err != nil {
		return nil, fmt.Errorf("failed to add creator as owner: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &workspace, nil
}

func (s *WorkspaceService) GetUserWorkspaces(ctx context.Context, userID uuid.UUID) ([]models.Workspace, []models.WorkspaceRole, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT w.id, w.name, w.description, w.creator_id, w.created_at, w.updated_at, wm.role
		FROM workspaces w
		JOIN workspace_members wm ON w.id = wm.workspace_id
		WHERE wm.user_id = $1
		ORDER BY w.updated_at DESC
	`, userID)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	var workspaces []models.Workspace
	var roles []models.WorkspaceRole
	for rows.Next() {
		var w models.Workspace
		var role string
		if err := rows.Scan(&w.ID, &w.Name, &w.Description, &w.CreatorID, &w.CreatedAt, &w.UpdatedAt, &role); err != nil {
			return nil, nil, err
		}
		workspaces = append(workspaces, w)
		roles = append(roles, models.WorkspaceRole(role))
	}
	return workspaces, roles, rows.Err()
}

// GetForMember returns a workspace only when the caller is a member of it,
// along with the caller's membership row.
func (s *WorkspaceService) GetForMember(ctx context.Context, workspaceID, userID uuid.UUID) (*models.Workspace, *models.WorkspaceMember, error) {
	member, err := requireMember(ctx, s.db.Pool, workspaceID, userID)
	if err != nil {
		return nil, nil, err
	}

	var workspace models.Workspace
	err = s.db.Pool.QueryRow(ctx, `
		SELECT id, name, description, creator_id, created_at, updated_at
		FROM workspaces WHERE id = $1
	`, workspaceID).Scan(
		&workspace.ID, &workspace.Name, &workspace.Description,
		&workspace.CreatorID, &workspace.CreatedAt, &workspace.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, ErrNotMember
		}
		return nil, nil, err
	}

	return &workspace, member, nil
}

func (s *WorkspaceService) Update(ctx context.Context, workspaceID, userID uuid.UUID, input UpdateWorkspaceInput) (*models.Workspace, error) {
	if _, err := requireRole(ctx, s.db.Pool, workspaceID, userID, models.RoleOwner, models.RoleAdmin); err != nil {
		return nil, err
	}

	var workspace models.Workspace
	err := s.db.Pool.QueryRow(ctx, `
		UPDATE workspaces
		SET name = COALESCE($1, name), description = COALESCE($2, description), updated_at = NOW()
		WHERE id = $3
		RETURNING id, name, description, creator_id, created_at, updated_at
	`, input.Name, input.Description, workspaceID).Scan(
		&workspace.ID, &workspace.Name, &workspace.Description,
		&workspace.CreatorID, &workspace.CreatedAt, &workspace.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &workspace, nil
}

func (s *WorkspaceService) Delete(ctx context.Context, workspaceID, userID uuid.UUID) error {
	if _, err := requireRole(ctx, s.db.Pool, workspaceID, userID, models.RoleOwner); err != nil {
		return err
	}

	// members, invites, accounts and transactions go with it via FK cascades
	_, err := s.db.Pool.Exec(ctx, `DELETE FROM workspaces WHERE id = $1`, workspaceID)
	return err
}

func (s *WorkspaceService) GetMembers(ctx context.Context, workspaceID, userID uuid.UUID) ([]models.WorkspaceMember, error) {
	if _, err := requireMember(ctx, s.db.Pool, workspaceID, userID); err != nil {
		return nil, err
	}

	rows, err := s.db.Pool.Query(ctx, `
		SELECT wm.id, wm.workspace_id, wm.user_id, wm.role, wm.joined_at,
		       u.id, u.name, u.email
		FROM workspace_members wm
		JOIN users u ON wm.user_id = u.id
		WHERE wm.workspace_id = $1
		ORDER BY wm.joined_at
	`, workspaceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []models.WorkspaceMember
	for rows.Next() {
		var member models.WorkspaceMember
		var user models.User
		var role string
		if err := rows.Scan(
			&member.ID, &member.WorkspaceID, &member.UserID, &role, &member.JoinedAt,
			&user.ID, &user.Name, &user.Email,
		); err != nil {
			return nil, err
		}
		member.Role = models.WorkspaceRole(role)
		member.User = &user
		members = append(members, member)
	}
	return members, rows.Err()
}

// UpdateMemberRole changes a member's role. Only OWNER and ADMIN may do it,
// an ADMIN may only touch MEMBER/VIEWER targets, and the last OWNER can
// never be demoted. The owner count is re-checked under a row lock so
// concurrent demotions cannot leave the workspace ownerless.
func (s *WorkspaceService) UpdateMemberRole(ctx context.Context, workspaceID, actorID, memberID uuid.UUID, newRole models.WorkspaceRole) (*models.WorkspaceMember, error) {
	actor, err := requireRole(ctx, s.db.Pool, workspaceID, actorID, models.RoleOwner, models.RoleAdmin)
	if err != nil {
		return nil, err
	}

	tx, err := s.db.Pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	target, err := lockMember(ctx, tx, workspaceID, memberID)
	if err != nil {
		return nil, err
	}

	if actor.Role == models.RoleAdmin && target.Role.Level() >= models.RoleAdmin.Level() {
		return nil, ErrInsufficientRole
	}

	if target.Role == models.RoleOwner && newRole != models.RoleOwner {
		owners, err := lockOwners(ctx, tx, workspaceID)
		if err != nil {
			return nil, err
		}
		if owners <= 1 {
			return nil, ErrLastOwner
		}
	}

	var updated models.WorkspaceMember
	var role string
	err = tx.QueryRow(ctx, `
		UPDATE workspace_members SET role = $1
		WHERE id = $2
		RETURNING id, workspace_id, user_id, role, joined_at
	`, string(newRole), memberID).Scan(
		&updated.ID, &updated.WorkspaceID, &updated.UserID, &role, &updated.JoinedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update member role: %w", err)
	}
	updated.Role = models.WorkspaceRole(role)

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return &updated, nil
}

// RemoveMember removes a member under the same policy as UpdateMemberRole.
func (s *WorkspaceService) RemoveMember(ctx context.Context, workspaceID, actorID, memberID uuid.UUID) error {
	actor, err := requireRole(ctx, s.db.Pool, workspaceID, actorID, models.RoleOwner, models.RoleAdmin)
	if err != nil {
		return err
	}

	tx, err := s.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	target, err := lockMember(ctx, tx, workspaceID, memberID)
	if err != nil {
		return err
	}

	if actor.Role == models.RoleAdmin && target.Role.Level() >= models.RoleAdmin.Level() {
		return ErrInsufficientRole
	}

	if target.Role == models.RoleOwner {
		owners, err := lockOwners(ctx, tx, workspaceID)
		if err != nil {
			return err
		}
		if owners <= 1 {
			return ErrLastOwner
		}
	}

	if _, err := tx.Exec(ctx, `DELETE FROM workspace_members WHERE id = $1`, memberID); err != nil {
		return fmt.Errorf("failed to remove member: %w", err)
	}

	return tx.Commit(ctx)
}

// Leave removes the caller's own membership. The sole OWNER cannot leave.
func (s *WorkspaceService) Leave(ctx context.Context, workspaceID, userID uuid.UUID) error {
	tx, err := s.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	// the role driving the owner-count decision must be the committed one,
	// not a snapshot from before the transaction
	member, err := lockSelf(ctx, tx, workspaceID, userID)
	if err != nil {
		return err
	}

	if member.Role == models.RoleOwner {
		owners, err := lockOwners(ctx, tx, workspaceID)
		if err != nil {
			return err
		}
		if owners <= 1 {
			return ErrLastOwner
		}
	}

	if _, err := tx.Exec(ctx, `DELETE FROM workspace_members WHERE id = $1`, member.ID); err != nil {
		return fmt.Errorf("failed to leave workspace: %w", err)
	}

	return tx.Commit(ctx)
}

// lockMember fetches a member row by id scoped to a workspace, locking it
// for the remainder of the transaction.
func lockMember(ctx context.Context, q querier, workspaceID, memberID uuid.UUID) (*models.WorkspaceMember, error) {
	var m models.WorkspaceMember
	var role string
	err := q.QueryRow(ctx, `
		SELECT id, workspace_id, user_id, role, joined_at
		FROM workspace_members
		WHERE id = $1 AND workspace_id = $2
		FOR UPDATE
	`, memberID, workspaceID).Scan(&m.ID, &m.WorkspaceID, &m.UserID, &role, &m.JoinedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrMemberNotFound
		}
		return nil, fmt.Errorf("failed to look up member: %w", err)
	}
	m.Role = models.WorkspaceRole(role)
	return &m, nil
}

// lockSelf locks the caller's own member row by user id. A missing row
// yields ErrNotMember, same as requireMember.
func lockSelf(ctx context.Context, q querier, workspaceID, userID uuid.UUID) (*models.WorkspaceMember, error) {
	var m models.WorkspaceMember
	var role string
	err := q.QueryRow(ctx, `
		SELECT id, workspace_id, user_id, role, joined_at
		FROM workspace_members
		WHERE workspace_id = $1 AND user_id = $2
		FOR UPDATE
	`, workspaceID, userID).Scan(&m.ID, &m.WorkspaceID, &m.UserID, &role, &m.JoinedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotMember
		}
		return nil, fmt.Errorf("failed to look up membership: %w", err)
	}
	m.Role = models.WorkspaceRole(role)
	return &m, nil
}
