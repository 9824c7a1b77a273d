package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/gerald0n/finmoni-api/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// querier is satisfied by both the connection pool and pgx.Tx, so the
// membership guard can run inside or outside a transaction.
type querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// requireMember resolves the caller's membership row for a workspace.
// A missing row yields ErrNotMember regardless of whether the workspace
// exists, so non-members learn nothing from the response.
func requireMember(ctx context.Context, q querier, workspaceID, userID uuid.UUID) (*models.WorkspaceMember, error) {
	var m models.WorkspaceMember
	var role string
	err := q.QueryRow(ctx, `
		SELECT id, workspace_id, user_id, role, joined_at
		FROM workspace_members
		WHERE workspace_id = $1 AND user_id = $2
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

// requireRole additionally checks the member's role against an allow-set and
// returns the member row so callers can compare privilege levels.
func requireRole(ctx context.Context, q querier, workspaceID, userID uuid.UUID, allowed ...models.WorkspaceRole) (*models.WorkspaceMember, error) {
	member, err := requireMember(ctx, q, workspaceID, userID)
	if err != nil {
		return nil, err
	}
	for _, role := range allowed {
		if member.Role == role {
			return member, nil
		}
	}
	return nil, ErrInsufficientRole
}

// lockOwners locks the OWNER rows of a workspace and returns how many there
// are. Run inside a transaction before any mutation that could demote or
// remove an owner, so concurrent mutations cannot race the count below one.
func lockOwners(ctx context.Context, q querier, workspaceID uuid.UUID) (int, error) {
	rows, err := q.Query(ctx, `
		SELECT id FROM workspace_members
		WHERE workspace_id = $1 AND role = $2
		FOR UPDATE
	`, workspaceID, string(models.RoleOwner))
	if err != nil {
		return 0, fmt.Errorf("failed to lock owners: %w", err)
	}
	defer rows.Close()

	count := 0
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return 0, err
		}
		count++
	}
	return count, rows.Err()
}
