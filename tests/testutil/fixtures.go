package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/gerald0n/finmoni-api/internal/database"
	"github.com/gerald0n/finmoni-api/internal/models"
	"github.com/google/uuid"
)

// Fixtures provides factory methods for creating test data
type Fixtures struct {
	db      *database.DB
	counter int
}

// NewFixtures creates a new fixtures factory
func NewFixtures(db *database.DB) *Fixtures {
	return &Fixtures{db: db}
}

// CreateUser creates a test user with default values
func (f *Fixtures) CreateUser(t *testing.T, opts ...UserOption) *models.User {
	t.Helper()
	f.counter++

	user := &models.User{
		Email:    fmt.Sprintf("user%d@example.com", f.counter),
		Name:     fmt.Sprintf("Test User %d", f.counter),
		Provider: models.ProviderLocal,
	}

	for _, opt := range opts {
		opt(user)
	}

	ctx := context.Background()
	err := f.db.Pool.QueryRow(ctx, `
		INSERT INTO users (name, email, password_hash, provider, provider_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, name, email, password_hash, provider, provider_id, created_at, updated_at
	`, user.Name, user.Email, user.PasswordHash, user.Provider, user.ProviderID).Scan(
		&user.ID, &user.Name, &user.Email, &user.PasswordHash,
		&user.Provider, &user.ProviderID, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	return user
}

// UserOption configures a test user
type UserOption func(*models.User)

// WithEmail sets the user's email
func WithEmail(email string) UserOption {
	return func(u *models.User) {
		u.Email = email
	}
}

// WithName sets the user's name
func WithName(name string) UserOption {
	return func(u *models.User) {
		u.Name = name
	}
}

// CreateWorkspace creates a workspace with the given user as OWNER
func (f *Fixtures) CreateWorkspace(t *testing.T, creator *models.User, name string) *models.Workspace {
	t.Helper()
	ctx := context.Background()

	workspace := &models.Workspace{}
	err := f.db.Pool.QueryRow(ctx, `
		INSERT INTO workspaces (name, creator_id)
		VALUES ($1, $2)
		RETURNING id, name, description, creator_id, created_at, updated_at
	`, name, creator.ID).Scan(
		&workspace.ID, &workspace.Name, &workspace.Description,
		&workspace.CreatorID, &workspace.CreatedAt, &workspace.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("failed to create workspace: %v", err)
	}

	f.AddMember(t, workspace.ID, creator.ID, models.RoleOwner)
	return workspace
}

// AddMember inserts a membership row directly
func (f *Fixtures) AddMember(t *testing.T, workspaceID, userID uuid.UUID, role models.WorkspaceRole) *models.WorkspaceMember {
	t.Helper()
	ctx := context.Background()

	member := &models.WorkspaceMember{}
	var roleStr string
	err := f.db.Pool.QueryRow(ctx, `
		INSERT INTO workspace_members (workspace_id, user_id, role)
		VALUES ($1, $2, $3)
		RETURNING id, workspace_id, user_id, role, joined_at
	`, workspaceID, userID, string(role)).Scan(
		&member.ID, &member.WorkspaceID, &member.UserID, &roleStr, &member.JoinedAt,
	)
	if err != nil {
		t.Fatalf("failed to add member: %v", err)
	}
	member.Role = models.WorkspaceRole(roleStr)
	return member
}

// CreateBankAccount creates a bank account inside a workspace
func (f *Fixtures) CreateBankAccount(t *testing.T, workspaceID uuid.UUID, name string) *models.BankAccount {
	t.Helper()
	ctx := context.Background()

	account := &models.BankAccount{}
	err := f.db.Pool.QueryRow(ctx, `
		INSERT INTO bank_accounts (workspace_id, name)
		VALUES ($1, $2)
		RETURNING id, workspace_id, owner_id, name, initial_balance_cents, agency, account_number, created_at, updated_at
	`, workspaceID, name).Scan(
		&account.ID, &account.WorkspaceID, &account.OwnerID, &account.Name,
		&account.InitialBalanceCents, &account.Agency, &account.AccountNumber,
		&account.CreatedAt, &account.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("failed to create bank account: %v", err)
	}
	return account
}

// CreateInvite inserts a pending invite with a fixed token
func (f *Fixtures) CreateInvite(t *testing.T, workspaceID, senderID uuid.UUID, email, token string, role models.WorkspaceRole) *models.WorkspaceInvite {
	t.Helper()
	ctx := context.Background()

	invite := &models.WorkspaceInvite{}
	var roleStr, status string
	err := f.db.Pool.QueryRow(ctx, `
		INSERT INTO workspace_invites (workspace_id, sender_id, email, role, token, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, workspace_id, sender_id, email, role, token, message, status,
		          expires_at, accepted_at, accepted_by, created_at, updated_at
	`, workspaceID, senderID, email, string(role), token, time.Now().Add(24*time.Hour)).Scan(
		&invite.ID, &invite.WorkspaceID, &invite.SenderID, &invite.Email, &roleStr,
		&invite.Token, &invite.Message, &status, &invite.ExpiresAt,
		&invite.AcceptedAt, &invite.AcceptedBy, &invite.CreatedAt, &invite.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("failed to create invite: %v", err)
	}
	invite.Role = models.WorkspaceRole(roleStr)
	invite.Status = models.InviteStatus(status)
	return invite
}
