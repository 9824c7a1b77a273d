package handlers

import (
	"context"

	"github.com/gerald0n/finmoni-api/internal/models"
	"github.com/gerald0n/finmoni-api/internal/oauth"
	"github.com/gerald0n/finmoni-api/internal/services"
	"github.com/google/uuid"
)

// AuthServiceInterface defines the methods used by handlers from AuthService
type AuthServiceInterface interface {
	SignUp(ctx context.Context, name, email, password string) (*models.User, error)
	SignIn(ctx context.Context, email, password string) (*services.TokenPair, error)
}

// UserServiceInterface defines the methods used by handlers from UserService
type UserServiceInterface interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	FindOrCreateFromOAuth(ctx context.Context, info *oauth.UserInfo) (*models.User, error)
}

// JWTServiceInterface defines the methods used by handlers from JWTService
type JWTServiceInterface interface {
	GenerateTokenPair(userID uuid.UUID, email string) (*services.TokenPair, error)
	ValidateRefreshToken(token string) (uuid.UUID, error)
}

// WorkspaceServiceInterface defines the methods used by handlers from WorkspaceService
type WorkspaceServiceInterface interface {
	Create(ctx context.Context, creatorID uuid.UUID, name string, description *string) (*models.Workspace, error)
	GetUserWorkspaces(ctx context.Context, userID uuid.UUID) ([]models.Workspace, []models.WorkspaceRole, error)
	GetForMember(ctx context.Context, workspaceID, userID uuid.UUID) (*models.Workspace, *models.WorkspaceMember, error)
	Update(ctx context.Context, workspaceID, userID uuid.UUID, input services.UpdateWorkspaceInput) (*models.Workspace, error)
	Delete(ctx context.Context, workspaceID, userID uuid.UUID) error
	GetMembers(ctx context.Context, workspaceID, userID uuid.UUID) ([]models.WorkspaceMember, error)
	UpdateMemberRole(ctx context.Context, workspaceID, actorID, memberID uuid.UUID, newRole models.WorkspaceRole) (*models.WorkspaceMember, error)
	RemoveMember(ctx context.Context, workspaceID, actorID, memberID uuid.UUID) error
	Leave(ctx context.Context, workspaceID, userID uuid.UUID) error
}

// InviteServiceInterface defines the methods used by handlers from InviteService
type InviteServiceInterface interface {
	Invite(ctx context.Context, workspaceID, inviterID uuid.UUID, input services.InviteMemberInput) (*models.WorkspaceInvite, error)
	Accept(ctx context.Context, userID uuid.UUID, token string) (*models.WorkspaceMember, error)
	Decline(ctx context.Context, userID uuid.UUID, token string) error
	ListPendingForUser(ctx context.Context, userID uuid.UUID) ([]models.WorkspaceInvite, error)
	ListPendingForWorkspace(ctx context.Context, workspaceID, userID uuid.UUID) ([]models.WorkspaceInvite, error)
}

// AccountServiceInterface defines the methods used by handlers from AccountService
type AccountServiceInterface interface {
	Create(ctx context.Context, workspaceID, userID uuid.UUID, input services.CreateAccountInput) (*models.BankAccount, error)
	List(ctx context.Context, workspaceID, userID uuid.UUID) ([]models.BankAccount, error)
	Get(ctx context.Context, workspaceID, accountID, userID uuid.UUID) (*models.BankAccount, error)
	Update(ctx context.Context, workspaceID, accountID, userID uuid.UUID, input services.UpdateAccountInput) (*models.BankAccount, error)
	Delete(ctx context.Context, workspaceID, accountID, userID uuid.UUID) error
}

// TransactionServiceInterface defines the methods used by handlers from TransactionService
type TransactionServiceInterface interface {
	Create(ctx context.Context, workspaceID, userID uuid.UUID, input services.CreateTransactionInput) (*models.Transaction, error)
	List(ctx context.Context, workspaceID, userID uuid.UUID, bankAccountID *uuid.UUID) ([]models.Transaction, error)
	Get(ctx context.Context, workspaceID, transactionID, userID uuid.UUID) (*models.Transaction, error)
	Update(ctx context.Context, workspaceID, transactionID, userID uuid.UUID, input services.UpdateTransactionInput) (*models.Transaction, error)
	Delete(ctx context.Context, workspaceID, transactionID, userID uuid.UUID) error
}

// EmailServiceInterface defines the methods used by handlers from EmailService
type EmailServiceInterface interface {
	IsConfigured() bool
	SendWorkspaceInvite(to, workspaceName, inviterName, message, inviteURL string) error
}
