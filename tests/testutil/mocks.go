package testutil

import (
	"context"

	"github.com/gerald0n/finmoni-api/internal/models"
	"github.com/gerald0n/finmoni-api/internal/oauth"
	"github.com/gerald0n/finmoni-api/internal/services"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockUserService mocks the UserService
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) FindOrCreateFromOAuth(ctx context.Context, info *oauth.UserInfo) (*models.User, error) {
	args := m.Called(ctx, info)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// MockAuthService mocks the AuthService
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) SignUp(ctx context.Context, name, email, password string) (*models.User, error) {
	args := m.Called(ctx, name, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAuthService) SignIn(ctx context.Context, email, password string) (*services.TokenPair, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.TokenPair), args.Error(1)
}

// MockWorkspaceService mocks the WorkspaceService
type MockWorkspaceService struct {
	mock.Mock
}

func (m *MockWorkspaceService) Create(ctx context.Context, creatorID uuid.UUID, name string, description *string) (*models.Workspace, error) {
	args := m.Called(ctx, creatorID, name, description)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Workspace), args.Error(1)
}

func (m *MockWorkspaceService) GetUserWorkspaces(ctx context.Context, userID uuid.UUID) ([]models.Workspace, []models.WorkspaceRole, error) {
	args := m.Called(ctx, userID)
	var workspaces []models.Workspace
	var roles []models.WorkspaceRole
	if args.Get(0) != nil {
		workspaces = args.Get(0).([]models.Workspace)
	}
	if args.Get(1) != nil {
		roles = args.Get(1).([]models.WorkspaceRole)
	}
	return workspaces, roles, args.Error(2)
}

func (m *MockWorkspaceService) GetForMember(ctx context.Context, workspaceID, userID uuid.UUID) (*models.Workspace, *models.WorkspaceMember, error) {
	args := m.Called(ctx, workspaceID, userID)
	var workspace *models.Workspace
	var member *models.WorkspaceMember
	if args.Get(0) != nil {
		workspace = args.Get(0).(*models.Workspace)
	}
	if args.Get(1) != nil {
		member = args.Get(1).(*models.WorkspaceMember)
	}
	return workspace, member, args.Error(2)
}

func (m *MockWorkspaceService) Update(ctx context.Context, workspaceID, userID uuid.UUID, input services.UpdateWorkspaceInput) (*models.Workspace, error) {
	args := m.Called(ctx, workspaceID, userID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Workspace), args.Error(1)
}

func (m *MockWorkspaceService) Delete(ctx context.Context, workspaceID, userID uuid.UUID) error {
	args := m.Called(ctx, workspaceID, userID)
	return args.Error(0)
}

func (m *MockWorkspaceService) GetMembers(ctx context.Context, workspaceID, userID uuid.UUID) ([]models.WorkspaceMember, error) {
	args := m.Called(ctx, workspaceID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.WorkspaceMember), args.Error(1)
}

func (m *MockWorkspaceService) UpdateMemberRole(ctx context.Context, workspaceID, actorID, memberID uuid.UUID, newRole models.WorkspaceRole) (*models.WorkspaceMember, error) {
	args := m.Called(ctx, workspaceID, actorID, memberID, newRole)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.WorkspaceMember), args.Error(1)
}

func (m *MockWorkspaceService) RemoveMember(ctx context.Context, workspaceID, actorID, memberID uuid.UUID) error {
	args := m.Called(ctx, workspaceID, actorID, memberID)
	return args.Error(0)
}

func (m *MockWorkspaceService) Leave(ctx context.Context, workspaceID, userID uuid.UUID) error {
	args := m.Called(ctx, workspaceID, userID)
	return args.Error(0)
}

// MockInviteService mocks the InviteService
type MockInviteService struct {
	mock.Mock
}

func (m *MockInviteService) Invite(ctx context.Context, workspaceID, inviterID uuid.UUID, input services.InviteMemberInput) (*models.WorkspaceInvite, error) {
	args := m.Called(ctx, workspaceID, inviterID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.WorkspaceInvite), args.Error(1)
}

func (m *MockInviteService) Accept(ctx context.Context, userID uuid.UUID, token string) (*models.WorkspaceMember, error) {
	args := m.Called(ctx, userID, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.WorkspaceMember), args.Error(1)
}

func (m *MockInviteService) Decline(ctx context.Context, userID uuid.UUID, token string) error {
	args := m.Called(ctx, userID, token)
	return args.Error(0)
}

func (m *MockInviteService) ListPendingForUser(ctx context.Context, userID uuid.UUID) ([]models.WorkspaceInvite, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.WorkspaceInvite), args.Error(1)
}

func (m *MockInviteService) ListPendingForWorkspace(ctx context.Context, workspaceID, userID uuid.UUID) ([]models.WorkspaceInvite, error) {
	args := m.Called(ctx, workspaceID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.WorkspaceInvite), args.Error(1)
}

// MockAccountService mocks the AccountService
type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) Create(ctx context.Context, workspaceID, userID uuid.UUID, input services.CreateAccountInput) (*models.BankAccount, error) {
	args := m.Called(ctx, workspaceID, userID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BankAccount), args.Error(1)
}

func (m *MockAccountService) List(ctx context.Context, workspaceID, userID uuid.UUID) ([]models.BankAccount, error) {
	args := m.Called(ctx, workspaceID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.BankAccount), args.Error(1)
}

func (m *MockAccountService) Get(ctx context.Context, workspaceID, accountID, userID uuid.UUID) (*models.BankAccount, error) {
	args := m.Called(ctx, workspaceID, accountID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BankAccount), args.Error(1)
}

func (m *MockAccountService) Update(ctx context.Context, workspaceID, accountID, userID uuid.UUID, input services.UpdateAccountInput) (*models.BankAccount, error) {
	args := m.Called(ctx, workspaceID, accountID, userID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BankAccount), args.Error(1)
}

func (m *MockAccountService) Delete(ctx context.Context, workspaceID, accountID, userID uuid.UUID) error {
	args := m.Called(ctx, workspaceID, accountID, userID)
	return args.Error(0)
}

// MockTransactionService mocks the TransactionService
type MockTransactionService struct {
	mock.Mock
}

func (m *MockTransactionService) Create(ctx context.Context, workspaceID, userID uuid.UUID, input services.CreateTransactionInput) (*models.Transaction, error) {
	args := m.Called(ctx, workspaceID, userID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Transaction), args.Error(1)
}

func (m *MockTransactionService) List(ctx context.Context, workspaceID, userID uuid.UUID, bankAccountID *uuid.UUID) ([]models.Transaction, error) {
	args := m.Called(ctx, workspaceID, userID, bankAccountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Transaction), args.Error(1)
}

func (m *MockTransactionService) Get(ctx context.Context, workspaceID, transactionID, userID uuid.UUID) (*models.Transaction, error) {
	args := m.Called(ctx, workspaceID, transactionID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Transaction), args.Error(1)
}

func (m *MockTransactionService) Update(ctx context.Context, workspaceID, transactionID, userID uuid.UUID, input services.UpdateTransactionInput) (*models.Transaction, error) {
	args := m.Called(ctx, workspaceID, transactionID, userID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Transaction), args.Error(1)
}

func (m *MockTransactionService) Delete(ctx context.Context, workspaceID, transactionID, userID uuid.UUID) error {
	args := m.Called(ctx, workspaceID, transactionID, userID)
	return args.Error(0)
}

// MockEmailService mocks the EmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) IsConfigured() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *MockEmailService) SendWorkspaceInvite(to, workspaceName, inviterName, message, inviteURL string) error {
	args := m.Called(to, workspaceName, inviterName, message, inviteURL)
	return args.Error(0)
}
