package services

import (
	"context"
	"testing"
	"time"

	"github.com/gerald0n/finmoni-api/internal/database"
	"github.com/gerald0n/finmoni-api/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupInviteService(t *testing.T) (*InviteService, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() { mock.Close() })

	db := &database.DB{Pool: mock}
	return NewInviteService(db), mock
}

func TestInviteService_Invite(t *testing.T) {
	svc, mock := setupInviteService(t)
	ctx := context.Background()
	workspaceID := uuid.New()
	inviterID := uuid.New()
	inviteID := uuid.New()
	email := "ana@example.com"
	now := time.Now()

	expectMembership(mock, workspaceID, inviterID, uuid.New(), models.RoleAdmin)

	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs(workspaceID, email).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))

	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs(workspaceID, email, "PENDING").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))

	rows := pgxmock.NewRows([]string{
		"id", "workspace_id", "sender_id", "email", "role", "token", "message",
		"status", "expires_at", "accepted_at", "accepted_by", "created_at", "updated_at",
	}).AddRow(inviteID, workspaceID, inviterID, email, "MEMBER", "tok", nil,
		"PENDING", now.Add(7*24*time.Hour), nil, nil, now, now)
	mock.ExpectQuery(`INSERT INTO workspace_invites`).
		WithArgs(workspaceID, inviterID, email, "MEMBER", pgxmock.AnyArg(), (*string)(nil), pgxmock.AnyArg()).
		WillReturnRows(rows)

	invite, err := svc.Invite(ctx, workspaceID, inviterID, InviteMemberInput{
		Email: email,
		Role:  models.RoleMember,
	})

	require.NoError(t, err)
	assert.Equal(t, inviteID, invite.ID)
	assert.Equal(t, models.InviteStatusPending, invite.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInviteService_Invite_RequiresAdmin(t *testing.T) {
	svc, mock := setupInviteService(t)
	ctx := context.Background()
	workspaceID := uuid.New()
	inviterID := uuid.New()

	expectMembership(mock, workspaceID, inviterID, uuid.New(), models.RoleMember)

	_, err := svc.Invite(ctx, workspaceID, inviterID, InviteMemberInput{
		Email: "ana@example.com",
		Role:  models.RoleMember,
	})

	assert.ErrorIs(t, err, ErrInsufficientRole)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInviteService_Invite_AlreadyMember(t *testing.T) {
	svc, mock := setupInviteService(t)
	ctx := context.Background()
	workspaceID := uuid.New()
	inviterID := uuid.New()
	email := "ana@example.com"

	expectMembership(mock, workspaceID, inviterID, uuid.New(), models.RoleOwner)

	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs(workspaceID, email).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	_, err := svc.Invite(ctx, workspaceID, inviterID, InviteMemberInput{
		Email: email,
		Role:  models.RoleMember,
	})

	assert.ErrorIs(t, err, ErrAlreadyMember)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInviteService_Invite_AlreadyPending(t *testing.T) {
	svc, mock := setupInviteService(t)
	ctx := context.Background()
	workspaceID := uuid.New()
	inviterID := uuid.New()
	email := "ana@example.com"

	expectMembership(mock, workspaceID, inviterID, uuid.New(), models.RoleOwner)

	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs(workspaceID, email).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))

	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs(workspaceID, email, "PENDING").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	_, err := svc.Invite(ctx, workspaceID, inviterID, InviteMemberInput{
		Email: email,
		Role:  models.RoleMember,
	})

	assert.ErrorIs(t, err, ErrInvitePending)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInviteService_Accept(t *testing.T) {
	svc, mock := setupInviteService(t)
	ctx := context.Background()
	workspaceID := uuid.New()
	inviteID := uuid.New()
	userID := uuid.New()
	memberID := uuid.New()
	token := "tok"
	now := time.Now()

	mock.ExpectQuery(`SELECT id, workspace_id, role FROM workspace_invites`).
		WithArgs(token, "PENDING").
		WillReturnRows(pgxmock.NewRows([]string{"id", "workspace_id", "role"}).
			AddRow(inviteID, workspaceID, "MEMBER"))

	mock.ExpectBegin()

	mock.ExpectQuery(`SELECT status, expires_at > NOW\(\) FROM workspace_invites WHERE id`).
		WithArgs(inviteID).
		WillReturnRows(pgxmock.NewRows([]string{"status", "live"}).AddRow("PENDING", true))

	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs(workspaceID, userID).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))

	mock.ExpectExec(`UPDATE workspace_invites`).
		WithArgs("ACCEPTED", userID, inviteID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	mock.ExpectQuery(`INSERT INTO workspace_members`).
		WithArgs(workspaceID, userID, "MEMBER").
		WillReturnRows(pgxmock.NewRows([]string{"id", "workspace_id", "user_id", "role", "joined_at"}).
			AddRow(memberID, workspaceID, userID, "MEMBER", now))

	mock.ExpectCommit()

	member, err := svc.Accept(ctx, userID, token)

	require.NoError(t, err)
	assert.Equal(t, memberID, member.ID)
	assert.Equal(t, models.RoleMember, member.Role)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInviteService_Accept_UnknownToken(t *testing.T) {
	svc, mock := setupInviteService(t)
	ctx := context.Background()
	userID := uuid.New()

	mock.ExpectQuery(`SELECT id, workspace_id, role FROM workspace_invites`).
		WithArgs("bogus", "PENDING").
		WillReturnError(pgx.ErrNoRows)

	_, err := svc.Accept(ctx, userID, "bogus")

	assert.ErrorIs(t, err, ErrInviteNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInviteService_Accept_AlreadyMember(t *testing.T) {
	svc, mock := setupInviteService(t)
	ctx := context.Background()
	workspaceID := uuid.New()
	inviteID := uuid.New()
	userID := uuid.New()

	mock.ExpectQuery(`SELECT id, workspace_id, role FROM workspace_invites`).
		WithArgs("tok", "PENDING").
		WillReturnRows(pgxmock.NewRows([]string{"id", "workspace_id", "role"}).
			AddRow(inviteID, workspaceID, "MEMBER"))

	mock.ExpectBegin()

	mock.ExpectQuery(`SELECT status, expires_at > NOW\(\) FROM workspace_invites WHERE id`).
		WithArgs(inviteID).
		WillReturnRows(pgxmock.NewRows([]string{"status", "live"}).AddRow("PENDING", true))

	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs(workspaceID, userID).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	mock.ExpectRollback()

	_, err := svc.Accept(ctx, userID, "tok")

	assert.ErrorIs(t, err, ErrAlreadyMember)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInviteService_Accept_LostRace(t *testing.T) {
	svc, mock := setupInviteService(t)
	ctx := context.Background()
	workspaceID := uuid.New()
	inviteID := uuid.New()
	userID := uuid.New()

	mock.ExpectQuery(`SELECT id, workspace_id, role FROM workspace_invites`).
		WithArgs("tok", "PENDING").
		WillReturnRows(pgxmock.NewRows([]string{"id", "workspace_id", "role"}).
			AddRow(inviteID, workspaceID, "MEMBER"))

	mock.ExpectBegin()

	// another accept committed first; the row is no longer PENDING
	mock.ExpectQuery(`SELECT status, expires_at > NOW\(\) FROM workspace_invites WHERE id`).
		WithArgs(inviteID).
		WillReturnRows(pgxmock.NewRows([]string{"status", "live"}).AddRow("ACCEPTED", true))

	mock.ExpectRollback()

	_, err := svc.Accept(ctx, userID, "tok")

	assert.ErrorIs(t, err, ErrInviteNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInviteService_Accept_ExpiredUnderLock(t *testing.T) {
	svc, mock := setupInviteService(t)
	ctx := context.Background()
	workspaceID := uuid.New()
	inviteID := uuid.New()
	userID := uuid.New()

	mock.ExpectQuery(`SELECT id, workspace_id, role FROM workspace_invites`).
		WithArgs("tok", "PENDING").
		WillReturnRows(pgxmock.NewRows([]string{"id", "workspace_id", "role"}).
			AddRow(inviteID, workspaceID, "MEMBER"))

	mock.ExpectBegin()

	// the invite crossed its expiry between the lookup and the lock
	mock.ExpectQuery(`SELECT status, expires_at > NOW\(\) FROM workspace_invites WHERE id`).
		WithArgs(inviteID).
		WillReturnRows(pgxmock.NewRows([]string{"status", "live"}).AddRow("PENDING", false))

	mock.ExpectRollback()

	_, err := svc.Accept(ctx, userID, "tok")

	assert.ErrorIs(t, err, ErrInviteNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInviteService_Decline(t *testing.T) {
	svc, mock := setupInviteService(t)
	ctx := context.Background()
	userID := uuid.New()
	email := "ana@example.com"

	mock.ExpectQuery(`SELECT email FROM users WHERE id`).
		WithArgs(userID).
		WillReturnRows(pgxmock.NewRows([]string{"email"}).AddRow(email))

	mock.ExpectExec(`UPDATE workspace_invites SET status`).
		WithArgs("DECLINED", "tok", email, "PENDING").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := svc.Decline(ctx, userID, "tok")

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInviteService_Decline_NotAddressedToCaller(t *testing.T) {
	svc, mock := setupInviteService(t)
	ctx := context.Background()
	userID := uuid.New()

	mock.ExpectQuery(`SELECT email FROM users WHERE id`).
		WithArgs(userID).
		WillReturnRows(pgxmock.NewRows([]string{"email"}).AddRow("other@example.com"))

	mock.ExpectExec(`UPDATE workspace_invites SET status`).
		WithArgs("DECLINED", "tok", "other@example.com", "PENDING").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := svc.Decline(ctx, userID, "tok")

	assert.ErrorIs(t, err, ErrInviteNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInviteService_ListPendingForUser(t *testing.T) {
	svc, mock := setupInviteService(t)
	ctx := context.Background()
	userID := uuid.New()
	workspaceID := uuid.New()
	senderID := uuid.New()
	now := time.Now()

	rows := pgxmock.NewRows([]string{
		"id", "workspace_id", "sender_id", "email", "role", "token", "message",
		"status", "expires_at", "created_at",
		"w_id", "w_name", "w_description",
		"s_id", "s_name", "s_email",
	}).AddRow(uuid.New(), workspaceID, senderID, "ana@example.com", "MEMBER", "tok", nil,
		"PENDING", now.Add(time.Hour), now,
		workspaceID, "Family Budget", nil,
		senderID, "Gerald", "gerald@example.com")

	mock.ExpectQuery(`SELECT wi.id, wi.workspace_id, wi.sender_id`).
		WithArgs(userID, "PENDING").
		WillReturnRows(rows)

	invites, err := svc.ListPendingForUser(ctx, userID)

	require.NoError(t, err)
	require.Len(t, invites, 1)
	assert.Equal(t, "tok", invites[0].Token)
	require.NotNil(t, invites[0].Workspace)
	assert.Equal(t, "Family Budget", invites[0].Workspace.Name)
	require.NotNil(t, invites[0].Sender)
	assert.Equal(t, "Gerald", invites[0].Sender.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInviteService_ListPendingForWorkspace_RequiresAdmin(t *testing.T) {
	svc, mock := setupInviteService(t)
	ctx := context.Background()
	workspaceID := uuid.New()
	userID := uuid.New()

	expectMembership(mock, workspaceID, userID, uuid.New(), models.RoleViewer)

	_, err := svc.ListPendingForWorkspace(ctx, workspaceID, userID)

	assert.ErrorIs(t, err, ErrInsufficientRole)
	assert.NoError(t, mock.ExpectationsWereMet())
}
