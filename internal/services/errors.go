package services

import "errors"

// Sentinel errors surfaced to the transport layer. Handlers map these to
// status codes; anything else is treated as an internal storage failure.
var (
	ErrNotMember           = errors.New("workspace not found or access denied")
	ErrInsufficientRole    = errors.New("insufficient permissions")
	ErrLastOwner           = errors.New("cannot remove the last owner of the workspace")
	ErrMemberNotFound      = errors.New("member not found")
	ErrAccountNotFound     = errors.New("bank account not found in this workspace")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrInviteNotFound      = errors.New("invalid or expired invite")
	ErrAlreadyMember       = errors.New("user is already a workspace member")
	ErrInvitePending       = errors.New("there is already a pending invite for this email")
	ErrDuplicateEmail      = errors.New("email already in use")
	ErrInvalidCredentials  = errors.New("invalid credentials")
)
