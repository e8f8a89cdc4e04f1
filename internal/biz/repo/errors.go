package repo

import "errors"

// Sentinel errors shared by every repository implementation. Data
// layers map platform-specific failures onto these so usecases can
// branch with errors.Is instead of inspecting transport details.
var (
	// ErrNotFound means the remote entity does not exist or is not
	// visible to the bot account.
	ErrNotFound = errors.New("not found")

	// ErrForbidden means the remote refused the operation for lack of
	// permission.
	ErrForbidden = errors.New("forbidden")
)
