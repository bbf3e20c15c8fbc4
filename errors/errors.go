package errors

import "fmt"

// Sentinel errors for the chat domain. Services and repositories wrap these
// with context; the api layer maps each one to an HTTP status.
var (
	// Validation
	ErrEmptyPayload    = fmt.Errorf("message must contain text, image, or document")
	ErrMissingName     = fmt.Errorf("group name is required")
	ErrMissingMembers  = fmt.Errorf("at least one member is required")
	ErrInvalidPassword = fmt.Errorf("password does not meet complexity requirements")
	ErrInvalidRequest  = fmt.Errorf("request failed validation")

	// Authorization
	ErrNotAdmin     = fmt.Errorf("only the group admin may perform this action")
	ErrAdminRemoval = fmt.Errorf("the group admin cannot be removed")

	// Conflict / not found
	ErrGroupNotFound     = fmt.Errorf("group not found")
	ErrUserNotFound      = fmt.Errorf("user not found")
	ErrAlreadyMember     = fmt.Errorf("user is already a member of the group")
	ErrNotMember         = fmt.Errorf("user is not a member of the group")
	ErrNoGroupPhoto      = fmt.Errorf("group has no photo to delete")
	ErrUserAlreadyExists = fmt.Errorf("a user with this email already exists")

	// Auth
	ErrInvalidCredentials = fmt.Errorf("invalid credentials")
	ErrTokenGeneration    = fmt.Errorf("token generation failed")

	// Upstream collaborators. ErrUploadFailed is a caller fault (undecodable
	// payload); ErrUploadUnavailable is a blob store fault.
	ErrUploadFailed      = fmt.Errorf("attachment upload failed")
	ErrUploadUnavailable = fmt.Errorf("attachment storage unavailable")
)
