package refdata

import "errors"

// RemoteError is an error reported by the backend itself alongside an
// empty data payload. Its message is considered safe to show to users.
type RemoteError struct {
	Message string
}

// Error implements the error interface.
func (e *RemoteError) Error() string {
	return e.Message
}

// Generic user-facing messages for faults that carry no safe message of
// their own.
const (
	genericCountriesErrMsg = "failed to load countries"
	genericFrameworkErrMsg = "failed to load education framework"
)

// userMessage extracts a user-facing message from err: remote-reported
// errors pass their message through, every other fault maps to the
// provided generic description.
func userMessage(err error, generic string) string {
	var remoteErr *RemoteError
	if errors.As(err, &remoteErr) && remoteErr.Message != "" {
		return remoteErr.Message
	}
	return generic
}
