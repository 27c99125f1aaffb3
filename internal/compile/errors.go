package compile

import (
	"fmt"

	"github.com/pkg/errors"
)

// Sentinel causes for account validation failures. All are configuration-time
// errors; any one of them aborts the whole compilation run.
var (
	ErrInvalidAccountName      = errors.New("invalid account name")
	ErrMissingRequiredField    = errors.New("missing required field")
	ErrInvalidInterval         = errors.New("interval must be a positive number of seconds")
	ErrMissingCredentialSource = errors.New("no password command configured")
)

// AccountError ties a validation failure to the offending account and field.
type AccountError struct {
	Account string
	Field   string
	Err     error
}

func (e *AccountError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("account %q: %v", e.Account, e.Err)
	}
	return fmt.Sprintf("account %q: field %s: %v", e.Account, e.Field, e.Err)
}

func (e *AccountError) Unwrap() error { return e.Err }

func accountErr(account, field string, cause error) error {
	return &AccountError{Account: account, Field: field, Err: cause}
}
