package compile

import (
	"fmt"

	"imapmaildirgen/internal/registry"
)

const (
	// DefaultPort is used when an account leaves the IMAP port unset.
	DefaultPort = 993

	// DefaultIntervalSec is the sync interval applied when an account does
	// not configure one.
	DefaultIntervalSec = 300

	// ServiceNamePrefix is prepended to the account name when no explicit
	// service name is configured.
	ServiceNamePrefix = "imapmaildir-sync-"
)

// Normalize validates one account and fills in unset fields. It is a pure
// function; the input is not modified.
func Normalize(a registry.Account) (registry.Account, error) {
	if a.Name == "" {
		return registry.Account{}, accountErr(a.Name, "name", ErrInvalidAccountName)
	}
	if a.IMAP.Host == "" {
		return registry.Account{}, accountErr(a.Name, "imap.host", ErrMissingRequiredField)
	}
	if a.MaildirPath == "" {
		return registry.Account{}, accountErr(a.Name, "maildir_path", ErrMissingRequiredField)
	}
	if len(a.PasswordCommand) == 0 {
		return registry.Account{}, accountErr(a.Name, "password_command", ErrMissingCredentialSource)
	}

	if a.IMAP.Port == nil {
		port := DefaultPort
		a.IMAP.Port = &port
	}
	if a.Service.Name == "" {
		a.Service.Name = fmt.Sprintf("%s%s", ServiceNamePrefix, a.Name)
	}
	if a.Service.IntervalSec == nil {
		interval := DefaultIntervalSec
		a.Service.IntervalSec = &interval
	}
	if *a.Service.IntervalSec <= 0 {
		return registry.Account{}, accountErr(a.Name, "service.interval_sec", ErrInvalidInterval)
	}

	return a, nil
}
