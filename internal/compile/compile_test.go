package compile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompileAccountArtifacts(t *testing.T) {
	account := validAccount()
	account.Service.IntervalSec = intPtr(120)
	normalized, err := Normalize(account)
	assert.NoError(t, err)

	svc, timer, cfg := CompileAccount(normalized, Options{})

	assert.Equal(t, "imapmaildir-sync-work", svc.Key)
	assert.Equal(t, "mail sync via imapmaildir for account work", svc.Description)
	assert.Equal(t, []string{"imapmaildir", "--account", "work"}, svc.ExecStart)

	assert.Equal(t, "imapmaildir-sync-work", timer.Key)
	assert.Equal(t, 0, timer.OnStartupSec)
	assert.Equal(t, 120, timer.OnUnitInactiveSec)
	assert.Equal(t, []string{"timers.target"}, timer.WantedBy)

	assert.Equal(t, "imapmaildir/accounts/work.toml", cfg.Path)
	assert.Equal(t, "imap.example.com", cfg.Content.Host)
	assert.Equal(t, 993, cfg.Content.Port)
	assert.Equal(t, []string{"INBOX"}, cfg.Content.Mailboxes)
	assert.Equal(t, "/home/u/mail/work", cfg.Content.MaildirBasePath)
	assert.Equal(t, "Plain", cfg.Content.Auth.Type)
	assert.Equal(t, "u@example.com", cfg.Content.Auth.User)
	assert.Equal(t, []string{"pass show work"}, cfg.Content.Auth.PasswordCmd)
}

func TestCompileAccountCustomBinary(t *testing.T) {
	normalized, err := Normalize(validAccount())
	assert.NoError(t, err)

	svc, _, _ := CompileAccount(normalized, Options{Binary: "/usr/local/bin/imapmaildir"})
	assert.Equal(t, []string{"/usr/local/bin/imapmaildir", "--account", "work"}, svc.ExecStart)
}

func TestCompileAccountExtraConfigComputedWins(t *testing.T) {
	account := validAccount()
	account.Service.ExtraConfig = map[string]map[string]string{
		"Unit": {
			"Description": "overridden",
			"After":       "network-online.target",
		},
		"Service": {
			"ExecStart":   "/bin/false",
			"Environment": "RUST_LOG=debug",
		},
		"Install": {
			"WantedBy": "default.target",
		},
	}
	normalized, err := Normalize(account)
	assert.NoError(t, err)

	svc, _, _ := CompileAccount(normalized, Options{})

	// Computed fields win within their own sections.
	assert.Equal(t, "mail sync via imapmaildir for account work", svc.Description)
	assert.Equal(t, []string{"imapmaildir", "--account", "work"}, svc.ExecStart)
	assert.NotContains(t, svc.Extra["Unit"], "Description")
	assert.NotContains(t, svc.Extra["Service"], "ExecStart")

	// Everything else is carried through.
	assert.Equal(t, "network-online.target", svc.Extra["Unit"]["After"])
	assert.Equal(t, "RUST_LOG=debug", svc.Extra["Service"]["Environment"])
	assert.Equal(t, "default.target", svc.Extra["Install"]["WantedBy"])
}

func TestCompileAccountNoExtraConfig(t *testing.T) {
	normalized, err := Normalize(validAccount())
	assert.NoError(t, err)

	svc, _, _ := CompileAccount(normalized, Options{})
	assert.Nil(t, svc.Extra)
}

func TestCompileAccountDeterministic(t *testing.T) {
	normalized, err := Normalize(validAccount())
	assert.NoError(t, err)

	svc1, timer1, cfg1 := CompileAccount(normalized, Options{})
	svc2, timer2, cfg2 := CompileAccount(normalized, Options{})

	assert.Equal(t, svc1, svc2)
	assert.Equal(t, timer1, timer2)
	assert.Equal(t, cfg1, cfg2)
}
