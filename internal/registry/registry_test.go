package registry

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestDecodeScalarPasswordCommand(t *testing.T) {
	reg, err := Decode([]byte(`
accounts:
  work:
    enabled: true
    imap:
      host: imap.example.com
    maildir_path: /home/u/mail/work
    user_name: u@example.com
    password_command: pass show work
`))
	if err != nil {
		t.Fatalf("expected registry to decode, got error: %v", err)
	}

	if len(reg.Accounts) != 1 {
		t.Fatalf("expected 1 account, got %d", len(reg.Accounts))
	}

	account := reg.Accounts[0]
	if account.Name != "work" {
		t.Fatalf("expected account name from registry key, got %q", account.Name)
	}
	if !reflect.DeepEqual([]string(account.PasswordCommand), []string{"pass show work"}) {
		t.Fatalf("expected scalar command as one-element list, got %v", account.PasswordCommand)
	}
}

func TestDecodeListPasswordCommand(t *testing.T) {
	reg, err := Decode([]byte(`
accounts:
  work:
    password_command: ["pass", "show", "work"]
`))
	if err != nil {
		t.Fatalf("expected registry to decode, got error: %v", err)
	}

	got := []string(reg.Accounts[0].PasswordCommand)
	if !reflect.DeepEqual(got, []string{"pass", "show", "work"}) {
		t.Fatalf("expected list command to pass through, got %v", got)
	}
}

func TestDecodeMappingPasswordCommandFails(t *testing.T) {
	_, err := Decode([]byte(`
accounts:
  work:
    password_command:
      cmd: pass
`))
	if err == nil {
		t.Fatal("expected error for mapping-shaped password_command")
	}
}

func TestDecodeUnsetPortStaysNil(t *testing.T) {
	reg, err := Decode([]byte(`
accounts:
  work:
    imap:
      host: imap.example.com
  personal:
    imap:
      host: imap.example.org
      port: 143
`))
	if err != nil {
		t.Fatalf("expected registry to decode, got error: %v", err)
	}

	byName := map[string]Account{}
	for _, account := range reg.Accounts {
		byName[account.Name] = account
	}

	if byName["work"].IMAP.Port != nil {
		t.Fatalf("expected unset port to stay nil, got %d", *byName["work"].IMAP.Port)
	}
	if byName["personal"].IMAP.Port == nil || *byName["personal"].IMAP.Port != 143 {
		t.Fatal("expected explicit port to survive decoding")
	}
}

func TestDecodeSortsAccountsByName(t *testing.T) {
	reg, err := Decode([]byte(`
accounts:
  zulu: {}
  alpha: {}
  mike: {}
`))
	if err != nil {
		t.Fatalf("expected registry to decode, got error: %v", err)
	}

	var names []string
	for _, account := range reg.Accounts {
		names = append(names, account.Name)
	}
	if !reflect.DeepEqual(names, []string{"alpha", "mike", "zulu"}) {
		t.Fatalf("expected name-sorted accounts, got %v", names)
	}
}

func TestEnabledFiltersDisabledAccounts(t *testing.T) {
	reg, err := Decode([]byte(`
accounts:
  work:
    enabled: true
  dormant:
    enabled: false
  implicit: {}
`))
	if err != nil {
		t.Fatalf("expected registry to decode, got error: %v", err)
	}

	enabled := reg.Enabled()
	if len(enabled) != 1 || enabled[0].Name != "work" {
		t.Fatalf("expected only the enabled account, got %v", enabled)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing registry file")
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "registry.yaml")
	if err := os.WriteFile(path, []byte("accounts: [not_a_mapping"), 0o600); err != nil {
		t.Fatalf("failed to write temp file: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Fatal("expected error for invalid YAML")
	}
}
