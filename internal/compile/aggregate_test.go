package compile

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"imapmaildirgen/internal/artifact"
	"imapmaildirgen/internal/registry"
)

func testRegistry(accounts ...registry.Account) registry.Registry {
	return registry.Registry{Accounts: accounts}
}

func TestCompilePipeline(t *testing.T) {
	personal := validAccount()
	personal.Name = "personal"
	personal.MaildirPath = "/home/u/mail/personal"

	set, err := Compile(testRegistry(personal, validAccount()), Options{})
	assert.NoError(t, err)

	assert.Len(t, set.Services(), 2)
	assert.Len(t, set.Timers(), 2)
	assert.Len(t, set.Configs(), 2)

	// Insertion order follows registry order.
	assert.Equal(t, "imapmaildir-sync-personal", set.Services()[0].Key)
	assert.Equal(t, "imapmaildir-sync-work", set.Services()[1].Key)
}

func TestCompileSkipsDisabledAccounts(t *testing.T) {
	dormant := validAccount()
	dormant.Name = "dormant"
	dormant.Enabled = false

	set, err := Compile(testRegistry(dormant, validAccount()), Options{})
	assert.NoError(t, err)

	assert.Len(t, set.Services(), 1)
	assert.Equal(t, "imapmaildir-sync-work", set.Services()[0].Key)
}

func TestCompileDisabledAccountsAreNotValidated(t *testing.T) {
	broken := registry.Account{Name: "broken", Enabled: false}

	set, err := Compile(testRegistry(broken), Options{})
	assert.NoError(t, err)
	assert.Equal(t, 0, set.Len())
}

func TestCompileDuplicateServiceName(t *testing.T) {
	first := validAccount()
	first.Name = "first"
	first.Service.Name = "shared-sync"
	second := validAccount()
	second.Name = "second"
	second.Service.Name = "shared-sync"

	set, err := Compile(testRegistry(first, second), Options{})
	assert.Nil(t, set)
	assert.True(t, errors.Is(err, artifact.ErrDuplicateKey))

	var dup *artifact.DuplicateKeyError
	if assert.True(t, errors.As(err, &dup)) {
		assert.Equal(t, "shared-sync", dup.Key)
		assert.Equal(t, "first", dup.FirstAccount)
		assert.Equal(t, "second", dup.SecondAccount)
	}
}

func TestCompileFailsClosedOnInvalidAccount(t *testing.T) {
	invalid := validAccount()
	invalid.Name = "invalid"
	invalid.IMAP.Host = ""

	set, err := Compile(testRegistry(validAccount(), invalid), Options{})
	assert.Nil(t, set)
	assert.True(t, errors.Is(err, ErrMissingRequiredField))
}

func TestCompileIdempotent(t *testing.T) {
	reg := testRegistry(validAccount())

	first, err := Compile(reg, Options{})
	assert.NoError(t, err)
	second, err := Compile(reg, Options{})
	assert.NoError(t, err)

	assert.Equal(t, first.Services(), second.Services())
	assert.Equal(t, first.Timers(), second.Timers())
	assert.Equal(t, first.Configs(), second.Configs())
}
