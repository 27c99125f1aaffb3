// Package registry models the declarative account registry consumed by the
// artifact compiler. The registry is supplied wholesale by an external
// configuration system; this package only decodes it into canonical form.
package registry

import (
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

// CommandLine is a command with its arguments. The registry accepts either a
// bare string or a list of strings; both decode into the same list form so
// nothing downstream ever branches on the original shape.
type CommandLine []string

// UnmarshalYAML accepts `cmd: "pass show work"` as well as
// `cmd: ["pass", "show", "work"]`.
func (c *CommandLine) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		var s string
		if err := value.Decode(&s); err != nil {
			return err
		}
		*c = CommandLine{s}
		return nil
	case yaml.SequenceNode:
		var parts []string
		if err := value.Decode(&parts); err != nil {
			return err
		}
		*c = CommandLine(parts)
		return nil
	default:
		return fmt.Errorf("line %d: command must be a string or a list of strings", value.Line)
	}
}

// IMAP holds the connection coordinates for one account. Port is a pointer so
// that "unset" is distinguishable from an explicit value; the defaulting layer
// substitutes 993 when nil.
type IMAP struct {
	Host string `yaml:"host"`
	Port *int   `yaml:"port"`
}

// ServiceSettings configures the generated sync service and timer.
type ServiceSettings struct {
	// Name overrides the generated unit name. Defaults to
	// "imapmaildir-sync-<account>".
	Name string `yaml:"name"`

	// IntervalSec is the inactivity interval between sync runs. A pointer so
	// that "unset" (defaults to 300) is distinguishable from an explicit,
	// invalid zero.
	IntervalSec *int `yaml:"interval_sec"`

	// ExtraConfig holds additional unit settings to merge into the generated
	// service, keyed by section then by option name. Computed fields win on
	// collision.
	ExtraConfig map[string]map[string]string `yaml:"extra_config"`
}

// Account is one registry entry.
type Account struct {
	// Name is filled in from the registry key, never from the entry body.
	Name string `yaml:"-"`

	Enabled         bool            `yaml:"enabled"`
	Mailboxes       []string        `yaml:"mailboxes"`
	IMAP            IMAP            `yaml:"imap"`
	MaildirPath     string          `yaml:"maildir_path"`
	UserName        string          `yaml:"user_name"`
	PasswordCommand CommandLine     `yaml:"password_command"`
	Service         ServiceSettings `yaml:"service"`
}

// Registry is the full set of known accounts, ordered by name for
// reproducible iteration.
type Registry struct {
	Accounts []Account
}

type registryFile struct {
	Accounts map[string]Account `yaml:"accounts"`
}

// Decode parses registry YAML into canonical, name-sorted form.
func Decode(data []byte) (Registry, error) {
	var file registryFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return Registry{}, err
	}

	names := make([]string, 0, len(file.Accounts))
	for name := range file.Accounts {
		names = append(names, name)
	}
	sort.Strings(names)

	reg := Registry{Accounts: make([]Account, 0, len(names))}
	for _, name := range names {
		account := file.Accounts[name]
		account.Name = name
		reg.Accounts = append(reg.Accounts, account)
	}
	return reg, nil
}

// Enabled returns the accounts that opted into sync-service generation.
func (r Registry) Enabled() []Account {
	enabled := make([]Account, 0, len(r.Accounts))
	for _, account := range r.Accounts {
		if account.Enabled {
			enabled = append(enabled, account)
		}
	}
	return enabled
}
