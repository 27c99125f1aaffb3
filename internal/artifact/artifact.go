// Package artifact defines the descriptors derived from the account registry
// and the keyed collections they aggregate into.
package artifact

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrDuplicateKey is matched by every key collision reported by a Set.
var ErrDuplicateKey = errors.New("duplicate artifact key")

// DuplicateKeyError reports two accounts resolving to the same artifact key.
type DuplicateKeyError struct {
	Kind          string
	Key           string
	FirstAccount  string
	SecondAccount string
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("duplicate %s key %q: accounts %q and %q", e.Kind, e.Key, e.FirstAccount, e.SecondAccount)
}

func (e *DuplicateKeyError) Unwrap() error { return ErrDuplicateKey }

// Service describes one background sync service unit.
type Service struct {
	// Key is the unit name without the ".service" suffix.
	Key         string   `json:"key"`
	Description string   `json:"description"`
	ExecStart   []string `json:"exec_start"`

	// Extra holds merged extra_config settings, keyed by section then option
	// name. The computed Unit.Description and Service.ExecStart never appear
	// here; the merge in the compiler strips them.
	Extra map[string]map[string]string `json:"extra,omitempty"`
}

// Timer describes the recurring trigger for one service. OnUnitInactiveSec
// re-fires relative to the previous run's completion, not on a wall-clock
// schedule.
type Timer struct {
	Key               string   `json:"key"`
	Description       string   `json:"description"`
	OnStartupSec      int      `json:"on_startup_sec"`
	OnUnitInactiveSec int      `json:"on_unit_inactive_sec"`
	WantedBy          []string `json:"wanted_by"`
}

// AuthConfig mirrors the [auth] table of the sync binary's account file. Type
// is always "Plain"; the binary does not support other schemes yet.
type AuthConfig struct {
	Type        string   `toml:"type" json:"type"`
	User        string   `toml:"user" json:"user"`
	PasswordCmd []string `toml:"password_cmd" json:"password_cmd"`
}

// AccountConfig is the serialized content of one account configuration file,
// in the exact shape the sync binary deserializes.
type AccountConfig struct {
	Host            string     `toml:"host" json:"host"`
	Port            int        `toml:"port" json:"port"`
	Mailboxes       []string   `toml:"mailboxes" json:"mailboxes"`
	MaildirBasePath string     `toml:"maildir_base_path" json:"maildir_base_path"`
	Auth            AuthConfig `toml:"auth" json:"auth"`
}

// ConfigFile pairs an account configuration with its path relative to the
// user configuration root. The path convention is shared with the sync
// binary's lookup logic and must not change independently.
type ConfigFile struct {
	Path    string        `json:"path"`
	Account string        `json:"account"`
	Content AccountConfig `json:"content"`
}

// Set aggregates per-account artifacts into three keyed, insertion-ordered
// collections. Insertion under an already-present key is an error; partial
// sets are never emitted.
type Set struct {
	services []Service
	timers   []Timer
	configs  []ConfigFile

	serviceOwner map[string]string
	timerOwner   map[string]string
	configOwner  map[string]string
}

func NewSet() *Set {
	return &Set{
		serviceOwner: make(map[string]string),
		timerOwner:   make(map[string]string),
		configOwner:  make(map[string]string),
	}
}

// PutService inserts a service descriptor on behalf of account.
func (s *Set) PutService(account string, svc Service) error {
	if first, ok := s.serviceOwner[svc.Key]; ok {
		return &DuplicateKeyError{Kind: "service", Key: svc.Key, FirstAccount: first, SecondAccount: account}
	}
	s.serviceOwner[svc.Key] = account
	s.services = append(s.services, svc)
	return nil
}

// PutTimer inserts a timer descriptor on behalf of account.
func (s *Set) PutTimer(account string, t Timer) error {
	if first, ok := s.timerOwner[t.Key]; ok {
		return &DuplicateKeyError{Kind: "timer", Key: t.Key, FirstAccount: first, SecondAccount: account}
	}
	s.timerOwner[t.Key] = account
	s.timers = append(s.timers, t)
	return nil
}

// PutConfig inserts a configuration-file descriptor on behalf of account.
func (s *Set) PutConfig(account string, c ConfigFile) error {
	if first, ok := s.configOwner[c.Path]; ok {
		return &DuplicateKeyError{Kind: "config file", Key: c.Path, FirstAccount: first, SecondAccount: account}
	}
	s.configOwner[c.Path] = account
	s.configs = append(s.configs, c)
	return nil
}

// Services returns the service descriptors in insertion order.
func (s *Set) Services() []Service { return s.services }

// Timers returns the timer descriptors in insertion order.
func (s *Set) Timers() []Timer { return s.timers }

// Configs returns the configuration-file descriptors in insertion order.
func (s *Set) Configs() []ConfigFile { return s.configs }

// Len reports the total number of artifacts in the set.
func (s *Set) Len() int { return len(s.services) + len(s.timers) + len(s.configs) }
