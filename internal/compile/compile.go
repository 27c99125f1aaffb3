// Package compile turns registry accounts into service, timer and
// configuration-file descriptors. The whole pipeline is pure: no I/O, no
// shared state, identical input yields identical output.
package compile

import (
	"fmt"
	"path"

	"imapmaildirgen/internal/artifact"
	"imapmaildirgen/internal/registry"
)

// ConfigDirName is the directory under the user configuration root that the
// sync binary reads account files from. Shared with the binary's lookup
// logic; changing it here breaks the contract.
const ConfigDirName = "imapmaildir"

// DefaultBinary is the sync executable invoked by generated services when no
// explicit path is configured.
const DefaultBinary = "imapmaildir"

// Options configures a compilation run.
type Options struct {
	// Binary is the path of the sync executable placed in ExecStart.
	Binary string
}

func (o Options) binary() string {
	if o.Binary == "" {
		return DefaultBinary
	}
	return o.Binary
}

// CompileAccount maps one normalized, enabled account to its three
// artifacts. It assumes its input already passed Normalize.
func CompileAccount(a registry.Account, opts Options) (artifact.Service, artifact.Timer, artifact.ConfigFile) {
	description := fmt.Sprintf("mail sync via imapmaildir for account %s", a.Name)

	svc := artifact.Service{
		Key:         a.Service.Name,
		Description: description,
		ExecStart:   []string{opts.binary(), "--account", a.Name},
		Extra:       mergeExtra(a.Service.ExtraConfig),
	}

	timer := artifact.Timer{
		Key:               a.Service.Name,
		Description:       description,
		OnStartupSec:      0,
		OnUnitInactiveSec: *a.Service.IntervalSec,
		WantedBy:          []string{"timers.target"},
	}

	cfg := artifact.ConfigFile{
		Path:    path.Join(ConfigDirName, "accounts", a.Name+".toml"),
		Account: a.Name,
		Content: artifact.AccountConfig{
			Host:            a.IMAP.Host,
			Port:            *a.IMAP.Port,
			Mailboxes:       append([]string{}, a.Mailboxes...),
			MaildirBasePath: a.MaildirPath,
			Auth: artifact.AuthConfig{
				Type:        "Plain",
				User:        a.UserName,
				PasswordCmd: append([]string{}, a.PasswordCommand...),
			},
		},
	}

	return svc, timer, cfg
}

// mergeExtra applies the extra_config base layer beneath the computed fields:
// any option the compiler computes itself is stripped, so computed values win
// on collision within the same section. The result is a deep copy.
func mergeExtra(extra map[string]map[string]string) map[string]map[string]string {
	if len(extra) == 0 {
		return nil
	}

	merged := make(map[string]map[string]string, len(extra))
	for section, settings := range extra {
		for name, value := range settings {
			if isComputedOption(section, name) {
				continue
			}
			if merged[section] == nil {
				merged[section] = make(map[string]string, len(settings))
			}
			merged[section][name] = value
		}
	}
	if len(merged) == 0 {
		return nil
	}
	return merged
}

func isComputedOption(section, name string) bool {
	return (section == "Unit" && name == "Description") ||
		(section == "Service" && name == "ExecStart")
}
