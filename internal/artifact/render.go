package artifact

import (
	"bytes"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/coreos/go-systemd/v22/unit"
	"github.com/pkg/errors"
)

// RenderService serializes a service descriptor to systemd unit text.
// Section and option order is fixed so reruns are byte-identical.
func RenderService(svc Service) ([]byte, error) {
	opts := []*unit.UnitOption{
		unit.NewUnitOption("Unit", "Description", svc.Description),
	}
	opts = append(opts, extraSectionOptions(svc.Extra, "Unit")...)

	opts = append(opts, unit.NewUnitOption("Service", "ExecStart", execStartValue(svc.ExecStart)))
	opts = append(opts, extraSectionOptions(svc.Extra, "Service")...)

	for _, section := range remainingSections(svc.Extra, "Unit", "Service") {
		opts = append(opts, extraSectionOptions(svc.Extra, section)...)
	}

	return serializeUnit(opts)
}

// RenderTimer serializes a timer descriptor to systemd unit text.
func RenderTimer(t Timer) ([]byte, error) {
	opts := []*unit.UnitOption{
		unit.NewUnitOption("Unit", "Description", t.Description),
		unit.NewUnitOption("Timer", "OnStartupSec", strconv.Itoa(t.OnStartupSec)),
		unit.NewUnitOption("Timer", "OnUnitInactiveSec", strconv.Itoa(t.OnUnitInactiveSec)),
	}
	for _, target := range t.WantedBy {
		opts = append(opts, unit.NewUnitOption("Install", "WantedBy", target))
	}

	return serializeUnit(opts)
}

// RenderConfig serializes an account configuration to TOML.
func RenderConfig(c ConfigFile) ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c.Content); err != nil {
		return nil, errors.Wrapf(err, "encoding config for account %s", c.Account)
	}
	return buf.Bytes(), nil
}

func serializeUnit(opts []*unit.UnitOption) ([]byte, error) {
	data, err := io.ReadAll(unit.Serialize(opts))
	if err != nil {
		return nil, errors.Wrap(err, "serializing unit")
	}
	return data, nil
}

// execStartValue renders an argv as a systemd command line, quoting arguments
// that contain whitespace or quotes.
func execStartValue(argv []string) string {
	parts := make([]string, 0, len(argv))
	for _, arg := range argv {
		if strings.ContainsAny(arg, " \t\"'") {
			escaped := strings.ReplaceAll(arg, `\`, `\\`)
			escaped = strings.ReplaceAll(escaped, `"`, `\"`)
			arg = `"` + escaped + `"`
		}
		parts = append(parts, arg)
	}
	return strings.Join(parts, " ")
}

func extraSectionOptions(extra map[string]map[string]string, section string) []*unit.UnitOption {
	settings := extra[section]
	names := make([]string, 0, len(settings))
	for name := range settings {
		names = append(names, name)
	}
	sort.Strings(names)

	opts := make([]*unit.UnitOption, 0, len(names))
	for _, name := range names {
		opts = append(opts, unit.NewUnitOption(section, name, settings[name]))
	}
	return opts
}

func remainingSections(extra map[string]map[string]string, handled ...string) []string {
	sections := make([]string, 0, len(extra))
	for section := range extra {
		skip := false
		for _, h := range handled {
			if section == h {
				skip = true
				break
			}
		}
		if !skip {
			sections = append(sections, section)
		}
	}
	sort.Strings(sections)
	return sections
}
