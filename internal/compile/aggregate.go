package compile

import (
	"imapmaildirgen/internal/artifact"
	"imapmaildirgen/internal/registry"
)

// Compile runs the full pipeline over a registry snapshot: filter to enabled
// accounts, normalize each, compile each, and aggregate by artifact kind.
// Any failure aborts the whole run; a partial set is never returned.
func Compile(reg registry.Registry, opts Options) (*artifact.Set, error) {
	set := artifact.NewSet()

	for _, account := range reg.Enabled() {
		normalized, err := Normalize(account)
		if err != nil {
			return nil, err
		}

		svc, timer, cfg := CompileAccount(normalized, opts)

		if err := set.PutService(normalized.Name, svc); err != nil {
			return nil, err
		}
		if err := set.PutTimer(normalized.Name, timer); err != nil {
			return nil, err
		}
		if err := set.PutConfig(normalized.Name, cfg); err != nil {
			return nil, err
		}
	}

	return set, nil
}
