package registry

import (
	"os"

	"github.com/pkg/errors"
)

// Load reads and decodes a registry file.
func Load(path string) (Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Registry{}, errors.Wrap(err, "reading registry file")
	}

	reg, err := Decode(data)
	if err != nil {
		return Registry{}, errors.Wrapf(err, "parsing registry file %s", path)
	}

	return reg, nil
}
