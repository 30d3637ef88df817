package handlers

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/imamik/djazure-bootstrap/internal/config"
)

// saveConfig writes the configuration file (for testing injection).
var saveConfig = config.Save

// Init writes a configuration file holding every default, for editing.
// An existing file is kept unless force is set.
func Init(path string, force bool) error {
	if path == "" {
		path = config.DefaultConfigPath()
	}

	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to check %s: %w", path, err)
		}
	}

	if err := saveConfig(config.Default(), path); err != nil {
		return err
	}

	fmt.Fprintf(output, "Wrote %s\n", path)
	return nil
}
