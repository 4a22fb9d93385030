package cmd

import (
	"github.com/khel-store/khel/internal/ux"
)

// structured reports whether a machine-readable output format was requested.
func structured() bool {
	return flagFormat == "json" || flagFormat == "yaml"
}

// emit writes data through the configured formatter.
func emit(data interface{}) error {
	formatter, err := ux.NewFormatter(flagFormat, nil)
	if err != nil {
		return err
	}
	return formatter.Format(data)
}
