package domain

import "path/filepath"

const (
	// StateDirName is the name of the local state directory.
	StateDirName = ".pagefresh"

	// StoreDirName is the name of the file store directory.
	StoreDirName = "store"

	// ConfigFileName is the default configuration file.
	ConfigFileName = "pagefresh.yaml"

	// DefaultIndustriesFile is the default catalog A file.
	DefaultIndustriesFile = "catalog/industries.yaml"

	// DefaultLocationsFile is the default catalog B file.
	DefaultLocationsFile = "catalog/locations.yaml"

	// DefaultPostgresTable is the table used by the postgres store.
	DefaultPostgresTable = "page_content_cache"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// DefaultStorePath returns the default directory of the file store.
// It joins .pagefresh and store.
func DefaultStorePath() string {
	return filepath.Join(StateDirName, StoreDirName)
}
