// pkg/xdg/types.go

package xdg

const (
	// Permission modes (in octal)
	DirPermStandard        = 0755
	DirPermPrivate         = 0700
	FilePermStandard       = 0644
	FilePermOwnerReadWrite = 0600
)
