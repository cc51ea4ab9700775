package fsutil

// File and directory permission constants.
const (
	// FileModeDefault is used for config files written by the bridge.
	FileModeDefault = 0o644 // -rw-r--r--
	// DirModeDefault is used for directories created by the bridge.
	DirModeDefault = 0o755 // drwxr-xr-x
)

// Well-known system locations.
const (
	// AppName is the name of the application used in paths.
	AppName = "aptbridge"

	// SystemConfigDir holds the system-wide bridge configuration.
	SystemConfigDir = "/etc/aptbridge"
	// DefaultStoreDir is where store definition files are looked up.
	DefaultStoreDir = "/etc/container-apps/stores"
	// DefaultDpkgStatus is the dpkg database of installed packages.
	DefaultDpkgStatus = "/var/lib/dpkg/status"
	// DefaultListsDir holds the package lists fetched by apt-get update.
	DefaultListsDir = "/var/lib/apt/lists"
)
