package tools

type ToolManager interface {
	Installed() (bool, error)
	Install() error
	Update() error
	Remove() error
}

// VersionReporter is implemented by managers that can report versions for
// the interactive menu. Errors are tolerated; the menu falls back to
// "not installed".
type VersionReporter interface {
	CurrentVersion() (string, error)
	LatestVersion() (string, error)
}
