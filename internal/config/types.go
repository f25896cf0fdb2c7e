package config

// Link represents one managed file: a source file inside the dotfiles tree and
// the home-relative path where its symlink is created.
// - Source: file name inside the dotfiles directory (e.g. "zshrc").
// - Target: path relative to the home directory (e.g. ".zshrc").
// The two differ deliberately for files whose installed name is an application
// convention rather than the repository name (e.g. sshconfig -> .ssh/config).
type Link struct {
	Source string `yaml:"source"`
	Target string `yaml:"target"`
}

// Config is the top-level structure describing one installation run.
// It carries the managed link mapping, the package manifest, the preflight
// requirements, and the fixed filesystem locations the installer writes to.
type Config struct {
	// DotfilesDir is the absolute path of the dotfiles source tree. The
	// completion marker lives at its root.
	DotfilesDir string `yaml:"dotfiles_dir"`

	// BackupDir is the backup root, relative to the home directory. Each run
	// creates one timestamped set underneath it.
	BackupDir string `yaml:"backup_dir"`

	// Links is the managed file mapping applied by the symlink installer.
	Links []Link `yaml:"links"`

	// Packages is the ordered manifest of CLI packages to ensure-install.
	// Each entry succeeds or fails independently.
	Packages []string `yaml:"packages"`

	// RequiredCommands are the external commands preflight must resolve on
	// PATH before any mutation begins.
	RequiredCommands []string `yaml:"required_commands"`

	// NetworkProbe is the URL preflight probes for reachability. It points at
	// the host the package-manager bootstrap script is fetched from, so a
	// passing preflight implies the later fetch can work.
	NetworkProbe string `yaml:"network_probe"`
}
