package config

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

// BootstrapScriptURL is where the Homebrew install script is fetched from.
// The default network probe targets the same host.
const BootstrapScriptURL = "https://raw.githubusercontent.com/Homebrew/install/HEAD/install.sh"

// Default returns the compiled-in configuration: the fixed managed-file
// mapping, the baseline package manifest, and the conventional locations.
// This is what ships with the installer; a dotstrap.yaml can override parts
// of it but the tool is fully functional without one.
func Default() Config {
	return Config{
		DotfilesDir: filepath.Join(xdg.Home, ".dotfiles"),
		BackupDir:   ".dotfiles_backup",
		Links: []Link{
			{Source: "zshrc", Target: ".zshrc"},
			{Source: "vimrc", Target: ".vimrc"},
			{Source: "gitconfig", Target: ".gitconfig"},
			{Source: "tmux.conf", Target: ".tmux.conf"},
			// SSH insists on ~/.ssh/config, so this is the one entry whose
			// installed name is not the repository file name.
			{Source: "sshconfig", Target: filepath.Join(".ssh", "config")},
		},
		Packages: []string{
			"git", "zsh", "tmux", "vim", "wget", "tree", "jq", "ripgrep", "fzf", "htop",
		},
		RequiredCommands: []string{"git", "curl", "zsh"},
		NetworkProbe:     "https://raw.githubusercontent.com",
	}
}

// Load reads an optional dotstrap.yaml and merges it over the defaults.
// An empty path means "no override file" and returns Default() unchanged.
// A path that was explicitly given but cannot be read or parsed is a
// programming/operator error the run cannot proceed from, so it panics in the
// same way the config loader always has.
func Load(configFile string) Config {
	cfg := Default()
	if configFile == "" {
		return cfg
	}

	// Read and parse the manifest. The wrapper mirrors the file layout:
	// all settings live under a top-level `dotstrap:` key.
	raw, err := os.ReadFile(configFile)
	if err != nil {
		panic("Failed to read " + configFile + ": " + err.Error())
	}
	var wrapper struct {
		Dotstrap Config `yaml:"dotstrap"`
	}
	if err := yaml.Unmarshal(raw, &wrapper); err != nil {
		panic("Failed to unmarshal " + configFile + ": " + err.Error())
	}

	// Merge: only fields the file actually set override the defaults, so a
	// manifest that just swaps the package list keeps the standard links.
	override := wrapper.Dotstrap
	if override.DotfilesDir != "" {
		cfg.DotfilesDir = override.DotfilesDir
	}
	if override.BackupDir != "" {
		cfg.BackupDir = override.BackupDir
	}
	if len(override.Links) > 0 {
		cfg.Links = override.Links
	}
	if len(override.Packages) > 0 {
		cfg.Packages = override.Packages
	}
	if len(override.RequiredCommands) > 0 {
		cfg.RequiredCommands = override.RequiredCommands
	}
	if override.NetworkProbe != "" {
		cfg.NetworkProbe = override.NetworkProbe
	}
	return cfg
}
