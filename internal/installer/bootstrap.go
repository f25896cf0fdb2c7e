package installer

import (
	"bufio"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"dotstrap/internal/config"
	"dotstrap/internal/logger"
)

// PlatformBootstrapper provisions the system package manager for one OS
// family. The orchestration sequence stays identical across platforms; only
// the bootstrap mechanics differ, so new platforms slot in as new variants
// without touching the run sequence.
type PlatformBootstrapper interface {
	// Name identifies the platform branch for log output.
	Name() string
	// EnsurePackageManager makes `brew` usable on PATH, installing it via the
	// official bootstrap script if absent. An unusable package manager
	// afterwards is an error the caller treats as fatal.
	EnsurePackageManager() error
}

// NewBootstrapper picks the bootstrapper variant for the current OS.
// Anything that is not macOS gets the Linux branch, which covers the
// Linuxbrew family of installs.
func NewBootstrapper(home string) PlatformBootstrapper {
	if runtime.GOOS == "darwin" {
		return &darwinBootstrapper{}
	}
	return &linuxBootstrapper{home: home}
}

// runBootstrapScript fetches the Homebrew install script to a temp file and
// runs it non-interactively with bash. The fetch happens through the same
// HTTP path preflight already probed, so failures here are unexpected.
func runBootstrapScript() error {
	script := filepath.Join(os.TempDir(), "dotstrap-brew-install.sh")
	if err := downloadFile(config.BootstrapScriptURL, script); err != nil {
		return fmt.Errorf("failed to fetch bootstrap script: %w", err)
	}

	cmd := exec.Command("/bin/bash", script)
	cmd.Env = append(os.Environ(), "NONINTERACTIVE=1")
	logger.Debug("[DEBUG] Running command: %s\n", strings.Join(cmd.Args, " "))
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("bootstrap script failed: %v\nOutput: %s", err, output)
	}
	return nil
}

// darwinBootstrapper is the macOS branch: run the official install script,
// then require brew to resolve on PATH.
type darwinBootstrapper struct{}

func (b *darwinBootstrapper) Name() string { return "macos" }

func (b *darwinBootstrapper) EnsurePackageManager() error {
	if _, err := exec.LookPath("brew"); err == nil {
		logger.Info("[INFO] Homebrew already installed. Skipping bootstrap.\n")
		return nil
	}

	logger.Info("[INFO] Installing Homebrew...\n")
	if err := runBootstrapScript(); err != nil {
		return err
	}

	// The whole package phase depends on brew, so an unresolvable brew after
	// a seemingly successful bootstrap is fatal, not a warning.
	if _, err := exec.LookPath("brew"); err != nil {
		return fmt.Errorf("brew not resolvable on PATH after bootstrap")
	}
	logger.Success("[OK] Homebrew installed\n")
	return nil
}

// linuxBrewPrefix is where the Linuxbrew bootstrap script lands its install.
const linuxBrewPrefix = "/home/linuxbrew/.linuxbrew"

// linuxBootstrapper is the Linux branch. The bootstrap script trips over an
// existing ~/.zshrc (which at this point is already a managed symlink), so
// the file is moved aside for the duration of the script and restored at the
// end. In between, the brew directories are added to the process PATH and the
// shellenv line is persisted into the login-shell startup files, and a
// baseline compiler toolchain is installed since Linuxbrew builds some
// formulae from source.
type linuxBootstrapper struct {
	home string
}

func (b *linuxBootstrapper) Name() string { return "linux" }

func (b *linuxBootstrapper) EnsurePackageManager() error {
	if _, err := exec.LookPath("brew"); err == nil {
		logger.Info("[INFO] Homebrew already installed. Skipping bootstrap.\n")
		return nil
	}

	// Move ~/.zshrc out of the script's way; it is restored no matter how the
	// bootstrap itself goes.
	zshrc := filepath.Join(b.home, ".zshrc")
	stash := zshrc + ".dotstrap-stash"
	moved := false
	if _, err := os.Lstat(zshrc); err == nil {
		logger.Debug("[DEBUG] Moving %s aside for the bootstrap script\n", zshrc)
		if err := os.Rename(zshrc, stash); err != nil {
			return fmt.Errorf("failed to move %s aside: %w", zshrc, err)
		}
		moved = true
	}
	defer func() {
		if moved {
			if err := os.Rename(stash, zshrc); err != nil {
				logger.Error("[ERROR] Failed to restore %s: %v\n", zshrc, err)
			} else {
				logger.Debug("[DEBUG] Restored %s\n", zshrc)
			}
		}
	}()

	logger.Info("[INFO] Installing Homebrew (Linux)...\n")
	if err := runBootstrapScript(); err != nil {
		return err
	}

	// Extend the current process PATH so the package phase below finds brew,
	// then persist the same setup for future login shells. The stashed
	// ~/.zshrc is deliberately not one of the files written here, or the
	// restore above would wipe the appended line.
	os.Setenv("PATH", linuxBrewPrefix+"/bin:"+linuxBrewPrefix+"/sbin:"+os.Getenv("PATH"))
	shellenv := fmt.Sprintf(`eval "$(%s/bin/brew shellenv)"`, linuxBrewPrefix)
	for _, rc := range []string{".profile", ".bashrc"} {
		appendLineIfAbsent(filepath.Join(b.home, rc), shellenv)
	}

	if _, err := exec.LookPath("brew"); err != nil {
		return fmt.Errorf("brew not resolvable on PATH after bootstrap")
	}
	logger.Success("[OK] Homebrew installed\n")

	// Baseline toolchain so formulae without bottles can compile. Not fatal:
	// the linker's primary contract is already fulfilled without it.
	installCmd := exec.Command("brew", "install", "gcc")
	logger.Debug("[DEBUG] Running command: %s\n", strings.Join(installCmd.Args, " "))
	if output, err := installCmd.CombinedOutput(); err != nil {
		logger.Warn("[WARN] Failed to install gcc toolchain: %v\nOutput: %s\n", err, output)
	} else {
		logger.Success("[OK] Installed gcc toolchain\n")
	}

	return nil
}

// appendLineIfAbsent appends a line to a shell startup file unless the exact
// line is already present, so repeated bootstrap runs do not stack duplicate
// PATH setup. The file is created if it does not exist yet.
func appendLineIfAbsent(path, line string) {
	// Read existing lines to avoid duplicates
	existing := make(map[string]bool)
	if f, err := os.Open(path); err == nil {
		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			existing[strings.TrimSpace(scanner.Text())] = true
		}
		_ = f.Close()
	}
	if existing[strings.TrimSpace(line)] {
		logger.Debug("[DEBUG] Line already present in %s: %s\n", path, line)
		return
	}

	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		logger.Error("[ERROR] Unable to open file %s for appending: %v\n", path, err)
		return
	}
	defer file.Close()

	if _, err := file.WriteString(line + "\n"); err != nil {
		logger.Error("[ERROR] Failed to write to %s: %v\n", path, err)
	} else {
		logger.Info("[INFO] Added to %s: %s\n", path, line)
	}
}

// InstallPackages ensures each package in the manifest is installed through
// brew. Already-installed packages are skipped; a package that fails to
// install is downgraded to a warning and the loop continues, since the
// convenience tools are non-essential to the installer's primary contract.
// The returned map records per-package outcomes ("present", "installed",
// "failed") for the run report.
func InstallPackages(packages []string) map[string]string {
	results := make(map[string]string, len(packages))

	for _, pkg := range packages {
		// `brew list --versions` exits zero only when the package is installed
		queryCmd := exec.Command("brew", "list", "--versions", pkg)
		if err := queryCmd.Run(); err == nil {
			logger.Info("[INFO] %s already installed. Skipping.\n", pkg)
			results[pkg] = "present"
			continue
		}

		logger.Info("[INFO] Installing %s...\n", pkg)
		installCmd := exec.Command("brew", "install", pkg)
		logger.Debug("[DEBUG] Running command: %s\n", strings.Join(installCmd.Args, " "))
		output, err := installCmd.CombinedOutput()
		if err != nil {
			logger.Warn("[WARN] Failed to install %s: %v\nOutput: %s\n", pkg, err, output)
			results[pkg] = "failed"
			continue
		}
		logger.Success("[OK] Installed %s\n", pkg)
		results[pkg] = "installed"
	}

	return results
}
