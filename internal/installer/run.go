package installer

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"time"

	"dotstrap/internal/config"
	"dotstrap/internal/logger"
	"dotstrap/internal/state"
)

// Options carries everything one installation run needs. The clock, the
// network probe and the platform bootstrapper are injectable so tests can run
// against a temp directory with a fake clock and no network or brew at all.
type Options struct {
	Config config.Config
	// Home is the home directory the links and backups are rooted in.
	Home string
	// Force bypasses the already-installed refusal.
	Force bool
	// Now supplies the run timestamp; nil means time.Now.
	Now func() time.Time
	// CheckNetwork probes reachability; nil means the real HTTP probe.
	CheckNetwork func(probeURL string) error
	// Bootstrapper provisions the package manager; nil skips the whole
	// environment-bootstrap phase (packages included).
	Bootstrapper PlatformBootstrapper
}

// Report aggregates what a run actually did, so outcomes can be asserted
// programmatically instead of scraped from log output.
type Report struct {
	BackupSet string            // Absolute path of the backup set this run created
	Links     []LinkResult      // Per-managed-file outcomes
	Packages  map[string]string // Package name -> "present", "installed" or "failed"
}

// MarkerPath returns where the completion marker lives for a given config:
// at the root of the dotfiles tree.
func MarkerPath(cfg config.Config) string {
	return filepath.Join(cfg.DotfilesDir, state.MarkerFile)
}

// Run executes the full installation sequence:
//
//	marker check -> preflight -> backup -> link -> bootstrap -> re-source profile -> write marker
//
// A returned error is a fatal condition: the run stops where it is, nothing
// is rolled back (whatever the backup pass archived stays on disk as the
// recovery mechanism), and the marker is not written so a retry is not
// refused. On success the marker is written and the report returned.
func Run(opts Options) (*Report, error) {
	cfg := opts.Config
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	checkNetwork := opts.CheckNetwork
	if checkNetwork == nil {
		checkNetwork = CheckNetwork
	}

	// Refuse a second run unless explicitly overridden. This check comes
	// before everything else so an accidental re-run touches nothing.
	marker := MarkerPath(cfg)
	if state.Installed(marker) {
		if !opts.Force {
			return nil, fmt.Errorf("already installed (%s exists); re-run with --force to install anyway", marker)
		}
		logger.Warn("[WARN] Already installed, continuing because --force was given\n")
	}

	// Preflight: read-only checks, both fatal. No point archiving anything
	// if the run cannot complete.
	if err := CheckCommands(cfg.RequiredCommands); err != nil {
		return nil, err
	}
	if err := checkNetwork(cfg.NetworkProbe); err != nil {
		return nil, err
	}

	// Archive whatever the link phase could collide with: every managed
	// target plus the conventional ~/.ssh directory.
	backupRoot := filepath.Join(opts.Home, cfg.BackupDir)
	set, err := BackupTargets(opts.Home, backupRoot, now(), backupTargets(cfg))
	if err != nil {
		return nil, err
	}

	report := &Report{BackupSet: set}
	report.Links = CreateLinks(cfg.DotfilesDir, opts.Home, cfg.Links)

	if opts.Bootstrapper != nil {
		logger.Info("[INFO] Bootstrapping environment (%s branch)\n", opts.Bootstrapper.Name())
		if err := opts.Bootstrapper.EnsurePackageManager(); err != nil {
			return nil, err
		}
		report.Packages = InstallPackages(cfg.Packages)
	}

	resourceProfile(opts.Home)

	// Only now, with every phase behind us, does the machine count as
	// installed. Any fatal return above leaves the marker absent so a
	// retried run is not blocked.
	rec := &state.Record{
		CompletedAt: now(),
		BackupSet:   set,
		Packages:    report.Packages,
	}
	for _, r := range report.Links {
		rec.Links = append(rec.Links, state.LinkRecord{
			Source:  r.Source,
			Target:  r.Target,
			Outcome: string(r.Outcome),
			Reason:  r.Reason,
		})
	}
	state.Save(marker, rec)
	logger.Success("[OK] Installation complete. Backup set: %s\n", set)

	return report, nil
}

// backupTargets lists the home-relative paths the backup pass should archive:
// every managed link target plus the whole ~/.ssh directory, which holds more
// than the one config file the installer manages.
func backupTargets(cfg config.Config) []string {
	targets := make([]string, 0, len(cfg.Links)+1)
	for _, link := range cfg.Links {
		targets = append(targets, link.Target)
	}
	return append(targets, ".ssh")
}

// resourceProfile re-sources the user's shell profile so the freshly linked
// configuration takes effect in the invoking environment where possible.
// Purely best effort: by this point the installer's own work is done, so
// failures are suppressed down to a debug line.
func resourceProfile(home string) {
	zshrc := filepath.Join(home, ".zshrc")
	cmd := exec.Command("zsh", "-c", "source "+zshrc)
	if output, err := cmd.CombinedOutput(); err != nil {
		logger.Debug("[DEBUG] Re-sourcing %s failed (ignored): %v\nOutput: %s\n", zshrc, err, output)
		return
	}
	logger.Debug("[DEBUG] Re-sourced %s\n", zshrc)
}
