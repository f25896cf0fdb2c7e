package installer

import (
	"os"
	"path/filepath"

	"dotstrap/internal/config"
	"dotstrap/internal/logger"
)

// Outcome classifies what happened to a single managed file.
type Outcome string

const (
	// OutcomeLinked means the symlink was created pointing at the source file.
	OutcomeLinked Outcome = "linked"
	// OutcomeSkipped means the target already existed and was left untouched.
	OutcomeSkipped Outcome = "skipped"
	// OutcomeFailed means the link could not be created (missing source,
	// unwritable parent directory).
	OutcomeFailed Outcome = "failed"
)

// LinkResult is the per-managed-file outcome of the symlink installer,
// aggregated into the run report so tests and callers can assert on what
// happened instead of parsing log output.
type LinkResult struct {
	Source  string  // Absolute path inside the dotfiles tree
	Target  string  // Absolute path inside the home directory
	Outcome Outcome
	Reason  string // Populated for skipped and failed outcomes
}

// CreateLinks establishes a symlink in the home directory for each managed
// file whose target does not already exist. The installer is strictly
// additive: any present target — regular file, directory, or symlink from an
// earlier run — is skipped with a warning, never replaced. The backup pass
// has already archived whatever is there, but the live path stays authoritative.
func CreateLinks(dotfilesDir, home string, links []config.Link) []LinkResult {
	results := make([]LinkResult, 0, len(links))

	for _, link := range links {
		source := filepath.Join(dotfilesDir, link.Source)
		target := filepath.Join(home, link.Target)
		res := LinkResult{Source: source, Target: target}

		// Lstat, not Stat: an existing symlink (even dangling) occupies the
		// target and must not be clobbered.
		if _, err := os.Lstat(target); err == nil {
			res.Outcome = OutcomeSkipped
			res.Reason = "target already exists"
			logger.Warn("[WARN] %s already exists, leaving it in place\n", target)
			results = append(results, res)
			continue
		}

		// The source must exist before a link is worth creating; a dangling
		// managed link would only mask the real problem.
		if _, err := os.Stat(source); err != nil {
			res.Outcome = OutcomeFailed
			res.Reason = "source file missing"
			logger.Warn("[WARN] Source %s is missing, cannot link %s\n", source, target)
			results = append(results, res)
			continue
		}

		// Nested targets (the SSH config) need their parent directory first.
		// ~/.ssh must be 0700 or ssh refuses to use it.
		parent := filepath.Dir(target)
		perm := os.FileMode(0755)
		if filepath.Base(parent) == ".ssh" {
			perm = 0700
		}
		if err := os.MkdirAll(parent, perm); err != nil {
			res.Outcome = OutcomeFailed
			res.Reason = err.Error()
			logger.Warn("[WARN] Failed to create directory %s: %v\n", parent, err)
			results = append(results, res)
			continue
		}

		if err := os.Symlink(source, target); err != nil {
			res.Outcome = OutcomeFailed
			res.Reason = err.Error()
			logger.Warn("[WARN] Failed to link %s -> %s: %v\n", target, source, err)
			results = append(results, res)
			continue
		}

		res.Outcome = OutcomeLinked
		logger.Success("[OK] Linked %s -> %s\n", target, source)
		results = append(results, res)
	}

	return results
}
