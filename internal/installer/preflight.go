package installer

import (
	"fmt"
	"net/http"
	"os/exec"

	"dotstrap/internal/logger"
)

// CheckCommands verifies that each required external command resolves on the
// executable search path. It returns an error naming the first missing
// command; nothing is mutated, so failing here is always safe.
func CheckCommands(commands []string) error {
	for _, name := range commands {
		path, err := exec.LookPath(name)
		if err != nil {
			return fmt.Errorf("required command %q not found on PATH", name)
		}
		logger.Debug("[DEBUG] Found required command %s at %s\n", name, path)
	}
	return nil
}

// CheckNetwork probes the given URL to confirm the package-source host is
// reachable before any filesystem mutation begins. Any HTTP response counts
// as reachable (even an error status proves the host answered); only a
// transport-level failure is reported. There is deliberately no timeout
// wrapper: a one-shot setup tool blocks until the network answers or the
// operator interrupts it.
func CheckNetwork(probeURL string) error {
	logger.Debug("[DEBUG] Probing network reachability via %s\n", probeURL)
	resp, err := http.Get(probeURL)
	if err != nil {
		return fmt.Errorf("network host unreachable (%s): %w", probeURL, err)
	}
	if cerr := resp.Body.Close(); cerr != nil {
		logger.Error("[ERROR] Failed to close response body: %s\n", cerr)
	}
	logger.Debug("[DEBUG] Network probe answered with HTTP status %d\n", resp.StatusCode)
	return nil
}
