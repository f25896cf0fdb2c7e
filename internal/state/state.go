package state

import (
	"encoding/json" // For JSON encoding and decoding of the marker file
	"os"            // For file system operations like reading and writing files
	"time"

	"dotstrap/internal/logger" // Logger package for reporting marker read/write problems
)

// MarkerFile is the name of the completion marker, written at the root of the
// dotfiles tree. Its presence is what makes a machine count as installed.
const MarkerFile = ".dotstrap-installed"

// LinkRecord captures the outcome of one managed file during the run that
// wrote the marker: where the link points from and to, and whether it was
// linked, skipped, or failed.
type LinkRecord struct {
	Source  string `json:"source"`  // Absolute path of the file inside the dotfiles tree
	Target  string `json:"target"`  // Absolute path of the symlink in the home directory
	Outcome string `json:"outcome"` // "linked", "skipped" or "failed"
	Reason  string `json:"reason,omitempty"`
}

// Record is the JSON body of the completion marker. The marker's existence
// alone carries the installed/not-installed state; the body is a human- and
// test-readable account of what the successful run actually did.
type Record struct {
	CompletedAt time.Time         `json:"completed_at"`       // When the run finished
	BackupSet   string            `json:"backup_set"`         // Absolute path of the backup set the run created
	Links       []LinkRecord      `json:"links"`              // Per-managed-file outcomes
	Packages    map[string]string `json:"packages,omitempty"` // Package name -> "present", "installed" or "failed"
}

// Installed reports whether the completion marker exists at the given path.
// Only presence matters; an unreadable or empty body still means installed.
func Installed(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

// Load reads the marker's run record from disk.
// If the file does not exist or cannot be parsed, it returns a new empty
// Record so callers never deal with nil maps or a nil pointer.
func Load(path string) *Record {
	// Read the entire marker file into memory
	file, err := os.ReadFile(path)
	if err != nil {
		// Missing or unreadable marker body: return an empty initialized record
		return &Record{Packages: make(map[string]string)}
	}

	// Parse JSON data into a Record struct
	var rec Record
	_ = json.Unmarshal(file, &rec)

	// Defensive: ensure the map is initialized if JSON contained null for it
	if rec.Packages == nil {
		rec.Packages = make(map[string]string)
	}

	return &rec
}

// Save writes the given run record as the completion marker at the given path.
// It pretty-prints the JSON with indentation for readability.
// Errors during marshalling or writing are logged but not propagated: by the
// time the marker is written the run has already succeeded, and a marker that
// failed to land only means the next run is not refused.
func Save(path string, rec *Record) {
	// Marshal the Record struct into indented JSON bytes
	file, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		// Log marshalling errors, typically should never happen unless invalid data
		logger.Error("[ERROR] Failed to marshal run record: %v\n", err)
		return
	}

	// Log debug info showing the full JSON record being written (can be verbose)
	logger.Debug("[DEBUG] Writing completion marker to %s:\n%s\n", path, string(file))

	// Write the JSON bytes to the file with mode 0644 (read/write owner, read others)
	err = os.WriteFile(path, file, 0644)
	if err != nil {
		// Log write errors, e.g., permission denied or disk full
		logger.Error("[ERROR] Failed to write completion marker %s: %v\n", path, err)
	}
}
