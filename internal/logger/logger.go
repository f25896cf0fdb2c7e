package logger

import (
	"os"

	"github.com/fatih/color" // Import the fatih/color package for colored console output
)

// Define colorized printing functions for different log levels using fatih/color.
// These are package-level variables holding functions that behave like fmt.Printf,
// but with text colored appropriately for the log level.

// Info logs informational progress messages in blue color.
var Info = color.New(color.FgBlue).PrintfFunc()

// Success logs positive results in green color.
// Green signals that a step (a link created, a package installed) completed cleanly.
var Success = color.New(color.FgGreen).PrintfFunc()

// Warn logs warning messages in bright magenta color.
// Magenta is bright and stands out, signaling caution without being too alarming.
// Warnings mean a single item was skipped or failed but the run continues.
var Warn = color.New(color.FgHiMagenta).PrintfFunc()

// Error logs error messages in red color.
// Red is commonly associated with errors or critical problems to draw immediate attention.
var Error = color.New(color.FgRed).PrintfFunc()

// Debug logs debug messages in cyan color if enabled, otherwise is a no-op.
// This is a function variable that is assigned dynamically during Init based on the debug flag.
// When debug logging is disabled, Debug is assigned to an empty function that does nothing.
// It starts as a no-op so packages that log before Init runs do not hit a nil function.
var Debug = func(format string, a ...any) {}

// osExit is the exit function used by Fatalf. It is a variable so tests can
// intercept termination instead of killing the test process.
var osExit = os.Exit

// Init initializes the logger package, specifically enabling or disabling debug logging.
// Parameters:
// - enableDebug: boolean flag to turn debug messages on or off.
// When enabled, Debug will print messages in cyan color.
// When disabled, Debug will be a no-op function that silently ignores debug logs.
func Init(enableDebug bool) {
	if enableDebug {
		// Assign Debug to print cyan-colored debug messages.
		Debug = color.New(color.FgCyan).PrintfFunc()
	} else {
		// Assign Debug to a no-op function that ignores all debug logs to avoid runtime overhead.
		Debug = func(format string, a ...any) {}
	}
}

// Fatalf prints a red fatal message and terminates the process with exit code 1.
// This is the sole error-termination mechanism of the program: components report
// fatal conditions as errors up to the command layer, which feeds them here.
// Nothing after a Fatalf call runs, so it must only be used once all
// log-and-continue options are exhausted.
func Fatalf(format string, a ...any) {
	Error(format, a...)
	osExit(1)
}
