package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInitTogglesDebug(t *testing.T) {
	Init(false)
	assert.NotNil(t, Debug, "Debug must stay callable when disabled")
	Debug("this goes nowhere %d\n", 1)

	Init(true)
	assert.NotNil(t, Debug)
}

func TestFatalfExitsNonZero(t *testing.T) {
	exitCode := -1
	orig := osExit
	osExit = func(code int) { exitCode = code }
	defer func() { osExit = orig }()

	Fatalf("[FATAL] boom: %s\n", "reason")

	assert.Equal(t, 1, exitCode, "Fatalf must terminate with exit code 1")
}
