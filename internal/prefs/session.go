package prefs

import (
	"os"
	"strconv"
	"strings"
)

// SessionEnv overrides the detected terminal session id.
const SessionEnv = "POKEVIEW_SESSION"

// SessionID identifies the terminal session that owns Tab scoped values.
// It prefers POKEVIEW_SESSION, then the tmux pane, then the parent process
// which is normally the interactive shell.
func SessionID() string {
	if id := strings.TrimSpace(os.Getenv(SessionEnv)); id != "" {
		return id
	}
	if pane := strings.TrimSpace(os.Getenv("TMUX_PANE")); pane != "" {
		return "tmux:" + pane
	}
	return "ppid:" + strconv.Itoa(os.Getppid())
}
