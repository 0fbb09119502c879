package client

import (
	"fmt"
	"os"
	"runtime"
)

// Run executes a command, keeping stdout clean for the command output.
// Panics are recovered and written to the log file with their stack.
// Failures are logged before being reported to the caller, as a full
// value dump when NOTES_DEBUG is set.
func Run(cmd func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			switch r := r.(type) {
			case error:
				err = r
			default:
				err = fmt.Errorf("%v", r)
			}
			stack := make([]byte, 4<<10)
			length := runtime.Stack(stack, true)

			NewLogger().Printf("[PANIC RECOVER] %s %s\n", err, stack[:length])
		}
	}()

	if err = cmd(); err != nil {
		debug(err, os.Getenv("NOTES_DEBUG") != "")
	}
	return err
}
