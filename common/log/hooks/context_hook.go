package hooks

import (
	"runtime/debug"
	"strings"

	"github.com/sirupsen/logrus"
)

// contextHook annotates every entry with the file:line of the log callsite,
// recovered from the first frame above the logrus machinery.
type contextHook struct {
}

func NewContextHook() contextHook {
	return contextHook{}
}

func (hook contextHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (hook contextHook) Fire(entry *logrus.Entry) error {
	lines := strings.Split(string(debug.Stack()), "\n")
	pastHook := false
	for _, line := range lines {
		if strings.Contains(line, "context_hook.go:") {
			pastHook = true
			continue
		}
		if !pastHook || strings.Contains(line, "/logrus") {
			continue
		}
		if strings.Contains(line, ".go:") {
			ctx := strings.Split(line, "redisctl/")
			entry.Data["file:line"] = strings.TrimSpace(ctx[len(ctx)-1])
			break
		}
	}
	return nil
}
