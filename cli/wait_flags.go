package cli

import (
	"encoding/json"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/redisctl/redisctl/operation"
)

// waitArgs are the flags every mutating command carries for completion
// tracking.
type waitArgs struct {
	wait            bool
	waitTimeoutSec  int
	waitIntervalSec int
}

func (w *waitArgs) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&w.wait, "wait", false, "wait for the asynchronous operation to complete")
	cmd.Flags().IntVar(&w.waitTimeoutSec, "wait-timeout", 600, "maximum seconds to wait for completion")
	cmd.Flags().IntVar(&w.waitIntervalSec, "wait-interval", 10, "seconds between status queries")
}

func (w *waitArgs) policy() operation.WaitPolicy {
	return operation.WaitPolicy{
		Enabled:  w.wait,
		Timeout:  time.Duration(w.waitTimeoutSec) * time.Second,
		Interval: time.Duration(w.waitIntervalSec) * time.Second,
	}
}

// readJSONData parses a --data value: inline JSON, or @path to read a file.
func readJSONData(data string) (interface{}, error) {
	content := data
	if path := strings.TrimPrefix(data, "@"); path != data {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read data file %s", path)
		}
		content = string(raw)
	}
	var doc interface{}
	if err := json.Unmarshal([]byte(content), &doc); err != nil {
		return nil, errors.Wrap(err, "invalid JSON in --data")
	}
	return doc, nil
}
