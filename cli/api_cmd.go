package cli

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/redisctl/redisctl/operation"
)

// apiCmd is the raw escape hatch: issue any request against the resolved
// backend. Mutating verbs honor the same wait flags as the typed commands.
type apiCmd struct {
	data string
	waitArgs
}

func (c *apiCmd) registerFlags() *cobra.Command {
	r := &cobra.Command{
		Use:   "api <get|post|put|delete> <path>",
		Short: "Issue a raw API request against the resolved deployment",
		Args:  cobra.ExactArgs(2),
	}
	r.Flags().StringVar(&c.data, "data", "", "request body as JSON, or @file")
	c.waitArgs.register(r)
	return r
}

func (c *apiCmd) run(cl *simpleCLIClient, cmd *cobra.Command, args []string) error {
	method := strings.ToUpper(args[0])
	path := args[1]
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	b, err := cl.backendFor("api")
	if err != nil {
		return err
	}

	switch method {
	case "GET":
		doc, err := b.Get(cl.ctx, path)
		if err != nil {
			return err
		}
		return cl.render(doc)
	case "POST", "PUT", "DELETE":
		var body interface{}
		if c.data != "" {
			if body, err = readJSONData(c.data); err != nil {
				return err
			}
		}
		return cl.runMutation(b, operation.Request{Method: method, Path: path, Body: body}, c.waitArgs)
	default:
		return errors.Errorf("unsupported method %q, expected get|post|put|delete", args[0])
	}
}
