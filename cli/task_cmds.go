package cli

import (
	"github.com/spf13/cobra"

	"github.com/redisctl/redisctl/operation"
)

// Task commands track cloud operations by identifier, including re-checking
// one after a prior invocation timed out.

type taskGetCmd struct{}

func (c *taskGetCmd) registerFlags() *cobra.Command {
	return &cobra.Command{
		Use:   "get <task-id>",
		Short: "Show a cloud task",
		Args:  cobra.ExactArgs(1),
	}
}

func (c *taskGetCmd) run(cl *simpleCLIClient, cmd *cobra.Command, args []string) error {
	b, err := cl.cloudBackend()
	if err != nil {
		return err
	}
	doc, err := b.OperationStatus(cl.ctx, args[0])
	if err != nil {
		return err
	}
	return cl.render(doc)
}

type taskWaitCmd struct {
	waitArgs
}

func (c *taskWaitCmd) registerFlags() *cobra.Command {
	r := &cobra.Command{
		Use:   "wait <task-id>",
		Short: "Wait for a cloud task to finish",
		Args:  cobra.ExactArgs(1),
	}
	c.waitArgs.register(r)
	return r
}

func (c *taskWaitCmd) run(cl *simpleCLIClient, cmd *cobra.Command, args []string) error {
	b, err := cl.cloudBackend()
	if err != nil {
		return err
	}
	policy := c.waitArgs.policy()
	policy.Enabled = true
	if _, err := operation.Resume(cl.ctx, b, args[0], policy, cl.progress()); err != nil {
		return err
	}
	doc, err := b.OperationStatus(cl.ctx, args[0])
	if err != nil {
		return err
	}
	return cl.render(doc)
}
