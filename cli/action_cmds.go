package cli

import (
	"github.com/spf13/cobra"

	"github.com/redisctl/redisctl/operation"
)

// Action commands track cluster operations by uid, the enterprise
// counterpart of the cloud task commands.

type actionGetCmd struct{}

func (c *actionGetCmd) registerFlags() *cobra.Command {
	return &cobra.Command{
		Use:   "get <action-uid>",
		Short: "Show a cluster action",
		Args:  cobra.ExactArgs(1),
	}
}

func (c *actionGetCmd) run(cl *simpleCLIClient, cmd *cobra.Command, args []string) error {
	b, err := cl.enterpriseBackend()
	if err != nil {
		return err
	}
	doc, err := b.OperationStatus(cl.ctx, args[0])
	if err != nil {
		return err
	}
	return cl.render(doc)
}

type actionWaitCmd struct {
	waitArgs
}

func (c *actionWaitCmd) registerFlags() *cobra.Command {
	r := &cobra.Command{
		Use:   "wait <action-uid>",
		Short: "Wait for a cluster action to finish",
		Args:  cobra.ExactArgs(1),
	}
	c.waitArgs.register(r)
	return r
}

func (c *actionWaitCmd) run(cl *simpleCLIClient, cmd *cobra.Command, args []string) error {
	b, err := cl.enterpriseBackend()
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
