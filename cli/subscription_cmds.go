package cli

import (
	"github.com/spf13/cobra"
)

// Subscription commands are inherently cloud-bound and bypass deployment
// resolution.

type subscriptionListCmd struct{}

func (c *subscriptionListCmd) registerFlags() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List subscriptions",
	}
}

func (c *subscriptionListCmd) run(cl *simpleCLIClient, cmd *cobra.Command, args []string) error {
	b, err := cl.cloudBackend()
	if err != nil {
		return err
	}
	doc, err := b.Get(cl.ctx, "/subscriptions")
	if err != nil {
		return err
	}
	return cl.render(doc)
}

type subscriptionGetCmd struct{}

func (c *subscriptionGetCmd) registerFlags() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one subscription",
		Args:  cobra.ExactArgs(1),
	}
}

func (c *subscriptionGetCmd) run(cl *simpleCLIClient, cmd *cobra.Command, args []string) error {
	b, err := cl.cloudBackend()
	if err != nil {
		return err
	}
	doc, err := b.Get(cl.ctx, "/subscriptions/"+args[0])
	if err != nil {
		return err
	}
	return cl.render(doc)
}
