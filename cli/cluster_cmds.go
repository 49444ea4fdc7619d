package cli

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/redisctl/redisctl/operation"
)

// Cluster commands are inherently enterprise-bound and bypass deployment
// resolution.

type clusterGetCmd struct{}

func (c *clusterGetCmd) registerFlags() *cobra.Command {
	return &cobra.Command{
		Use:   "get",
		Short: "Show cluster settings",
	}
}

func (c *clusterGetCmd) run(cl *simpleCLIClient, cmd *cobra.Command, args []string) error {
	b, err := cl.enterpriseBackend()
	if err != nil {
		return err
	}
	doc, err := b.Get(cl.ctx, "/v1/cluster")
	if err != nil {
		return err
	}
	return cl.render(doc)
}

type clusterUpdateCmd struct {
	data string
	waitArgs
}

func (c *clusterUpdateCmd) registerFlags() *cobra.Command {
	r := &cobra.Command{
		Use:   "update",
		Short: "Update cluster settings",
	}
	r.Flags().StringVar(&c.data, "data", "", "changed fields as JSON, or @file")
	c.waitArgs.register(r)
	return r
}

func (c *clusterUpdateCmd) run(cl *simpleCLIClient, cmd *cobra.Command, args []string) error {
	if c.data == "" {
		return errors.New("--data is required")
	}
	b, err := cl.enterpriseBackend()
	if err != nil {
		return err
	}
	body, err := readJSONData(c.data)
	if err != nil {
		return err
	}
	return cl.runMutation(b, operation.Request{Method: "PUT", Path: "/v1/cluster", Body: body}, c.waitArgs)
}
