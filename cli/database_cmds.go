package cli

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/redisctl/redisctl/deployment"
	"github.com/redisctl/redisctl/operation"
)

// Database commands can target either backend; the resolver decides which.
// Cloud databases live under a subscription, so cloud-routed invocations
// need --subscription; the cluster API addresses databases directly.

func databasePath(kind deployment.Kind, subscription int, id string) (string, error) {
	if kind == deployment.Enterprise {
		if id == "" {
			return "/v1/bdbs", nil
		}
		return "/v1/bdbs/" + id, nil
	}
	if subscription == 0 {
		return "", errors.New("--subscription is required for cloud database commands")
	}
	base := fmt.Sprintf("/subscriptions/%d/databases", subscription)
	if id == "" {
		return base, nil
	}
	return base + "/" + id, nil
}

type databaseListCmd struct {
	subscription int
}

func (c *databaseListCmd) registerFlags() *cobra.Command {
	r := &cobra.Command{
		Use:   "list",
		Short: "List databases",
	}
	r.Flags().IntVar(&c.subscription, "subscription", 0, "cloud subscription id")
	return r
}

func (c *databaseListCmd) run(cl *simpleCLIClient, cmd *cobra.Command, args []string) error {
	b, err := cl.backendFor("database list")
	if err != nil {
		return err
	}
	path, err := databasePath(b.Kind(), c.subscription, "")
	if err != nil {
		return err
	}
	doc, err := b.Get(cl.ctx, path)
	if err != nil {
		return err
	}
	return cl.render(doc)
}

type databaseGetCmd struct {
	subscription int
}

func (c *databaseGetCmd) registerFlags() *cobra.Command {
	r := &cobra.Command{
		Use:   "get <id>",
		Short: "Show one database",
		Args:  cobra.ExactArgs(1),
	}
	r.Flags().IntVar(&c.subscription, "subscription", 0, "cloud subscription id")
	return r
}

func (c *databaseGetCmd) run(cl *simpleCLIClient, cmd *cobra.Command, args []string) error {
	b, err := cl.backendFor("database get")
	if err != nil {
		return err
	}
	path, err := databasePath(b.Kind(), c.subscription, args[0])
	if err != nil {
		return err
	}
	doc, err := b.Get(cl.ctx, path)
	if err != nil {
		return err
	}
	return cl.render(doc)
}

type databaseCreateCmd struct {
	subscription int
	data         string
	waitArgs
}

func (c *databaseCreateCmd) registerFlags() *cobra.Command {
	r := &cobra.Command{
		Use:   "create",
		Short: "Create a database",
	}
	r.Flags().IntVar(&c.subscription, "subscription", 0, "cloud subscription id")
	r.Flags().StringVar(&c.data, "data", "", "database definition as JSON, or @file")
	c.waitArgs.register(r)
	return r
}

func (c *databaseCreateCmd) run(cl *simpleCLIClient, cmd *cobra.Command, args []string) error {
	if c.data == "" {
		return errors.New("--data is required")
	}
	b, err := cl.backendFor("database create")
	if err != nil {
		return err
	}
	path, err := databasePath(b.Kind(), c.subscription, "")
	if err != nil {
		return err
	}
	body, err := readJSONData(c.data)
	if err != nil {
		return err
	}
	return cl.runMutation(b, operation.Request{Method: "POST", Path: path, Body: body}, c.waitArgs)
}

type databaseUpdateCmd struct {
	subscription int
	data         string
	waitArgs
}

func (c *databaseUpdateCmd) registerFlags() *cobra.Command {
	r := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a database",
		Args:  cobra.ExactArgs(1),
	}
	r.Flags().IntVar(&c.subscription, "subscription", 0, "cloud subscription id")
	r.Flags().StringVar(&c.data, "data", "", "changed fields as JSON, or @file")
	c.waitArgs.register(r)
	return r
}

func (c *databaseUpdateCmd) run(cl *simpleCLIClient, cmd *cobra.Command, args []string) error {
	if c.data == "" {
		return errors.New("--data is required")
	}
	b, err := cl.backendFor("database update")
	if err != nil {
		return err
	}
	path, err := databasePath(b.Kind(), c.subscription, args[0])
	if err != nil {
		return err
	}
	body, err := readJSONData(c.data)
	if err != nil {
		return err
	}
	return cl.runMutation(b, operation.Request{Method: "PUT", Path: path, Body: body}, c.waitArgs)
}

type databaseDeleteCmd struct {
	subscription int
	waitArgs
}

func (c *databaseDeleteCmd) registerFlags() *cobra.Command {
	r := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a database",
		Args:  cobra.ExactArgs(1),
	}
	r.Flags().IntVar(&c.subscription, "subscription", 0, "cloud subscription id")
	c.waitArgs.register(r)
	return r
}

func (c *databaseDeleteCmd) run(cl *simpleCLIClient, cmd *cobra.Command, args []string) error {
	b, err := cl.backendFor("database delete")
	if err != nil {
		return err
	}
	path, err := databasePath(b.Kind(), c.subscription, args[0])
	if err != nil {
		return err
	}
	return cl.runMutation(b, operation.Request{Method: "DELETE", Path: path}, c.waitArgs)
}
