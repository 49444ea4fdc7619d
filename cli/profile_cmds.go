package cli

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/redisctl/redisctl/config"
	"github.com/redisctl/redisctl/deployment"
)

type profileListCmd struct{}

func (c *profileListCmd) registerFlags() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List configured profiles",
	}
}

func (c *profileListCmd) run(cl *simpleCLIClient, cmd *cobra.Command, args []string) error {
	rows := make([]interface{}, 0, len(cl.cfg.Profiles))
	for _, name := range cl.cfg.Names() {
		p := cl.cfg.Profiles[name]
		rows = append(rows, map[string]interface{}{
			"name":       name,
			"deployment": p.Deployment,
			"default":    name == cl.cfg.Default,
		})
	}
	return cl.render(rows)
}

type profileSetCmd struct {
	deployment  string
	apiKey      string
	apiSecret   string
	apiURL      string
	url         string
	username    string
	password    string
	insecure    bool
	makeDefault bool
}

func (c *profileSetCmd) registerFlags() *cobra.Command {
	r := &cobra.Command{
		Use:   "set <name>",
		Short: "Create or replace a profile",
		Args:  cobra.ExactArgs(1),
	}
	r.Flags().StringVar(&c.deployment, "deployment", "", "deployment this profile talks to (cloud|enterprise)")
	r.Flags().StringVar(&c.apiKey, "api-key", "", "cloud API key")
	r.Flags().StringVar(&c.apiSecret, "api-secret", "", "cloud API secret")
	r.Flags().StringVar(&c.apiURL, "api-url", "", "cloud API base URL (default "+`https://api.redislabs.com/v1`+")")
	r.Flags().StringVar(&c.url, "url", "", "cluster API base URL")
	r.Flags().StringVar(&c.username, "username", "", "cluster username")
	r.Flags().StringVar(&c.password, "password", "", "cluster password")
	r.Flags().BoolVar(&c.insecure, "insecure", false, "skip TLS verification for the cluster API")
	r.Flags().BoolVar(&c.makeDefault, "default", false, "make this the default profile")
	return r
}

func (c *profileSetCmd) run(cl *simpleCLIClient, cmd *cobra.Command, args []string) error {
	if c.deployment == "" {
		return errors.New("--deployment is required")
	}
	if _, err := deployment.ParseKind(c.deployment); err != nil {
		return err
	}
	name := args[0]
	cl.cfg.Set(name, config.Profile{
		Deployment: c.deployment,
		APIKey:     c.apiKey,
		APISecret:  c.apiSecret,
		APIURL:     c.apiURL,
		URL:        c.url,
		Username:   c.username,
		Password:   c.password,
		Insecure:   c.insecure,
	})
	if c.makeDefault || cl.cfg.Default == "" {
		cl.cfg.Default = name
	}
	if err := cl.cfg.Save(); err != nil {
		return err
	}
	fmt.Printf("profile %q saved\n", name)
	return nil
}

type profileRemoveCmd struct{}

func (c *profileRemoveCmd) registerFlags() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <name>",
		Short: "Remove a profile",
		Args:  cobra.ExactArgs(1),
	}
}

func (c *profileRemoveCmd) run(cl *simpleCLIClient, cmd *cobra.Command, args []string) error {
	if !cl.cfg.Remove(args[0]) {
		return errors.Errorf("profile %q not found", args[0])
	}
	if err := cl.cfg.Save(); err != nil {
		return err
	}
	fmt.Printf("profile %q removed\n", args[0])
	return nil
}

type profileDefaultCmd struct{}

func (c *profileDefaultCmd) registerFlags() *cobra.Command {
	return &cobra.Command{
		Use:   "default <name>",
		Short: "Set the default profile",
		Args:  cobra.ExactArgs(1),
	}
}

func (c *profileDefaultCmd) run(cl *simpleCLIClient, cmd *cobra.Command, args []string) error {
	if _, ok := cl.cfg.Profiles[args[0]]; !ok {
		return errors.Errorf("profile %q not found", args[0])
	}
	cl.cfg.Default = args[0]
	if err := cl.cfg.Save(); err != nil {
		return err
	}
	fmt.Printf("default profile is now %q\n", args[0])
	return nil
}
