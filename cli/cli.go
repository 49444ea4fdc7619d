// Package cli wires the command surface: cobra commands that build backend
// requests and hand them to the operation package.
package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/redisctl/redisctl/cloud"
	cerrors "github.com/redisctl/redisctl/common/errors"
	"github.com/redisctl/redisctl/config"
	"github.com/redisctl/redisctl/deployment"
	"github.com/redisctl/redisctl/enterprise"
	"github.com/redisctl/redisctl/operation"
	"github.com/redisctl/redisctl/output"
)

// CLIClient interface that includes CLI handling
type CLIClient interface {
	Exec() error
}

// restBackend is what command handlers work against: the operation
// capabilities plus plain reads.
type restBackend interface {
	operation.Backend
	Get(ctx context.Context, path string) (interface{}, error)
}

// Implements CLIClient - basic
type simpleCLIClient struct {
	rootCmd *cobra.Command
	ctx     context.Context

	profileName    string
	deploymentName string
	outputName     string
	logLevel       string

	cfg *config.Config
}

func (c *simpleCLIClient) Exec() error {
	return c.rootCmd.Execute()
}

// NewSimpleCLIClient builds the full command tree. ctx carries the
// invocation's cancellation signal; every backend call and poll runs under it.
func NewSimpleCLIClient(ctx context.Context) (CLIClient, error) {
	c := &simpleCLIClient{ctx: ctx}

	c.rootCmd = &cobra.Command{
		Use:               "redisctl",
		Short:             "redisctl is a command-line client for the cloud and self-managed cluster control planes",
		Run:               func(*cobra.Command, []string) {},
		PersistentPreRunE: c.Init,
		// main prints the error and maps it to an exit code.
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	c.rootCmd.PersistentFlags().StringVar(&c.profileName, "profile", "", "profile to use (default: $REDISCTL_PROFILE, then the configured default)")
	c.rootCmd.PersistentFlags().StringVar(&c.deploymentName, "deployment", "", "target deployment for commands that can address either one (cloud|enterprise)")
	c.rootCmd.PersistentFlags().StringVarP(&c.outputName, "output", "o", "auto", "output format (auto|json|yaml|table)")
	c.rootCmd.PersistentFlags().StringVar(&c.logLevel, "log_level", "warning", "Log everything at this level and above (error|info|debug)")

	c.addGroup("database", "Manage databases on either deployment",
		&databaseListCmd{}, &databaseGetCmd{}, &databaseCreateCmd{}, &databaseUpdateCmd{}, &databaseDeleteCmd{})
	c.addGroup("subscription", "Inspect cloud subscriptions",
		&subscriptionListCmd{}, &subscriptionGetCmd{})
	c.addGroup("cluster", "Manage the self-managed cluster",
		&clusterGetCmd{}, &clusterUpdateCmd{})
	c.addGroup("task", "Track cloud operations",
		&taskGetCmd{}, &taskWaitCmd{})
	c.addGroup("action", "Track cluster operations",
		&actionGetCmd{}, &actionWaitCmd{})
	c.addGroup("profile", "Manage connection profiles",
		&profileListCmd{}, &profileSetCmd{}, &profileRemoveCmd{}, &profileDefaultCmd{})
	c.addCmd(&apiCmd{})

	return c, nil
}

// Can only be called from cobra command run or hook
func (c *simpleCLIClient) Init(cmd *cobra.Command, args []string) error {
	level, err := log.ParseLevel(c.logLevel)
	if err != nil {
		log.Error(err)
		return err
	}
	log.SetLevel(level)

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	c.cfg = cfg
	return nil
}

func (c *simpleCLIClient) addCmd(cmd command) {
	cobraCmd := cmd.registerFlags()
	cobraCmd.RunE = func(innerCmd *cobra.Command, args []string) error {
		return cmd.run(c, innerCmd, args)
	}
	c.rootCmd.AddCommand(cobraCmd)
}

type command interface {
	registerFlags() *cobra.Command
	run(cl *simpleCLIClient, cmd *cobra.Command, args []string) error
}

// addGroup hangs a set of handlers off a shared parent command.
func (c *simpleCLIClient) addGroup(use, short string, cmds ...command) {
	parent := &cobra.Command{Use: use, Short: short}
	for _, cmd := range cmds {
		cmd := cmd
		cobraCmd := cmd.registerFlags()
		cobraCmd.RunE = func(innerCmd *cobra.Command, args []string) error {
			return cmd.run(c, innerCmd, args)
		}
		parent.AddCommand(cobraCmd)
	}
	c.rootCmd.AddCommand(parent)
}

// format parses the --output flag.
func (c *simpleCLIClient) format() (output.Format, error) {
	return output.ParseFormat(c.outputName)
}

func (c *simpleCLIClient) render(doc interface{}) error {
	f, err := c.format()
	if err != nil {
		return err
	}
	return output.Render(os.Stdout, doc, f)
}

// explicitKind parses the --deployment directive, if given.
func (c *simpleCLIClient) explicitKind() (*deployment.Kind, error) {
	if c.deploymentName == "" {
		return nil, nil
	}
	k, err := deployment.ParseKind(c.deploymentName)
	if err != nil {
		return nil, err
	}
	return &k, nil
}

// activeProfile resolves the profile for this invocation.
func (c *simpleCLIClient) activeProfile() (string, config.Profile, error) {
	return c.cfg.Select(c.profileName)
}

// backendFor resolves the deployment for a command that can target either
// backend and builds the matching client from the active profile. Profile
// resolution failures surface first, distinct from routing ambiguity.
func (c *simpleCLIClient) backendFor(command string) (restBackend, error) {
	name, profile, err := c.activeProfile()
	if err != nil {
		return nil, err
	}
	explicit, err := c.explicitKind()
	if err != nil {
		return nil, err
	}
	var profileKind *deployment.Kind
	if k, ok := profile.Kind(); ok {
		profileKind = &k
	}
	kind, err := deployment.Resolve(deployment.Context{Explicit: explicit, Profile: profileKind}, command)
	if err != nil {
		return nil, err
	}
	return backendFromProfile(name, profile, kind)
}

// cloudBackend builds the cloud client for a command bound to that backend.
func (c *simpleCLIClient) cloudBackend() (*cloud.Backend, error) {
	b, err := c.boundBackend(deployment.Cloud)
	if err != nil {
		return nil, err
	}
	return b.(*cloud.Backend), nil
}

// enterpriseBackend builds the cluster client for a command bound to that
// backend.
func (c *simpleCLIClient) enterpriseBackend() (*enterprise.Backend, error) {
	b, err := c.boundBackend(deployment.Enterprise)
	if err != nil {
		return nil, err
	}
	return b.(*enterprise.Backend), nil
}

func (c *simpleCLIClient) boundBackend(kind deployment.Kind) (restBackend, error) {
	name, profile, err := c.activeProfile()
	if err != nil {
		return nil, err
	}
	if declared, ok := profile.Kind(); ok && declared != kind {
		return nil, cerrors.NewError(
			fmt.Errorf("profile %q is %q but this command requires %q", name, declared, kind),
			cerrors.ProfileUnresolvedExitCode)
	}
	return backendFromProfile(name, profile, kind)
}

func backendFromProfile(name string, profile config.Profile, kind deployment.Kind) (restBackend, error) {
	switch kind {
	case deployment.Cloud:
		if profile.APIKey == "" || profile.APISecret == "" {
			return nil, cerrors.NewError(
				fmt.Errorf("profile %q has no cloud credentials (api_key/api_secret)", name),
				cerrors.ProfileUnresolvedExitCode)
		}
		return cloud.NewBackend(cloud.NewClient(profile.APIURL, profile.APIKey, profile.APISecret)), nil
	default:
		if profile.URL == "" || profile.Username == "" {
			return nil, cerrors.NewError(
				fmt.Errorf("profile %q has no cluster credentials (url/username)", name),
				cerrors.ProfileUnresolvedExitCode)
		}
		return enterprise.NewBackend(enterprise.NewClient(profile.URL, profile.Username, profile.Password, profile.Insecure)), nil
	}
}

// progress prints poll progress to stderr for interactive formats; json and
// yaml output stays clean for piping.
func (c *simpleCLIClient) progress() operation.ProgressFunc {
	f, err := c.format()
	if err != nil || (f != output.Auto && f != output.Table) {
		return nil
	}
	return func(h operation.Handle, o operation.Outcome) {
		status := o.LastRemoteStatus
		if status == "" {
			status = o.Status.String()
		}
		fmt.Fprintf(os.Stderr, "operation %s: %s [%s]\n", h.ID, status, o.Elapsed.Round(time.Second))
	}
}

// runMutation is the shared tail of every mutating handler: perform the
// call, optionally await completion, render what came back.
func (c *simpleCLIClient) runMutation(b operation.Backend, req operation.Request, w waitArgs) error {
	result, err := operation.Await(c.ctx, b, req, w.policy(), c.progress())
	if result.Response != nil {
		if renderErr := c.render(result.Response); renderErr != nil && err == nil {
			err = renderErr
		}
	}
	if result.Outcome != nil && err == nil {
		fmt.Fprintf(os.Stderr, "operation %s %s after %s\n",
			result.Handle.ID, result.Outcome.Status, result.Outcome.Elapsed.Round(time.Second))
	}
	return err
}
