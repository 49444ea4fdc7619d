package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"

	"github.com/redisctl/redisctl/cli"
	cerrors "github.com/redisctl/redisctl/common/errors"
	"github.com/redisctl/redisctl/common/log/hooks"
)

// The command-line client for the two control planes.
func main() {
	log.AddHook(hooks.NewContextHook())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := cli.NewSimpleCLIClient(ctx)
	if err != nil {
		log.Fatal("Cannot initialize redisctl CLI: ", err)
	}
	if err := client.Exec(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(int(cerrors.CodeOf(err)))
	}
}
