package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/unalkalkan/ChapterMark/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := cli.Run(ctx, os.Args[1:], os.Stdout)
	stop()
	os.Exit(code)
}
