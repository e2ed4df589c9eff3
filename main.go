package main

import (
	"context"

	"github.com/cgardner/epicsync/cmd"
)

func main() {
	ctx := context.Background()
	cmd.Execute(ctx)
}
