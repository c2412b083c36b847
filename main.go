package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/abhisek/mcqgen/cmd"
	"github.com/abhisek/mcqgen/internal/mcq"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := cmd.Execute(ctx)
	stop()
	if err != nil {
		var verr *mcq.ValidationError
		if errors.As(err, &verr) {
			fmt.Fprintf(os.Stderr, "Invalid input: %v\n", err)
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
