// Package main prints a signed access token for an actor, using the same
// configuration the server reads. The token's subject is recorded as
// changed_by on every task mutation made with it.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/smartsite/task-api/internal/config"
	"github.com/smartsite/task-api/internal/service/auth"
)

func main() {
	actor := flag.String("actor", "", "identity to record as changed_by")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	if err := generate(context.Background(), os.Stdout, cfg.Auth, *actor); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating token: %v\n", err)
		os.Exit(1)
	}
}

func generate(ctx context.Context, out io.Writer, authCfg config.AuthConfig, actor string) error {
	if strings.TrimSpace(actor) == "" {
		return errors.New("-actor is required")
	}
	if !authCfg.Enabled() {
		return errors.New("auth.jwt_secret is not configured")
	}

	jwtService, err := auth.NewJWTService(authCfg)
	if err != nil {
		return err
	}

	token, err := jwtService.GenerateToken(ctx, actor)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(out, token)
	return err
}
