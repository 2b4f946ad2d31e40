package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/elaattia/MyEcologicCrowsourcingfront-sub001/config"
	"github.com/elaattia/MyEcologicCrowsourcingfront-sub001/internal/bootstrap"
	"github.com/elaattia/MyEcologicCrowsourcingfront-sub001/internal/service"
)

type commandFn func(ctx *commandContext, args []string) error

type command struct {
	name        string
	description string
	run         commandFn
}

type commandContext struct {
	Ctx     context.Context
	Logger  *slog.Logger
	Config  config.AppConfig
	Service *service.AuthService
	In      io.Reader
	Out     io.Writer
	Err     io.Writer
}

func main() {
	logger := bootstrap.InitLogger(slog.LevelInfo, false)

	if len(os.Args) < 2 {
		if err := printUsage(os.Stdout); err != nil {
			logger.Error("print usage failed", "error", err)
		}
		os.Exit(2) //nolint:forbidigo // CLI must exit with failure status when no command is provided
	}

	cmdName := os.Args[1]
	cmd, ok := commands()[cmdName]
	if !ok {
		if err := writef(os.Stderr, "unknown command %q\n\n", cmdName); err != nil {
			logger.Error("print unknown command message failed", "error", err)
		}
		if err := printUsage(os.Stdout); err != nil {
			logger.Error("print usage failed", "error", err)
		}
		os.Exit(2) //nolint:forbidigo // CLI must exit with failure status when command is unknown
	}

	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		logger.ErrorContext(context.Background(), "load config", "error", err)
		os.Exit(1) //nolint:forbidigo // CLI must signal configuration load failure to shell scripts
	}
	logger = bootstrap.InitLogger(cfg.Observability.Logging.SlogLevel(), cfg.IsDev)

	if runErr := run(cmd, cfg, logger, os.Args[2:]); runErr != nil {
		if writeErr := writef(os.Stderr, "error: %s\n", userMessage(runErr)); writeErr != nil {
			logger.Error("print command error failed", "error", writeErr)
		}
		logger.Debug("command failed", "command", cmdName, "error", runErr)
		os.Exit(1) //nolint:forbidigo // CLI must propagate command execution failure to callers
	}
}

func run(cmd command, cfg config.AppConfig, logger *slog.Logger, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rt, err := bootstrap.BuildAuthService(ctx, bootstrap.AuthDeps{Config: &cfg, Logger: logger})
	if err != nil {
		return fmt.Errorf("build auth service: %w", err)
	}
	defer func() {
		if closeErr := rt.Close(); closeErr != nil {
			logger.Warn("release resources failed", "error", closeErr)
		}
	}()

	return cmd.run(&commandContext{
		Ctx:     ctx,
		Logger:  logger,
		Config:  cfg,
		Service: rt.Service,
		In:      os.Stdin,
		Out:     os.Stdout,
		Err:     os.Stderr,
	}, args)
}

func commands() map[string]command {
	return map[string]command{
		"login": {
			name:        "login",
			description: "Exchange credentials for a session",
			run:         runLogin,
		},
		"signup-user": {
			name:        "signup-user",
			description: "Create a citizen account and log in",
			run:         runSignupUser,
		},
		"signup-org": {
			name:        "signup-org",
			description: "Create an organisation with its representative and log in",
			run:         runSignupOrganisation,
		},
		"signup-admin": {
			name:        "signup-admin",
			description: "Administrator signup (always refused)",
			run:         runSignupAdmin,
		},
		"whoami": {
			name:        "whoami",
			description: "Print the profile of the current session",
			run:         runWhoami,
		},
		"status": {
			name:        "status",
			description: "Print session state, token validity and role checks",
			run:         runStatus,
		},
		"logout": {
			name:        "logout",
			description: "Clear the session and every pending verification code",
			run:         runLogout,
		},
		"reset-password": {
			name:        "reset-password",
			description: "Request a password reset code",
			run:         runResetPassword,
		},
		"confirm-reset": {
			name:        "confirm-reset",
			description: "Set a new password using a reset token",
			run:         runConfirmReset,
		},
		"request-verification": {
			name:        "request-verification",
			description: "Issue an email verification code",
			run:         runRequestVerification,
		},
		"verify-code": {
			name:        "verify-code",
			description: "Check an email verification code",
			run:         runVerifyCode,
		},
		"update-profile": {
			name:        "update-profile",
			description: "Change email, username or password of the current account",
			run:         runUpdateProfile,
		},
	}
}

func printUsage(w io.Writer) error {
	if err := writef(w, "Usage: ecoauth <command> [flags]\n\n"); err != nil {
		return err
	}
	if err := writef(w, "Available commands:\n"); err != nil {
		return err
	}
	cmds := commands()
	names := make([]string, 0, len(cmds))
	for name := range cmds {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		c := cmds[name]
		if err := writef(w, "  %-22s %s\n", c.name, c.description); err != nil {
			return err
		}
	}
	return nil
}
