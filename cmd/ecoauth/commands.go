package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	domainauth "github.com/elaattia/MyEcologicCrowsourcingfront-sub001/internal/domain/auth"
	"github.com/elaattia/MyEcologicCrowsourcingfront-sub001/internal/service"
)

type credentialOptions struct {
	Email    string
	Password string
	JSON     bool
}

type signupOrgOptions struct {
	Input service.SignupOrganisationInput
	JSON  bool
}

type updateProfileOptions struct {
	Update domainauth.ProfileUpdate
	JSON   bool
}

func newFlagSet(name string, out io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(out)
	return fs
}

func runLogin(cmdCtx *commandContext, args []string) error {
	fs := newFlagSet("login", cmdCtx.Err)
	var opts credentialOptions
	fs.StringVar(&opts.Email, "email", "", "Account email (required)")
	fs.StringVar(&opts.Password, "password", "", "Account password (prompted when empty)")
	fs.BoolVar(&opts.JSON, "json", false, "Print the profile as JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}

	password, err := passwordOrPrompt(cmdCtx, opts.Password)
	if err != nil {
		return err
	}

	profile, err := cmdCtx.Service.Login(cmdCtx.Ctx, service.Credentials{Email: opts.Email, Password: password})
	if err != nil {
		return err
	}
	return printProfile(cmdCtx.Out, profile, opts.JSON)
}

func runSignupUser(cmdCtx *commandContext, args []string) error {
	fs := newFlagSet("signup-user", cmdCtx.Err)
	var (
		in       service.SignupUserInput
		jsonOut  bool
		password string
	)
	fs.StringVar(&in.Email, "email", "", "Account email (required)")
	fs.StringVar(&in.Username, "username", "", "Display name (required)")
	fs.StringVar(&password, "password", "", "Account password (prompted when empty)")
	fs.BoolVar(&jsonOut, "json", false, "Print the profile as JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var err error
	if in.Password, err = passwordOrPrompt(cmdCtx, password); err != nil {
		return err
	}

	profile, err := cmdCtx.Service.SignupUser(cmdCtx.Ctx, in)
	if err != nil {
		return err
	}
	return printProfile(cmdCtx.Out, profile, jsonOut)
}

func runSignupOrganisation(cmdCtx *commandContext, args []string) error {
	opts, err := parseSignupOrgFlags(cmdCtx.Err, args)
	if err != nil {
		return err
	}
	if opts.Input.RepPassword, err = passwordOrPrompt(cmdCtx, opts.Input.RepPassword); err != nil {
		return err
	}

	profile, err := cmdCtx.Service.SignupOrganisation(cmdCtx.Ctx, opts.Input)
	if err != nil {
		return err
	}
	return printProfile(cmdCtx.Out, profile, opts.JSON)
}

func parseSignupOrgFlags(out io.Writer, args []string) (signupOrgOptions, error) {
	fs := newFlagSet("signup-org", out)
	var opts signupOrgOptions
	fs.StringVar(&opts.Input.Name, "name", "", "Organisation name (required)")
	fs.IntVar(&opts.Input.Volunteers, "volunteers", 0, "Number of volunteers")
	fs.StringVar(&opts.Input.RepUsername, "rep-username", "", "Representative display name (required)")
	fs.StringVar(&opts.Input.RepEmail, "rep-email", "", "Representative email (required)")
	fs.StringVar(&opts.Input.RepPassword, "rep-password", "", "Representative password (prompted when empty)")
	fs.BoolVar(&opts.JSON, "json", false, "Print the profile as JSON")
	if err := fs.Parse(args); err != nil {
		return signupOrgOptions{}, err
	}
	return opts, nil
}

func runSignupAdmin(cmdCtx *commandContext, args []string) error {
	fs := newFlagSet("signup-admin", cmdCtx.Err)
	var in service.SignupUserInput
	fs.StringVar(&in.Email, "email", "", "Account email")
	fs.StringVar(&in.Username, "username", "", "Display name")
	fs.StringVar(&in.Password, "password", "", "Account password")
	if err := fs.Parse(args); err != nil {
		return err
	}
	return cmdCtx.Service.SignupAdmin(cmdCtx.Ctx, in)
}

func runWhoami(cmdCtx *commandContext, args []string) error {
	fs := newFlagSet("whoami", cmdCtx.Err)
	jsonOut := fs.Bool("json", false, "Print the profile as JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}

	profile, err := cmdCtx.Service.CurrentUser(cmdCtx.Ctx)
	if err != nil {
		return err
	}
	if profile == nil {
		return writeln(cmdCtx.Out, "not logged in")
	}
	return printProfile(cmdCtx.Out, profile, *jsonOut)
}

func runStatus(cmdCtx *commandContext, args []string) error {
	fs := newFlagSet("status", cmdCtx.Err)
	if err := fs.Parse(args); err != nil {
		return err
	}

	ctx := cmdCtx.Ctx
	// Token validity first: an expired token logs out, which changes the state.
	valid := cmdCtx.Service.IsTokenValid(ctx)
	state, err := cmdCtx.Service.State(ctx)
	if err != nil {
		return err
	}

	return printStatus(cmdCtx.Out, statusView{
		State:        state,
		TokenValid:   valid,
		Admin:        cmdCtx.Service.IsAdmin(ctx),
		Representant: cmdCtx.Service.IsRepresentant(ctx),
		User:         cmdCtx.Service.IsUser(ctx),
	})
}

func runLogout(cmdCtx *commandContext, args []string) error {
	fs := newFlagSet("logout", cmdCtx.Err)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := cmdCtx.Service.Logout(cmdCtx.Ctx); err != nil {
		return err
	}
	return writeln(cmdCtx.Out, "logged out")
}

func runResetPassword(cmdCtx *commandContext, args []string) error {
	email, err := parseEmailFlag("reset-password", cmdCtx.Err, args)
	if err != nil {
		return err
	}
	if err := cmdCtx.Service.ResetPassword(cmdCtx.Ctx, email); err != nil {
		return err
	}
	return writeln(cmdCtx.Out, "if the address is registered, a reset code is on its way")
}

func runConfirmReset(cmdCtx *commandContext, args []string) error {
	fs := newFlagSet("confirm-reset", cmdCtx.Err)
	token := fs.String("token", "", "Reset token (required)")
	password := fs.String("password", "", "New password (prompted when empty)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	newPassword, err := passwordOrPrompt(cmdCtx, *password)
	if err != nil {
		return err
	}
	if err := cmdCtx.Service.ConfirmResetPassword(cmdCtx.Ctx, *token, newPassword); err != nil {
		return err
	}
	return writeln(cmdCtx.Out, "password updated")
}

func runRequestVerification(cmdCtx *commandContext, args []string) error {
	email, err := parseEmailFlag("request-verification", cmdCtx.Err, args)
	if err != nil {
		return err
	}
	id, err := cmdCtx.Service.RequestEmailVerification(cmdCtx.Ctx, email)
	if err != nil {
		return err
	}
	return writef(cmdCtx.Out, "verification code sent to %s\n", id)
}

func runVerifyCode(cmdCtx *commandContext, args []string) error {
	fs := newFlagSet("verify-code", cmdCtx.Err)
	email := fs.String("email", "", "Address the code was sent to (required)")
	code := fs.String("code", "", "The 6-digit code (required)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	ok, err := cmdCtx.Service.VerifyCode(cmdCtx.Ctx, *email, *code)
	if err != nil {
		return err
	}
	if !ok {
		return errors.New("code does not match")
	}
	return writeln(cmdCtx.Out, "email verified")
}

func runUpdateProfile(cmdCtx *commandContext, args []string) error {
	opts, err := parseUpdateProfileFlags(cmdCtx.Err, args)
	if err != nil {
		return err
	}
	profile, err := cmdCtx.Service.UpdateProfile(cmdCtx.Ctx, opts.Update)
	if err != nil {
		return err
	}
	return printProfile(cmdCtx.Out, profile, opts.JSON)
}

// parseUpdateProfileFlags only fills the fields whose flags were given, so
// an explicit empty value still reaches validation.
func parseUpdateProfileFlags(out io.Writer, args []string) (updateProfileOptions, error) {
	fs := newFlagSet("update-profile", out)
	var (
		opts                      updateProfileOptions
		email, username, password string
	)
	fs.StringVar(&email, "email", "", "New email")
	fs.StringVar(&username, "username", "", "New display name")
	fs.StringVar(&password, "password", "", "New password")
	fs.BoolVar(&opts.JSON, "json", false, "Print the profile as JSON")
	if err := fs.Parse(args); err != nil {
		return updateProfileOptions{}, err
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "email":
			opts.Update.Email = &email
		case "username":
			opts.Update.Username = &username
		case "password":
			opts.Update.Password = &password
		}
	})
	return opts, nil
}

func parseEmailFlag(name string, out io.Writer, args []string) (string, error) {
	fs := newFlagSet(name, out)
	email := fs.String("email", "", "Account email (required)")
	if err := fs.Parse(args); err != nil {
		return "", err
	}
	return *email, nil
}

// passwordOrPrompt returns flagValue, or reads one line from the command input.
func passwordOrPrompt(cmdCtx *commandContext, flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if err := write(cmdCtx.Err, "Password: "); err != nil {
		return "", fmt.Errorf("print password prompt: %w", err)
	}
	line, err := bufio.NewReader(cmdCtx.In).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
