package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	domainauth "github.com/elaattia/MyEcologicCrowsourcingfront-sub001/internal/domain/auth"
	apperrors "github.com/elaattia/MyEcologicCrowsourcingfront-sub001/internal/errors"
)

type statusView struct {
	State        domainauth.SessionState
	TokenValid   bool
	Admin        bool
	Representant bool
	User         bool
}

func printProfile(w io.Writer, p *domainauth.UserProfile, asJSON bool) error {
	if p == nil {
		return errors.New("no profile to print")
	}
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(p); err != nil {
			return fmt.Errorf("encode profile: %w", err)
		}
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	if err := writef(tw, "User ID\t%s\n", p.UserID); err != nil {
		return fmt.Errorf("write user id: %w", err)
	}
	if err := writef(tw, "Email\t%s\n", p.Email); err != nil {
		return fmt.Errorf("write email: %w", err)
	}
	if err := writef(tw, "Username\t%s\n", p.Username); err != nil {
		return fmt.Errorf("write username: %w", err)
	}
	if err := writef(tw, "Role\t%s\n", p.Role); err != nil {
		return fmt.Errorf("write role: %w", err)
	}
	if p.OrganisationName != nil {
		if err := writef(tw, "Organisation\t%s\n", *p.OrganisationName); err != nil {
			return fmt.Errorf("write organisation: %w", err)
		}
	}
	if p.OrganisationID != nil {
		if err := writef(tw, "Organisation ID\t%s\n", *p.OrganisationID); err != nil {
			return fmt.Errorf("write organisation id: %w", err)
		}
	}
	return tw.Flush()
}

func printStatus(w io.Writer, v statusView) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	rows := []struct {
		label string
		value any
	}{
		{"State", v.State},
		{"Token valid", v.TokenValid},
		{"Admin", v.Admin},
		{"Representant", v.Representant},
		{"User", v.User},
	}
	for _, row := range rows {
		if err := writef(tw, "%s\t%v\n", row.label, row.value); err != nil {
			return fmt.Errorf("write status row %q: %w", row.label, err)
		}
	}
	return tw.Flush()
}

// userMessage picks the message shown to the person at the terminal.
// Structured errors print their own message, with the offending field when known.
func userMessage(err error) string {
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		return err.Error()
	}
	if appErr.Field != "" {
		return fmt.Sprintf("%s (%s)", appErr.Message, appErr.Field)
	}
	return appErr.Message
}

func writef(w io.Writer, format string, args ...any) error {
	_, err := fmt.Fprintf(w, format, args...)
	return err
}

func write(w io.Writer, args ...any) error {
	_, err := fmt.Fprint(w, args...)
	return err
}

func writeln(w io.Writer, args ...any) error {
	if len(args) == 0 {
		_, err := fmt.Fprintln(w)
		return err
	}
	_, err := fmt.Fprintln(w, args...)
	return err
}
