/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"time"

	"github.com/careerhub/frontdesk/internal/apperror"
	"github.com/careerhub/frontdesk/internal/session"
	"github.com/spf13/cobra"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in user",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		p := newPortal()
		out := cmd.OutOrStdout()

		if p.cfg.API.SessionToken != "" {
			if claims, err := session.TokenClaims(p.cfg.API.SessionToken); err == nil {
				fmt.Fprintf(out, "token subject: %s\n", orDash(claims.Subject))
				if !claims.ExpiresAt.IsZero() {
					state := "valid"
					if claims.Expired(time.Now()) {
						state = "expired"
					}
					fmt.Fprintf(out, "token expires: %s (%s)\n", formatDate(claims.ExpiresAt), state)
				}
			}
		}

		res := p.session.Refresh(cmd.Context())
		fmt.Fprintf(out, "status: %s\n", res.Status)
		if res.Status != session.Authenticated {
			if res.Err != nil && apperror.KindOf(res.Err) != apperror.KindAuth {
				return res.Err
			}
			return nil
		}
		fmt.Fprintf(out, "name: %s\nemail: %s\nrole: %s\n", res.User.Name, orDash(res.User.Email), res.User.Role)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}
