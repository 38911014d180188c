/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/careerhub/frontdesk/config"
	"github.com/careerhub/frontdesk/internal/apiclient"
	"github.com/careerhub/frontdesk/internal/apperror"
	"github.com/careerhub/frontdesk/internal/logging"
	"github.com/careerhub/frontdesk/internal/services"
	"github.com/careerhub/frontdesk/internal/session"
	"github.com/careerhub/frontdesk/types"
)

// portal is the per-invocation connection shared by the subcommands.
type portal struct {
	cfg     config.Config
	log     *logging.Logger
	client  *apiclient.Client
	svc     *services.Services
	session *session.Provider
}

func loadConfig() config.Config {
	cfg := config.LoadConfig()
	if apiURL != "" {
		cfg.API.BaseURL = strings.TrimRight(strings.TrimSpace(apiURL), "/")
	}
	if apiToken != "" {
		cfg.API.SessionToken = strings.TrimSpace(apiToken)
	}
	return cfg
}

func newPortal() *portal {
	cfg := loadConfig()
	log := logging.New(cfg.LogLevel)
	client := apiclient.New(apiclient.Config{
		BaseURL: cfg.API.BaseURL,
		Token:   cfg.API.SessionToken,
		Timeout: cfg.API.Timeout,
		Logger:  log,
	})
	svc := services.New(client)
	return &portal{
		cfg:     cfg,
		log:     log,
		client:  client,
		svc:     svc,
		session: session.NewProvider(svc.Users),
	}
}

// role returns the --role flag when given, otherwise the role of the
// signed-in user.
func (p *portal) role(ctx context.Context) (types.Role, error) {
	if roleName != "" {
		role, ok := types.ParseRole(roleName)
		if !ok {
			return "", fmt.Errorf("unknown role %q", roleName)
		}
		return role, nil
	}
	res := p.session.Refresh(ctx)
	if res.Status != session.Authenticated {
		if res.Err != nil && apperror.KindOf(res.Err) != apperror.KindAuth {
			return "", res.Err
		}
		return "", apperror.ErrUnauthenticated
	}
	return res.User.Role, nil
}

// syncWriter serializes writes from concurrent fetches.
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}
