package controller

import (
	"context"
	"errors"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tgienger/yusra/internal/api"
	"github.com/tgienger/yusra/internal/models"
)

// AuthAPI is the slice of the API client used by the auth screens
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (*models.Tokens, error)
	Register(ctx context.Context, name, email, password string) (*models.Tokens, error)
}

// CredentialStore receives the tokens issued at login
type CredentialStore interface {
	SetCredential(tokens models.Tokens) error
	ClearCredential() error
}

// Auth drives login, registration and logout
type Auth struct {
	ctx     context.Context
	api     AuthAPI
	session CredentialStore
	log     *slog.Logger
}

type authResultMsg struct {
	tokens   *models.Tokens
	err      error
	fallback string
}

func NewAuth(ctx context.Context, client AuthAPI, session CredentialStore, logger *slog.Logger) *Auth {
	if logger == nil {
		logger = slog.Default()
	}
	return &Auth{ctx: ctx, api: client, session: session, log: logger}
}

func (c *Auth) Login(email, password string) tea.Cmd {
	ctx, client := c.ctx, c.api
	return func() tea.Msg {
		tokens, err := client.Login(ctx, email, password)
		return authResultMsg{tokens: tokens, err: err, fallback: "Login failed"}
	}
}

func (c *Auth) Register(name, email, password string) tea.Cmd {
	ctx, client := c.ctx, c.api
	return func() tea.Msg {
		tokens, err := client.Register(ctx, name, email, password)
		return authResultMsg{tokens: tokens, err: err, fallback: "Registration failed"}
	}
}

// Logout forgets the stored credential
func (c *Auth) Logout() tea.Cmd {
	if err := c.session.ClearCredential(); err != nil {
		c.log.Error("clear credential failed", "err", err)
	}
	return func() tea.Msg { return LoggedOut{} }
}

func (c *Auth) Update(msg tea.Msg) tea.Cmd {
	res, ok := msg.(authResultMsg)
	if !ok {
		return nil
	}
	if res.err != nil {
		c.log.Warn("authentication failed", "err", res.err)
		message := api.MessageOf(res.err, res.fallback)
		var ve *api.ValidationError
		if errors.As(res.err, &ve) {
			message = "Please fill in your " + ve.Field
		}
		return func() tea.Msg { return AuthFailed{Message: message} }
	}
	if err := c.session.SetCredential(*res.tokens); err != nil {
		c.log.Error("store credential failed", "err", err)
		return func() tea.Msg { return AuthFailed{Message: res.fallback} }
	}
	return func() tea.Msg { return LoggedIn{} }
}
