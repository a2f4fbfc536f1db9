// Package identity 负责 OIDC 登录、令牌续期与管理员会话存储。
package identity

import (
	"context"
	"errors"
	"slices"
	"time"

	"golang.org/x/oauth2"
)

// ErrSessionNotFound is returned by stores for unknown or expired ids.
var ErrSessionNotFound = errors.New("identity: session not found")

// AdminRole is required on every protected route.
const AdminRole = "Admin"

// Session is the server-side record of a signed-in user.
type Session struct {
	ID           string    `json:"id"`
	Subject      string    `json:"sub"`
	Email        string    `json:"email"`
	Roles        []string  `json:"roles"`
	AccessToken  string    `json:"accessToken"`
	RefreshToken string    `json:"refreshToken,omitempty"`
	IDToken      string    `json:"idToken,omitempty"`
	TokenType    string    `json:"tokenType,omitempty"`
	Expiry       time.Time `json:"expiry"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (s *Session) HasRole(role string) bool {
	return slices.Contains(s.Roles, role)
}

// Token converts the session to an oauth2 token for refresh.
func (s *Session) Token() *oauth2.Token {
	return &oauth2.Token{
		AccessToken:  s.AccessToken,
		TokenType:    s.TokenType,
		RefreshToken: s.RefreshToken,
		Expiry:       s.Expiry,
	}
}

// SetToken copies a fresh token into the session. Providers may omit the
// refresh token on refresh, in which case the old one is kept.
func (s *Session) SetToken(tok *oauth2.Token) {
	s.AccessToken = tok.AccessToken
	s.TokenType = tok.TokenType
	s.Expiry = tok.Expiry
	if tok.RefreshToken != "" {
		s.RefreshToken = tok.RefreshToken
	}
	if raw, ok := tok.Extra("id_token").(string); ok && raw != "" {
		s.IDToken = raw
	}
}

// SessionStore persists sessions by id.
type SessionStore interface {
	Save(ctx context.Context, s *Session) error
	Get(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
}
