package identity

import (
	"context"
	"errors"

	"github.com/resumedash/internal/db"
	"gorm.io/gorm"
)

// GormStore keeps sessions in the admin_sessions table.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(conn *gorm.DB) *GormStore {
	return &GormStore{db: conn}
}

func (s *GormStore) Save(ctx context.Context, session *Session) error {
	record := db.AdminSession{
		ID:           session.ID,
		Subject:      session.Subject,
		Email:        session.Email,
		Roles:        db.JoinRoles(session.Roles),
		AccessToken:  session.AccessToken,
		RefreshToken: session.RefreshToken,
		IDToken:      session.IDToken,
		TokenType:    session.TokenType,
		ExpiresAt:    session.Expiry,
		CreatedAt:    session.CreatedAt,
	}
	return s.db.WithContext(ctx).Save(&record).Error
}

func (s *GormStore) Get(ctx context.Context, id string) (*Session, error) {
	var record db.AdminSession
	if err := s.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return &Session{
		ID:           record.ID,
		Subject:      record.Subject,
		Email:        record.Email,
		Roles:        record.RoleList(),
		AccessToken:  record.AccessToken,
		RefreshToken: record.RefreshToken,
		IDToken:      record.IDToken,
		TokenType:    record.TokenType,
		Expiry:       record.ExpiresAt,
		CreatedAt:    record.CreatedAt,
	}, nil
}

func (s *GormStore) Delete(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Delete(&db.AdminSession{}, "id = ?", id).Error
}
