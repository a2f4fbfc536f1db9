package db

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// AdminSession 保存已登录管理员的令牌，浏览器 cookie 中只保留 ID。
type AdminSession struct {
	ID           string `gorm:"primaryKey;size:36"`
	Subject      string `gorm:"index;not null"`
	Email        string
	Roles        string
	AccessToken  string `gorm:"not null"`
	RefreshToken string
	IDToken      string
	TokenType    string
	ExpiresAt    time.Time `gorm:"index"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// RoleList 将逗号分隔的角色还原为切片。
func (s AdminSession) RoleList() []string {
	if strings.TrimSpace(s.Roles) == "" {
		return nil
	}
	parts := strings.Split(s.Roles, ",")
	roles := make([]string, 0, len(parts))
	for _, part := range parts {
		if role := strings.TrimSpace(part); role != "" {
			roles = append(roles, role)
		}
	}
	return roles
}

// JoinRoles is the inverse of RoleList.
func JoinRoles(roles []string) string {
	return strings.Join(roles, ",")
}

// DeleteStaleSessions 删除无法再续期的会话：令牌已过期且没有 refresh token，
// 或者超过 maxAge 未更新。
func DeleteStaleSessions(conn *gorm.DB, now time.Time, maxAge time.Duration) (int64, error) {
	result := conn.
		Where("(expires_at < ? AND (refresh_token = '' OR refresh_token IS NULL)) OR updated_at < ?", now, now.Add(-maxAge)).
		Delete(&AdminSession{})
	return result.RowsAffected, result.Error
}
