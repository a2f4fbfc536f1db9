package db

import (
	"fmt"
	"testing"
	"time"
)

func TestOpenMigratesAdminSessions(t *testing.T) {
	conn, err := Open(fmt.Sprintf("file:db-open-%d?mode=memory&cache=shared", time.Now().UnixNano()))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if !conn.Migrator().HasTable(&AdminSession{}) {
		t.Fatal("expected admin_sessions table")
	}
}

func TestRoleListRoundTrip(t *testing.T) {
	s := AdminSession{Roles: JoinRoles([]string{"Admin", "Editor"})}
	got := s.RoleList()
	if len(got) != 2 || got[0] != "Admin" || got[1] != "Editor" {
		t.Fatalf("unexpected roles %v", got)
	}
	if (AdminSession{}).RoleList() != nil {
		t.Fatal("expected nil roles for an empty column")
	}
}

func TestDeleteStaleSessions(t *testing.T) {
	conn, err := Open(fmt.Sprintf("file:db-stale-%d?mode=memory&cache=shared", time.Now().UnixNano()))
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	now := time.Now()
	sessions := []AdminSession{
		{ID: "expired-no-refresh", Subject: "a", AccessToken: "t", ExpiresAt: now.Add(-time.Minute)},
		{ID: "expired-with-refresh", Subject: "b", AccessToken: "t", RefreshToken: "r", ExpiresAt: now.Add(-time.Minute)},
		{ID: "valid", Subject: "c", AccessToken: "t", ExpiresAt: now.Add(time.Hour)},
	}
	for i := range sessions {
		if err := conn.Create(&sessions[i]).Error; err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	removed, err := DeleteStaleSessions(conn, now, 24*time.Hour)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if removed != 1 {
		t.Fatalf("expected 1 removed session, got %d", removed)
	}

	var count int64
	conn.Model(&AdminSession{}).Count(&count)
	if count != 2 {
		t.Fatalf("expected 2 sessions left, got %d", count)
	}
}
