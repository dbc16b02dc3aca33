package models

import (
	"sort"
	"strings"
	"time"
)

const (
	RoleUser  = "ROLE_USER"
	RoleAdmin = "ROLE_ADMIN"

	// DefaultAdminUsername is the seeded admin account; it can never be deleted.
	DefaultAdminUsername = "admin"
)

type User struct {
	ID           string   `json:"id"`
	Username     string   `json:"username"`
	Email        string   `json:"email"`
	PasswordHash string   `json:"-"`
	Roles        []string `json:"roles"`
}

// HasRole reports whether the user carries role, given with or without
// the ROLE_ prefix ("ADMIN" and "ROLE_ADMIN" are equivalent).
func (u *User) HasRole(role string) bool {
	return HasRole(u.Roles, role)
}

func HasRole(roles []string, role string) bool {
	if !strings.HasPrefix(role, "ROLE_") {
		role = "ROLE_" + role
	}
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}

type Task struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"created_at"`
	UserID      string    `json:"user_id"`
	OrderIndex  int       `json:"order_index"`
	Tags        []string  `json:"tags"`
}

// GetUserID returns the owner of the task.
func (t *Task) GetUserID() string {
	return t.UserID
}

// NormalizeTags turns a tag list into a set: blanks dropped, surrounding
// whitespace trimmed, duplicates collapsed, sorted. nil yields an empty,
// non-nil slice.
func NormalizeTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	sort.Strings(out)
	return out
}
