package models

import (
	"fmt"
	"time"
)

// Entry is a contest participation record. At most one per user;
// Username is a snapshot taken at entry time and may be empty.
type Entry struct {
	UserID int64 `gorm:"primaryKey"`

	Username string

	JoinedAt time.Time `gorm:"autoCreateTime"`
}

func (e *Entry) String() string {
	if e.Username == "" {
		return fmt.Sprintf("id:%d", e.UserID)
	}
	return fmt.Sprintf("@%s (%d)", e.Username, e.UserID)
}
