package models

import "time"

// User is a directory record for every Telegram user the bot has ever
// seen. JoinedAt is set once on first contact; LastSeen moves forward
// on every interaction.
type User struct {
	ID int64 `gorm:"primaryKey"`

	Username  string
	FirstName string
	LastName  string

	JoinedAt time.Time `gorm:"autoCreateTime"`
	LastSeen time.Time `gorm:"index"`
}

func (u *User) DisplayName() string {
	if u.Username != "" {
		return "@" + u.Username
	}
	name := u.FirstName
	if u.LastName != "" {
		name += " " + u.LastName
	}
	return name
}
