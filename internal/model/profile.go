package model

import "time"

// Profile holds the public-facing details of a user. The row shares its
// primary key with the user it belongs to and is created at registration.
type Profile struct {
	ID        uint      `json:"id" gorm:"primaryKey;autoIncrement:false"`
	Username  *string   `json:"username" gorm:"type:varchar(100)"`
	FullName  *string   `json:"full_name" gorm:"type:varchar(255)"`
	AvatarURL *string   `json:"avatar_url" gorm:"type:varchar(512)"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
