package postgres

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

type FriendshipStatus string

const (
	FriendshipPending  FriendshipStatus = "pending"
	FriendshipAccepted FriendshipStatus = "accepted"
	FriendshipBlocked  FriendshipStatus = "blocked"
)

/*
 * 'Friendship' is one directed edge of the friends graph. An accepted
 * friendship is stored in both directions.
 */
type Friendship struct {
	UserID    int64            `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	FriendID  int64            `gorm:"primaryKey;autoIncrement:false;index" json:"friend_id"`
	Status    FriendshipStatus `gorm:"type:varchar(16);not null" json:"status"`
	CreatedAt time.Time        `json:"created_at"`

	User   User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;" json:"-"`
	Friend User `gorm:"foreignKey:FriendID;constraint:OnDelete:CASCADE;" json:"-"`
}

var ErrSelfFriendship = errors.New("a user cannot befriend themselves")

// GORM hook to ensure that both ends of the edge are different users
func (f *Friendship) BeforeSave(tx *gorm.DB) error {
	if f.UserID == f.FriendID {
		return ErrSelfFriendship
	}
	return nil
}
