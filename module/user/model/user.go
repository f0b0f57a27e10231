package model

import (
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	mgo "github.com/akhi1986akhi/webChat/service/mgo"
)

// Role
const (
	RoleUser  int32 = 0
	RoleAdmin int32 = 1
)

// User is the durable participant record. Created on first bind or REST
// registration; never deleted, only flipped inactive.
type User struct {
	UserID   string `bson:"user_id" json:"UserID"` // stable opaque id (primary key)
	FullName string `bson:"full_name" json:"FullName"`
	Email    string `bson:"email" json:"Email"` // unique natural key, lowercased
	Contact  string `bson:"contact" json:"Contact"`
	Role     int32  `bson:"role" json:"Role"`

	IsActive bool      `bson:"is_active" json:"IsActive"`
	LastSeen time.Time `bson:"last_seen" json:"LastSeen"`
	// ConnID holds the current live connection id while bound; presence itself
	// is derived from the registry, this field is display-only.
	ConnID string `bson:"conn_id,omitempty" json:"ConnID,omitempty"`

	CreateTime time.Time `bson:"create_time" json:"CreateTime"`
	UpdateTime time.Time `bson:"update_time" json:"UpdateTime"`
}

func (u *User) GetTableName() string {
	return "user"
}

func (u *User) Collection() *mongo.Collection {
	return mgo.GetDB().Collection(u.GetTableName())
}
