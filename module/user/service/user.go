package service

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	usermodel "github.com/akhi1986akhi/webChat/module/user/model"
	"github.com/akhi1986akhi/webChat/tools/errs"
	"github.com/akhi1986akhi/webChat/tools/ids"
)

// The user collection is the durable side of identity binding. Lookups are by
// the email natural key; writes are upserts keyed on user_id.

func coll() *mongo.Collection {
	return (&usermodel.User{}).Collection()
}

// FindByEmail returns (nil, nil) when the user does not exist.
func FindByEmail(ctx context.Context, email string) (*usermodel.User, error) {
	var u usermodel.User
	err := coll().FindOne(ctx, bson.M{"email": strings.ToLower(email)}).Decode(&u)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, errs.WrapMsg(err, "find user by email")
	}
	return &u, nil
}

func FindByID(ctx context.Context, userID string) (*usermodel.User, error) {
	var u usermodel.User
	err := coll().FindOne(ctx, bson.M{"user_id": userID}).Decode(&u)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, errs.WrapMsg(err, "find user by id")
	}
	return &u, nil
}

// Create inserts a new user record; fills UserID and timestamps.
func Create(ctx context.Context, u *usermodel.User) error {
	now := time.Now()
	if u.UserID == "" {
		u.UserID = ids.GenerateString()
	}
	u.Email = strings.ToLower(u.Email)
	u.IsActive = true
	u.LastSeen = now
	u.CreateTime = now
	u.UpdateTime = now
	if _, err := coll().InsertOne(ctx, u); err != nil {
		return errs.WrapMsg(err, "create user")
	}
	return nil
}

// Update applies mutable fields (name, contact, conn id, ...) and refreshes
// update_time and last_seen.
func Update(ctx context.Context, userID string, fields bson.M) error {
	now := time.Now()
	set := bson.M{"update_time": now, "last_seen": now}
	for k, v := range fields {
		set[k] = v
	}
	_, err := coll().UpdateOne(ctx, bson.M{"user_id": userID}, bson.M{"$set": set})
	if err != nil {
		return errs.WrapMsg(err, "update user")
	}
	return nil
}

// MarkInactive flips the active flag and clears the connection id.
func MarkInactive(ctx context.Context, userID string) error {
	_, err := coll().UpdateOne(ctx, bson.M{"user_id": userID}, bson.M{"$set": bson.M{
		"is_active":   false,
		"conn_id":     "",
		"last_seen":   time.Now(),
		"update_time": time.Now(),
	}})
	if err != nil {
		return errs.WrapMsg(err, "mark user inactive")
	}
	return nil
}

// ListAll returns every user, newest first.
func ListAll(ctx context.Context) ([]usermodel.User, error) {
	cur, err := coll().Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "create_time", Value: -1}}))
	if err != nil {
		return nil, errs.WrapMsg(err, "list users")
	}
	defer cur.Close(ctx)
	var out []usermodel.User
	if err := cur.All(ctx, &out); err != nil {
		return nil, errs.WrapMsg(err, "decode users")
	}
	return out, nil
}
