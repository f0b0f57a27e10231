package mgo

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/mongo"

	mgo "github.com/akhi1986akhi/webChat/data/database/mgo/mongoutil"
)

type MongoManager struct {
	mu     sync.RWMutex
	client *mgo.Client
}

var globalMgr MongoManager

// Start connects once and installs the shared handle. The driver keeps the
// connection pool healthy after that.
func Start(ctx context.Context, cfg *mgo.Config) error {
	cli, err := mgo.NewMongoDB(ctx, cfg)
	if err != nil {
		return err
	}
	globalMgr.mu.Lock()
	globalMgr.client = cli
	globalMgr.mu.Unlock()
	return nil
}

// GetDB returns the shared database handle, nil before Start succeeds.
func GetDB() *mongo.Database {
	globalMgr.mu.RLock()
	defer globalMgr.mu.RUnlock()
	if globalMgr.client == nil {
		return nil
	}
	return globalMgr.client.GetDB()
}

func Stop(ctx context.Context) {
	globalMgr.mu.Lock()
	defer globalMgr.mu.Unlock()
	if globalMgr.client != nil {
		_ = globalMgr.client.GetDB().Client().Disconnect(ctx)
		globalMgr.client = nil
	}
}
