package storage

import (
	"context"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/akhi1986akhi/webChat/logger"
	redis "github.com/akhi1986akhi/webChat/service/storage/redis"
)

// Best-effort presence mirror. The in-memory registry is authoritative; these
// keys only expose who is online to ops tooling and the health endpoint. Every
// call degrades to a no-op (with a log line) when redis is absent, and must
// never block a routing decision.

// presence key: support:presence:<identity>, value: node id, TTL bounds staleness.
func presenceKey(identityID string) string { return "support:presence:" + identityID }

const adminSlotKey = "support:admin"

const mirrorTimeout = 2 * time.Second

// MirrorOnline marks the identity online on this node.
func MirrorOnline(identityID, nodeID string, ttl time.Duration) {
	if !redis.Initialized() {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), mirrorTimeout)
	defer cancel()
	if err := redis.GetRedis().Set(ctx, presenceKey(identityID), nodeID, ttl).Err(); err != nil {
		logger.Warnf("[presence] mirror online failed identity=%s err=%v", identityID, err)
	}
}

// MirrorOffline drops the identity's presence key.
func MirrorOffline(identityID string) {
	if !redis.Initialized() {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), mirrorTimeout)
	defer cancel()
	if err := redis.GetRedis().Del(ctx, presenceKey(identityID)).Err(); err != nil {
		logger.Warnf("[presence] mirror offline failed identity=%s err=%v", identityID, err)
	}
}

// MirrorAdmin records (or clears, on empty connID) the admin slot holder.
func MirrorAdmin(connID string) {
	if !redis.Initialized() {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), mirrorTimeout)
	defer cancel()
	var err error
	if connID == "" {
		err = redis.GetRedis().Del(ctx, adminSlotKey).Err()
	} else {
		err = redis.GetRedis().Set(ctx, adminSlotKey, connID, 0).Err()
	}
	if err != nil {
		logger.Warnf("[presence] mirror admin failed err=%v", err)
	}
}

// LookupOnline checks the mirror; used by ops tooling only, never by routing.
func LookupOnline(ctx context.Context, identityID string) (nodeID string, online bool, err error) {
	if !redis.Initialized() {
		return "", false, nil
	}
	val, err := redis.GetRedis().Get(ctx, presenceKey(identityID)).Result()
	if err == goredis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}
