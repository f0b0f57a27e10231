package config

import (
	"os"
	"strconv"
	"time"

	"github.com/akhi1986akhi/webChat/logger"
	"github.com/akhi1986akhi/webChat/tools/ids"
)

// AppConfig holds everything the relay process needs. Defaults are the
// single-node dev setup; env vars override the endpoints.
type AppConfig struct {
	NodeID string
	Port   int

	MongoURI      string
	MongoDatabase string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	KafkaEnabled bool
	KafkaBrokers []string
	KafkaTopic   string

	// superseded-connection sweep (allowed extension, see design notes)
	SweepEvery time.Duration
	OrphanTTL  time.Duration
}

var Global = AppConfig{
	NodeID: "relay_01",
	Port:   5000,

	MongoURI:      "mongodb://localhost:27017",
	MongoDatabase: "supportChat",

	RedisAddr: "127.0.0.1:6379",
	RedisDB:   0,

	KafkaEnabled: false,
	KafkaBrokers: []string{"127.0.0.1:9092"},
	KafkaTopic:   "support_chat_messages",

	SweepEvery: 30 * time.Second,
	OrphanTTL:  2 * time.Minute,
}

func GetJwtSecret() []byte {
	if s := os.Getenv("CHAT_JWT_SECRET"); s != "" {
		return []byte(s)
	}
	return []byte("mN9b1f8zPq+W2xjX/45sKcVd0TfyoG+3Hp5Z8q9Rj1o=")
}

// LoadEnv applies endpoint overrides from the environment.
func LoadEnv() {
	if v := os.Getenv("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			Global.Port = p
		}
	}
	if v := os.Getenv("MONGO_URI"); v != "" {
		Global.MongoURI = v
	}
	if v := os.Getenv("MONGO_DB"); v != "" {
		Global.MongoDatabase = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		Global.RedisAddr = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		Global.RedisPassword = v
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		Global.KafkaEnabled = true
		Global.KafkaBrokers = []string{v}
	}
	if v := os.Getenv("NODE_ID"); v != "" {
		Global.NodeID = v
	}
}

func ConfigIds() {
	logger.Infof("configuring id generator node=%s", Global.NodeID)
	ids.SetNodeID(100)
}
