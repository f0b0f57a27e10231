package kafka

import (
	"github.com/Shopify/sarama"
)

var KafkaClient sarama.Client

func BuildBaseConfig() *sarama.Config {
	cfg := sarama.NewConfig()
	cfg.Producer.Return.Successes = true
	cfg.Producer.Return.Errors = true
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Retry.Max = 3
	cfg.Producer.Partitioner = sarama.NewHashPartitioner // key controls partition
	cfg.Producer.Compression = sarama.CompressionSnappy
	cfg.Version = sarama.V2_1_0_0
	return cfg
}

func InitKafkaClient(brokers []string) error {
	client, err := sarama.NewClient(brokers, BuildBaseConfig())
	if err != nil {
		return err
	}
	KafkaClient = client
	return nil
}
