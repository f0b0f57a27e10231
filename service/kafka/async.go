package kafka

import (
	"github.com/Shopify/sarama"
	"go.uber.org/zap"

	"github.com/akhi1986akhi/webChat/logger"
)

var AsyncProd sarama.AsyncProducer

func InitAsyncProducerFromClient() error {
	p, err := sarama.NewAsyncProducerFromClient(KafkaClient)
	if err != nil {
		return err
	}
	AsyncProd = p

	go func() {
		for {
			select {
			case msg := <-AsyncProd.Successes():
				logger.Debug("async message sent",
					zap.String("topic", msg.Topic),
					zap.Int32("partition", msg.Partition),
					zap.Int64("offset", msg.Offset))
			case err := <-AsyncProd.Errors():
				logger.Errorf("async message error: %v", err)
			}
		}
	}()

	return nil
}

// SendAsync publishes fire-and-forget; key keeps one conversation on one partition.
func SendAsync(topic, key string, value []byte) {
	if AsyncProd == nil {
		return
	}
	msg := &sarama.ProducerMessage{
		Topic: topic,
		Key:   sarama.StringEncoder(key),
		Value: sarama.ByteEncoder(value),
	}
	AsyncProd.Input() <- msg
}
