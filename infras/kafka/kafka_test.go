package kafka_test

import (
	"testing"

	"github.com/lucasaveiro/service-scheduler/infras/kafka"

	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
)

type payload struct {
	BookingID string `json:"booking_id"`
	Status    string `json:"status"`
}

func TestMessage_ToKafkaMessage(t *testing.T) {
	msg := kafka.Message{
		Key:     "booking-1",
		Value:   payload{BookingID: "booking-1", Status: "pending"},
		Headers: map[string]string{"event": "booking.created"},
	}

	result, err := msg.ToKafkaMessage()

	assert.NoError(t, err)
	assert.Equal(t, []byte("booking-1"), result.Key)
	assert.JSONEq(t, `{"booking_id":"booking-1","status":"pending"}`, string(result.Value))
	assert.Equal(t, []kafkaGo.Header{{Key: "event", Value: []byte("booking.created")}}, result.Headers)
}

func TestMessage_ToKafkaMessageError(t *testing.T) {
	msg := kafka.Message{Key: "bad", Value: make(chan int)}

	_, err := msg.ToKafkaMessage()

	assert.Error(t, err)
}

func TestDecodeKafkaMessage(t *testing.T) {
	decoded, err := kafka.DecodeKafkaMessage[payload](kafkaGo.Message{
		Key:   []byte("booking-1"),
		Value: []byte(`{"booking_id":"booking-1","status":"confirmed"}`),
	})

	assert.NoError(t, err)
	assert.Equal(t, payload{BookingID: "booking-1", Status: "confirmed"}, decoded)

	_, err = kafka.DecodeKafkaMessage[payload](kafkaGo.Message{Value: []byte(`{`)})
	assert.Error(t, err)
}
