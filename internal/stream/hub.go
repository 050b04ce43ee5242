package stream

import (
	"context"
	"log"
	"sync"

	"github.com/redis/go-redis/v9"
)

// Hub fans live session updates (accepted samples, finalized activities,
// badge unlocks) out to websocket subscribers. With redis configured,
// broadcasts also cross instance boundaries via pub/sub.
type Hub struct {
	redis       *redis.Client
	subscribers map[string]map[*Subscriber]struct{}
	mu          sync.RWMutex
}

// Subscriber is one connected websocket client listening on a topic
// (a session or player id).
type Subscriber struct {
	Topic string
	Send  chan []byte
}

func NewHub(redisClient *redis.Client) *Hub {
	h := &Hub{
		redis:       redisClient,
		subscribers: map[string]map[*Subscriber]struct{}{},
	}

	if redisClient != nil {
		go h.subscribeRedis()
	}
	return h
}

func (h *Hub) Register(topic string) *Subscriber {
	sub := &Subscriber{
		Topic: topic,
		Send:  make(chan []byte, 64),
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.subscribers[topic] == nil {
		h.subscribers[topic] = map[*Subscriber]struct{}{}
	}
	h.subscribers[topic][sub] = struct{}{}
	return sub
}

func (h *Hub) Unregister(sub *Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if topicSubs, ok := h.subscribers[sub.Topic]; ok {
		delete(topicSubs, sub)
		if len(topicSubs) == 0 {
			delete(h.subscribers, sub.Topic)
		}
	}
	close(sub.Send)
}

func (h *Hub) Broadcast(topic string, payload []byte) {
	h.mu.RLock()
	subs := h.subscribers[topic]
	h.mu.RUnlock()

	for sub := range subs {
		select {
		case sub.Send <- payload:
		default:
		}
	}

	if h.redis != nil {
		err := h.redis.Publish(context.Background(), redisChannel(topic), payload).Err()
		if err != nil {
			log.Printf("redis publish error: %v", err)
		}
	}
}

func (h *Hub) subscribeRedis() {
	ctx := context.Background()
	pubsub := h.redis.Subscribe(ctx, "mobility:*:live")
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		topic := topicFromChannel(msg.Channel)
		h.mu.RLock()
		subs := h.subscribers[topic]
		h.mu.RUnlock()
		for sub := range subs {
			select {
			case sub.Send <- []byte(msg.Payload):
			default:
			}
		}
	}
}

func redisChannel(topic string) string {
	return "mobility:" + topic + ":live"
}

func topicFromChannel(ch string) string {
	// mobility:{topic}:live
	const prefix = "mobility:"
	const suffix = ":live"
	if len(ch) <= len(prefix)+len(suffix) {
		return ""
	}
	return ch[len(prefix) : len(ch)-len(suffix)]
}
