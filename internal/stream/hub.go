package stream

import (
	"context"
	"log"
	"strings"
	"sync"

	"github.com/redis/go-redis/v9"
)

// Topic identifies one owner's view of one collection, e.g.
// "trips:user-1". Watchers subscribe to a topic; mutation gateways
// broadcast on it after every successful write.
func Topic(collection, userID string) string {
	return collection + ":" + userID
}

type Hub struct {
	redis   *redis.Client
	clients map[string]map[*Client]struct{}
	mu      sync.RWMutex
}

type Client struct {
	Topic string
	Send  chan []byte
}

func NewHub(redisClient *redis.Client) *Hub {
	h := &Hub{
		redis:   redisClient,
		clients: map[string]map[*Client]struct{}{},
	}

	if redisClient != nil {
		go h.subscribeRedis()
	}
	return h
}

func (h *Hub) Register(topic string) *Client {
	client := &Client{
		Topic: topic,
		Send:  make(chan []byte, 64),
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[topic] == nil {
		h.clients[topic] = map[*Client]struct{}{}
	}
	h.clients[topic][client] = struct{}{}
	return client
}

func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	topicClients, ok := h.clients[client.Topic]
	if !ok {
		return
	}
	if _, registered := topicClients[client]; !registered {
		return
	}
	delete(topicClients, client)
	if len(topicClients) == 0 {
		delete(h.clients, client.Topic)
	}
	close(client.Send)
}

// Broadcast fans a payload out to subscribers of the topic. With
// Redis configured, the payload goes through the pub/sub channel and
// comes back to local subscribers via the hub's own subscription, so
// every instance, this one included, delivers it exactly once. Without
// Redis, delivery is local and immediate. Slow clients are skipped
// rather than blocked on.
func (h *Hub) Broadcast(topic string, payload []byte) {
	if h.redis != nil {
		err := h.redis.Publish(context.Background(), redisChannel(topic), payload).Err()
		if err == nil {
			return
		}
		log.Printf("redis publish error, delivering locally: %v", err)
	}

	h.deliverLocal(topic, payload)
}

func (h *Hub) deliverLocal(topic string, payload []byte) {
	h.mu.RLock()
	clients := h.clients[topic]
	h.mu.RUnlock()

	for client := range clients {
		select {
		case client.Send <- payload:
		default:
		}
	}
}

func (h *Hub) subscribeRedis() {
	ctx := context.Background()
	pubsub := h.redis.PSubscribe(ctx, "wandermap:*:events")
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		h.deliverLocal(topicFromChannel(msg.Channel), []byte(msg.Payload))
	}
}

func redisChannel(topic string) string {
	return "wandermap:" + topic + ":events"
}

func topicFromChannel(ch string) string {
	// wandermap:{collection}:{user}:events
	const prefix = "wandermap:"
	const suffix = ":events"
	if !strings.HasPrefix(ch, prefix) || !strings.HasSuffix(ch, suffix) || len(ch) <= len(prefix)+len(suffix) {
		return ""
	}
	return ch[len(prefix) : len(ch)-len(suffix)]
}
