package realtime

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"blog-engagement-api/internal/metrics"
)

const channelPrefix = "blog:live:"

// Event is the envelope pushed to live feed subscribers
type Event struct {
	Type       string      `json:"type"`
	PostID     uuid.UUID   `json:"postId"`
	Payload    interface{} `json:"payload"`
	OccurredAt time.Time   `json:"occurredAt"`
}

const (
	outboundBuffer = 256
	publishTimeout = 2 * time.Second
)

// Hub keeps the websocket subscribers of every post and fans events out to them.
// With redis configured, events travel through pub/sub so every instance
// delivers to its own subscribers.
type Hub struct {
	rooms   map[uuid.UUID]map[*Client]struct{}
	roomsMu sync.RWMutex
	total   int

	redis    *redis.Client
	outbound chan outboundEvent
	metrics  *metrics.Metrics
	logger   *zap.Logger
}

type outboundEvent struct {
	postID uuid.UUID
	data   []byte
}

// NewHub creates a hub. redisClient may be nil for single-instance delivery.
func NewHub(redisClient *redis.Client, m *metrics.Metrics, logger *zap.Logger) *Hub {
	return &Hub{
		rooms:    make(map[uuid.UUID]map[*Client]struct{}),
		redis:    redisClient,
		outbound: make(chan outboundEvent, outboundBuffer),
		metrics:  m,
		logger:   logger,
	}
}

// Publish sends an event to every subscriber of postID. It never blocks: with
// redis the event is queued for Run, and a full queue falls back to local delivery.
func (h *Hub) Publish(postID uuid.UUID, eventType string, payload interface{}) {
	data, err := json.Marshal(Event{
		Type:       eventType,
		PostID:     postID,
		Payload:    payload,
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		h.logger.Warn("Failed to encode live event", zap.String("type", eventType), zap.Error(err))
		return
	}

	if h.redis == nil {
		h.broadcast(postID, data)
		return
	}

	select {
	case h.outbound <- outboundEvent{postID: postID, data: data}:
	default:
		h.logger.Warn("Live event queue full, delivering locally",
			zap.String("post_id", postID.String()),
			zap.String("type", eventType))
		h.broadcast(postID, data)
	}
}

// Run relays queued events to redis and redis pub/sub messages to local
// subscribers until ctx is done. Without redis it only waits for ctx.
func (h *Hub) Run(ctx context.Context) {
	if h.redis == nil {
		<-ctx.Done()
		return
	}

	go h.drainOutbound(ctx)

	pubsub := h.redis.PSubscribe(ctx, channelPrefix+"*")
	defer pubsub.Close()

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			postID, err := uuid.Parse(strings.TrimPrefix(msg.Channel, channelPrefix))
			if err != nil {
				continue
			}
			h.broadcast(postID, []byte(msg.Payload))
		}
	}
}

func (h *Hub) drainOutbound(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-h.outbound:
			h.publishRemote(ctx, ev)
		}
	}
}

func (h *Hub) publishRemote(ctx context.Context, ev outboundEvent) {
	pubCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()
	if err := h.redis.Publish(pubCtx, channelPrefix+ev.postID.String(), ev.data).Err(); err != nil {
		h.logger.Warn("Failed to publish live event, delivering locally",
			zap.String("post_id", ev.postID.String()),
			zap.Error(err))
		h.broadcast(ev.postID, ev.data)
	}
}

// Subscribers returns the number of connected clients across all posts
func (h *Hub) Subscribers() int {
	h.roomsMu.RLock()
	defer h.roomsMu.RUnlock()
	return h.total
}

// SubscribersOf returns the number of clients watching postID
func (h *Hub) SubscribersOf(postID uuid.UUID) int {
	h.roomsMu.RLock()
	defer h.roomsMu.RUnlock()
	return len(h.rooms[postID])
}

func (h *Hub) register(c *Client) {
	h.roomsMu.Lock()
	if h.rooms[c.postID] == nil {
		h.rooms[c.postID] = make(map[*Client]struct{})
	}
	h.rooms[c.postID][c] = struct{}{}
	h.total++
	total := h.total
	h.roomsMu.Unlock()

	h.reportSubscribers(total)
	h.logger.Debug("Live feed client registered",
		zap.String("post_id", c.postID.String()),
		zap.String("user_id", c.userID.String()))
}

func (h *Hub) unregister(c *Client) {
	h.roomsMu.Lock()
	clients, ok := h.rooms[c.postID]
	if !ok {
		h.roomsMu.Unlock()
		return
	}
	if _, exists := clients[c]; !exists {
		h.roomsMu.Unlock()
		return
	}
	delete(clients, c)
	close(c.send)
	if len(clients) == 0 {
		delete(h.rooms, c.postID)
	}
	h.total--
	total := h.total
	h.roomsMu.Unlock()

	h.reportSubscribers(total)
	h.logger.Debug("Live feed client unregistered", zap.String("post_id", c.postID.String()))
}

func (h *Hub) broadcast(postID uuid.UUID, message []byte) {
	h.roomsMu.RLock()
	var slow []*Client
	for c := range h.rooms[postID] {
		select {
		case c.send <- message:
		default:
			slow = append(slow, c)
		}
	}
	h.roomsMu.RUnlock()

	// clients that cannot keep up are dropped
	for _, c := range slow {
		h.unregister(c)
	}
}

func (h *Hub) reportSubscribers(total int) {
	if h.metrics != nil {
		h.metrics.SetLiveFeedSubscribers(total)
	}
}
