package gameserver

import (
	"sync"

	"github.com/rs/zerolog"
	"google.golang.org/protobuf/types/known/structpb"
)

const streamBufferSize = 256

// streamClient is one StreamEvents call.
type streamClient struct {
	id      int64
	types   map[string]bool // empty means every type
	updates chan *structpb.Struct
}

func (c *streamClient) wants(eventType string) bool {
	return len(c.types) == 0 || c.types[eventType]
}

// StreamManager fans session events out to its stream clients.
type StreamManager struct {
	clients   map[int64]*streamClient
	clientsMu sync.RWMutex
	nextID    int64
	logger    zerolog.Logger
}

// NewStreamManager creates a new stream manager
func NewStreamManager(logger zerolog.Logger) *StreamManager {
	return &StreamManager{
		clients: make(map[int64]*streamClient),
		logger:  logger,
	}
}

// RegisterClient adds a client interested in types (all when empty). The
// returned channel is closed when the client is unregistered.
func (sm *StreamManager) RegisterClient(types []string) (int64, <-chan *structpb.Struct) {
	sm.clientsMu.Lock()
	defer sm.clientsMu.Unlock()

	sm.nextID++
	c := &streamClient{
		id:      sm.nextID,
		types:   make(map[string]bool, len(types)),
		updates: make(chan *structpb.Struct, streamBufferSize),
	}
	for _, t := range types {
		c.types[t] = true
	}
	sm.clients[c.id] = c

	sm.logger.Debug().
		Int64("client_id", c.id).
		Int("total_streams", len(sm.clients)).
		Msg("Stream client registered")
	return c.id, c.updates
}

// UnregisterClient removes a client and closes its channel.
func (sm *StreamManager) UnregisterClient(id int64) {
	sm.clientsMu.Lock()
	defer sm.clientsMu.Unlock()

	if c, ok := sm.clients[id]; ok {
		close(c.updates)
		delete(sm.clients, id)
		sm.logger.Debug().
			Int64("client_id", id).
			Int("remaining_streams", len(sm.clients)).
			Msg("Stream client unregistered")
	}
}

// BroadcastToAll queues msg for every client interested in eventType. A full
// client buffer drops the message rather than stall the simulation.
func (sm *StreamManager) BroadcastToAll(eventType string, msg *structpb.Struct) {
	sm.clientsMu.RLock()
	defer sm.clientsMu.RUnlock()

	for id, c := range sm.clients {
		if !c.wants(eventType) {
			continue
		}
		select {
		case c.updates <- msg:
		default:
			sm.logger.Warn().
				Int64("client_id", id).
				Str("event_type", eventType).
				Msg("Stream event channel full, dropping event")
		}
	}
}

// GetClientCount returns the number of connected stream clients
func (sm *StreamManager) GetClientCount() int {
	sm.clientsMu.RLock()
	defer sm.clientsMu.RUnlock()
	return len(sm.clients)
}

// CloseAll closes all stream clients
func (sm *StreamManager) CloseAll() {
	sm.clientsMu.Lock()
	defer sm.clientsMu.Unlock()

	for id, c := range sm.clients {
		close(c.updates)
		delete(sm.clients, id)
	}
}
