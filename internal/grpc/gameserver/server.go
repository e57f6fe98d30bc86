package gameserver

import (
	"context"

	"github.com/rs/zerolog"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

// Server implements SessionServiceServer on top of a SessionManager.
type Server struct {
	sessions *SessionManager
	logger   zerolog.Logger
}

var _ SessionServiceServer = (*Server)(nil)

// NewServer creates a new session server
func NewServer(sessions *SessionManager, logger zerolog.Logger) *Server {
	return &Server{
		sessions: sessions,
		logger:   logger.With().Str("component", "SessionServer").Logger(),
	}
}

// CreateSession starts a session.
//
// Request: {"difficulty": string, "seed": number, "width": number, "height": number}, all optional.
// Response: {"session_id": string, "snapshot": object}.
func (s *Server) CreateSession(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	opts := SessionOptions{Difficulty: stringField(req, "difficulty")}
	var err error
	if opts.Width, err = intField(req, "width"); err != nil {
		return nil, toStatus(err)
	}
	if opts.Height, err = intField(req, "height"); err != nil {
		return nil, toStatus(err)
	}
	seed, err := intField(req, "seed")
	if err != nil {
		return nil, toStatus(err)
	}
	opts.Seed = int64(seed)

	sess, err := s.sessions.CreateSession(ctx, opts)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Failed to create session")
		return nil, toStatus(err)
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	snap, err := snapshotToStruct(sess.id, sess.engine)
	if err != nil {
		return nil, toStatus(err)
	}
	return newResponse(map[string]interface{}{"session_id": sess.id}, snap)
}

// SubmitCommands applies human commands in order.
//
// Request: {"session_id": string, "request_id": string, "commands": [object]}.
// Response: {"session_id", "tick", "ok": bool, "error": string, "code": string, "snapshot": object}.
// A rejected command is reported in the response rather than as an RPC
// error; the remaining commands are still applied. A repeated request_id
// returns the first response without applying anything.
func (s *Server) SubmitCommands(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	sess, err := s.sessions.GetSession(stringField(req, "session_id"))
	if err != nil {
		return nil, toStatus(err)
	}
	requestID := stringField(req, "request_id")
	if cached := sess.idempotency.Check(requestID); cached != nil {
		s.logger.Debug().
			Str("session_id", sess.id).
			Str("request_id", requestID).
			Msg("Returning cached response for duplicate request")
		return cached, nil
	}

	cmds, err := commandsFromRequest(req)
	if err != nil {
		return nil, toStatus(err)
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.touch()

	// A concurrent duplicate may have finished while this one waited.
	if cached := sess.idempotency.Check(requestID); cached != nil {
		return cached, nil
	}

	fields := map[string]interface{}{
		"session_id": sess.id,
		"ok":         true,
		"error":      "",
		"code":       codes.OK.String(),
	}
	if applyErr := sess.engine.Apply(ctx, cmds...); applyErr != nil {
		if ctx.Err() != nil {
			return nil, toStatus(applyErr)
		}
		fields["ok"] = false
		fields["error"] = applyErr.Error()
		fields["code"] = status.Code(toStatus(applyErr)).String()
		s.logger.Debug().Err(applyErr).Str("session_id", sess.id).Msg("Command rejected")
	}
	fields["tick"] = sess.engine.CurrentTick()

	snap, err := snapshotToStruct(sess.id, sess.engine)
	if err != nil {
		return nil, toStatus(err)
	}
	resp, err := newResponse(fields, snap)
	if err != nil {
		return nil, err
	}
	sess.idempotency.Store(requestID, resp)
	return resp, nil
}

// GetSnapshot returns the current state of a session.
//
// Request: {"session_id": string}.
func (s *Server) GetSnapshot(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	sess, err := s.sessions.GetSession(stringField(req, "session_id"))
	if err != nil {
		return nil, toStatus(err)
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.touch()

	snap, err := snapshotToStruct(sess.id, sess.engine)
	if err != nil {
		return nil, toStatus(err)
	}
	return snap, nil
}

// CloseSession ends a session and its event streams.
//
// Request: {"session_id": string}. Response: {"session_id": string, "closed": true}.
func (s *Server) CloseSession(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id := stringField(req, "session_id")
	if err := s.sessions.CloseSession(id); err != nil {
		return nil, toStatus(err)
	}
	resp, err := newStruct(map[string]interface{}{"session_id": id, "closed": true})
	if err != nil {
		return nil, toStatus(err)
	}
	return resp, nil
}

// StreamEvents sends session events until the client goes away or the
// session closes.
//
// Request: {"session_id": string, "types": [string]}; no types means all.
func (s *Server) StreamEvents(req *structpb.Struct, stream SessionService_StreamEventsServer) error {
	sess, err := s.sessions.GetSession(stringField(req, "session_id"))
	if err != nil {
		return toStatus(err)
	}

	var types []string
	for _, v := range req.GetFields()["types"].GetListValue().GetValues() {
		if t := v.GetStringValue(); t != "" {
			types = append(types, t)
		}
	}

	clientID, updates := sess.streams.RegisterClient(types)
	s.touch(sess)
	defer func() {
		sess.streams.UnregisterClient(clientID)
		s.touch(sess)
	}()

	s.logger.Info().
		Str("session_id", sess.id).
		Int64("client_id", clientID).
		Strs("types", types).
		Msg("Event stream opened")

	ctx := stream.Context()
	for {
		select {
		case <-ctx.Done():
			s.logger.Debug().Str("session_id", sess.id).Int64("client_id", clientID).Msg("Event stream client went away")
			return nil
		case msg, ok := <-updates:
			if !ok {
				return nil
			}
			if err := stream.Send(msg); err != nil {
				s.logger.Warn().Err(err).Str("session_id", sess.id).Msg("Failed to send event")
				return err
			}
		}
	}
}

func (s *Server) touch(sess *session) {
	sess.mu.Lock()
	sess.touch()
	sess.mu.Unlock()
}

// GetActiveSessions returns the number of hosted sessions.
func (s *Server) GetActiveSessions() int {
	return s.sessions.GetActiveSessions()
}

func newResponse(fields map[string]interface{}, snapshot *structpb.Struct) (*structpb.Struct, error) {
	resp, err := newStruct(fields)
	if err != nil {
		return nil, toStatus(err)
	}
	resp.Fields["snapshot"] = structpb.NewStructValue(snapshot)
	return resp, nil
}
