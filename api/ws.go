package api

import (
	"sync"

	"github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"

	"wavechat/domain/event"
)

// connSink adapts one websocket connection to the realtime.EventSink
// interface. Gorilla-style connections allow a single concurrent writer,
// so every write goes through the mutex.
type connSink struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (s *connSink) Send(envelope event.Envelope) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn.WriteJSON(envelope)
}

// wsFrame is a client-to-server control message. Direct frames carry
// receiverId, group frames carry groupId.
type wsFrame struct {
	Type       string `json:"type"`
	ReceiverID string `json:"receiverId,omitempty"`
	GroupID    string `json:"groupId,omitempty"`
	SenderName string `json:"senderName,omitempty"`
}

func (s *Server) handleWS(conn *websocket.Conn) {
	userID, _ := conn.Locals(localUserID).(string)
	if userID == "" {
		_ = conn.Close()
		return
	}

	connID := uuid.NewString()
	sink := &connSink{conn: conn}

	s.registry.Register(userID, connID, sink)
	s.joinMemberRooms(userID, connID)
	s.broadcaster.PresenceSnapshot()
	s.log.Info("websocket connected", "userId", userID, "connId", connID)

	defer func() {
		// A vanished connection must not leave a typing indicator stuck on.
		s.typing.Forget(userID)
		s.registry.Unregister(connID)
		s.broadcaster.PresenceSnapshot()
		s.log.Info("websocket disconnected", "userId", userID, "connId", connID)
	}()

	for {
		var frame wsFrame
		if err := conn.ReadJSON(&frame); err != nil {
			return
		}
		s.dispatchFrame(userID, connID, frame)
	}
}

// joinMemberRooms subscribes a connection to every group the user belongs
// to, replacing whatever room set it had before.
func (s *Server) joinMemberRooms(userID, connID string) {
	groupIDs, err := s.groups.GroupIDsFor(userID)
	if err != nil {
		s.log.Warn("room resync failed", "userId", userID, "error", err)
		return
	}
	s.registry.SetRooms(connID, groupIDs)
}

func (s *Server) dispatchFrame(userID, connID string, frame wsFrame) {
	switch frame.Type {
	case "join-groups":
		s.joinMemberRooms(userID, connID)
	case "start-typing":
		if frame.GroupID != "" {
			s.typing.KeystrokeGroup(userID, frame.SenderName, frame.GroupID)
		} else if frame.ReceiverID != "" {
			s.typing.KeystrokeDirect(userID, frame.SenderName, frame.ReceiverID)
		}
	case "stop-typing":
		if frame.GroupID != "" {
			s.typing.StopGroup(userID, frame.GroupID)
		} else if frame.ReceiverID != "" {
			s.typing.StopDirect(userID, frame.ReceiverID)
		}
	default:
		s.log.Debug("unknown frame type", "type", frame.Type, "userId", userID)
	}
}
