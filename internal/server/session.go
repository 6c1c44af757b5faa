package server

import (
	"errors"
	"io"
	"net"

	"github.com/leonardcser/kvcache/internal/logger"
	"github.com/leonardcser/kvcache/internal/protocol"
)

// handleConn runs one session: read a request, decode it, apply it to the
// store, reply, and repeat until the client goes away. Any failure ends
// this session only.
func (s *Server) handleConn(conn net.Conn) {
	remote := conn.RemoteAddr()
	defer conn.Close()
	defer func() {
		if r := recover(); r != nil {
			logger.Errorf("session %s: panic: %v", remote, r)
		}
	}()
	logger.Infof("Client connected: %s", remote)

	buf := make([]byte, protocol.MaxRequestSize)
	for {
		n, err := conn.Read(buf)
		if n > 0 {
			if werr := s.serveRequest(conn, buf[:n]); werr != nil {
				logger.Warnf("session %s: write: %v", remote, werr)
				return
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, net.ErrClosed) {
				logger.Infof("Client disconnected: %s", remote)
			} else {
				logger.Warnf("session %s: read: %v", remote, err)
			}
			return
		}
	}
}

// serveRequest handles one request buffer and writes at most one reply.
// Only write errors are returned.
func (s *Server) serveRequest(w io.Writer, req []byte) error {
	cmd, err := protocol.Decode(req)
	if errors.Is(err, protocol.ErrEmptyRequest) {
		return nil
	}
	if err != nil {
		logger.Debugf("protocol error: %v", err)
		return protocol.WriteError(w, err)
	}

	switch cmd.Kind {
	case protocol.Handshake:
		return protocol.WriteOK(w)
	case protocol.Set:
		logger.Debugf("Handling set with key: %s, value: %s, expiry: %s", cmd.Key, cmd.Value, cmd.TTL)
		s.store.Set(cmd.Key, cmd.Value, cmd.TTL)
		return protocol.WriteOK(w)
	case protocol.Get:
		logger.Debugf("Handling get with key: %s", cmd.Key)
		v, ok := s.store.Get(cmd.Key)
		if !ok {
			return protocol.WriteNull(w)
		}
		return protocol.WriteBulk(w, v)
	}
	return nil
}
