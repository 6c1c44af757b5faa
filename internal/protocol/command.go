// Package protocol decodes the line-oriented RESP subset spoken by the
// cache server and encodes its replies.
//
// A request is one read from the connection. Lines are CRLF terminated.
// "*N" lines are array headers and "$N" lines announce the bulk string on
// the next line; neither count is checked against what follows. Everything
// else is a payload token: a verb followed by its arguments.
package protocol

import (
	"errors"

	"github.com/leonardcser/kvcache/internal/cache"
)

const (
	// MaxRequestSize bounds a single read from a connection.
	MaxRequestSize = 4096
	// MaxTokenSize bounds a single key or value.
	MaxTokenSize = 2048

	// handshakeArraySize is the array header that is acknowledged with +OK
	// without looking at the rest of the request.
	handshakeArraySize = 4
)

type Kind int

const (
	Handshake Kind = iota + 1
	Set
	Get
)

func (k Kind) String() string {
	switch k {
	case Handshake:
		return "HANDSHAKE"
	case Set:
		return "SET"
	case Get:
		return "GET"
	default:
		return "UNKNOWN"
	}
}

// Command is one decoded request. Value and TTL are only meaningful for Set.
type Command struct {
	Kind  Kind
	Key   string
	Value string
	TTL   cache.TTL
}

var (
	// ErrEmptyRequest means the request held no payload tokens at all. It is
	// not answered.
	ErrEmptyRequest   = errors.New("empty request")
	ErrUnknownCommand = errors.New("unknown command")
	ErrWrongArity     = errors.New("wrong number of arguments")
	ErrSyntax         = errors.New("syntax error")
	ErrInvalidTTL     = errors.New("invalid expire time")
	ErrTokenTooLong   = errors.New("token too long")
)
