package protocol

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/leonardcser/kvcache/internal/cache"
)

// Decode turns one request buffer into a Command.
//
// An array header of exactly 4 short-circuits to a Handshake and the rest
// of the buffer is dropped. When the buffer holds several complete
// commands, the last one wins.
func Decode(req []byte) (Command, error) {
	tokens, handshake, err := tokenize(req)
	if err != nil {
		return Command{}, err
	}
	if handshake {
		return Command{Kind: Handshake}, nil
	}
	if len(tokens) == 0 {
		return Command{}, ErrEmptyRequest
	}

	var last Command
	for first := true; len(tokens) > 0; first = false {
		if !first && !isVerb(tokens[0]) {
			return Command{}, fmt.Errorf("%w: unexpected %q after %s", ErrSyntax, tokens[0], last.Kind)
		}
		cmd, n, err := decodeCommand(tokens)
		if err != nil {
			return Command{}, err
		}
		last = cmd
		tokens = tokens[n:]
	}
	return last, nil
}

// tokenize splits req into payload tokens, dropping framing lines.
func tokenize(req []byte) (tokens []string, handshake bool, err error) {
	bulkNext := false
	for len(req) > 0 {
		var line []byte
		if i := bytes.IndexByte(req, '\n'); i >= 0 {
			line, req = req[:i], req[i+1:]
		} else {
			line, req = req, nil
		}
		line = bytes.TrimSuffix(line, []byte{'\r'})

		// The line after a bulk marker is payload whatever it looks like,
		// including empty.
		if !bulkNext {
			if len(line) == 0 {
				continue
			}
			if n, ok := parseCount(line, '*'); ok {
				if n == handshakeArraySize {
					return nil, true, nil
				}
				continue
			}
			if _, ok := parseCount(line, '$'); ok {
				bulkNext = true
				continue
			}
		}
		bulkNext = false

		if len(line) > MaxTokenSize {
			return nil, false, fmt.Errorf("%w: %d bytes, limit is %d", ErrTokenTooLong, len(line), MaxTokenSize)
		}
		tokens = append(tokens, string(line))
	}
	return tokens, false, nil
}

// parseCount recognizes framing lines such as "*3" or "$5".
func parseCount(line []byte, prefix byte) (int, bool) {
	if len(line) < 2 || line[0] != prefix {
		return 0, false
	}
	for _, c := range line[1:] {
		if c < '0' || c > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(string(line[1:]))
	if err != nil {
		return 0, false
	}
	return n, true
}

func isVerb(tok string) bool {
	return strings.EqualFold(tok, "SET") || strings.EqualFold(tok, "GET")
}

// decodeCommand reads one command from the head of tokens and reports how
// many tokens it used.
func decodeCommand(tokens []string) (Command, int, error) {
	verb, args := tokens[0], tokens[1:]
	switch {
	case strings.EqualFold(verb, "GET"):
		if len(args) < 1 {
			return Command{}, 0, arityError(verb)
		}
		if args[0] == "" {
			return Command{}, 0, fmt.Errorf("%w: empty key", ErrSyntax)
		}
		return Command{Kind: Get, Key: args[0]}, 2, nil

	case strings.EqualFold(verb, "SET"):
		if len(args) < 2 {
			return Command{}, 0, arityError(verb)
		}
		if args[0] == "" {
			return Command{}, 0, fmt.Errorf("%w: empty key", ErrSyntax)
		}
		cmd := Command{Kind: Set, Key: args[0], Value: args[1], TTL: cache.NoExpiry}
		if len(args) < 3 || !strings.EqualFold(args[2], "EX") {
			return cmd, 3, nil
		}
		if len(args) < 4 {
			return Command{}, 0, fmt.Errorf("%w: EX needs a value", ErrSyntax)
		}
		ttl, err := parseTTL(args[3])
		if err != nil {
			return Command{}, 0, err
		}
		cmd.TTL = ttl
		return cmd, 5, nil

	default:
		return Command{}, 0, fmt.Errorf("%w '%s'", ErrUnknownCommand, verb)
	}
}

func parseTTL(tok string) (cache.TTL, error) {
	n, err := strconv.ParseInt(tok, 10, 64)
	if err != nil || n < 0 {
		return cache.TTL{}, fmt.Errorf("%w in 'set' command: %q", ErrInvalidTTL, tok)
	}
	return cache.Seconds(n), nil
}

func arityError(verb string) error {
	return fmt.Errorf("%w for '%s' command", ErrWrongArity, strings.ToLower(verb))
}
