package protocol

import (
	"errors"
	"io"

	"github.com/tidwall/resp"
)

// WriteOK writes +OK.
func WriteOK(w io.Writer) error {
	return resp.NewWriter(w).WriteSimpleString("OK")
}

// WriteBulk writes v as a bulk string: $<len>\r\n<v>\r\n.
func WriteBulk(w io.Writer, v string) error {
	return resp.NewWriter(w).WriteString(v)
}

// WriteNull writes the null bulk string $-1.
func WriteNull(w io.Writer) error {
	return resp.NewWriter(w).WriteNull()
}

// WriteError writes err as a -ERR reply.
func WriteError(w io.Writer, err error) error {
	return resp.NewWriter(w).WriteError(errors.New("ERR " + err.Error()))
}
