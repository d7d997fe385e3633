package shared

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"hradmin/internal/transport/http/api"
)

var errMalformed = api.IssueList{{Field: "body", Reason: "must be a valid JSON object"}}

// DecodeJSON decodes one JSON object from the request body.
func DecodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return decodeError(err)
	}
	return nil
}

// DecodeBulk accepts either one object or an array of objects.
func DecodeBulk[C any](r *http.Request) ([]C, error) {
	reader := bufio.NewReader(r.Body)
	first, err := firstByte(reader)
	if err != nil {
		return nil, decodeError(err)
	}
	dec := json.NewDecoder(reader)
	if first == '[' {
		var out []C
		if err := dec.Decode(&out); err != nil {
			return nil, decodeError(err)
		}
		if len(out) == 0 {
			return nil, api.IssueList{{Field: "body", Reason: "must contain at least one item"}}
		}
		return out, nil
	}
	var one C
	if err := dec.Decode(&one); err != nil {
		return nil, decodeError(err)
	}
	return []C{one}, nil
}

func firstByte(r *bufio.Reader) (byte, error) {
	for {
		b, err := r.Peek(1)
		if err != nil {
			return 0, err
		}
		if !bytes.ContainsRune([]byte(" \t\r\n"), rune(b[0])) {
			return b[0], nil
		}
		if _, err := r.ReadByte(); err != nil {
			return 0, err
		}
	}
}

func decodeError(err error) error {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		return api.IssueList{{Field: "body", Reason: "is too large"}}
	case errors.Is(err, io.EOF):
		return api.IssueList{{Field: "body", Reason: "is required"}}
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return api.IssueList{{Field: typeErr.Field, Reason: "has the wrong type"}}
	}
	return errMalformed
}
