package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

type envelope map[string]any

// writeJSON encodes data before touching the response, so an encoding
// failure can still be answered with an error status.
func writeJSON(w http.ResponseWriter, status int, data any) error {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(data); err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

// it parses body into Go struct.
func readJSON(w http.ResponseWriter, r *http.Request, data any) error {
	maxBytes := 1_048_578 //1mb
	r.Body = http.MaxBytesReader(w, r.Body, int64(maxBytes))

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	err := decoder.Decode(data)
	if err == nil {
		return nil
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	var maxBytesErr *http.MaxBytesError
	switch {
	case errors.As(err, &syntaxErr):
		return badRequest(fmt.Errorf("body contains badly-formed JSON (at character %d)", syntaxErr.Offset))
	case errors.As(err, &typeErr):
		if typeErr.Field != "" {
			return badRequest(fmt.Errorf("%s must be of type %s", typeErr.Field, typeErr.Type.Kind()))
		}
		return badRequest(errors.New("body contains a value of the wrong type"))
	case errors.Is(err, io.EOF):
		return badRequest(errors.New("body must not be empty"))
	case errors.Is(err, io.ErrUnexpectedEOF):
		return badRequest(errors.New("body contains badly-formed JSON"))
	case strings.HasPrefix(err.Error(), "json: unknown field "):
		return badRequest(fmt.Errorf("body contains unknown field %s", strings.TrimPrefix(err.Error(), "json: unknown field ")))
	case errors.As(err, &maxBytesErr):
		return badRequest(fmt.Errorf("body must not be larger than %d bytes", maxBytesErr.Limit))
	default:
		return err
	}
}

func writeJSONError(w http.ResponseWriter, status int, message string) error {
	type envelope struct {
		Success    bool   `json:"success"`
		Message    string `json:"message"`
		StatusCode int    `json:"statusCode"`
	}

	return writeJSON(w, status, &envelope{
		Success:    false,
		Message:    message,
		StatusCode: status,
	})
}

// jsonResponse writes a success envelope. The transient message recorded on
// the request context, if any, is included.
func (app *application) jsonResponse(w http.ResponseWriter, r *http.Request, status int, data envelope) error {
	out := envelope{"success": true}
	if msg := getRequestContext(r).message; msg != "" {
		out["message"] = msg
	}
	for k, v := range data {
		out[k] = v
	}
	return writeJSON(w, status, out)
}
