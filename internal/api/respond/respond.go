// Package respond writes uniform JSON envelopes for HTTP handlers.
package respond

import (
	"encoding/json"
	"net/http"

	"github.com/wb-go/wbf/zlog"
)

type success struct {
	Result any `json:"result"`
}

type failure struct {
	Error string `json:"error"`
}

// JSON writes v with the given status code.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		zlog.Logger.Error().Err(err).Msg("failed to encode response")
	}
}

// OK writes v as a 200 result.
func OK(w http.ResponseWriter, v any) {
	JSON(w, http.StatusOK, success{Result: v})
}

// Created writes v as a 201 result.
func Created(w http.ResponseWriter, v any) {
	JSON(w, http.StatusCreated, success{Result: v})
}

// Accepted writes v as a 202 result.
func Accepted(w http.ResponseWriter, v any) {
	JSON(w, http.StatusAccepted, success{Result: v})
}

// Fail writes err as an error envelope with the given status code.
func Fail(w http.ResponseWriter, status int, err error) {
	JSON(w, status, failure{Error: err.Error()})
}
