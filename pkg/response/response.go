// Package response holds the JSON envelopes shared by the record handlers.
package response

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Created is returned by POST endpoints.
type Created struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

// Message is returned by PUT, DELETE and logout.
type Message struct {
	Message string `json:"message"`
}

func NewCreated(id, msg string) *Created {
	return &Created{ID: id, Message: msg}
}

func NewMessage(msg string) *Message {
	return &Message{Message: msg}
}

var binder = &echo.DefaultBinder{}

// BindBody decodes the request body into v. Path and query parameters are
// not bound. Decoding failures become a 400 with a fixed message.
func BindBody(c echo.Context, v interface{}) error {
	if err := binder.BindBody(c, v); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body").SetInternal(err)
	}
	return nil
}
