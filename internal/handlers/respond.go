package handlers

import (
	"errors"
	"net/http"

	"nimko_store/internal/services"
)

// errorReply maps the service error taxonomy onto a status code and a
// message safe to show the shopper. Persistence problems come back as a
// generic retryable message.
func errorReply(err error) (int, string) {
	var validation *services.ValidationError
	if errors.As(err, &validation) {
		return http.StatusBadRequest, validation.Error()
	}
	var notFound *services.NotFoundError
	if errors.As(err, &notFound) {
		return http.StatusNotFound, notFound.Error()
	}
	return http.StatusInternalServerError, "Something went wrong, please try again"
}
