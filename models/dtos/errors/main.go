package errors

import (
	"time"
)

/*
	Utility functions to facillitate returning error responses to HTTP clients
*/

type GeneralErrorResponseDto struct {
	Code      int       `json:"code"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// -- Simplest: 1 error with message
func CreateSimpleBadRequest(message string) GeneralErrorResponseDto {
	return GeneralErrorResponseDto{
		Code:      400,
		Message:   message,
		Timestamp: time.Now(),
	}
}

func CreateSimpleNotFound(message string) GeneralErrorResponseDto {
	return GeneralErrorResponseDto{
		Code:      404,
		Message:   message,
		Timestamp: time.Now(),
	}
}

func CreateSimpleInternalServerError(message string) GeneralErrorResponseDto {
	return GeneralErrorResponseDto{
		Code:      500,
		Message:   message,
		Timestamp: time.Now(),
	}
}

// --
