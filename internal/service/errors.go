package service

import (
	"errors"

	"gorm.io/gorm"

	"blog-engagement-api/internal/repository"
	"blog-engagement-api/internal/response"
)

// storeError converts a repository error into an AppError.
// Errors that already are AppErrors pass through untouched.
func storeError(err error, notFoundMessage, internalMessage string) error {
	var appErr *response.AppError
	switch {
	case errors.As(err, &appErr):
		return appErr
	case errors.Is(err, gorm.ErrRecordNotFound):
		return response.NewNotFoundError(notFoundMessage, "")
	case repository.IsDuplicateError(err):
		return response.NewAppError(response.ErrCodeConstraintViolation, "Duplicate value violates a unique constraint", err.Error())
	case repository.IsForeignKeyError(err):
		return response.NewAppError(response.ErrCodeConstraintViolation, "Referenced record does not exist", err.Error())
	default:
		return response.NewAppError(response.ErrCodeInternal, internalMessage, err.Error())
	}
}
