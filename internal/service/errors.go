package service

import (
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	pkgerrors "cz4r/pkg/errors"
)

// storeError classifies a repository error. A missing row becomes NotFound
// with the given message; anything else is logged and reported as a
// persistence failure.
func storeError(logger *zap.Logger, op string, err error, notFound string, fields ...zap.Field) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.NotFound(notFound)
	}
	var appErr *pkgerrors.Error
	if errors.As(err, &appErr) {
		return err
	}
	logger.Error(op, append(fields, zap.Error(err))...)
	return pkgerrors.Persistence(op, err)
}
