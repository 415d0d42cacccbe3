package service

import (
	"errors"
	"fmt"
	"time"

	"volunteer-marketplace-be/internal/apperror"
	"volunteer-marketplace-be/internal/entity"
	"volunteer-marketplace-be/internal/repository/contract"
)

// Clock is injected so tests can move time.
type Clock func() time.Time

func systemClock() time.Time {
	return time.Now().UTC()
}

// translateWriteErr maps a lost conditional update to a retryable conflict
// and wraps anything else as a storage failure.
func translateWriteErr(err error, entityName string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, contract.ErrStaleVersion) {
		return apperror.ConcurrentModification(entityName)
	}
	if _, ok := apperror.As(err); ok {
		return err
	}
	return fmt.Errorf("failed to update %s: %w", entityName, err)
}

// requireAdmin hides admin-only records from everyone else.
func requireAdmin(actor entity.Actor, entityName string) error {
	if !actor.IsAdmin() {
		return apperror.NotFound(entityName)
	}
	return nil
}

func pointsLockKey(userPublicID string) string {
	return "points:" + userPublicID
}

func strPtr(s string) *string {
	return &s
}
