package repositories

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/MrUnRobot/sistema-calificaciones-definitive/internal/db"
	"github.com/MrUnRobot/sistema-calificaciones-definitive/internal/pkg/apperrors"
)

// Repositories is a container for all repository instances
type Repositories struct {
	TeacherRepository *TeacherRepository
	StudentRepository *StudentRepository
}

// NewRepositories creates all repositories backed by the document store
func NewRepositories(store *db.Mongo) *Repositories {
	return &Repositories{
		TeacherRepository: NewTeacherRepository(store),
		StudentRepository: NewStudentRepository(store),
	}
}

// storageErr classifies driver failures. Timeouts and network errors become
// ErrStorageUnavailable so services can leave state untouched and report a
// generic retry-later message; everything else passes through.
func storageErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) ||
		mongo.IsTimeout(err) ||
		mongo.IsNetworkError(err) ||
		errors.Is(err, mongo.ErrClientDisconnected) {
		return apperrors.NewCustomError(apperrors.ErrStorageUnavailable, err.Error())
	}
	return err
}
