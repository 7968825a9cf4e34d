package repositories

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/MrUnRobot/sistema-calificaciones-definitive/internal/app/models"
	"github.com/MrUnRobot/sistema-calificaciones-definitive/internal/db"
)

// TeacherRepository handles document-store operations for principals.
// Principals are seeded out-of-band; the application only reads them.
type TeacherRepository struct {
	store *db.Mongo
}

// NewTeacherRepository creates a new teacher repository
func NewTeacherRepository(store *db.Mongo) *TeacherRepository {
	return &TeacherRepository{store: store}
}

// FindActiveByUsername retrieves an active principal by exact username.
// Returns (nil, nil) when no active principal matches.
func (r *TeacherRepository) FindActiveByUsername(ctx context.Context, username string) (*models.Teacher, error) {
	ctx, cancel := r.store.Context(ctx)
	defer cancel()

	var teacher models.Teacher
	err := r.store.Collection(db.TeachersCollection).
		FindOne(ctx, bson.M{"usuario": username, "activo": true}).
		Decode(&teacher)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, storageErr(fmt.Errorf("error retrieving principal: %w", err))
	}
	return &teacher, nil
}

// FindByGroup retrieves the teacher assigned to a group, nil when the group
// has no teacher. Used by the group report header.
func (r *TeacherRepository) FindByGroup(ctx context.Context, group string) (*models.Teacher, error) {
	ctx, cancel := r.store.Context(ctx)
	defer cancel()

	var teacher models.Teacher
	err := r.store.Collection(db.TeachersCollection).
		FindOne(ctx, bson.M{"grupo": group, "rol": models.RoleTeacher}).
		Decode(&teacher)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, storageErr(fmt.Errorf("error retrieving group teacher: %w", err))
	}
	return &teacher, nil
}

// ExistsByUsername checks whether any principal carries the username.
func (r *TeacherRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	ctx, cancel := r.store.Context(ctx)
	defer cancel()

	count, err := r.store.Collection(db.TeachersCollection).
		CountDocuments(ctx, bson.M{"usuario": username})
	if err != nil {
		return false, storageErr(fmt.Errorf("error checking principal existence: %w", err))
	}
	return count > 0, nil
}

// Insert stores a principal document. Seeding only.
func (r *TeacherRepository) Insert(ctx context.Context, teacher *models.Teacher) error {
	ctx, cancel := r.store.Context(ctx)
	defer cancel()

	if _, err := r.store.Collection(db.TeachersCollection).InsertOne(ctx, teacher); err != nil {
		return storageErr(fmt.Errorf("error inserting principal: %w", err))
	}
	return nil
}

// CountActiveTeachers counts active principals with the teacher role.
func (r *TeacherRepository) CountActiveTeachers(ctx context.Context) (int64, error) {
	ctx, cancel := r.store.Context(ctx)
	defer cancel()

	count, err := r.store.Collection(db.TeachersCollection).
		CountDocuments(ctx, bson.M{"rol": models.RoleTeacher, "activo": true})
	if err != nil {
		return 0, storageErr(fmt.Errorf("error counting teachers: %w", err))
	}
	return count, nil
}

// NextID returns the next principal id from the atomic sequence.
func (r *TeacherRepository) NextID(ctx context.Context) (int64, error) {
	id, err := r.store.NextSequence(ctx, db.TeachersCollection)
	if err != nil {
		return 0, storageErr(err)
	}
	return id, nil
}
