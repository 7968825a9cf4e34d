package repositories

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/MrUnRobot/sistema-calificaciones-definitive/internal/app/models"
	"github.com/MrUnRobot/sistema-calificaciones-definitive/internal/db"
)

// StudentRepository handles document-store operations for student records.
type StudentRepository struct {
	store *db.Mongo
}

// NewStudentRepository creates a new student repository
func NewStudentRepository(store *db.Mongo) *StudentRepository {
	return &StudentRepository{store: store}
}

// NextID returns the next student id from the atomic sequence. Ids are
// global across groups and never reused after deletion.
func (r *StudentRepository) NextID(ctx context.Context) (int64, error) {
	id, err := r.store.NextSequence(ctx, db.StudentsCollection)
	if err != nil {
		return 0, storageErr(err)
	}
	return id, nil
}

// FindByID retrieves a student by id; (nil, nil) when absent.
func (r *StudentRepository) FindByID(ctx context.Context, id int64) (*models.Student, error) {
	ctx, cancel := r.store.Context(ctx)
	defer cancel()

	var student models.Student
	err := r.store.Collection(db.StudentsCollection).
		FindOne(ctx, bson.M{"_id": id}).
		Decode(&student)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, storageErr(fmt.Errorf("error retrieving student: %w", err))
	}
	return &student, nil
}

// FindByIdentity retrieves a student by the (name, lastName, group) triple
// used for duplicate detection; (nil, nil) when absent.
func (r *StudentRepository) FindByIdentity(ctx context.Context, name, lastName, group string) (*models.Student, error) {
	ctx, cancel := r.store.Context(ctx)
	defer cancel()

	var student models.Student
	err := r.store.Collection(db.StudentsCollection).
		FindOne(ctx, bson.M{"nombre": name, "apellidos": lastName, "grupo": group}).
		Decode(&student)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, storageErr(fmt.Errorf("error checking student identity: %w", err))
	}
	return &student, nil
}

// ListAll retrieves every student ordered by group then surname.
func (r *StudentRepository) ListAll(ctx context.Context) ([]*models.Student, error) {
	sort := bson.D{{Key: "grupo", Value: 1}, {Key: "apellidos", Value: 1}}
	return r.list(ctx, bson.M{}, sort)
}

// ListByGroup retrieves one group's students ordered by surname.
func (r *StudentRepository) ListByGroup(ctx context.Context, group string) ([]*models.Student, error) {
	sort := bson.D{{Key: "apellidos", Value: 1}}
	return r.list(ctx, bson.M{"grupo": group}, sort)
}

func (r *StudentRepository) list(ctx context.Context, filter bson.M, sort bson.D) ([]*models.Student, error) {
	ctx, cancel := r.store.Context(ctx)
	defer cancel()

	findOptions := options.Find().SetSort(sort)
	cursor, err := r.store.Collection(db.StudentsCollection).Find(ctx, filter, findOptions)
	if err != nil {
		return nil, storageErr(fmt.Errorf("error listing students: %w", err))
	}
	defer cursor.Close(ctx)

	students := make([]*models.Student, 0)
	for cursor.Next(ctx) {
		var student models.Student
		if err := cursor.Decode(&student); err != nil {
			return nil, storageErr(fmt.Errorf("error decoding student: %w", err))
		}
		students = append(students, &student)
	}
	if err := cursor.Err(); err != nil {
		return nil, storageErr(fmt.Errorf("error iterating students: %w", err))
	}

	return students, nil
}

// Insert stores a new student document.
func (r *StudentRepository) Insert(ctx context.Context, student *models.Student) error {
	ctx, cancel := r.store.Context(ctx)
	defer cancel()

	if _, err := r.store.Collection(db.StudentsCollection).InsertOne(ctx, student); err != nil {
		return storageErr(fmt.Errorf("error inserting student: %w", err))
	}
	return nil
}

// UpdateIdentityAndTrimester writes the identity fields and exactly one
// trimester's five scores as a single atomic $set. Returns the number of
// modified documents.
func (r *StudentRepository) UpdateIdentityAndTrimester(
	ctx context.Context,
	id int64,
	name, lastName, group string,
	trimester models.TrimesterKey,
	grades models.TrimesterGrades,
) (int64, error) {
	ctx, cancel := r.store.Context(ctx)
	defer cancel()

	update := bson.M{
		"$set": bson.M{
			"nombre":    name,
			"apellidos": lastName,
			"grupo":     group,
			"calificaciones." + string(trimester): grades,
		},
	}

	result, err := r.store.Collection(db.StudentsCollection).
		UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return 0, storageErr(fmt.Errorf("error updating student: %w", err))
	}
	return result.ModifiedCount, nil
}

// UpdateTrimester overwrites one trimester's five scores.
func (r *StudentRepository) UpdateTrimester(
	ctx context.Context,
	id int64,
	trimester models.TrimesterKey,
	grades models.TrimesterGrades,
) (int64, error) {
	ctx, cancel := r.store.Context(ctx)
	defer cancel()

	update := bson.M{
		"$set": bson.M{
			"calificaciones." + string(trimester): grades,
		},
	}

	result, err := r.store.Collection(db.StudentsCollection).
		UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return 0, storageErr(fmt.Errorf("error updating grades: %w", err))
	}
	return result.ModifiedCount, nil
}

// Delete removes a student document permanently. Returns the deleted count.
func (r *StudentRepository) Delete(ctx context.Context, id int64) (int64, error) {
	ctx, cancel := r.store.Context(ctx)
	defer cancel()

	result, err := r.store.Collection(db.StudentsCollection).
		DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, storageErr(fmt.Errorf("error deleting student: %w", err))
	}
	return result.DeletedCount, nil
}

// CountAll counts every student record.
func (r *StudentRepository) CountAll(ctx context.Context) (int64, error) {
	ctx, cancel := r.store.Context(ctx)
	defer cancel()

	count, err := r.store.Collection(db.StudentsCollection).
		CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, storageErr(fmt.Errorf("error counting students: %w", err))
	}
	return count, nil
}

// CountByGroups counts students whose group is in the given label set.
func (r *StudentRepository) CountByGroups(ctx context.Context, groups []string) (int64, error) {
	ctx, cancel := r.store.Context(ctx)
	defer cancel()

	count, err := r.store.Collection(db.StudentsCollection).
		CountDocuments(ctx, bson.M{"grupo": bson.M{"$in": groups}})
	if err != nil {
		return 0, storageErr(fmt.Errorf("error counting students by group: %w", err))
	}
	return count, nil
}
