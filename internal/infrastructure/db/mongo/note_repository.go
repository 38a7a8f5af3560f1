package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/notes-studio/notes-api/internal/core/domain"
)

// NoteRepository stores notes in the "notes" collection with integer _id values
// drawn from the counters collection.
type NoteRepository struct {
	db   *mongo.Database
	coll *mongo.Collection
}

// NewNoteRepository expects EnsureIndexes to have run on db.
func NewNoteRepository(db *mongo.Database) *NoteRepository {
	return &NoteRepository{db: db, coll: db.Collection(notesCollection)}
}

type mongoNote struct {
	ID        int64  `bson:"_id"`
	OwnerID   int64  `bson:"owner_id"`
	Title     string `bson:"title"`
	Content   string `bson:"content"`
	CreatedAt int64  `bson:"created_at"`
	UpdatedAt int64  `bson:"updated_at"`
}

func (r *NoteRepository) ListByOwner(ctx context.Context, ownerID int64) ([]*domain.Note, error) {
	opts := options.Find().SetSort(bson.D{{Key: "updated_at", Value: -1}, {Key: "_id", Value: -1}})

	cursor, err := r.coll.Find(ctx, bson.M{"owner_id": ownerID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []mongoNote
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode notes: %w", err)
	}

	notes := make([]*domain.Note, 0, len(docs))
	for _, d := range docs {
		notes = append(notes, d.toDomain())
	}
	return notes, nil
}

func (r *NoteRepository) Create(ctx context.Context, note *domain.Note) (*domain.Note, error) {
	id, err := nextID(ctx, r.db, notesCollection)
	if err != nil {
		return nil, err
	}

	doc := mongoNote{
		ID:        id,
		OwnerID:   note.OwnerID,
		Title:     note.Title,
		Content:   note.Content,
		CreatedAt: toMillis(note.CreatedAt),
		UpdatedAt: toMillis(note.UpdatedAt),
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert note: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *NoteRepository) FindByID(ctx context.Context, ownerID, id int64) (*domain.Note, error) {
	var doc mongoNote
	if err := r.coll.FindOne(ctx, bson.M{"_id": id, "owner_id": ownerID}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNoteNotFound
		}
		return nil, fmt.Errorf("find note: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *NoteRepository) Update(ctx context.Context, note *domain.Note) (*domain.Note, error) {
	update := bson.M{"$set": bson.M{
		"title":      note.Title,
		"content":    note.Content,
		"updated_at": toMillis(note.UpdatedAt),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc mongoNote
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": note.ID, "owner_id": note.OwnerID}, update, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNoteNotFound
		}
		return nil, fmt.Errorf("update note: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *NoteRepository) Delete(ctx context.Context, ownerID, id int64) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id, "owner_id": ownerID})
	if err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNoteNotFound
	}
	return nil
}

func (d mongoNote) toDomain() *domain.Note {
	return &domain.Note{
		ID:        d.ID,
		OwnerID:   d.OwnerID,
		Title:     d.Title,
		Content:   d.Content,
		CreatedAt: fromMillis(d.CreatedAt),
		UpdatedAt: fromMillis(d.UpdatedAt),
	}
}
