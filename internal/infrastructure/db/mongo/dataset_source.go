package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/workboard/taskboard/internal/core/domain"
)

const (
	collectionEmployees = "employees"
	collectionProjects  = "projects"
	collectionTasks     = "tasks"
)

// DatasetSource reads the initial collections. Documents use the bson tags of
// the domain types.
type DatasetSource struct {
	db *mongo.Database
}

func NewDatasetSource(db *mongo.Database) *DatasetSource {
	return &DatasetSource{db: db}
}

func (s *DatasetSource) Load(ctx context.Context) (*domain.Dataset, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var ds domain.Dataset
	if err := readAll(ctx, s.db.Collection(collectionEmployees), &ds.Employees); err != nil {
		return nil, err
	}
	if err := readAll(ctx, s.db.Collection(collectionProjects), &ds.Projects); err != nil {
		return nil, err
	}
	if err := readAll(ctx, s.db.Collection(collectionTasks), &ds.Tasks); err != nil {
		return nil, err
	}
	return &ds, nil
}

// Import inserts ds into empty collections. Collections that already hold
// documents are left alone.
func (s *DatasetSource) Import(ctx context.Context, ds *domain.Dataset) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if err := importInto(ctx, s.db.Collection(collectionEmployees), toDocs(ds.Employees)); err != nil {
		return err
	}
	if err := importInto(ctx, s.db.Collection(collectionProjects), toDocs(ds.Projects)); err != nil {
		return err
	}
	return importInto(ctx, s.db.Collection(collectionTasks), toDocs(ds.Tasks))
}

func readAll[T any](ctx context.Context, col *mongo.Collection, out *[]T) error {
	cur, err := col.Find(ctx, bson.M{})
	if err != nil {
		return fmt.Errorf("find %s: %w", col.Name(), err)
	}
	items := []T{}
	if err := cur.All(ctx, &items); err != nil {
		return fmt.Errorf("decode %s: %w", col.Name(), err)
	}
	*out = items
	return nil
}

func importInto(ctx context.Context, col *mongo.Collection, docs []any) error {
	if len(docs) == 0 {
		return nil
	}
	n, err := col.EstimatedDocumentCount(ctx)
	if err != nil {
		return fmt.Errorf("count %s: %w", col.Name(), err)
	}
	if n > 0 {
		return nil
	}
	if _, err := col.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("insert %s: %w", col.Name(), err)
	}
	return nil
}

func toDocs[T any](items []T) []any {
	docs := make([]any, len(items))
	for i, it := range items {
		docs[i] = it
	}
	return docs
}
