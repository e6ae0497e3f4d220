package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"interviewlens/internal/models"
	"interviewlens/internal/repositories"
)

// Repo stores interview records in one MongoDB collection, keyed by the
// interview id. All writes are single-document upserts or $set updates.
type Repo struct{ col *mongo.Collection }

var _ repositories.InterviewRepository = (*Repo)(nil)

// NewInterviewRepo ensures the listing index (pinned desc, created_at desc).
func NewInterviewRepo(c *Client, dbName, colName string) (*Repo, error) {
	db, err := c.DB(dbName)
	if err != nil {
		return nil, err
	}
	if colName == "" {
		colName = "interviews"
	}
	col := db.Collection(colName)

	_, _ = col.Indexes().CreateOne(context.Background(), mongo.IndexModel{
		Keys: bson.D{{Key: "pinned", Value: -1}, {Key: "created_at", Value: -1}},
	})

	return &Repo{col: col}, nil
}

// Create upserts the full record under its id, so retrying an upload accept
// never duplicates a document.
func (r *Repo) Create(ctx context.Context, interview *models.Interview) error {
	if interview.ID == "" {
		return errors.New("interview id required")
	}
	if interview.CreatedAt.IsZero() {
		interview.CreatedAt = time.Now().UTC()
	}
	_, err := r.col.ReplaceOne(ctx,
		bson.M{"_id": interview.ID},
		interview,
		options.Replace().SetUpsert(true),
	)
	return err
}

func (r *Repo) GetByID(ctx context.Context, id string) (*models.Interview, error) {
	var out models.Interview
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, repositories.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *Repo) UpdateFields(ctx context.Context, id string, fields map[string]any) error {
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

func (r *Repo) Delete(ctx context.Context, id string) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

func (r *Repo) List(ctx context.Context) ([]models.Interview, error) {
	opts := options.Find().SetSort(bson.D{{Key: "pinned", Value: -1}, {Key: "created_at", Value: -1}})
	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Interview{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
