package mongo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/trendwyse/dashboard/internal/core/domain"
)

const collectionAnalyses = "analyses"

type AnalysisRepository struct {
	col *mongo.Collection
}

func NewAnalysisRepository(db *mongo.Database) *AnalysisRepository {
	return &AnalysisRepository{col: db.Collection(collectionAnalyses)}
}

// analysisDocument keeps the provider payload as the reply text received, so
// keys with a leading '$' survive untouched.
type analysisDocument struct {
	ID          string     `bson:"_id"`
	UserID      string     `bson:"user_id"`
	ProductName string     `bson:"product_name"`
	Category    string     `bson:"category,omitempty"`
	ModuleCode  string     `bson:"module_code"`
	Status      string     `bson:"status"`
	Score       *int       `bson:"score,omitempty"`
	Analysis    string     `bson:"analysis,omitempty"`
	CreatedAt   time.Time  `bson:"created_at"`
	StartedAt   *time.Time `bson:"started_at,omitempty"`
	CompletedAt *time.Time `bson:"completed_at,omitempty"`
}

func (d analysisDocument) toDomain() *domain.Analysis {
	a := &domain.Analysis{
		ID:          d.ID,
		UserID:      d.UserID,
		ProductName: d.ProductName,
		Category:    d.Category,
		ModuleCode:  d.ModuleCode,
		Status:      domain.AnalysisStatus(d.Status),
		Score:       d.Score,
		CreatedAt:   d.CreatedAt.UTC(),
		StartedAt:   utcPtr(d.StartedAt),
		CompletedAt: utcPtr(d.CompletedAt),
	}
	if d.Analysis != "" {
		a.Result = json.RawMessage(d.Analysis)
	}
	return a
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}

func (r *AnalysisRepository) Create(ctx context.Context, a *domain.Analysis) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := analysisDocument{
		ID:          a.ID,
		UserID:      a.UserID,
		ProductName: a.ProductName,
		Category:    a.Category,
		ModuleCode:  a.ModuleCode,
		Status:      string(a.Status),
		Score:       a.Score,
		Analysis:    string(a.Result),
		CreatedAt:   a.CreatedAt,
		StartedAt:   a.StartedAt,
		CompletedAt: a.CompletedAt,
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert analysis: %w", err)
	}
	return nil
}

func (r *AnalysisRepository) FindByID(ctx context.Context, id string) (*domain.Analysis, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc analysisDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAnalysisNotFound
		}
		return nil, fmt.Errorf("find analysis: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *AnalysisRepository) ListByOwner(ctx context.Context, userID string) ([]*domain.Analysis, error) {
	return r.find(ctx, bson.M{"user_id": userID}, newestCreated())
}

func (r *AnalysisRepository) ListPendingByOwner(ctx context.Context, userID string) ([]*domain.Analysis, error) {
	filter := bson.M{
		"user_id": userID,
		"status":  bson.M{"$in": bson.A{string(domain.StatusPending), string(domain.StatusProcessing)}},
	}
	return r.find(ctx, filter, newestCreated())
}

func (r *AnalysisRepository) ListCompletedByOwner(ctx context.Context, userID string, limit int) ([]*domain.Analysis, error) {
	filter := bson.M{"user_id": userID, "status": string(domain.StatusCompleted)}
	opts := options.Find().
		SetSort(bson.D{{Key: "completed_at", Value: -1}, {Key: "_id", Value: -1}}).
		SetLimit(int64(limit))
	return r.find(ctx, filter, opts)
}

func newestCreated() *options.FindOptions {
	return options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})
}

func (r *AnalysisRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*domain.Analysis, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find analyses: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []analysisDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode analyses: %w", err)
	}

	out := make([]*domain.Analysis, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

// CountByOwner groups the caller's analyses by status in a single round trip.
func (r *AnalysisRepository) CountByOwner(ctx context.Context, userID string) (domain.AnalysisCounts, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"user_id": userID}}},
		{{Key: "$group", Value: bson.M{"_id": "$status", "n": bson.M{"$sum": 1}}}},
	}
	cursor, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return domain.AnalysisCounts{}, fmt.Errorf("count analyses: %w", err)
	}
	defer cursor.Close(ctx)

	var groups []struct {
		Status string `bson:"_id"`
		N      int64  `bson:"n"`
	}
	if err := cursor.All(ctx, &groups); err != nil {
		return domain.AnalysisCounts{}, fmt.Errorf("decode counts: %w", err)
	}

	var counts domain.AnalysisCounts
	for _, g := range groups {
		counts.Total += g.N
		switch domain.AnalysisStatus(g.Status) {
		case domain.StatusPending, domain.StatusProcessing:
			counts.Pending += g.N
		case domain.StatusCompleted:
			counts.Completed += g.N
		}
	}
	return counts, nil
}

// Claim moves a pending (or stale processing) analysis to processing with a
// single conditional update.
func (r *AnalysisRepository) Claim(ctx context.Context, id, userID string, startedAt, staleBefore time.Time) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{
		"_id":     id,
		"user_id": userID,
		"$or": bson.A{
			bson.M{"status": string(domain.StatusPending)},
			bson.M{"status": string(domain.StatusProcessing), "started_at": bson.M{"$lt": staleBefore}},
		},
	}
	update := bson.M{"$set": bson.M{"status": string(domain.StatusProcessing), "started_at": startedAt}}

	res, err := r.col.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("claim analysis: %w", err)
	}
	return res.MatchedCount == 1, nil
}

func (r *AnalysisRepository) Release(ctx context.Context, id string, startedAt time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{
		"$set":   bson.M{"status": string(domain.StatusPending)},
		"$unset": bson.M{"started_at": ""},
	}
	if _, err := r.col.UpdateOne(ctx, claimFilter(id, startedAt), update); err != nil {
		return fmt.Errorf("release analysis: %w", err)
	}
	return nil
}

func (r *AnalysisRepository) UpdateScore(ctx context.Context, id string, startedAt time.Time, score int, result json.RawMessage, completedAt time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{
		"$set": bson.M{
			"status":       string(domain.StatusCompleted),
			"score":        score,
			"analysis":     string(result),
			"completed_at": completedAt,
		},
		"$unset": bson.M{"started_at": ""},
	}
	res, err := r.col.UpdateOne(ctx, claimFilter(id, startedAt), update)
	if err != nil {
		return fmt.Errorf("update analysis score: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrInvalidState
	}
	return nil
}

// claimFilter matches the analysis only while it holds the claim made at startedAt.
func claimFilter(id string, startedAt time.Time) bson.M {
	return bson.M{"_id": id, "status": string(domain.StatusProcessing), "started_at": startedAt}
}

// EnsureIndexes creates the indexes behind the per-owner listings.
func (r *AnalysisRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "status", Value: 1}, {Key: "completed_at", Value: -1}}},
	}
	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
