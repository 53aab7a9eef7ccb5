package plan

import (
	"context"
	"errors"
	"time"

	"github.com/rutalab/core/internal/models"
	pkgmongo "github.com/rutalab/core/internal/pkg/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	plansCollection = "plans"
	maxListedPlans  = 50
)

// ErrRecordNotFound is returned when a plan record does not exist or is not
// owned by the requesting principal.
var ErrRecordNotFound = errors.New("plan record not found")

// PlanStore persists generated plans under their owning principal. Every
// query is scoped by uid; no cross-principal reads or writes are possible
// through this adapter. Writes are append-only.
type PlanStore struct {
	coll *mongo.Collection
}

// NewPlanStore wraps the plans collection. A nil client yields a nil store,
// which the orchestrator treats as "persistence unreachable".
func NewPlanStore(client *pkgmongo.Client) *PlanStore {
	if client == nil {
		return nil
	}
	return &PlanStore{coll: client.Collection(plansCollection)}
}

// Save inserts a new record for uid and returns its generated id.
func (s *PlanStore) Save(ctx context.Context, uid string, req PlanRequest, p RawPlan) (string, error) {
	record := models.PlanRecord{
		UID:          uid,
		Plan:         p,
		Objective:    req.Objective,
		Level:        req.Level,
		HoursPerWeek: req.HoursPerWeek,
		Weeks:        req.Weeks,
		CreatedAt:    time.Now(),
	}

	result, err := s.coll.InsertOne(ctx, record)
	if err != nil {
		return "", err
	}
	oid, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", errors.New("unexpected inserted id type")
	}
	return oid.Hex(), nil
}

// ListByUID returns the principal's stored plans, newest first.
func (s *PlanStore) ListByUID(ctx context.Context, uid string) ([]models.PlanRecord, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(maxListedPlans)

	cursor, err := s.coll.Find(ctx, bson.M{"uid": uid}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	records := make([]models.PlanRecord, 0)
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// GetByID returns one stored plan, only when owned by uid.
func (s *PlanStore) GetByID(ctx context.Context, uid, id string) (*models.PlanRecord, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrRecordNotFound
	}

	var record models.PlanRecord
	err = s.coll.FindOne(ctx, bson.M{"_id": oid, "uid": uid}).Decode(&record)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrRecordNotFound
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}
