package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/bilemo/bilemo-api/internal/core/domain"
)

const auditCollection = "audit_log"

type auditDoc struct {
	ActorID  uint      `bson:"actor_id"`
	Actor    string    `bson:"actor"`
	Action   string    `bson:"action"`
	Entity   string    `bson:"entity"`
	EntityID uint      `bson:"entity_id"`
	At       time.Time `bson:"at"`
}

// AuditRepository appends audit entries to the audit_log collection.
type AuditRepository struct {
	db *mongo.Database
}

// NewAuditRepository creates a new AuditRepository.
func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{db: db}
}

// EnsureIndexes creates the indexes used to browse the trail by entity and by time.
func (r *AuditRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.db.Collection(auditCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "entity", Value: 1}, {Key: "entity_id", Value: 1}}},
		{Keys: bson.D{{Key: "at", Value: -1}}},
	})
	if err != nil {
		return fmt.Errorf("audit indexes: %w", err)
	}
	return nil
}

// Record persists one audit entry.
func (r *AuditRepository) Record(ctx context.Context, entry domain.AuditEntry) error {
	doc := auditDoc{
		ActorID:  entry.ActorID,
		Actor:    entry.Actor,
		Action:   entry.Action,
		Entity:   entry.Entity,
		EntityID: entry.EntityID,
		At:       entry.At.UTC(),
	}
	if _, err := r.db.Collection(auditCollection).InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}
	return nil
}

// Ping checks that the database answers.
func (r *AuditRepository) Ping(ctx context.Context) error {
	return r.db.Client().Ping(ctx, nil)
}

// Close disconnects the underlying client.
func (r *AuditRepository) Close(ctx context.Context) error {
	return r.db.Client().Disconnect(ctx)
}
