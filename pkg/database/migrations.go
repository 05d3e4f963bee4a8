package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"referralbridge/pkg/logger"
)

// Collection names shared by the repositories and the index migrations.
const (
	CollectionOrders      = "orders"
	CollectionOrderNotes  = "order_notes"
	CollectionReferrals   = "referrals"
	CollectionAffiliates  = "affiliates"
	CollectionCouponMeta  = "coupon_meta"
	CollectionProductMeta = "product_meta"
	CollectionVisits      = "visits"
	CollectionSettings    = "settings"
	CollectionMigrations  = "migrations"
)

type Migration struct {
	Version     int
	Description string
	Up          func(*mongo.Database) error
	Down        func(*mongo.Database) error
}

type Migrator struct {
	db         *mongo.Database
	migrations []Migration
	logger     *logger.Logger
}

func NewMigrator(db *mongo.Database, log *logger.Logger) *Migrator {
	if log == nil {
		log = logger.NewNop()
	}
	return &Migrator{
		db:         db,
		migrations: getMigrations(),
		logger:     log.WithField("component", "migrator"),
	}
}

func (m *Migrator) Up() error {
	if err := m.createMigrationsCollection(); err != nil {
		return err
	}

	currentVersion, err := m.getCurrentVersion()
	if err != nil {
		return err
	}

	for _, migration := range m.migrations {
		if migration.Version <= currentVersion {
			continue
		}
		m.logger.Infof("Running migration %d: %s", migration.Version, migration.Description)

		if err := migration.Up(m.db); err != nil {
			return fmt.Errorf("migration %d failed: %w", migration.Version, err)
		}
		if err := m.updateVersion(migration.Version); err != nil {
			return fmt.Errorf("failed to update migration version: %w", err)
		}

		m.logger.Infof("Migration %d completed successfully", migration.Version)
	}

	return nil
}

func (m *Migrator) Down(targetVersion int) error {
	currentVersion, err := m.getCurrentVersion()
	if err != nil {
		return err
	}

	for i := len(m.migrations) - 1; i >= 0; i-- {
		migration := m.migrations[i]
		if migration.Version > currentVersion || migration.Version <= targetVersion {
			continue
		}
		m.logger.Infof("Reverting migration %d: %s", migration.Version, migration.Description)

		if err := migration.Down(m.db); err != nil {
			return fmt.Errorf("migration %d rollback failed: %w", migration.Version, err)
		}

		previousVersion := targetVersion
		if i > 0 {
			previousVersion = m.migrations[i-1].Version
		}
		if err := m.updateVersion(previousVersion); err != nil {
			return fmt.Errorf("failed to update migration version: %w", err)
		}

		m.logger.Infof("Migration %d reverted successfully", migration.Version)
	}

	return nil
}

func (m *Migrator) createMigrationsCollection() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	collections, err := m.db.ListCollectionNames(ctx, bson.D{})
	if err != nil {
		return err
	}

	for _, name := range collections {
		if name == CollectionMigrations {
			return nil
		}
	}

	return m.db.CreateCollection(ctx, CollectionMigrations)
}

func (m *Migrator) getCurrentVersion() (int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var result struct {
		Version int `bson:"version"`
	}

	err := m.db.Collection(CollectionMigrations).FindOne(ctx, bson.M{"_id": "version"}).Decode(&result)
	if err == mongo.ErrNoDocuments {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	return result.Version, nil
}

func (m *Migrator) updateVersion(version int) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := m.db.Collection(CollectionMigrations).UpdateOne(
		ctx,
		bson.M{"_id": "version"},
		bson.M{"$set": bson.M{"version": version, "updated_at": time.Now()}},
		options.Update().SetUpsert(true),
	)
	return err
}

func getMigrations() []Migration {
	return []Migration{
		{
			Version:     1,
			Description: "Create referrals indexes",
			Up:          createReferralsIndexes,
			Down: func(db *mongo.Database) error {
				return dropIndexes(db, CollectionReferrals)
			},
		},
		{
			Version:     2,
			Description: "Create affiliates indexes",
			Up:          createAffiliatesIndexes,
			Down: func(db *mongo.Database) error {
				return dropIndexes(db, CollectionAffiliates)
			},
		},
		{
			Version:     3,
			Description: "Create visits indexes",
			Up:          createVisitsIndexes,
			Down: func(db *mongo.Database) error {
				return dropIndexes(db, CollectionVisits)
			},
		},
		{
			Version:     4,
			Description: "Create order notes indexes",
			Up:          createOrderNotesIndexes,
			Down: func(db *mongo.Database) error {
				return dropIndexes(db, CollectionOrderNotes)
			},
		},
	}
}

// A referral is unique per (reference, context); a second create for the
// same order fails with a duplicate key error.
func createReferralsIndexes(db *mongo.Database) error {
	collection := db.Collection(CollectionReferrals)

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "reference", Value: 1}, {Key: "context", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("reference_context_unique"),
		},
		{
			Keys: bson.D{{Key: "affiliate_id", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "status", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "created_at", Value: -1}},
		},
	}

	return createIndexes(collection, indexes)
}

func createAffiliatesIndexes(db *mongo.Database) error {
	collection := db.Collection(CollectionAffiliates)

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}},
			Options: options.Index().SetUnique(true).SetSparse(true),
		},
		{
			Keys: bson.D{{Key: "user_login", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "email", Value: 1}},
		},
	}

	return createIndexes(collection, indexes)
}

func createVisitsIndexes(db *mongo.Database) error {
	collection := db.Collection(CollectionVisits)

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "token", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "affiliate_id", Value: 1}},
		},
	}

	return createIndexes(collection, indexes)
}

func createOrderNotesIndexes(db *mongo.Database) error {
	collection := db.Collection(CollectionOrderNotes)

	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "order_id", Value: 1}, {Key: "created_at", Value: 1}},
		},
	}

	return createIndexes(collection, indexes)
}

func createIndexes(collection *mongo.Collection, indexes []mongo.IndexModel) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}

func dropIndexes(db *mongo.Database, name string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	_, err := db.Collection(name).Indexes().DropAll(ctx)
	return err
}
