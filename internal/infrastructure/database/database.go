package database

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"komari/pkg/logger"
)

const WallpaperCollection = "curated_wallpapers"

type Database struct {
	DBName       string
	Collection   string
	QueryTimeout time.Duration
	Client       *mongo.Client
}

func Connect(cfg Config) (*Database, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.ConnectionTimeout)*time.Millisecond)
	defer cancel()

	serverAPI := options.ServerAPI(options.ServerAPIVersion1)
	opts := options.Client().ApplyURI(cfg.URI).
		SetServerAPIOptions(serverAPI).
		SetConnectTimeout(time.Duration(cfg.ConnectionTimeout) * time.Millisecond)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, err
	}

	qCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.QueryTimeout)*time.Millisecond)
	defer cancel()

	if err := client.Ping(qCtx, nil); err != nil {
		return nil, err
	}

	collection := cfg.Collection
	if collection == "" {
		collection = WallpaperCollection
	}

	db := &Database{
		Client:       client,
		DBName:       cfg.DBName,
		Collection:   collection,
		QueryTimeout: time.Duration(cfg.QueryTimeout) * time.Millisecond,
	}

	if err := initWallpaperCollection(db); err != nil {
		return nil, err
	}

	logger.Info("connected to wallpaper store", "db", db.DBName, "collection", db.Collection)

	return db, nil
}

func (db *Database) coll() *mongo.Collection {
	return db.Client.Database(db.DBName).Collection(db.Collection)
}

// initWallpaperCollection creates the collection and the indexes backing the
// catalog queries. Documents are not validated here: malformed documents are
// tolerated and skipped at read time.
func initWallpaperCollection(db *Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), db.QueryTimeout)
	defer cancel()

	collections, err := db.Client.Database(db.DBName).ListCollectionNames(ctx, bson.M{"name": db.Collection})
	if err != nil {
		return err
	}

	if len(collections) == 0 {
		if err := db.Client.Database(db.DBName).CreateCollection(ctx, db.Collection); err != nil {
			return err
		}
	}

	_, err = db.coll().Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "is_featured", Value: 1}, {Key: "date_added", Value: -1}}},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "date_added", Value: -1}}},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "post_id", Value: 1}}},
		{Keys: bson.D{{Key: "rating", Value: 1}, {Key: "status", Value: 1}, {Key: "date_added", Value: -1}}},
	})

	return err
}

func (db *Database) Stop() error {
	if err := db.Client.Disconnect(context.Background()); err != nil {
		return err
	}

	return nil
}
