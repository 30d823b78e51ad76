package database

import (
	"context"
	"log"
	"time"

	"tourbook/config"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// MongoClient is the shared MongoDB client, set by InitDB.
var MongoClient *mongo.Client

// InitDB connects to MongoDB using the configured URI and verifies the
// connection with a ping. Exits the process on failure since nothing
// works without the database.
func InitDB() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(config.AppConfig.DatabaseURL))
	if err != nil {
		log.Fatalf("mongodb connect: %v", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		log.Fatalf("mongodb ping: %v", err)
	}
	MongoClient = client
	log.Println("connected to MongoDB")
}

// Collection returns a handle to a named collection in the configured
// database.
func Collection(name string) *mongo.Collection {
	return MongoClient.Database(config.AppConfig.DatabaseName).Collection(name)
}
