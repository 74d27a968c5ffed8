// Package mongodb is the optional history archive. When no database is
// configured the rest of the system runs unchanged, the archive is a
// write-behind convenience and never an authority.
package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/chainflow/bridge-router/log"
)

var (
	client   *mongo.Client
	database *mongo.Database

	clientCtx = context.Background()

	hasClient bool
)

// HasClient is the archive connected and usable
func HasClient() bool {
	return hasClient
}

// MongoServerInit connect to mongodb and init the collections.
// Exits the process on failure, a configured archive that cannot come up
// is a deployment error, not a runtime condition.
func MongoServerInit(appName, dbURL, dbName, user, pass string) {
	uri := "mongodb://" + dbURL
	if user != "" {
		uri = fmt.Sprintf("mongodb://%v:%v@%v", user, pass, dbURL)
	}
	opts := options.Client().ApplyURI(uri).SetAppName(appName)

	ctx, cancel := context.WithTimeout(clientCtx, 10*time.Second)
	defer cancel()

	var err error
	client, err = mongo.Connect(ctx, opts)
	if err != nil {
		log.Fatal("mongodb connect failed", "dburl", dbURL, "dbname", dbName, "err", err)
	}
	if err = client.Ping(ctx, readpref.Primary()); err != nil {
		log.Fatal("mongodb ping failed", "dburl", dbURL, "dbname", dbName, "err", err)
	}

	database = client.Database(dbName)
	initCollections()
	hasClient = true
	log.Info("mongodb init success", "dbname", dbName)
}
