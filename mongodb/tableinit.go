package mongodb

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	collTrackSnapshot *mongo.Collection
	collRouteQuery    *mongo.Collection
)

func initCollections() {
	collTrackSnapshot = database.Collection(tbTrackSnapshots)
	collRouteQuery = database.Collection(tbRouteQueries)

	ensureIndex(collTrackSnapshot, "userAddress", "sourceChain") // speed find history
	ensureIndex(collTrackSnapshot, "timestamp")
	ensureIndex(collRouteQuery, "timestamp")
}

func ensureIndex(collection *mongo.Collection, keys ...string) {
	doc := bson.D{}
	for _, key := range keys {
		doc = append(doc, bson.E{Key: key, Value: 1})
	}
	_, _ = collection.Indexes().CreateOne(clientCtx, mongo.IndexModel{Keys: doc})
}
