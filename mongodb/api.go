package mongodb

import (
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/chainflow/bridge-router/log"
)

const (
	allChainIDs  = "all"
	allAddresses = "all"
)

var maxCountOfResults = int64(1000)

// TrackSnapshotKey get track snapshot key
func TrackSnapshotKey(sourceChain, txhash string) string {
	return strings.ToLower(fmt.Sprintf("%v:%v", sourceChain, txhash))
}

// AddTrackSnapshot add or replace the snapshot of one tracked transfer
func AddTrackSnapshot(ms *MgoTrackSnapshot) error {
	ms.InitTime = time.Now().UnixMilli()
	opts := options.Replace().SetUpsert(true)
	_, err := collTrackSnapshot.ReplaceOne(clientCtx, bson.M{"_id": ms.Key}, ms, opts)
	if err == nil {
		log.Info("mongodb add track snapshot success", "chain", ms.SourceChain, "txhash", ms.TxHash, "phase", ms.Phase)
	} else {
		log.Error("mongodb add track snapshot failed", "chain", ms.SourceChain, "txhash", ms.TxHash, "err", err)
	}
	return mgoError(err)
}

// FindTrackSnapshot find snapshot of one transfer
func FindTrackSnapshot(sourceChain, txhash string) (*MgoTrackSnapshot, error) {
	key := TrackSnapshotKey(sourceChain, txhash)
	result := &MgoTrackSnapshot{}
	err := collTrackSnapshot.FindOne(clientCtx, bson.M{"_id": key}).Decode(result)
	if err != nil {
		return nil, mgoError(err)
	}
	return result, nil
}

// FindTrackSnapshots find snapshots of an address, newest first.
// A negative limit reverses to oldest first (like paging from the tail).
func FindTrackSnapshots(sourceChain, address string, offset, limit int) ([]*MgoTrackSnapshot, error) {
	queries := []bson.M{}
	if sourceChain != "" && sourceChain != allChainIDs {
		queries = append(queries, bson.M{"sourceChain": strings.ToLower(sourceChain)})
	}
	if address != "" && address != allAddresses {
		queries = append(queries, bson.M{"userAddress": strings.ToLower(address)})
	}
	var query bson.M
	switch len(queries) {
	case 0:
		query = bson.M{}
	case 1:
		query = queries[0]
	default:
		query = bson.M{"$and": queries}
	}

	sortOrder := -1
	if limit < 0 {
		sortOrder = 1
		limit = -limit
	}
	count := int64(limit)
	if count > maxCountOfResults {
		count = maxCountOfResults
	}
	skip := int64(offset)
	opts := &options.FindOptions{
		Sort:  bson.D{{Key: "timestamp", Value: sortOrder}},
		Skip:  &skip,
		Limit: &count,
	}
	cur, err := collTrackSnapshot.Find(clientCtx, query, opts)
	if err != nil {
		return nil, mgoError(err)
	}
	result := make([]*MgoTrackSnapshot, 0, 20)
	err = cur.All(clientCtx, &result)
	if err != nil {
		return nil, mgoError(err)
	}
	return result, nil
}

// AddRouteQuery add one planning query record
func AddRouteQuery(mq *MgoRouteQuery) error {
	if mq.Timestamp == 0 {
		mq.Timestamp = time.Now().Unix()
	}
	mq.Key = strings.ToLower(fmt.Sprintf("%v:%v:%v:%v", mq.SourceChain, mq.TargetChain, mq.Asset, mq.Timestamp))
	_, err := collRouteQuery.InsertOne(clientCtx, mq)
	if err != nil {
		log.Warn("mongodb add route query failed", "source", mq.SourceChain, "target", mq.TargetChain, "err", err)
	}
	return mgoError(err)
}
