package mongodb

const (
	tbTrackSnapshots string = "TrackSnapshots"
	tbRouteQueries   string = "RouteQueries"
)

// MgoTrackSnapshot latest archived view of one tracked transfer.
// The key is sourceChain + txhash, repeated tracking calls replace the
// snapshot as the transfer advances through its phases.
type MgoTrackSnapshot struct {
	Key                 string `bson:"_id" json:"-"`
	TxHash              string `bson:"txhash" json:"txHash"`
	SourceChain         string `bson:"sourceChain" json:"sourceChain"`
	TargetChain         string `bson:"targetChain" json:"targetChain"`
	UserAddress         string `bson:"userAddress,omitempty" json:"userAddress,omitempty"`
	Protocol            string `bson:"protocol,omitempty" json:"protocol,omitempty"`
	Phase               string `bson:"phase" json:"phase"`
	Confirmations       uint64 `bson:"confirmations" json:"confirmations"`
	EstimatedCompletion uint64 `bson:"estimatedCompletion,omitempty" json:"estimatedCompletion,omitempty"`
	Timestamp           int64  `bson:"timestamp" json:"timestamp"`
	InitTime            int64  `bson:"inittime" json:"-"`
}

// MgoRouteQuery one archived planning query, kept for usage statistics.
type MgoRouteQuery struct {
	Key         string `bson:"_id" json:"-"`
	SourceChain string `bson:"sourceChain" json:"sourceChain"`
	TargetChain string `bson:"targetChain" json:"targetChain"`
	Asset       string `bson:"asset" json:"asset"`
	RouteCount  int    `bson:"routeCount" json:"routeCount"`
	Timestamp   int64  `bson:"timestamp" json:"timestamp"`
}
