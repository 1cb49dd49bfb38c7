package book

import (
	"go.mongodb.org/mongo-driver/v2/bson"
)

type explainReply struct {
	QueryPlanner struct {
		WinningPlan planStage `bson:"winningPlan"`
	} `bson:"queryPlanner"`
	ExecutionStats struct {
		NReturned           int64 `bson:"nReturned"`
		ExecutionTimeMillis int64 `bson:"executionTimeMillis"`
		TotalKeysExamined   int64 `bson:"totalKeysExamined"`
		TotalDocsExamined   int64 `bson:"totalDocsExamined"`
	} `bson:"executionStats"`
}

// planStage covers the classic layout, the SBE one, where the tree sits
// under winningPlan.queryPlan, and the mongos one, where each shard reports
// its own winningPlan under winningPlan.shards.
type planStage struct {
	Stage       string      `bson:"stage"`
	IndexName   string      `bson:"indexName"`
	InputStage  *planStage  `bson:"inputStage"`
	InputStages []planStage `bson:"inputStages"`
	QueryPlan   *planStage  `bson:"queryPlan"`
	Shards      []shardPlan `bson:"shards"`
}

type shardPlan struct {
	ShardName   string    `bson:"shardName"`
	WinningPlan planStage `bson:"winningPlan"`
}

// root returns the stage that actually ran. On a sharded cluster that is the
// first shard's plan.
func (p *planStage) root() *planStage {
	if p.QueryPlan != nil {
		return p.QueryPlan.root()
	}
	if len(p.Shards) > 0 {
		return p.Shards[0].WinningPlan.root()
	}
	return p
}

func (p *planStage) indexName() string {
	if p == nil {
		return ""
	}
	if p.IndexName != "" {
		return p.IndexName
	}
	if name := p.QueryPlan.indexName(); name != "" {
		return name
	}
	for i := range p.Shards {
		if name := p.Shards[i].WinningPlan.indexName(); name != "" {
			return name
		}
	}
	if name := p.InputStage.indexName(); name != "" {
		return name
	}
	for i := range p.InputStages {
		if name := p.InputStages[i].indexName(); name != "" {
			return name
		}
	}
	return ""
}

func decodeExplain(raw bson.Raw) (ExplainStats, error) {
	var reply explainReply
	if err := bson.Unmarshal(raw, &reply); err != nil {
		return ExplainStats{}, err
	}
	winning := &reply.QueryPlanner.WinningPlan
	plan := winning.root()
	return ExplainStats{
		ExecutionTimeMillis: reply.ExecutionStats.ExecutionTimeMillis,
		TotalDocsExamined:   reply.ExecutionStats.TotalDocsExamined,
		TotalKeysExamined:   reply.ExecutionStats.TotalKeysExamined,
		NReturned:           reply.ExecutionStats.NReturned,
		Stage:               plan.Stage,
		IndexName:           winning.indexName(),
	}, nil
}
