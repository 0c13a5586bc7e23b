package dao

import (
	"context"
	"fmt"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"

	ow_errors "github.com/dev-mohitbeniwal/offerwall/errors"
	logger "github.com/dev-mohitbeniwal/offerwall/logging"
	"github.com/dev-mohitbeniwal/offerwall/model"
	ow_neo4j "github.com/dev-mohitbeniwal/offerwall/model/neo4j"
	helper_util "github.com/dev-mohitbeniwal/offerwall/util/helper"
)

// PlacementRetrievalDAO reads an actor's placements straight from the graph
// store, for gateways deployed next to the backend database.
type PlacementRetrievalDAO struct {
	Driver neo4j.Driver
}

func NewPlacementRetrievalDAO(driver neo4j.Driver) *PlacementRetrievalDAO {
	return &PlacementRetrievalDAO{Driver: driver}
}

type placementRows struct {
	role       string
	placements []model.PlacementRecord
}

// RetrievePlacements returns the user's role and placements in creation order.
// A user node that does not exist yields ErrAuthorizationFailure.
func (dao *PlacementRetrievalDAO) RetrievePlacements(ctx context.Context, userID string) (model.Role, []model.PlacementRecord, error) {
	start := time.Now()
	logger.Info("Retrieving placements", zap.String("userID", userID))

	session := dao.Driver.NewSession(neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close()

	result, err := session.ReadTransaction(func(tx neo4j.Transaction) (interface{}, error) {
		query := `
        MATCH (u:` + ow_neo4j.LabelUser + ` {id: $userID})
        OPTIONAL MATCH (u)-[:` + ow_neo4j.RelOwnsPlacement + `]->(p:` + ow_neo4j.LabelPlacement + `)
        WITH u, p
        ORDER BY p.createdAt ASC, p.id ASC
        RETURN u.role AS role, collect(p) AS placements
        `
		records, err := tx.Run(query, map[string]interface{}{"userID": userID})
		if err != nil {
			return nil, err
		}
		return collectPlacementRows(records)
	})
	if err != nil {
		logger.Error("Failed to retrieve placements", zap.Error(err), zap.String("userID", userID))
		return "", nil, fmt.Errorf("%w: %v", ow_errors.ErrNetworkFailure, err)
	}

	rows, ok := result.(*placementRows)
	if !ok || rows == nil {
		return "", nil, fmt.Errorf("%w: user %s not found", ow_errors.ErrAuthorizationFailure, userID)
	}

	logger.Info("Placements retrieved",
		zap.String("userID", userID),
		zap.Int("count", len(rows.placements)),
		zap.Duration("duration", time.Since(start)))
	return model.ParseRole(rows.role), rows.placements, nil
}

// recordCursor is the part of neo4j.Result the row collection needs.
type recordCursor interface {
	Next() bool
	Record() *neo4j.Record
	Err() error
}

// collectPlacementRows reads the single aggregated row. No row means the user
// node is missing.
func collectPlacementRows(records recordCursor) (*placementRows, error) {
	if !records.Next() {
		return nil, records.Err()
	}
	record := records.Record()

	rows := &placementRows{}
	if role, ok := record.Get("role"); ok && role != nil {
		rows.role, _ = role.(string)
	}
	raw, _ := record.Get("placements")
	nodes, _ := raw.([]interface{})
	for _, n := range nodes {
		node, ok := n.(neo4j.Node)
		if !ok {
			continue
		}
		rows.placements = append(rows.placements, mapNodeToPlacement(node))
	}
	return rows, nil
}

func mapNodeToPlacement(node neo4j.Node) model.PlacementRecord {
	props := node.Props
	record := model.PlacementRecord{
		ID:            stringProp(props, "id"),
		ApprovalState: model.ApprovalState(stringProp(props, "approvalState")).Normalize(),
	}
	if record.ApprovalState == model.ApprovalStateRejected {
		record.RejectionReason = stringProp(props, "rejectionReason")
		record.ReviewMessage = stringProp(props, "reviewMessage")
	}
	createdAt, err := helper_util.ParseNullableTime(props["createdAt"])
	if err != nil {
		logger.Warn("Ignoring placement createdAt", zap.String("placementID", record.ID), zap.Error(err))
	}
	record.CreatedAt = createdAt
	return record
}

func stringProp(props map[string]interface{}, key string) string {
	if v, ok := props[key].(string); ok {
		return v
	}
	return ""
}

// FetchPlacements lets the DAO stand in for the HTTP source. The token is not
// needed: the graph is queried with the gateway's own credentials.
func (dao *PlacementRetrievalDAO) FetchPlacements(ctx context.Context, actor model.ActorContext, _ string) (model.ActorContext, []model.PlacementRecord, error) {
	role, placements, err := dao.RetrievePlacements(ctx, actor.UserID)
	if err != nil {
		return actor, nil, err
	}
	actor.Role = role
	return actor, placements, nil
}
