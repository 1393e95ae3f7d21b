package graph

import (
	"context"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"

	apperrors "memviz/pkg/errors"
	"memviz/pkg/logger"
)

// tripleQuery visits every node once and follows each outgoing relationship.
// Nodes without relationships still produce a record, with null relation and
// target columns.
const tripleQuery = `
	MATCH (n)
	OPTIONAL MATCH (n)-[r]->(m)
	RETURN n.name AS source_name, type(r) AS relationship_type, m.name AS target_name
`

// Store handles all Neo4j database operations for the viewer
type Store struct {
	driver neo4j.DriverWithContext
	logger *zap.Logger
}

// NewStore creates a new graph store
func NewStore(driver neo4j.DriverWithContext) *Store {
	return &Store{
		driver: driver,
		logger: logger.Get(),
	}
}

// Connect opens a driver against the given endpoint and verifies
// connectivity before returning a store over it.
func Connect(ctx context.Context, uri, user, password string) (*Store, error) {
	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(user, password, ""))
	if err != nil {
		return nil, apperrors.NewGraphConnectionFailed(uri, err)
	}
	if err := driver.VerifyConnectivity(ctx); err != nil {
		_ = driver.Close(ctx)
		return nil, apperrors.NewGraphConnectionFailed(uri, err)
	}
	return NewStore(driver), nil
}

// Close closes the Neo4j driver connection
func (s *Store) Close(ctx context.Context) error {
	return s.driver.Close(ctx)
}

// FetchTriples runs the traversal in a single read session and drains every
// record before returning. Absent name or type columns come back with the
// presence flag cleared rather than as errors.
func (s *Store) FetchTriples(ctx context.Context) ([]Triple, error) {
	session := s.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	result, err := session.Run(ctx, tripleQuery, nil)
	if err != nil {
		return nil, apperrors.NewGraphQueryFailed(tripleQuery, err)
	}

	var triples []Triple
	for result.Next(ctx) {
		record := result.Record()
		t := Triple{}
		t.Source, t.HasSource = stringField(record, "source_name")
		t.RelType, t.HasRelType = stringField(record, "relationship_type")
		t.Target, t.HasTarget = stringField(record, "target_name")
		triples = append(triples, t)
	}
	if err := result.Err(); err != nil {
		return nil, apperrors.NewGraphQueryFailed(tripleQuery, err)
	}

	s.logger.Info("Fetched graph triples",
		zap.Int("count", len(triples)),
	)
	return triples, nil
}

// Helper functions

// stringField extracts a non-empty string column. Null columns, missing
// columns, and empty names all count as absent.
func stringField(record *neo4j.Record, key string) (string, bool) {
	val, ok := record.Get(key)
	if !ok || val == nil {
		return "", false
	}
	str, ok := val.(string)
	if !ok || str == "" {
		return "", false
	}
	return str, true
}
