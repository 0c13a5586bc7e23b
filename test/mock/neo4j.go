// test/mock/neo4j.go
package mock

import (
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/stretchr/testify/mock"
)

// MockRecordCursor is a mock of the row iteration part of neo4j.Result
type MockRecordCursor struct {
	mock.Mock
}

func (m *MockRecordCursor) Next() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *MockRecordCursor) Record() *neo4j.Record {
	args := m.Called()
	record, _ := args.Get(0).(*neo4j.Record)
	return record
}

func (m *MockRecordCursor) Err() error {
	args := m.Called()
	return args.Error(0)
}
