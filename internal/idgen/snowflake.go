// Package idgen issues time-ordered record IDs.
package idgen

import (
	"fmt"

	"github.com/bwmarrin/snowflake"
)

// Generator wraps a snowflake node. IDs embed the millisecond timestamp and
// increase strictly within one node.
type Generator struct {
	node *snowflake.Node
}

// New creates a generator for the given node number (0-1023).
func New(nodeID int64) (*Generator, error) {
	node, err := snowflake.NewNode(nodeID)
	if err != nil {
		return nil, fmt.Errorf("init snowflake node: %w", err)
	}
	return &Generator{node: node}, nil
}

// NextID returns a new unique ID.
func (g *Generator) NextID() int64 {
	return g.node.Generate().Int64()
}
