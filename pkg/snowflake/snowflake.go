package snowflake

import (
	"fmt"
	"strconv"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
)

// Module expects a NodeID in the graph.
var Module = fx.Module("snowflake",
	fx.Provide(NewNode),
)

// NodeID identifies this process among console replicas (0..1023).
type NodeID int64

// Node wraps snowflake.Node to abstract dependency
type Node struct {
	*snowflake.Node
}

func NewNode(id NodeID) (*Node, error) {
	node, err := snowflake.NewNode(int64(id))
	if err != nil {
		return nil, fmt.Errorf("snowflake node %d: %w", id, err)
	}
	return &Node{node}, nil
}

// GenerateID returns a new snowflake ID as int64
func (n *Node) GenerateID() int64 {
	return n.Generate().Int64()
}

// GenerateReference returns a new ID in its base58 form, used as a
// human-friendly reference in confirmations.
func (n *Node) GenerateReference() string {
	return n.Generate().Base58()
}

// ParseID parses a string ID into an int64
func ParseID(id string) (int64, error) {
	nid, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return 0, err
	}
	return nid, nil
}
