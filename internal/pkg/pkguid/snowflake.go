package pkguid

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"

	"github.com/bwmarrin/snowflake"
)

// Epoch is the custom snowflake epoch in unix milliseconds
// (2025-01-01T00:00:00Z).
const Epoch int64 = 1735689600000

const maxNodeID = 1<<10 - 1

// Snowflake generates numeric IDs using the Snowflake algorithm. The feed
// client uses them as request ids on the websocket.
type Snowflake struct {
	node *snowflake.Node
}

func generateRandomNodeID() (int64, error) {
	var nodeID int64
	if err := binary.Read(rand.Reader, binary.BigEndian, &nodeID); err != nil {
		return 0, err
	}

	return nodeID & maxNodeID, nil
}

// NewSnowflake constructs a Snowflake generator. A negative nodeID picks a
// random node; values above 1023 are rejected.
func NewSnowflake(nodeID int64) (*Snowflake, error) {
	if nodeID < 0 {
		id, err := generateRandomNodeID()
		if err != nil {
			return nil, err
		}
		nodeID = id
	}
	if nodeID > maxNodeID {
		return nil, fmt.Errorf("snowflake node id %d out of range 0..%d", nodeID, maxNodeID)
	}

	snowflake.Epoch = Epoch

	node, err := snowflake.NewNode(nodeID)
	if err != nil {
		return nil, err
	}

	return &Snowflake{node: node}, nil
}

// Generate returns a new unique numeric ID.
func (s *Snowflake) Generate() int64 {
	return s.node.Generate().Int64()
}
