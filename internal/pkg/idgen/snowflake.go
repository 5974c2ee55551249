package idgen

import (
	"sync"

	"github.com/bwmarrin/snowflake"
)

var (
	node *snowflake.Node
	once sync.Once
)

// Initialize sets up the Snowflake generator with a node ID. Distinct node
// IDs keep invoice numbers unique across merchant processes.
func Initialize(nodeID int64) error {
	var err error
	once.Do(func() {
		node, err = snowflake.NewNode(nodeID)
	})
	return err
}

// InvoiceNo generates a unique sender invoice number.
func InvoiceNo() string {
	if node == nil {
		_ = Initialize(1)
	}
	return node.Generate().String()
}
