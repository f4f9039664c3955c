package session

import (
	"context"
	"fmt"
	"testing"

	"github.com/aretw0/easel/pkg/adapters/memory"
	"github.com/aretw0/easel/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func TestManager_LockLifecycle(t *testing.T) {
	mgr := NewManager(memory.NewStore())
	ctx := context.Background()
	count := 1000

	// 1. Touch and delete many documents
	for i := 0; i < count; i++ {
		doc := fmt.Sprintf("doc-%d", i)
		_, _ = mgr.Dispatch(ctx, doc, domain.NewCommand(domain.CmdAddShape, domain.AddShapePayload{
			Shape: domain.Shape{Kind: domain.KindPoint},
		}))
		_ = mgr.Delete(ctx, doc)
	}

	// 2. No lock entries or editors survive
	assert.Empty(t, mgr.locks)
	assert.Empty(t, mgr.editors)
}
