package main

import (
	"context"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type stopStep struct {
	name string
	stop gfshutdown.Operation
}

// inOrder folds steps into one operation that runs them sequentially.
// gfshutdown runs separate operations concurrently, so anything that
// depends on an earlier step finishing must go through here. A failing step
// does not prevent the later ones; the first error is returned.
func inOrder(steps ...stopStep) gfshutdown.Operation {
	return func(ctx context.Context) error {
		var first error
		for _, s := range steps {
			zap.S().Infof("stopping %s", s.name)
			if err := s.stop(ctx); err != nil {
				zap.S().Errorf("stop %s: %v", s.name, err)
				if first == nil {
					first = errors.Wrapf(err, "stop %s", s.name)
				}
			}
		}
		return first
	}
}
