// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package batch

import (
	"context"

	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"
)

// 🔄 runSequential processes files one at a time, in argument order
func (o *operator) runSequential(ctx context.Context) error {
	for _, path := range o.opts.Paths {
		if err := ctx.Err(); err != nil {
			return errors.Errorf("batch cancelled: %w", err)
		}
		if err := o.processFile(ctx, path); err != nil && o.opts.FailFast {
			return err
		}
	}
	return nil
}

// ⚡ runParallel processes files with a bounded worker pool. Safe because
// each file's content buffer is independent and the status manager is
// mutex-guarded.
func (o *operator) runParallel(ctx context.Context) error {
	eg, gctx := errgroup.WithContext(ctx)
	eg.SetLimit(o.opts.Jobs)

	for _, path := range o.opts.Paths {
		path := path
		eg.Go(func() error {
			if err := gctx.Err(); err != nil {
				return errors.Errorf("batch cancelled: %w", err)
			}
			err := o.processFile(gctx, path)
			if err != nil && o.opts.FailFast {
				// returning the error cancels gctx, stopping the pool
				return err
			}
			return nil
		})
	}

	return eg.Wait()
}
