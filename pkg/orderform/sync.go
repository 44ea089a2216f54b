package orderform

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Replacer persists the full record set of one order's form in one shot. The
// shipped implementation deletes everything and recreates it; a diff-based
// one could be swapped in without touching Submit.
type Replacer interface {
	ReplaceAll(ctx context.Context, orderID string, recs []TransactionRecord) (int, error)
}

// DeleteThenCreate implements Replacer with the delete-then-recreate
// protocol: every persisted record of the order is deleted, all deletes are
// awaited, and only then are the new records created. Creates within the
// batch run in parallel with no ordering between them.
//
// There is no transactional guarantee: requests already applied when a
// sibling fails stay applied, and the aggregate error joins every failure
// message. Two concurrent submissions for the same order can race; the
// single-operator editing context accepts that.
type DeleteThenCreate struct {
	Store       Store
	Parallelism int // max in-flight requests per phase, 0 = unlimited
	Log         *logrus.Logger
}

func (d *DeleteThenCreate) logger() *logrus.Logger {
	if d.Log != nil {
		return d.Log
	}
	return logrus.StandardLogger()
}

// ReplaceAll returns the number of records created. On a partially failed
// create batch it returns the count that did get created alongside the
// aggregate error.
func (d *DeleteThenCreate) ReplaceAll(ctx context.Context, orderID string, recs []TransactionRecord) (int, error) {
	existing, err := d.Store.List(ctx, orderID)
	if err != nil {
		return 0, fmt.Errorf("list existing records: %w", err)
	}

	// Delete phase. All deletes must resolve before any create is issued,
	// otherwise recreated records could collide with stale ones server-side.
	if len(existing) > 0 {
		if msgs := d.fanOut(ctx, len(existing), func(ctx context.Context, i int) error {
			return d.Store.Delete(ctx, existing[i].ID)
		}); len(msgs) > 0 {
			return 0, fmt.Errorf("delete failed: %s", strings.Join(msgs, "; "))
		}
		d.logger().WithFields(logrus.Fields{"orderId": orderID, "deleted": len(existing)}).Debug("stale records deleted")
	}

	// Create phase.
	var created int
	var mu sync.Mutex
	msgs := d.fanOut(ctx, len(recs), func(ctx context.Context, i int) error {
		if _, err := d.Store.Create(ctx, recs[i]); err != nil {
			return err
		}
		mu.Lock()
		created++
		mu.Unlock()
		return nil
	})
	if len(msgs) > 0 {
		return created, fmt.Errorf("create failed: %s", strings.Join(msgs, "; "))
	}
	return created, nil
}

// fanOut runs fn for each index in parallel and collects every failure
// message. A failing call does not cancel its siblings; they run to
// completion and are still awaited.
func (d *DeleteThenCreate) fanOut(ctx context.Context, n int, fn func(ctx context.Context, i int) error) []string {
	g := new(errgroup.Group)
	if d.Parallelism > 0 {
		g.SetLimit(d.Parallelism)
	}
	var mu sync.Mutex
	var msgs []string
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			if err := fn(ctx, i); err != nil {
				mu.Lock()
				msgs = append(msgs, err.Error())
				mu.Unlock()
			}
			return nil
		})
	}
	g.Wait()
	return msgs
}

// SubmitResult is relayed to the caller to drive the UI refresh.
type SubmitResult struct {
	Success bool
	Message string
	Records int // records created by this submission
}

// Coordinator runs a form submission end to end: validate, replace the
// order's record set, flip the optimistic flag, then reconcile by re-fetching
// through the loader.
type Coordinator struct {
	Replacer Replacer
	Loader   *Loader
	Log      *logrus.Logger
}

func (c *Coordinator) logger() *logrus.Logger {
	if c.Log != nil {
		return c.Log
	}
	return logrus.StandardLogger()
}

// Submit validates st and persists its items for orderID.
//
// Validation failures populate st.Errors and never reach the network. While a
// submission is in flight st.Saving blocks re-entry, so double-clicking a
// save button cannot run two interleaved replacements.
//
// After a successful create batch, HasExisting flips to true in
// PhaseOptimistic before the confirmation re-fetch completes. Whenever the
// replacement touched the server (fully or partially), the loader re-fetch
// runs and settles the state in PhaseConfirmed — including repopulating the
// items from server truth after a partial failure, since some of the edits
// may have been persisted.
func (c *Coordinator) Submit(ctx context.Context, st *FormState, orderID string) SubmitResult {
	if st.Saving {
		return SubmitResult{Success: false, Message: "a submission is already in progress"}
	}
	if errs := st.Validate(); len(errs) > 0 {
		st.Errors = errs
		return SubmitResult{Success: false, Message: "validation failed"}
	}
	st.Errors = nil
	st.Saving = true
	defer func() { st.Saving = false }()

	recs := ExpandItems(orderID, st.Items)
	created, err := c.Replacer.ReplaceAll(ctx, orderID, recs)

	res := SubmitResult{Success: err == nil, Records: created}
	if err != nil {
		res.Message = err.Error()
		st.LastError = res.Message
		c.logger().WithFields(logrus.Fields{"orderId": orderID, "created": created}).WithError(err).Warn("form submission failed")
	} else {
		st.LastError = ""
		st.HasExisting = true
		st.Phase = PhaseOptimistic
	}

	if c.Loader != nil {
		ld := c.Loader.Load(ctx, orderID)
		st.Items = ld.Items
		st.HasExisting = ld.HasExisting
		st.Phase = PhaseConfirmed
	}
	return res
}
