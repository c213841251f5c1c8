// internal/app/system/undo/undo.go

// Package undo coordinates deletion with a short re-insert window.
// Deleting an entry snapshots it, removes it from the ledger, and
// pushes an undo notification; acting on the notification before it
// expires restores the snapshot under a fresh ID.
package undo

import (
	"context"
	"errors"

	"github.com/quangoinc/qscore/internal/app/system/notify"
	"github.com/quangoinc/qscore/internal/domain/catalog"
	"github.com/quangoinc/qscore/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

var ErrForbidden = errors.New("entry belongs to another member")

// Ledger is the slice of the entries store the coordinator needs.
// Restore inserts the snapshot as-is (same timestamp, same daily-bonus
// flag) under a fresh ID; it must not re-run the daily-bonus check.
type Ledger interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (models.PointEntry, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	Restore(ctx context.Context, e models.PointEntry) (models.PointEntry, error)
}

// Coordinator ties the entries ledger to the notification center.
type Coordinator struct {
	ledger Ledger
	center *notify.Center
	log    *zap.Logger
}

// NewCoordinator creates an undo Coordinator.
func NewCoordinator(ledger Ledger, center *notify.Center, logger *zap.Logger) *Coordinator {
	return &Coordinator{
		ledger: ledger,
		center: center,
		log:    logger,
	}
}

// Delete removes memberID's entry and opens the undo window. Deleting
// an entry owned by someone else fails with ErrForbidden.
func (c *Coordinator) Delete(ctx context.Context, memberID string, id primitive.ObjectID) (notify.Notification, error) {
	snapshot, err := c.ledger.GetByID(ctx, id)
	if err != nil {
		return notify.Notification{}, err
	}
	if snapshot.MemberID != memberID {
		return notify.Notification{}, ErrForbidden
	}

	if err := c.ledger.Delete(ctx, id); err != nil {
		return notify.Notification{}, err
	}

	n := c.center.Push(memberID, notify.KindUndo, "Deleted "+entryLabel(snapshot), func(actCtx context.Context) error {
		restored, err := c.ledger.Restore(actCtx, snapshot)
		if err != nil {
			c.log.Error("undo restore failed",
				zap.Error(err),
				zap.String("member_id", memberID),
				zap.String("entry_id", id.Hex()))
			return err
		}
		c.log.Info("entry restored",
			zap.String("member_id", memberID),
			zap.String("old_entry_id", id.Hex()),
			zap.String("new_entry_id", restored.ID.Hex()))
		return nil
	})

	c.log.Info("entry deleted with undo window",
		zap.String("member_id", memberID),
		zap.String("entry_id", id.Hex()),
		zap.String("notification_id", n.ID))

	return n, nil
}

func entryLabel(e models.PointEntry) string {
	if e.IsCustom() {
		if e.CustomTaskName != "" {
			return e.CustomTaskName
		}
		return "custom task"
	}
	if task, ok := catalog.Lookup(e.TaskID); ok {
		return task.Name
	}
	return "entry"
}
