package collectionmethod

import (
	"context"
	"strings"

	"mutual/loanlifecycle/internal/pkg/consts"
	"mutual/loanlifecycle/internal/pkg/models"
	storemodels "mutual/loanlifecycle/internal/pkg/store/models"
)

// EntryState tracks whether a staged line has been modified since it was
// added to the batch.
type EntryState string

const (
	EntryDraft   EntryState = "Draft"
	EntryTouched EntryState = "Touched"
)

type StagedEntry struct {
	Code  string
	Name  string
	State EntryState
}

// Batch is the staging area for a collection method registration. Entries
// accumulate as drafts; editing a line marks it Touched, and a touched line
// can no longer be removed from the batch.
type Batch struct {
	entries []StagedEntry
}

func NewBatch() *Batch {
	return &Batch{}
}

func (b *Batch) Stage(code, name string) {
	b.entries = append(b.entries, StagedEntry{
		Code:  strings.TrimSpace(code),
		Name:  strings.TrimSpace(name),
		State: EntryDraft,
	})
}

func (b *Batch) Edit(index int, code, name string) error {
	if index < 0 || index >= len(b.entries) {
		return models.NewNotFoundError(consts.MsgMethodNotFound)
	}
	b.entries[index].Code = strings.TrimSpace(code)
	b.entries[index].Name = strings.TrimSpace(name)
	b.entries[index].State = EntryTouched
	return nil
}

func (b *Batch) Remove(index int) error {
	if index < 0 || index >= len(b.entries) {
		return models.NewNotFoundError(consts.MsgMethodNotFound)
	}
	if b.entries[index].State == EntryTouched {
		return models.NewConflictError(consts.MsgBatchEntryTouched)
	}
	b.entries = append(b.entries[:index], b.entries[index+1:]...)
	return nil
}

func (b *Batch) Len() int {
	return len(b.entries)
}

// Submit registers the staged entries through the service. The batch is
// left intact on failure so the caller can fix the offending line and
// submit again.
func (b *Batch) Submit(
	ctx context.Context,
	svc *CollectionMethodService,
) ([]storemodels.CollectionMethod, error) {
	return svc.RegisterBatch(ctx, b.Entries())
}

func (b *Batch) Entries() []models.CollectionMethodEntry {
	out := make([]models.CollectionMethodEntry, 0, len(b.entries))
	for _, e := range b.entries {
		out = append(out, models.CollectionMethodEntry{
			Code:   e.Code,
			Name:   e.Name,
			Edited: e.State == EntryTouched,
		})
	}
	return out
}
