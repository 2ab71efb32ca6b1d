// Package messages defines Bubbletea message types for the progress view.
package messages

import (
	"github.com/custodia-labs/dairyghg/internal/core/domain"
)

// EntryDone is sent when one farm reaches a terminal state.
type EntryDone struct {
	Entry domain.BatchEntry
}

// RunFinished is sent once the batch returns.
type RunFinished struct {
	Report *domain.BatchReport
	Err    error
}
