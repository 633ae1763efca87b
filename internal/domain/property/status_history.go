package property

import (
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/estateflow/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// MaxNoteLength bounds the free-text note on a ledger entry, in runes
const MaxNoteLength = 1000

// StatusHistoryEntry is one immutable record in a unit's status ledger
type StatusHistoryEntry struct {
	ID         uuid.UUID
	TenantID   uuid.UUID
	UnitID     uuid.UUID
	Sequence   int
	FromStatus UnitStatus
	ToStatus   UnitStatus
	ChangedBy  uuid.UUID
	ChangedAt  time.Time
	Note       string
}

func newStatusHistoryEntry(u *Unit, from, to UnitStatus, actorID uuid.UUID, note string, at time.Time) *StatusHistoryEntry {
	note = strings.TrimSpace(note)
	if utf8.RuneCountInString(note) > MaxNoteLength {
		note = string([]rune(note)[:MaxNoteLength])
	}
	return &StatusHistoryEntry{
		ID:         uuid.New(),
		TenantID:   u.TenantID,
		UnitID:     u.ID,
		Sequence:   u.StatusSeq,
		FromStatus: from,
		ToStatus:   to,
		ChangedBy:  actorID,
		ChangedAt:  at,
		Note:       note,
	}
}

// IsNoOp reports whether the entry records a move to the same status
func (e *StatusHistoryEntry) IsNoOp() bool {
	return e.FromStatus == e.ToStatus
}

// ChainBreak describes a ledger entry whose FromStatus does not follow the
// previous entry's ToStatus
type ChainBreak struct {
	EntryID  uuid.UUID  `json:"entry_id"`
	Sequence int        `json:"sequence"`
	Expected UnitStatus `json:"expected_from"`
	Actual   UnitStatus `json:"actual_from"`
}

// SortChronological orders entries oldest first
func SortChronological(entries []StatusHistoryEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Sequence < entries[j].Sequence
	})
}

// SortNewestFirst orders entries most recent first
func SortNewestFirst(entries []StatusHistoryEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Sequence > entries[j].Sequence
	})
}

// VerifyHistoryChain walks entries in chronological order and reports every
// place where an entry does not start from the previous entry's ToStatus.
// The input is not modified.
func VerifyHistoryChain(entries []StatusHistoryEntry) []ChainBreak {
	if len(entries) < 2 {
		return nil
	}
	ordered := make([]StatusHistoryEntry, len(entries))
	copy(ordered, entries)
	SortChronological(ordered)

	var breaks []ChainBreak
	for i := 1; i < len(ordered); i++ {
		prev, cur := ordered[i-1], ordered[i]
		if cur.FromStatus != prev.ToStatus {
			breaks = append(breaks, ChainBreak{
				EntryID:  cur.ID,
				Sequence: cur.Sequence,
				Expected: prev.ToStatus,
				Actual:   cur.FromStatus,
			})
		}
	}
	return breaks
}

// ErrLedgerMismatch is reported when a unit's status disagrees with its latest ledger entry
var ErrLedgerMismatch = shared.NewDomainError("LEDGER_MISMATCH", "Unit status does not match its latest history entry")

// CheckLedgerConsistency verifies that latest is the head of the unit's ledger
// and that its ToStatus equals the unit's current status.
func CheckLedgerConsistency(u *Unit, latest *StatusHistoryEntry) error {
	if latest == nil {
		return shared.NewDomainError(ErrLedgerMismatch.Code, "Unit "+u.UnitNumber+" has no history entries")
	}
	if latest.ToStatus != u.Status || latest.Sequence != u.StatusSeq {
		return shared.NewDomainError(ErrLedgerMismatch.Code,
			"Unit "+u.UnitNumber+" is "+u.Status.String()+" but its ledger ends at "+latest.ToStatus.String())
	}
	return nil
}
