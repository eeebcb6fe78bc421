package ledger

import (
	"errors"
	"time"

	"github.com/csfin/portfolio/internal/models"
)

var (
	// ErrInsufficientShares is returned when a sell would consume more
	// shares than the holding currently carries.
	ErrInsufficientShares = errors.New("insufficient shares")

	// ErrNegativeValue is returned by operation constructors for
	// negative monetary or share inputs.
	ErrNegativeValue = errors.New("negative value")
)

// Operation is a single ledger event applied to a holding. Operations
// are immutable after construction; their checksum identifies them for
// deduplication across repeated ingestion runs.
type Operation interface {
	Apply(h *Holding) error
	Date() time.Time
	Checksum() string
	Kind() models.OperationKind
	Clone() Operation
}

// CompareByDate orders operations by their normalized date. Equal dates
// compare as 0 so same-day operations keep their insertion order.
func CompareByDate(a, b Operation) int {
	ad, bd := a.Date(), b.Date()
	switch {
	case ad.Before(bd):
		return -1
	case ad.After(bd):
		return 1
	default:
		return 0
	}
}
