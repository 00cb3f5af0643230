package venue

import (
	"fmt"
	"time"
)

// Table is a physical table inside a venue. Table numbers are assigned at
// creation and immutable; the QR token is stable for the table's lifetime
// unless explicitly regenerated.
type Table struct {
	id          string
	venueID     string
	tableNumber int
	qrCode      string
	status      TableStatus
	createdAt   time.Time
	updatedAt   time.Time
}

func NewTable(venueID string, tableNumber int) (*Table, error) {
	if venueID == "" {
		return nil, fmt.Errorf("venue ID is required")
	}
	if tableNumber <= 0 {
		return nil, fmt.Errorf("table number must be positive")
	}

	now := time.Now().UTC()
	return &Table{
		venueID:     venueID,
		tableNumber: tableNumber,
		status:      TableStatusAvailable,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

func ReconstructTable(id, venueID string, tableNumber int, qrCode string, status TableStatus, createdAt, updatedAt time.Time) (*Table, error) {
	if id == "" {
		return nil, fmt.Errorf("table ID cannot be empty")
	}

	return &Table{
		id:          id,
		venueID:     venueID,
		tableNumber: tableNumber,
		qrCode:      qrCode,
		status:      status,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}, nil
}

func (t *Table) ID() string           { return t.id }
func (t *Table) VenueID() string      { return t.venueID }
func (t *Table) TableNumber() int     { return t.tableNumber }
func (t *Table) QRCode() string       { return t.qrCode }
func (t *Table) Status() TableStatus  { return t.status }
func (t *Table) CreatedAt() time.Time { return t.createdAt }
func (t *Table) UpdatedAt() time.Time { return t.updatedAt }

func (t *Table) SetID(id string) error {
	if t.id != "" {
		return fmt.Errorf("table ID is already set")
	}
	if id == "" {
		return fmt.Errorf("table ID cannot be empty")
	}
	t.id = id
	return nil
}

// SetQRCode stores a freshly minted token. Old tokens become semantically
// stale but are not actively revoked; verification relies on venue/table
// existence checks instead of a revocation list.
func (t *Table) SetQRCode(token string) {
	t.qrCode = token
	t.updatedAt = time.Now().UTC()
}

func (t *Table) UpdateStatus(status TableStatus) error {
	if !validTableStatuses[status] {
		return fmt.Errorf("unknown table status: %q", status)
	}
	t.status = status
	t.updatedAt = time.Now().UTC()
	return nil
}
