package venue

import "fmt"

// TableStatus is the closed set of table states.
type TableStatus string

const (
	TableStatusAvailable    TableStatus = "available"
	TableStatusOccupied     TableStatus = "occupied"
	TableStatusMaintenance  TableStatus = "maintenance"
	TableStatusOutOfService TableStatus = "out_of_service"
)

var validTableStatuses = map[TableStatus]bool{
	TableStatusAvailable:    true,
	TableStatusOccupied:     true,
	TableStatusMaintenance:  true,
	TableStatusOutOfService: true,
}

func NewTableStatus(s string) (TableStatus, error) {
	st := TableStatus(s)
	if !validTableStatuses[st] {
		return "", fmt.Errorf("unknown table status: %q", s)
	}
	return st, nil
}

func (s TableStatus) String() string {
	return string(s)
}

// AcceptsOrders reports whether customers may reach the ordering flow
// through this table.
func (s TableStatus) AcceptsOrders() bool {
	return s == TableStatusAvailable || s == TableStatusOccupied
}
