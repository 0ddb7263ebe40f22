// Package employment defines the core records shared by the decision engines:
// raw workforce events and the fused per-company-per-month view.
package employment

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Event is a single recorded workforce action: a reduction (layoffs) or a
// hiring round. Count carries whichever of the two the owning dataset tracks.
// Events are immutable once generated.
type Event struct {
	ID       uuid.UUID `json:"id"`
	Date     time.Time `json:"date"`
	Company  string    `json:"company"`
	Count    int64     `json:"count"`
	Industry string    `json:"industry"`
	Location string    `json:"location"`
	Year     int       `json:"year"`
	Month    int       `json:"month"`
	Quarter  string    `json:"quarter"`
}

// NewEvent builds an Event with Year, Month, and Quarter derived from date.
func NewEvent(date time.Time, company string, count int64, industry, location string) Event {
	return Event{
		ID:       uuid.New(),
		Date:     date,
		Company:  company,
		Count:    count,
		Industry: industry,
		Location: location,
		Year:     date.Year(),
		Month:    int(date.Month()),
		Quarter:  QuarterOf(date.Month()),
	}
}

// QuarterOf returns the calendar quarter label for a month.
func QuarterOf(m time.Month) string {
	return fmt.Sprintf("Q%d", (int(m)-1)/3+1)
}

// Key identifies one company-month cell. It is the join key of the fusion
// engine.
type Key struct {
	Company string `json:"company"`
	Year    int    `json:"year"`
	Month   int    `json:"month"`
}

// Less orders keys by (company, year, month).
func (k Key) Less(other Key) bool {
	if k.Company != other.Company {
		return k.Company < other.Company
	}
	if k.Year != other.Year {
		return k.Year < other.Year
	}
	return k.Month < other.Month
}

// FusedRecord is the reconciled monthly view of one company: layoffs and
// hires summed per side, zero-filled where a side has no events for the key.
// A missing side is indistinguishable from zero activity; downstream
// consumers rely on that.
type FusedRecord struct {
	Company  string `json:"company"`
	Year     int    `json:"year"`
	Month    int    `json:"month"`
	Layoffs  int64  `json:"layoffs"`
	Hires    int64  `json:"hires"`
	Industry string `json:"industry"`
	Location string `json:"location"`

	// NetChange is hires minus layoffs for the month.
	NetChange int64 `json:"net_change"`
	// EmploymentRatio is hires / (layoffs + 1); the shifted denominator
	// keeps the ratio defined when a company had no layoffs.
	EmploymentRatio decimal.Decimal `json:"employment_ratio"`

	// Date is the first calendar day of the month, for time-series plotting.
	Date time.Time `json:"date"`
}

// Dims are the dimensions rows can be filtered on.
type Dims struct {
	Company  string
	Year     int
	Month    int
	Industry string
}

// Dimensioned is implemented by any row type the filter layer can operate on.
type Dimensioned interface {
	Dims() Dims
}

// Dims implements Dimensioned.
func (e Event) Dims() Dims {
	return Dims{Company: e.Company, Year: e.Year, Month: e.Month, Industry: e.Industry}
}

// Dims implements Dimensioned.
func (f FusedRecord) Dims() Dims {
	return Dims{Company: f.Company, Year: f.Year, Month: f.Month, Industry: f.Industry}
}

// MonthStart returns the first day of (year, month) in UTC.
func MonthStart(year, month int) time.Time {
	return time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
}
