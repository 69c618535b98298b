package repository

import "gorm.io/gorm"

// Page sizes mirror the back-office screens: management lists show 15
// rows, the sales screen shows 7.
const (
	DefaultPageSize = 15
	SalesPageSize   = 7
)

// Page selects one slice of a filtered list.
type Page struct {
	Number int
	Size   int
}

func (p Page) normalize(defaultSize int) Page {
	if p.Size <= 0 {
		p.Size = defaultSize
	}
	if p.Number <= 0 {
		p.Number = 1
	}
	return p
}

func (p Page) apply(q *gorm.DB) *gorm.DB {
	return q.Offset((p.Number - 1) * p.Size).Limit(p.Size)
}
