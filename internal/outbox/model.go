package outbox

import "time"

// UnpublishedEvent is a signed event that no relay accepted
type UnpublishedEvent struct {
	EventID   string `gorm:"primaryKey;type:varchar(64)"`
	Owner     string `gorm:"type:varchar(64);index:idx_unpublished_owner;not null"`
	Kind      int
	Raw       string `gorm:"type:text;not null"` // event JSON
	Relays    string `gorm:"type:text"`          // newline separated
	LastError string `gorm:"type:text"`
	Attempts  int
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (UnpublishedEvent) TableName() string { return "unpublished_events" }
