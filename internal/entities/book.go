package entities

// MinYear and MaxYear bound the publication year a book can be stored with.
const (
	MinYear = 1000
	MaxYear = 9999
)

// Book is the only persisted entity: a bibliographic record with read status.
// Rows are created and deleted, never updated.
type Book struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	Title  string `gorm:"type:text;not null" json:"title"`
	Author string `gorm:"type:text;not null" json:"author"`
	Year   int    `gorm:"not null" json:"year"`
	Genre  string `gorm:"type:text;not null;default:''" json:"genre"`
	Read   bool   `gorm:"not null" json:"read"`
}

func (Book) TableName() string {
	return "books"
}

// ReadLabel is the status shown next to a book in every listing.
func (b Book) ReadLabel() string {
	if b.Read {
		return "Read"
	}
	return "Unread"
}
