package schema

// ReviewTable represents the 'core.review' table
type ReviewTable struct {
	Table     string
	ID        string
	BookID    string
	UserID    string
	Rating    string
	Comment   string
	CreatedAt string
	UpdatedAt string
}

// Review is the schema definition for core.review
var Review = ReviewTable{
	Table:     "core.review",
	ID:        "id",
	BookID:    "bookid",
	UserID:    "userid",
	Rating:    "rating",
	Comment:   "comment",
	CreatedAt: "createdat",
	UpdatedAt: "updatedat",
}

// Columns returns all standard column names
func (t ReviewTable) Columns() []string {
	return []string{
		t.ID, t.BookID, t.UserID, t.Rating, t.Comment,
		t.CreatedAt, t.UpdatedAt,
	}
}
