package schema

// ReadingProgressTable represents the 'core.readingprogress' table
type ReadingProgressTable struct {
	Table      string
	ID         string
	BookID     string
	UserID     string
	Percentage string
	Chapter    string
	UpdatedAt  string
}

// ReadingProgress is the schema definition for core.readingprogress
var ReadingProgress = ReadingProgressTable{
	Table:      "core.readingprogress",
	ID:         "id",
	BookID:     "bookid",
	UserID:     "userid",
	Percentage: "percentage",
	Chapter:    "chapter",
	UpdatedAt:  "updatedat",
}

// Columns returns all standard column names
func (t ReadingProgressTable) Columns() []string {
	return []string{
		t.ID, t.BookID, t.UserID, t.Percentage, t.Chapter, t.UpdatedAt,
	}
}
