package schema

// BookTable represents the 'core.book' table
type BookTable struct {
	Table             string
	ID                string
	Title             string
	Slug              string
	Author            string
	ISBN              string
	Description       string
	Price             string
	CoverURL          string
	Content           string
	AccessPermissions string
	Rating            string
	ReviewCount       string
	CreatedAt         string
	UpdatedAt         string
	DeletedAt         string
}

// Book is the schema definition for core.book
var Book = BookTable{
	Table:             "core.book",
	ID:                "id",
	Title:             "title",
	Slug:              "slug",
	Author:            "author",
	ISBN:              "isbn",
	Description:       "description",
	Price:             "price",
	CoverURL:          "coverurl",
	Content:           "content",
	AccessPermissions: "accesspermissions",
	Rating:            "rating",
	ReviewCount:       "reviewcount",
	CreatedAt:         "createdat",
	UpdatedAt:         "updatedat",
	DeletedAt:         "deletedat",
}

// Columns returns all standard column names
func (t BookTable) Columns() []string {
	return []string{
		t.ID, t.Title, t.Slug, t.Author, t.ISBN, t.Description, t.Price,
		t.CoverURL, t.Content, t.AccessPermissions, t.Rating, t.ReviewCount,
		t.CreatedAt, t.UpdatedAt, t.DeletedAt,
	}
}
