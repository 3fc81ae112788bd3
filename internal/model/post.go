package model

// DateLayout is the human-readable layout of Post.Date.
const DateLayout = "January 02, 2006"

// Post represents a blog post in the database.
type Post struct {
	ID       int64  `db:"id"`
	Title    string `db:"title"`
	Subtitle string `db:"subtitle"`
	Date     string `db:"date"`
	Body     string `db:"body"`
	AuthorID int64  `db:"author_id"`
	Author   string `db:"author"`
	ImgURL   string `db:"img_url"`
}

// PostRequest represents the create/edit post form.
type PostRequest struct {
	Title    string `validate:"required,max=250"`
	Subtitle string `validate:"required,max=250"`
	ImgURL   string `validate:"required,url,max=250"`
	Body     string `validate:"required"`
}

// RequestFromPost pre-fills an edit form with the stored fields.
func RequestFromPost(p *Post) PostRequest {
	return PostRequest{
		Title:    p.Title,
		Subtitle: p.Subtitle,
		ImgURL:   p.ImgURL,
		Body:     p.Body,
	}
}
