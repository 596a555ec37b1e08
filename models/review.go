package models

// ReviewImage is a stored reference to a review photo.
type ReviewImage struct {
	URL     string `json:"url"`
	Caption string `json:"caption,omitempty"`
}

// Review is a customer review. Reviews used to be tied one-to-one to
// orders; they are independent now and go through moderation before
// showing up publicly.
type Review struct {
	ID            int64         `json:"id" db:"id"`
	CustomerName  string        `json:"customer_name" db:"customer_name"`
	CustomerEmail string        `json:"customer_email" db:"customer_email"`
	Rating        int           `json:"rating" db:"rating"`
	Title         *string       `json:"title" db:"title"`
	Content       string        `json:"content" db:"content"`
	Images        []ReviewImage `json:"images" db:"images"`
	IsApproved    bool          `json:"is_approved" db:"is_approved"`
	IsFeatured    bool          `json:"is_featured" db:"is_featured"`
	CreatedAt     string        `json:"created_at" db:"created_at"`
	UpdatedAt     string        `json:"updated_at" db:"updated_at"`
}

func (Review) TableName() string {
	return "reviews"
}
