package types

import "time"

type Enquiry struct {
	ID     string  `db:"id"`
	MaidID *string `db:"maid_id"`

	Name    string `db:"name" form:"name"`
	Email   string `db:"email" form:"email"`
	Mobile  string `db:"mobile" form:"mobile"`
	Message string `db:"message" form:"message"`

	CreatedAt time.Time `db:"created_at"`
}
