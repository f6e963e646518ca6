package validation

// Campground is the create and update payload of a campground. It arrives
// as multipart form fields.
type Campground struct {
	Title        string   `schema:"title" validate:"required,nohtml"`
	Location     string   `schema:"location" validate:"required,nohtml"`
	Price        *float64 `schema:"price" validate:"required,finite,gte=0"`
	Description  string   `schema:"description" validate:"required,nohtml"`
	DeleteImages []string `schema:"deleteImages"`
}

type Review struct {
	Rating *int   `json:"rating" validate:"required,gte=1,lte=5"`
	Body   string `json:"body" validate:"max=1000,nohtml"`
}

type Register struct {
	Email    string `json:"email" validate:"required,email,nohtml"`
	Username string `json:"username" validate:"required,alphanum,min=3,max=30,nohtml"`
	Password string `json:"password" validate:"required,min=8,max=128"`
}

type Login struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}
