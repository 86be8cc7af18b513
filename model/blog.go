package model

type Blog struct {
	ID        uint64 `json:"id"`
	Title     string `json:"title"`
	Author    string `json:"author"`
	Summary   string `json:"summary"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`
}

type CreateBlogParam struct {
	Title   string `json:"title" validate:"required,max=200"`
	Content string `json:"content" validate:"required"`
	Summary string `json:"summary" validate:"max=500"`
}

type UpdateBlogParam struct {
	ID uint64 `json:"id" validate:"required"`

	Title   *string `json:"title" validate:"omitempty,max=200"`
	Content *string `json:"content"`
	Summary *string `json:"summary" validate:"omitempty,max=500"`
}

type DeleteBlogParam struct {
	ID uint64 `json:"id" validate:"required"`
}
