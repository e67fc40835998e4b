package api

// Request bodies, one per write endpoint.

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type WorkspaceNameRequest struct {
	Name string `json:"name"`
}

type CreateBoardRequest struct {
	Title       string `json:"title"`
	WorkspaceID string `json:"workspaceId"`
}

type TitleRequest struct {
	Title string `json:"title"`
}

type CreateColumnRequest struct {
	Title   string `json:"title"`
	BoardID string `json:"boardId"`
}

type ReorderColumnsRequest struct {
	BoardID          string   `json:"boardId"`
	OrderedColumnIDs []string `json:"orderedColumnIds"`
}

type CreateCardRequest struct {
	Title    string `json:"title"`
	ColumnID string `json:"columnId"`
	BoardID  string `json:"boardId"`
}

type MoveCardRequest struct {
	CardID     string `json:"cardId"`
	ToColumnID string `json:"toColumnId"`
	ToPosition int    `json:"toPosition"`
}

// ErrorResponse is the body the server sends alongside a failure status
type ErrorResponse struct {
	Message string `json:"message"`
}
