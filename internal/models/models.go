package models

// Workspace is the top-level container owned by a user
type Workspace struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}

// Board belongs to exactly one workspace
type Board struct {
	ID          string `json:"_id"`
	Title       string `json:"title"`
	WorkspaceID string `json:"workspace"`
}

// Column is an ordered lane within a board
type Column struct {
	ID      string `json:"_id"`
	Title   string `json:"title"`
	BoardID string `json:"board"`
	Order   int    `json:"order"`
	Cards   []Card `json:"cards"`
}

// Card is a single task item within a column
type Card struct {
	ID       string `json:"_id"`
	Title    string `json:"title"`
	ColumnID string `json:"column"`
	Order    int    `json:"order"`
}

// BoardDetail is a board with its full column/card tree
type BoardDetail struct {
	Board   Board    `json:"board"`
	Columns []Column `json:"columns"`
}

// Tokens is the credential pair issued by the auth endpoints
type Tokens struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// CloneColumns returns a deep copy of the column tree so callers can mutate it freely
func CloneColumns(columns []Column) []Column {
	if columns == nil {
		return nil
	}
	out := make([]Column, len(columns))
	for i, c := range columns {
		out[i] = c
		out[i].Cards = append([]Card(nil), c.Cards...)
	}
	return out
}

// Renumber rewrites Order so sibling columns and cards are dense and 0-based
func Renumber(columns []Column) {
	for i := range columns {
		columns[i].Order = i
		for j := range columns[i].Cards {
			columns[i].Cards[j].Order = j
			columns[i].Cards[j].ColumnID = columns[i].ID
		}
	}
}
