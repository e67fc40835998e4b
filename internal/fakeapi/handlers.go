package fakeapi

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/tgienger/yusra/internal/api"
	"github.com/tgienger/yusra/internal/models"
)

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req api.LoginRequest
	if !decode(w, r, &req) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[strings.ToLower(req.Email)]
	if !ok || u.password != req.Password {
		writeError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	writeJSON(w, http.StatusOK, models.Tokens{AccessToken: s.issueToken(u), RefreshToken: uuid.NewString()})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req api.RegisterRequest
	if !decode(w, r, &req) {
		return
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Email and password are required")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.users[email]; exists {
		writeError(w, http.StatusConflict, "User already exists")
		return
	}
	u := &user{id: uuid.NewString(), name: req.Name, email: email, password: req.Password}
	s.users[email] = u
	writeJSON(w, http.StatusCreated, models.Tokens{AccessToken: s.issueToken(u), RefreshToken: uuid.NewString()})
}

// Workspaces

func (s *Server) handleListWorkspaces(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	owner := s.userID(r)
	out := []models.Workspace{}
	for _, id := range s.workspaceOrder {
		if s.workspaceOwner[id] == owner {
			out = append(out, *s.workspaces[id])
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateWorkspace(w http.ResponseWriter, r *http.Request) {
	var req api.WorkspaceNameRequest
	if !decode(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		writeError(w, http.StatusBadRequest, "Name is required")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	ws := &models.Workspace{ID: uuid.NewString(), Name: req.Name}
	s.workspaces[ws.ID] = ws
	s.workspaceOwner[ws.ID] = s.userID(r)
	s.workspaceOrder = append(s.workspaceOrder, ws.ID)
	writeJSON(w, http.StatusCreated, ws)
}

func (s *Server) handleGetWorkspace(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ws, ok := s.ownedWorkspace(r, mux.Vars(r)["id"])
	if !ok {
		writeError(w, http.StatusNotFound, "Workspace not found")
		return
	}
	writeJSON(w, http.StatusOK, ws)
}

func (s *Server) handleRenameWorkspace(w http.ResponseWriter, r *http.Request) {
	var req api.WorkspaceNameRequest
	if !decode(w, r, &req) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	ws, ok := s.ownedWorkspace(r, mux.Vars(r)["id"])
	if !ok {
		writeError(w, http.StatusNotFound, "Workspace not found")
		return
	}
	ws.Name = req.Name
	writeJSON(w, http.StatusOK, ws)
}

func (s *Server) handleDeleteWorkspace(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ws, ok := s.ownedWorkspace(r, mux.Vars(r)["id"])
	if !ok {
		writeError(w, http.StatusNotFound, "Workspace not found")
		return
	}
	for _, id := range append([]string(nil), s.boardOrder...) {
		if s.boards[id].WorkspaceID == ws.ID {
			s.deleteBoard(id)
		}
	}
	delete(s.workspaces, ws.ID)
	delete(s.workspaceOwner, ws.ID)
	s.workspaceOrder = without(s.workspaceOrder, ws.ID)
	writeJSON(w, http.StatusOK, api.ErrorResponse{Message: "Workspace deleted"})
}

func (s *Server) ownedWorkspace(r *http.Request, id string) (*models.Workspace, bool) {
	ws, ok := s.workspaces[id]
	if !ok || s.workspaceOwner[id] != s.userID(r) {
		return nil, false
	}
	return ws, true
}

// Boards

func (s *Server) handleListBoards(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ws, ok := s.ownedWorkspace(r, mux.Vars(r)["id"])
	if !ok {
		writeError(w, http.StatusNotFound, "Workspace not found")
		return
	}
	out := []models.Board{}
	for _, id := range s.boardOrder {
		if b := s.boards[id]; b.WorkspaceID == ws.ID {
			out = append(out, *b)
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateBoard(w http.ResponseWriter, r *http.Request) {
	var req api.CreateBoardRequest
	if !decode(w, r, &req) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.ownedWorkspace(r, req.WorkspaceID); !ok {
		writeError(w, http.StatusNotFound, "Workspace not found")
		return
	}
	b := &models.Board{ID: uuid.NewString(), Title: req.Title, WorkspaceID: req.WorkspaceID}
	s.boards[b.ID] = b
	s.boardOrder = append(s.boardOrder, b.ID)
	writeJSON(w, http.StatusCreated, b)
}

func (s *Server) handleGetBoard(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.ownedBoard(r, mux.Vars(r)["id"])
	if !ok {
		writeError(w, http.StatusNotFound, "Board not found")
		return
	}
	detail := models.BoardDetail{Board: *b, Columns: []models.Column{}}
	for _, cid := range s.boardColumn[b.ID] {
		col := *s.columns[cid]
		col.Cards = append([]models.Card{}, col.Cards...)
		detail.Columns = append(detail.Columns, col)
	}
	writeJSON(w, http.StatusOK, detail)
}

func (s *Server) handleRenameBoard(w http.ResponseWriter, r *http.Request) {
	var req api.TitleRequest
	if !decode(w, r, &req) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.ownedBoard(r, mux.Vars(r)["id"])
	if !ok {
		writeError(w, http.StatusNotFound, "Board not found")
		return
	}
	b.Title = req.Title
	writeJSON(w, http.StatusOK, b)
}

func (s *Server) handleDeleteBoard(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.ownedBoard(r, mux.Vars(r)["id"])
	if !ok {
		writeError(w, http.StatusNotFound, "Board not found")
		return
	}
	s.deleteBoard(b.ID)
	writeJSON(w, http.StatusOK, api.ErrorResponse{Message: "Board deleted"})
}

func (s *Server) deleteBoard(id string) {
	for _, cid := range s.boardColumn[id] {
		delete(s.columns, cid)
	}
	delete(s.boardColumn, id)
	delete(s.boards, id)
	s.boardOrder = without(s.boardOrder, id)
}

func (s *Server) ownedBoard(r *http.Request, id string) (*models.Board, bool) {
	b, ok := s.boards[id]
	if !ok {
		return nil, false
	}
	if _, ok := s.ownedWorkspace(r, b.WorkspaceID); !ok {
		return nil, false
	}
	return b, true
}

// Columns

func (s *Server) handleCreateColumn(w http.ResponseWriter, r *http.Request) {
	var req api.CreateColumnRequest
	if !decode(w, r, &req) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.ownedBoard(r, req.BoardID); !ok {
		writeError(w, http.StatusNotFound, "Board not found")
		return
	}
	col := &models.Column{
		ID:      uuid.NewString(),
		Title:   req.Title,
		BoardID: req.BoardID,
		Order:   len(s.boardColumn[req.BoardID]),
		Cards:   []models.Card{},
	}
	s.columns[col.ID] = col
	s.boardColumn[req.BoardID] = append(s.boardColumn[req.BoardID], col.ID)
	writeJSON(w, http.StatusCreated, col)
}

func (s *Server) handleRenameColumn(w http.ResponseWriter, r *http.Request) {
	var req api.TitleRequest
	if !decode(w, r, &req) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	col, ok := s.ownedColumn(r, mux.Vars(r)["id"])
	if !ok {
		writeError(w, http.StatusNotFound, "Column not found")
		return
	}
	col.Title = req.Title
	writeJSON(w, http.StatusOK, col)
}

func (s *Server) handleDeleteColumn(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	col, ok := s.ownedColumn(r, mux.Vars(r)["id"])
	if !ok {
		writeError(w, http.StatusNotFound, "Column not found")
		return
	}
	delete(s.columns, col.ID)
	s.boardColumn[col.BoardID] = without(s.boardColumn[col.BoardID], col.ID)
	s.renumberColumns(col.BoardID)
	writeJSON(w, http.StatusOK, api.ErrorResponse{Message: "Column deleted"})
}

func (s *Server) handleReorderColumns(w http.ResponseWriter, r *http.Request) {
	var req api.ReorderColumnsRequest
	if !decode(w, r, &req) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.ownedBoard(r, req.BoardID); !ok {
		writeError(w, http.StatusNotFound, "Board not found")
		return
	}
	current := s.boardColumn[req.BoardID]
	if len(current) != len(req.OrderedColumnIDs) {
		writeError(w, http.StatusBadRequest, "Column list does not match board")
		return
	}
	seen := make(map[string]bool, len(current))
	for _, id := range req.OrderedColumnIDs {
		col, ok := s.columns[id]
		if !ok || col.BoardID != req.BoardID || seen[id] {
			writeError(w, http.StatusBadRequest, "Column list does not match board")
			return
		}
		seen[id] = true
	}
	s.boardColumn[req.BoardID] = append([]string(nil), req.OrderedColumnIDs...)
	s.renumberColumns(req.BoardID)
	writeJSON(w, http.StatusOK, api.ErrorResponse{Message: "Columns reordered"})
}

func (s *Server) renumberColumns(boardID string) {
	for i, id := range s.boardColumn[boardID] {
		s.columns[id].Order = i
	}
}

func (s *Server) ownedColumn(r *http.Request, id string) (*models.Column, bool) {
	col, ok := s.columns[id]
	if !ok {
		return nil, false
	}
	if _, ok := s.ownedBoard(r, col.BoardID); !ok {
		return nil, false
	}
	return col, true
}

// Cards

func (s *Server) handleCreateCard(w http.ResponseWriter, r *http.Request) {
	var req api.CreateCardRequest
	if !decode(w, r, &req) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	col, ok := s.ownedColumn(r, req.ColumnID)
	if !ok {
		writeError(w, http.StatusNotFound, "Column not found")
		return
	}
	card := models.Card{ID: uuid.NewString(), Title: req.Title, ColumnID: col.ID, Order: len(col.Cards)}
	col.Cards = append(col.Cards, card)
	writeJSON(w, http.StatusCreated, card)
}

func (s *Server) handleRenameCard(w http.ResponseWriter, r *http.Request) {
	var req api.TitleRequest
	if !decode(w, r, &req) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	col, idx, ok := s.findCard(r, mux.Vars(r)["id"])
	if !ok {
		writeError(w, http.StatusNotFound, "Card not found")
		return
	}
	col.Cards[idx].Title = req.Title
	writeJSON(w, http.StatusOK, col.Cards[idx])
}

func (s *Server) handleDeleteCard(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	col, idx, ok := s.findCard(r, mux.Vars(r)["id"])
	if !ok {
		writeError(w, http.StatusNotFound, "Card not found")
		return
	}
	col.Cards = append(col.Cards[:idx:idx], col.Cards[idx+1:]...)
	renumberCards(col)
	writeJSON(w, http.StatusOK, api.ErrorResponse{Message: "Card deleted"})
}

// handleMoveCard removes the card from its column and inserts it at the
// requested position of the destination, clamping the position.
func (s *Server) handleMoveCard(w http.ResponseWriter, r *http.Request) {
	var req api.MoveCardRequest
	if !decode(w, r, &req) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	src, idx, ok := s.findCard(r, req.CardID)
	if !ok {
		writeError(w, http.StatusNotFound, "Card not found")
		return
	}
	dst, ok := s.ownedColumn(r, req.ToColumnID)
	if !ok || dst.BoardID != src.BoardID {
		writeError(w, http.StatusNotFound, "Column not found")
		return
	}

	card := src.Cards[idx]
	src.Cards = append(src.Cards[:idx:idx], src.Cards[idx+1:]...)
	renumberCards(src)

	pos := min(max(req.ToPosition, 0), len(dst.Cards))
	card.ColumnID = dst.ID
	cards := make([]models.Card, 0, len(dst.Cards)+1)
	cards = append(cards, dst.Cards[:pos]...)
	cards = append(cards, card)
	cards = append(cards, dst.Cards[pos:]...)
	dst.Cards = cards
	renumberCards(dst)

	writeJSON(w, http.StatusOK, card)
}

func (s *Server) findCard(r *http.Request, id string) (*models.Column, int, bool) {
	for _, col := range s.columns {
		for i, c := range col.Cards {
			if c.ID != id {
				continue
			}
			if _, ok := s.ownedBoard(r, col.BoardID); !ok {
				return nil, 0, false
			}
			return col, i, true
		}
	}
	return nil, 0, false
}

func renumberCards(col *models.Column) {
	for i := range col.Cards {
		col.Cards[i].Order = i
		col.Cards[i].ColumnID = col.ID
	}
}

func without(ids []string, id string) []string {
	out := ids[:0:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
