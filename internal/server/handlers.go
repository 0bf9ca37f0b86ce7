package server

import (
	"net/http"

	"kronibola/internal/booking"
	"kronibola/internal/models"
)

type sessionDTO struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Date      string  `json:"date"`
	Time      string  `json:"time"`
	Location  string  `json:"location"`
	Fee       string  `json:"fee"`
	Status    string  `json:"status"`
	Capacity  int     `json:"capacity"`
	Occupancy int     `json:"occupancy"`
	SpotsLeft int     `json:"spots_left"`
	Full      bool    `json:"full"`
	Progress  float64 `json:"progress"`
}

func toSessionDTO(v booking.SessionView) sessionDTO {
	return sessionDTO{
		ID:        v.ID,
		Name:      v.Name,
		Date:      v.Date,
		Time:      v.Time,
		Location:  v.Location,
		Fee:       v.Fee,
		Status:    v.Status,
		Capacity:  v.Capacity,
		Occupancy: v.Occupancy,
		SpotsLeft: v.SpotsLeft,
		Full:      v.Full,
		Progress:  v.Progress,
	}
}

func (s *Server) handleOpenSessions(w http.ResponseWriter, r *http.Request) {
	views, err := s.svc.OpenSessions(r.Context())
	if err != nil {
		serviceError(w, err)
		return
	}
	out := make([]sessionDTO, 0, len(views))
	for _, v := range views {
		out = append(out, toSessionDTO(v))
	}
	writeJSON(w, http.StatusOK, jsonResponse{"sessions": out})
}

func (s *Server) handleAllSessions(w http.ResponseWriter, r *http.Request) {
	views, err := s.svc.AllSessions(r.Context())
	if err != nil {
		serviceError(w, err)
		return
	}
	out := make([]sessionDTO, 0, len(views))
	for _, v := range views {
		out = append(out, toSessionDTO(v))
	}
	writeJSON(w, http.StatusOK, jsonResponse{"sessions": out})
}

// The public list shows name, date and status only; phone numbers stay
// behind the admin gate.
type publicRegistrationDTO struct {
	SessionDate string `json:"session_date"`
	PlayerName  string `json:"player_name"`
	Status      string `json:"status"`
}

func (s *Server) handlePublicRegistrations(w http.ResponseWriter, r *http.Request) {
	regs, err := s.svc.PublicRegistrations(r.Context(), r.URL.Query().Get("date"))
	if err != nil {
		serviceError(w, err)
		return
	}
	out := make([]publicRegistrationDTO, 0, len(regs))
	for _, reg := range regs {
		out = append(out, publicRegistrationDTO{
			SessionDate: reg.SessionDate,
			PlayerName:  reg.PlayerName,
			Status:      reg.Status,
		})
	}
	writeJSON(w, http.StatusOK, jsonResponse{"registrations": out})
}

type registerRequest struct {
	Session string `json:"session"` // session ID or "name (date)" label
	Name    string `json:"name"`
	Phone   string `json:"phone"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := readJSON(w, r, &req); err != nil {
		errorJSON(w, http.StatusBadRequest, err)
		return
	}
	res, err := s.svc.Register(r.Context(), req.Session, req.Name, req.Phone)
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, jsonResponse{
		"status":       res.Registration.Status,
		"fee":          res.Registration.Fee,
		"session":      toSessionDTO(res.Session),
		"receipt_link": res.ReceiptLink,
	})
}

type loginRequest struct {
	Password string `json:"password"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := readJSON(w, r, &req); err != nil {
		errorJSON(w, http.StatusBadRequest, err)
		return
	}
	token, err := s.gate.Login(req.Password)
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, jsonResponse{"token": token})
}

type upsertSessionDTO struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Date     string `json:"date"`
	Time     string `json:"time"`
	Location string `json:"location"`
	Fee      string `json:"fee"`
	Status   string `json:"status"`
	Capacity int    `json:"capacity"`
}

func (s *Server) handleUpsertSessions(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Sessions []upsertSessionDTO `json:"sessions"`
	}
	if err := readJSON(w, r, &req); err != nil {
		errorJSON(w, http.StatusBadRequest, err)
		return
	}
	sessions := make([]models.Session, 0, len(req.Sessions))
	for _, d := range req.Sessions {
		sessions = append(sessions, models.Session{
			ID:       d.ID,
			Name:     d.Name,
			Date:     d.Date,
			Time:     d.Time,
			Location: d.Location,
			Fee:      d.Fee,
			Status:   d.Status,
			Capacity: d.Capacity,
		})
	}
	saved, err := s.svc.UpsertSessions(r.Context(), sessions)
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, jsonResponse{"saved": len(saved)})
}

type ledgerEntryDTO struct {
	SessionID   string `json:"session_id"`
	SessionDate string `json:"session_date"`
	PlayerName  string `json:"player_name"`
	Phone       string `json:"phone"`
	Status      string `json:"status"`
	Fee         string `json:"fee"`
	CreatedAt   string `json:"created_at"`
	Overdue     bool   `json:"overdue,omitempty"`
	Remove      bool   `json:"remove,omitempty"`
}

func (s *Server) handleAdminLedger(w http.ResponseWriter, r *http.Request) {
	entries, err := s.svc.AdminLedger(r.Context())
	if err != nil {
		serviceError(w, err)
		return
	}
	out := make([]ledgerEntryDTO, 0, len(entries))
	for _, e := range entries {
		out = append(out, ledgerEntryDTO{
			SessionID:   e.SessionID,
			SessionDate: e.SessionDate,
			PlayerName:  e.PlayerName,
			Phone:       e.Phone,
			Status:      e.Status,
			Fee:         e.Fee,
			CreatedAt:   e.CreatedAt,
			Overdue:     e.Overdue,
		})
	}
	writeJSON(w, http.StatusOK, jsonResponse{"registrations": out})
}

func (s *Server) handleSaveLedger(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Registrations []ledgerEntryDTO `json:"registrations"`
	}
	if err := readJSON(w, r, &req); err != nil {
		errorJSON(w, http.StatusBadRequest, err)
		return
	}
	edits := make([]booking.LedgerEdit, 0, len(req.Registrations))
	for _, d := range req.Registrations {
		edits = append(edits, booking.LedgerEdit{
			Registration: models.Registration{
				SessionID:   d.SessionID,
				SessionDate: d.SessionDate,
				PlayerName:  d.PlayerName,
				Phone:       d.Phone,
				Status:      d.Status,
				Fee:         d.Fee,
				CreatedAt:   d.CreatedAt,
			},
			Remove: d.Remove,
		})
	}
	saved, err := s.svc.SaveLedger(r.Context(), edits)
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, jsonResponse{"saved": len(saved)})
}

type setStatusRequest struct {
	SessionID   string `json:"session_id"`
	SessionDate string `json:"session_date"`
	PlayerName  string `json:"player_name"`
	Status      string `json:"status"`
}

func (s *Server) handleSetStatus(w http.ResponseWriter, r *http.Request) {
	var req setStatusRequest
	if err := readJSON(w, r, &req); err != nil {
		errorJSON(w, http.StatusBadRequest, err)
		return
	}
	reg, err := s.svc.SetStatus(r.Context(), req.SessionID, req.SessionDate, req.PlayerName, req.Status)
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, jsonResponse{
		"player_name": reg.PlayerName,
		"status":      reg.Status,
	})
}
