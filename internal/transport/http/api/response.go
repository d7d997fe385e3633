package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

const (
	ToastCreate = "create"
	ToastUpdate = "update"
	ToastDelete = "delete"
	ToastError  = "error"
)

// Toast acknowledges a write.
type Toast struct {
	ToastType string `json:"toastType"`
	Message   string `json:"message"`
}

type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type ErrorEnvelope struct {
	ToastType string `json:"toastType"`
	Message   string `json:"message"`
	Error     Error  `json:"error"`
	RequestID string `json:"requestId,omitempty"`
}

type PageInfo struct {
	TotalRecord int  `json:"total_record"`
	CurrentPage int  `json:"current_page"`
	TotalPage   int  `json:"total_page"`
	NextPage    *int `json:"next_page"`
	PrevPage    *int `json:"prev_page"`
}

type Paginated struct {
	Data       any      `json:"data"`
	Pagination PageInfo `json:"pagination"`
}

func WriteJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Warn("write json failed", "err", err)
	}
}

// Success writes rows or a single row as they are, without an envelope.
func Success(w http.ResponseWriter, data any) {
	WriteJSON(w, http.StatusOK, data)
}

func Created(w http.ResponseWriter, message string) {
	WriteJSON(w, http.StatusCreated, Toast{ToastType: ToastCreate, Message: message})
}

func Updated(w http.ResponseWriter, message string) {
	WriteJSON(w, http.StatusOK, Toast{ToastType: ToastUpdate, Message: message})
}

func Deleted(w http.ResponseWriter, message string) {
	WriteJSON(w, http.StatusOK, Toast{ToastType: ToastDelete, Message: message})
}

func Fail(w http.ResponseWriter, status int, code, message, requestID string) {
	FailWithDetails(w, status, code, message, nil, requestID)
}

func FailWithDetails(w http.ResponseWriter, status int, code, message string, details any, requestID string) {
	WriteJSON(w, status, ErrorEnvelope{
		ToastType: ToastError,
		Message:   message,
		Error:     Error{Code: code, Message: message, Details: details},
		RequestID: requestID,
	})
}

// Page builds the pagination block for a page of limit rows out of total.
func Page(total, page, limit int) PageInfo {
	info := PageInfo{TotalRecord: total, CurrentPage: page}
	if limit > 0 {
		info.TotalPage = (total + limit - 1) / limit
	}
	if page < info.TotalPage {
		next := page + 1
		info.NextPage = &next
	}
	if page > 1 {
		prev := page - 1
		info.PrevPage = &prev
	}
	return info
}
