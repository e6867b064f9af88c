package proto

import "time"

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

type LogoutRequest struct{}

type LogoutResponse struct{}

type ProvisionRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type ProvisionResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

type AttendanceEvent struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Event     string    `json:"event"`
	Timestamp time.Time `json:"timestamp"`
}

type RecordRequest struct {
	Name  string `json:"name"`
	Event string `json:"event,omitempty"`
}

type RecordResponse struct {
	Event AttendanceEvent `json:"event"`
}

// RecordVoiceRequest carries one speech-to-text result captured on the
// client. An empty Transcript means the speech was not recognized.
type RecordVoiceRequest struct {
	Transcript string `json:"transcript"`
	Language   string `json:"language,omitempty"`
	Event      string `json:"event,omitempty"`
}

// Filter narrows a query; a nil field places no constraint.
type Filter struct {
	Name  *string `json:"name,omitempty"`
	Event *string `json:"event,omitempty"`
}

type QueryRequest struct {
	Filter Filter `json:"filter"`
}

type QueryResponse struct {
	Events []AttendanceEvent `json:"events"`
}

type CountByDayRequest struct{}

type DailyCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

type CountByDayResponse struct {
	Days []DailyCount `json:"days"`
}

type ExportReportRequest struct {
	Filter Filter `json:"filter"`
}

type ExportReportResponse struct {
	URL string `json:"url"`
}

type PingRequest struct{}

type PingResponse struct {
	Status string `json:"status"`
}
