// Package model holds the roster entities and the request payloads
// accepted by the API.
package model

import "time"

// Default time window for a specialist and arrival time for an applicant.
const (
	DefaultStartTime   = "00:00:00"
	DefaultEndTime     = "23:59:59"
	DefaultArrivalTime = "00:00:00"
)

// Specialist works a daily window and serves the applicants bound to them.
// Applicants are listed in bind order, skills in attach order.
type Specialist struct {
	ID         string   `json:"specialistID"`
	Name       string   `json:"name"`
	StartTime  string   `json:"start_time"`
	EndTime    string   `json:"end_time"`
	Applicants []string `json:"applicants"`
	Skills     []string `json:"skills"`
}

// Applicant arrives at a time of day and may be bound to one specialist.
type Applicant struct {
	ID           string   `json:"applicantID"`
	Name         string   `json:"name"`
	ArrivalTime  string   `json:"arrival_time"`
	SpecialistID *string  `json:"specialistID"`
	Skills       []string `json:"skills"`
}

type Skill struct {
	ID   string `json:"skillID"`
	Name string `json:"name"`
}

// Pack is the whole roster returned by GET /pack.
type Pack struct {
	Specialists []Specialist `json:"specialists"`
	Applicants  []Applicant  `json:"applicants"`
	Skills      []Skill      `json:"skills"`
}

// AuditEvent records one completed mutating request.
type AuditEvent struct {
	RequestID  string    `json:"request_id"`
	Method     string    `json:"method"`
	Path       string    `json:"path"`
	Status     int       `json:"status"`
	LatencyMs  int64     `json:"latency_ms"`
	OccurredAt time.Time `json:"occurred_at"`
}
