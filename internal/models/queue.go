package models

import (
	"time"
)

// Urgency - kelas urgensi pasien, menentukan urutan layanan
type Urgency string

const (
	UrgencyCritical Urgency = "critical"
	UrgencyHigh     Urgency = "high"
	UrgencyNormal   Urgency = "normal"
	UrgencyLow      Urgency = "low"
)

var urgencyWeights = map[Urgency]int{
	UrgencyCritical: 4,
	UrgencyHigh:     3,
	UrgencyNormal:   2,
	UrgencyLow:      1,
}

// Weight - bobot prioritas; makin besar makin cepat dilayani. Nilai tak dikenal = 0
func (u Urgency) Weight() int {
	return urgencyWeights[u]
}

func (u Urgency) Valid() bool {
	_, ok := urgencyWeights[u]
	return ok
}

type Status string

const (
	StatusWaiting Status = "waiting"
	StatusServing Status = "serving"
	StatusDone    Status = "done"
)

type Patient struct {
	ID          string     `json:"id"`
	Token       string     `json:"token"`
	Name        string     `json:"name"`
	Urgency     Urgency    `json:"urgency"`
	Reason      string     `json:"reason"`
	ArrivalTime time.Time  `json:"arrivalTime"`
	Status      Status     `json:"status"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

// Clone - salinan penuh, CompletedAt tidak ikut dibagi
func (p Patient) Clone() Patient {
	if p.CompletedAt != nil {
		at := *p.CompletedAt
		p.CompletedAt = &at
	}
	return p
}

// QueueEntry - pasien yang menunggu plus posisi dan estimasi waktu tunggu
type QueueEntry struct {
	Patient
	Position             int `json:"position"`
	EstimatedWaitMinutes int `json:"estimatedWaitMinutes"`
}

// QueueView - proyeksi antrian yang dihitung ulang di setiap pembacaan
type QueueView struct {
	NowServing            *Patient     `json:"nowServing"`
	Queue                 []QueueEntry `json:"queue"`
	TotalWaiting          int          `json:"totalWaiting"`
	AverageServiceMinutes int          `json:"avgServiceMinutes"`
	RecentlyCompleted     []Patient    `json:"recentlyCompleted"`
	GeneratedAt           time.Time    `json:"generatedAt"`
}

/*
|--------------------------------------------------------------------------
| REQUEST / RESPONSE
|--------------------------------------------------------------------------
*/
type SubmitPatientRequest struct {
	Name    string `json:"name"`
	Urgency string `json:"urgency"`
	Reason  string `json:"reason"`
}

type SubmitPatientResponse struct {
	Message string  `json:"message"`
	Token   string  `json:"token"`
	Patient Patient `json:"patient"`
}

type PatientResponse struct {
	Message string  `json:"message"`
	Patient Patient `json:"patient"`
}
