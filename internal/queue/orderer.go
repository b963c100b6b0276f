package queue

import (
	"sort"
	"time"

	"backend-triage/internal/models"
)

const DefaultAverageServiceMinutes = 10

// Orderer projects a snapshot into the serving order. It holds no state
// besides the average service duration, so every call recomputes from scratch.
type Orderer struct {
	avgServiceMinutes int
}

func NewOrderer(avgServiceMinutes int) Orderer {
	if avgServiceMinutes <= 0 {
		avgServiceMinutes = DefaultAverageServiceMinutes
	}
	return Orderer{avgServiceMinutes: avgServiceMinutes}
}

func (o Orderer) AverageServiceMinutes() int {
	return o.avgServiceMinutes
}

// Project expects records in Store.Snapshot order. Equal urgency and equal
// arrival keep submission order; done records completed at the same instant
// are listed latest completion first.
func (o Orderer) Project(records []models.Patient, now time.Time) models.QueueView {
	waiting := make([]models.Patient, 0, len(records))
	var nowServing *models.Patient
	var completed []models.Patient

	for _, p := range records {
		switch p.Status {
		case models.StatusWaiting:
			waiting = append(waiting, p)
		case models.StatusServing:
			served := p
			nowServing = &served
		case models.StatusDone:
			completed = append(completed, p)
		}
	}

	sort.SliceStable(waiting, func(i, j int) bool {
		return Less(waiting[i], waiting[j])
	})

	queue := make([]models.QueueEntry, len(waiting))
	for i, p := range waiting {
		queue[i] = models.QueueEntry{
			Patient:              p,
			Position:             i + 1,
			EstimatedWaitMinutes: i * o.avgServiceMinutes,
		}
	}

	for i, j := 0, len(completed)-1; i < j; i, j = i+1, j-1 {
		completed[i], completed[j] = completed[j], completed[i]
	}
	sort.SliceStable(completed, func(i, j int) bool {
		return completed[i].CompletedAt.After(*completed[j].CompletedAt)
	})
	if completed == nil {
		completed = []models.Patient{}
	}

	return models.QueueView{
		NowServing:            nowServing,
		Queue:                 queue,
		TotalWaiting:          len(queue),
		AverageServiceMinutes: o.avgServiceMinutes,
		RecentlyCompleted:     completed,
		GeneratedAt:           now,
	}
}

// Less orders by urgency weight descending, then arrival ascending.
func Less(a, b models.Patient) bool {
	if wa, wb := a.Urgency.Weight(), b.Urgency.Weight(); wa != wb {
		return wa > wb
	}
	return a.ArrivalTime.Before(b.ArrivalTime)
}
