package services

import (
	"errors"
	"time"

	"vitrine/internal/domain"
	"vitrine/internal/pipeline"
	"vitrine/internal/repos"

	"github.com/google/uuid"
)

var ErrMissingStart = errors.New("event needs a start time")

// EventView annotates an event with its derived status and calendar
// flags. The flags are independent of status: a finished event that
// started this morning is past and still today's.
type EventView struct {
	domain.Event
	Status     string `json:"status"`
	IsToday    bool   `json:"is_today"`
	IsThisWeek bool   `json:"is_this_week"`
}

type EventService struct {
	Events *repos.EventRepo
	store  *pipeline.Store[domain.Event]
}

func NewEventService(events *repos.EventRepo) *EventService {
	return &EventService{Events: events, store: pipeline.NewStore[domain.Event]()}
}

func (s *EventService) refresh() error {
	all, err := s.Events.All()
	if err != nil {
		return err
	}
	s.store.Replace(all)
	return nil
}

// List runs the event pipeline and annotates the resulting page.
func (s *EventService) List(q pipeline.Query, now time.Time) (pipeline.Page[EventView], error) {
	if err := s.refresh(); err != nil {
		return pipeline.Page[EventView]{}, err
	}
	page, err := pipeline.Run(s.store.Snapshot(), q, now)
	if err != nil {
		return pipeline.Page[EventView]{}, err
	}
	views := make([]EventView, len(page.Items))
	for i, e := range page.Items {
		views[i] = EventView{
			Event:      e,
			Status:     e.StatusAt(now),
			IsToday:    e.IsToday(now),
			IsThisWeek: e.IsThisWeek(now),
		}
	}
	return pipeline.Page[EventView]{Items: views, Page: page.Page, TotalPages: page.TotalPages}, nil
}

// Stats counts events per derived status, scoped only by organizer.
func (s *EventService) Stats(ownerID string, now time.Time) (map[string]int, error) {
	if err := s.refresh(); err != nil {
		return nil, err
	}
	records := s.store.Snapshot()
	if ownerID != "" {
		records = pipeline.Filter(records, pipeline.Criteria{OwnerID: ownerID}, now)
	}
	return pipeline.CountBy(records, func(e domain.Event) string { return e.StatusAt(now) }), nil
}

// Create stores a new event for the organizer.
func (s *EventService) Create(ownerID string, e domain.Event) (domain.Event, error) {
	if e.StartsAt == "" {
		return domain.Event{}, ErrMissingStart
	}
	e.ID = uuid.NewString()
	e.OwnerID = ownerID
	e.Active = true
	if err := s.Events.Create(e); err != nil {
		return domain.Event{}, err
	}
	return s.Events.Get(e.ID)
}

// SetActive toggles the administrative flag with the same ownership rule
// as coupons.
func (s *EventService) SetActive(id string, requester *domain.User, active bool) error {
	e, err := s.Events.Get(id)
	if err != nil {
		return err
	}
	if !requester.CanManage(e.OwnerID) {
		return ErrNotOwner
	}
	return s.Events.SetActive(id, active)
}
