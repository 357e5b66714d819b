// internal/services/session_service.go
package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/javajoker/dress-catalog/internal/browse"
	"github.com/javajoker/dress-catalog/internal/models"
)

var ErrSessionNotFound = errors.New("session not found")

type browseSession struct {
	controller *browse.Controller
	lastSeen   time.Time
}

// SessionService keeps one browse controller per visitor, keyed by a generated id.
type SessionService struct {
	catalog  *CatalogService
	ttl      time.Duration
	now      func() time.Time
	mtx      sync.Mutex
	sessions map[string]*browseSession
}

type SessionView struct {
	ID string `json:"id"`
	models.CatalogView
}

func NewSessionService(catalog *CatalogService, ttl time.Duration) *SessionService {
	return &SessionService{
		catalog:  catalog,
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[string]*browseSession),
	}
}

// Create starts a session whose spec is read from location, e.g. "/?q=satin&sort=rating".
func (s *SessionService) Create(location string) SessionView {
	controller := browse.NewController(browse.NewMemoryLocation(location), s.catalog.Defaults())
	id := uuid.NewString()

	controller.OnChange(func(spec models.FilterSpec) {
		logrus.WithFields(logrus.Fields{
			"session_id": id,
			"location":   controller.Location(),
		}).Debug("Browse spec changed")
	})

	s.mtx.Lock()
	s.sessions[id] = &browseSession{controller: controller, lastSeen: s.now()}
	s.mtx.Unlock()

	return s.view(id, controller)
}

func (s *SessionService) Get(id string) (SessionView, error) {
	controller, err := s.controller(id)
	if err != nil {
		return SessionView{}, err
	}
	return s.view(id, controller), nil
}

// Apply runs fn against the session's controller and returns the refreshed view.
func (s *SessionService) Apply(id string, fn func(*browse.Controller)) (SessionView, error) {
	controller, err := s.controller(id)
	if err != nil {
		return SessionView{}, err
	}
	fn(controller)
	return s.view(id, controller), nil
}

func (s *SessionService) Update(id string, u browse.Update) (SessionView, error) {
	return s.Apply(id, func(c *browse.Controller) { c.Apply(u) })
}

func (s *SessionService) SelectBrand(id, brand string) (SessionView, error) {
	return s.Apply(id, func(c *browse.Controller) { c.SelectBrand(brand) })
}

func (s *SessionService) DeselectBrand(id, brand string) (SessionView, error) {
	return s.Apply(id, func(c *browse.Controller) { c.DeselectBrand(brand) })
}

func (s *SessionService) ClearBrands(id string) (SessionView, error) {
	return s.Apply(id, func(c *browse.Controller) { c.ClearBrands() })
}

func (s *SessionService) Count() int {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	return len(s.sessions)
}

// Sweep drops sessions idle for longer than the ttl and returns how many went.
func (s *SessionService) Sweep() int {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	removed := 0
	cutoff := s.now().Add(-s.ttl)
	for id, sess := range s.sessions {
		if sess.lastSeen.Before(cutoff) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// RunSweeper sweeps every interval until ctx is done.
func (s *SessionService) RunSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Sweep(); n > 0 {
				logrus.WithField("removed", n).Debug("Swept idle browse sessions")
			}
		}
	}
}

func (s *SessionService) controller(id string) (*browse.Controller, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	sess.lastSeen = s.now()
	return sess.controller, nil
}

func (s *SessionService) view(id string, c *browse.Controller) SessionView {
	spec := c.Spec()
	view := s.catalog.View(spec, pathOf(c.Location()))
	view.Location = c.Location()
	return SessionView{ID: id, CatalogView: view}
}

func pathOf(location string) string {
	path, _, _ := strings.Cut(location, "?")
	if path == "" {
		return "/"
	}
	return path
}
