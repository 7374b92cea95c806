package pages

import (
	"context"
	"math"
	"sync"

	"github.com/isdelr/ecolearn/internal/models"
	"github.com/isdelr/ecolearn/internal/services"
)

// Lesson walks through the sections of one learning path.
type Lesson struct {
	*Loader[models.PathDetail]

	mu      sync.Mutex
	current int
}

// NewLesson creates a Lesson controller for pathID.
func NewLesson(svc services.LearningServiceProvider, pathID string) *Lesson {
	l := &Lesson{}
	l.Loader = NewLoader[models.PathDetail]("lesson", func(ctx context.Context) (models.PathDetail, error) {
		return svc.GetPathByID(ctx, pathID)
	})
	l.Subscribe(func(s Snapshot[models.PathDetail]) {
		if s.Status == Ready {
			l.mu.Lock()
			l.current = 0
			l.mu.Unlock()
		}
	})
	return l
}

// Current returns the section being read. ok is false until the lesson is loaded.
func (l *Lesson) Current() (section models.LessonSection, index int, ok bool) {
	sections := l.sections()
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.current >= len(sections) {
		return models.LessonSection{}, l.current, false
	}
	return sections[l.current], l.current, true
}

// Next moves to the following section. On the last section it returns the route to leave
// to instead; otherwise it returns "".
func (l *Lesson) Next() string {
	sections := l.sections()
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(sections) == 0 {
		return ""
	}
	if l.current < len(sections)-1 {
		l.current++
		return ""
	}
	return RouteLearning
}

// Previous moves back one section, stopping at the first.
func (l *Lesson) Previous() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.current > 0 {
		l.current--
	}
}

// Progress reports the 1-based position among total sections and the rounded percentage.
func (l *Lesson) Progress() (position, total, percent int) {
	total = len(l.sections())
	if total == 0 {
		return 0, 0, 0
	}
	l.mu.Lock()
	position = l.current + 1
	l.mu.Unlock()
	return position, total, int(math.Round(float64(position) / float64(total) * 100))
}

func (l *Lesson) sections() []models.LessonSection {
	snap := l.Snapshot()
	if snap.Status != Ready {
		return nil
	}
	return snap.Data.Sections
}
