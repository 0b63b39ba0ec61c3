package mocks

import (
	"context"
	"sort"
	"sync"

	"github.com/comment-feed-api/internal/models"
)

// MockCommentRepository is an in-memory implementation of CommentRepository
type MockCommentRepository struct {
	mu sync.Mutex

	Comments map[int64]*models.Comment
	NextID   int64

	// Injected failures
	ListError    error
	GetError     error
	InsertError  error
	UpdateError  error
	DeleteError  error
	ReplaceError error

	UpdateCalls     int
	ReplaceAllCalls int
}

func NewMockCommentRepository() *MockCommentRepository {
	return &MockCommentRepository{
		Comments: make(map[int64]*models.Comment),
		NextID:   1,
	}
}

func clone(c *models.Comment) *models.Comment {
	out := *c
	if c.UpdatedAt != nil {
		t := *c.UpdatedAt
		out.UpdatedAt = &t
	}
	return &out
}

func (m *MockCommentRepository) sorted() []*models.Comment {
	out := make([]*models.Comment, 0, len(m.Comments))
	for _, c := range m.Comments {
		out = append(out, clone(c))
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].ID > out[j].ID
	})
	return out
}

func (m *MockCommentRepository) List(ctx context.Context) ([]*models.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ListError != nil {
		return nil, m.ListError
	}
	return m.sorted(), nil
}

func (m *MockCommentRepository) GetByID(ctx context.Context, id int64) (*models.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetError != nil {
		return nil, m.GetError
	}
	c, ok := m.Comments[id]
	if !ok {
		return nil, nil
	}
	return clone(c), nil
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.InsertError != nil {
		return m.InsertError
	}
	comment.ID = m.NextID
	m.NextID++
	m.Comments[comment.ID] = clone(comment)
	return nil
}

func (m *MockCommentRepository) Update(ctx context.Context, comment *models.Comment) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpdateCalls++
	if m.UpdateError != nil {
		return false, m.UpdateError
	}
	stored, ok := m.Comments[comment.ID]
	if !ok {
		return false, nil
	}
	next := clone(comment)
	next.Date = stored.Date
	m.Comments[comment.ID] = next
	return true, nil
}

func (m *MockCommentRepository) Delete(ctx context.Context, id int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.DeleteError != nil {
		return false, m.DeleteError
	}
	if _, ok := m.Comments[id]; !ok {
		return false, nil
	}
	delete(m.Comments, id)
	return true, nil
}

func (m *MockCommentRepository) ReplaceAll(ctx context.Context, comments []*models.Comment) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ReplaceAllCalls++
	if m.ReplaceError != nil {
		return 0, m.ReplaceError
	}
	m.Comments = make(map[int64]*models.Comment, len(comments))
	for _, c := range comments {
		c.ID = m.NextID
		m.NextID++
		m.Comments[c.ID] = clone(c)
	}
	return len(comments), nil
}

func (m *MockCommentRepository) Count(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Comments), nil
}

func (m *MockCommentRepository) StreamAll(ctx context.Context, callback func(*models.Comment) error) error {
	m.mu.Lock()
	comments := m.sorted()
	m.mu.Unlock()

	for _, c := range comments {
		if err := callback(c); err != nil {
			return err
		}
	}
	return nil
}
