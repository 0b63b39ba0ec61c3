package mocks

import (
	"context"
	"net/http"

	"github.com/comment-feed-api/internal/models"
)

// MockCommentService returns Err from every call; used to exercise handler failure paths
type MockCommentService struct {
	Err error
}

func (m *MockCommentService) List(ctx context.Context) ([]*models.Comment, error) {
	return nil, m.Err
}

func (m *MockCommentService) Get(ctx context.Context, id int64) (*models.Comment, error) {
	return nil, m.Err
}

func (m *MockCommentService) Create(ctx context.Context, req *models.CreateCommentRequest) (*models.Comment, error) {
	return nil, m.Err
}

func (m *MockCommentService) Update(ctx context.Context, id int64, req *models.UpdateCommentRequest) (*models.Comment, error) {
	return nil, m.Err
}

func (m *MockCommentService) Edit(ctx context.Context, id int64, req *models.EditCommentRequest) (*models.Comment, error) {
	return nil, m.Err
}

func (m *MockCommentService) Delete(ctx context.Context, id int64) error {
	return m.Err
}

// MockExportService is a mock implementation of ExportService
type MockExportService struct {
	Count       int
	StreamError error
	Formats     []string
}

func NewMockExportService() *MockExportService {
	return &MockExportService{}
}

func (m *MockExportService) StreamComments(ctx context.Context, w http.ResponseWriter, format string) error {
	m.Formats = append(m.Formats, format)
	if m.StreamError != nil {
		return m.StreamError
	}
	w.Header().Set("Content-Type", "application/x-ndjson")
	_, err := w.Write([]byte("{}\n"))
	return err
}

func (m *MockExportService) GetCount(ctx context.Context) (int, error) {
	return m.Count, nil
}
