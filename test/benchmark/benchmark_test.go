package benchmark

import (
	"bytes"
	"context"
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/comment-feed-api/internal/mocks"
	"github.com/comment-feed-api/internal/models"
	"github.com/comment-feed-api/internal/repository"
	"github.com/comment-feed-api/internal/seed"
	"github.com/comment-feed-api/internal/service"
	"github.com/comment-feed-api/internal/validation"
	"github.com/rs/zerolog"
)

func populate(n int) *mocks.MockCommentRepository {
	repo := mocks.NewMockCommentRepository()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		repo.Create(context.Background(), &models.Comment{
			Author: fmt.Sprintf("user%06d", i),
			Text:   fmt.Sprintf("comment body %d", i),
			Date:   base.Add(time.Duration(i) * time.Second),
			Likes:  i % 50,
		})
	}
	return repo
}

// BenchmarkStreamComments benchmarks streaming export performance
func BenchmarkStreamComments(b *testing.B) {
	repo := populate(1000)
	exports := service.NewServices(&repository.Repositories{Comment: repo}, zerolog.Nop()).Export

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		w := httptest.NewRecorder()
		if err := exports.StreamComments(context.Background(), w, service.FormatNDJSON); err != nil {
			b.Fatal(err)
		}
	}

	b.ReportMetric(float64(1000*b.N)/b.Elapsed().Seconds(), "rows/sec")
}

// BenchmarkListComments benchmarks the newest-first listing
func BenchmarkListComments(b *testing.B) {
	repo := populate(1000)
	ctx := context.Background()

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		if _, err := repo.List(ctx); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkValidation benchmarks request validation
func BenchmarkValidation(b *testing.B) {
	v := validation.NewValidator()
	req := &models.CreateCommentRequest{
		Author: "Test User",
		Text:   "A perfectly ordinary comment",
		Image:  "https://img.example/avatar.png",
	}

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		if err := v.Struct(req); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkSeedParse benchmarks decoding a seed document
func BenchmarkSeedParse(b *testing.B) {
	var buf bytes.Buffer
	buf.WriteString(`{"comments":[`)
	for i := 0; i < 1000; i++ {
		if i > 0 {
			buf.WriteByte(',')
		}
		fmt.Fprintf(&buf, `{"author":"user%d","text":"text %d","date":"2023-0%d-1%dT10:00:00Z","likes":%d}`, i, i, i%9+1, i%9, i)
	}
	buf.WriteString(`]}`)
	doc := buf.Bytes()

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		comments, err := seed.Parse(bytes.NewReader(doc))
		if err != nil {
			b.Fatal(err)
		}
		if len(comments) != 1000 {
			b.Fatalf("expected 1000 comments, got %d", len(comments))
		}
	}

	b.ReportMetric(float64(1000*b.N)/b.Elapsed().Seconds(), "rows/sec")
}

// BenchmarkSeedReplace benchmarks an in-memory wipe and reload
func BenchmarkSeedReplace(b *testing.B) {
	repo := mocks.NewMockCommentRepository()
	loader := seed.NewLoader(repo, zerolog.Nop())
	doc := []byte(`{"comments":[{"author":"A","text":"hi","date":"2023-01-01","likes":1},{"author":"B","text":"yo","date":"2023-01-02","likes":2}]}`)

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		if _, err := loader.Load(context.Background(), bytes.NewReader(doc)); err != nil {
			b.Fatal(err)
		}
	}
}
