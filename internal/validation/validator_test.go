package validation

import (
	"errors"
	"strings"
	"testing"

	"github.com/comment-feed-api/internal/models"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func TestValidateCreateRequest(t *testing.T) {
	validator := NewValidator()

	tests := []struct {
		name       string
		req        *models.CreateCommentRequest
		wantFields []string
	}{
		{
			name: "valid comment with image",
			req:  &models.CreateCommentRequest{Author: "Ada", Text: "ok", Image: "https://example.com/a.png"},
		},
		{
			name: "valid comment without image",
			req:  &models.CreateCommentRequest{Author: "Ada", Text: "ok"},
		},
		{
			name:       "empty text",
			req:        &models.CreateCommentRequest{Author: "Ada", Text: ""},
			wantFields: []string{"text"},
		},
		{
			name:       "whitespace text",
			req:        &models.CreateCommentRequest{Author: "Ada", Text: "   \t\n"},
			wantFields: []string{"text"},
		},
		{
			name:       "missing author",
			req:        &models.CreateCommentRequest{Text: "hello"},
			wantFields: []string{"author"},
		},
		{
			name:       "author too long",
			req:        &models.CreateCommentRequest{Author: strings.Repeat("a", 101), Text: "hello"},
			wantFields: []string{"author"},
		},
		{
			name: "author at the limit counts runes",
			req:  &models.CreateCommentRequest{Author: strings.Repeat("é", 100), Text: "hello"},
		},
		{
			name:       "image not a url",
			req:        &models.CreateCommentRequest{Author: "Ada", Text: "hello", Image: "not a url"},
			wantFields: []string{"image"},
		},
		{
			name:       "image too long",
			req:        &models.CreateCommentRequest{Author: "Ada", Text: "hello", Image: "https://example.com/" + strings.Repeat("x", 500)},
			wantFields: []string{"image"},
		},
		{
			name:       "everything wrong",
			req:        &models.CreateCommentRequest{Image: "ftp://"},
			wantFields: []string{"author", "text", "image"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.Struct(tt.req)
			if len(tt.wantFields) == 0 {
				if err != nil {
					t.Fatalf("Expected no errors, got %v", err)
				}
				return
			}

			var verrs Errors
			if !errors.As(err, &verrs) {
				t.Fatalf("Expected validation.Errors, got %T (%v)", err, err)
			}
			if len(verrs) != len(tt.wantFields) {
				t.Errorf("Expected %d field errors, got %d: %v", len(tt.wantFields), len(verrs), verrs)
			}
			for _, f := range tt.wantFields {
				if _, ok := verrs[f]; !ok {
					t.Errorf("Expected error on field %q, got %v", f, verrs)
				}
			}
		})
	}
}

func TestValidateText_EmptyMessage(t *testing.T) {
	validator := NewValidator()

	for _, text := range []string{"", "   "} {
		err := validator.Struct(&models.UpdateCommentRequest{Text: text})
		var verrs Errors
		if !errors.As(err, &verrs) {
			t.Fatalf("text %q: expected validation error, got %v", text, err)
		}
		if verrs["text"] != EmptyTextMessage {
			t.Errorf("text %q: message = %q", text, verrs["text"])
		}
	}

	if err := validator.Struct(&models.UpdateCommentRequest{Text: "ok"}); err != nil {
		t.Errorf("text \"ok\" should pass, got %v", err)
	}
}

func TestValidateEditRequest(t *testing.T) {
	validator := NewValidator()

	tests := []struct {
		name       string
		req        *models.EditCommentRequest
		wantFields []string
	}{
		{name: "text only", req: &models.EditCommentRequest{Text: "new"}},
		{name: "all fields", req: &models.EditCommentRequest{
			Author: strPtr("Bob"), Text: "new", Image: strPtr("http://img.example/x.jpg"), Likes: intPtr(7),
		}},
		{name: "clear image", req: &models.EditCommentRequest{Text: "new", Image: strPtr("")}},
		{name: "blank author", req: &models.EditCommentRequest{Author: strPtr(" "), Text: "new"}, wantFields: []string{"author"}},
		{name: "negative likes", req: &models.EditCommentRequest{Text: "new", Likes: intPtr(-1)}, wantFields: []string{"likes"}},
		{name: "likes at column limit", req: &models.EditCommentRequest{Text: "new", Likes: intPtr(models.MaxLikes)}},
		{name: "likes past column limit", req: &models.EditCommentRequest{Text: "new", Likes: intPtr(models.MaxLikes + 1)}, wantFields: []string{"likes"}},
		{name: "missing text", req: &models.EditCommentRequest{Likes: intPtr(1)}, wantFields: []string{"text"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.Struct(tt.req)
			if len(tt.wantFields) == 0 {
				if err != nil {
					t.Fatalf("Expected no errors, got %v", err)
				}
				return
			}
			var verrs Errors
			if !errors.As(err, &verrs) {
				t.Fatalf("Expected validation.Errors, got %v", err)
			}
			for _, f := range tt.wantFields {
				if _, ok := verrs[f]; !ok {
					t.Errorf("Expected error on field %q, got %v", f, verrs)
				}
			}
		})
	}
}

func TestErrors_ErrorIsSorted(t *testing.T) {
	err := Errors{"text": "b", "author": "a"}
	want := "validation failed: author: a; text: b"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestValidateLikes_RangeMessages(t *testing.T) {
	validator := NewValidator()

	err := validator.Struct(&models.EditCommentRequest{Text: "new", Likes: intPtr(models.MaxLikes + 1)})
	var verrs Errors
	if !errors.As(err, &verrs) {
		t.Fatalf("Expected validation.Errors, got %v", err)
	}
	if want := "Ensure this value is less than or equal to 2147483647."; verrs["likes"] != want {
		t.Errorf("likes message = %q, want %q", verrs["likes"], want)
	}

	err = validator.Struct(&models.CreateCommentRequest{Author: strings.Repeat("a", 101), Text: "x"})
	if !errors.As(err, &verrs) {
		t.Fatalf("Expected validation.Errors, got %v", err)
	}
	if want := "Ensure this field has no more than 100 characters."; verrs["author"] != want {
		t.Errorf("author message = %q, want %q", verrs["author"], want)
	}
}
