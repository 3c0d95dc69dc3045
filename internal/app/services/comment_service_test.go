package services

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/ezypuz/courseplanner/internal/app/models"
	"github.com/ezypuz/courseplanner/internal/app/models/dto"
	"github.com/ezypuz/courseplanner/internal/pkg/apperrors"
)

type commentFixture struct {
	service CommentService
	postID  int64
}

func newCommentFixture(t *testing.T) *commentFixture {
	t.Helper()
	comments := newMockCommentStore()
	posts := newMockPostStore()
	postID, err := posts.Create(context.Background(), &models.Post{BoardID: 1, UserID: 1, Title: "hello"})
	if err != nil {
		t.Fatalf("create post: %v", err)
	}
	return &commentFixture{
		service: NewCommentService(comments, posts, zerolog.Nop()),
		postID:  postID,
	}
}

func TestCreateCommentBlankContent(t *testing.T) {
	f := newCommentFixture(t)

	_, err := f.service.CreateComment(context.Background(), 1, f.postID, &dto.CreateCommentRequest{Content: "  "})
	if !errors.Is(err, apperrors.ErrCommentBlank) {
		t.Fatalf("got %v, want ErrCommentBlank", err)
	}
}

func TestCreateCommentPostNotFound(t *testing.T) {
	f := newCommentFixture(t)

	_, err := f.service.CreateComment(context.Background(), 1, 99, &dto.CreateCommentRequest{Content: "hi"})
	if !errors.Is(err, apperrors.ErrPostNotFound) {
		t.Fatalf("got %v, want ErrPostNotFound", err)
	}
}

func TestListCommentsOldestFirst(t *testing.T) {
	f := newCommentFixture(t)

	for _, content := range []string{"first", "second", "third"} {
		if _, err := f.service.CreateComment(context.Background(), 1, f.postID, &dto.CreateCommentRequest{Content: content}); err != nil {
			t.Fatalf("CreateComment %q: %v", content, err)
		}
	}

	list, err := f.service.ListComments(context.Background(), f.postID)
	if err != nil {
		t.Fatalf("ListComments: %v", err)
	}
	want := []string{"first", "second", "third"}
	if len(list) != len(want) {
		t.Fatalf("got %d comments, want %d", len(list), len(want))
	}
	for i, content := range want {
		if list[i].Content != content {
			t.Fatalf("position %d: got %q, want %q", i, list[i].Content, content)
		}
	}
}

func TestListCommentsPostNotFound(t *testing.T) {
	f := newCommentFixture(t)

	_, err := f.service.ListComments(context.Background(), 99)
	if !errors.Is(err, apperrors.ErrPostNotFound) {
		t.Fatalf("got %v, want ErrPostNotFound", err)
	}
}

func TestUpdateCommentExistenceBeforeOwnership(t *testing.T) {
	f := newCommentFixture(t)

	_, err := f.service.UpdateComment(context.Background(), 2, 99, &dto.UpdateCommentRequest{Content: "x"})
	if !errors.Is(err, apperrors.ErrCommentNotFound) {
		t.Fatalf("got %v, want ErrCommentNotFound", err)
	}

	created, err := f.service.CreateComment(context.Background(), 1, f.postID, &dto.CreateCommentRequest{Content: "hi"})
	if err != nil {
		t.Fatalf("CreateComment: %v", err)
	}

	_, err = f.service.UpdateComment(context.Background(), 2, created.ID, &dto.UpdateCommentRequest{Content: "x"})
	if !errors.Is(err, apperrors.ErrCommentUpdateForbidden) {
		t.Fatalf("got %v, want ErrCommentUpdateForbidden", err)
	}
}

func TestDeleteCommentForeignUser(t *testing.T) {
	f := newCommentFixture(t)

	created, err := f.service.CreateComment(context.Background(), 1, f.postID, &dto.CreateCommentRequest{Content: "hi"})
	if err != nil {
		t.Fatalf("CreateComment: %v", err)
	}

	if err := f.service.DeleteComment(context.Background(), 2, created.ID); !errors.Is(err, apperrors.ErrCommentDeleteForbidden) {
		t.Fatalf("got %v, want ErrCommentDeleteForbidden", err)
	}
	if err := f.service.DeleteComment(context.Background(), 1, created.ID); err != nil {
		t.Fatalf("owner DeleteComment: %v", err)
	}
}
