package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/ezypuz/courseplanner/internal/app/models"
	"github.com/ezypuz/courseplanner/internal/app/models/dto"
	"github.com/ezypuz/courseplanner/internal/app/repositories"
	"github.com/ezypuz/courseplanner/internal/pkg/apperrors"
)

type postFixture struct {
	service PostService
	posts   *mockPostStore
	boards  *mockBoardStore
	boardID int64
}

func newPostFixture(t *testing.T) *postFixture {
	t.Helper()
	posts := newMockPostStore()
	boards := newMockBoardStore()
	boardID, err := boards.Create(context.Background(), &models.Board{Name: "general"})
	if err != nil {
		t.Fatalf("create board: %v", err)
	}
	return &postFixture{
		service: NewPostService(posts, boards, zerolog.Nop()),
		posts:   posts,
		boards:  boards,
		boardID: boardID,
	}
}

func TestCreatePostBlankTitle(t *testing.T) {
	f := newPostFixture(t)

	_, err := f.service.CreatePost(context.Background(), 1, f.boardID, &dto.CreatePostRequest{Title: "  "})
	if !errors.Is(err, apperrors.ErrPostTitleBlank) {
		t.Fatalf("got %v, want ErrPostTitleBlank", err)
	}
}

func TestCreatePostBoardNotFound(t *testing.T) {
	f := newPostFixture(t)

	_, err := f.service.CreatePost(context.Background(), 1, 99, &dto.CreatePostRequest{Title: "hello"})
	if !errors.Is(err, apperrors.ErrBoardNotFound) {
		t.Fatalf("got %v, want ErrBoardNotFound", err)
	}
}

func TestUpdatePostExistenceBeforeOwnership(t *testing.T) {
	f := newPostFixture(t)

	// A missing post reports 404 even to a caller who would not own it.
	_, err := f.service.UpdatePost(context.Background(), 2, 99, &dto.UpdatePostRequest{Title: "x"})
	if !errors.Is(err, apperrors.ErrPostNotFound) {
		t.Fatalf("got %v, want ErrPostNotFound", err)
	}

	created, err := f.service.CreatePost(context.Background(), 1, f.boardID, &dto.CreatePostRequest{Title: "hello"})
	if err != nil {
		t.Fatalf("CreatePost: %v", err)
	}

	_, err = f.service.UpdatePost(context.Background(), 2, created.ID, &dto.UpdatePostRequest{Title: "x"})
	if !errors.Is(err, apperrors.ErrPostUpdateForbidden) {
		t.Fatalf("got %v, want ErrPostUpdateForbidden", err)
	}
}

func TestDeletePostForeignUser(t *testing.T) {
	f := newPostFixture(t)

	created, err := f.service.CreatePost(context.Background(), 1, f.boardID, &dto.CreatePostRequest{Title: "hello"})
	if err != nil {
		t.Fatalf("CreatePost: %v", err)
	}

	if err := f.service.DeletePost(context.Background(), 2, created.ID); !errors.Is(err, apperrors.ErrPostDeleteForbidden) {
		t.Fatalf("got %v, want ErrPostDeleteForbidden", err)
	}
	if err := f.service.DeletePost(context.Background(), 1, created.ID); err != nil {
		t.Fatalf("owner DeletePost: %v", err)
	}
}

func TestListPostsBoardNotFound(t *testing.T) {
	f := newPostFixture(t)

	_, err := f.service.ListPosts(context.Background(), 99, nil, 10)
	if !errors.Is(err, apperrors.ErrBoardNotFound) {
		t.Fatalf("got %v, want ErrBoardNotFound", err)
	}
}

func TestListPostsCursorPagination(t *testing.T) {
	f := newPostFixture(t)

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		_, err := f.posts.Create(context.Background(), &models.Post{
			BoardID:   f.boardID,
			UserID:    1,
			Title:     fmt.Sprintf("post %d", i),
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
		if err != nil {
			t.Fatalf("create post %d: %v", i, err)
		}
	}

	// First page: newest first, full page carries the next cursor.
	page1, err := f.service.ListPosts(context.Background(), f.boardID, nil, 2)
	if err != nil {
		t.Fatalf("ListPosts page 1: %v", err)
	}
	if len(page1.Posts) != 2 {
		t.Fatalf("page 1: got %d posts, want 2", len(page1.Posts))
	}
	if page1.Posts[0].Title != "post 4" || page1.Posts[1].Title != "post 3" {
		t.Fatalf("page 1 order wrong: %q, %q", page1.Posts[0].Title, page1.Posts[1].Title)
	}
	if page1.NextCreatedAt == nil || page1.NextID == nil {
		t.Fatal("page 1: next cursor missing on a full page")
	}

	page2, err := f.service.ListPosts(context.Background(), f.boardID,
		&repositories.PostCursor{CreatedAt: *page1.NextCreatedAt, ID: *page1.NextID}, 2)
	if err != nil {
		t.Fatalf("ListPosts page 2: %v", err)
	}
	if page2.Posts[0].Title != "post 2" || page2.Posts[1].Title != "post 1" {
		t.Fatalf("page 2 order wrong: %q, %q", page2.Posts[0].Title, page2.Posts[1].Title)
	}

	// Last page is short and carries no cursor.
	page3, err := f.service.ListPosts(context.Background(), f.boardID,
		&repositories.PostCursor{CreatedAt: *page2.NextCreatedAt, ID: *page2.NextID}, 2)
	if err != nil {
		t.Fatalf("ListPosts page 3: %v", err)
	}
	if len(page3.Posts) != 1 || page3.Posts[0].Title != "post 0" {
		t.Fatalf("page 3: got %d posts, want the single oldest post", len(page3.Posts))
	}
	if page3.NextCreatedAt != nil || page3.NextID != nil {
		t.Fatal("page 3: short page must not carry a next cursor")
	}
}

func TestBoardServiceCreateAndList(t *testing.T) {
	boards := newMockBoardStore()
	service := NewBoardService(boards, zerolog.Nop())

	if _, err := service.CreateBoard(context.Background(), &dto.CreateBoardRequest{Name: " "}); !errors.Is(err, apperrors.ErrBoardNameBlank) {
		t.Fatalf("got %v, want ErrBoardNameBlank", err)
	}

	if _, err := service.CreateBoard(context.Background(), &dto.CreateBoardRequest{Name: "general"}); err != nil {
		t.Fatalf("CreateBoard: %v", err)
	}
	if _, err := service.CreateBoard(context.Background(), &dto.CreateBoardRequest{Name: "general"}); !errors.Is(err, apperrors.ErrBoardNameTaken) {
		t.Fatalf("got %v, want ErrBoardNameTaken", err)
	}

	list, err := service.ListBoards(context.Background())
	if err != nil {
		t.Fatalf("ListBoards: %v", err)
	}
	if len(list) != 1 || list[0].Name != "general" {
		t.Fatalf("unexpected board list: %+v", list)
	}
}
