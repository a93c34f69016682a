package board

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type stubPostService struct {
	posts []Post
	post  *Post
	err   error
}

func (s *stubPostService) List(ctx context.Context) ([]Post, error) {
	return s.posts, s.err
}

func (s *stubPostService) Get(ctx context.Context, id string) (*Post, error) {
	return s.post, s.err
}

func (s *stubPostService) Create(ctx context.Context, title, content string) (*Post, error) {
	return s.post, s.err
}

func (s *stubPostService) Update(ctx context.Context, id, title, content string) (*Post, error) {
	return s.post, s.err
}

func (s *stubPostService) Delete(ctx context.Context, id string) error {
	return s.err
}

func TestListHandlerSuccess(t *testing.T) {
	gin.SetMode(gin.TestMode)
	service := &stubPostService{
		posts: []Post{
			{ID: primitive.NewObjectID(), Title: "t1", Content: "c1"},
			{ID: primitive.NewObjectID(), Title: "t2", Content: "c2"},
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/list", nil)
	rec := httptest.NewRecorder()

	router := gin.New()
	router.GET("/list", ListHandler(service))
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d body=%s", rec.Code, rec.Body.String())
	}

	var payload []Post
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if len(payload) != 2 {
		t.Fatalf("unexpected post count: %d", len(payload))
	}
}

func TestListHandlerStoreFault(t *testing.T) {
	gin.SetMode(gin.TestMode)
	service := &stubPostService{err: errors.New("connection reset")}

	req := httptest.NewRequest(http.MethodGet, "/list", nil)
	rec := httptest.NewRecorder()

	router := gin.New()
	router.GET("/list", ListHandler(service))
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("unexpected status: %d", rec.Code)
	}

	var payload map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if payload["error"] == "" {
		t.Fatal("expected error field in response")
	}
	// 内部エラーの詳細はクライアントへ返さない
	if payload["error"] == "connection reset" {
		t.Fatal("internal error detail leaked to client")
	}
}

func TestGetHandlerSuccess(t *testing.T) {
	gin.SetMode(gin.TestMode)
	service := &stubPostService{
		post: &Post{ID: primitive.NewObjectID(), Title: "t", Content: "c"},
	}

	req := httptest.NewRequest(http.MethodGet, "/content/"+service.post.ID.Hex(), nil)
	rec := httptest.NewRecorder()

	router := gin.New()
	router.GET("/content/:id", GetHandler(service))
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d body=%s", rec.Code, rec.Body.String())
	}

	var payload Post
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if payload.Title != "t" || payload.Content != "c" {
		t.Fatalf("unexpected post: %+v", payload)
	}
}

func TestGetHandlerNotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)
	service := &stubPostService{err: ErrNotFound}

	req := httptest.NewRequest(http.MethodGet, "/content/no-such-id", nil)
	rec := httptest.NewRecorder()

	router := gin.New()
	router.GET("/content/:id", GetHandler(service))
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
}

func TestCreateHandlerSuccess(t *testing.T) {
	gin.SetMode(gin.TestMode)
	service := &stubPostService{
		post: &Post{ID: primitive.NewObjectID(), Title: "t", Content: "c"},
	}

	body := bytes.NewBufferString(`{"title":"t","content":"c"}`)
	req := httptest.NewRequest(http.MethodPost, "/content", body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router := gin.New()
	router.POST("/content", CreateHandler(service))
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("unexpected status: %d body=%s", rec.Code, rec.Body.String())
	}

	var payload Post
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if payload.ID.IsZero() {
		t.Fatal("expected assigned id in response")
	}
	if payload.Title != "t" || payload.Content != "c" {
		t.Fatalf("unexpected post: %+v", payload)
	}
}

func TestCreateHandlerMissingFields(t *testing.T) {
	gin.SetMode(gin.TestMode)
	service := &stubPostService{err: &ValidationError{Message: "タイトルと内容は必須です"}}

	body := bytes.NewBufferString(`{"title":"t"}`)
	req := httptest.NewRequest(http.MethodPost, "/content", body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router := gin.New()
	router.POST("/content", CreateHandler(service))
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
}

func TestCreateHandlerInvalidJSON(t *testing.T) {
	gin.SetMode(gin.TestMode)
	service := &stubPostService{}

	body := bytes.NewBufferString(`not-json`)
	req := httptest.NewRequest(http.MethodPost, "/content", body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router := gin.New()
	router.POST("/content", CreateHandler(service))
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
}

func TestUpdateHandlerNotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)
	service := &stubPostService{err: ErrNotFound}

	body := bytes.NewBufferString(`{"title":"t","content":"c"}`)
	req := httptest.NewRequest(http.MethodPut, "/content/no-such-id", body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router := gin.New()
	router.PUT("/content/:id", UpdateHandler(service))
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
}

func TestUpdateHandlerSuccess(t *testing.T) {
	gin.SetMode(gin.TestMode)
	service := &stubPostService{
		post: &Post{ID: primitive.NewObjectID(), Title: "new", Content: "body"},
	}

	body := bytes.NewBufferString(`{"title":"new","content":"body"}`)
	req := httptest.NewRequest(http.MethodPut, "/content/"+service.post.ID.Hex(), body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router := gin.New()
	router.PUT("/content/:id", UpdateHandler(service))
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d body=%s", rec.Code, rec.Body.String())
	}

	var payload Post
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if payload.Title != "new" {
		t.Fatalf("unexpected title: %s", payload.Title)
	}
}

func TestDeleteHandlerSuccess(t *testing.T) {
	gin.SetMode(gin.TestMode)
	service := &stubPostService{}

	req := httptest.NewRequest(http.MethodDelete, "/content/some-id", nil)
	rec := httptest.NewRecorder()

	router := gin.New()
	router.DELETE("/content/:id", DeleteHandler(service))
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
	if rec.Body.Len() != 0 {
		t.Fatalf("expected empty body, got: %s", rec.Body.String())
	}
}

func TestDeleteHandlerNotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)
	service := &stubPostService{err: ErrNotFound}

	req := httptest.NewRequest(http.MethodDelete, "/content/absent-id", nil)
	rec := httptest.NewRecorder()

	router := gin.New()
	router.DELETE("/content/:id", DeleteHandler(service))
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
}
