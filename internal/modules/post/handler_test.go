package post

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/inklet-blog/core/internal/middleware"
	"github.com/inklet-blog/core/internal/models"
	"github.com/inklet-blog/core/internal/pkg/jwt"
	"gorm.io/gorm"
)

type envelope struct {
	Success    bool            `json:"success"`
	Data       json.RawMessage `json:"data"`
	Error      string          `json:"error"`
	Details    json.RawMessage `json:"details"`
	Pagination *struct {
		Page  int   `json:"page"`
		Limit int   `json:"limit"`
		Total int64 `json:"total"`
		Pages int   `json:"pages"`
	} `json:"pagination"`
}

func newTestRouter(t *testing.T, db *gorm.DB) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	api := r.Group("/api/v1")
	api.Use(middleware.OptionalAuth(db))
	NewHandler(NewService(db)).RegisterRoutes(api, middleware.Auth(db))
	return r
}

func bearerFor(t *testing.T, account *models.AccountModel) string {
	t.Helper()
	token, err := jwt.Sign(account.ID)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return "Bearer " + token
}

func doJSON(r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(rr.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v (body %s)", err, rr.Body.String())
	}
	return env
}

func TestCreateRequiresAuth(t *testing.T) {
	db := newTestDB(t)
	r := newTestRouter(t, db)

	rr := doJSON(r, http.MethodPost, "/api/v1/posts", "", gin.H{"title": "x"})
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rr.Code)
	}
	if env := decodeEnvelope(t, rr); env.Success || env.Error == "" {
		t.Errorf("envelope = %+v, want success=false with error", env)
	}
}

func TestCreateOversizedTitleRejectedWithoutMutation(t *testing.T) {
	db := newTestDB(t)
	r := newTestRouter(t, db)
	author := seedAccount(t, db, "alice", models.RoleMember)
	cat := seedCategory(t, db, "tech")

	rr := doJSON(r, http.MethodPost, "/api/v1/posts", bearerFor(t, author), gin.H{
		"title":    strings.Repeat("t", 101),
		"content":  "body",
		"category": cat.ID,
	})
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
	env := decodeEnvelope(t, rr)
	if env.Success || len(env.Details) == 0 {
		t.Errorf("envelope = %+v, want validation details", env)
	}

	var count int64
	db.Model(&models.PostModel{}).Count(&count)
	if count != 0 {
		t.Errorf("%d posts written despite validation failure", count)
	}
}

func TestCreateAndFetchEnvelope(t *testing.T) {
	db := newTestDB(t)
	r := newTestRouter(t, db)
	author := seedAccount(t, db, "alice", models.RoleMember)
	cat := seedCategory(t, db, "tech")

	rr := doJSON(r, http.MethodPost, "/api/v1/posts", bearerFor(t, author), gin.H{
		"title":    "Hello World",
		"content":  "body",
		"category": cat.ID,
	})
	if rr.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201 (body %s)", rr.Code, rr.Body.String())
	}
	env := decodeEnvelope(t, rr)
	if !env.Success {
		t.Fatalf("envelope = %+v, want success", env)
	}

	var created struct {
		ID        string `json:"id"`
		Slug      string `json:"slug"`
		AuthorID  string `json:"authorId"`
		ViewCount int    `json:"viewCount"`
	}
	if err := json.Unmarshal(env.Data, &created); err != nil {
		t.Fatal(err)
	}
	if created.Slug != "hello-world" {
		t.Errorf("slug = %q, want %q", created.Slug, "hello-world")
	}
	if created.AuthorID != author.ID {
		t.Errorf("author = %q, want the authenticated identity", created.AuthorID)
	}

	// Every successful read increments the counter by one.
	for want := 1; want <= 2; want++ {
		get := doJSON(r, http.MethodGet, "/api/v1/posts/hello-world", "", nil)
		if get.Code != http.StatusOK {
			t.Fatalf("get status = %d, want 200", get.Code)
		}
		var fetched struct {
			ID        string `json:"id"`
			ViewCount int    `json:"viewCount"`
		}
		if err := json.Unmarshal(decodeEnvelope(t, get).Data, &fetched); err != nil {
			t.Fatal(err)
		}
		if fetched.ID != created.ID {
			t.Errorf("slug fetch returned %q, want %q", fetched.ID, created.ID)
		}
		if fetched.ViewCount != want {
			t.Errorf("view count = %d, want %d", fetched.ViewCount, want)
		}
	}
}

func TestListEnvelopePagination(t *testing.T) {
	db := newTestDB(t)
	r := newTestRouter(t, db)
	author := seedAccount(t, db, "alice", models.RoleMember)
	cat := seedCategory(t, db, "tech")
	svc := NewService(db)

	published := true
	for i := 0; i < 20; i++ {
		if _, err := svc.Create(author.ID, &CreatePostDTO{
			Title:       fmt.Sprintf("Post %d", i),
			Content:     "body",
			CategoryID:  cat.ID,
			IsPublished: &published,
		}); err != nil {
			t.Fatal(err)
		}
	}

	rr := doJSON(r, http.MethodGet, "/api/v1/posts?page=1&limit=9", "", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	env := decodeEnvelope(t, rr)
	if !env.Success || env.Pagination == nil {
		t.Fatalf("envelope = %+v, want success with pagination", env)
	}
	p := env.Pagination
	if p.Page != 1 || p.Limit != 9 || p.Total != 20 || p.Pages != 3 {
		t.Errorf("pagination = %+v, want {page:1 limit:9 total:20 pages:3}", p)
	}
	var items []json.RawMessage
	if err := json.Unmarshal(env.Data, &items); err != nil {
		t.Fatal(err)
	}
	if len(items) != 9 {
		t.Errorf("got %d items, want 9", len(items))
	}
}

func TestUpdateForbiddenForStranger(t *testing.T) {
	db := newTestDB(t)
	r := newTestRouter(t, db)
	owner := seedAccount(t, db, "owner", models.RoleMember)
	stranger := seedAccount(t, db, "stranger", models.RoleMember)
	cat := seedCategory(t, db, "tech")

	created, err := NewService(db).Create(owner.ID, &CreatePostDTO{
		Title: "Owned", Content: "body", CategoryID: cat.ID,
	})
	if err != nil {
		t.Fatal(err)
	}

	rr := doJSON(r, http.MethodPut, "/api/v1/posts/"+created.ID, bearerFor(t, stranger), gin.H{
		"content": "hijacked",
	})
	if rr.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rr.Code)
	}

	// A missing post reads as 404 even for a stranger.
	rr = doJSON(r, http.MethodPut, "/api/v1/posts/missing", bearerFor(t, stranger), gin.H{
		"content": "hijacked",
	})
	if rr.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404 before any ownership check", rr.Code)
	}
}

func TestAddCommentEndpoint(t *testing.T) {
	db := newTestDB(t)
	r := newTestRouter(t, db)
	owner := seedAccount(t, db, "owner", models.RoleMember)
	reader := seedAccount(t, db, "reader", models.RoleMember)
	cat := seedCategory(t, db, "tech")

	created, err := NewService(db).Create(owner.ID, &CreatePostDTO{
		Title: "Discussed", Content: "body", CategoryID: cat.ID,
	})
	if err != nil {
		t.Fatal(err)
	}

	rr := doJSON(r, http.MethodPost, "/api/v1/posts/"+created.ID+"/comments", bearerFor(t, reader), gin.H{
		"content": "",
	})
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("empty comment status = %d, want 400", rr.Code)
	}

	rr = doJSON(r, http.MethodPost, "/api/v1/posts/"+created.ID+"/comments", bearerFor(t, reader), gin.H{
		"content": "great read",
	})
	if rr.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201 (body %s)", rr.Code, rr.Body.String())
	}
	var comments []struct {
		AuthorID string `json:"authorId"`
		Content  string `json:"content"`
	}
	if err := json.Unmarshal(decodeEnvelope(t, rr).Data, &comments); err != nil {
		t.Fatal(err)
	}
	if len(comments) != 1 || comments[0].Content != "great read" || comments[0].AuthorID != reader.ID {
		t.Errorf("comments = %+v", comments)
	}

	rr = doJSON(r, http.MethodPost, "/api/v1/posts/missing/comments", bearerFor(t, reader), gin.H{
		"content": "into the void",
	})
	if rr.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rr.Code)
	}
}
