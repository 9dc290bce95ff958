package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ngocthb/OJT-BE/internal/handlers"
	"github.com/ngocthb/OJT-BE/internal/middleware"
	"github.com/ngocthb/OJT-BE/internal/models"
	"github.com/ngocthb/OJT-BE/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type stubUserStore struct{ users map[string]*models.User }

func (s *stubUserStore) FindByID(id string) (*models.User, error) {
	if u, ok := s.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

type stubClaimStore struct{ claims map[string]*models.Claim }

func (s *stubClaimStore) FindByID(id string) (*models.Claim, error) {
	if c, ok := s.claims[id]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

type stubCommentStore struct{ comments []*models.Comment }

func (s *stubCommentStore) FindByID(id string) (*models.Comment, error) {
	for _, c := range s.comments {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubCommentStore) FindByClaim(claimID string) ([]models.Comment, error) {
	var out []models.Comment
	for _, c := range s.comments {
		if c.ClaimID == claimID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (s *stubCommentStore) Create(comment *models.Comment) error {
	comment.ID = uuid.NewString()
	comment.CreatedAt = time.Now()
	s.comments = append(s.comments, comment)
	return nil
}

type stubReplyLinkStore struct{ links map[string]*models.ReplyLink }

func (s *stubReplyLinkStore) FindByParent(parentID string) (*models.ReplyLink, error) {
	if l, ok := s.links[parentID]; ok {
		return l, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubReplyLinkStore) FindByParentIn(parentIDs []string) ([]models.ReplyLink, error) {
	var out []models.ReplyLink
	for _, id := range parentIDs {
		if l, ok := s.links[id]; ok {
			out = append(out, *l)
		}
	}
	return out, nil
}

func (s *stubReplyLinkStore) AppendReply(parentID, replyID string) (*models.ReplyLink, error) {
	link, ok := s.links[parentID]
	if !ok {
		link = &models.ReplyLink{ID: uuid.NewString(), CommentID: parentID, Reply: []string{replyID}}
		s.links[parentID] = link
		return link, nil
	}
	if !link.Contains(replyID) {
		link.Reply = append(link.Reply, replyID)
	}
	return link, nil
}

type stubNotifier struct{ sent []services.Notification }

func (s *stubNotifier) Notify(n services.Notification) error {
	s.sent = append(s.sent, n)
	return nil
}

type env struct {
	router *gin.Engine
	owner  *models.User
	actor  *models.User
	claim  *models.Claim

	comments *stubCommentStore
	notifier *stubNotifier
}

// newEnv wires the handler over stub stores, with a middleware chain that
// authenticates requests as actor (or leaves them anonymous when nil).
func newEnv(t *testing.T, actor *models.User) *env {
	t.Helper()
	gin.SetMode(gin.TestMode)

	owner := &models.User{ID: uuid.NewString(), UserName: "alice", Email: "alice@example.com", Role: models.Role{Name: "claimer"}}
	claim := &models.Claim{ID: uuid.NewString(), UserID: owner.ID, User: *owner}

	users := &stubUserStore{users: map[string]*models.User{owner.ID: owner}}
	if actor != nil {
		users.users[actor.ID] = actor
	}
	comments := &stubCommentStore{}
	notifier := &stubNotifier{}
	service := services.NewCommentService(users, &stubClaimStore{claims: map[string]*models.Claim{claim.ID: claim}},
		comments, &stubReplyLinkStore{links: map[string]*models.ReplyLink{}}, notifier)
	handler := handlers.NewCommentHandler(service)

	r := gin.New()
	r.GET("/api/comment/get-comments/:claimId", handler.GetComments)
	authorized := r.Group("/api")
	authorized.Use(func(c *gin.Context) {
		if actor != nil {
			c.Set(middleware.CheckUserKey, actor)
		}
		c.Next()
	}, middleware.AuthRequired())
	{
		authorized.POST("/comment/create", handler.Create)
		authorized.POST("/comment/reply", handler.Reply)
		authorized.GET("/comment/check/:id", handler.Check)
	}

	return &env{router: r, owner: owner, actor: actor, claim: claim, comments: comments, notifier: notifier}
}

func (e *env) do(t *testing.T, method, path string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)

	var parsed map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &parsed))
	return w, parsed
}

func TestGetCommentsEmptyThreadIsOK(t *testing.T) {
	e := newEnv(t, nil)

	w, body := e.do(t, http.MethodGet, "/api/comment/get-comments/"+e.claim.ID, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", body["status"])
	assert.Equal(t, "Comments not found", body["message"])
	assert.Nil(t, body["data"])
}

func TestCreateCommentRequiresAuth(t *testing.T) {
	e := newEnv(t, nil)

	w, body := e.do(t, http.MethodPost, "/api/comment/create",
		gin.H{"claim_id": e.claim.ID, "content": "hello"})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "ERR", body["status"])
}

func TestCreateCommentValidatesBody(t *testing.T) {
	actor := &models.User{ID: uuid.NewString(), UserName: "bob", Email: "bob@example.com", Role: models.Role{Name: "approver"}}
	e := newEnv(t, actor)

	w, body := e.do(t, http.MethodPost, "/api/comment/create", gin.H{"claim_id": e.claim.ID})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "ERR", body["status"])
}

func TestCreateCommentRoundTrip(t *testing.T) {
	actor := &models.User{ID: uuid.NewString(), UserName: "bob", Email: "bob@example.com", Role: models.Role{Name: "approver"}}
	e := newEnv(t, actor)

	w, body := e.do(t, http.MethodPost, "/api/comment/create",
		gin.H{"claim_id": e.claim.ID, "content": "hello"})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", body["status"])
	assert.Equal(t, "Successfully create comment", body["message"])
	require.NotNil(t, body["data"])
	require.Len(t, e.notifier.sent, 1)

	// The new comment shows up in the assembled thread.
	w, body = e.do(t, http.MethodGet, "/api/comment/get-comments/"+e.claim.ID, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	data, ok := body["data"].([]interface{})
	require.True(t, ok)
	assert.Len(t, data, 1)
}

func TestCreateCommentUnknownClaim(t *testing.T) {
	actor := &models.User{ID: uuid.NewString(), UserName: "bob", Email: "bob@example.com", Role: models.Role{Name: "approver"}}
	e := newEnv(t, actor)

	w, body := e.do(t, http.MethodPost, "/api/comment/create",
		gin.H{"claim_id": uuid.NewString(), "content": "hello"})

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "ERR", body["status"])
	assert.Equal(t, "claim not found", body["message"])
}

func TestReplyForbiddenForNonOwner(t *testing.T) {
	actor := &models.User{ID: uuid.NewString(), UserName: "bob", Email: "bob@example.com", Role: models.Role{Name: "approver"}}
	e := newEnv(t, actor)

	parent := &models.Comment{ID: uuid.NewString(), ClaimID: e.claim.ID, UserID: e.owner.ID, User: *e.owner, Content: "parent"}
	reply := &models.Comment{ID: uuid.NewString(), ClaimID: e.claim.ID, UserID: actor.ID, User: *actor, Content: "reply"}
	e.comments.comments = append(e.comments.comments, parent, reply)

	w, body := e.do(t, http.MethodPost, "/api/comment/reply",
		gin.H{"comment_id": parent.ID, "reply_id": reply.ID, "claim_id": e.claim.ID, "content": "reply"})

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "ERR", body["status"])
	assert.Equal(t, "you are not the owner of this comment", body["message"])
}

func TestCheckComment(t *testing.T) {
	actor := &models.User{ID: uuid.NewString(), UserName: "bob", Email: "bob@example.com", Role: models.Role{Name: "approver"}}
	e := newEnv(t, actor)

	comment := &models.Comment{ID: uuid.NewString(), ClaimID: e.claim.ID, UserID: actor.ID, User: *actor, Content: "hi"}
	e.comments.comments = append(e.comments.comments, comment)

	w, body := e.do(t, http.MethodGet, "/api/comment/check/"+comment.ID, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", body["status"])

	w, body = e.do(t, http.MethodGet, "/api/comment/check/"+uuid.NewString(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "ERR", body["status"])
}
