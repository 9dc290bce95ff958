package handlers

import (
	"time"

	"github.com/ngocthb/OJT-BE/internal/middleware"
	"github.com/ngocthb/OJT-BE/internal/services"
	"github.com/ngocthb/OJT-BE/internal/utils"

	"github.com/gin-gonic/gin"
)

const threadCacheTTL = 30 * time.Second

type CommentHandler struct {
	service *services.CommentService
	cache   *utils.GlobalCache
}

func NewCommentHandler(service *services.CommentService) *CommentHandler {
	return &CommentHandler{
		service: service,
		cache:   utils.GetCache(),
	}
}

func threadCacheKey(claimID string) string {
	return "thread:" + claimID
}

// GetComments returns the assembled thread for a claim. An empty thread is a
// success with no data, matching the write side's OK/ERR envelope.
func (h *CommentHandler) GetComments(c *gin.Context) {
	claimID := c.Param("claimId")

	if cached, ok := h.cache.Get(threadCacheKey(claimID)); ok {
		OK(c, "", cached)
		return
	}

	views, err := h.service.GetComments(claimID)
	if err != nil {
		Fail(c, err)
		return
	}
	if len(views) == 0 {
		OK(c, "Comments not found", nil)
		return
	}

	h.cache.Set(threadCacheKey(claimID), views, threadCacheTTL)
	OK(c, "", views)
}

type createCommentRequest struct {
	ClaimID string `json:"claim_id" binding:"required"`
	Content string `json:"content" binding:"required"`
}

func (h *CommentHandler) Create(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req createCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "claim_id and content are required")
		return
	}

	comment, err := h.service.CreateComment(user.ID, req.ClaimID, req.Content, user.Role.Name)
	if err != nil {
		Fail(c, err)
		return
	}

	h.cache.Delete(threadCacheKey(req.ClaimID))
	OK(c, "Successfully create comment", comment)
}

type replyCommentRequest struct {
	CommentID string `json:"comment_id" binding:"required"`
	ReplyID   string `json:"reply_id" binding:"required"`
	ClaimID   string `json:"claim_id" binding:"required"`
	Content   string `json:"content"`
}

func (h *CommentHandler) Reply(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req replyCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "comment_id, reply_id and claim_id are required")
		return
	}

	link, err := h.service.ReplyComment(user.ID, req.CommentID, req.ReplyID, req.ClaimID, req.Content, user.Role.Name)
	if err != nil {
		Fail(c, err)
		return
	}

	h.cache.Delete(threadCacheKey(req.ClaimID))
	OK(c, "Successfully added reply", link)
}

func (h *CommentHandler) Check(c *gin.Context) {
	comment, err := h.service.CheckComment(c.Param("id"))
	if err != nil {
		Fail(c, err)
		return
	}
	OK(c, "", comment)
}
