package admin

import (
	"strconv"
	"strings"

	"github.com/linkmart/internal/http/response"
	"github.com/linkmart/internal/repository"

	"github.com/gin-gonic/gin"
)

// GetContactMessages 联系留言列表
func (h *Handler) GetContactMessages(c *gin.Context) {
	page, pageSize := parsePagination(c)

	onlyOpen, _ := strconv.ParseBool(c.Query("only_open"))
	messages, total, err := h.ContactService.List(repository.ContactListFilter{
		Page:     page,
		PageSize: pageSize,
		Search:   strings.TrimSpace(c.Query("search")),
		OnlyOpen: onlyOpen,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "failed to fetch messages", err)
		return
	}
	response.SuccessWithPage(c, messages, response.BuildPagination(page, pageSize, total))
}

// GetContactMessage 留言详情
func (h *Handler) GetContactMessage(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	message, err := h.ContactService.Get(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, message)
}

// MarkContactReplied 标记留言已回复
func (h *Handler) MarkContactReplied(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	if err := h.ContactService.MarkReplied(id); err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, gin.H{"replied": true})
}

// DeleteContactMessage 删除留言
func (h *Handler) DeleteContactMessage(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	if err := h.ContactService.Delete(id); err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}
