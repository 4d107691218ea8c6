package member

import (
	"net/http"
	"strconv"

	sharedError "github.com/changhyeonkim/gym-member-api/internal/shared/error"
	"github.com/changhyeonkim/gym-member-api/internal/shared/handler"
	"github.com/gin-gonic/gin"
)

const deletedMessage = "Member deleted successfully"

type MemberHandler struct {
	memberService *MemberService
}

func NewMemberHandler(memberService *MemberService) *MemberHandler {
	return &MemberHandler{
		memberService: memberService,
	}
}

// List handles GET /api/members?page=&per_page=
func (h *MemberHandler) List(c *gin.Context) {
	page := queryInt(c, "page", DefaultPage)
	perPage := queryInt(c, "per_page", DefaultPerPage)

	response, err := h.memberService.List(c.Request.Context(), page, perPage)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// Stats handles GET /api/members/stats
func (h *MemberHandler) Stats(c *gin.Context) {
	response, err := h.memberService.Stats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// Get handles GET /api/members/:id
func (h *MemberHandler) Get(c *gin.Context) {
	response, err := h.memberService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// Create handles POST /api/members
func (h *MemberHandler) Create(c *gin.Context) {
	var payload Payload
	if !handler.BindJSON(c, &payload) {
		return
	}

	response, err := h.memberService.Create(c.Request.Context(), payload)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response)
}

// Update handles PUT /api/members/:id
func (h *MemberHandler) Update(c *gin.Context) {
	var payload Payload
	if !handler.BindJSON(c, &payload) {
		return
	}

	response, err := h.memberService.Update(c.Request.Context(), c.Param("id"), payload)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// Delete handles DELETE /api/members/:id
func (h *MemberHandler) Delete(c *gin.Context) {
	if err := h.memberService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, DeleteMemberResponse{Message: deletedMessage})
}

func respondError(c *gin.Context, err error) {
	if resp, ok := sharedError.ResolveDomainError(err); ok {
		handler.RespondError(c, err, resp)
		return
	}

	handler.RespondError(c, err, sharedError.InternalServerError)
}

// queryInt falls back to def when the parameter is absent, unparseable or not positive.
func queryInt(c *gin.Context, key string, def int) int {
	value, err := strconv.Atoi(c.Query(key))
	if err != nil || value < 1 {
		return def
	}
	return value
}
