package admin

import (
	"github.com/dujiao-next/storefront/internal/authz"
	"github.com/dujiao-next/storefront/internal/http/response"

	"github.com/gin-gonic/gin"
)

var authzErrorRules = []mappedHandlerError{
	{target: authz.ErrRoleRequired, code: response.CodeBadRequest, msg: "Role is required"},
	{target: authz.ErrReservedRole, code: response.CodeBadRequest, msg: "Reserved role is not allowed"},
	{target: authz.ErrActionRequired, code: response.CodeBadRequest, msg: "Action is required"},
	{target: authz.ErrUnavailable, code: response.CodeInternal, msg: "Authorization service unavailable"},
}

type authzRolePayload struct {
	Role    string   `json:"role" binding:"required"`
	Inherit []string `json:"inherits"`
}

type authzRolePolicies struct {
	Role     string         `json:"role"`
	Parents  []string       `json:"parents"`
	Policies []authz.Policy `json:"policies"`
}

type authzPolicyPayload struct {
	Role   string `json:"role" binding:"required"`
	Object string `json:"object" binding:"required"`
	Action string `json:"action" binding:"required"`
}

// ListAuthzRoles 获取角色列表
func (h *Handler) ListAuthzRoles(c *gin.Context) {
	roles, err := h.AuthzService.ListRoles()
	if err != nil {
		respondWithMappedError(c, err, authzErrorRules, response.CodeInternal, "Failed to load roles")
		return
	}
	response.Success(c, roles)
}

// CreateAuthzRole 创建角色
func (h *Handler) CreateAuthzRole(c *gin.Context) {
	var req authzRolePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "Invalid request body", err)
		return
	}
	role, err := h.AuthzService.EnsureRole(req.Role)
	if err != nil {
		respondWithMappedError(c, err, authzErrorRules, response.CodeInternal, "Failed to create role")
		return
	}
	for _, parent := range req.Inherit {
		if err := h.AuthzService.InheritRole(role, parent); err != nil {
			respondWithMappedError(c, err, authzErrorRules, response.CodeInternal, "Failed to create role")
			return
		}
	}
	requestLog(c).Infow("admin_authz_role_created", "role", role, "inherits", req.Inherit, "operator_id", currentUserID(c))
	response.Created(c, gin.H{"role": role})
}

// GetAuthzRolePolicies 角色策略，effective=true 时包含继承的策略
func (h *Handler) GetAuthzRolePolicies(c *gin.Context) {
	role, err := authz.NormalizeRole(c.Param("role"))
	if err != nil {
		respondWithMappedError(c, err, authzErrorRules, response.CodeInternal, "Failed to load policies")
		return
	}
	load := h.AuthzService.GetRolePolicies
	if c.Query("effective") == "true" {
		load = h.AuthzService.EffectivePolicies
	}
	policies, err := load(role)
	if err != nil {
		respondWithMappedError(c, err, authzErrorRules, response.CodeInternal, "Failed to load policies")
		return
	}
	parents, err := h.AuthzService.RoleParents(role)
	if err != nil {
		respondWithMappedError(c, err, authzErrorRules, response.CodeInternal, "Failed to load policies")
		return
	}
	response.Success(c, authzRolePolicies{Role: role, Parents: parents, Policies: policies})
}

// GrantAuthzPolicy 授予策略
func (h *Handler) GrantAuthzPolicy(c *gin.Context) {
	var req authzPolicyPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "Invalid request body", err)
		return
	}
	if err := h.AuthzService.GrantRolePolicy(req.Role, req.Object, req.Action); err != nil {
		respondWithMappedError(c, err, authzErrorRules, response.CodeInternal, "Failed to grant policy")
		return
	}
	requestLog(c).Infow("admin_authz_policy_granted",
		"role", req.Role,
		"object", req.Object,
		"action", req.Action,
		"operator_id", currentUserID(c),
	)
	response.Success(c, nil)
}

// RevokeAuthzPolicy 撤销策略
func (h *Handler) RevokeAuthzPolicy(c *gin.Context) {
	var req authzPolicyPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "Invalid request body", err)
		return
	}
	if err := h.AuthzService.RevokeRolePolicy(req.Role, req.Object, req.Action); err != nil {
		respondWithMappedError(c, err, authzErrorRules, response.CodeInternal, "Failed to revoke policy")
		return
	}
	requestLog(c).Infow("admin_authz_policy_revoked",
		"role", req.Role,
		"object", req.Object,
		"action", req.Action,
		"operator_id", currentUserID(c),
	)
	response.Success(c, nil)
}
