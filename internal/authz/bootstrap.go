package authz

import "fmt"

// 预置角色
const (
	RoleModerator = "moderator"
	RoleAdmin     = "admin"
)

// RoleSeed 预置角色定义
type RoleSeed struct {
	Role     string
	Inherits []string
	Policies []Policy
}

// BuiltinRoleSeeds 预置角色：moderator 可编辑评价并查看统计，admin 在此基础上可删除评价并访问全部后台接口
func BuiltinRoleSeeds() []RoleSeed {
	return []RoleSeed{
		{
			Role: RoleModerator,
			Policies: []Policy{
				{Object: "/reviews/:id", Action: "PUT"},
				{Object: "/admin/reviews/stats/:productId", Action: "GET"},
			},
		},
		{
			Role:     RoleAdmin,
			Inherits: []string{RoleModerator},
			Policies: []Policy{
				{Object: "/reviews/:id", Action: "DELETE"},
				{Object: "/admin/*", Action: "*"},
			},
		},
	}
}

// BootstrapBuiltinRoles 写入预置角色，可重复执行
func (s *Service) BootstrapBuiltinRoles() error {
	if err := s.ready(); err != nil {
		return err
	}
	for _, seed := range BuiltinRoleSeeds() {
		for _, parent := range seed.Inherits {
			if err := s.InheritRole(seed.Role, parent); err != nil {
				return fmt.Errorf("seed role %s: %w", seed.Role, err)
			}
		}
		for _, p := range seed.Policies {
			if err := s.GrantRolePolicy(seed.Role, p.Object, p.Action); err != nil {
				return fmt.Errorf("seed role %s: %w", seed.Role, err)
			}
		}
	}
	return nil
}
