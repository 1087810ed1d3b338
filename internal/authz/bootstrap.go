package authz

import "fmt"

// RoleSeed 预置角色定义
type RoleSeed struct {
	Role      string
	Inherits  []string
	Policies  []Policy
	Immutable bool
}

// BuiltinRoleSeeds 系统预置角色矩阵
func BuiltinRoleSeeds() []RoleSeed {
	return []RoleSeed{
		{
			Role: "readonly_auditor",
			Policies: []Policy{
				{Object: "/admin/*", Action: "GET"},
			},
			Immutable: true,
		},
		{
			Role:     "support_agent",
			Inherits: []string{"readonly_auditor"},
			Policies: []Policy{
				{Object: "/admin/tickets", Action: "GET"},
				{Object: "/admin/tickets/stats", Action: "GET"},
				{Object: "/admin/tickets/:id", Action: "GET"},
				{Object: "/admin/tickets/:id/reply", Action: "POST"},
				{Object: "/admin/tickets/:id/status", Action: "PATCH"},
				{Object: "/admin/sellers", Action: "GET"},
				{Object: "/admin/sellers/:id", Action: "GET"},
			},
			Immutable: true,
		},
		{
			Role:     "content_manager",
			Inherits: []string{"readonly_auditor"},
			Policies: []Policy{
				{Object: "/admin/announcements", Action: "*"},
				{Object: "/admin/announcements/:id", Action: "*"},
				{Object: "/admin/announcements/:id/toggle", Action: "PATCH"},
			},
			Immutable: true,
		},
		{
			Role:     "account_manager",
			Inherits: []string{"readonly_auditor"},
			Policies: []Policy{
				{Object: "/admin/sellers", Action: "GET"},
				{Object: "/admin/sellers/:id", Action: "GET"},
				{Object: "/admin/sellers/:id/status", Action: "PATCH"},
			},
			Immutable: true,
		},
	}
}

// BootstrapBuiltinRoles 初始化预置角色与默认策略
func (s *Service) BootstrapBuiltinRoles() error {
	if err := s.ready(); err != nil {
		return err
	}

	for _, seed := range BuiltinRoleSeeds() {
		role, err := NormalizeRole(seed.Role)
		if err != nil {
			return err
		}

		exists, err := s.enforcer.HasNamedGroupingPolicy("g", role, roleAnchor)
		if err != nil {
			return fmt.Errorf("check builtin role failed: %w", err)
		}
		if !exists {
			if _, err := s.enforcer.AddNamedGroupingPolicy("g", role, roleAnchor); err != nil {
				return fmt.Errorf("create builtin role failed: %w", err)
			}
		}

		for _, parent := range seed.Inherits {
			parentRole, err := NormalizeRole(parent)
			if err != nil {
				return err
			}
			if _, err := s.enforcer.AddNamedGroupingPolicy("g", role, parentRole); err != nil {
				return fmt.Errorf("link role inheritance failed: %w", err)
			}
		}

		for _, policy := range seed.Policies {
			action := NormalizeAction(policy.Action)
			if action == "" {
				return fmt.Errorf("builtin policy action is required")
			}
			if _, err := s.enforcer.AddPolicy(role, NormalizeObject(policy.Object), action); err != nil {
				return fmt.Errorf("add builtin policy failed: %w", err)
			}
		}
	}

	return nil
}
