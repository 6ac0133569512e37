package rbac

import "fmt"

// Config declares the roles, the resource and action vocabulary, and which
// actions each role may take on each resource.
type Config struct {
	Roles        []RoleDefinition
	Resources    []Resource
	Actions      []Action
	Capabilities map[Role]map[Resource][]Action
}

// Validate reports the first inconsistency in c. Every capability must
// reference a declared role, resource and action.
func (c *Config) Validate() error {
	switch {
	case len(c.Roles) == 0:
		return fmt.Errorf(errConfigRolesEmpty)
	case len(c.Resources) == 0:
		return fmt.Errorf(errConfigResourcesEmpty)
	case len(c.Actions) == 0:
		return fmt.Errorf(errConfigActionsEmpty)
	case len(c.Capabilities) == 0:
		return fmt.Errorf(errConfigCapabilitiesEmpty)
	}

	roles, err := c.roleSet()
	if err != nil {
		return err
	}
	resources, err := uniqueSet(c.Resources, "resource")
	if err != nil {
		return err
	}
	actions, err := uniqueSet(c.Actions, "action")
	if err != nil {
		return err
	}

	for role, grants := range c.Capabilities {
		if !roles[role] {
			return fmt.Errorf(errConfigCapabilityUnknownRoleFmt, role)
		}
		for res, acts := range grants {
			if !resources[res] {
				return fmt.Errorf(errConfigCapabilityUnknownResourceFmt, role, res)
			}
			for _, act := range acts {
				if !actions[act] {
					return fmt.Errorf(errConfigCapabilityUnknownActionFmt, role, res, act)
				}
			}
		}
	}
	return nil
}

// roleSet also enforces that privilege levels are distinct.
func (c *Config) roleSet() (map[Role]bool, error) {
	names := make(map[Role]bool, len(c.Roles))
	levels := make(map[int]Role, len(c.Roles))
	for _, rd := range c.Roles {
		if rd.Name == "" {
			return nil, fmt.Errorf(errConfigNameEmptyFmt, "role")
		}
		if names[rd.Name] {
			return nil, fmt.Errorf(errConfigDuplicateFmt, "role name", rd.Name)
		}
		if other, dup := levels[rd.Level]; dup {
			return nil, fmt.Errorf(errConfigDuplicateRoleLevelFmt, rd.Level, other, rd.Name)
		}
		names[rd.Name] = true
		levels[rd.Level] = rd.Name
	}
	return names, nil
}

func uniqueSet[T ~string](items []T, kind string) (map[T]bool, error) {
	set := make(map[T]bool, len(items))
	for _, item := range items {
		if item == "" {
			return nil, fmt.Errorf(errConfigNameEmptyFmt, kind)
		}
		if set[item] {
			return nil, fmt.Errorf(errConfigDuplicateFmt, kind, item)
		}
		set[item] = true
	}
	return set, nil
}
