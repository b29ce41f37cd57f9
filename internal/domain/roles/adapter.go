package roles

import (
	"github.com/Devender0077/HRMS-Go-V5-sub000/internal/envelope"
	"github.com/Devender0077/HRMS-Go-V5-sub000/internal/listquery"
)

// RoleFromRaw normalizes one raw role record.
func RoleFromRaw(raw map[string]any, index int) Role {
	name := envelope.Str(raw, "Untitled", "name", "role_name", "title")
	return Role{
		ID:          envelope.ID(raw, name, index, "id", "_id", "role_id"),
		Name:        name,
		Slug:        envelope.Str(raw, "", "slug", "code", "key"),
		Description: envelope.Str(raw, "", "description", "role_description"),
		IsSystem:    envelope.Bool(raw, false, "is_system", "isSystem", "system"),
		Status:      envelope.Str(raw, StatusActive, "status", "role_status"),
	}
}

func RolesFromItems(items []map[string]any) []Role {
	out := make([]Role, 0, len(items))
	for i, raw := range items {
		out = append(out, RoleFromRaw(raw, i))
	}
	return out
}

var RoleSchema = listquery.Schema[Role]{
	Searchable: []func(Role) string{
		func(r Role) string { return r.Name },
		func(r Role) string { return r.Slug },
		func(r Role) string { return r.Description },
	},
	Status: func(r Role) string { return r.Status },
	SortKeys: map[string]func(a, b Role) int{
		"name":   listquery.ByString(func(r Role) string { return r.Name }),
		"status": listquery.ByString(func(r Role) string { return r.Status }),
	},
}
