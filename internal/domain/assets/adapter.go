package assets

import (
	"github.com/Devender0077/HRMS-Go-V5-sub000/internal/envelope"
	"github.com/Devender0077/HRMS-Go-V5-sub000/internal/listquery"
)

// AssetFromRaw normalizes one raw asset record.
func AssetFromRaw(raw map[string]any, index int) Asset {
	name := envelope.Str(raw, "Untitled", "name", "asset_name", "title")
	return Asset{
		ID:        envelope.ID(raw, name, index, "id", "_id", "asset_id"),
		Code:      envelope.Str(raw, "", "code", "asset_code", "tag", "serial_number"),
		Name:      name,
		Category:  envelope.Str(raw, "General", "category", "asset_category", "type"),
		Brand:     envelope.Str(raw, "", "brand", "manufacturer", "make"),
		Model:     envelope.Str(raw, "", "model", "model_number"),
		Status:    envelope.Str(raw, StatusAvailable, "status", "asset_status"),
		Condition: envelope.Str(raw, ConditionGood, "condition", "asset_condition"),
		Location:  envelope.Str(raw, "Remote", "location", "site", "office"),
	}
}

func AssetsFromItems(items []map[string]any) []Asset {
	out := make([]Asset, 0, len(items))
	for i, raw := range items {
		out = append(out, AssetFromRaw(raw, i))
	}
	return out
}

var AssetSchema = listquery.Schema[Asset]{
	Searchable: []func(Asset) string{
		func(a Asset) string { return a.Name },
		func(a Asset) string { return a.Code },
		func(a Asset) string { return a.Brand },
		func(a Asset) string { return a.Model },
		func(a Asset) string { return a.Location },
	},
	Status: func(a Asset) string { return a.Status },
	Type:   func(a Asset) string { return a.Category },
	SortKeys: map[string]func(a, b Asset) int{
		"name":     listquery.ByString(func(a Asset) string { return a.Name }),
		"code":     listquery.ByString(func(a Asset) string { return a.Code }),
		"category": listquery.ByString(func(a Asset) string { return a.Category }),
		"status":   listquery.ByString(func(a Asset) string { return a.Status }),
	},
}
