// Package roles provides the static job role requirements catalog used to
// build skill gap records against a target role.
package roles

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/xeipuuv/gojsonschema"

	"github.com/skillgap-ai/skillgap-api/internal/extraction"
	"github.com/skillgap-ai/skillgap-api/internal/types"
)

//go:embed roles.json
var rolesJSON []byte

//go:embed roles_schema.json
var rolesSchemaJSON []byte

// SkillRequirement is one skill a role requires, with a 0-100 target level.
type SkillRequirement struct {
	Skill         string           `json:"skill"`
	RequiredLevel int              `json:"required_level"`
	Importance    types.Importance `json:"importance"`
	SkillType     types.SkillType  `json:"skill_type"`
}

// Role describes one target role in the catalog.
type Role struct {
	ID     string             `json:"id"`
	Title  string             `json:"title"`
	Level  string             `json:"level"`
	Skills []SkillRequirement `json:"skills"`
}

// Catalog is the loaded role catalog.
type Catalog struct {
	roles map[string]Role
}

// Load parses and schema-validates the embedded catalog.
func Load() (*Catalog, error) {
	schemaLoader := gojsonschema.NewBytesLoader(rolesSchemaJSON)
	docLoader := gojsonschema.NewBytesLoader(rolesJSON)

	result, err := gojsonschema.Validate(schemaLoader, docLoader)
	if err != nil {
		return nil, fmt.Errorf("failed to validate role catalog: %w", err)
	}
	if !result.Valid() {
		return nil, fmt.Errorf("role catalog does not match schema: %v", result.Errors())
	}

	var raw map[string]Role
	if err := json.Unmarshal(rolesJSON, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse role catalog: %w", err)
	}

	for id, role := range raw {
		role.ID = id
		raw[id] = role
	}

	return &Catalog{roles: raw}, nil
}

// Get returns the role with the given ID, or nil if unknown.
func (c *Catalog) Get(roleID string) *Role {
	role, ok := c.roles[roleID]
	if !ok {
		return nil
	}
	return &role
}

// List returns all roles sorted by ID for stable output.
func (c *Catalog) List() []Role {
	out := make([]Role, 0, len(c.roles))
	for _, role := range c.roles {
		out = append(out, role)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// GapsAgainst builds a skill gap record for every requirement of the role.
// currentLevels maps skill name to the user's 0-100 level; skills absent from
// the map have a current level of zero (a complete gap).
func (r *Role) GapsAgainst(currentLevels map[string]int) []types.SkillGapRecord {
	out := make([]types.SkillGapRecord, 0, len(r.Skills))
	for _, req := range r.Skills {
		out = append(out, types.SkillGapRecord{
			Skill:         req.Skill,
			Category:      string(extraction.CategoryOf(req.Skill)),
			CurrentLevel:  currentLevels[req.Skill],
			RequiredLevel: req.RequiredLevel,
			Importance:    req.Importance,
			SkillType:     req.SkillType,
		})
	}
	return out
}

// LevelsFromSkills assigns a default current level to each extracted skill.
// Extraction is binary keyword matching, so presence maps to a fixed baseline
// proficiency rather than a measured one.
func LevelsFromSkills(skills []string, baseline int) map[string]int {
	levels := make(map[string]int, len(skills))
	for _, s := range skills {
		levels[s] = baseline
	}
	return levels
}
