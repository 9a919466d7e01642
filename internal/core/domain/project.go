package domain

import "slices"

// Project groups tasks and a team. TeamIDs keeps insertion order.
type Project struct {
	ID          string   `json:"id" bson:"_id"`
	Name        string   `json:"name" bson:"name"`
	Description string   `json:"description" bson:"description"`
	StartDate   Date     `json:"start_date" bson:"start_date"`
	EndDate     Date     `json:"end_date" bson:"end_date"`
	Status      Status   `json:"status" bson:"status"`
	TeamIDs     []string `json:"team_ids" bson:"team_ids"`
}

// HasMember reports whether employeeID is on the project team.
func (p Project) HasMember(employeeID string) bool {
	return slices.Contains(p.TeamIDs, employeeID)
}

// WithMember returns a copy of p with employeeID appended to the team unless it
// is already there.
func (p Project) WithMember(employeeID string) Project {
	if p.HasMember(employeeID) {
		return p
	}
	p.TeamIDs = append(slices.Clip(p.TeamIDs), employeeID)
	return p
}

// WithoutMember returns a copy of p without employeeID.
func (p Project) WithoutMember(employeeID string) Project {
	p.TeamIDs = slices.DeleteFunc(slices.Clone(p.TeamIDs), func(id string) bool {
		return id == employeeID
	})
	return p
}

// UniqueTeam drops repeated team ids, keeping the first occurrence.
func UniqueTeam(ids []string) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
