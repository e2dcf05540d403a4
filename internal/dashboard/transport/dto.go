package transport

import "github.com/google/uuid"

// StatsResponse is the dashboard summary: aggregate counts, the
// distribution of official grades and the most recent projects.
type StatsResponse struct {
	TotalProjects     int                  `json:"totalProjects"`
	TotalClients      int                  `json:"totalClients"`
	CertifiedCount    int                  `json:"certifiedCount"`
	InProgressCount   int                  `json:"inProgressCount"`
	GradeDistribution map[string]int       `json:"gradeDistribution"`
	RecentProjects    []RecentProjectEntry `json:"recentProjects"`
}

// RecentProjectEntry is one row of the dashboard's recent-projects list.
type RecentProjectEntry struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	ClientName string    `json:"clientName"`
	TypeName   string    `json:"typeName"`
	StartDate  string    `json:"startDate"`
	Status     string    `json:"status"`
}
