package dashboard

import (
	"strings"

	"suivi/internal/models"
)

// Intervention status filter values accepted by FilterInterventions.
// Note "rejected" on the filter side against "refused" on the data side;
// the UI vocabulary and the storage vocabulary differ and both are kept.
const (
	InterventionFilterApproved = "approved"
	InterventionFilterRejected = "rejected"
	InterventionFilterPending  = "pending"
)

// FilterInterventions narrows the per-project intervention summaries by
// project-name search, concrete project, and activity status. A status
// filter keeps a summary when the corresponding tally is positive: the
// tallies are independent counts, so a project can match several status
// filters at once. The result is never nil.
func FilterInterventions(summaries []models.InterventionSummary, search, project, status string) []models.InterventionSummary {
	term := strings.ToLower(search)

	kept := make([]models.InterventionSummary, 0, len(summaries))
	for _, s := range summaries {
		if term != "" && !strings.Contains(strings.ToLower(s.Project), term) {
			continue
		}
		if project != FilterAll && project != "" && s.Project != project {
			continue
		}
		if !matchesInterventionStatus(s, status) {
			continue
		}
		kept = append(kept, s)
	}
	return kept
}

func matchesInterventionStatus(s models.InterventionSummary, status string) bool {
	switch status {
	case InterventionFilterApproved:
		return s.Approved > 0
	case InterventionFilterRejected:
		return s.Refused > 0
	case InterventionFilterPending:
		return s.Pending > 0
	default:
		return true
	}
}
