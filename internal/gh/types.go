package gh

import "time"

// IssueSpec defines all parameters for creating an issue.
type IssueSpec struct {
	Title  string   // issue title
	Body   string   // issue body
	Labels []string // labels to apply at creation
}

// Issue contains GitHub issue information returned from gh CLI.
type Issue struct {
	Number    int       // issue number
	Title     string    // issue title
	URL       string    // issue URL
	State     string    // "open", "closed"
	Labels    []string  // label names
	UpdatedAt time.Time // when the issue was last updated
}

// Board contains GitHub project board information.
type Board struct {
	ID     string // GraphQL node ID
	Number int    // project number
	Title  string // project title
	URL    string // project URL
}

// issueJSON is the common structure for issue data from gh CLI.
type issueJSON struct {
	Number    int       `json:"number"`
	Title     string    `json:"title"`
	URL       string    `json:"url"`
	State     string    `json:"state"`
	UpdatedAt time.Time `json:"updatedAt"`
	Labels    []struct {
		Name string `json:"name"`
	} `json:"labels"`
}

// toIssue converts an issueJSON to an Issue.
func (i *issueJSON) toIssue() *Issue {
	labels := make([]string, 0, len(i.Labels))
	for _, l := range i.Labels {
		labels = append(labels, l.Name)
	}
	return &Issue{
		Number:    i.Number,
		Title:     i.Title,
		URL:       i.URL,
		State:     normalizeState(i.State),
		Labels:    labels,
		UpdatedAt: i.UpdatedAt,
	}
}
