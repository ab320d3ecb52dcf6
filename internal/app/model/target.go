package model

// BlackboxJob is the Prometheus job label written for every target group
const BlackboxJob = "blackbox_http"

// TargetGroup is what the dashboard posts to /save
type TargetGroup struct {
	Group   *string  `json:"group"`
	Targets []string `json:"targets"`
}

// TargetGroupView is what /load returns
type TargetGroupView struct {
	Name    string   `json:"name"`
	Targets []string `json:"targets"`
}

// TargetLabels are the Prometheus file_sd labels of a group
type TargetLabels struct {
	Job   string `json:"job"`
	Group string `json:"group"`
}

// TargetFileEntry is one element of the file_sd targets file
type TargetFileEntry struct {
	Labels  TargetLabels `json:"labels"`
	Targets []string     `json:"targets"`
	// Group is only present in files written by older tooling
	Group string `json:"group,omitempty"`
}
