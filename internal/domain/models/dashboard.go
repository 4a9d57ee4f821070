package models

// FormView is a form as rendered on the dashboard, with its resolved
// presentation link.
type FormView struct {
	Form
	PresentationLink string `json:"presentationLink"`
}

// FolderView is a folder with the search-matched forms filed under it.
type FolderView struct {
	Folder
	Forms []FormView `json:"forms"`
}

// Dashboard is the derived view of a user's forms and folders.
type Dashboard struct {
	Query        string       `json:"query,omitempty"`
	ShowArchived bool         `json:"showArchived"`
	Folders      []FolderView `json:"folders"`     // folders whose isArchived matches ShowArchived
	Unorganized  []FormView   `json:"unorganized"` // no folder, not archived
	Archived     []FormView   `json:"archived"`    // archived forms
	Found        *int         `json:"found,omitempty"`
}

// DashboardSummary backs the activity panel of the dashboard header.
type DashboardSummary struct {
	TotalForms       int `json:"totalForms"`
	ArchivedForms    int `json:"archivedForms"`
	UnorganizedForms int `json:"unorganizedForms"`
	Folders          int `json:"folders"`
	UpcomingMeetings int `json:"upcomingMeetings"`
}

// UnknownCreator is shown for forms whose owner has no user row.
const UnknownCreator = "Unknown User"

// AdminForm is a form annotated with its creator's email.
type AdminForm struct {
	Form
	CreatorEmail string `json:"creatorEmail"`
}

// AdminStats are the headline counters of the admin panel.
type AdminStats struct {
	TotalForms int `json:"totalForms"`
	TotalUsers int `json:"totalUsers"`
}

// AdminOverview is everything the admin panel shows.
type AdminOverview struct {
	Forms []AdminForm `json:"forms"`
	Stats AdminStats  `json:"stats"`
}
