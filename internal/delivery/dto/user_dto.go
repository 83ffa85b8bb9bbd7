package dto

type DashboardResponse struct {
	User    UserResponse `json:"user"`
	Notices []string     `json:"notices"`
}

type DirectoryResponse struct {
	Users []UserResponse `json:"users"`
	Total int            `json:"total"`
}
