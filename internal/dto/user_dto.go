package dto

type UpdateProfileRequest struct {
	FirstName    string `json:"first_name" validate:"omitempty,min=1"`
	LastName     string `json:"last_name"`
	BusinessName string `json:"business_name"`
	Industry     string `json:"industry"`
	Goal         string `json:"goal"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
}

type NotificationPreferencesResponse struct {
	EmailNotifications bool `json:"email_notifications"`
	WeeklyReports      bool `json:"weekly_reports"`
}

type UpdateNotificationPreferencesRequest struct {
	EmailNotifications *bool `json:"email_notifications"`
	WeeklyReports      *bool `json:"weekly_reports"`
}
