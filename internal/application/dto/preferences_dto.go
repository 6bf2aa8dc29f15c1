package dto

// UpdatePreferencesRequest campos opcionales de las preferencias.
type UpdatePreferencesRequest struct {
	SessionDuration *int    `json:"sessionDuration" validate:"omitempty,min=1,max=720"`
	AutoBackup      *bool   `json:"autoBackup"`
	BackupInterval  *int    `json:"backupInterval" validate:"omitempty,min=1,max=10080"`
	Language        *string `json:"language" validate:"omitempty,oneof=fr en"`
	Theme           *string `json:"theme" validate:"omitempty,oneof=light dark"`
}
