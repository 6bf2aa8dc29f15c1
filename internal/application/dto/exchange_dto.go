package dto

// ImportResult resultado de una importación.
type ImportResult struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Type    string         `json:"type"`
	Counts  map[string]int `json:"counts"`
}

// BackupStatus estado del respaldo automático.
type BackupStatus struct {
	Enabled         bool   `json:"enabled"`
	IntervalMinutes int    `json:"interval_minutes"`
	LastBackup      string `json:"last_backup,omitempty"`
	LastFile        string `json:"last_file,omitempty"`
	LastError       string `json:"last_error,omitempty"`
}
