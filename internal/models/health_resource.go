package models

// HealthResource is an admin-published article or document shown to patients.
// An uploaded file is stored inline as binary data.
type HealthResource struct {
	BaseModel
	Title       string `gorm:"size:200;not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	Link        string `gorm:"size:255" json:"link,omitempty"`
	FileName    string `gorm:"size:255" json:"fileName,omitempty"`
	FileType    string `gorm:"size:100" json:"fileType,omitempty"` // MIME type of the file
	FileData    []byte `gorm:"type:longblob" json:"-"`             // File content as binary data (longblob for MySQL)
}
