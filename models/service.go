package models

// Service is a manufacturing-service inquiry. The form fields live in
// FormDetails, tagged by FormDetails["type"].
type Service struct {
	Base
	UserID       string  `gorm:"index;not null" json:"userId"`
	FileName     *string `json:"fileName"`
	FileURL      *string `json:"fileUrl"`
	FileType     *string `json:"fileType"`
	FilePublicID *string `json:"filePublicId"`
	FormDetails  JSONMap `gorm:"type:jsonb;serializer:json;not null" json:"formDetails"`
}

func (s Service) Type() string {
	t, _ := s.FormDetails.String("type")
	return t
}
