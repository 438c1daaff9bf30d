package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

type VideoStatus string

const (
	VideoStatusPending VideoStatus = "pending"
	VideoStatusSuccess VideoStatus = "success"
	VideoStatusError   VideoStatus = "error"
)

// JSONStringList stores an ordered string slice as a JSON column. Works on
// both postgres and the sqlite databases the tests run on.
type JSONStringList []string

// Value implements the driver.Valuer interface
func (l JSONStringList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "[]", nil
	}
	return json.Marshal(l)
}

// Scan implements the sql.Scanner interface
func (l *JSONStringList) Scan(value interface{}) error {
	if value == nil {
		*l = JSONStringList{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("unsupported type %T for JSONStringList", value)
	}

	return json.Unmarshal(bytes, l)
}

// Video is a stitching job. It is created pending and transitioned exactly
// once by the worker to success or error; terminal rows are never touched
// again and never deleted.
type Video struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	Status       VideoStatus    `gorm:"size:16;not null;default:'pending';index" json:"status"`
	ImagePaths   JSONStringList `gorm:"type:text;not null" json:"image_paths"`
	VideoPath    *string        `gorm:"size:512" json:"video_path"`
	ErrorMessage *string        `gorm:"type:text" json:"error_message"`
}
