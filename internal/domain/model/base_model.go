package model

import (
	"time"

	"gorm.io/gorm"
)

// 時間欄位交給gorm autoCreateTime/autoUpdateTime, 不依賴特定資料庫的now()
type BaseModel struct {
	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time      `gorm:"null" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
